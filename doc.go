// Package ctpl implements a small text template engine.
//
// A template is a byte sequence containing literal data interleaved with
// "{...}" statements: {if cond}...{else}...{end}, {for x in seq}...{end}, and
// bare {expression} output. Templates are rendered against an Environment, a
// name-to-stack-of-values mapping, and write their output as bytes.
//
//	env := ctpl.NewEnvironment()
//	env.Push("name", ctpl.StringValue("World"))
//	tpl, err := ctpl.Parse("<string>", "Hello, {name}!")
//	if err != nil {
//	    panic(err)
//	}
//	var buf bytes.Buffer
//	if err := tpl.Render(env, &buf); err != nil {
//	    panic(err)
//	}
//	fmt.Println(buf.String()) // Output: Hello, World!
package ctpl
