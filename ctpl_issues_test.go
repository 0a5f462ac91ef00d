package ctpl

import (
	"bytes"
	"testing"

	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.
func TestIssues(t *testing.T) { TestingT(t) }

type IssueTestSuite struct{}

var _ = Suite(&IssueTestSuite{})

// Regression: a {for} loop over an empty array must render nothing and
// leave the iterator name completely unbound afterwards.
func (s *IssueTestSuite) TestEmptyForLoop(c *C) {
	env := NewEnvironment()
	env.Push("xs", ArrayValue(nil))
	tmpl, err := Parse("issue", "{for x in xs}body{end}")
	c.Assert(err, IsNil)

	var buf bytes.Buffer
	err = tmpl.Render(env, &buf)
	c.Assert(err, IsNil)
	c.Check(buf.String(), Equals, "")
	c.Check(env.Depth("x"), Equals, 0)
}

// Regression: a {for} iterator shadows an identically-named outer binding
// inside the loop body, and popping the iterator when the loop ends restores
// the outer value.
func (s *IssueTestSuite) TestForShadowsOuterBinding(c *C) {
	env := NewEnvironment()
	env.Push("x", IntValue(100))
	env.Push("xs", ArrayValue([]Value{IntValue(1), IntValue(2)}))

	tmpl, err := Parse("issue", "{for x in xs}{x}{end}-{x}")
	c.Assert(err, IsNil)

	var buf bytes.Buffer
	err = tmpl.Render(env, &buf)
	c.Assert(err, IsNil)
	c.Check(buf.String(), Equals, "12-100")
}

// Regression: string equality must compare full byte content, not length.
func (s *IssueTestSuite) TestStringEqualityIsBytewise(c *C) {
	v, err := EvaluateExpression("issue", `"ab" == "ba"`, NewEnvironment())
	c.Assert(err, IsNil)
	c.Check(v.Int(), Equals, int64(0))
}

// Regression: integer division truncates toward zero rather than flooring,
// matching the evaluator's use of Go's native / operator on int64.
func (s *IssueTestSuite) TestIntegerDivisionTruncates(c *C) {
	v, err := EvaluateExpression("issue", "-7 / 2", NewEnvironment())
	c.Assert(err, IsNil)
	c.Check(v.Int(), Equals, int64(-3))
}
