package ctpl

import (
	"log"
	"os"
)

type ctplOptions struct {
	debug bool
}

var (
	options = ctplOptions{}
	logger  = log.New(os.Stderr, "[ctpl] ", log.LstdFlags)
)

// SetDebug enables or disables debug logging of lexer/parser/evaluator
// internals to stderr.
func SetDebug(b bool) {
	options.debug = b
}

// Debug reports the current debug logging setting.
func Debug() bool {
	return options.debug
}

func logf(format string, items ...interface{}) {
	if options.debug {
		logger.Printf(format, items...)
	}
}
