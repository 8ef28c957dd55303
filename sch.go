package sch

import (
	"context"

	"github.com/rossipedia/sch/log"
)

// Compiler turns schedule expressions into rule groups. A Compiler holds no
// state between calls and may be reused from a single goroutine; for
// concurrent use create one per goroutine or serialize calls externally.
type Compiler struct {
	logger log.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger enables debug tracing of compile stages. The default logger
// discards everything.
func WithLogger(logger log.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{logger: log.NewNop()}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile parses and compiles expr into its ordered rule groups. Any
// failure returns a *ParseError wrapping ErrInvalidSchedule whose message
// points at the offending position in expr.
func (c *Compiler) Compile(expr string) ([]RuleGroup, error) {
	p := newParser(expr)

	c.logger.Log(context.Background(), log.LevelDebug, "tokenized schedule expression",
		log.Int("tokens", len(p.tokens)))

	doc, err := p.parseDocument()
	if err != nil {
		return nil, err
	}

	comp := &compiler{source: expr, logger: c.logger}

	return comp.compile(doc)
}

// Compile is the package-level convenience for a one-shot compilation
// without logging.
func Compile(expr string) ([]RuleGroup, error) {
	return New().Compile(expr)
}
