package replline

import (
	"fmt"
	"io"

	"github.com/mattferris/replline/pkg/grapheme"
)

// Evaluator receives the source code of a submitted Cmd and reports an
// error the REPL should surface to its caller.
type Evaluator func(source string) error

// Config holds the REPL's construction-time settings, assembled by
// functional Options. The zero value is never used directly — New always
// starts from defaultConfig and applies Options on top of it.
type Config struct {
	Sink                io.Writer
	Input               io.Reader
	InputFd             int
	DefaultPrompt       string
	ContinuePrompt      string
	ReverseSearchPrompt string
	HistoryFilepath     string
	Evaluator           Evaluator
	HelloMsg            string
	GoodbyeMsg          string
}

// Option mutates a Config during construction.
type Option func(*Config)

// WithSink sets the write target for all terminal output. Default: os.Stdout.
func WithSink(w io.Writer) Option { return func(c *Config) { c.Sink = w } }

// WithInput sets the read source for key events, and the file descriptor
// used for raw-mode toggling. Default: os.Stdin.
func WithInput(r io.Reader, fd int) Option {
	return func(c *Config) {
		c.Input = r
		c.InputFd = fd
	}
}

// WithPrompts sets the default and continuation prompts. They must have
// equal grapheme length; New returns an error otherwise.
func WithPrompts(defaultPrompt, continuePrompt string) Option {
	return func(c *Config) {
		c.DefaultPrompt = defaultPrompt
		c.ContinuePrompt = continuePrompt
	}
}

// WithReverseSearchPrompt sets the prompt shown on the dedicated search row.
func WithReverseSearchPrompt(s string) Option {
	return func(c *Config) { c.ReverseSearchPrompt = s }
}

// WithHistoryFilepath overrides the default history file path.
func WithHistoryFilepath(path string) Option {
	return func(c *Config) { c.HistoryFilepath = path }
}

// WithEvaluator sets the callback invoked on every submitted Cmd.
func WithEvaluator(fn Evaluator) Option { return func(c *Config) { c.Evaluator = fn } }

// WithMessages sets the strings printed at startup and on Ctrl-D.
func WithMessages(hello, goodbye string) Option {
	return func(c *Config) {
		c.HelloMsg = hello
		c.GoodbyeMsg = goodbye
	}
}

func defaultConfig() Config {
	return Config{
		DefaultPrompt:       ">> ",
		ContinuePrompt:      ".. ",
		ReverseSearchPrompt: "(reverse-i-search): ",
		HistoryFilepath:     ".repl.history",
		Evaluator:           func(string) error { return nil },
	}
}

// validate checks the builder preconditions named by the editor's external
// interface: default_prompt and continue_prompt must cost the same number
// of terminal columns.
func (c Config) validate() error {
	if grapheme.Count(c.DefaultPrompt) != grapheme.Count(c.ContinuePrompt) {
		return fmt.Errorf("replline: default prompt %q and continue prompt %q must have equal grapheme length", c.DefaultPrompt, c.ContinuePrompt)
	}
	return nil
}
