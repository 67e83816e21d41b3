// Package replline wires cmdbuf, edmode, renderer, term, and history into
// the editor's single-threaded event loop: read one key, mutate the mode,
// repaint, repeat.
package replline

import (
	"bufio"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/mattferris/replline/pkg/edmode"
	"github.com/mattferris/replline/pkg/history"
	"github.com/mattferris/replline/pkg/renderer"
	"github.com/mattferris/replline/pkg/replerr"
	"github.com/mattferris/replline/pkg/term"
)

// Editor owns the terminal, history, and mode machine for one REPL run.
type Editor struct {
	cfg Config

	term   *term.Terminal
	reader *bufio.Reader
	hist   *history.History
	ed     *edmode.Editor

	theme        *renderer.Theme
	renderState  *renderer.State
	width        int
}

// New builds an Editor from the given Options layered over the defaults,
// validates the builder preconditions, and loads the history file.
func New(opts ...Option) (*Editor, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Sink == nil {
		cfg.Sink = os.Stdout
	}
	if cfg.Input == nil {
		cfg.Input = os.Stdin
		cfg.InputFd = int(os.Stdin.Fd())
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	hist, err := history.ReadFromFile(cfg.HistoryFilepath)
	if err != nil {
		return nil, err
	}

	t := term.New(cfg.InputFd, cfg.Sink)
	width, _, err := t.Size()
	if err != nil || width <= 0 {
		width = 80
	}

	return &Editor{
		cfg:         cfg,
		term:        t,
		reader:      bufio.NewReader(cfg.Input),
		hist:        hist,
		ed:          edmode.New(hist),
		theme:       renderer.DefaultTheme(),
		renderState: renderer.NewState(),
		width:       width,
	}, nil
}

func (e *Editor) prompts() renderer.Prompts {
	return renderer.Prompts{
		Default:       e.cfg.DefaultPrompt,
		Continue:      e.cfg.ContinuePrompt,
		ReverseSearch: e.cfg.ReverseSearchPrompt,
	}
}

// Start runs the event loop until Ctrl-D is pressed or a fatal error
// occurs. On clean Ctrl-D exit it restores the terminal and calls
// os.Exit(0); it returns only on a fatal *replerr.Error.
func (e *Editor) Start() error {
	if err := e.term.EnableRaw(); err != nil {
		return err
	}

	if e.cfg.HelloMsg != "" {
		e.term.DisableRaw()
		fmt.Fprintln(e.cfg.Sink, e.cfg.HelloMsg)
		if err := e.term.EnableRaw(); err != nil {
			return err
		}
	}

	e.render()

	for {
		key, err := term.ReadKey(e.reader)
		if err != nil {
			e.shutdown()
			return replerr.Wrap(replerr.IO, err)
		}

		outcome := e.ed.Dispatch(key)

		switch outcome {
		case edmode.Exit:
			e.goodbye()
			return nil
		case edmode.Submit:
			if err := e.evaluate(); err != nil {
				e.shutdown()
				return err
			}
			e.renderState.Reset()
		}

		e.render()
	}
}

func (e *Editor) evaluate() error {
	submitted := e.ed.Submitted
	e.hist.Trim()
	if err := e.hist.WriteToFile(e.cfg.HistoryFilepath); err != nil {
		log.WithError(err).Warn("replline: failed to persist history")
	}

	if err := e.term.DisableRaw(); err != nil {
		return err
	}
	fmt.Fprint(e.cfg.Sink, "\r\n")
	evalErr := e.cfg.Evaluator(submitted.ToSourceCode())
	if err := e.term.EnableRaw(); err != nil {
		return err
	}
	if evalErr != nil {
		return replerr.Wrap(replerr.Formatting, evalErr)
	}
	return nil
}

func (e *Editor) render() {
	width, _, err := e.term.Size()
	if err == nil && width > 0 {
		e.width = width
	}
	renderer.Render(e.term, e.ed.Mode, e.width, e.theme, e.prompts(), e.renderState)
	if err := e.term.Flush(); err != nil {
		log.WithError(err).Debug("replline: flush failed")
	}
}

func (e *Editor) goodbye() {
	e.shutdown()
	if e.cfg.GoodbyeMsg != "" {
		fmt.Fprintln(e.cfg.Sink, e.cfg.GoodbyeMsg)
	}
	os.Exit(0)
}

// shutdown disables raw mode and leaves the cursor on its own line,
// guaranteed to run before any process-exit path.
func (e *Editor) shutdown() {
	fmt.Fprint(e.cfg.Sink, "\r\n")
	if err := e.term.DisableRaw(); err != nil {
		log.WithError(err).Warn("replline: failed to restore terminal state")
	}
}
