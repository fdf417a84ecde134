package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Reporter shows the state of a single step at a time.
type Reporter interface {
	Start(msg string)
	Stop()
	Success(msg string)
	Fail(msg string)
}

// Discard is a Reporter that shows nothing.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Start(string)   {}
func (discard) Stop()          {}
func (discard) Success(string) {}
func (discard) Fail(string)    {}

// Spinner is a Reporter that animates on a TTY and prints plain lines otherwise.
// All methods are nil-safe so callers can hold a nil *Spinner when progress is off.
type Spinner struct {
	mu      sync.Mutex
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	s       *spinner.Spinner
	active  bool
}

var _ Reporter = (*Spinner)(nil)

// NewSpinner creates a Spinner writing to out with the given capabilities.
func NewSpinner(out io.Writer, caps TerminalCapabilities) *Spinner {
	symbols := SelectSymbols(caps)
	sp := &Spinner{out: out, caps: caps, symbols: symbols}
	if caps.IsTTY {
		sp.s = spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(out))
		if caps.SupportsColor {
			_ = sp.s.Color("cyan")
		}
	}
	return sp
}

// Start begins showing msg.
func (sp *Spinner) Start(msg string) {
	if sp == nil {
		return
	}
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.s == nil {
		fmt.Fprintf(sp.out, "%s...\n", msg)
		return
	}
	sp.s.Suffix = " " + msg
	sp.s.Start()
	sp.active = true
}

// Stop clears the spinner without a status line.
func (sp *Spinner) Stop() {
	if sp == nil {
		return
	}
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.stopLocked()
}

// Success stops the spinner and prints msg with a checkmark.
func (sp *Spinner) Success(msg string) {
	sp.finish(sp.symbolOK(), msg)
}

// Fail stops the spinner and prints msg with a failure mark.
func (sp *Spinner) Fail(msg string) {
	sp.finish(sp.symbolFail(), msg)
}

func (sp *Spinner) finish(symbol, msg string) {
	if sp == nil {
		return
	}
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.stopLocked()
	fmt.Fprintf(sp.out, "%s %s\n", symbol, msg)
}

func (sp *Spinner) stopLocked() {
	if sp.s != nil && sp.active {
		sp.s.Stop()
		sp.active = false
	}
}

func (sp *Spinner) symbolOK() string {
	if sp == nil {
		return ""
	}
	if sp.caps.SupportsColor {
		return color.New(color.FgGreen).Sprint(sp.symbols.Checkmark)
	}
	return sp.symbols.Checkmark
}

func (sp *Spinner) symbolFail() string {
	if sp == nil {
		return ""
	}
	if sp.caps.SupportsColor {
		return color.New(color.FgRed).Sprint(sp.symbols.Failure)
	}
	return sp.symbols.Failure
}
