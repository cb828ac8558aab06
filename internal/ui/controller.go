// Package ui holds the editor page state and its event handling. A runtime
// (the terminal client, or a test) feeds Events into Controller.Dispatch and
// runs the Commands it gets back, dispatching their results in turn. All
// Controller methods must be called from that single event loop.
package ui

import (
	"context"
	"strings"
	"time"

	"essaydesk/internal/textstats"
	"essaydesk/internal/types"
)

// Labels and messages shown by the editor.
const (
	SubmitLabel     = "Check Grammar"
	SubmitBusyLabel = "Checking..."
	SaveLabel       = "Save Essay"
	SaveBusyLabel   = "Saving..."

	ErrEmptyEssay = "Cannot save an empty essay."
	ErrSaveFailed = "An error occurred while saving. Please try again."
)

// Backend is the server side of the editor.
type Backend interface {
	Correct(ctx context.Context, text string) (types.CorrectionResponse, error)
	Save(ctx context.Context, text string, stats types.Stats) (string, error)
}

// Command is asynchronous work requested by a handler. Its result is
// dispatched back into the controller.
type Command func(ctx context.Context) Event

type Option func(*Controller)

// WithAfter replaces the timer source used by the clock and stopwatch.
func WithAfter(after func(time.Duration) <-chan time.Time) Option {
	return func(c *Controller) { c.after = after }
}

// WithNow replaces the wall clock.
func WithNow(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller is the state of one editor page session.
type Controller struct {
	backend Backend
	prefs   Preferences
	now     func() time.Time
	after   func(time.Duration) <-chan time.Time

	text       string
	words      int
	paragraphs int
	backspaces int

	original  string
	corrected string

	busy        bool
	submitLabel string
	saveLabel   string
	inlineError string
	alert       string
	navError    string

	loaded    bool
	darkMode  bool
	clockText string
	stopwatch Stopwatch
}

func New(backend Backend, prefs Preferences, opts ...Option) *Controller {
	if prefs == nil {
		prefs = NewMemoryPreferences()
	}
	c := &Controller{
		backend: backend,
		prefs:   prefs,
		now:     time.Now,
		after:   time.After,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reload()
	return c
}

// reload resets everything a browser page reload would reset.
func (c *Controller) reload() {
	c.backspaces = 0
	c.busy = false
	c.submitLabel = SubmitLabel
	c.saveLabel = SaveLabel
	c.inlineError = ""
	c.alert = ""
	c.navError = ""
	c.stopwatch = Stopwatch{timer: c.stopwatch.timer + 1}
	c.darkMode = darkModeStored(c.prefs)
	c.setText(c.text)
}

func (c *Controller) setText(text string) {
	c.text = text
	c.words, c.paragraphs = textstats.Counts(text)
}

func (c *Controller) Text() string { return c.text }

// Stats returns the current word, paragraph and backspace counts.
func (c *Controller) Stats() types.Stats {
	return types.Stats{
		WordCount:      c.words,
		ParagraphCount: c.paragraphs,
		BackspaceCount: c.backspaces,
	}
}

// Original is the text that produced Corrected on the last submission.
func (c *Controller) Original() string  { return c.original }
func (c *Controller) Corrected() string { return c.corrected }

// ButtonsDisabled reports whether both the submit and save buttons are
// disabled.
func (c *Controller) ButtonsDisabled() bool { return c.busy }
func (c *Controller) SubmitLabel() string   { return c.submitLabel }
func (c *Controller) SaveLabel() string     { return c.saveLabel }
func (c *Controller) InlineError() string   { return c.inlineError }

// Alert is the pending blocking message, empty when none is shown.
func (c *Controller) Alert() string { return c.alert }

// NavigationError describes a failed form submission.
func (c *Controller) NavigationError() string { return c.navError }

func (c *Controller) DarkMode() bool { return c.darkMode }

// BodyClass is the CSS class the page body carries.
func (c *Controller) BodyClass() string {
	if c.darkMode {
		return DarkModeClass
	}
	return ""
}

func (c *Controller) ClockText() string { return c.clockText }

func (c *Controller) Stopwatch() Stopwatch { return c.stopwatch }

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
