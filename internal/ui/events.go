package ui

import (
	"context"
	"time"

	"essaydesk/internal/types"
)

// ClockLayout is the hour:minute format of the clock display.
const ClockLayout = "3:04 PM"

const tickInterval = time.Second

// KeyBackspace is the key name counted by the backspace statistic.
const KeyBackspace = "Backspace"

// Event is something that happened on the page.
type Event interface {
	event()
}

// Loaded is dispatched once when the page is first shown.
type Loaded struct{}

// TextChanged carries the full editor contents after an edit.
type TextChanged struct{ Text string }

// KeyPressed is a raw key press in the editor.
type KeyPressed struct{ Key string }

type SubmitRequested struct{}

// SubmitCompleted is the outcome of a form submission.
type SubmitCompleted struct {
	Result types.CorrectionResponse
	Err    error
}

type SaveRequested struct{}

// SaveCompleted is the outcome of a save request.
type SaveCompleted struct {
	Message string
	Err     error
}

type AlertDismissed struct{}

type DarkModeToggled struct{}

type ClockTicked struct{ Now time.Time }

type StopwatchStarted struct{}

type StopwatchStopped struct{}

type StopwatchReset struct{}

// StopwatchTicked is one increment of the stopwatch timer identified by Timer.
type StopwatchTicked struct{ Timer int }

func (Loaded) event()           {}
func (TextChanged) event()      {}
func (KeyPressed) event()       {}
func (SubmitRequested) event()  {}
func (SubmitCompleted) event()  {}
func (SaveRequested) event()    {}
func (SaveCompleted) event()    {}
func (AlertDismissed) event()   {}
func (DarkModeToggled) event()  {}
func (ClockTicked) event()      {}
func (StopwatchStarted) event() {}
func (StopwatchStopped) event() {}
func (StopwatchReset) event()   {}
func (StopwatchTicked) event()  {}

// blockedByAlert reports whether ev is user input, which an open alert
// swallows. Timers and in-flight results still arrive.
func blockedByAlert(ev Event) bool {
	switch ev.(type) {
	case ClockTicked, StopwatchTicked, SubmitCompleted, SaveCompleted, AlertDismissed:
		return false
	}
	return true
}

// Dispatch applies ev to the controller and returns follow-up work, or nil.
func (c *Controller) Dispatch(ev Event) Command {
	if c.alert != "" && blockedByAlert(ev) {
		return nil
	}

	switch ev := ev.(type) {
	case Loaded:
		if c.loaded {
			return nil
		}
		c.loaded = true
		c.darkMode = darkModeStored(c.prefs)
		c.clockText = c.now().Format(ClockLayout)
		return c.clockTick()
	case TextChanged:
		c.setText(ev.Text)
	case KeyPressed:
		if ev.Key == KeyBackspace {
			c.backspaces++
		}
	case SubmitRequested:
		return c.submit()
	case SubmitCompleted:
		c.finishSubmit(ev)
	case SaveRequested:
		return c.save()
	case SaveCompleted:
		c.finishSave(ev)
	case AlertDismissed:
		c.alert = ""
	case DarkModeToggled:
		c.toggleDarkMode()
	case ClockTicked:
		c.clockText = ev.Now.Format(ClockLayout)
		return c.clockTick()
	case StopwatchStarted:
		if c.stopwatch.Running {
			return nil
		}
		c.stopwatch.Running = true
		c.stopwatch.timer++
		return c.stopwatchTick(c.stopwatch.timer)
	case StopwatchStopped:
		c.stopwatch.Running = false
		c.stopwatch.timer++
	case StopwatchReset:
		c.stopwatch = Stopwatch{timer: c.stopwatch.timer + 1}
	case StopwatchTicked:
		if !c.stopwatch.Running || ev.Timer != c.stopwatch.timer {
			return nil
		}
		c.stopwatch.Elapsed++
		return c.stopwatchTick(ev.Timer)
	}
	return nil
}

func (c *Controller) submit() Command {
	if c.busy {
		return nil
	}
	c.busy = true
	c.submitLabel = SubmitBusyLabel
	c.navError = ""
	text := c.text
	return func(ctx context.Context) Event {
		res, err := c.backend.Correct(ctx, text)
		return SubmitCompleted{Result: res, Err: err}
	}
}

// finishSubmit stands in for the page reload that follows a form post.
func (c *Controller) finishSubmit(ev SubmitCompleted) {
	if ev.Err != nil {
		c.busy = false
		c.submitLabel = SubmitLabel
		c.navError = ev.Err.Error()
		return
	}
	c.original = ev.Result.Original
	c.corrected = ev.Result.Corrected
	c.text = ev.Result.Original
	c.reload()
}

func (c *Controller) save() Command {
	if c.busy {
		return nil
	}
	if isBlank(c.text) {
		c.inlineError = ErrEmptyEssay
		return nil
	}
	c.inlineError = ""
	c.busy = true
	c.saveLabel = SaveBusyLabel
	text, stats := c.text, c.Stats()
	return func(ctx context.Context) Event {
		msg, err := c.backend.Save(ctx, text, stats)
		return SaveCompleted{Message: msg, Err: err}
	}
}

func (c *Controller) finishSave(ev SaveCompleted) {
	defer func() {
		c.busy = false
		c.saveLabel = SaveLabel
	}()
	if ev.Err != nil {
		c.inlineError = ErrSaveFailed
		return
	}
	c.alert = ev.Message
}

func (c *Controller) clockTick() Command {
	return func(ctx context.Context) Event {
		select {
		case now := <-c.after(tickInterval):
			return ClockTicked{Now: now}
		case <-ctx.Done():
			return nil
		}
	}
}

func (c *Controller) stopwatchTick(timer int) Command {
	return func(ctx context.Context) Event {
		select {
		case <-c.after(tickInterval):
			return StopwatchTicked{Timer: timer}
		case <-ctx.Done():
			return nil
		}
	}
}
