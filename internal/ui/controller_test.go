package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essaydesk/internal/types"
)

type fakeBackend struct {
	saveCalls    int
	savedText    string
	savedStats   types.Stats
	saveMessage  string
	saveErr      error
	correctCalls int
	correctRes   types.CorrectionResponse
	correctErr   error
}

func (f *fakeBackend) Correct(_ context.Context, text string) (types.CorrectionResponse, error) {
	f.correctCalls++
	if f.correctErr != nil {
		return types.CorrectionResponse{}, f.correctErr
	}
	res := f.correctRes
	if res.Original == "" {
		res.Original = text
	}
	return res, nil
}

func (f *fakeBackend) Save(_ context.Context, text string, stats types.Stats) (string, error) {
	f.saveCalls++
	f.savedText = text
	f.savedStats = stats
	return f.saveMessage, f.saveErr
}

var fixedNow = time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC)

// instantAfter fires immediately so timer commands can be driven step by step.
func instantAfter(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- fixedNow
	return ch
}

func newTestController(b Backend, prefs Preferences) *Controller {
	return New(b, prefs, WithAfter(instantAfter), WithNow(func() time.Time { return fixedNow }))
}

func run(t *testing.T, c *Controller, cmd Command) Command {
	t.Helper()
	require.NotNil(t, cmd)
	return c.Dispatch(cmd(context.Background()))
}

func TestInitialState(t *testing.T) {
	c := newTestController(&fakeBackend{}, nil)
	assert.False(t, c.ButtonsDisabled())
	assert.Equal(t, SubmitLabel, c.SubmitLabel())
	assert.Equal(t, SaveLabel, c.SaveLabel())
	assert.Equal(t, types.Stats{}, c.Stats())
	assert.Equal(t, ZeroElapsed, c.Stopwatch().Text())
	assert.True(t, c.Stopwatch().StartVisible())
	assert.False(t, c.Stopwatch().StopVisible())
	assert.Empty(t, c.BodyClass())
}

func TestLiveStats(t *testing.T) {
	c := newTestController(&fakeBackend{}, nil)
	c.Dispatch(TextChanged{Text: "Hello world.\nSecond line here."})
	assert.Equal(t, 5, c.Stats().WordCount)
	assert.Equal(t, 2, c.Stats().ParagraphCount)

	c.Dispatch(TextChanged{Text: ""})
	assert.Equal(t, 0, c.Stats().WordCount)
	assert.Equal(t, 0, c.Stats().ParagraphCount)
}

func TestBackspaceCountsKeystrokes(t *testing.T) {
	c := newTestController(&fakeBackend{}, nil)
	for i := 1; i <= 3; i++ {
		c.Dispatch(KeyPressed{Key: KeyBackspace})
		assert.Equal(t, i, c.Stats().BackspaceCount)
	}
	c.Dispatch(KeyPressed{Key: "a"})
	c.Dispatch(KeyPressed{Key: "Delete"})
	c.Dispatch(TextChanged{Text: "short"})
	assert.Equal(t, 3, c.Stats().BackspaceCount, "other keys and edits never change the count")
}

func TestSaveRejectsBlankText(t *testing.T) {
	for _, text := range []string{"", " ", "\n\t  \n"} {
		b := &fakeBackend{}
		c := newTestController(b, nil)
		c.Dispatch(TextChanged{Text: text})
		cmd := c.Dispatch(SaveRequested{})
		assert.Nil(t, cmd, "no request for %q", text)
		assert.Equal(t, 0, b.saveCalls)
		assert.Equal(t, ErrEmptyEssay, c.InlineError())
		assert.False(t, c.ButtonsDisabled())
	}
}

func TestSaveSuccess(t *testing.T) {
	b := &fakeBackend{saveMessage: "Essay saved successfully"}
	c := newTestController(b, nil)
	c.Dispatch(TextChanged{Text: "Hello world.\nSecond line here."})
	c.Dispatch(KeyPressed{Key: KeyBackspace})

	cmd := c.Dispatch(SaveRequested{})
	require.NotNil(t, cmd)
	assert.True(t, c.ButtonsDisabled())
	assert.Equal(t, SaveBusyLabel, c.SaveLabel())
	assert.Nil(t, c.Dispatch(SaveRequested{}), "duplicate click while in flight")
	assert.Nil(t, c.Dispatch(SubmitRequested{}))

	assert.Nil(t, run(t, c, cmd))
	assert.Equal(t, 1, b.saveCalls)
	assert.Equal(t, "Hello world.\nSecond line here.", b.savedText)
	assert.Equal(t, types.Stats{WordCount: 5, ParagraphCount: 2, BackspaceCount: 1}, b.savedStats)
	assert.Equal(t, "Essay saved successfully", c.Alert())
	assert.False(t, c.ButtonsDisabled())
	assert.Equal(t, SaveLabel, c.SaveLabel())
	assert.Empty(t, c.InlineError())
}

func TestSaveFailure(t *testing.T) {
	b := &fakeBackend{saveErr: errors.New("save failed: 500 Internal Server Error")}
	c := newTestController(b, nil)
	c.Dispatch(TextChanged{Text: "some text"})
	run(t, c, c.Dispatch(SaveRequested{}))

	assert.Equal(t, ErrSaveFailed, c.InlineError())
	assert.Empty(t, c.Alert())
	assert.False(t, c.ButtonsDisabled())
	assert.Equal(t, SaveLabel, c.SaveLabel())
}

func TestSaveClearsPreviousError(t *testing.T) {
	b := &fakeBackend{saveMessage: "ok"}
	c := newTestController(b, nil)
	c.Dispatch(SaveRequested{})
	require.Equal(t, ErrEmptyEssay, c.InlineError())

	c.Dispatch(TextChanged{Text: "now there is text"})
	cmd := c.Dispatch(SaveRequested{})
	assert.Empty(t, c.InlineError())
	run(t, c, cmd)
}

func TestAlertBlocksInput(t *testing.T) {
	b := &fakeBackend{saveMessage: "saved"}
	c := newTestController(b, nil)
	c.Dispatch(TextChanged{Text: "text"})
	run(t, c, c.Dispatch(SaveRequested{}))
	require.Equal(t, "saved", c.Alert())

	c.Dispatch(KeyPressed{Key: KeyBackspace})
	c.Dispatch(TextChanged{Text: "changed"})
	assert.Equal(t, 0, c.Stats().BackspaceCount)
	assert.Equal(t, "text", c.Text())

	c.Dispatch(AlertDismissed{})
	assert.Empty(t, c.Alert())
	c.Dispatch(KeyPressed{Key: KeyBackspace})
	assert.Equal(t, 1, c.Stats().BackspaceCount)
}

func TestSubmit(t *testing.T) {
	b := &fakeBackend{correctRes: types.CorrectionResponse{Corrected: "I am here."}}
	c := newTestController(b, nil)
	c.Dispatch(TextChanged{Text: "i am here"})
	c.Dispatch(KeyPressed{Key: KeyBackspace})

	cmd := c.Dispatch(SubmitRequested{})
	require.NotNil(t, cmd)
	assert.True(t, c.ButtonsDisabled())
	assert.Equal(t, SubmitBusyLabel, c.SubmitLabel())
	assert.Nil(t, c.Dispatch(SaveRequested{}))

	run(t, c, cmd)
	assert.Equal(t, 1, b.correctCalls)
	assert.Equal(t, "i am here", c.Original())
	assert.Equal(t, "I am here.", c.Corrected())
	assert.Equal(t, "i am here", c.Text())
	assert.False(t, c.ButtonsDisabled())
	assert.Equal(t, SubmitLabel, c.SubmitLabel())
	assert.Equal(t, 0, c.Stats().BackspaceCount, "reload resets the session counter")
	assert.Equal(t, 3, c.Stats().WordCount)
}

func TestSubmitFailure(t *testing.T) {
	b := &fakeBackend{correctErr: errors.New("connection refused")}
	c := newTestController(b, nil)
	c.Dispatch(TextChanged{Text: "text"})
	run(t, c, c.Dispatch(SubmitRequested{}))
	assert.Equal(t, "connection refused", c.NavigationError())
	assert.False(t, c.ButtonsDisabled())
	assert.Equal(t, "text", c.Text())
}

func TestDarkModeRoundTrip(t *testing.T) {
	prefs := NewMemoryPreferences()
	c := newTestController(&fakeBackend{}, prefs)

	c.Dispatch(DarkModeToggled{})
	assert.Equal(t, DarkModeClass, c.BodyClass())
	v, _ := prefs.Get(DarkModeKey)
	assert.Equal(t, DarkModeEnabled, v)

	c.Dispatch(DarkModeToggled{})
	assert.Empty(t, c.BodyClass())
	v, _ = prefs.Get(DarkModeKey)
	assert.Equal(t, DarkModeDisabled, v)
}

func TestDarkModeAppliedOnLoad(t *testing.T) {
	prefs := NewMemoryPreferences()
	require.NoError(t, prefs.Set(DarkModeKey, DarkModeEnabled))
	c := newTestController(&fakeBackend{}, prefs)
	c.Dispatch(Loaded{})
	assert.True(t, c.DarkMode())
	assert.Equal(t, DarkModeClass, c.BodyClass())
}

func TestClock(t *testing.T) {
	c := newTestController(&fakeBackend{}, nil)
	cmd := c.Dispatch(Loaded{})
	assert.Equal(t, "3:04 PM", c.ClockText())
	assert.Nil(t, c.Dispatch(Loaded{}), "second load starts no second clock")

	ev := cmd(context.Background())
	tick, ok := ev.(ClockTicked)
	require.True(t, ok)
	assert.Equal(t, fixedNow, tick.Now)
	assert.NotNil(t, c.Dispatch(ClockTicked{Now: fixedNow.Add(time.Hour)}), "clock keeps ticking")
	assert.Equal(t, "4:04 PM", c.ClockText())
}

func TestClockStopsOnCancel(t *testing.T) {
	c := New(&fakeBackend{}, nil, WithAfter(func(time.Duration) <-chan time.Time { return nil }))
	cmd := c.Dispatch(Loaded{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Nil(t, cmd(ctx))
}

func TestStopwatchStartStop(t *testing.T) {
	c := newTestController(&fakeBackend{}, nil)
	cmd := c.Dispatch(StopwatchStarted{})
	assert.True(t, c.Stopwatch().Running)
	assert.False(t, c.Stopwatch().StartVisible())
	assert.True(t, c.Stopwatch().StopVisible())

	for range 3 {
		cmd = run(t, c, cmd)
	}
	c.Dispatch(StopwatchStopped{})
	assert.Equal(t, "00:00:03", c.Stopwatch().Text())
	assert.True(t, c.Stopwatch().StartVisible())
	assert.False(t, c.Stopwatch().StopVisible())

	assert.Nil(t, c.Dispatch(cmd(context.Background())), "tick from the stopped timer is ignored")
	assert.Equal(t, "00:00:03", c.Stopwatch().Text())
}

func TestStopwatchResumeKeepsElapsed(t *testing.T) {
	c := newTestController(&fakeBackend{}, nil)
	run(t, c, c.Dispatch(StopwatchStarted{}))
	c.Dispatch(StopwatchStopped{})
	cmd := c.Dispatch(StopwatchStarted{})
	run(t, c, cmd)
	assert.Equal(t, "00:00:02", c.Stopwatch().Text())
	assert.Nil(t, c.Dispatch(StopwatchStarted{}), "already running")
}

func TestStopwatchReset(t *testing.T) {
	c := newTestController(&fakeBackend{}, nil)
	cmd := c.Dispatch(StopwatchStarted{})
	cmd = run(t, c, cmd)

	c.Dispatch(StopwatchReset{})
	assert.Equal(t, ZeroElapsed, c.Stopwatch().Text())
	assert.False(t, c.Stopwatch().Running)
	assert.True(t, c.Stopwatch().StartVisible())
	assert.False(t, c.Stopwatch().StopVisible())
	assert.Nil(t, c.Dispatch(cmd(context.Background())), "stale tick after reset")
	assert.Equal(t, ZeroElapsed, c.Stopwatch().Text())

	c.Dispatch(StopwatchReset{})
	assert.Equal(t, ZeroElapsed, c.Stopwatch().Text(), "reset from stopped")
}

func TestStopwatchKeepsTickingUnderAlert(t *testing.T) {
	b := &fakeBackend{saveMessage: "saved"}
	c := newTestController(b, nil)
	swCmd := c.Dispatch(StopwatchStarted{})
	c.Dispatch(TextChanged{Text: "x"})
	run(t, c, c.Dispatch(SaveRequested{}))
	require.NotEmpty(t, c.Alert())

	run(t, c, swCmd)
	assert.Equal(t, "00:00:01", c.Stopwatch().Text())
}

func TestFormatElapsed(t *testing.T) {
	cases := map[int]string{
		0:      "00:00:00",
		3:      "00:00:03",
		59:     "00:00:59",
		60:     "00:01:00",
		3661:   "01:01:01",
		86399:  "23:59:59",
		360000: "100:00:00",
		-5:     "00:00:00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatElapsed(in), "FormatElapsed(%d)", in)
	}
}
