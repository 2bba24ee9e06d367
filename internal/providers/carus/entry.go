package carus

import (
	"context"
	"time"

	"github.com/brogergvhs/choirscrape/internal/ui"
	"github.com/brogergvhs/choirscrape/internal/util"
)

// Entry is one work link of the choir book page together with the
// accordion panel it controls.
type Entry interface {
	PanelID() string

	Click(timeout time.Duration) error
	DispatchClick() error
	ScrollIntoView() error
	// ForceClick calls the DOM click() of the link, ignoring overlays.
	ForceClick() error

	// PanelVisible reports false when the panel is missing.
	PanelVisible() bool
	// InfoVisible waits up to timeout for the panel's info block to show.
	InfoVisible(timeout time.Duration) bool
	PanelHTML() (string, error)
	LinkHTML() (string, error)
}

type Timing struct {
	ClickTimeout   time.Duration
	ClickSettle    time.Duration
	ScrollSettle   time.Duration
	InfoTimeout    time.Duration
	PollInterval   time.Duration
	StablePolls    int
	LoadTimeout    time.Duration
	RecheckTimeout time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		ClickTimeout:   5 * time.Second,
		ClickSettle:    200 * time.Millisecond,
		ScrollSettle:   300 * time.Millisecond,
		InfoTimeout:    1500 * time.Millisecond,
		PollInterval:   200 * time.Millisecond,
		StablePolls:    3,
		LoadTimeout:    5 * time.Second,
		RecheckTimeout: 1500 * time.Millisecond,
	}
}

type strategy struct {
	name     string
	try      func(Entry, Timing) error
	settle   func(Timing) time.Duration
	announce bool
}

var openStrategies = []strategy{
	{
		name:   "click",
		try:    func(e Entry, t Timing) error { return e.Click(t.ClickTimeout) },
		settle: func(t Timing) time.Duration { return t.ClickSettle },
	},
	{
		name:   "dispatched click",
		try:    func(e Entry, _ Timing) error { return e.DispatchClick() },
		settle: func(t Timing) time.Duration { return t.ClickSettle },
	},
	{
		name: "scroll and click",
		try: func(e Entry, t Timing) error {
			_ = e.ScrollIntoView()
			return e.Click(t.ClickTimeout)
		},
		settle: func(t Timing) time.Duration { return t.ScrollSettle },
	},
	{
		name:     "forced click",
		try:      func(e Entry, _ Timing) error { return e.ForceClick() },
		settle:   func(t Timing) time.Duration { return t.ScrollSettle },
		announce: true,
	},
}

// OpenEntry tries increasingly forceful ways of opening the entry's panel
// and waits for its content once it is visible. It reports whether the
// panel could be opened.
func OpenEntry(ctx context.Context, e Entry, t Timing, log *ui.Logger) (bool, error) {
	for _, s := range openStrategies {
		if err := s.try(e, t); err != nil {
			log.Debugf("%s on %s: %v", s.name, e.PanelID(), err)
		} else if s.announce {
			log.Infof("%s: %s used", e.PanelID(), s.name)
		}

		if err := util.Sleep(ctx, s.settle(t)); err != nil {
			return false, err
		}

		if e.PanelVisible() {
			return true, WaitPanelLoaded(ctx, e, t, t.LoadTimeout)
		}
	}

	return false, nil
}

// WaitPanelLoaded returns as soon as the panel's info block is visible.
// Otherwise it polls the panel HTML until it stops changing or timeout
// expires; a panel that never settles is not an error.
func WaitPanelLoaded(ctx context.Context, e Entry, t Timing, timeout time.Duration) error {
	start := time.Now()

	if e.InfoVisible(t.InfoTimeout) {
		return nil
	}

	deadline := start.Add(timeout)
	prev := ""
	havePrev := false
	stable := 0

	for time.Now().Before(deadline) {
		current, err := e.PanelHTML()
		if err != nil {
			current = ""
		}

		if havePrev && current == prev {
			stable++
			if stable >= t.StablePolls {
				return nil
			}
		} else {
			stable = 0
			prev = current
			havePrev = true
		}

		if err := util.Sleep(ctx, t.PollInterval); err != nil {
			return err
		}
	}

	return nil
}
