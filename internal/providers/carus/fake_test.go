package carus

import (
	"errors"
	"time"
)

// fakeEntry opens its panel after a given number of open attempts and
// serves a fixed panel HTML.
type fakeEntry struct {
	id        string
	linkHTML  string
	panelHTML string

	// opensAfter is the 1-based attempt that makes the panel visible; 0 never opens.
	opensAfter int
	infoShown  bool
	// htmlSeq, when set, is returned by successive PanelHTML calls; the last
	// element repeats.
	htmlSeq []string

	attempts  []string
	htmlCalls int
}

func (f *fakeEntry) PanelID() string { return f.id }

func (f *fakeEntry) attempt(name string) error {
	f.attempts = append(f.attempts, name)
	return nil
}

func (f *fakeEntry) Click(time.Duration) error { return f.attempt("click") }
func (f *fakeEntry) DispatchClick() error      { return f.attempt("dispatch") }
func (f *fakeEntry) ForceClick() error         { return f.attempt("force") }

func (f *fakeEntry) ScrollIntoView() error {
	f.attempts = append(f.attempts, "scroll")
	return errors.New("not scrollable")
}

func (f *fakeEntry) clicks() int {
	n := 0
	for _, a := range f.attempts {
		if a != "scroll" {
			n++
		}
	}
	return n
}

func (f *fakeEntry) PanelVisible() bool {
	return f.opensAfter > 0 && f.clicks() >= f.opensAfter
}

func (f *fakeEntry) InfoVisible(time.Duration) bool { return f.infoShown }

func (f *fakeEntry) PanelHTML() (string, error) {
	f.htmlCalls++
	if len(f.htmlSeq) == 0 {
		return f.panelHTML, nil
	}

	i := f.htmlCalls - 1
	if i >= len(f.htmlSeq) {
		i = len(f.htmlSeq) - 1
	}
	return f.htmlSeq[i], nil
}

func (f *fakeEntry) LinkHTML() (string, error) { return f.linkHTML, nil }

func fastTiming() Timing {
	return Timing{
		ClickTimeout:   time.Millisecond,
		ClickSettle:    time.Millisecond,
		ScrollSettle:   time.Millisecond,
		InfoTimeout:    time.Millisecond,
		PollInterval:   time.Millisecond,
		StablePolls:    3,
		LoadTimeout:    time.Second,
		RecheckTimeout: time.Second,
	}
}

type memWriter struct {
	rows [][]string
	err  error
}

func (m *memWriter) Write(row []string) error {
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, row)
	return nil
}
