package carus

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/brogergvhs/choirscrape/internal/ui"
	"github.com/brogergvhs/choirscrape/internal/util"
)

var acceptLabels = []string{"Alle akzeptieren", "Akzeptieren", "Alles akzeptieren"}

const removeCookiebotJS = `() => {
	const toRemove = [];
	['CybotCookiebotDialog', 'CybotCookiebotDialogBodyUnderlay',
	 'CybotCookiebotDialogBodyContent', 'CybotCookiebotDialogRoot'].forEach(id => {
		const el = document.getElementById(id);
		if (el) toRemove.push(el);
	});
	document.querySelectorAll('[id^="CybotCookiebot"], .CybotMultilevel, .CybotCookiebotDialogActive')
		.forEach(e => toRemove.push(e));
	toRemove.forEach(e => e.remove());
}`

type BrowserOptions struct {
	// Show runs Chromium with a visible window.
	Show bool
	// Bin overrides the browser binary; empty lets rod find or download one.
	Bin        string
	NavTimeout time.Duration
}

// Session is a Chromium instance with the choir book page loaded.
type Session struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	log      *ui.Logger
}

// OpenSession starts the browser, loads pageURL, waits for the network to
// settle and clears the cookie banner.
func OpenSession(ctx context.Context, pageURL string, opts BrowserOptions, log *ui.Logger) (*Session, error) {
	l := launcher.New().Context(ctx).Headless(!opts.Show)
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	s := &Session{launcher: l, log: log}

	s.browser = rod.New().ControlURL(controlURL).Context(ctx)
	if err := s.browser.Connect(); err != nil {
		s.launcher.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	s.page, err = s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("opening tab: %w", err)
	}

	navTimeout := opts.NavTimeout
	if navTimeout <= 0 {
		navTimeout = 60 * time.Second
	}

	nav := s.page.Timeout(navTimeout)
	waitIdle := nav.WaitRequestIdle(500*time.Millisecond, nil, nil, nil)
	if err := nav.Navigate(pageURL); err != nil {
		nav.CancelTimeout()
		_ = s.Close()
		return nil, fmt.Errorf("loading %s: %w", pageURL, err)
	}
	waitIdle()
	nav.CancelTimeout()

	if err := util.Sleep(ctx, time.Second); err != nil {
		_ = s.Close()
		return nil, err
	}

	log.Infof("page loaded, removing cookie banner")
	s.removeCookieBanner(ctx)

	return s, nil
}

func (s *Session) removeCookieBanner(ctx context.Context) {
	for _, label := range acceptLabels {
		found, btn, err := s.page.HasR("button", "/"+label+"/i")
		if err != nil || !found {
			continue
		}

		if visible, err := btn.Visible(); err != nil || !visible {
			continue
		}

		if err := clickWithin(btn, 1500*time.Millisecond); err != nil {
			s.log.Debugf("cookie button %q: %v", label, err)
			continue
		}
		_ = util.Sleep(ctx, 200*time.Millisecond)
	}

	if _, err := s.page.Eval(removeCookiebotJS); err != nil {
		s.log.Warnf("removing cookie banner: %v", err)
		return
	}

	s.log.Infof("cookie banner removed")
	_ = util.Sleep(ctx, 200*time.Millisecond)
}

// Entries lists the work links currently on the page.
func (s *Session) Entries() ([]Entry, error) {
	links, err := s.page.Elements(EntrySelector)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	out := make([]Entry, 0, len(links))
	for _, link := range links {
		out = append(out, &rodEntry{page: s.page, link: link, panelID: panelID(link)})
	}

	return out, nil
}

func (s *Session) Close() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
	}
	s.launcher.Kill()
	s.launcher.Cleanup()

	return err
}

func panelID(link *rod.Element) string {
	if v, err := link.Attribute("aria-controls"); err == nil && v != nil && *v != "" {
		return *v
	}
	if v, err := link.Attribute("href"); err == nil && v != nil {
		return strings.TrimLeft(*v, "#")
	}

	return ""
}

type rodEntry struct {
	page    *rod.Page
	link    *rod.Element
	panelID string
}

func (e *rodEntry) PanelID() string {
	return e.panelID
}

func (e *rodEntry) Click(timeout time.Duration) error {
	return clickWithin(e.link, timeout)
}

// clickWithin clicks el and releases the timeout once the click returns.
func clickWithin(el *rod.Element, timeout time.Duration) error {
	scoped := el.Timeout(timeout)
	defer scoped.CancelTimeout()

	return scoped.Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodEntry) DispatchClick() error {
	_, err := e.link.Eval(`() => this.dispatchEvent(new MouseEvent('click', {bubbles: true, cancelable: true, view: window}))`)
	return err
}

func (e *rodEntry) ScrollIntoView() error {
	return e.link.ScrollIntoView()
}

func (e *rodEntry) ForceClick() error {
	_, err := e.link.Eval(`() => this.click()`)
	return err
}

func (e *rodEntry) panel() (*rod.Element, bool) {
	if e.panelID == "" {
		return nil, false
	}

	found, el, err := e.page.Has(fmt.Sprintf(`div[id=%q]`, e.panelID))
	if err != nil || !found {
		return nil, false
	}

	return el, true
}

func (e *rodEntry) PanelVisible() bool {
	el, ok := e.panel()
	if !ok {
		return false
	}

	visible, err := el.Visible()
	return err == nil && visible
}

func (e *rodEntry) InfoVisible(timeout time.Duration) bool {
	el, ok := e.panel()
	if !ok {
		return false
	}

	scoped := el.Timeout(timeout)
	defer scoped.CancelTimeout()

	// info inherits the scoped deadline, so WaitVisible is bounded too
	info, err := scoped.Element(infoSelector)
	if err != nil {
		return false
	}

	return info.WaitVisible() == nil
}

func (e *rodEntry) PanelHTML() (string, error) {
	el, ok := e.panel()
	if !ok {
		return "", fmt.Errorf("panel %q not found", e.panelID)
	}

	res, err := el.Eval(`() => this.innerHTML`)
	if err != nil {
		return "", err
	}

	return res.Value.Str(), nil
}

func (e *rodEntry) LinkHTML() (string, error) {
	return e.link.HTML()
}
