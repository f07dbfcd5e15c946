package screener

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/finquant/internal/common"
	"github.com/ternarybob/finquant/internal/interfaces"
	"github.com/ternarybob/finquant/internal/models"
)

// ChromeSession drives a headless Chrome through the screener.in search
// flow. It is single-use: one Start, one Search, then Close.
type ChromeSession struct {
	config common.ScreenerConfig
	logger arbor.ILogger
	now    func() time.Time

	mu         sync.Mutex
	state      models.SessionState
	browserCtx context.Context
	release    context.CancelFunc
	closeOnce  sync.Once
	query      string
	page       *models.RenderedPage
}

// NewChromeSession creates an unstarted session
func NewChromeSession(config common.ScreenerConfig, logger arbor.ILogger) *ChromeSession {
	return &ChromeSession{
		config: config,
		logger: logger,
		now:    time.Now,
		state:  models.SessionUnstarted,
	}
}

// Start launches the browser and checks that it responds.
func (s *ChromeSession) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.SessionUnstarted {
		return fmt.Errorf("%w: start called in state %s", models.ErrSessionState, s.state)
	}

	startTime := time.Now()
	s.logger.Debug().
		Bool("headless", s.config.Headless).
		Str("exec_path", s.config.ExecPath).
		Msg("Starting browser session")

	s.browserCtx, s.release = newBrowser(s.config)

	if err := s.launch(ctx, s.config.StartupTimeout.Std()); err != nil {
		s.failLocked()
		return fmt.Errorf("%w: browser failed to launch: %v", models.ErrDocumentUnavailable, err)
	}

	if err := s.run(ctx, s.config.StartupTimeout.Std(), chromedp.Navigate("about:blank")); err != nil {
		s.failLocked()
		return fmt.Errorf("%w: browser failed startup test: %v", models.ErrDocumentUnavailable, err)
	}

	s.state = models.SessionStarted
	s.logger.Debug().Dur("startup_time", time.Since(startTime)).Msg("Browser session started")
	return nil
}

// Search submits the query through the home page search box and waits for
// the company page anchors.
func (s *ChromeSession) Search(ctx context.Context, query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.SessionStarted {
		return fmt.Errorf("%w: search called in state %s", models.ErrSessionState, s.state)
	}

	s.query = query
	s.state = models.SessionSearchSubmitted
	s.logger.Info().Str("query", query).Str("url", s.config.BaseURL).Msg("Searching company")

	// Typing alone does not wake the site's autocomplete; the input event does
	dispatchInput := fmt.Sprintf(
		`document.querySelector(%s).dispatchEvent(new Event('input', {bubbles: true}))`,
		strconv.Quote(selectorSearchInput),
	)

	err := s.run(ctx, s.config.NavigationTimeout.Std(),
		chromedp.Navigate(s.config.BaseURL),
		chromedp.WaitReady(selectorHomeSearch, chromedp.ByQuery),
		chromedp.WaitReady(selectorSearchInput, chromedp.ByQuery),
		chromedp.Focus(selectorSearchInput, chromedp.ByQuery),
		chromedp.SetValue(selectorSearchInput, query, chromedp.ByQuery),
		chromedp.Evaluate(dispatchInput, nil),
		chromedp.SendKeys(selectorSearchInput, kb.Enter, chromedp.ByQuery),
	)
	if err != nil {
		s.failLocked()
		return fmt.Errorf("%w: search for %q failed: %v", models.ErrDocumentUnavailable, query, err)
	}

	var html, location string
	err = s.run(ctx, s.config.ReadyTimeout.Std(),
		chromedp.WaitReady(selectorProfitLoss, chromedp.ByQuery),
		chromedp.WaitReady(selectorAnalysis, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.Location(&location),
	)
	if err != nil {
		s.failLocked()
		return fmt.Errorf("%w: company page for %q not ready within %s: %v",
			models.ErrDocumentUnavailable, query, s.config.ReadyTimeout.Std(), err)
	}

	s.page = &models.RenderedPage{
		HTML:       html,
		URL:        location,
		Query:      query,
		CapturedAt: s.now(),
	}
	s.state = models.SessionDocumentReady

	s.logger.Info().Str("query", query).Str("url", location).Int("html_bytes", len(html)).Msg("Company page loaded")
	return nil
}

// Page returns the captured company page.
func (s *ChromeSession) Page() (*models.RenderedPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.SessionDocumentReady {
		return nil, fmt.Errorf("%w: page requested in state %s", models.ErrSessionState, s.state)
	}
	return s.page, nil
}

// State reports the lifecycle state.
func (s *ChromeSession) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close tears down the browser. It is idempotent and safe in every state.
func (s *ChromeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closeOnce.Do(func() {
		if s.release != nil {
			s.release()
			s.logger.Debug().Str("state", s.state.String()).Msg("Browser session closed")
		}
	})
	return nil
}

// launch allocates the browser process. The process lives as long as the
// context of the first Run, so that Run gets browserCtx itself; the bound
// is applied by releasing the browser if it has not come up in time.
func (s *ChromeSession) launch(ctx context.Context, timeout time.Duration) error {
	timer := time.AfterFunc(timeout, s.release)
	stop := context.AfterFunc(ctx, s.release)

	err := chromedp.Run(s.browserCtx)

	timedOut := !timer.Stop()
	cancelled := !stop()
	switch {
	case timedOut:
		return fmt.Errorf("no response within %s", timeout)
	case cancelled:
		return ctx.Err()
	}
	return err
}

// run executes actions against the already launched browser, bounded by
// timeout and by ctx. Cancelling a run does not stop the browser.
func (s *ChromeSession) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(s.browserCtx, timeout)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// failLocked moves to Failed and releases the browser early; Close stays a no-op.
func (s *ChromeSession) failLocked() {
	s.state = models.SessionFailed
	s.closeOnce.Do(func() {
		if s.release != nil {
			s.release()
		}
	})
}

// ChromeSessionFactory hands out a fresh ChromeSession per invocation.
type ChromeSessionFactory struct {
	config common.ScreenerConfig
	logger arbor.ILogger
}

// NewChromeSessionFactory creates a factory for the given screener config
func NewChromeSessionFactory(config common.ScreenerConfig, logger arbor.ILogger) *ChromeSessionFactory {
	return &ChromeSessionFactory{config: config, logger: logger}
}

// NewSession implements interfaces.SessionFactory
func (f *ChromeSessionFactory) NewSession() interfaces.DocumentSession {
	return NewChromeSession(f.config, f.logger)
}

var (
	_ interfaces.DocumentSession = (*ChromeSession)(nil)
	_ interfaces.SessionFactory  = (*ChromeSessionFactory)(nil)
)
