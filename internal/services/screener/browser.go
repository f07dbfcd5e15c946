package screener

import (
	"context"

	"github.com/chromedp/chromedp"

	"github.com/ternarybob/finquant/internal/common"
)

// allocatorOptions builds the Chrome launch flags for a session.
func allocatorOptions(config common.ScreenerConfig) []chromedp.ExecAllocatorOption {
	opts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", config.Headless),
		chromedp.Flag("disable-gpu", config.DisableGPU),
		chromedp.Flag("no-sandbox", config.NoSandbox),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("enable-automation", false),
		chromedp.WindowSize(config.WindowWidth, config.WindowHeight),
	)
	if config.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(config.UserAgent))
	}
	if config.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(config.ExecPath))
	}
	return opts
}

// newBrowser launches a browser process and returns its context together
// with a release function that tears down both the tab and the process.
func newBrowser(config common.ScreenerConfig) (context.Context, context.CancelFunc) {
	allocatorCtx, allocatorCancel := chromedp.NewExecAllocator(
		context.Background(),
		allocatorOptions(config)...,
	)
	browserCtx, browserCancel := chromedp.NewContext(allocatorCtx)

	return browserCtx, func() {
		browserCancel()
		allocatorCancel()
	}
}
