// Package screenshot captures desktop and mobile page screenshots. The
// provider is selected at startup; environments without a browser run the
// Disabled provider, which is not an error condition for the audit.
package screenshot

import (
	"context"
	"encoding/base64"
	"log"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"

	"github.com/mikegehrke/webcheck360/audit"
)

const captureTimeout = 30 * time.Second

// Provider captures screenshots for a URL. Implementations never return
// an error; a failed capture yields empty references.
type Provider interface {
	Capture(ctx context.Context, targetURL string) audit.Screenshots
}

// Disabled returns no screenshots.
type Disabled struct{}

// Capture always returns empty references.
func (Disabled) Capture(context.Context, string) audit.Screenshots {
	return audit.Screenshots{}
}

// Chrome captures screenshots with a headless Chromium instance.
type Chrome struct {
	execPath string
}

// NewChrome creates the chromedp-backed provider. execPath optionally
// points at a custom Chromium binary.
func NewChrome(execPath string) *Chrome {
	return &Chrome{execPath: execPath}
}

// Capture renders the page twice, once per viewport, and returns the
// shots as PNG data URLs. Either shot may be missing.
func (c *Chrome) Capture(ctx context.Context, targetURL string) audit.Screenshots {
	var shots audit.Screenshots
	if desktop, err := c.capture(ctx, targetURL, 1920, 1080, false); err != nil {
		log.Printf("screenshot: desktop capture failed for %s: %v", targetURL, err)
	} else {
		shots.Desktop = desktop
	}
	if mobile, err := c.capture(ctx, targetURL, 390, 844, true); err != nil {
		log.Printf("screenshot: mobile capture failed for %s: %v", targetURL, err)
	} else {
		shots.Mobile = mobile
	}
	return shots
}

func (c *Chrome) capture(ctx context.Context, targetURL string, width, height int64, mobile bool) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("mute-audio", true),
	)
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, captureTimeout)
	defer cancelTimeout()

	var buf []byte
	err := chromedp.Run(browserCtx,
		emulation.SetDeviceMetricsOverride(width, height, 1, mobile),
		chromedp.Navigate(targetURL),
		chromedp.Sleep(2*time.Second),
		chromedp.CaptureScreenshot(&buf),
	)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf), nil
}
