// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package scrape holds the browser client used by the offline catalog
// scraper. It wraps go-rod with the small amount of lifecycle logic the
// scraper needs: launching a local headless Chrome (or attaching to a
// remote one), opening pages with stealth scripts applied, and cleaning
// up the launched process on exit.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/jaycherian/gcp-go-movie-match/internal/config"
)

// Browser owns one Chrome connection for the duration of a scrape run.
// It is not safe for concurrent Start/Close, but pages opened from it may
// be used from multiple workers.
type Browser struct {
	cfg      config.Scraper
	browser  *rod.Browser
	launched *launcher.Launcher
}

// NewBrowser creates an unstarted Browser from the scraper configuration.
func NewBrowser(cfg config.Scraper) *Browser {
	return &Browser{cfg: cfg}
}

// Start launches a local headless Chrome, or attaches to the remote
// instance named in the configuration, and connects the rod client to it.
//
// Outputs:
//   - error: Set when the launch or the websocket connection fails.
func (b *Browser) Start() error {
	wsURL := b.cfg.RemoteBrowserURL
	if wsURL == "" {
		l := launcher.New().
			Headless(true).
			Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("failed to launch chrome: %w", err)
		}
		b.launched = l
		wsURL = u
		slog.Info("launched local chrome", "url", wsURL)
	} else {
		slog.Info("attaching to remote chrome", "url", wsURL)
	}

	browser := rod.New().ControlURL(wsURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("failed to connect to chrome: %w", err)
	}
	b.browser = browser
	return nil
}

// OpenPage opens a new tab with the stealth scripts applied (unless
// disabled in configuration), navigates it to the given URL, and waits for
// the load event within the configured page timeout.
//
// Inputs:
//   - ctx: The context bounding the navigation.
//   - url: The address to navigate to.
//
// Outputs:
//   - *rod.Page: The open page. The caller owns it and must Close it.
//   - error: Set when the tab cannot be created or navigation fails.
func (b *Browser) OpenPage(ctx context.Context, url string) (*rod.Page, error) {
	if b.browser == nil {
		return nil, fmt.Errorf("browser is not started")
	}

	var page *rod.Page
	var err error
	if b.cfg.DisableStealth {
		page, err = b.browser.Page(proto.TargetCreateTarget{URL: ""})
	} else {
		page, err = stealth.Page(b.browser)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	timeout := time.Duration(b.cfg.PageTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		slog.Warn("page load wait timed out", "url", url, "error", err)
	}
	return page, nil
}

// Close disconnects from Chrome and, when this process launched it, cleans
// the process and its temp directories up.
func (b *Browser) Close() {
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			slog.Warn("failed to close browser", "error", err)
		}
		b.browser = nil
	}
	if b.launched != nil {
		b.launched.Cleanup()
		b.launched = nil
	}
}
