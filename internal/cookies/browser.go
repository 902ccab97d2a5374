package cookies

import (
	"context"
	"fmt"
	"strings"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/chrome"
	_ "github.com/browserutils/kooky/browser/chromium"
	_ "github.com/browserutils/kooky/browser/edge"
	_ "github.com/browserutils/kooky/browser/firefox"
	_ "github.com/browserutils/kooky/browser/opera"
)

const instagramDomain = "instagram.com"

// BrowserImporter reads Instagram session cookies out of locally installed
// web browsers, as an alternative to logging in with email and password.
type BrowserImporter struct{}

// NewBrowserImporter creates a new browser cookie importer.
func NewBrowserImporter() *BrowserImporter {
	return &BrowserImporter{}
}

// SupportedBrowsers returns the browser names Import understands.
func (i *BrowserImporter) SupportedBrowsers() []string {
	return []string{"chrome", "chromium", "firefox", "edge", "opera"}
}

// Import reads instagram.com cookies from the given browser (any browser if
// empty) and assembles the canonical session cookie string. It fails if the
// browser holds no usable session (no sessionid cookie).
func (i *BrowserImporter) Import(ctx context.Context, browser string) (string, error) {
	browser = strings.ToLower(browser)

	found, err := kooky.ReadCookies(ctx, kooky.DomainHasSuffix(instagramDomain))
	if err != nil {
		return "", fmt.Errorf("read cookies from browser: %w", err)
	}

	m := make(map[string]string)
	for _, cookie := range found {
		if browser != "" && cookie.Browser != nil {
			cookieBrowser := strings.ToLower(cookie.Browser.Browser())
			if !strings.Contains(cookieBrowser, browser) {
				continue
			}
		}
		if cookie.Value != "" {
			m[cookie.Name] = cookie.Value
		}
	}

	if m["sessionid"] == "" {
		return "", fmt.Errorf("no Instagram session found in browser %q", browser)
	}

	return EssentialString(m), nil
}
