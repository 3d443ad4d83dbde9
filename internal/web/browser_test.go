package web

import (
	"context"
	"net/url"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

func findChrome() string {
	for _, name := range []string{"headless-shell", "chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// newBrowserContext starts a headless Chrome with network events enabled
func newBrowserContext(t *testing.T, chrome string) context.Context {
	t.Helper()
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(chrome),
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	ctx, cancelTimeout := context.WithTimeout(browserCtx, 30*time.Second)
	t.Cleanup(func() {
		cancelTimeout()
		cancelBrowser()
		cancelAlloc()
	})

	if err := chromedp.Run(ctx, network.Enable()); err != nil {
		t.Skipf("cannot start chrome: %v", err)
	}
	return ctx
}

func TestBrowserSearchFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("browser test skipped in short mode")
	}
	chrome := findChrome()
	if chrome == "" {
		t.Skip("no chrome binary found")
	}

	h := newHarness(t)
	ctx := newBrowserContext(t, chrome)

	var label, pdfDisabled string
	var pdfDisabledOK bool
	err := chromedp.Run(ctx,
		chromedp.Navigate(h.app.URL+"/"),
		chromedp.WaitVisible(`#search`, chromedp.ByQuery),
		chromedp.AttributeValue(`#export-pdf`, "disabled", &pdfDisabled, &pdfDisabledOK, chromedp.ByQuery),
		chromedp.SendKeys(`input[name="industry"]`, "Fintech", chromedp.ByQuery),
		chromedp.SendKeys(`input[name="country"]`, "India", chromedp.ByQuery),
		chromedp.Click(`#scrape`, chromedp.ByQuery),
		chromedp.WaitVisible(`#profiles tbody td.sno`, chromedp.ByQuery),
		chromedp.Poll(`document.querySelector('#scrape').textContent.trim() === 'Scrape Profiles'`, nil),
		chromedp.Text(`#scrape`, &label, chromedp.ByQuery),
	)
	if err != nil {
		t.Fatal(err)
	}
	if !pdfDisabledOK {
		t.Fatal("pdf export should start disabled")
	}
	if strings.TrimSpace(label) != "Scrape Profiles" {
		t.Fatalf("button label %q", label)
	}

	var first string
	err = chromedp.Run(ctx,
		chromedp.Navigate(h.app.URL+"/?"+url.Values{"page": {"3"}, "size": {"10"}}.Encode()),
		chromedp.Text(`#profiles tbody td.sno`, &first, chromedp.ByQuery),
	)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(first) != "21" {
		t.Fatalf("page 3 row 1 serial %q", first)
	}
}
