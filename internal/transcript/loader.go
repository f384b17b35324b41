package transcript

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/clipsmith/clipsmith-go/internal/util"
)

const (
	fetchTimeout = 15 * time.Second
	userAgent    = "Mozilla/5.0 (compatible; ClipSmith/1.0)"
)

// LoadFile reads a transcript from a file, or from stdin when path is "-".
func LoadFile(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript %s: %w", path, err)
	}
	return string(data), nil
}

// FetchFromURL downloads an HTML page and extracts its visible text as a
// transcript: scripts, styles and markup are stripped and whitespace is
// collapsed. A convenience for pages that publish transcripts inline.
func FetchFromURL(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", pageURL, err)
	}

	doc.Find("script, style, noscript, nav, footer, header").Remove()

	text := util.CollapseWhitespace(doc.Find("body").Text())
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content at %s", pageURL)
	}

	return text, nil
}
