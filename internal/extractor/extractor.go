// Package extractor downloads article pages and pulls out their readable
// title and body text.
package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/samvad-hq/samvad-summarizer/internal/domain"
	"github.com/samvad-hq/samvad-summarizer/internal/logger"
	"github.com/samvad-hq/samvad-summarizer/internal/textutil"
	"github.com/samvad-hq/samvad-summarizer/pkg/httpclient"
)

const defaultMaxBodyBytes = 4 << 20 // 4 MiB

// Options tunes how pages are requested. MaxBodyBytes should match the
// limit the HTTP client reads up to, see httpclient.WithMaxBodyBytes.
type Options struct {
	UserAgent      string
	AcceptLanguage string
	MaxBodyBytes   int
}

// parsedPage is what the readability step hands back.
type parsedPage struct {
	Title string
	Text  string
}

type pageParser func(r io.Reader, pageURL *url.URL) (parsedPage, error)

// Extractor downloads a page once and pulls the main article text out of it.
type Extractor struct {
	client       httpclient.Client
	headers      map[string]string
	maxBodyBytes int
	parse        pageParser
	log          logger.Logger
}

// New builds an Extractor around the given HTTP client.
func New(client httpclient.Client, opts Options, log logger.Logger) *Extractor {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	return &Extractor{
		client:       client,
		headers:      headers(opts),
		maxBodyBytes: opts.MaxBodyBytes,
		parse:        readabilityParse,
		log:          logger.Ensure(log),
	}
}

func headers(opts Options) map[string]string {
	h := map[string]string{
		"Accept": "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8",
	}
	if v := strings.TrimSpace(opts.UserAgent); v != "" {
		h["User-Agent"] = v
	}
	if v := strings.TrimSpace(opts.AcceptLanguage); v != "" {
		h["Accept-Language"] = v
	}
	return h
}

// Extract fetches rawURL and returns its title and body text. Every failure,
// including a page with no readable text, is returned as *ExtractionError.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (domain.Article, error) {
	parsedURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return domain.Article{}, fetchFailed(rawURL, fmt.Errorf("parse url: %w", err))
	}

	resp, err := e.client.Get(ctx, parsedURL.String(), e.headers)
	if err != nil {
		return domain.Article{}, fetchFailed(rawURL, fmt.Errorf("http fetch: %w", err))
	}
	if resp.StatusCode() != http.StatusOK {
		return domain.Article{}, fetchFailed(rawURL, fmt.Errorf("status %d", resp.StatusCode()))
	}

	body := resp.Body()
	if len(body) > e.maxBodyBytes {
		e.log.WarnObj("article body truncated", "extract_meta", map[string]any{
			"url":        rawURL,
			"body_bytes": len(body),
			"limit":      e.maxBodyBytes,
		})
		body = body[:e.maxBodyBytes]
	}

	page, err := e.parse(bytes.NewReader(body), parsedURL)
	if err != nil {
		return domain.Article{}, fetchFailed(rawURL, err)
	}

	text := textutil.NormalizeLines(page.Text)
	if text == "" {
		return domain.Article{}, &ExtractionError{URL: rawURL, Reason: noTextReason}
	}

	title := strings.TrimSpace(page.Title)
	if title == "" {
		if meta, err := parseMeta(body); err == nil {
			title = meta.Title
		}
	}
	if title == "" {
		title = domain.UntitledArticle
	}

	e.log.DebugObj("article extracted", "extract_meta", map[string]any{
		"url":        rawURL,
		"title":      title,
		"text_chars": len(text),
	})

	return domain.Article{URL: rawURL, Title: title, Text: text}, nil
}

func readabilityParse(r io.Reader, pageURL *url.URL) (parsedPage, error) {
	article, err := readability.NewParser().Parse(r, pageURL)
	if err != nil {
		return parsedPage{}, fmt.Errorf("readability: %w", err)
	}
	return parsedPage{Title: article.Title, Text: article.TextContent}, nil
}
