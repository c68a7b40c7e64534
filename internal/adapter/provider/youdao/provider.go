// Package youdao fetches result pages from the Youdao web dictionary and
// turns them into raw entry documents.
package youdao

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/html"

	"github.com/heartmarshall/wudao-dict/internal/domain"
)

const (
	defaultBaseURL = "https://dict.youdao.com"
	userAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

	// maxPageSize guards against runaway responses.
	maxPageSize = 4 << 20
)

// Provider fetches dictionary pages from Youdao.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// NewProvider creates a Provider with the default Youdao URL.
func NewProvider(timeout time.Duration, logger *slog.Logger) *Provider {
	return NewProviderWithURL(defaultBaseURL, timeout, logger)
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, timeout time.Duration, logger *slog.Logger) *Provider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Provider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: 500 * time.Millisecond,
		log:        logger.With("adapter", "youdao"),
	}
}

// Name identifies the source in logs and history.
func (p *Provider) Name() string { return "youdao" }

// Fetch returns the raw entry document for word. A page without a result
// yields domain.ErrNotFound; transport and status failures wrap
// domain.ErrUpstream.
func (p *Provider) Fetch(ctx context.Context, word string, lang domain.Lang) ([]byte, error) {
	reqURL := p.baseURL + "/result?" + url.Values{"word": {word}, "lang": {"en"}}.Encode()

	p.log.DebugContext(ctx, "youdao request", slog.String("word", word), slog.String("lang", string(lang)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("youdao: create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := p.doWithRetry(ctx, req, word)
	if err != nil {
		p.log.ErrorContext(ctx, "youdao request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("youdao: request failed: %w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("youdao: %q: %w", word, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youdao: unexpected status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	root, err := html.Parse(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("youdao: parse page: %w: %w", domain.ErrUpstream, err)
	}
	if !found(root) {
		return nil, fmt.Errorf("youdao: %q: %w", word, domain.ErrNotFound)
	}

	var doc []byte
	switch lang {
	case domain.LangChinese:
		doc, err = parseChinese(root, word)
	default:
		doc, err = parseEnglish(root, word)
	}
	if err != nil {
		return nil, fmt.Errorf("youdao: build entry: %w", err)
	}

	p.log.DebugContext(ctx, "youdao response",
		slog.String("word", word),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(doc)),
	)

	return doc, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, word string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "youdao retry", slog.String("word", word), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.retryDelay):
	}

	return p.httpClient.Do(req)
}
