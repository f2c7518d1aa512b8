// Package scrape は企業の公開情報を収集するWebスクレイパーを提供します。
package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	researchusecase "leadfinder/internal/feature/research/usecase"
	"leadfinder/internal/shared/ratelimiter"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// searchKeywords は企業検索に付与する購買シグナル関連キーワードです。
	searchKeywords = "recent news growth technology initiatives"

	// maxBodySize はレスポンスボディの読み込み上限です。
	maxBodySize = 2 << 20 // 2MiB

	// maxSnippets は検索結果から利用するスニペット数の上限です。
	maxSnippets = 5
)

// Scraper はHTML検索とページ取得で企業の公開情報テキストを収集します。
type Scraper struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// ScraperがCompanyLookupを実装していることをコンパイル時に検証します。
var _ researchusecase.CompanyLookup = (*Scraper)(nil)

// NewScraper は指定された設定とHTTPクライアントでScraperの新しいインスタンスを生成します。
// limiterは連続リクエストの間隔制御に使用されます（nil不可）。
func NewScraper(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *Scraper {
	return &Scraper{cfg: cfg, client: client, limiter: limiter}
}

// CompanyText は企業名で検索を行い、結果スニペットと上位ページの本文を
// 結合した読みやすいテキストを返します。ページ取得の失敗は警告ログのみで、
// スニペットが得られていればそのまま返します。
func (s *Scraper) CompanyText(ctx context.Context, companyName string) (string, error) {
	s.limiter.WaitIfNeeded()

	results, err := s.search(ctx, companyName+" "+searchKeywords)
	if err != nil {
		return "", fmt.Errorf("company search failed for %q: %w", companyName, err)
	}

	var b strings.Builder
	for i, r := range results {
		if i >= maxSnippets {
			break
		}
		if r.Snippet != "" {
			b.WriteString(r.Snippet)
			b.WriteString("\n")
		}
	}

	// 上位ページの本文を補足（ベストエフォート）
	if len(results) > 0 && results[0].URL != "" {
		s.limiter.WaitIfNeeded()
		if text, err := s.Fetch(ctx, results[0].URL); err != nil {
			slog.Warn("ページ取得に失敗", "url", results[0].URL, "error", err)
		} else {
			b.WriteString("\n")
			b.WriteString(text)
		}
	}

	return truncate(strings.TrimSpace(b.String()), s.cfg.MaxTextLength), nil
}

// PageText は指定URLのページ本文を取得し、上限まで切り詰めて返します。
func (s *Scraper) PageText(ctx context.Context, rawURL string) (string, error) {
	s.limiter.WaitIfNeeded()

	text, err := s.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return truncate(text, s.cfg.MaxTextLength), nil
}

// truncate は文字列をlimitバイト以内に切り詰めます。切断位置がマルチバイト
// 文字の途中にかからないよう、rune境界まで戻します。
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return strings.TrimSpace(text[:cut])
}

// Fetch はURLの内容を取得し、読みやすいテキストに変換して返します。
func (s *Scraper) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	res, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: http %d", rawURL, res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return "", err
	}

	contentType := res.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/plain") {
		return strings.TrimSpace(string(body)), nil
	}

	return htmlToText(string(body))
}

// searchResult は検索結果の1件を表します。
type searchResult struct {
	Title   string
	URL     string
	Snippet string
}

// search はHTML検索エンドポイントに問い合わせて結果を抽出します。
func (s *Scraper) search(ctx context.Context, query string) ([]searchResult, error) {
	u := fmt.Sprintf("%s?q=%s", strings.TrimRight(s.cfg.SearchBaseURL, "?"), url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: http %d", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, err
	}

	return parseSearchResults(string(body), maxSnippets)
}
