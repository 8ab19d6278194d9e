package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ccuhub/compscout/app/catalog"
	"github.com/ccuhub/compscout/app/feed"
)

// RefreshCatalogTask fetches the published CSV feed and replaces the
// catalog with the parsed result. Any failure leaves the previous
// catalog intact; the next tick tries again.
type RefreshCatalogTask struct {
	Task
	feedURL    string
	httpClient *http.Client
	parser     *feed.Parser
	store      *catalog.Store
	userAgent  string
	timeout    time.Duration
}

func NewRefreshCatalogTask(feedURL string, httpClient *http.Client, parser *feed.Parser, store *catalog.Store, userAgent string, timeout time.Duration) *RefreshCatalogTask {
	return &RefreshCatalogTask{
		Task:       NewTask(TaskTypeRefreshCatalog),
		feedURL:    feedURL,
		httpClient: httpClient,
		parser:     parser,
		store:      store,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (t *RefreshCatalogTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := t.fetchFeed(ctx, t.feedURL)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	competitions, err := t.parser.Run(data)
	if err != nil {
		return fmt.Errorf("failed to parse feed: %w", err)
	}

	t.store.ReplaceAll(competitions)

	slog.Info("Task completed",
		"type", "RefreshCatalog",
		"duration", t.GetDuration(),
		"competitions", len(competitions))

	return nil
}

func (t *RefreshCatalogTask) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
