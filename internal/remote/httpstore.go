package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/humiapp/humi/internal/common"
	"github.com/humiapp/humi/internal/models"
)

// HTTPStore implements Store over the JSON document API.
type HTTPStore struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPStore(baseURL, accessToken string) *HTTPStore {
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   accessToken,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *HTTPStore) CreateLog(ctx context.Context, entry *models.LogEntry) error {
	path := fmt.Sprintf("/users/%s/logs", url.PathEscape(entry.UserID))
	return s.do(ctx, http.MethodPost, path, entry, nil)
}

func (s *HTTPStore) ListLogs(ctx context.Context, userID string) ([]models.LogEntry, error) {
	path := fmt.Sprintf("/users/%s/logs", url.PathEscape(userID))
	var out []models.LogEntry
	if err := s.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *HTTPStore) UpdateLog(ctx context.Context, entry *models.LogEntry) error {
	path := fmt.Sprintf("/users/%s/logs/%s", url.PathEscape(entry.UserID), url.PathEscape(entry.ID))
	return s.do(ctx, http.MethodPut, path, entry, nil)
}

func (s *HTTPStore) QueryCatalog(ctx context.Context, brand, line string) (*models.CatalogRecord, error) {
	q := url.Values{}
	q.Set("brand", brand)
	q.Set("line", line)

	var out models.CatalogRecord
	if err := s.do(ctx, http.MethodGet, "/catalog?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *HTTPStore) CreatePendingContribution(ctx context.Context, pc models.PendingContribution) error {
	return s.do(ctx, http.MethodPost, "/catalog/pending", pc, nil)
}

func (s *HTTPStore) GetStats(ctx context.Context, userID string) (*models.StatsAggregate, error) {
	path := fmt.Sprintf("/users/%s/stats", url.PathEscape(userID))
	var out models.StatsAggregate
	if err := s.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *HTTPStore) PutStats(ctx context.Context, userID string, stats *models.StatsAggregate) error {
	path := fmt.Sprintf("/users/%s/stats", url.PathEscape(userID))
	return s.do(ctx, http.MethodPut, path, stats, nil)
}

func (s *HTTPStore) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if s.token != "" {
		req.Header.Set(common.AccessTokenHeaderName, "Bearer "+s.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrNotFound
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %s", ErrUnavailable, resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("unexpected status %s: %s", resp.Status, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
