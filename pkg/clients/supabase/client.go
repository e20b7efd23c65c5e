package supabase

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

	"go.uber.org/zap"

	"rentaid-waitlist/pkg/datastore"
	"rentaid-waitlist/pkg/models"
)

type clientImpl struct {
	baseURL    string
	apiKey     string
	table      string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a client for the project's PostgREST endpoint.
// table is the relation probed by TestConnection.
func NewClient(baseURL, apiKey, table string, timeout time.Duration, log *zap.Logger) datastore.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &clientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		table:      table,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *clientImpl) TestConnection(ctx context.Context) bool {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?select=id&limit=1", c.baseURL, url.PathEscape(c.table))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.log.Warn("Error creating probe request", zap.Error(err))
		return false
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("Datastore probe failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		c.log.Warn("Datastore probe returned non-OK status", zap.Int("status", resp.StatusCode))
		return false
	}
	return true
}

func (c *clientImpl) Insert(ctx context.Context, table string, record models.SubmissionRecord) (string, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, url.PathEscape(table))

	jsonPayload, err := json.Marshal([]models.SubmissionRecord{record})
	if err != nil {
		return "", fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error inserting into %s: %w", table, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", decodeError(resp.StatusCode, body)
	}

	var rows []struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}
	if len(rows) == 0 || len(rows[0].ID) == 0 {
		return "", &datastore.Error{Message: "insert returned no rows"}
	}

	id := strings.Trim(string(rows[0].ID), `"`)
	c.log.Info("Created record in datastore", zap.String("table", table), zap.String("record_id", id))
	return id, nil
}

func (c *clientImpl) authorize(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

// decodeError turns a PostgREST error body into a datastore error. Bodies
// that are not JSON are reported verbatim.
func decodeError(status int, body []byte) error {
	var dsErr datastore.Error
	if err := json.Unmarshal(body, &dsErr); err != nil || (dsErr.Code == "" && dsErr.Message == "") {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &datastore.Error{Message: fmt.Sprintf("error from datastore API (status %d): %s", status, msg)}
	}
	return &dsErr
}
