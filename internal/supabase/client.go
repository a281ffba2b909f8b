// Package supabase talks to the Supabase PostgREST API. Only the four
// tables the importer writes are covered; this is not a general client.
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

	"poupafin/extrato/internal/importer"
	"poupafin/extrato/internal/logging"
	"poupafin/extrato/internal/models"
	"poupafin/extrato/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Config carries the connection settings for one Supabase project.
type Config struct {
	URL         string
	AnonKey     string
	AccessToken string
}

// Client implements the importer services against PostgREST.
type Client struct {
	baseURL string
	anonKey string
	token   string
	http    *http.Client
	log     logging.Logger
}

// NewClient validates the config and returns a ready client. A missing
// access token is an auth failure, not a config error, so the caller can
// report it the same way as an expired session.
func NewClient(cfg Config, logger logging.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("supabase url is not configured")
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, &parsererror.AuthError{Reason: "no access token; sign in and set EXTRATO_ACCESS_TOKEN"}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		anonKey: cfg.AnonKey,
		token:   cfg.AccessToken,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     logger,
	}, nil
}

type periodRow struct {
	ID string `json:"id"`
}

// EnsurePeriod returns the id of the financial period for (user, month,
// year), creating it when absent. The table has a uniqueness constraint on
// that triple; a conflict on insert means another writer won the race, so
// the period is re-queried instead of failing.
func (c *Client) EnsurePeriod(ctx context.Context, userID string, key models.PeriodKey) (string, error) {
	if id, err := c.findPeriod(ctx, userID, key); err != nil {
		return "", err
	} else if id != "" {
		return id, nil
	}

	payload := map[string]interface{}{
		"user_id": userID,
		"month":   key.Month,
		"year":    key.Year,
	}
	var created []periodRow
	status, err := c.do(ctx, http.MethodPost, "financial_periods", nil, payload, &created, conflictMeansExists)
	if err != nil {
		return "", err
	}
	if status == http.StatusConflict {
		c.log.Debug("period insert conflicted, re-querying", logging.F("period", key.String()))
		id, err := c.findPeriod(ctx, userID, key)
		if err != nil {
			return "", err
		}
		if id == "" {
			return "", fmt.Errorf("period %s conflicted on insert but cannot be found", key)
		}
		return id, nil
	}
	if len(created) == 0 {
		return "", fmt.Errorf("period insert returned no row")
	}
	return created[0].ID, nil
}

func (c *Client) findPeriod(ctx context.Context, userID string, key models.PeriodKey) (string, error) {
	query := url.Values{}
	query.Set("select", "id")
	query.Set("user_id", "eq."+userID)
	query.Set("month", fmt.Sprintf("eq.%d", key.Month))
	query.Set("year", fmt.Sprintf("eq.%d", key.Year))

	var rows []periodRow
	if _, err := c.do(ctx, http.MethodGet, "financial_periods", query, nil, &rows, conflictIsError); err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].ID, nil
}

// InsertIncome writes one row into the incomes table.
func (c *Client) InsertIncome(ctx context.Context, record importer.IncomeRecord) error {
	payload := map[string]interface{}{
		"user_id":     record.UserID,
		"period_id":   record.PeriodID,
		"name":        record.Name,
		"value":       jsonNumber(record.Value),
		"date":        record.Date,
		"category_id": record.CategoryID,
	}
	_, err := c.do(ctx, http.MethodPost, "incomes", nil, payload, nil, conflictIsError)
	return err
}

// InsertExpense writes one row into the expenses table.
func (c *Client) InsertExpense(ctx context.Context, record importer.ExpenseRecord) error {
	payload := map[string]interface{}{
		"user_id":        record.UserID,
		"period_id":      record.PeriodID,
		"name":           record.Name,
		"value":          jsonNumber(record.Value),
		"date":           record.Date,
		"category_id":    record.CategoryID,
		"payment_method": record.PaymentMethod,
		"is_essential":   record.IsEssential,
	}
	_, err := c.do(ctx, http.MethodPost, "expenses", nil, payload, nil, conflictIsError)
	return err
}

// InsertReserve writes one row into the reserves_investments table.
func (c *Client) InsertReserve(ctx context.Context, record importer.ReserveRecord) error {
	payload := map[string]interface{}{
		"user_id": record.UserID,
		"name":    record.Name,
		"value":   jsonNumber(record.Value),
		"date":    record.Date,
		"type":    record.Kind,
	}
	_, err := c.do(ctx, http.MethodPost, "reserves_investments", nil, payload, nil, conflictIsError)
	return err
}

// conflictPolicy tells do how to treat a 409 response. Only the period
// insert tolerates conflicts; the record inserts have no uniqueness
// constraint to race against, so a 409 there means nothing was written.
type conflictPolicy bool

const (
	conflictIsError     conflictPolicy = false
	conflictMeansExists conflictPolicy = true
)

// do runs one PostgREST request. Under conflictMeansExists a 409 is
// returned to the caller via the status code with a nil error; any other
// non-2xx status becomes an error. 401 and 403 map to AuthError.
func (c *Client) do(ctx context.Context, method, table string, query url.Values, payload interface{}, out interface{}, onConflict conflictPolicy) (int, error) {
	endpoint := c.baseURL + "/rest/v1/" + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("error encoding %s payload: %w", table, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("error calling %s: %w", table, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.WithError(err).Warn("Failed to close response body")
		}
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return resp.StatusCode, &parsererror.AuthError{Reason: fmt.Sprintf("%s rejected with status %d", table, resp.StatusCode)}
	case resp.StatusCode == http.StatusConflict && onConflict == conflictMeansExists:
		return resp.StatusCode, nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp.StatusCode, fmt.Errorf("%s returned status %d: %s", table, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("error decoding %s response: %w", table, err)
		}
	}
	return resp.StatusCode, nil
}

// jsonNumber renders a decimal as a bare JSON number so PostgREST sees a
// numeric, not a string.
func jsonNumber(value decimal.Decimal) json.Number {
	return json.Number(value.String())
}
