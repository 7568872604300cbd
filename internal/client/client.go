package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "user-directory-service/internal/domain/directory"
	apperrors "user-directory-service/pkg/errors"
)

// DefaultPageSize is the fixed page size the admin screen requests.
const DefaultPageSize = 20

// orderBy is the fixed sort key: newest counter first.
const orderBy = "-counter"

// TokenSource supplies the bearer token for directory requests. It is
// injected rather than read from ambient state so the client is
// testable without a real credential store.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource for a fixed token.
type StaticToken string

// Token returns the fixed token.
func (s StaticToken) Token(context.Context) (string, error) {
	return string(s), nil
}

// Client fetches directory pages from the admin API. It performs no
// state mutation of its own; callers apply the results.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	pageSize int64
	log      *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithPageSize overrides the fixed page size.
func WithPageSize(size int64) Option {
	return func(c *Client) { c.pageSize = size }
}

// New creates a directory client for the given API base URL.
func New(baseURL string, tokens TokenSource, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
		tokens:   tokens,
		pageSize: DefaultPageSize,
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// listEnvelope is the success body of the listing endpoint.
type listEnvelope struct {
	Data []domain.UserRecord `json:"data"`
	Meta domain.Meta         `json:"meta"`
}

// errorEnvelope is the failure body, {error:{message}}.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// criteriaQuery translates non-empty criteria fields to the API's
// parameter names (name maps to first_name on the wire).
func criteriaQuery(q url.Values, c domain.FilterCriteria) {
	params := []struct {
		key   string
		value string
	}{
		{"first_name", c.Name},
		{"user_id", c.UserID},
		{"username", c.Username},
		{"phone_number", c.PhoneNumber},
		{"country", c.Country},
		{"is_ban", c.IsBanned},
		{"is_registered", c.IsRegistered},
	}
	for _, p := range params {
		if p.value != "" {
			q.Set(p.key, p.value)
		}
	}
}

// FetchPage retrieves one server-filtered directory page.
//
// A completed request with a non-2xx status yields an APIError
// carrying the envelope message; a request that never completed yields
// a TransportError.
func (c *Client) FetchPage(ctx context.Context, page int64, criteria domain.FilterCriteria) ([]domain.UserRecord, domain.Meta, error) {
	q := url.Values{}
	q.Set("page", strconv.FormatInt(page, 10))
	q.Set("size", strconv.FormatInt(c.pageSize, 10))
	q.Set("order_by", orderBy)
	criteriaQuery(q, criteria)

	endpoint := c.baseURL + "/admin/users-management/?" + q.Encode()

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, domain.Meta{}, err
	}

	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.log.Error("malformed listing response", zap.Error(err))
		return nil, domain.Meta{}, apperrors.NewAPIError(http.StatusOK, "")
	}

	c.log.Debug("fetched directory page",
		zap.Int64("page", envelope.Meta.Page),
		zap.Int64("total", envelope.Meta.Total),
		zap.Int("count", len(envelope.Data)),
	)
	return envelope.Data, envelope.Meta, nil
}

// FetchAll retrieves the full roster in one request, for callers that
// filter and paginate locally. The endpoint is a POST with no body and
// returns a bare array.
func (c *Client) FetchAll(ctx context.Context) ([]domain.UserRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build roster request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var users []domain.UserRecord
	if err := json.Unmarshal(body, &users); err != nil {
		c.log.Error("malformed roster response", zap.Error(err))
		return nil, apperrors.NewAPIError(http.StatusOK, "")
	}

	c.log.Debug("fetched full roster", zap.Int("count", len(users)))
	return users, nil
}

// FetchUser retrieves one record, the target of detail-page navigation.
func (c *Client) FetchUser(ctx context.Context, userID string) (*domain.UserRecord, error) {
	body, err := c.get(ctx, c.baseURL+"/admin/users-management/"+url.PathEscape(userID))
	if err != nil {
		return nil, err
	}

	var u domain.UserRecord
	if err := json.Unmarshal(body, &u); err != nil {
		c.log.Error("malformed user response", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.NewAPIError(http.StatusOK, "")
	}
	return &u, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req)
}

// do executes an authenticated request and separates the two failure
// paths: API rejection versus transport failure.
func (c *Client) do(req *http.Request) ([]byte, error) {
	token, err := c.tokens.Token(req.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to obtain token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("directory request failed", zap.String("url", req.URL.Path), zap.Error(err))
		return nil, apperrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("failed to read directory response", zap.String("url", req.URL.Path), zap.Error(err))
		return nil, apperrors.NewTransportError(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var envelope errorEnvelope
		message := ""
		if err := json.Unmarshal(body, &envelope); err == nil {
			message = envelope.Error.Message
		}
		c.log.Warn("directory request rejected",
			zap.String("url", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", message),
		)
		return nil, apperrors.NewAPIError(resp.StatusCode, message)
	}

	return body, nil
}
