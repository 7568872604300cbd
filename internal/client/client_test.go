package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-directory-service/internal/domain/directory"
	apperrors "user-directory-service/pkg/errors"
)

func TestFetchPage_BuildsQueryAndParsesEnvelope(t *testing.T) {
	var gotQuery map[string][]string
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")

		require.Equal(t, "/admin/users-management/", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []domain.UserRecord{
				{Counter: 45, UserID: "100", FirstName: "Ali"},
			},
			"meta": domain.Meta{Total: 45, Page: 2, Size: 20, Pages: 3},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("secret"), zaptest.NewLogger(t))

	users, meta, err := c.FetchPage(context.Background(), 2, domain.FilterCriteria{
		Name:     "Ali",
		IsBanned: "true",
	})

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "100", users[0].UserID)
	assert.Equal(t, domain.Meta{Total: 45, Page: 2, Size: 20, Pages: 3}, meta)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"20"}, gotQuery["size"])
	assert.Equal(t, []string{"-counter"}, gotQuery["order_by"])
	// name is translated to the API's parameter name.
	assert.Equal(t, []string{"Ali"}, gotQuery["first_name"])
	assert.Equal(t, []string{"true"}, gotQuery["is_ban"])
	// Empty criteria fields are omitted entirely.
	assert.NotContains(t, gotQuery, "username")
	assert.NotContains(t, gotQuery, "is_registered")
}

func TestFetchPage_APIErrorCarriesEnvelopeMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"insufficient privileges"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("secret"), zaptest.NewLogger(t))

	_, _, err := c.FetchPage(context.Background(), 1, domain.FilterCriteria{})

	require.Error(t, err)
	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "insufficient privileges", apiErr.UserMessage())
}

func TestFetchPage_APIErrorGenericFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("secret"), zaptest.NewLogger(t))

	_, _, err := c.FetchPage(context.Background(), 1, domain.FilterCriteria{})

	require.Error(t, err)
	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apperrors.GenericAPIMessage, apiErr.UserMessage())
}

func TestFetchPage_TransportErrorIsDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, StaticToken("secret"), zaptest.NewLogger(t))

	_, _, err := c.FetchPage(context.Background(), 1, domain.FilterCriteria{})

	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
	var apiErr *apperrors.APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Equal(t, apperrors.GenericTransportMessage, apperrors.UserMessage(err))
}

func TestFetchAll_PostReturnsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"user_id":"1","first_name":"Ali"},{"user_id":"2","first_name":"Sara"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("secret"), zaptest.NewLogger(t))

	users, err := c.FetchAll(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Sara", users[1].FirstName)
}

func TestFetchUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/users-management/100200300", r.URL.Path)
		_, _ = w.Write([]byte(`{"user_id":"100200300","first_name":"Ali","last_name":"Rezaei"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("secret"), zaptest.NewLogger(t))

	u, err := c.FetchUser(context.Background(), "100200300")

	require.NoError(t, err)
	assert.Equal(t, "Rezaei", u.LastName)
}

func TestFetchPage_CustomPageSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("size"))
		_, _ = w.Write([]byte(`{"data":[],"meta":{"total":0,"page":1,"size":50,"pages":0}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("secret"), zaptest.NewLogger(t), WithPageSize(50))

	_, meta, err := c.FetchPage(context.Background(), 1, domain.FilterCriteria{})

	require.NoError(t, err)
	assert.Equal(t, int64(50), meta.Size)
}
