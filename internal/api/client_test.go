package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crudadmin/internal/api"
	"crudadmin/internal/domain"
)

func newServer(t *testing.T, h http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return api.New(srv.URL)
}

func TestProductsListDecodesRecords(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"name":"Laptop","description":"d","price":999.99,"category":"Electronics",
			"tags":["computer"],"in_stock":true,"created_at":"2024-01-01T10:00:00.000001"}]`)
	})

	got, err := c.Products().List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 999.99, got[0].Price)
	assert.Equal(t, []string{"computer"}, got[0].Tags)
	assert.Equal(t, 2024, got[0].CreatedAt.Year())
}

func TestListNullBodyIsEmpty(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `null`)
	})
	got, err := c.Users().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCreateSendsPayloadAndReturnsServerRecord(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, 12.5, in["price"])
		assert.Equal(t, []any{"a", "b"}, in["tags"])
		_, _ = io.WriteString(w, `{"id":7,"name":"Widget","description":"A widget","price":12.5,"category":"Tools",
			"tags":["a","b"],"in_stock":true,"created_at":"2024-05-05T00:00:00Z"}`)
	})

	p, err := c.Products().Create(context.Background(), domain.ProductCreate{
		Name: "Widget", Description: "A widget", Price: 12.5, Category: "Tools", Tags: []string{"a", "b"}, InStock: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, p.ID)
}

func TestUpdateUsesItemPath(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/users/3", r.URL.Path)
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_, hasPassword := in["password"]
		assert.False(t, hasPassword)
		_, _ = io.WriteString(w, `{"id":3,"name":"Ann","email":"ann@example.com","created_at":"2024-01-01T00:00:00Z","updated_at":"2024-02-01T00:00:00Z"}`)
	})

	u, err := c.Users().Update(context.Background(), 3, domain.UserCreate{Name: "Ann", Email: "ann@example.com"}.AsUpdate())
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
}

func TestStatusClassification(t *testing.T) {
	cases := []struct {
		status int
		body   string
		kind   error
		detail string
	}{
		{http.StatusNotFound, `{"detail":"Product not found"}`, api.ErrNotFound, "Product not found"},
		{http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","name"],"msg":"field required"}]}`, api.ErrValidation, `[{"loc":["body","name"],"msg":"field required"}]`},
		{http.StatusBadRequest, `oops`, api.ErrValidation, ""},
		{http.StatusInternalServerError, `{"detail":"boom"}`, api.ErrServer, "boom"},
		{http.StatusBadGateway, ``, api.ErrServer, ""},
	}
	for _, tc := range cases {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = io.WriteString(w, tc.body)
		})
		_, err := c.Products().Get(context.Background(), 42)
		require.Error(t, err)
		assert.ErrorIs(t, err, tc.kind, "status %d", tc.status)

		var apiErr *api.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, tc.status, apiErr.Status)
		assert.Equal(t, 42, apiErr.ID)
		assert.Equal(t, "get", apiErr.Op)
		assert.Equal(t, tc.detail, apiErr.Detail)
	}
}

func TestMalformedBody(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":`)
	})
	_, err := c.Products().List(context.Background())
	assert.ErrorIs(t, err, api.ErrMalformed)
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := api.New(url).Users().List(context.Background())
	assert.ErrorIs(t, err, api.ErrNetwork)
}

func TestCanceledContextIsNotSent(t *testing.T) {
	hit := false
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) { hit = true })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Products().Delete(ctx, 1)
	assert.ErrorIs(t, err, api.ErrNetwork)
	assert.False(t, hit)
}

func TestDeleteAcceptsEmptyBody(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/products/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, c.Products().Delete(context.Background(), 9))
}

func TestTimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := api.New(srv.URL, api.WithTimeout(50*time.Millisecond))
	_, err := c.Products().List(context.Background())
	assert.ErrorIs(t, err, api.ErrNetwork)
}

func TestBaseURLTrailingSlash(t *testing.T) {
	c := api.New("http://example.test/")
	assert.Equal(t, "http://example.test", c.BaseURL())
	assert.Equal(t, "product", c.Products().Name())
	assert.Equal(t, "user", c.Users().Name())
}

func TestUserAgentOption(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.UserAgent()
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	_, err := api.New(srv.URL, api.WithUserAgent("console-test")).Products().List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "console-test", got)
}
