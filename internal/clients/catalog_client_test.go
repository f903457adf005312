package clients

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"catalog_ui/internal/domain"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// fakeAPI records every request and answers with the configured handler.
type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	handler  http.HandlerFunc
}

func newFakeAPI(t *testing.T, handler http.HandlerFunc) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{handler: handler}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(body),
		})
		f.mu.Unlock()
		f.handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(srv *httptest.Server) *CatalogClient {
	logger, _ := test.NewNullLogger()
	return NewCatalogHTTPClient(srv.URL+"/api/", 2*time.Second, logger)
}

func TestCatalogClient_ListCategories(t *testing.T) {
	api, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"id": 1, "nome": "Sedan"}, {"id": 2, "nome": "SUV"}})
	})

	categories, err := newTestClient(srv).ListCategories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Category{{ID: 1, Name: "Sedan"}, {ID: 2, Name: "SUV"}}, categories)
	reqs := api.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodGet, reqs[0].Method)
	assert.Equal(t, "/api/Categorias", reqs[0].Path)
}

func TestCatalogClient_CreateProduct_SendsContractBody(t *testing.T) {
	api, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{
			"id": 11, "nome": "Cadeira", "preco": 150.0, "quantidade": 3, "categoriaId": 2,
		})
	})

	draft := domain.ProductDraft{Name: "Cadeira", Price: 150.0, CategoryID: 2, Quantity: 3}
	created, err := newTestClient(srv).CreateProduct(context.Background(), draft)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 11, created.ID)

	reqs := api.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "/api/Produto", reqs[0].Path)
	assert.JSONEq(t, `{"nome":"Cadeira","preco":150.0,"categoriaId":2,"quantidade":3}`, reqs[0].Body)
}

func TestCatalogClient_CreateProduct_EmptyBody(t *testing.T) {
	_, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	created, err := newTestClient(srv).CreateProduct(context.Background(), domain.ProductDraft{Name: "X", Price: 1, CategoryID: 1, Quantity: 1})
	assert.Nil(t, created)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestCatalogClient_UpdateProduct(t *testing.T) {
	t.Run("echoed body", func(t *testing.T) {
		api, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"id": 7, "nome": "Mesa", "preco": 99.9, "quantidade": 1, "categoriaId": 4})
		})

		updated, err := newTestClient(srv).UpdateProduct(context.Background(), 7, domain.ProductDraft{Name: "Mesa", Price: 99.9, CategoryID: 4, Quantity: 1})
		require.NoError(t, err)
		assert.Equal(t, "Mesa", updated.Name)

		reqs := api.recorded()
		require.Len(t, reqs, 1)
		assert.Equal(t, http.MethodPut, reqs[0].Method)
		assert.Equal(t, "/api/Produto/7", reqs[0].Path)
		assert.JSONEq(t, `{"nome":"Mesa","preco":99.9,"categoriaId":4,"quantidade":1}`, reqs[0].Body)
	})

	t.Run("no content", func(t *testing.T) {
		_, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		draft := domain.ProductDraft{Name: "Mesa", Price: 10, CategoryID: 4, Quantity: 2}
		updated, err := newTestClient(srv).UpdateProduct(context.Background(), 7, draft)
		require.NoError(t, err)
		assert.Equal(t, draft.Apply(7), *updated)
	})
}

func TestCatalogClient_DeleteProduct(t *testing.T) {
	api, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, newTestClient(srv).DeleteProduct(context.Background(), 7))

	reqs := api.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodDelete, reqs[0].Method)
	assert.Equal(t, "/api/Produto/7", reqs[0].Path)
}

func TestCatalogClient_SearchProducts_QueryParameters(t *testing.T) {
	api, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})
	client := newTestClient(srv)

	_, err := client.SearchProducts(context.Background(), "cad", 3)
	require.NoError(t, err)
	_, err = client.SearchProducts(context.Background(), "", 3)
	require.NoError(t, err)
	_, err = client.SearchProducts(context.Background(), "", 0)
	require.NoError(t, err)

	reqs := api.recorded()
	require.Len(t, reqs, 3)
	assert.Equal(t, "categoriaId=3&nome=cad", reqs[0].Query)
	assert.Equal(t, "categoriaId=3", reqs[1].Query)
	assert.Equal(t, "", reqs[2].Query)
	for _, r := range reqs {
		assert.Equal(t, "/api/Produto", r.Path)
	}
}

func TestCatalogClient_NullListIsEmpty(t *testing.T) {
	_, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, nil)
	})

	products, err := newTestClient(srv).ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestCatalogClient_StatusError(t *testing.T) {
	_, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "categoria inexistente", http.StatusBadRequest)
	})

	_, err := newTestClient(srv).CreateProduct(context.Background(), domain.ProductDraft{Name: "X", Price: 1, CategoryID: 99, Quantity: 1})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, "create product", statusErr.Op)
	assert.Equal(t, "categoria inexistente", statusErr.Body)
}

func TestCatalogClient_TransportError(t *testing.T) {
	_, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {})
	client := newTestClient(srv)
	srv.Close()

	_, err := client.ListProducts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to communicate with catalog API")
}

func TestCatalogClient_MalformedBody(t *testing.T) {
	_, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := newTestClient(srv).ListCategories(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestWithInsecureTLS_LeavesCallerClientUntouched(t *testing.T) {
	logger, _ := test.NewNullLogger()
	own := &http.Client{Timeout: 2 * time.Second}

	c := NewCatalogHTTPClient("https://localhost:7168/api", time.Second, logger, WithHTTPClient(own), WithInsecureTLS())

	assert.Nil(t, own.Transport)
	require.NotSame(t, own, c.client)
	assert.Equal(t, 2*time.Second, c.client.Timeout)
	transport, ok := c.client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.True(t, transport.TLSClientConfig.InsecureSkipVerify)
}

func TestWithInsecureTLS_DoesNotTouchDefaultTransport(t *testing.T) {
	logger, _ := test.NewNullLogger()

	c := NewCatalogHTTPClient("https://localhost:7168/api", time.Second, logger, WithInsecureTLS())

	transport := c.client.Transport.(*http.Transport)
	assert.NotSame(t, http.DefaultTransport, transport)
	defaultTLS := http.DefaultTransport.(*http.Transport).TLSClientConfig
	assert.True(t, defaultTLS == nil || !defaultTLS.InsecureSkipVerify)
}
