package clients

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog_ui/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	categoriesPath = "/Categorias"
	productsPath   = "/Produto"

	// maxErrorBody bounds how much of a failed response is kept for diagnostics.
	maxErrorBody = 512
)

// ErrEmptyResponse is returned when a create succeeded upstream but echoed no product.
var ErrEmptyResponse = errors.New("catalog API returned an empty body")

// StatusError is a non-2xx answer from the catalog API.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: catalog API returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: catalog API returned status %d: %s", e.Op, e.StatusCode, e.Body)
}

var _ domain.CatalogAPI = (*CatalogClient)(nil)

type CatalogClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

type Option func(*CatalogClient)

// WithHTTPClient replaces the default client, including its timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *CatalogClient) { c.client = hc }
}

// WithInsecureTLS skips certificate verification (local dev certificates). It works on
// copies, so a client passed through WithHTTPClient is never modified.
func WithInsecureTLS() Option {
	return func(c *CatalogClient) {
		base, ok := c.client.Transport.(*http.Transport)
		if !ok || base == nil {
			base = http.DefaultTransport.(*http.Transport)
		}
		transport := base.Clone()
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{}
		}
		transport.TLSClientConfig.InsecureSkipVerify = true

		hc := *c.client
		hc.Transport = transport
		c.client = &hc
	}
}

func NewCatalogHTTPClient(baseURL string, timeout time.Duration, logger *logrus.Logger, opts ...Option) *CatalogClient {
	c := &CatalogClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CatalogClient) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if _, err := c.do(ctx, "list categories", http.MethodGet, categoriesPath, nil, nil, &categories); err != nil {
		return nil, err
	}
	c.log.Debugf("CatalogClient: Retrieved %d categories", len(categories))
	return nonNil(categories), nil
}

func (c *CatalogClient) CreateProduct(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	var created domain.Product
	decoded, err := c.do(ctx, "create product", http.MethodPost, productsPath, nil, draft, &created)
	if err != nil {
		return nil, err
	}
	if !decoded {
		c.log.Warnf("CatalogClient: Create of product '%s' returned no body", draft.Name)
		return nil, fmt.Errorf("create product: %w", ErrEmptyResponse)
	}
	c.log.Infof("CatalogClient: Product '%s' created with ID %d", created.Name, created.ID)
	return &created, nil
}

func (c *CatalogClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if _, err := c.do(ctx, "list products", http.MethodGet, productsPath, nil, nil, &products); err != nil {
		return nil, err
	}
	c.log.Debugf("CatalogClient: Retrieved %d products", len(products))
	return nonNil(products), nil
}

func (c *CatalogClient) UpdateProduct(ctx context.Context, id int, draft domain.ProductDraft) (*domain.Product, error) {
	var updated domain.Product
	decoded, err := c.do(ctx, "update product", http.MethodPut, productPath(id), nil, draft, &updated)
	if err != nil {
		return nil, err
	}
	if !decoded {
		// 204 No Content: the full replace went through, echo what was sent.
		updated = draft.Apply(id)
	}
	c.log.Infof("CatalogClient: Product ID %d updated", id)
	return &updated, nil
}

func (c *CatalogClient) DeleteProduct(ctx context.Context, id int) error {
	if _, err := c.do(ctx, "delete product", http.MethodDelete, productPath(id), nil, nil, nil); err != nil {
		return err
	}
	c.log.Infof("CatalogClient: Product ID %d deleted", id)
	return nil
}

func (c *CatalogClient) SearchProducts(ctx context.Context, namePart string, categoryID int) ([]domain.Product, error) {
	query := url.Values{}
	if namePart != "" {
		query.Set("nome", namePart)
	}
	if categoryID > 0 {
		query.Set("categoriaId", strconv.Itoa(categoryID))
	}

	var products []domain.Product
	if _, err := c.do(ctx, "search products", http.MethodGet, productsPath, query, nil, &products); err != nil {
		return nil, err
	}
	c.log.Debugf("CatalogClient: Search (nome=%q, categoriaId=%d) returned %d products", namePart, categoryID, len(products))
	return nonNil(products), nil
}

// do issues one request. It reports whether a response body was decoded into out.
func (c *CatalogClient) do(ctx context.Context, op, method, path string, query url.Values, body, out any) (bool, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			c.log.Errorf("CatalogClient: Failed to marshal %s payload: %v", op, err)
			return false, fmt.Errorf("%s: failed to prepare request body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		c.log.Errorf("CatalogClient: Failed to create %s request: %v", op, err)
		return false, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debugf("CatalogClient: %s %s", method, target)
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("CatalogClient: Failed to execute %s request: %v", op, err)
		return false, fmt.Errorf("%s: failed to communicate with catalog API: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Warnf("CatalogClient: %s failed with status %d. Response body: %s", op, resp.StatusCode, string(bodyBytes))
		return false, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(bodyBytes))}
	}

	if out == nil {
		return false, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Errorf("CatalogClient: Failed to read %s response: %v", op, err)
		return false, fmt.Errorf("%s: failed to read response: %w", op, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Errorf("CatalogClient: Failed to decode %s response: %v", op, err)
		return false, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return true, nil
}

func productPath(id int) string {
	return productsPath + "/" + strconv.Itoa(id)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
