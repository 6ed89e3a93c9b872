package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shoply/storefront/internal/querycache"
)

// Products describes the products operation and its observable behavior.
//
// Products may return an error when input validation, dependency calls, or security checks fail.
// Products does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	if c == nil {
		return nil, ErrClientNotReady
	}
	var out []Product
	if err := c.getJSON(ctx, "/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Product describes the product operation and its observable behavior.
//
// Product may return an error when input validation, dependency calls, or security checks fail.
// Product does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Product(ctx context.Context, id int64) (Product, error) {
	if c == nil {
		return Product{}, ErrClientNotReady
	}
	var out Product
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

// ProductsByCategory lists products in one category.
func (c *Client) ProductsByCategory(ctx context.Context, categoryID int64) ([]Product, error) {
	if c == nil {
		return nil, ErrClientNotReady
	}
	var out []Product
	if err := c.getJSON(ctx, fmt.Sprintf("/productsByCategory/%d", categoryID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductsBySeller lists the products owned by one seller.
func (c *Client) ProductsBySeller(ctx context.Context, sellerID int64) ([]Product, error) {
	if c == nil {
		return nil, ErrClientNotReady
	}
	var out []Product
	if err := c.getJSON(ctx, fmt.Sprintf("/productsBySeller/%d", sellerID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct describes the createproduct operation and its observable behavior.
//
// CreateProduct may return an error when input validation, dependency calls, or security checks fail.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (Product, error) {
	if c == nil {
		return Product{}, ErrClientNotReady
	}
	if err := validateInput(input); err != nil {
		c.metricInc(MetricValidationRejected)
		return Product{}, err
	}

	data, err := c.call(ctx, http.MethodPost, "/products", input)
	if err != nil {
		return Product{}, err
	}
	var out Product
	if err := decodePayload(data, &out); err != nil {
		return Product{}, err
	}
	c.notify.Notify(NoticeSuccess, "Product created successfully")
	return out, nil
}

// UpdateProduct describes the updateproduct operation and its observable behavior.
//
// UpdateProduct may return an error when input validation, dependency calls, or security checks fail.
func (c *Client) UpdateProduct(ctx context.Context, id int64, input ProductInput) (Product, error) {
	if c == nil {
		return Product{}, ErrClientNotReady
	}
	if err := validateInput(input); err != nil {
		c.metricInc(MetricValidationRejected)
		return Product{}, err
	}

	data, err := c.call(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), input)
	if err != nil {
		return Product{}, err
	}
	var out Product
	if err := decodePayload(data, &out); err != nil {
		return Product{}, err
	}
	c.notify.Notify(NoticeSuccess, "Product updated successfully")
	return out, nil
}

// DeleteProduct asks the confirmer before issuing the delete. A declined
// confirmation returns ErrDeleteNotConfirmed without touching the network.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	if c == nil {
		return ErrClientNotReady
	}
	if !c.confirm.Confirm("Are you sure you want to delete this product?") {
		c.metricInc(MetricDeleteDeclined)
		return ErrDeleteNotConfirmed
	}

	if _, err := c.call(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil); err != nil {
		return err
	}
	c.notify.Notify(NoticeSuccess, "Product deleted successfully")
	return nil
}

// SearchProducts runs a product search with the retry policy applied.
// Results are memoized per normalized query for the life of the client;
// a blank query falls back to the full product list.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	if c == nil {
		return nil, ErrClientNotReady
	}
	if strings.TrimSpace(query) == "" {
		return c.Products(ctx)
	}

	key := querycache.Key("search", query)
	if cached, ok := c.cache.Get(key); ok {
		var out []Product
		if err := json.Unmarshal(cached, &out); err == nil {
			c.metricInc(MetricSearchCacheHit)
			return out, nil
		}
	}
	c.metricInc(MetricSearchCacheMiss)

	path := "/products/search?q=" + url.QueryEscape(query)
	data, err := c.callRetry(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var out []Product
	if err := decodePayload(data, &out); err != nil {
		return nil, err
	}
	c.cache.Put(key, data)
	return out, nil
}

// FilterProducts lists products matching the filter, retrying transient
// failures. Zero-valued filter fields are omitted from the query string.
func (c *Client) FilterProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	if c == nil {
		return nil, ErrClientNotReady
	}

	path := "/products/filter"
	if vals := filter.Values(); len(vals) > 0 {
		path += "?" + vals.Encode()
	}
	data, err := c.callRetry(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var out []Product
	if err := decodePayload(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
