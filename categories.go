package storefront

import (
	"context"
	"fmt"
	"net/http"
)

// Categories describes the categories operation and its observable behavior.
//
// Categories may return an error when input validation, dependency calls, or security checks fail.
// Categories does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	if c == nil {
		return nil, ErrClientNotReady
	}
	var out []Category
	if err := c.getJSON(ctx, "/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CategoryByID fetches a single category.
func (c *Client) CategoryByID(ctx context.Context, id int64) (Category, error) {
	if c == nil {
		return Category{}, ErrClientNotReady
	}
	var out Category
	if err := c.getJSON(ctx, fmt.Sprintf("/categories/%d", id), &out); err != nil {
		return Category{}, err
	}
	return out, nil
}

// CreateCategory describes the createcategory operation and its observable behavior.
//
// CreateCategory may return an error when input validation, dependency calls, or security checks fail.
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (Category, error) {
	if c == nil {
		return Category{}, ErrClientNotReady
	}
	if err := validateInput(input); err != nil {
		c.metricInc(MetricValidationRejected)
		return Category{}, err
	}

	data, err := c.call(ctx, http.MethodPost, "/categories", input)
	if err != nil {
		return Category{}, err
	}
	var out Category
	if err := decodePayload(data, &out); err != nil {
		return Category{}, err
	}
	c.notify.Notify(NoticeSuccess, "Category created successfully")
	return out, nil
}

// UpdateCategory describes the updatecategory operation and its observable behavior.
//
// UpdateCategory may return an error when input validation, dependency calls, or security checks fail.
func (c *Client) UpdateCategory(ctx context.Context, id int64, input CategoryInput) (Category, error) {
	if c == nil {
		return Category{}, ErrClientNotReady
	}
	if err := validateInput(input); err != nil {
		c.metricInc(MetricValidationRejected)
		return Category{}, err
	}

	data, err := c.call(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), input)
	if err != nil {
		return Category{}, err
	}
	var out Category
	if err := decodePayload(data, &out); err != nil {
		return Category{}, err
	}
	c.notify.Notify(NoticeSuccess, "Category updated successfully")
	return out, nil
}

// DeleteCategory issues the delete without a confirmation prompt.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	if c == nil {
		return ErrClientNotReady
	}
	if _, err := c.call(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil); err != nil {
		return err
	}
	c.notify.Notify(NoticeSuccess, "Category deleted successfully")
	return nil
}
