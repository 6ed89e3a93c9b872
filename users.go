package storefront

import (
	"context"
	"fmt"
	"net/http"
)

// Users describes the users operation and its observable behavior.
//
// Users may return an error when input validation, dependency calls, or security checks fail.
// Users does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	if c == nil {
		return nil, ErrClientNotReady
	}
	var out []User
	if err := c.getJSON(ctx, "/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// User describes the user operation and its observable behavior.
//
// User may return an error when input validation, dependency calls, or security checks fail.
// User does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) User(ctx context.Context, id int64) (User, error) {
	if c == nil {
		return User{}, ErrClientNotReady
	}
	var out User
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%d", id), &out); err != nil {
		return User{}, err
	}
	return out, nil
}

// UserEmail fetches only the email address of one user.
func (c *Client) UserEmail(ctx context.Context, id int64) (string, error) {
	if c == nil {
		return "", ErrClientNotReady
	}
	var out struct {
		Email string `json:"email"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/users/email/%d", id), &out); err != nil {
		return "", err
	}
	return out.Email, nil
}

// UpdateUser patches the given fields; zero-valued fields are omitted
// from the request body.
func (c *Client) UpdateUser(ctx context.Context, id int64, input UserUpdate) (User, error) {
	if c == nil {
		return User{}, ErrClientNotReady
	}
	if err := validateInput(input); err != nil {
		c.metricInc(MetricValidationRejected)
		return User{}, err
	}

	data, err := c.call(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), input)
	if err != nil {
		return User{}, err
	}
	var out User
	if err := decodePayload(data, &out); err != nil {
		return User{}, err
	}
	c.notify.Notify(NoticeSuccess, "User updated successfully")
	return out, nil
}

// DeleteUser asks the confirmer before issuing the delete. A declined
// confirmation returns ErrDeleteNotConfirmed without touching the network.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	if c == nil {
		return ErrClientNotReady
	}
	if !c.confirm.Confirm("Are you sure you want to delete this user?") {
		c.metricInc(MetricDeleteDeclined)
		return ErrDeleteNotConfirmed
	}

	if _, err := c.call(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil); err != nil {
		return err
	}
	c.notify.Notify(NoticeSuccess, "User deleted successfully")
	return nil
}
