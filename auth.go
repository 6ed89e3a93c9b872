package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shoply/storefront/session"
)

// loginData is the payload under data on a successful login or signup.
type loginData struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	RoleID int    `json:"roleId"`
}

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Login(ctx context.Context, creds Credentials) (session.Identity, error) {
	if c == nil {
		return session.Identity{}, ErrClientNotReady
	}
	if err := validateInput(creds); err != nil {
		c.metricInc(MetricValidationRejected)
		return session.Identity{}, err
	}

	data, err := c.call(ctx, http.MethodPost, "/login", creds)
	if err != nil {
		c.metricInc(MetricLoginFailure)
		return session.Identity{}, err
	}

	var payload loginData
	if err := json.Unmarshal(data, &payload); err != nil || payload.ID == 0 {
		c.metricInc(MetricLoginFailure)
		return session.Identity{}, &Error{Kind: KindApplication, Message: "invalid login response"}
	}

	role := session.Role(payload.RoleID)
	if err := c.sessions.SetUserSession(ctx, strconv.FormatInt(payload.ID, 10), payload.Email, role); err != nil {
		return session.Identity{}, err
	}
	c.rearmExpiry()

	c.metricInc(MetricLoginSuccess)
	c.log.Info().Int64("user_id", payload.ID).Str("role", role.String()).Msg("logged in")

	return session.Identity{UserID: payload.ID, Email: payload.Email, Role: role}, nil
}

// Signup describes the signup operation and its observable behavior.
//
// Signup may return an error when input validation, dependency calls, or security checks fail.
// Signup does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Signup(ctx context.Context, input SignupInput) error {
	if c == nil {
		return ErrClientNotReady
	}
	if err := validateInput(input); err != nil {
		c.metricInc(MetricValidationRejected)
		return err
	}

	data, err := c.call(ctx, http.MethodPost, "/signup", input)
	if err != nil {
		c.metricInc(MetricSignupFailure)
		return err
	}
	if len(data) == 0 || string(data) == "null" {
		c.metricInc(MetricSignupFailure)
		return &Error{Kind: KindApplication, Message: "invalid signup response"}
	}

	c.metricInc(MetricSignupSuccess)
	c.log.Info().Str("email", input.Email).Msg("account created")
	return nil
}

// Logout posts the logout and tears the local session down regardless of
// the outcome: a failed logout request still clears the record and
// navigates to the entry route.
func (c *Client) Logout(ctx context.Context) error {
	if c == nil {
		return ErrClientNotReady
	}

	if _, err := c.call(ctx, http.MethodPost, "/logout", nil); err != nil {
		c.log.Warn().Err(err).Msg("logout request failed")
	}

	if err := c.sessions.Clear(ctx); err != nil {
		return err
	}
	c.metricInc(MetricLogout)
	c.nav.Navigate(RouteLogin)
	return nil
}

// ValidateSession probes the backend session liveness endpoint. Any
// failure forces session expiry: the 401 path is handled by the transport
// hook, every other failure lands in the same teardown here.
func (c *Client) ValidateSession(ctx context.Context) error {
	if c == nil {
		return ErrClientNotReady
	}
	if !c.sessions.LoggedIn(ctx) {
		return nil
	}

	c.metricInc(MetricLivenessProbe)
	_, err := c.call(ctx, http.MethodGet, "/auth/validate", nil)
	if err != nil {
		if !errors.Is(err, ErrAuthenticationRequired) {
			c.handleSessionExpiry(ctx)
		}
		return err
	}
	return nil
}
