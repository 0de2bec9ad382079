package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/salaryhelper/salaryhelper-client/internal/domain"
	"github.com/salaryhelper/salaryhelper-client/pkg/publishers"
)

type smsRequest struct {
	Phone string `json:"phone"`
}

type loginRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// SendSMS asks the backend to text a verification code to phone.
func (c *Client) SendSMS(ctx context.Context, phone string) (*Response, error) {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/send-sms",
		Body:   smsRequest{Phone: phone},
	})
}

// Login exchanges phone and verification code for a token. On success the
// token and user are stored in the session.
func (c *Client) Login(ctx context.Context, phone, code string) (*domain.LoginResult, error) {
	var res domain.LoginResult
	err := c.call(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   loginRequest{Phone: phone, Code: code},
	}, &res)
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return &res, nil
	}

	if err := c.session.SaveRaw(res.Token, res.RawUser); err != nil {
		return &res, fmt.Errorf("persist session: %w", err)
	}
	c.emit(ctx, publishers.KindLogin, userID(res.User), "")
	return &res, nil
}

// FetchCurrentUser loads /auth/me and caches the user JSON as received.
// Any request failure clears the session before the error is returned, so
// callers can treat it as "log in again". A reply with a non-zero code leaves
// the session alone. A successful reply with null data caches null and
// returns (nil, nil); the token is kept.
func (c *Client) FetchCurrentUser(ctx context.Context) (*domain.User, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/auth/me"})
	if err != nil {
		return nil, c.invalidate(ctx, err)
	}

	var user *domain.User
	if err := decodeData(resp, &user); err != nil {
		var envErr *EnvelopeError
		if errors.As(err, &envErr) {
			return nil, err
		}
		return nil, c.invalidate(ctx, err)
	}

	if err := c.session.SetUserJSON(resp.Data); err != nil {
		return nil, err
	}
	return user, nil
}

// invalidate clears the session and returns cause, joined with any store error.
func (c *Client) invalidate(ctx context.Context, cause error) error {
	prev := c.session.User()
	if err := c.session.Clear(); err != nil {
		return errors.Join(cause, err)
	}
	c.emit(ctx, publishers.KindInvalidated, userID(prev), cause.Error())
	return cause
}

// Logout forgets the token and cached user. No request is sent.
func (c *Client) Logout(ctx context.Context) error {
	prev := c.session.User()
	if err := c.session.Clear(); err != nil {
		return err
	}
	c.emit(ctx, publishers.KindLogout, userID(prev), "")
	return nil
}

// IsLoggedIn reports whether a token is stored.
func (c *Client) IsLoggedIn() bool {
	return c.session.LoggedIn()
}

// CurrentUser returns the cached user without touching the network.
func (c *Client) CurrentUser() *domain.User {
	return c.session.User()
}

func (c *Client) emit(ctx context.Context, kind, uid, reason string) {
	if c.events == nil {
		return
	}
	evt := publishers.NewEvent(kind, uid)
	evt.Reason = reason
	if _, err := c.events.Publish(ctx, evt); err != nil {
		c.log.WarnObj("session event not delivered", "session_event_error", map[string]any{
			"kind":  kind,
			"error": err.Error(),
		})
	}
}

func userID(u *domain.User) string {
	if u == nil {
		return ""
	}
	return u.ID.String()
}
