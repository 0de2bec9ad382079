package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/salaryhelper/salaryhelper-client/internal/domain"
)

// Keys under which the session is persisted.
const (
	TokenKey = "sh_token"
	UserKey  = "sh_current_user"
)

// Session is the token and user snapshot of a single login. It is
// last-write-wins: concurrent saves simply overwrite each other.
type Session struct {
	store Store
}

// New wraps store in a Session.
func New(store Store) *Session {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Session{store: store}
}

// Token returns the stored bearer token, or "" when absent.
func (s *Session) Token() (string, error) {
	tok, err := s.store.Get(TokenKey)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return tok, nil
}

// LoggedIn reports whether a token is stored. Read errors count as logged out.
func (s *Session) LoggedIn() bool {
	tok, err := s.Token()
	return err == nil && tok != ""
}

// UserJSON returns the cached user snapshot exactly as the server sent it,
// or nil when absent.
func (s *Session) UserJSON() json.RawMessage {
	raw, err := s.store.Get(UserKey)
	if err != nil || strings.TrimSpace(raw) == "" {
		return nil
	}
	return json.RawMessage(raw)
}

// User decodes the cached snapshot. It returns nil when the snapshot is
// absent, null or unreadable.
func (s *Session) User() *domain.User {
	raw := s.UserJSON()
	if raw == nil || strings.TrimSpace(string(raw)) == "null" {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil
	}
	return &u
}

// Save persists token and a typed user together.
func (s *Session) Save(token string, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return s.SaveRaw(token, raw)
}

// SaveRaw persists token and the server's user JSON together. The user bytes
// are stored unchanged.
func (s *Session) SaveRaw(token string, user json.RawMessage) error {
	if err := s.store.Set(TokenKey, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return s.SetUserJSON(user)
}

// SetUserJSON replaces the cached user snapshot. Empty input stores null.
func (s *Session) SetUserJSON(user json.RawMessage) error {
	text := strings.TrimSpace(string(user))
	if text == "" {
		text = "null"
	}
	if err := s.store.Set(UserKey, text); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// Clear removes token and user.
func (s *Session) Clear() error {
	if err := s.store.Delete(TokenKey, UserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close releases the underlying store.
func (s *Session) Close() error {
	return s.store.Close()
}
