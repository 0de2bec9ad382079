package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salaryhelper/salaryhelper-client/internal/domain"
	"github.com/salaryhelper/salaryhelper-client/internal/session"
	"github.com/salaryhelper/salaryhelper-client/pkg/publishers"
)

func TestLoginPersistsTokenAndUser(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{"code":0,"data":{"token":"t1","user":{"id":1}}}`)
	sink := &recordingSink{}
	sess := session.New(session.NewMemoryStore())
	c := New(Options{BaseURL: b.srv.URL + "/api/v1", Session: sess, Events: sink})

	res, err := c.Login(context.Background(), "1234567890", "0000")
	require.NoError(t, err)
	assert.Equal(t, "t1", res.Token)

	req := b.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/v1/auth/login", req.Path)
	assert.JSONEq(t, `{"phone":"1234567890","code":"0000"}`, string(req.Body))

	tok, err := sess.Token()
	require.NoError(t, err)
	assert.Equal(t, "t1", tok)
	assert.True(t, c.IsLoggedIn())
	require.NotNil(t, c.CurrentUser())
	assert.Equal(t, *res.User, *c.CurrentUser())
	assert.Equal(t, domain.ID("1"), c.CurrentUser().ID)

	require.Len(t, sink.events, 1)
	assert.Equal(t, publishers.KindLogin, sink.events[0].Kind)
	assert.Equal(t, "1", sink.events[0].UserID)
}

func TestLoginWithoutTokenStoresNothing(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{"code":0,"data":{"token":""}}`)
	c := b.client(Strict, nil)

	_, err := c.Login(context.Background(), "1", "2")
	require.NoError(t, err)
	assert.False(t, c.IsLoggedIn())
	assert.Nil(t, c.CurrentUser())
}

func TestLoginNonZeroCode(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{"code":1001,"message":"invalid code"}`)
	c := b.client(Strict, nil)

	_, err := c.Login(context.Background(), "1", "bad")
	var envErr *EnvelopeError
	require.ErrorAs(t, err, &envErr)
	assert.Equal(t, 1001, envErr.Code)
	assert.Contains(t, err.Error(), "invalid code")
	assert.False(t, c.IsLoggedIn())
}

func TestSessionEventFailureDoesNotFailLogin(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{"code":0,"data":{"token":"t1","user":{"id":"u"}}}`)
	c := New(Options{BaseURL: b.srv.URL, Events: &recordingSink{err: errors.New("sink down")}})

	_, err := c.Login(context.Background(), "1", "2")
	require.NoError(t, err)
	assert.True(t, c.IsLoggedIn())
}

func TestLogoutClearsSession(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{}`)
	sink := &recordingSink{}
	sess := session.New(session.NewMemoryStore())
	require.NoError(t, sess.Save("t1", &domain.User{ID: "7"}))
	c := New(Options{BaseURL: b.srv.URL, Session: sess, Events: sink})

	require.NoError(t, c.Logout(context.Background()))
	assert.False(t, c.IsLoggedIn())
	assert.Nil(t, c.CurrentUser())
	tok, err := sess.Token()
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.Len(t, sink.events, 1)
	assert.Equal(t, publishers.KindLogout, sink.events[0].Kind)
	assert.Equal(t, "7", sink.events[0].UserID)

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Empty(t, b.requests, "logout must not hit the network")
}

func TestFetchCurrentUserRefreshesSnapshot(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{"code":0,"data":{"id":"u1","phone":"138","nickname":"新名字"}}`)
	sess := session.New(session.NewMemoryStore())
	require.NoError(t, sess.Save("t1", &domain.User{ID: "u1", Nickname: "old"}))
	c := b.client(Strict, sess)

	user, err := c.FetchCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "新名字", user.Nickname)
	assert.Equal(t, "新名字", c.CurrentUser().Nickname)
	assert.Equal(t, "Bearer t1", b.last().Header.Get("Authorization"))
	assert.Equal(t, "/api/v1/auth/me", b.last().Path)
}

func TestFetchCurrentUserUnauthorizedClearsSession(t *testing.T) {
	b := newBackend(t, http.StatusUnauthorized, `{"detail":"Invalid token"}`)
	sink := &recordingSink{}
	sess := session.New(session.NewMemoryStore())
	require.NoError(t, sess.Save("stale", &domain.User{ID: "u1"}))
	c := New(Options{BaseURL: b.srv.URL, Session: sess, Events: sink})

	_, err := c.FetchCurrentUser(context.Background())
	require.EqualError(t, err, "Invalid token")
	assert.True(t, IsUnauthorized(err))
	assert.False(t, c.IsLoggedIn())
	assert.Nil(t, c.CurrentUser())

	require.Len(t, sink.events, 1)
	assert.Equal(t, publishers.KindInvalidated, sink.events[0].Kind)
	assert.Equal(t, "u1", sink.events[0].UserID)
	assert.Equal(t, "Invalid token", sink.events[0].Reason)
}

func TestFetchCurrentUserNonZeroCodeKeepsSession(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{"code":2,"message":"busy"}`)
	sess := session.New(session.NewMemoryStore())
	require.NoError(t, sess.Save("t1", &domain.User{ID: "u1"}))
	c := b.client(Strict, sess)

	_, err := c.FetchCurrentUser(context.Background())
	var envErr *EnvelopeError
	require.ErrorAs(t, err, &envErr)
	assert.True(t, c.IsLoggedIn())
}

func TestFetchCurrentUserNullDataKeepsToken(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{"code":0,"data":null}`)
	sink := &recordingSink{}
	sess := session.New(session.NewMemoryStore())
	require.NoError(t, sess.Save("t1", &domain.User{ID: "u1"}))
	c := New(Options{BaseURL: b.srv.URL, Session: sess, Events: sink})

	user, err := c.FetchCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.True(t, c.IsLoggedIn())
	assert.Nil(t, c.CurrentUser())
	assert.JSONEq(t, `null`, string(sess.UserJSON()))
	assert.Empty(t, sink.events)
}

func TestFetchCurrentUserMalformedCodeKeepsSession(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{"code":"0","data":{"id":"u1"}}`)
	sess := session.New(session.NewMemoryStore())
	require.NoError(t, sess.Save("t1", &domain.User{ID: "u1", Nickname: "cached"}))
	c := b.client(Strict, sess)

	_, err := c.FetchCurrentUser(context.Background())
	var envErr *EnvelopeError
	require.ErrorAs(t, err, &envErr)
	assert.Equal(t, `"0"`, envErr.RawCode)
	assert.True(t, c.IsLoggedIn())
	assert.Equal(t, "cached", c.CurrentUser().Nickname)
}

func TestConcurrentLoginsLastWriteWins(t *testing.T) {
	sess := session.New(session.NewMemoryStore())
	var wg sync.WaitGroup
	for _, tok := range []string{"a", "b", "c"} {
		b := newBackend(t, http.StatusOK, `{"code":0,"data":{"token":"`+tok+`","user":{"id":"`+tok+`"}}}`)
		c := New(Options{BaseURL: b.srv.URL, Session: sess})
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Login(context.Background(), "1", "2")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	tok, err := sess.Token()
	require.NoError(t, err)
	assert.Contains(t, []string{"a", "b", "c"}, tok)
}

func TestLoginStoresUserJSONAsReceived(t *testing.T) {
	userJSON := `{"id":1,"phone":"138","vip_level":3,"balance":12.5}`
	b := newBackend(t, http.StatusOK, `{"code":0,"data":{"token":"t1","user":`+userJSON+`}}`)
	store := session.NewMemoryStore()
	c := b.client(Strict, session.New(store))

	res, err := c.Login(context.Background(), "138", "0000")
	require.NoError(t, err)
	assert.JSONEq(t, userJSON, string(res.RawUser))

	stored, err := store.Get(session.UserKey)
	require.NoError(t, err)
	assert.Equal(t, userJSON, stored)

	var again map[string]any
	require.NoError(t, json.Unmarshal([]byte(stored), &again))
	assert.Equal(t, float64(1), again["id"])
	assert.Equal(t, float64(3), again["vip_level"])
}

func TestFetchCurrentUserStoresUserJSONAsReceived(t *testing.T) {
	userJSON := `{"id":7,"nickname":"小王","tags":["vip"]}`
	b := newBackend(t, http.StatusOK, `{"code":0,"data":`+userJSON+`}`)
	store := session.NewMemoryStore()
	sess := session.New(store)
	require.NoError(t, sess.Save("t1", &domain.User{ID: "7"}))
	c := b.client(Strict, sess)

	user, err := c.FetchCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "小王", user.Nickname)

	stored, err := store.Get(session.UserKey)
	require.NoError(t, err)
	assert.Equal(t, userJSON, stored)
}
