package vkapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/jrsteele09/go-vk-client/internal/utils"
	"github.com/jrsteele09/go-vk-client/sessions"
	"github.com/jrsteele09/go-vk-client/uri"
	"github.com/jrsteele09/go-vk-client/vkapi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const (
	testClientID = "123"
	testSecret   = "s3cr3t"
)

// fakeVK serves the token and method endpoints and records every request.
type fakeVK struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*url.URL
	routes   map[string]string
}

func newFakeVK(t *testing.T) *fakeVK {
	t.Helper()
	f := &fakeVK{routes: map[string]string{}}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.URL)
		body, ok := f.routes[r.URL.Path]
		f.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeVK) handle(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = body
}

func (f *fakeVK) calls() []*url.URL {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*url.URL(nil), f.requests...)
}

func (f *fakeVK) config(scope ...string) vkapi.Config {
	cfg := vkapi.DefaultConfig(testClientID, testSecret, scope...)
	cfg.Endpoint = oauth2.Endpoint{
		AuthURL:  f.URL + "/authorize",
		TokenURL: f.URL + "/access_token",
	}
	cfg.MethodURL = f.URL + "/method"
	return cfg
}

func newTestClient(t *testing.T, cfg vkapi.Config, store sessions.Store) *vkapi.Client {
	t.Helper()
	client, err := vkapi.New(cfg, store, vkapi.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return client
}

func authorizedStore(t *testing.T, scope []string, token string) *sessions.InMemoryStore {
	t.Helper()
	store := sessions.NewInMemoryStore()
	err := store.Set(context.Background(), sessions.Key(scope), &sessions.Session{
		UserID:      utils.Ptr[int64](42),
		AccessToken: token,
	}, sessions.DefaultTTL)
	require.NoError(t, err)
	return store
}

func TestNew(t *testing.T) {
	t.Run("client id is required", func(t *testing.T) {
		_, err := vkapi.New(vkapi.DefaultConfig("", testSecret), sessions.NewInMemoryStore())
		require.Error(t, err)
	})

	t.Run("store is required", func(t *testing.T) {
		_, err := vkapi.New(vkapi.DefaultConfig(testClientID, testSecret), nil)
		require.Error(t, err)
	})

	t.Run("config is copied", func(t *testing.T) {
		scope := []string{"offline", "email"}
		client := newTestClient(t, vkapi.DefaultConfig(testClientID, testSecret, scope...), sessions.NewInMemoryStore())
		scope[0] = "wall"
		require.Equal(t, []string{"offline", "email"}, client.Config().Scope)
		require.Equal(t, sessions.Key([]string{"offline", "email"}), client.SessionKey())
	})
}

func TestClient_AuthURI(t *testing.T) {
	t.Run("unsigned parameters in order", func(t *testing.T) {
		client := newTestClient(t, vkapi.DefaultConfig(testClientID, testSecret, "offline", "email"), sessions.NewInMemoryStore())

		got := client.AuthURI("https://app.example/cb")
		require.Equal(t, "https://oauth.vk.com/authorize?client_id=123&scope=offline%2Cemail&display=popup"+
			"&redirect_uri=https%3A%2F%2Fapp.example%2Fcb&response_type=code", got)
		require.Equal(t, "https://app.example/cb", client.RedirectURI())
	})

	t.Run("state is passed through", func(t *testing.T) {
		client := newTestClient(t, vkapi.DefaultConfig(testClientID, testSecret, "offline"), sessions.NewInMemoryStore())
		got := client.AuthURIWithState("https://app.example/cb", "xyz")
		require.True(t, strings.HasSuffix(got, "&response_type=code&state=xyz"), got)
	})

	t.Run("forward url wraps the redirect", func(t *testing.T) {
		cfg := vkapi.DefaultConfig(testClientID, testSecret, "offline")
		cfg.ForwardURL = "https://fwd.example/vk"
		client := newTestClient(t, cfg, sessions.NewInMemoryStore())

		got, err := url.Parse(client.AuthURI("https://app.example/cb?x=1"))
		require.NoError(t, err)
		require.Equal(t, "https://fwd.example/vk?forward=https%3A%2F%2Fapp.example%2Fcb%3Fx%3D1", got.Query().Get("redirect_uri"))
	})

	t.Run("auth uri is never signed", func(t *testing.T) {
		cfg := vkapi.DefaultConfig(testClientID, testSecret, "offline")
		cfg.Signed = true
		client := newTestClient(t, cfg, sessions.NewInMemoryStore())
		require.NotContains(t, client.AuthURI("https://app.example/cb"), "sig=")
	})
}

func TestClient_Authorize(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the session", func(t *testing.T) {
		vk := newFakeVK(t)
		vk.handle("/access_token", `{"access_token":"tok","expires_in":0,"user_id":66748,"email":"u@example.com"}`)
		store := sessions.NewInMemoryStore()
		client := newTestClient(t, vk.config("offline", "email"), store)

		client.SetRedirectURI("https://app.example/cb")
		require.True(t, client.Authorize(ctx, "the-code"))
		require.Empty(t, client.ErrorMessage())

		calls := vk.calls()
		require.Len(t, calls, 1)
		require.Equal(t, "client_id=123&client_secret=s3cr3t&redirect_uri=https%3A%2F%2Fapp.example%2Fcb&code=the-code", calls[0].RawQuery)

		require.True(t, client.Authenticated(ctx))
		require.Equal(t, "tok", client.AccessToken(ctx))
		require.Equal(t, "u@example.com", client.Email(ctx))
		userID, ok := client.UserID(ctx)
		require.True(t, ok)
		require.Equal(t, int64(66748), userID)
		expiresIn, ok := client.ExpiresIn(ctx)
		require.True(t, ok)
		require.Zero(t, expiresIn)

		stored, err := store.Get(ctx, sessions.Key([]string{"email", "offline"}))
		require.NoError(t, err)
		require.Equal(t, "tok", stored.AccessToken)
	})

	t.Run("idempotent once authorized", func(t *testing.T) {
		vk := newFakeVK(t)
		vk.handle("/access_token", `{"access_token":"tok","user_id":1}`)
		client := newTestClient(t, vk.config("offline"), sessions.NewInMemoryStore())

		require.True(t, client.Authorize(ctx, "code"))
		require.True(t, client.Authorize(ctx, "code"))
		require.Len(t, vk.calls(), 1)
	})

	t.Run("remote error is recorded", func(t *testing.T) {
		vk := newFakeVK(t)
		vk.handle("/access_token", `{"error":{"error_code":5,"error_msg":"bad"}}`)
		client := newTestClient(t, vk.config("offline"), sessions.NewInMemoryStore())

		require.False(t, client.Authorize(ctx, "code"))
		require.Equal(t, "response contains error(5): bad", client.ErrorMessage())
		require.Equal(t, vkapi.KindRemote, vkapi.Kind(client.LastError()))
		require.False(t, client.Authenticated(ctx))
	})

	t.Run("transport error is recorded", func(t *testing.T) {
		vk := newFakeVK(t)
		client := newTestClient(t, vk.config("offline"), sessions.NewInMemoryStore())

		require.False(t, client.Authorize(ctx, "code"))
		var te *vkapi.TransportError
		require.True(t, errors.As(client.LastError(), &te))
		require.Equal(t, http.StatusNotFound, te.Status)
	})

	t.Run("non json body is recorded", func(t *testing.T) {
		vk := newFakeVK(t)
		vk.handle("/access_token", `<html>oops</html>`)
		client := newTestClient(t, vk.config("offline"), sessions.NewInMemoryStore())

		require.False(t, client.Authorize(ctx, "code"))
		require.Equal(t, vkapi.KindDecode, vkapi.Kind(client.LastError()))
	})

	t.Run("missing access token fails", func(t *testing.T) {
		vk := newFakeVK(t)
		vk.handle("/access_token", `{"user_id":1}`)
		client := newTestClient(t, vk.config("offline"), sessions.NewInMemoryStore())

		require.False(t, client.Authorize(ctx, "code"))
		require.NotEmpty(t, client.ErrorMessage())
		require.False(t, client.Authenticated(ctx))
	})

	t.Run("soft warning does not fail", func(t *testing.T) {
		vk := newFakeVK(t)
		vk.handle("/access_token", `{"access_token":"tok","error":"slow down"}`)
		client := newTestClient(t, vk.config("offline"), sessions.NewInMemoryStore())

		require.True(t, client.Authorize(ctx, "code"))
		require.Equal(t, "slow down", client.ErrorMessage())
		require.Equal(t, vkapi.KindWarning, vkapi.Kind(client.LastError()))
	})

	t.Run("forward url is used as redirect_uri", func(t *testing.T) {
		vk := newFakeVK(t)
		vk.handle("/access_token", `{"access_token":"tok"}`)
		cfg := vk.config("offline")
		cfg.ForwardURL = "https://fwd.example/vk?a=b"
		client := newTestClient(t, cfg, sessions.NewInMemoryStore())

		client.AuthURI("https://app.example/cb")
		require.True(t, client.Authorize(ctx, "code"))
		calls := vk.calls()
		require.Len(t, calls, 1)
		require.Equal(t, "https://fwd.example/vk?a=b&forward=https%3A%2F%2Fapp.example%2Fcb", calls[0].Query().Get("redirect_uri"))
	})
}

func TestClient_Call(t *testing.T) {
	ctx := context.Background()
	scope := []string{"offline"}

	t.Run("requires a token", func(t *testing.T) {
		vk := newFakeVK(t)
		client := newTestClient(t, vk.config(scope...), sessions.NewInMemoryStore())

		_, err := client.Call(ctx, "users.get", uri.NewParams("user_ids", "1"))
		var authErr *vkapi.AuthRequiredError
		require.True(t, errors.As(err, &authErr))
		require.Equal(t, "users.get", authErr.Method)
		require.ErrorIs(t, err, vkapi.ErrAuthRequired)
		require.Empty(t, vk.calls())
	})

	t.Run("token in params is enough", func(t *testing.T) {
		vk := newFakeVK(t)
		vk.handle("/method/users.get", `{"response":[]}`)
		client := newTestClient(t, vk.config(scope...), sessions.NewInMemoryStore())

		_, err := client.Call(ctx, "users.get", uri.NewParams("access_token", "given"))
		require.NoError(t, err)
		require.Equal(t, "given", vk.calls()[0].Query().Get("access_token"))
	})

	t.Run("injects stored token and version", func(t *testing.T) {
		vk := newFakeVK(t)
		vk.handle("/method/users.get", `{"response":1}`)
		cfg := vk.config(scope...)
		cfg.APIVersion = "5.131"
		client := newTestClient(t, cfg, authorizedStore(t, scope, "tok"))

		params := uri.NewParams("user_ids", "1", "fields", "")
		payload, err := client.Call(ctx, "users.get", params)
		require.NoError(t, err)
		require.Equal(t, `{"response":1}`, payload.String())
		require.Len(t, params, 2)

		calls := vk.calls()
		require.Len(t, calls, 1)
		require.Equal(t, "/method/users.get", calls[0].Path)
		require.Equal(t, "client_id=123&user_ids=1&access_token=tok&v=5.131", calls[0].RawQuery)
	})

	t.Run("explicit version wins", func(t *testing.T) {
		vk := newFakeVK(t)
		vk.handle("/method/users.get", `{"response":1}`)
		cfg := vk.config(scope...)
		cfg.APIVersion = "5.131"
		client := newTestClient(t, cfg, authorizedStore(t, scope, "tok"))

		_, err := client.Call(ctx, "users.get", uri.NewParams("v", "5.199"))
		require.NoError(t, err)
		require.Equal(t, "5.199", vk.calls()[0].Query().Get("v"))
	})

	t.Run("signed call", func(t *testing.T) {
		vk := newFakeVK(t)
		vk.handle("/method/wall.get", `{"response":{"count":0}}`)
		cfg := vk.config(scope...)
		cfg.Signed = true
		client := newTestClient(t, cfg, authorizedStore(t, scope, "tok"))

		_, err := client.Call(ctx, "wall.get", uri.NewParams("owner_id", "-1", "count", "5"))
		require.NoError(t, err)

		got := vk.calls()[0]
		require.Equal(t, "access_token=tok&client_id=123&count=5&format=json&owner_id=-1&sig=", got.RawQuery[:strings.Index(got.RawQuery, "sig=")+4])

		query := map[string]string{}
		for k, v := range got.Query() {
			if k != uri.SignatureParam {
				query[k] = v[0]
			}
		}
		require.Equal(t, uri.Signature(uri.FromMap(query), testSecret), got.Query().Get(uri.SignatureParam))
	})

	t.Run("method url template", func(t *testing.T) {
		vk := newFakeVK(t)
		vk.handle("/api/status.get.json", `{"response":{"text":"hi"}}`)
		cfg := vk.config(scope...)
		cfg.MethodURL = vk.URL + "/api/%s.json"
		client := newTestClient(t, cfg, authorizedStore(t, scope, "tok"))

		payload, err := client.Call(ctx, "status.get", nil)
		require.NoError(t, err)
		require.Equal(t, map[string]any{"text": "hi"}, payload.Response())
	})

	t.Run("remote error propagates", func(t *testing.T) {
		vk := newFakeVK(t)
		vk.handle("/method/wall.post", `{"error":{"error_code":15,"error_msg":"Access denied"}}`)
		client := newTestClient(t, vk.config(scope...), authorizedStore(t, scope, "tok"))

		_, err := client.Call(ctx, "wall.post", uri.NewParams("message", "hi"))
		var re *vkapi.RemoteError
		require.True(t, errors.As(err, &re))
		require.Equal(t, 15, re.Code)
		require.Equal(t, "Access denied", re.Message)
	})

	t.Run("transport error propagates", func(t *testing.T) {
		vk := newFakeVK(t)
		client := newTestClient(t, vk.config(scope...), authorizedStore(t, scope, "tok"))

		_, err := client.Call(ctx, "missing.method", nil)
		require.Equal(t, vkapi.KindTransport, vkapi.Kind(err))
	})

	t.Run("decode error propagates", func(t *testing.T) {
		vk := newFakeVK(t)
		vk.handle("/method/users.get", `not json`)
		client := newTestClient(t, vk.config(scope...), authorizedStore(t, scope, "tok"))

		_, err := client.Call(ctx, "users.get", nil)
		var de *vkapi.DecodeError
		require.True(t, errors.As(err, &de))
		require.Equal(t, "not json", de.Body)
	})

	t.Run("soft warning is recorded", func(t *testing.T) {
		vk := newFakeVK(t)
		vk.handle("/method/users.get", `{"error":"rate limited"}`)
		client := newTestClient(t, vk.config(scope...), authorizedStore(t, scope, "tok"))

		payload, err := client.Call(ctx, "users.get", nil)
		require.NoError(t, err)
		require.Equal(t, map[string]any{"error": "rate limited"}, payload.Object())
		require.Equal(t, "rate limited", client.ErrorMessage())
	})
}

func TestClient_Token(t *testing.T) {
	ctx := context.Background()
	scope := []string{"offline"}

	t.Run("unauthorized", func(t *testing.T) {
		client := newTestClient(t, vkapi.DefaultConfig(testClientID, testSecret, scope...), sessions.NewInMemoryStore())
		_, err := client.Token(ctx)
		require.ErrorIs(t, err, vkapi.ErrAuthRequired)
	})

	t.Run("exposes session as oauth2 token", func(t *testing.T) {
		client := newTestClient(t, vkapi.DefaultConfig(testClientID, testSecret, scope...), authorizedStore(t, scope, "tok"))

		token, err := client.TokenSource().Token()
		require.NoError(t, err)
		require.Equal(t, "tok", token.AccessToken)
		require.Equal(t, int64(42), token.Extra("user_id"))
		require.True(t, token.Valid())
	})
}
