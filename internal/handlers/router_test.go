package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iyunix/go-mindster/internal/auth"
	"github.com/iyunix/go-mindster/internal/domain"
	"github.com/iyunix/go-mindster/internal/repository/conversation"
	"github.com/iyunix/go-mindster/internal/repository/message"
	"github.com/iyunix/go-mindster/internal/repository/provider"
	"github.com/iyunix/go-mindster/internal/repository/user"
	"github.com/iyunix/go-mindster/internal/secrets"
	"github.com/iyunix/go-mindster/internal/services/ai"
	"github.com/iyunix/go-mindster/internal/services/chat"
	"github.com/iyunix/go-mindster/internal/services/provider_services"
	"github.com/iyunix/go-mindster/internal/services/user_services"
	"github.com/iyunix/go-mindster/internal/testutil"
)

type testAPI struct {
	t        *testing.T
	handler  http.Handler
	db       *gorm.DB
	tokens   *auth.TokenManager
	upstream *httptest.Server
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/models":
			_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"gpt-4o-mini"}]}`))
		case "/chat/completions":
			if r.Header.Get("Authorization") != "Bearer sk-abc" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
				return
			}
			_, _ = w.Write([]byte(`{"id":"x","choices":[{"index":0,"message":{"role":"assistant","content":"Hi there"}}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(upstream.Close)

	db := testutil.NewDB(t)
	log := testutil.NopLogger{}
	clock := testutil.NewClock()
	tokens, err := auth.NewTokenManager("0123456789abcdef0123456789abcdef", 0)
	require.NoError(t, err)
	cipher, err := secrets.NewCipherFromHex("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	require.NoError(t, err)
	llm := ai.NewOpenAIProvider(&ai.Config{HTTPClient: upstream.Client()}, log)

	providers := provider_services.NewProviderService(provider.NewProviderRepository(db, log), cipher, llm, log).WithClock(clock.Now)
	conversations, err := chat.NewService(
		conversation.NewConversationRepository(db, log),
		message.NewMessageRepository(db, log),
		providers, llm, nil, log)
	require.NoError(t, err)
	conversations.WithClock(clock.Now)

	h := NewRouter(RouterDeps{
		Auth:          NewAuthHandler(user_services.NewAuthService(user.NewGormUserRepository(db, log), tokens, log), log),
		Providers:     NewProviderHandler(providers, log),
		Conversations: NewChatHandler(conversations, log),
		Verifier:      tokens,
		Logger:        log,
	})
	return &testAPI{t: t, handler: h, db: db, tokens: tokens, upstream: upstream}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

// register creates the admin through the API and returns its token.
func (a *testAPI) register() (string, domain.UserView) {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": "a@x.com", "password": "password123"})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		User  domain.UserView `json:"user"`
		Token string          `json:"token"`
	}
	decode(a.t, rec, &res)
	return res.Token, res.User
}

// tokenFor issues a token for a user inserted directly, bypassing registration.
func (a *testAPI) tokenFor(email string) string {
	a.t.Helper()
	u := testutil.CreateUser(a.t, a.db, email)
	tok, err := a.tokens.Issue(u.ID, u.Email)
	require.NoError(a.t, err)
	return tok
}

func TestHealthAndBanner(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"timestamp"`)

	rec = api.do(http.MethodGet, "/api/v1/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message"`)
}

func TestRegisterMeAndSecondRegistration(t *testing.T) {
	api := newTestAPI(t)
	token, user := api.register()
	assert.True(t, user.IsAdmin)
	assert.NotContains(t, token, " ")

	rec := api.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me domain.UserView
	decode(t, rec, &me)
	assert.Equal(t, user.ID, me.ID)
	assert.Equal(t, "a@x.com", me.Email)
	assert.NotContains(t, rec.Body.String(), "argon2")

	rec = api.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": "b@x.com", "password": "password456"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "REGISTRATION_CLOSED")

	rec = api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "a@x.com", "password": "password123"})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "a@x.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message"`)
}

func TestRegisterValidation(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": "a@x.com", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	api.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)
	for _, path := range []string{"/api/v1/auth/me", "/api/v1/providers", "/api/v1/conversations"} {
		rec := api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		rec = api.do(http.MethodGet, path, "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestMeForDeletedUserIsNotFound(t *testing.T) {
	api := newTestAPI(t)
	tok, err := api.tokens.Issue(uuid.New(), "ghost@x.com")
	require.NoError(t, err)
	rec := api.do(http.MethodGet, "/api/v1/auth/me", tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProviderKeyNeverReturned(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.register()

	rec := api.do(http.MethodPost, "/api/v1/providers", token, map[string]string{"name": "main", "apiKey": "sk-abc", "baseUrl": api.upstream.URL})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var p domain.ProviderView
	decode(t, rec, &p)

	var row domain.Provider
	require.NoError(t, api.db.First(&row, "id = ?", p.ID).Error)

	responses := []*httptest.ResponseRecorder{
		rec,
		api.do(http.MethodGet, "/api/v1/providers", token, nil),
		api.do(http.MethodGet, "/api/v1/providers/"+p.ID.String(), token, nil),
		api.do(http.MethodPatch, "/api/v1/providers/"+p.ID.String(), token, map[string]string{"name": "renamed"}),
	}
	for _, r := range responses {
		require.Equal(t, true, r.Code < 300, r.Body.String())
		assert.NotContains(t, r.Body.String(), "sk-abc")
		assert.NotContains(t, r.Body.String(), row.APIKeyEncrypted)
		assert.NotContains(t, r.Body.String(), "apiKey")
	}

	rec = api.do(http.MethodPost, "/api/v1/providers/"+p.ID.String()+"/test", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"models":["gpt-4o-mini"]}`, rec.Body.String())
}

func TestProviderRoutesEnforceOwnership(t *testing.T) {
	api := newTestAPI(t)
	owner, _ := api.register()
	intruder := api.tokenFor("b@x.com")

	rec := api.do(http.MethodPost, "/api/v1/providers", owner, map[string]string{"name": "main", "apiKey": "sk-abc"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var p domain.ProviderView
	decode(t, rec, &p)
	path := "/api/v1/providers/" + p.ID.String()

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, path, intruder, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPatch, path, intruder, map[string]string{"name": "x"}).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPost, path+"/test", intruder, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, path, intruder, nil).Code)

	rec = api.do(http.MethodGet, "/api/v1/providers", intruder, nil)
	assert.JSONEq(t, `[]`, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/v1/providers/not-a-uuid", owner, nil).Code)
	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, path, owner, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, path, owner, nil).Code)
}

func TestProviderPatchNullBaseURLRestoresDefault(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.register()

	rec := api.do(http.MethodPost, "/api/v1/providers", token, map[string]string{"name": "p", "apiKey": "k", "baseUrl": "https://custom.example/v1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var p domain.ProviderView
	decode(t, rec, &p)

	rec = api.do(http.MethodPatch, "/api/v1/providers/"+p.ID.String(), token, map[string]interface{}{"baseUrl": nil})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &p)
	assert.Equal(t, domain.DefaultProviderBaseURL, p.BaseURL)
}

func TestConversationFlow(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.register()

	rec := api.do(http.MethodPost, "/api/v1/providers", token, map[string]string{"name": "main", "apiKey": "sk-abc", "baseUrl": api.upstream.URL})
	require.Equal(t, http.StatusCreated, rec.Code)
	var p domain.ProviderView
	decode(t, rec, &p)

	rec = api.do(http.MethodPost, "/api/v1/conversations", token, map[string]string{"providerId": p.ID.String(), "model": "gpt-4o-mini"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c domain.Conversation
	decode(t, rec, &c)
	assert.Nil(t, c.Title)

	rec = api.do(http.MethodPost, "/api/v1/conversations/"+c.ID.String()+"/messages", token, map[string]string{"content": "Hello model"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var sent chat.SendResult
	decode(t, rec, &sent)
	assert.Equal(t, "Hello model", sent.UserMessage.Content)
	assert.Equal(t, "Hi there", sent.AssistantMessage.Content)

	rec = api.do(http.MethodGet, "/api/v1/conversations/"+c.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var full domain.ConversationWithMessages
	decode(t, rec, &full)
	require.NotNil(t, full.Title)
	assert.Equal(t, "Hello model", *full.Title)
	require.Len(t, full.Messages, 2)
	assert.Equal(t, domain.RoleAssistant, full.Messages[0].Role)

	rec = api.do(http.MethodGet, "/api/v1/conversations/"+c.ID.String()+"/messages?limit=1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page []domain.Message
	decode(t, rec, &page)
	require.Len(t, page, 1)
	assert.Equal(t, "Hi there", page[0].Content)

	rec = api.do(http.MethodGet, "/api/v1/conversations?limit=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = api.do(http.MethodGet, "/api/v1/conversations?limit=101", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/conversations/"+c.ID.String()+"/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Hi there")

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/v1/conversations/"+c.ID.String(), token, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/v1/conversations/"+c.ID.String(), token, nil).Code)
}

func TestSendMessageUpstreamFailureIs500AndKeepsUserMessage(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.register()

	rec := api.do(http.MethodPost, "/api/v1/providers", token, map[string]string{"name": "bad", "apiKey": "sk-wrong", "baseUrl": api.upstream.URL})
	require.Equal(t, http.StatusCreated, rec.Code)
	var p domain.ProviderView
	decode(t, rec, &p)

	rec = api.do(http.MethodPost, "/api/v1/conversations", token, map[string]string{"providerId": p.ID.String(), "model": "m"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var c domain.Conversation
	decode(t, rec, &c)

	rec = api.do(http.MethodPost, "/api/v1/conversations/"+c.ID.String()+"/messages", token, map[string]string{"content": "are you there"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "401")
	assert.NotContains(t, rec.Body.String(), "sk-wrong")

	rec = api.do(http.MethodGet, "/api/v1/conversations/"+c.ID.String()+"/messages", token, nil)
	var msgs []domain.Message
	decode(t, rec, &msgs)
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.RoleUser, msgs[0].Role)
}

func TestConversationRoutesEnforceOwnership(t *testing.T) {
	api := newTestAPI(t)
	owner, _ := api.register()
	intruder := api.tokenFor("b@x.com")

	rec := api.do(http.MethodPost, "/api/v1/providers", owner, map[string]string{"name": "main", "apiKey": "sk-abc", "baseUrl": api.upstream.URL})
	var p domain.ProviderView
	decode(t, rec, &p)
	rec = api.do(http.MethodPost, "/api/v1/conversations", owner, map[string]string{"providerId": p.ID.String(), "model": "m"})
	var c domain.Conversation
	decode(t, rec, &c)
	path := "/api/v1/conversations/" + c.ID.String()
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, path+"/messages", owner, map[string]string{"content": "secret"}).Code)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, path, intruder, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, path, intruder, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPost, path+"/messages", intruder, map[string]string{"content": "x"}).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, path+"/export", intruder, nil).Code)

	rec = api.do(http.MethodGet, path+"/messages", intruder, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/v1/conversations", intruder, nil)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/conversations", intruder, map[string]string{"providerId": p.ID.String(), "model": "m"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
