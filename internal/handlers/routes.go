// File: internal/handlers/routes.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iyunix/go-mindster/internal/middleware"
)

// RouterDeps collects everything the HTTP surface needs.
type RouterDeps struct {
	Auth          *AuthHandler
	Providers     *ProviderHandler
	Conversations *ChatHandler
	Verifier      middleware.TokenVerifier
	CORSOrigins   []string
	Logger        Logger
}

// NewRouter wires every route. /health sits outside the /api/v1 prefix; register,
// login and the banner are public; everything else requires a bearer token.
func NewRouter(d RouterDeps) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RecoverPanic(d.Logger))
	r.Use(middleware.NewLoggingMiddleware(d.Logger))

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "Route not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	r.HandleFunc("/health", Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/", Banner).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", d.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", d.Auth.Login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.NewAuthMiddleware(d.Verifier, d.Logger))

	protected.HandleFunc("/auth/me", d.Auth.Me).Methods(http.MethodGet)
	protected.HandleFunc("/auth/logout", d.Auth.Logout).Methods(http.MethodPost)

	protected.HandleFunc("/providers", d.Providers.List).Methods(http.MethodGet)
	protected.HandleFunc("/providers", d.Providers.Create).Methods(http.MethodPost)
	protected.HandleFunc("/providers/{id}", d.Providers.Get).Methods(http.MethodGet)
	protected.HandleFunc("/providers/{id}", d.Providers.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/providers/{id}", d.Providers.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/providers/{id}/test", d.Providers.Test).Methods(http.MethodPost)

	protected.HandleFunc("/conversations", d.Conversations.ListConversations).Methods(http.MethodGet)
	protected.HandleFunc("/conversations", d.Conversations.CreateConversation).Methods(http.MethodPost)
	protected.HandleFunc("/conversations/{id}", d.Conversations.GetConversation).Methods(http.MethodGet)
	protected.HandleFunc("/conversations/{id}", d.Conversations.DeleteConversation).Methods(http.MethodDelete)
	protected.HandleFunc("/conversations/{id}/messages", d.Conversations.ListMessages).Methods(http.MethodGet)
	protected.HandleFunc("/conversations/{id}/messages", d.Conversations.SendMessage).Methods(http.MethodPost)
	protected.HandleFunc("/conversations/{id}/export", d.Conversations.ExportConversation).Methods(http.MethodGet)

	return middleware.NewCORS(d.CORSOrigins)(r)
}
