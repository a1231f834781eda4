package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /readyz", handler.Readyz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/users/register", handler.Register)
	mux.HandleFunc("POST /v1/users/login", handler.Login)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/gameweeks", handler.ListGameWeeks)
	mux.HandleFunc("GET /v1/gameweeks/current", handler.GetCurrentGameWeek)
	mux.HandleFunc("GET /v1/gameweeks/{gameWeekID}", handler.GetGameWeek)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/users/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyProfile)))
	mux.Handle("PATCH /v1/users/me", RequireAuth(verifier, http.HandlerFunc(handler.UpdateMyProfile)))
	mux.Handle("DELETE /v1/users/me", RequireAuth(verifier, http.HandlerFunc(handler.DeleteMyAccount)))

	mux.Handle("PATCH /v1/teams/player", RequireAuth(verifier, http.HandlerFunc(handler.AddRosterPlayers)))
	mux.Handle("DELETE /v1/teams/player", RequireAuth(verifier, http.HandlerFunc(handler.RemoveRosterPlayers)))
	mux.Handle("GET /v1/teams/byid", RequireAuth(verifier, http.HandlerFunc(handler.GetRoster)))

	mux.Handle("POST /v1/players", RequireAuth(verifier, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("PUT /v1/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdatePlayer)))
	mux.Handle("DELETE /v1/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.DeletePlayer)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/settlement", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSettlementJob)))
}
