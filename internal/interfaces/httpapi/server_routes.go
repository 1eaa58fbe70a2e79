package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerTournamentRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/tournaments", handler.CreateTournament)
	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("PUT /v1/tournaments/{tournamentID}", handler.UpdateTournament)
	mux.HandleFunc("DELETE /v1/tournaments/{tournamentID}", handler.DeleteTournament)
	mux.HandleFunc("POST /v1/tournaments/{tournamentID}/start", handler.StartTournament)
	mux.HandleFunc("POST /v1/tournaments/{tournamentID}/end", handler.EndTournament)
	mux.HandleFunc("POST /v1/tournaments/{tournamentID}/cancel", handler.CancelTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/overview", handler.GetTournamentOverview)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/tournaments/{tournamentID}/teams", handler.CreateTeam)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/teams", handler.ListTeamsByTournament)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("PUT /v1/teams/{teamID}", handler.UpdateTeam)
	mux.HandleFunc("DELETE /v1/teams/{teamID}", handler.DeleteTeam)

	mux.HandleFunc("POST /v1/teams/{teamID}/players", handler.CreatePlayer)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListPlayersByTeam)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("PUT /v1/players/{playerID}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE /v1/players/{playerID}", handler.DeletePlayer)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/tournaments/{tournamentID}/matches", handler.CreateMatch)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/matches", handler.ListMatchesByTournament)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("PUT /v1/matches/{matchID}", handler.UpdateMatch)
	mux.HandleFunc("DELETE /v1/matches/{matchID}", handler.DeleteMatch)
	mux.HandleFunc("POST /v1/matches/{matchID}/postpone", handler.PostponeMatch)
	mux.HandleFunc("POST /v1/matches/{matchID}/reschedule", handler.RescheduleMatch)
	mux.HandleFunc("PUT /v1/matches/{matchID}/result", handler.RegisterMatchResult)
	mux.HandleFunc("DELETE /v1/matches/{matchID}/result", handler.RevertMatchResult)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/reconcile", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunReconcileJob)))
}
