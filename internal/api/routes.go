// internal/api/routes.go
// Central route registration for all API endpoints

package api

import (
	"tournament-planner/internal/middleware"
	"tournament-planner/internal/models"
	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers operator login routes. There is no
// self-service registration: operators are provisioned directly in the
// database.
func RegisterAuthRoutes(router *gin.RouterGroup, services *services.Container) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", HandleLogin(services.Auth))
		auth.POST("/refresh", HandleRefreshToken(services.Auth))
		auth.POST("/logout", middleware.RequireAuth(services.Auth), HandleLogout(services.Auth))
	}
}

// RegisterPlayerRoutes registers league roster routes. Roster reads are
// public; adding or editing a player requires an authenticated operator.
func RegisterPlayerRoutes(router *gin.RouterGroup, services *services.Container) {
	players := router.Group("/players")
	{
		players.GET("", HandleListPlayers(services.Player))
		players.GET("/:id", HandleGetPlayer(services.Player))
		players.GET("/:id/teammates", HandleGetTeammateHistory(services.Player))

		players.Use(middleware.RequireAuth(services.Auth))
		players.POST("", HandleRegisterPlayer(services.Player))
		players.PUT("/:id", HandleUpdatePlayer(services.Player))
	}
}

// RegisterTournamentRoutes registers the tournament lifecycle: creation,
// the registration window, and the one-way handoff into team formation
// and bracket generation.
func RegisterTournamentRoutes(router *gin.RouterGroup, services *services.Container) {
	tournaments := router.Group("/tournaments")
	{
		tournaments.GET("", HandleListTournaments(services.Tournament))
		tournaments.GET("/:id", HandleGetTournament(services.Tournament))
		tournaments.GET("/:id/teams", HandleGetTournamentTeams(services.Tournament))
		tournaments.GET("/:id/matches", HandleGetTournamentMatches(services.Match))

		tournaments.Use(middleware.RequireAuth(services.Auth))
		tournaments.POST("", HandleCreateTournament(services.Tournament))
		tournaments.POST("/:id/register-players", HandleRegisterPlayers(services.Tournament))
		tournaments.POST("/:id/generate-teams", HandleGenerateTeams(services.Tournament))
		tournaments.POST("/:id/generate-matches", HandleGenerateMatches(services.Tournament))
		tournaments.PUT("/:id/status", HandleUpdateTournamentStatus(services.Tournament))
		tournaments.DELETE("/:id", HandleDeleteTournament(services.Tournament))
	}
}

// RegisterMatchRoutes registers live-scoring routes: station assignment
// and score reporting, both of which run through the bracket engine.
func RegisterMatchRoutes(router *gin.RouterGroup, services *services.Container) {
	matches := router.Group("/tournaments/:id/matches")
	matches.Use(middleware.RequireAuth(services.Auth))
	{
		matches.POST("/:matchId/start", HandleStartMatch(services.Match))
		matches.POST("/:matchId/score", HandleScoreMatch(services.Match))
	}
}

// RegisterAcePotRoutes registers the ace-pot ledger read.
func RegisterAcePotRoutes(router *gin.RouterGroup, services *services.Container) {
	router.GET("/ace-pot", HandleGetAcePot(services))
}

// RegisterAdminRoutes registers director/admin-only routes: manual
// overrides and recalculation. There is no per-tournament ownership
// concept, so gating is role-based only.
func RegisterAdminRoutes(router *gin.RouterGroup, services *services.Container) {
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAuth(services.Auth))
	admin.Use(middleware.RequireRole(models.RoleDirector, models.RoleAdmin))
	{
		admin.GET("/tournaments/:id/audit", HandleGetTournamentAudit(services.Tournament))
		admin.POST("/tournaments/:id/recalculate", HandleRecalculateTournament(services.Recalculation))
		admin.PUT("/tournaments/:id/teams/:teamId/place", HandleUpdateTeamPlace(services.Recalculation))
		admin.GET("/stats", HandleGetPlatformStats(services.Analytics))
	}
}
