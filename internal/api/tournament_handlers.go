// internal/api/tournament_handlers.go
// Tournament lifecycle HTTP handlers

package api

import (
	"net/http"
	"strconv"
	"time"

	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleCreateTournament opens a new tournament and registers its
// initial player pool.
func HandleCreateTournament(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			TournamentDate string `json:"tournament_date" binding:"required"`
			PlayerIDs      []int  `json:"player_ids" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		date, err := time.Parse("2006-01-02", req.TournamentDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament_date, expected YYYY-MM-DD"})
			return
		}

		tournament, err := tournamentService.Create(c.Request.Context(), date, req.PlayerIDs)
		if err != nil {
			if err == services.ErrInsufficientParticipants {
				c.JSON(http.StatusBadRequest, gin.H{"error": "A tournament needs at least two registered players"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tournament", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"tournament": tournament})
	}
}

// HandleGetTournament retrieves a single tournament.
func HandleGetTournament(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament id"})
			return
		}

		tournament, err := tournamentService.GetByID(c.Request.Context(), id)
		if err != nil {
			if err == repositories.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tournament"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"tournament": tournament})
	}
}

// HandleListTournaments lists every tournament, most recent first.
func HandleListTournaments(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournaments, err := tournamentService.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tournaments"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tournaments": tournaments})
	}
}

// HandleGetTournamentTeams lists a tournament's teams, in seed order.
func HandleGetTournamentTeams(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament id"})
			return
		}

		teams, err := tournamentService.Teams(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve teams"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"teams": teams})
	}
}

// HandleGetTournamentMatches lists a tournament's bracket, in scheduling
// order.
func HandleGetTournamentMatches(matchService *services.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament id"})
			return
		}

		matches, err := matchService.GetByTournamentID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve matches"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"matches": matches})
	}
}

// HandleRegisterPlayers adds players to an already-open tournament's
// pool.
func HandleRegisterPlayers(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament id"})
			return
		}

		var req struct {
			BuyIns map[string]int `json:"buy_ins" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		buyIns := make(map[int]int, len(req.BuyIns))
		for playerIDStr, count := range req.BuyIns {
			playerID, err := strconv.Atoi(playerIDStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player id in buy_ins"})
				return
			}
			buyIns[playerID] = count
		}

		if err := tournamentService.RegisterPlayers(c.Request.Context(), id, buyIns); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register players", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Players registered successfully"})
	}
}

// HandleGenerateTeams draws the registered pool into random doubles
// teams.
func HandleGenerateTeams(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament id"})
			return
		}

		teams, err := tournamentService.GenerateTeams(c.Request.Context(), id)
		if err != nil {
			if err == services.ErrInvalidState {
				c.JSON(http.StatusConflict, gin.H{"error": "Tournament is not open for registration"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate teams", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"teams": teams})
	}
}

// HandleGenerateMatches builds the double-elimination bracket and moves
// the tournament into InProgress. An optional "stations" field overrides
// the tournament's default station count for this event.
func HandleGenerateMatches(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament id"})
			return
		}

		var req struct {
			Stations *int `json:"stations"`
		}
		c.ShouldBindJSON(&req)

		matches, err := tournamentService.GenerateMatches(c.Request.Context(), id, req.Stations)
		if err != nil {
			if err == services.ErrInvalidState {
				c.JSON(http.StatusConflict, gin.H{"error": "Tournament is not open for registration"})
				return
			}
			if err == services.ErrInvalidInput {
				c.JSON(http.StatusBadRequest, gin.H{"error": "A bracket needs at least four teams"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate matches", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"matches": matches})
	}
}

// HandleUpdateTournamentStatus applies an operator-driven status change.
func HandleUpdateTournamentStatus(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament id"})
			return
		}

		var req struct {
			Status models.TournamentStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		if err := tournamentService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tournament status"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Tournament status updated successfully"})
	}
}

// HandleDeleteTournament removes a tournament and its bracket, reversing
// any seasonal-points/history contributions it had already made.
func HandleDeleteTournament(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament id"})
			return
		}

		if err := tournamentService.Delete(c.Request.Context(), id); err != nil {
			if err == repositories.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tournament"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Tournament deleted successfully"})
	}
}
