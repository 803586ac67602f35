// internal/api/match_handlers.go
// Live-scoring HTTP handlers

package api

import (
	"net/http"
	"strconv"

	"tournament-planner/internal/repositories"
	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleStartMatch assigns a free station and transitions a match to
// InProgress.
func HandleStartMatch(matchService *services.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament id"})
			return
		}
		matchID, err := strconv.Atoi(c.Param("matchId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match id"})
			return
		}

		match, err := matchService.StartMatch(c.Request.Context(), tournamentID, matchID)
		if err != nil {
			switch err {
			case repositories.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			case services.ErrInvalidState:
				c.JSON(http.StatusConflict, gin.H{"error": "Match is not ready to start"})
			case services.ErrNoStationAvailable:
				c.JSON(http.StatusConflict, gin.H{"error": "No station is free right now"})
			case services.ErrStationLockBusy:
				c.JSON(http.StatusConflict, gin.H{"error": "Station allocation is already in progress for this tournament"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start match", "details": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"match": match})
	}
}

// HandleScoreMatch reports a result and advances the bracket.
func HandleScoreMatch(matchService *services.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament id"})
			return
		}
		matchID, err := strconv.Atoi(c.Param("matchId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match id"})
			return
		}

		var req struct {
			Team1Score int `json:"team1_score" binding:"min=0"`
			Team2Score int `json:"team2_score" binding:"min=0"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		match, err := matchService.ScoreMatch(c.Request.Context(), tournamentID, matchID, req.Team1Score, req.Team2Score)
		if err != nil {
			switch err {
			case repositories.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			case services.ErrInvalidScores:
				c.JSON(http.StatusBadRequest, gin.H{"error": "Scores must be non-negative integers"})
			case services.ErrTieDisallowed:
				c.JSON(http.StatusBadRequest, gin.H{"error": "Tied scores are not allowed"})
			case services.ErrUnscoreableMatch:
				c.JSON(http.StatusBadRequest, gin.H{"error": "This match cannot be scored directly"})
			case services.ErrInvalidState:
				c.JSON(http.StatusConflict, gin.H{"error": "Match is not in a scoreable state"})
			case services.ErrInvalidTournamentStatus:
				c.JSON(http.StatusConflict, gin.H{"error": "Tournament is not accepting scores"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to report score", "details": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"match": match})
	}
}
