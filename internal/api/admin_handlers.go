// internal/api/admin_handlers.go
// Director/admin-only HTTP handlers: manual overrides and recalculation

package api

import (
	"net/http"
	"strconv"

	"tournament-planner/internal/repositories"
	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleRecalculateTournament reverses a completed tournament's seasonal
// points and teammate history, then reruns settlement (teammate history,
// seasonal points, cash payout, ace pot) from the final places already
// stored, including any manual final_place overrides. Final places are
// not re-derived, and cash credited by an earlier run is not reversed.
func HandleRecalculateTournament(recalc *services.RecalculationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament id"})
			return
		}

		if err := recalc.RecalculateTournament(c.Request.Context(), id); err != nil {
			if err == services.ErrTournamentNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
				return
			}
			if err == services.ErrInvalidState {
				c.JSON(http.StatusConflict, gin.H{"error": "Only a completed tournament can be recalculated"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recalculate tournament", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Tournament recalculated successfully"})
	}
}

// HandleUpdateTeamPlace manually overrides a team's final placement
// without cascading into seasonal points, history, or payouts.
func HandleUpdateTeamPlace(recalc *services.RecalculationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, err := strconv.Atoi(c.Param("teamId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team id"})
			return
		}

		var req struct {
			Place int `json:"place" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		if err := recalc.UpdateTeamPlace(c.Request.Context(), teamID, req.Place); err != nil {
			if err == repositories.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update team place"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Team place updated successfully"})
	}
}

// HandleGetTournamentAudit returns a tournament's full team/match dump,
// used by operators to verify a completion pipeline run before trusting it.
func HandleGetTournamentAudit(tournaments *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament id"})
			return
		}

		audit, err := tournaments.Audit(c.Request.Context(), id)
		if err != nil {
			if err == repositories.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tournament audit"})
			return
		}

		c.JSON(http.StatusOK, audit)
	}
}

// HandleGetPlatformStats retrieves league-wide statistics.
func HandleGetPlatformStats(analyticsService *services.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := analyticsService.GetLeagueStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statistics"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"statistics": stats})
	}
}
