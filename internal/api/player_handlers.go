// internal/api/player_handlers.go
// League roster HTTP handlers

package api

import (
	"net/http"
	"strconv"

	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleListPlayers lists the full roster, ranked by seasonal points.
func HandleListPlayers(playerService *services.PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		players, err := playerService.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve players"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"players": players})
	}
}

// HandleGetPlayer retrieves a single player.
func HandleGetPlayer(playerService *services.PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player id"})
			return
		}

		player, err := playerService.GetByID(c.Request.Context(), id)
		if err != nil {
			if err == repositories.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve player"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"player": player})
	}
}

// HandleGetTeammateHistory returns every teammate a player has been
// paired with across past tournaments.
func HandleGetTeammateHistory(playerService *services.PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player id"})
			return
		}

		history, err := playerService.TeammateHistory(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve teammate history"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"teammate_history": history})
	}
}

// HandleRegisterPlayer adds a new player to the league.
func HandleRegisterPlayer(playerService *services.PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Nickname string          `json:"nickname" binding:"required"`
			Division models.Division `json:"division" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		player, err := playerService.Register(c.Request.Context(), req.Nickname, req.Division)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register player"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"player": player})
	}
}

// HandleUpdatePlayer updates a player's nickname/division.
func HandleUpdatePlayer(playerService *services.PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player id"})
			return
		}

		var req struct {
			Nickname string          `json:"nickname"`
			Division models.Division `json:"division"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		player, err := playerService.UpdateProfile(c.Request.Context(), id, req.Nickname, req.Division)
		if err != nil {
			if err == repositories.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update player"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"player": player})
	}
}
