// internal/api/acepot_handlers.go
// Ace-pot ledger HTTP handlers

package api

import (
	"net/http"

	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleGetAcePot lists the full ace-pot ledger, newest entry first, and
// its current running balance (the newest entry's balance_after, or zero
// if the pot has never been contributed to).
func HandleGetAcePot(services *services.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := services.Tournament.AcePotLedger(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ace-pot ledger"})
			return
		}

		balance := 0.0
		if len(entries) > 0 {
			balance = entries[0].BalanceAfter
		}

		c.JSON(http.StatusOK, gin.H{
			"entries": entries,
			"balance": balance,
		})
	}
}
