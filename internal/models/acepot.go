// internal/models/acepot.go
// Ace-pot ledger models

package models

import "time"

// AcePotEntry is one append-only ledger line against the rolling ace-pot
// balance. Contributions are positive (buy-ins collected at registration);
// payouts are negative (the full balance paid to an undefeated champion).
type AcePotEntry struct {
	ID           int             `json:"id" db:"id"`
	TournamentID *int            `json:"tournament_id,omitempty" db:"tournament_id"`
	EntryType    AcePotEntryType `json:"entry_type" db:"entry_type"`
	Amount       float64         `json:"amount" db:"amount"`
	BalanceAfter float64         `json:"balance_after" db:"balance_after"`
	Description  string          `json:"description" db:"description"`
	RecordedAt   time.Time       `json:"recorded_at" db:"recorded_at"`
}

// AcePotEntryType distinguishes contributions from payouts.
type AcePotEntryType string

const (
	AcePotContribution AcePotEntryType = "Contribution"
	AcePotPayout       AcePotEntryType = "Payout"
)
