// internal/api/types/response.go
package types

import "github.com/shopspring/decimal"

// AchievementItem is one entry of the achievement listing.
type AchievementItem struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Desc         string          `json:"desc"`
	Amount       decimal.Decimal `json:"amount"` // Reward credited on claim
	IsDaily      bool            `json:"is_daily"`
	Claimable    bool            `json:"claimable"`
	ClaimedToday bool            `json:"claimed_today"`
	Unlocked     bool            `json:"unlocked"`
}

// ClaimStatus is the post-claim status echoed back to the client.
type ClaimStatus struct {
	Claimable    bool `json:"claimable"`
	ClaimedToday bool `json:"claimed_today"`
	Unlocked     bool `json:"unlocked"`
}

// ClaimResponse is returned by a successful claim.
type ClaimResponse struct {
	OK      bool            `json:"ok"`
	ID      string          `json:"id"`
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
	Status  ClaimStatus     `json:"status"`
}

// LedgerEntry is one wallet history line. Time is RFC 3339 in the server zone.
type LedgerEntry struct {
	Time    string          `json:"time"`
	Delta   decimal.Decimal `json:"delta"`
	Reason  string          `json:"reason"`
	Balance decimal.Decimal `json:"balance"`
}

// WalletResponse carries the balance and the most recent ledger entries.
type WalletResponse struct {
	Balance decimal.Decimal `json:"balance"`
	Recent  []LedgerEntry   `json:"recent"`
}

// DiaryResponse is returned by a diary save.
type DiaryResponse struct {
	Success   bool   `json:"success"`
	ID        int64  `json:"id"`
	Label     string `json:"label"`
	AIMessage string `json:"ai_message"`
	Updated   bool   `json:"updated"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
