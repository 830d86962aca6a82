package domain

import (
	"regexp"
	"time"
)

const (
	DefaultCombatTitle = "Pirate"
	DefaultBounty      = "0"
)

// bounty is a display number like "0", "500K", "5M", "1.5B"
var bountyRe = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?[KMBkmb]?$`)

// ValidBounty reports whether s is a well-formed bounty string.
func ValidBounty(s string) bool {
	return bountyRe.MatchString(s)
}

// Player is one ranked player. UserID is the external platform id and is
// unique across all players; ID is our surrogate key.
type Player struct {
	ID          int64     `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Username    string    `json:"username" db:"username"`
	Avatar      string    `json:"avatar" db:"avatar"`
	CombatTitle string    `json:"combat_title" db:"combat_title"`
	Points      int       `json:"points" db:"points"`
	Bounty      string    `json:"bounty" db:"bounty"`
	Region      string    `json:"region" db:"region"`
	WebhookURL  string    `json:"webhook_url,omitempty" db:"webhook_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// PlayerUpdate is a partial update: nil fields keep their current value.
type PlayerUpdate struct {
	Username    *string `json:"username"`
	Avatar      *string `json:"avatar"`
	CombatTitle *string `json:"combat_title"`
	Points      *int    `json:"points"`
	Bounty      *string `json:"bounty"`
	Region      *string `json:"region"`
	WebhookURL  *string `json:"webhook_url"`
}

// PlayerWithTiers pairs a player with their tier assignments. Built on read,
// never stored. Rank is computed against whatever list the player is being
// displayed with.
type PlayerWithTiers struct {
	Player
	Tiers []Tier `json:"tiers"`
	Rank  int    `json:"rank"`
}
