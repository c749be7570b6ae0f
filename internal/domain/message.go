package domain

import "time"

// Message is one chat turn. Assistant turns may carry recommendations that
// the presentation layer renders alongside the text.
type Message struct {
	ID                  string         `json:"id"`
	SessionID           string         `json:"session_id"`
	UserID              string         `json:"user_id"`
	Role                string         `json:"role"`
	Content             string         `json:"content"`
	Suggestions         []string       `json:"suggestions,omitempty"`
	AllowMulti          bool           `json:"allow_multi,omitempty"`
	AllowCustom         bool           `json:"allow_custom,omitempty"`
	RecommendedProducts []Product      `json:"recommended_products,omitempty"`
	RecommendedCombos   []ProductCombo `json:"recommended_combos,omitempty"`
	SuggestedCombo      *ProductCombo  `json:"suggested_combo,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
