package quote

import "time"

// Quote is a motivational quote shown on the dashboard.
type Quote struct {
	ID        string    `json:"id" yaml:"-"`
	Text      string    `json:"text" yaml:"text"`
	Author    *string   `json:"author,omitempty" yaml:"author,omitempty"`
	Category  *string   `json:"category,omitempty" yaml:"category,omitempty"`
	IsActive  bool      `json:"isActive" yaml:"-"`
	CreatedAt time.Time `json:"createdAt" yaml:"-"`
}
