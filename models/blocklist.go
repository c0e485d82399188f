package models

import "time"

// BlockedAgent is a persisted blocklist entry. Membership is checked at claim
// time; the admin CRUD surface lives in a separate service.
type BlockedAgent struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Address   string    `gorm:"uniqueIndex;not null;size:128" json:"address"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
