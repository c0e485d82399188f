package models

import "time"

// Agent is a registered marketplace identity (creator or claimant).
// Created on first registration, counters mutated on bounty completion.
type Agent struct {
	ID           string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Address      string     `gorm:"uniqueIndex;not null;size:128" json:"address"`
	Name         string     `gorm:"index" json:"name"`
	Capabilities []string   `gorm:"serializer:json" json:"capabilities,omitempty"`

	TotalCompleted  int64 `gorm:"default:0" json:"total_completed"`
	TotalEarned     int64 `gorm:"default:0" json:"total_earned"`
	ReputationScore int64 `gorm:"default:0" json:"reputation_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
