package models

import "time"

// BountyStatus is the lifecycle state of a bounty.
type BountyStatus string

const (
	BountyStatusOpen           BountyStatus = "open"
	BountyStatusClaimed        BountyStatus = "claimed"
	BountyStatusSubmitted      BountyStatus = "submitted"
	BountyStatusPaymentPending BountyStatus = "payment_pending"
	BountyStatusCompleted      BountyStatus = "completed"
	BountyStatusCancelled      BountyStatus = "cancelled"
)

// RequirementCheck is the grader's verdict for a single requirement string.
type RequirementCheck struct {
	Requirement string `json:"requirement"`
	Met         bool   `json:"met"`
	Detail      string `json:"detail,omitempty"`
}

// Submission is one unit of delivered work. Owned by its Bounty; only the
// identity recorded as ClaimantAddress may mutate it.
type Submission struct {
	ID          string             `json:"id"`
	Content     string             `json:"content"`
	ProofURL    string             `json:"proof_url,omitempty"`
	SubmittedAt time.Time          `json:"submitted_at"`
	EditedAt    *time.Time         `json:"edited_at,omitempty"`
	Score       int                `json:"score"`
	Passed      bool               `json:"passed"`
	Checks      []RequirementCheck `json:"checks,omitempty"`
}

// AuditRecord preserves a prior claim cycle when a reject/release sends the
// bounty back to open. History is appended here before claimant and
// submissions are cleared from the live document.
type AuditRecord struct {
	PrevClaimant    string       `json:"prev_claimant"`
	PrevSubmissions []Submission `json:"prev_submissions,omitempty"`
	Reason          string       `json:"reason"`
	RecordedAt      time.Time    `json:"recorded_at"`
}

// PaymentResult is the outcome of the external payment step.
type PaymentResult struct {
	TxRef     string    `json:"tx_ref"`
	Amount    int64     `json:"amount"`
	Recipient string    `json:"recipient"`
	PaidAt    time.Time `json:"paid_at"`
}

// Bounty is the unit of work posted to the board. Addressed two ways: the
// store-assigned numeric ID and a client-generated UUID used for idempotent
// creation and lookup fallback.
type Bounty struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID string `gorm:"uniqueIndex;size:36;not null" json:"uuid"`
	Slug string `gorm:"index" json:"slug"`

	Title        string   `gorm:"not null" json:"title"`
	Description  string   `gorm:"type:text" json:"description"`
	Requirements []string `gorm:"serializer:json" json:"requirements"`
	Tags         []string `gorm:"serializer:json" json:"tags"`

	// Reward is in the smallest currency unit (e.g. 25_000_000 = 25 USDC).
	Reward   int64     `gorm:"not null" json:"reward"`
	Deadline time.Time `json:"deadline"`

	Status          BountyStatus `gorm:"index;not null;default:'open'" json:"status"`
	CreatorAddress  string       `gorm:"index;not null" json:"creator_address"`
	ClaimantAddress *string      `gorm:"index" json:"claimant_address,omitempty"`
	ClaimedAt       *time.Time   `json:"claimed_at,omitempty"`

	Submissions []Submission  `gorm:"serializer:json" json:"submissions"`
	Rejections  []AuditRecord `gorm:"serializer:json" json:"rejections,omitempty"`
	Releases    []AuditRecord `gorm:"serializer:json" json:"releases,omitempty"`

	Payment *PaymentResult `gorm:"serializer:json" json:"payment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Claimant returns the claimant address or "" when unclaimed.
func (b *Bounty) Claimant() string {
	if b.ClaimantAddress == nil {
		return ""
	}
	return *b.ClaimantAddress
}

// HasClaimant reports whether the lifecycle state requires a claimant.
// Invariant: ClaimantAddress != nil ⟺ HasClaimant().
func (b *Bounty) HasClaimant() bool {
	switch b.Status {
	case BountyStatusClaimed, BountyStatusSubmitted, BountyStatusPaymentPending, BountyStatusCompleted:
		return true
	}
	return false
}
