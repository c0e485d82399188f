// services/admission.go
package services

import (
	"bounty-board-system/models"
)

// MaxActiveClaims bounds how many bounties one identity can hold in status
// exactly "claimed". Submitted work frees the slot even while unapproved.
const MaxActiveClaims = 3

// CheckAdmission scans the live bounty collection and refuses a new claim
// when the requester is at or above the ceiling. The rejection lists the
// offending bounty IDs so the client can self-correct.
//
// Point-in-time scan over the snapshot, not a maintained counter. Fine at
// moderate scale; switch to an indexed per-identity counter beyond ~10k
// bounties.
func CheckAdmission(store *BountyStore, address string) *OpError {
	held := store.Snapshot(func(b *models.Bounty) bool {
		return b.Status == models.BountyStatusClaimed && b.Claimant() == address
	})
	if len(held) < MaxActiveClaims {
		return nil
	}

	ids := make([]uint, 0, len(held))
	for _, b := range held {
		ids = append(ids, b.ID)
	}
	return opErr(CodeAdmissionRejected, "%s already holds %d unsubmitted claims (max %d)", address, len(held), MaxActiveClaims).
		withExtra(map[string]interface{}{
			"held_bounty_ids": ids,
			"hint":            "submit or release one of the held bounties before claiming another",
		})
}
