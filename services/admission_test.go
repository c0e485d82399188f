package services

import (
	"testing"

	"bounty-board-system/models"
)

func TestCheckAdmission_UnderCeiling(t *testing.T) {
	store := newMemoryStore(t)
	seedClaimed(t, store, "0xworker", MaxActiveClaims-1)

	if err := CheckAdmission(store, "0xworker"); err != nil {
		t.Fatalf("under ceiling should admit, got %v", err)
	}
}

func TestCheckAdmission_AtCeilingRefusesWithIDs(t *testing.T) {
	store := newMemoryStore(t)
	held := seedClaimed(t, store, "0xworker", MaxActiveClaims)

	err := CheckAdmission(store, "0xworker")
	if err == nil {
		t.Fatal("at the ceiling a further claim must be refused")
	}
	if err.Code != CodeAdmissionRejected {
		t.Fatalf("expected %s, got %s", CodeAdmissionRejected, err.Code)
	}
	ids, ok := err.Extra["held_bounty_ids"].([]uint)
	if !ok || len(ids) != len(held) {
		t.Fatalf("rejection must list the %d offending bounty ids, got %v", len(held), err.Extra["held_bounty_ids"])
	}
}

func TestCheckAdmission_SubmittedWorkFreesTheSlot(t *testing.T) {
	store := newMemoryStore(t)
	held := seedClaimed(t, store, "0xworker", MaxActiveClaims)

	if err := CheckAdmission(store, "0xworker"); err == nil {
		t.Fatal("should be at ceiling")
	}

	// Deliver one: the slot frees even though nothing is approved yet.
	b, _ := store.Get(held[0])
	b.Status = models.BountyStatusSubmitted
	b.Submissions = []models.Submission{{ID: "s1", Content: "delivered work with enough detail"}}
	store.Set(b)

	if err := CheckAdmission(store, "0xworker"); err != nil {
		t.Fatalf("submitting one must free the slot, got %v", err)
	}
}

func TestCheckAdmission_OnlyCountsTheRequester(t *testing.T) {
	store := newMemoryStore(t)
	seedClaimed(t, store, "0xother", MaxActiveClaims)

	if err := CheckAdmission(store, "0xworker"); err != nil {
		t.Fatalf("another agent's hoard must not count, got %v", err)
	}
}

// seedClaimed creates n bounties claimed by address and returns their ids.
func seedClaimed(t *testing.T, store *BountyStore, address string, n int) []uint {
	t.Helper()
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		b := openBounty("uuid-seed-"+address+"-"+string(rune('a'+i)), "0xcreator", 100)
		_ = store.Create(b)
		if _, err := store.Claim(b.ID, address); err != nil {
			t.Fatalf("seed claim failed: %v", err)
		}
		ids = append(ids, b.ID)
	}
	return ids
}
