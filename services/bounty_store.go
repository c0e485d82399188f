// services/bounty_store.go
package services

import (
	"log"
	"sync"
	"time"

	"bounty-board-system/models"

	"gorm.io/gorm"
)

// BountyStore is the write-through cache over the durable row store. The
// in-memory map is authoritative for the process lifetime: reads never touch
// the DB, writes mirror to Postgres best-effort. Load() must settle before
// any request is served — main blocks on Ready().
//
// A nil DB degrades to memory-only mode. In that mode the claim path falls
// back to an in-process check-then-set (see Claim below).
type BountyStore struct {
	DB *gorm.DB

	mu     sync.RWMutex
	byID   map[uint]*models.Bounty
	byUUID map[string]uint
	nextID uint

	ready     chan struct{}
	readyOnce sync.Once
}

func NewBountyStore(db *gorm.DB) *BountyStore {
	return &BountyStore{
		DB:     db,
		byID:   make(map[uint]*models.Bounty),
		byUUID: make(map[string]uint),
		nextID: 1,
		ready:  make(chan struct{}),
	}
}

// Load populates the cache from the durable store. A read failure degrades to
// an empty memory-only view rather than refusing to start.
func (s *BountyStore) Load() error {
	defer s.readyOnce.Do(func() { close(s.ready) })

	if s.DB == nil {
		log.Println("⚠️  No DATABASE_URL configured — bounty store running memory-only (state is lost on restart)")
		return nil
	}

	var bounties []models.Bounty
	if err := s.DB.Find(&bounties).Error; err != nil {
		log.Printf("❌ Bounty store cold load failed, continuing with empty cache: %v", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range bounties {
		b := bounties[i]
		s.byID[b.ID] = &b
		s.byUUID[b.UUID] = b.ID
		if b.ID >= s.nextID {
			s.nextID = b.ID + 1
		}
	}
	log.Printf("✅ Bounty store loaded %d bounties from durable store", len(bounties))
	return nil
}

// Ready is closed once Load has settled (success or degraded).
func (s *BountyStore) Ready() <-chan struct{} { return s.ready }

func (s *BountyStore) IsReady() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Get returns a copy of the bounty so callers can mutate freely and commit
// through Set.
func (s *BountyStore) Get(id uint) (models.Bounty, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.byID[id]
	if !ok {
		return models.Bounty{}, false
	}
	return *b, true
}

// GetByUUID is the secondary key space used for idempotent creation.
func (s *BountyStore) GetByUUID(uid string) (models.Bounty, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUUID[uid]
	if !ok {
		return models.Bounty{}, false
	}
	return *s.byID[id], true
}

// Lookup tries the numeric key first and falls back to the UUID key space.
func (s *BountyStore) Lookup(id uint, uid string) (models.Bounty, bool) {
	if b, ok := s.Get(id); ok {
		return b, true
	}
	if uid != "" {
		return s.GetByUUID(uid)
	}
	return models.Bounty{}, false
}

// Snapshot returns copies of all bounties matching the filter (nil = all).
// Point-in-time view; used by list endpoints and the admission scan.
func (s *BountyStore) Snapshot(filter func(*models.Bounty) bool) []models.Bounty {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Bounty, 0, len(s.byID))
	for _, b := range s.byID {
		if filter == nil || filter(b) {
			out = append(out, *b)
		}
	}
	return out
}

// Create inserts a new bounty. The durable store assigns the numeric ID when
// configured; memory-only mode hands out a process-local sequence. This is
// the one write that blocks on the DB, because the caller needs the ID.
func (s *BountyStore) Create(b *models.Bounty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DB != nil {
		if err := s.DB.Create(b).Error; err != nil {
			log.Printf("❌ Durable insert failed for bounty %s, keeping memory-only copy: %v", b.UUID, err)
			b.ID = s.nextID
		}
	} else {
		b.ID = s.nextID
	}
	if b.ID >= s.nextID {
		s.nextID = b.ID + 1
	}

	stored := *b
	s.byID[stored.ID] = &stored
	s.byUUID[stored.UUID] = stored.ID
	return nil
}

// Set commits an updated bounty to memory and mirrors it to the durable
// store fire-and-forget: a remote failure is logged, never surfaced, and the
// in-memory change is not rolled back.
func (s *BountyStore) Set(b models.Bounty) {
	s.mu.Lock()
	stored := b
	s.byID[stored.ID] = &stored
	s.byUUID[stored.UUID] = stored.ID
	s.mu.Unlock()

	s.persistAsync(b)
}

func (s *BountyStore) persistAsync(b models.Bounty) {
	if s.DB == nil {
		return
	}
	go func() {
		if err := s.DB.Save(&b).Error; err != nil {
			log.Printf("❌ Durable write failed for bounty %d (memory copy untouched): %v", b.ID, err)
		}
	}()
}

// Delete removes a bounty from memory and, best-effort, from the store.
func (s *BountyStore) Delete(id uint) {
	s.mu.Lock()
	if b, ok := s.byID[id]; ok {
		delete(s.byUUID, b.UUID)
		delete(s.byID, id)
	}
	s.mu.Unlock()

	if s.DB == nil {
		return
	}
	go func() {
		if err := s.DB.Delete(&models.Bounty{}, "id = ?", id).Error; err != nil {
			log.Printf("❌ Durable delete failed for bounty %d: %v", id, err)
		}
	}()
}

// Claim executes the optimistic claim: a conditional update whose
// status=open predicate lives in the write's WHERE clause, not just in a
// pre-check. Two racing claimants may both pass the read; only one's update
// matches rows. Zero rows matched = lost race = Conflict naming the winner.
func (s *BountyStore) Claim(id uint, claimant string) (models.Bounty, *OpError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.byID[id]
	if !ok {
		return models.Bounty{}, opErr(CodeNotFound, "bounty %d not found", id)
	}
	if cur.Status == models.BountyStatusClaimed {
		return models.Bounty{}, opErr(CodeConflict, "bounty %d already claimed by %s", id, cur.Claimant()).
			withExtra(map[string]interface{}{"holder": cur.Claimant()})
	}
	if cur.Status != models.BountyStatusOpen {
		return models.Bounty{}, opErr(CodeInvalidState, "bounty %d is %s, not open", id, cur.Status)
	}

	now := time.Now().UTC()

	if s.DB != nil {
		res := s.DB.Model(&models.Bounty{}).
			Where("id = ? AND status = ?", id, models.BountyStatusOpen).
			Updates(map[string]interface{}{
				"status":           models.BountyStatusClaimed,
				"claimant_address": claimant,
				"claimed_at":       now,
				"updated_at":       now,
			})
		if res.Error != nil {
			// Store unreachable mid-flight: apply the in-process path under
			// the lock and keep serving from memory.
			log.Printf("⚠️  UNSAFE FALLBACK: conditional claim write failed for bounty %d, applying in-process check-then-set (races with other instances are possible): %v", id, res.Error)
		} else if res.RowsAffected == 0 {
			// Lost the race to another process. Refresh our stale copy and
			// report who holds it now.
			var fresh models.Bounty
			if err := s.DB.First(&fresh, "id = ?", id).Error; err == nil {
				s.byID[id] = &fresh
				s.byUUID[fresh.UUID] = id
				return models.Bounty{}, opErr(CodeConflict, "bounty %d already claimed by %s", id, fresh.Claimant()).
					withExtra(map[string]interface{}{"holder": fresh.Claimant()})
			}
			return models.Bounty{}, opErr(CodeConflict, "bounty %d already claimed", id)
		}
	} else {
		log.Printf("⚠️  UNSAFE FALLBACK: claiming bounty %d without durable backing — check-then-set is atomic only within this process", id)
	}

	cur.Status = models.BountyStatusClaimed
	cur.ClaimantAddress = &claimant
	cur.ClaimedAt = &now
	cur.UpdatedAt = now
	return *cur, nil
}
