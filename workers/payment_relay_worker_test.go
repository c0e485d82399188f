package workers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"bounty-board-system/models"
	"bounty-board-system/services"
)

// mutablePaymentServer lets a test flip the executor between failing and
// succeeding across relay ticks.
type mutablePaymentServer struct {
	status atomic.Int32
	txRef  string
	srv    *httptest.Server
}

func newMutablePaymentServer(t *testing.T, status int, txRef string) *mutablePaymentServer {
	t.Helper()
	m := &mutablePaymentServer{txRef: txRef}
	m.status.Store(int32(status))
	m.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s := int(m.status.Load()); s != http.StatusOK {
			w.WriteHeader(s)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"tx_ref": m.txRef})
	}))
	t.Cleanup(m.srv.Close)
	return m
}

func pendingBounty(claimant string) *models.Bounty {
	claimedAt := time.Now().Add(-time.Hour).UTC()
	addr := claimant
	return &models.Bounty{
		UUID:            "uuid-pending-1",
		Title:           "pending payout",
		Reward:          5_000_000,
		Status:          models.BountyStatusPaymentPending,
		CreatorAddress:  "0xcreator",
		ClaimantAddress: &addr,
		ClaimedAt:       &claimedAt,
		Submissions: []models.Submission{{
			ID:          "s1",
			Content:     "delivered the work with a full write-up",
			SubmittedAt: claimedAt.Add(30 * time.Minute),
		}},
		CreatedAt: claimedAt,
		UpdatedAt: claimedAt,
	}
}

func newRelay(t *testing.T, payments *services.PaymentClient, notifier *services.Notifier) (*PaymentRelay, *services.BountyStore, uint) {
	t.Helper()
	store := services.NewBountyStore(nil)
	if err := store.Load(); err != nil {
		t.Fatalf("memory-only load should not fail: %v", err)
	}
	b := pendingBounty("0xagent-a")
	_ = store.Create(b)

	svc := services.NewBountyService(store, nil, services.NewRateLimiter(), payments, notifier)
	return NewPaymentRelay(store, payments, svc), store, b.ID
}

func TestPaymentRelay_PromotesPendingOnSuccess(t *testing.T) {
	exec := newMutablePaymentServer(t, http.StatusOK, "tx-relay-1")
	relay, store, id := newRelay(t, services.NewPaymentClient(exec.srv.URL, "test-token"), nil)

	relay.runOnce()

	got, _ := store.Get(id)
	if got.Status != models.BountyStatusCompleted {
		t.Fatalf("expected completed, got %s", got.Status)
	}
	if got.Payment == nil || got.Payment.TxRef != "tx-relay-1" || got.Payment.Recipient != "0xagent-a" || got.Payment.Amount != 5_000_000 {
		t.Fatalf("payment not recorded correctly: %+v", got.Payment)
	}
}

func TestPaymentRelay_LeavesPendingOnFailureThenRetries(t *testing.T) {
	exec := newMutablePaymentServer(t, http.StatusInternalServerError, "tx-relay-2")
	relay, store, id := newRelay(t, services.NewPaymentClient(exec.srv.URL, "test-token"), nil)

	relay.runOnce()

	got, _ := store.Get(id)
	if got.Status != models.BountyStatusPaymentPending || got.Payment != nil {
		t.Fatalf("failed payment must leave the bounty pending and unpaid, got %s", got.Status)
	}

	// Executor recovers: the next tick finishes the same bounty.
	exec.status.Store(http.StatusOK)
	relay.runOnce()

	got, _ = store.Get(id)
	if got.Status != models.BountyStatusCompleted || got.Payment == nil || got.Payment.TxRef != "tx-relay-2" {
		t.Fatalf("retry should complete the bounty, got %s / %+v", got.Status, got.Payment)
	}
}

func TestPaymentRelay_QueuesReputationAwardOnCompletion(t *testing.T) {
	exec := newMutablePaymentServer(t, http.StatusOK, "tx-relay-3")

	feedback := make(chan string, 1)
	identity := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/agents/resolve"):
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"agent_id": 7})
		case r.URL.Path == "/agents/7/feedback":
			feedback <- r.URL.Path
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(identity.Close)

	notifier := services.NewNotifier(nil, services.NewAgentServiceClient(identity.URL, "test-token"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifier.Run(ctx)

	relay, _, _ := newRelay(t, services.NewPaymentClient(exec.srv.URL, "test-token"), notifier)
	relay.runOnce()

	select {
	case <-feedback:
	case <-time.After(2 * time.Second):
		t.Fatal("relay completion must post the claimant's reputation award")
	}
}
