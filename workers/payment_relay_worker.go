// workers/payment_relay_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"bounty-board-system/models"
	"bounty-board-system/services"
)

// PaymentRelay finishes payment_pending bounties: approvals made while no
// executor was reachable park there, and this worker retries them until the
// payment lands. Idempotency of repeated execution attempts is the payment
// service's responsibility. Completion goes through the bounty service so
// both payment paths run the same side effects.
type PaymentRelay struct {
	Store    *services.BountyStore
	Payments *services.PaymentClient
	Service  *services.BountyService
}

func NewPaymentRelay(store *services.BountyStore, payments *services.PaymentClient, service *services.BountyService) *PaymentRelay {
	return &PaymentRelay{Store: store, Payments: payments, Service: service}
}

// PollPendingPayments drives the relay on a fixed interval.
func PollPendingPayments(ctx context.Context, relay *PaymentRelay, pollInterval time.Duration) {
	log.Println("Starting payment relay polling...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Payment relay stopped.")
			return
		case <-ticker.C:
			relay.runOnce()
		}
	}
}

func (r *PaymentRelay) runOnce() {
	pending := r.Store.Snapshot(func(b *models.Bounty) bool {
		return b.Status == models.BountyStatusPaymentPending
	})
	if len(pending) == 0 {
		return
	}
	log.Printf("📥 Payment relay found %d pending payment(s)", len(pending))

	for _, b := range pending {
		res, err := r.Payments.Execute(b.Claimant(), b.Reward)
		if err != nil {
			// Leave it pending — next tick retries the same bounty.
			log.Printf("❌ Relay payment for bounty %d failed, will retry: %v", b.ID, err)
			continue
		}
		r.Service.CompletePayment(b, res)
	}
}
