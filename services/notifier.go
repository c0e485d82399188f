// services/notifier.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"bounty-board-system/models"
)

// ReputationAward is the fixed score posted to the identity service when a
// bounty completes.
const ReputationAward = 10

// Notifier owns the outbound side-effect queue. Requests enqueue work and
// move on: webhook delivery and reputation posting never block or fail the
// request that triggered them. The synchronous payment path is the one
// exception and does not go through here.
type Notifier struct {
	sinks  []string
	agents *AgentServiceClient // nil when no identity service configured
	tasks  chan func()
	client *http.Client
}

func NewNotifier(sinks []string, agents *AgentServiceClient) *Notifier {
	return &Notifier{
		sinks:  sinks,
		agents: agents,
		tasks:  make(chan func(), 256),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Run drains the task queue until the context is cancelled.
func (n *Notifier) Run(ctx context.Context) {
	log.Printf("Outbound notifier running (%d sink(s) registered)", len(n.sinks))
	for {
		select {
		case <-ctx.Done():
			log.Println("Outbound notifier stopped.")
			return
		case task := <-n.tasks:
			task()
		}
	}
}

func (n *Notifier) enqueue(task func()) {
	select {
	case n.tasks <- task:
	default:
		// Queue full: these are best-effort side effects, drop and log.
		log.Println("⚠️  Outbound queue full, dropping task")
	}
}

// NotifyBountyCreated posts the new bounty to every registered sink.
func (n *Notifier) NotifyBountyCreated(b models.Bounty) {
	if len(n.sinks) == 0 {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"event":  "bounty.created",
		"bounty": b,
	})
	if err != nil {
		return
	}
	for _, sink := range n.sinks {
		url := sink
		n.enqueue(func() {
			resp, err := n.client.Post(url, "application/json", bytes.NewReader(payload))
			if err != nil {
				log.Printf("❌ Notify %s failed: %v", url, err)
				return
			}
			resp.Body.Close()
			if resp.StatusCode >= 300 {
				log.Printf("❌ Notify %s returned %d", url, resp.StatusCode)
			}
		})
	}
}

// QueueReputationAward resolves the claimant and posts completion feedback.
func (n *Notifier) QueueReputationAward(address string) {
	if n.agents == nil {
		return
	}
	n.enqueue(func() {
		agentID, err := n.agents.ResolveAgentID(address)
		if err != nil {
			log.Printf("❌ Could not resolve agent for %s: %v", address, err)
			return
		}
		if agentID == 0 {
			log.Printf("⚠️  No agent registered for %s, skipping reputation award", address)
			return
		}
		if err := n.agents.PostFeedback(agentID, ReputationAward); err != nil {
			log.Printf("❌ Reputation post for %s failed: %v", address, err)
		}
	})
}
