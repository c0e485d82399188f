// services/agent_client.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// AgentServiceClient talks to the external identity/reputation service.
// Delivery and idempotency guarantees are that service's problem, not ours.
type AgentServiceClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewAgentServiceClient(baseURL, token string) *AgentServiceClient {
	return &AgentServiceClient{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ResolveAgentID maps a wallet address to the service's numeric agent id.
// Returns 0 when the service reports "none".
func (c *AgentServiceClient) ResolveAgentID(address string) (int64, error) {
	url := fmt.Sprintf("%s/agents/resolve?address=%s", c.BaseURL, address)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("agent resolve failed: %d", resp.StatusCode)
	}

	var out struct {
		AgentID int64 `json:"agent_id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, err
	}
	return out.AgentID, nil
}

// PostFeedback reports a completion score for an agent. Failures are the
// caller's to log and drop — this call sits on the fire-and-forget path.
func (c *AgentServiceClient) PostFeedback(agentID int64, score int64) error {
	url := fmt.Sprintf("%s/agents/%d/feedback", c.BaseURL, agentID)

	jsonData, _ := json.Marshal(map[string]interface{}{"score": score})

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("AgentService feedback returned %d: %s", resp.StatusCode, string(body))
		return fmt.Errorf("feedback post failed: %d", resp.StatusCode)
	}
	return nil
}
