// services/payment_client.go
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

// PaymentClient talks to the external payment executor. A nil client means
// no executor is configured and approvals park in payment_pending for the
// relay to finish later.
type PaymentClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

type PaymentResponse struct {
	TxRef     string `json:"tx_ref"`
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"`
}

func NewPaymentClient(baseURL, token string) *PaymentClient {
	return &PaymentClient{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Execute pays the recipient the net amount and returns the transaction
// reference. Any failure here must leave the bounty un-completed — the
// caller treats an error as "no state changed".
func (c *PaymentClient) Execute(recipient string, amount int64) (*PaymentResponse, error) {
	url := fmt.Sprintf("%s/payments/execute", c.BaseURL)

	reqBody := map[string]interface{}{
		"recipient": recipient,
		"amount":    amount,
	}
	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Printf("PaymentService /payments/execute returned %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("payment execution failed: %d", resp.StatusCode)
	}

	var out PaymentResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if out.TxRef == "" {
		return nil, fmt.Errorf("payment executor returned no tx_ref")
	}

	return &out, nil
}
