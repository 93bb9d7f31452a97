package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DiiaProvider доставляет код подтверждения через внешний шлюз Дії.
// Адресом служит РНОКПП получателя; шлюз сам находит пользователя в Дії.
type DiiaProvider struct {
	gatewayURL string
	client     *http.Client
}

func NewDiiaProvider(gatewayURL string, timeout time.Duration) *DiiaProvider {
	return &DiiaProvider{
		gatewayURL: gatewayURL,
		client:     &http.Client{Timeout: timeout},
	}
}

type diiaRequest struct {
	Rnokpp     string            `json:"rnokpp"`
	Recipient  string            `json:"recipient"`
	Realm      string            `json:"realm,omitempty"`
	Subject    string            `json:"subject"`
	Template   string            `json:"template"`
	Parameters map[string]string `json:"parameters"`
}

func (p *DiiaProvider) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(diiaRequest{
		Rnokpp:     msg.Address,
		Recipient:  msg.RecipientID,
		Realm:      string(msg.Realm),
		Subject:    SubjectFor(msg.Channel),
		Template:   msg.Template,
		Parameters: msg.Parameters,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal diia request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build diia request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("diia gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("diia gateway returned status %d", resp.StatusCode)
	}
	return nil
}
