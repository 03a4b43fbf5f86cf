package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/offrampkit/offramp-widget-backend/providers"
	"github.com/offrampkit/offramp-widget-backend/services/monitoring/logging"
	"github.com/offrampkit/offramp-widget-backend/utils"
)

// RelaySender submits smart-wallet transactions through the host's wallet
// relay service.
type RelaySender struct {
	providers.BaseProvider
}

func NewRelaySender(c *utils.Config, logger *logging.Logger) *RelaySender {
	return &RelaySender{
		BaseProvider: providers.BaseProvider{
			Name:    "WALLET_RELAY",
			BaseURL: c.WalletRelayURL,
			Client: &http.Client{
				Timeout: time.Second * 60,
			},
			Logger: logger,
		},
	}
}

type relayResponse struct {
	Hash  string `json:"hash"`
	Error string `json:"error,omitempty"`
}

func (s *RelaySender) Send(ctx context.Context, req TransactionRequest) (string, error) {
	resp, err := s.MakeRequest(ctx, http.MethodPost, s.BaseURL+"/transactions/send", req, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("wallet relay request failed: %s", resp.Status)
	}

	var out relayResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("error decoding relay response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("wallet relay rejected transaction: %s", out.Error)
	}
	if out.Hash == "" {
		return "", fmt.Errorf("wallet relay returned no transaction hash")
	}
	return out.Hash, nil
}
