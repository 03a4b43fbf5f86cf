package blindpay

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

// Quote requests always pledge the sender side of the conversion on the
// widget's fixed network/token pair.
const (
	QuoteCurrencyType = "sender"
	QuoteNetworkName  = "base_sepolia"
	QuoteToken        = "USDB"
)

// RequestError is a transport-level failure: the request never produced a
// usable body (non-2xx or network error). Business failures travel in-band
// inside the envelopes instead.
type RequestError struct {
	StatusCode int
	Status     string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %s", e.Status)
}

// Provider is the single authenticated façade over the payments/KYC backend.
// One value per (baseURL, instanceId, apiKey) triple, constructed by the
// composition root and passed by reference to consumers.
type Provider struct {
	providers.BaseProvider
	instanceID string
}

func NewProvider(c *utils.Config, logger *logging.Logger) *Provider {
	return &Provider{
		BaseProvider: providers.BaseProvider{
			Name:    providers.BlindPay,
			BaseURL: c.BlindPayBaseURL,
			APIKey:  c.BlindPayAPIKey,
			Client: &http.Client{
				Timeout: time.Second * 30,
			},
			Logger: logger,
		},
		instanceID: c.BlindPayInstanceID,
	}
}

// post issues one authenticated POST. Every body carries instanceId. The
// parsed envelope is returned verbatim; callers inspect its error field.
func (p *Provider) post(ctx context.Context, path string, body map[string]interface{}, out interface{}) error {
	payload := map[string]interface{}{
		"instanceId": p.instanceID,
	}
	for k, v := range body {
		payload[k] = v
	}

	resp, err := p.MakeRequest(ctx, http.MethodPost, p.BaseURL+path, payload, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("error decoding response body: %w", err)
	}

	return nil
}

func (p *Provider) GetMembers(ctx context.Context) (*MemberListEnvelope, error) {
	var env MemberListEnvelope
	if err := p.post(ctx, "/instance/members", nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (p *Provider) GetReceivers(ctx context.Context) (*ReceiverListEnvelope, error) {
	var env ReceiverListEnvelope
	if err := p.post(ctx, "/receiver/get", nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (p *Provider) GetReceiverByEmail(ctx context.Context, email string) (*ReceiverEnvelope, error) {
	var env ReceiverEnvelope
	body := map[string]interface{}{
		"email": email,
	}
	if err := p.post(ctx, "/receiver/getByEmail", body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (p *Provider) CreateReceiver(ctx context.Context, receiverData map[string]interface{}) (*ReceiverEnvelope, error) {
	var env ReceiverEnvelope
	body := map[string]interface{}{
		"receiverData": receiverData,
	}
	if err := p.post(ctx, "/receiver/create", body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (p *Provider) GetBankAccounts(ctx context.Context, receiverID string) (*BankAccountListEnvelope, error) {
	var env BankAccountListEnvelope
	body := map[string]interface{}{
		"receiverId": receiverID,
	}
	if err := p.post(ctx, "/bank-accounts/get", body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (p *Provider) CreateBankAccount(ctx context.Context, receiverID string, bankAccountData map[string]interface{}) (*BankAccountEnvelope, error) {
	var env BankAccountEnvelope
	body := map[string]interface{}{
		"receiverId":      receiverID,
		"bankAccountData": bankAccountData,
	}
	if err := p.post(ctx, "/bank-accounts/create", body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (p *Provider) DeleteBankAccount(ctx context.Context, receiverID string, bankAccountID string) (*GenericEnvelope, error) {
	var env GenericEnvelope
	body := map[string]interface{}{
		"receiverId":    receiverID,
		"bankAccountId": bankAccountID,
	}
	if err := p.post(ctx, "/bank-accounts/delete", body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// CreateQuote requests a fresh conversion quote. requestAmount is in integer
// minor units of the sender currency.
func (p *Provider) CreateQuote(ctx context.Context, bankAccountID string, requestAmount int64) (*QuoteEnvelope, error) {
	var env QuoteEnvelope
	body := map[string]interface{}{
		"quoteData": map[string]interface{}{
			"bank_account_id": bankAccountID,
			"currency_type":   QuoteCurrencyType,
			"cover_fees":      false,
			"request_amount":  requestAmount,
			"network":         QuoteNetworkName,
			"token":           QuoteToken,
		},
	}
	if err := p.post(ctx, "/quotes/create", body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
