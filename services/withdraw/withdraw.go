package withdraw

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	hashids "github.com/speps/go-hashids/v2"

	"github.com/offrampkit/offramp-widget-backend/services/flow"
	"github.com/offrampkit/offramp-widget-backend/services/monitoring/logging"
	"github.com/offrampkit/offramp-widget-backend/services/wallet"
)

var (
	// ErrNoQuote blocks confirmation when no quote is cached on the session.
	ErrNoQuote = errors.New("no active quote for this withdrawal")

	// ErrQuoteExpired blocks confirmation past the quote's deadline; the user
	// has to request a fresh quote.
	ErrQuoteExpired = errors.New("quote has expired, request a new one")
)

// Receipt is what the widget shows after a successful on-chain approval.
type Receipt struct {
	TxHash      string `json:"tx_hash"`
	ExplorerURL string `json:"explorer_url"`
	Reference   string `json:"reference"`
}

// Service runs the withdrawal leg: quoting a conversion for a bank account
// and confirming it by submitting the token approval from the user's smart
// wallet.
type Service struct {
	api    flow.API
	sender wallet.Sender
	logger *logging.Logger
	hash   *hashids.HashID
}

func NewService(api flow.API, sender wallet.Sender, logger *logging.Logger) *Service {
	hd := hashids.NewData()
	hd.Salt = "offramp-withdrawal-receipts"
	hd.MinLength = 10
	h, err := hashids.NewWithData(hd)
	if err != nil {
		panic(fmt.Errorf("could not initialise reference encoder: %w", err))
	}
	return &Service{
		api:    api,
		sender: sender,
		logger: logger,
		hash:   h,
	}
}

// MinorUnits converts a decimal currency amount to integer minor units,
// rounding half away from zero. "20.5" becomes 2050.
func MinorUnits(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", amount)
	}
	if d.Sign() <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// Quote requests a conversion quote for the account currently open in the
// detail view and caches it on the session.
func (s *Service) Quote(ctx context.Context, w *flow.Widget, amount string) error {
	accountID := w.DetailAccountID()
	if accountID == "" {
		return flow.ErrNotOnDashboard
	}

	minor, err := MinorUnits(amount)
	if err != nil {
		return err
	}

	env, err := s.api.CreateQuote(ctx, accountID, minor)
	if err != nil {
		return err
	}
	if env.Error != nil {
		return env.Error
	}

	w.SetQuote(env.Data)
	return nil
}

// Confirm submits the approve transaction for the session's active quote. The
// quote deadline is re-checked here; clocks drift and users stall on the
// confirmation screen.
func (s *Service) Confirm(ctx context.Context, w *flow.Widget) (*Receipt, error) {
	q := w.Quote()
	if q == nil {
		return nil, ErrNoQuote
	}
	if time.Now().UnixMilli() > q.ExpiresAt {
		return nil, ErrQuoteExpired
	}

	amount, ok := new(big.Int).SetString(q.Contract.Amount, 10)
	if !ok {
		return nil, fmt.Errorf("invalid contract amount %q", q.Contract.Amount)
	}

	data, err := wallet.ApproveCallData(q.Contract.BlindPayContractAddress, amount)
	if err != nil {
		return nil, err
	}

	txHash, err := s.sender.Send(ctx, wallet.TransactionRequest{
		Address: w.SmartAddress(),
		ChainID: q.Contract.Network.ChainID,
		Calls: []wallet.Call{
			{
				To:    q.Contract.Address,
				Data:  data,
				Value: "0",
			},
		},
		UI: wallet.UIOptions{ShowWalletUIs: false},
	})
	if err != nil {
		return nil, err
	}

	reference, err := s.hash.EncodeInt64([]int64{time.Now().UnixMilli()})
	if err != nil {
		reference = txHash
	}

	w.CompleteWithdrawal()

	return &Receipt{
		TxHash:      txHash,
		ExplorerURL: wallet.ExplorerTxURL(txHash),
		Reference:   reference,
	}, nil
}
