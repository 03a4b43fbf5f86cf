package flow

import (
	"context"
	"sync"

	"github.com/offrampkit/offramp-widget-backend/providers/blindpay"
	"github.com/offrampkit/offramp-widget-backend/services/forms"
	"github.com/offrampkit/offramp-widget-backend/services/monitoring/logging"
)

// Route is the widget's top-level view.
type Route string

const (
	RouteStart    Route = "start"
	RouteCreate   Route = "create"
	RouteExisting Route = "existing"
)

// Modal is the dashboard's nested overlay; at most one is active.
type Modal string

const (
	ModalNone      Modal = "none"
	ModalAdding    Modal = "adding"
	ModalRemoving  Modal = "removing"
	ModalDetailing Modal = "detailing"
)

// API is the slice of the payments backend the widget flow consumes.
// *blindpay.Provider satisfies it.
type API interface {
	GetReceiverByEmail(ctx context.Context, email string) (*blindpay.ReceiverEnvelope, error)
	CreateReceiver(ctx context.Context, receiverData map[string]interface{}) (*blindpay.ReceiverEnvelope, error)
	GetBankAccounts(ctx context.Context, receiverID string) (*blindpay.BankAccountListEnvelope, error)
	CreateBankAccount(ctx context.Context, receiverID string, bankAccountData map[string]interface{}) (*blindpay.BankAccountEnvelope, error)
	DeleteBankAccount(ctx context.Context, receiverID string, bankAccountID string) (*blindpay.GenericEnvelope, error)
	CreateQuote(ctx context.Context, bankAccountID string, requestAmount int64) (*blindpay.QuoteEnvelope, error)
}

// Widget holds one mounted widget session: the identity handed off by the
// host, the cached receiver, the bank-account snapshot, and the view state
// machine. All methods are safe for concurrent use; submissions serialize on
// the widget mutex, so a rapid second mutation runs after the first and its
// refetch wins.
type Widget struct {
	mu     sync.Mutex
	id     string
	email  string
	smart  string
	api    API
	logger *logging.Logger

	route      Route
	modal      Modal
	confirming bool

	receiver *blindpay.Receiver
	accounts []blindpay.BankAccount

	detailAccountID string
	quote           *blindpay.Quote

	// Mount guard: the by-email lookup fires at most once per session,
	// regardless of how often the host re-requests the view.
	lookupAttempted bool
}

func NewWidget(id, email, smartAddress string, api API, logger *logging.Logger) *Widget {
	return &Widget{
		id:     id,
		email:  email,
		smart:  smartAddress,
		api:    api,
		logger: logger,
		route:  RouteStart,
		modal:  ModalNone,
	}
}

func (w *Widget) ID() string           { return w.id }
func (w *Widget) Email() string        { return w.email }
func (w *Widget) SmartAddress() string { return w.smart }

func (w *Widget) Route() Route {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.route
}

func (w *Widget) Modal() Modal {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.modal
}

func (w *Widget) Confirming() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.confirming
}

func (w *Widget) Receiver() *blindpay.Receiver {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.receiver
}

// Accounts returns the current full server snapshot.
func (w *Widget) Accounts() []blindpay.BankAccount {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]blindpay.BankAccount, len(w.accounts))
	copy(out, w.accounts)
	return out
}

func (w *Widget) Quote() *blindpay.Quote {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.quote
}

func (w *Widget) DetailAccountID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.detailAccountID
}

// EnsureReceiver performs the one-shot mount lookup: when the session has an
// authenticated email and no cached receiver, fetch by email exactly once.
func (w *Widget) EnsureReceiver(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.email == "" || w.receiver != nil || w.lookupAttempted {
		return nil
	}
	w.lookupAttempted = true

	env, err := w.api.GetReceiverByEmail(ctx, w.email)
	if err != nil {
		return err
	}
	if env.Error != nil {
		// First-time user; onboarding will create the record.
		w.logger.Info("receiver lookup returned no record", env.Error.Message)
		return nil
	}
	if env.Data != nil && env.Data.ID != "" {
		w.receiver = env.Data
	}
	return nil
}

// StartClicked routes to the dashboard when a receiver is cached, otherwise
// to onboarding. Entering the dashboard refreshes the account snapshot; a
// refresh failure leaves the dashboard active and is reported to the caller.
func (w *Widget) StartClicked(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.receiver == nil {
		w.route = RouteCreate
		return nil
	}

	w.route = RouteExisting
	w.modal = ModalNone
	return w.refreshAccountsLocked(ctx)
}

// Close dismisses the widget back to start. The cached receiver survives so
// the next start click routes straight to the dashboard.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.route = RouteStart
	w.resetOverlaysLocked()
}

// CreateReceiver submits the KYC form. On success the authoritative record is
// re-fetched wholesale by email and the flow advances to the dashboard.
func (w *Widget) CreateReceiver(ctx context.Context, form *forms.ReceiverForm, clientIP string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := form.Validate(); err != nil {
		return err
	}

	env, err := w.api.CreateReceiver(ctx, form.Payload(clientIP))
	if err != nil {
		return err
	}
	if env.Error != nil {
		return env.Error
	}
	if env.Data == nil || env.Data.ID == "" {
		return ErrReceiverNotCreated
	}

	w.receiver = env.Data
	if w.email != "" {
		if fresh, err := w.api.GetReceiverByEmail(ctx, w.email); err == nil && fresh.Data != nil && fresh.Data.ID != "" {
			w.receiver = fresh.Data
		}
	}

	w.route = RouteExisting
	w.modal = ModalNone
	return w.refreshAccountsLocked(ctx)
}

// RefreshAccounts replaces the displayed list with a fresh full snapshot.
func (w *Widget) RefreshAccounts(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.refreshAccountsLocked(ctx)
}

func (w *Widget) refreshAccountsLocked(ctx context.Context) error {
	if w.receiver == nil {
		return ErrNoReceiver
	}

	env, err := w.api.GetBankAccounts(ctx, w.receiver.ID)
	if err != nil {
		return err
	}
	if env.Error != nil {
		return env.Error
	}

	// Always the server's list, never a merge.
	w.accounts = env.Data
	return nil
}

// OpenModal raises one of the dashboard overlays; overlays are mutually
// exclusive, so raising one dismisses whatever was up.
func (w *Widget) OpenModal(modal Modal) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.route != RouteExisting {
		return ErrNotOnDashboard
	}

	w.resetOverlaysLocked()
	w.modal = modal
	return nil
}

// OpenDetail raises the detail overlay for an account in the current
// snapshot.
func (w *Widget) OpenDetail(accountID string) (*blindpay.BankAccount, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.route != RouteExisting {
		return nil, ErrNotOnDashboard
	}

	for i := range w.accounts {
		if w.accounts[i].ID == accountID {
			w.resetOverlaysLocked()
			w.modal = ModalDetailing
			w.detailAccountID = accountID
			account := w.accounts[i]
			return &account, nil
		}
	}
	return nil, ErrUnknownAccount
}

// CancelModal dismisses any overlay back to the plain dashboard.
func (w *Widget) CancelModal() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetOverlaysLocked()
}

func (w *Widget) resetOverlaysLocked() {
	w.modal = ModalNone
	w.confirming = false
	w.detailAccountID = ""
	w.quote = nil
}

// SetQuote caches the active quote for the detail overlay.
func (w *Widget) SetQuote(q *blindpay.Quote) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.quote = q
}

// BeginConfirm raises the confirmation overlay on top of the detail view.
func (w *Widget) BeginConfirm() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.modal != ModalDetailing || w.quote == nil {
		return ErrNotOnDashboard
	}
	w.confirming = true
	return nil
}

// CompleteWithdrawal closes both the confirmation and detail overlays,
// returning to the dashboard.
func (w *Widget) CompleteWithdrawal() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetOverlaysLocked()
}

// AddBankAccount submits the add form, then refetches the snapshot strictly
// after the mutation resolves. The adding modal must be up.
func (w *Widget) AddBankAccount(ctx context.Context, form *forms.BankAccountForm) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.receiver == nil {
		return ErrNoReceiver
	}
	if w.route != RouteExisting || w.modal != ModalAdding {
		return ErrModalClosed
	}
	if err := form.Validate(); err != nil {
		return err
	}

	env, err := w.api.CreateBankAccount(ctx, w.receiver.ID, form.Payload())
	if err != nil {
		return err
	}
	if env.Error != nil {
		return env.Error
	}

	w.modal = ModalNone
	return w.refreshAccountsLocked(ctx)
}

// RemoveBankAccount deletes the account whose exact case-sensitive name was
// retyped, then refetches the snapshot. The removing modal must be up.
func (w *Widget) RemoveBankAccount(ctx context.Context, typedName string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.receiver == nil {
		return ErrNoReceiver
	}
	if w.route != RouteExisting || w.modal != ModalRemoving {
		return ErrModalClosed
	}

	confirmation := forms.NewRemoveConfirmation(w.accounts)
	confirmation.Type(typedName)
	account, ok := confirmation.Match()
	if !ok {
		return ErrConfirmationMismatch
	}

	env, err := w.api.DeleteBankAccount(ctx, w.receiver.ID, account.ID)
	if err != nil {
		return err
	}
	if env.Error != nil {
		return env.Error
	}

	w.modal = ModalNone
	return w.refreshAccountsLocked(ctx)
}
