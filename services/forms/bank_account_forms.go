package forms

import (
	"github.com/offrampkit/offramp-widget-backend/providers/blindpay"
	"github.com/offrampkit/offramp-widget-backend/services/schema"
)

// BankAccountForm drives the add-bank-account flow for one rail. Selecting a
// rail seeds the field set from the schema registry.
type BankAccountForm struct {
	rail   string
	values map[string]string
}

func NewBankAccountForm(rail string) *BankAccountForm {
	return &BankAccountForm{
		rail:   rail,
		values: make(map[string]string),
	}
}

func (f *BankAccountForm) Rail() string {
	return f.rail
}

func (f *BankAccountForm) Set(name, value string) {
	f.values[name] = value
}

func (f *BankAccountForm) SetAll(values map[string]string) {
	for name, value := range values {
		f.values[name] = value
	}
}

func (f *BankAccountForm) Validate() error {
	for _, field := range schema.Fields(schema.DomainBankAccount, f.rail) {
		if field.Required && f.values[field.Name] == "" {
			return &MissingFieldError{Label: field.Label}
		}
	}
	return nil
}

// Payload carries the rail as type plus every non-blank field. Blank fields
// are omitted, never sent as empty strings.
func (f *BankAccountForm) Payload() map[string]interface{} {
	payload := map[string]interface{}{
		"type": f.rail,
	}
	for name, value := range f.values {
		if value == "" {
			continue
		}
		payload[name] = value
	}
	return payload
}

// RemoveConfirmation is the friction gate in front of account deletion: the
// user must retype the exact case-sensitive account name before the remove
// action is enabled.
type RemoveConfirmation struct {
	accounts []blindpay.BankAccount
	typed    string
}

func NewRemoveConfirmation(accounts []blindpay.BankAccount) *RemoveConfirmation {
	return &RemoveConfirmation{accounts: accounts}
}

func (r *RemoveConfirmation) Type(name string) {
	r.typed = name
}

// Match returns the account whose name equals the typed confirmation.
func (r *RemoveConfirmation) Match() (*blindpay.BankAccount, bool) {
	for i := range r.accounts {
		if r.accounts[i].Name == r.typed {
			return &r.accounts[i], true
		}
	}
	return nil, false
}

func (r *RemoveConfirmation) Enabled() bool {
	_, ok := r.Match()
	return ok
}
