package models

import (
	"github.com/shopspring/decimal"

	"github.com/offrampkit/offramp-widget-backend/providers/blindpay"
	"github.com/offrampkit/offramp-widget-backend/services/flow"
	"github.com/offrampkit/offramp-widget-backend/services/schema"
)

// WidgetView is the full render state for one session. The host frontend is a
// dumb renderer: everything it shows comes from here.
type WidgetView struct {
	SessionID  string         `json:"session_id"`
	Route      string         `json:"route"`
	Modal      string         `json:"modal"`
	Confirming bool           `json:"confirming"`
	Receiver   *ReceiverView  `json:"receiver,omitempty"`
	Accounts   []AccountCard  `json:"accounts"`
	Detail     *AccountDetail `json:"detail,omitempty"`
	Quote      *QuoteView     `json:"quote,omitempty"`
}

type ReceiverView struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Country   string `json:"country,omitempty"`
	KYCType   string `json:"kyc_type,omitempty"`
}

// AccountCard is one row in the dashboard's account list, decorated with the
// rail's display locale.
type AccountCard struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Rail          string `json:"rail"`
	Country       string `json:"country"`
	Currency      string `json:"currency"`
	Flag          string `json:"flag"`
	EstimatedTime string `json:"estimated_time"`
}

type DetailRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// AccountDetail renders one account's fields in schema order. Blank values
// render as "N/A" so every schema row is present.
type AccountDetail struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Rail string      `json:"rail"`
	Rows []DetailRow `json:"rows"`
}

// QuoteView is the display form of a conversion quote: amounts move from
// integer minor units back to 2-decimal currency strings, and the effective
// rate is receiver over sender at 3 decimals.
type QuoteView struct {
	ID            string `json:"id"`
	ExpiresAt     int64  `json:"expires_at"`
	SendAmount    string `json:"send_amount"`
	ReceiveAmount string `json:"receive_amount"`
	Rate          string `json:"rate"`
	Currency      string `json:"currency"`
}

func NewWidgetView(w *flow.Widget) *WidgetView {
	view := &WidgetView{
		SessionID:  w.ID(),
		Route:      string(w.Route()),
		Modal:      string(w.Modal()),
		Confirming: w.Confirming(),
		Accounts:   []AccountCard{},
	}

	if r := w.Receiver(); r != nil {
		view.Receiver = &ReceiverView{
			ID:        r.ID,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
			Country:   r.Country,
			KYCType:   r.KYCType,
		}
	}

	accounts := w.Accounts()
	for i := range accounts {
		view.Accounts = append(view.Accounts, NewAccountCard(&accounts[i]))
	}

	if id := w.DetailAccountID(); id != "" {
		for i := range accounts {
			if accounts[i].ID == id {
				view.Detail = NewAccountDetail(&accounts[i])
				break
			}
		}
	}

	if q := w.Quote(); q != nil && view.Detail != nil {
		view.Quote = NewQuoteView(q, schema.LocaleFor(view.Detail.Rail).Currency)
	}

	return view
}

func NewAccountCard(account *blindpay.BankAccount) AccountCard {
	locale := schema.LocaleFor(account.Type)
	return AccountCard{
		ID:            account.ID,
		Name:          account.Name,
		Rail:          account.Type,
		Country:       locale.Country,
		Currency:      locale.Currency,
		Flag:          locale.Flag,
		EstimatedTime: locale.EstimatedTime,
	}
}

func NewAccountDetail(account *blindpay.BankAccount) *AccountDetail {
	detail := &AccountDetail{
		ID:   account.ID,
		Name: account.Name,
		Rail: account.Type,
		Rows: []DetailRow{},
	}
	for _, field := range schema.Fields(schema.DomainBankAccount, account.Type) {
		value := account.Field(field.Name)
		if value == "" {
			value = "N/A"
		}
		detail.Rows = append(detail.Rows, DetailRow{
			Label: field.Label,
			Value: value,
		})
	}
	return detail
}

func NewQuoteView(q *blindpay.Quote, currency string) *QuoteView {
	hundred := decimal.NewFromInt(100)
	send := decimal.NewFromInt(q.SenderAmount).Div(hundred)
	receive := decimal.NewFromInt(q.ReceiverAmount).Div(hundred)

	rate := "0.000"
	if q.SenderAmount != 0 {
		rate = decimal.NewFromInt(q.ReceiverAmount).
			Div(decimal.NewFromInt(q.SenderAmount)).
			StringFixed(3)
	}

	return &QuoteView{
		ID:            q.ID,
		ExpiresAt:     q.ExpiresAt,
		SendAmount:    send.StringFixed(2),
		ReceiveAmount: receive.StringFixed(2),
		Rate:          rate,
		Currency:      currency,
	}
}
