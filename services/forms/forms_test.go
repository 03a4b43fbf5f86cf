package forms

import (
	"errors"
	"testing"

	"github.com/offrampkit/offramp-widget-backend/providers/blindpay"
	"github.com/offrampkit/offramp-widget-backend/services/schema"
)

func TestReceiverFormSeedsEmail(t *testing.T) {
	form := NewReceiverForm("user@example.com")
	if form.Get("email") != "user@example.com" {
		t.Errorf("email = %q", form.Get("email"))
	}
	if form.Tier() != schema.TierStandard || form.Entity() != schema.EntityIndividual {
		t.Errorf("default policy = %q:%q", form.Tier(), form.Entity())
	}
}

func TestReceiverFormCountryDerivesTier(t *testing.T) {
	form := NewReceiverForm("user@example.com")

	form.Set("country", "MX")
	if form.Tier() != schema.TierLight {
		t.Errorf("MX tier = %q, want light", form.Tier())
	}

	form.Set("country", "US")
	if form.Tier() != schema.TierStandard {
		t.Errorf("US tier = %q, want standard", form.Tier())
	}
}

func TestReceiverFormSetAllHandlesCountryFirst(t *testing.T) {
	form := NewReceiverForm("user@example.com")
	form.SetAll(map[string]string{
		"first_name": "Ana",
		"country":    "BR",
		"last_name":  "Souza",
	})

	if form.Tier() != schema.TierLight {
		t.Errorf("BR tier = %q, want light", form.Tier())
	}
	if form.Get("first_name") != "Ana" || form.Get("last_name") != "Souza" {
		t.Error("batch values not applied")
	}
}

func TestReceiverFormValidateFirstMissingWins(t *testing.T) {
	form := NewReceiverForm("user@example.com")
	form.SetAll(map[string]string{
		"country":    "BR",
		"first_name": "Ana",
	})

	err := form.Validate()
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("Validate() = %v, want MissingFieldError", err)
	}
	if missing.Label != "Last Name" {
		t.Errorf("first missing label = %q, want Last Name", missing.Label)
	}
	if missing.Error() != "please fill out Last Name" {
		t.Errorf("message = %q", missing.Error())
	}
}

func TestReceiverFormValidateCompleteLight(t *testing.T) {
	form := NewReceiverForm("user@example.com")
	form.SetAll(map[string]string{
		"country":       "BR",
		"first_name":    "Ana",
		"last_name":     "Souza",
		"date_of_birth": "1990-04-12",
	})

	if err := form.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestReceiverFormPayload(t *testing.T) {
	form := NewReceiverForm("user@example.com")
	form.SetAll(map[string]string{
		"country":       "BR",
		"first_name":    "Ana",
		"last_name":     "Souza",
		"date_of_birth": "1990-04-12",
		"phone_number":  "",
	})

	payload := form.Payload("203.0.113.7")

	if payload["type"] != "individual" || payload["kyc_type"] != "light" {
		t.Errorf("policy fields = %v / %v", payload["type"], payload["kyc_type"])
	}
	if payload["date_of_birth"] != "1990-04-12T00:00:00Z" {
		t.Errorf("date_of_birth = %v", payload["date_of_birth"])
	}
	if payload["ip_address"] != "203.0.113.7" {
		t.Errorf("ip_address = %v", payload["ip_address"])
	}
	if _, ok := payload["phone_number"]; ok {
		t.Error("blank fields should be omitted")
	}
}

func TestReceiverFormPayloadKeepsExplicitIP(t *testing.T) {
	form := NewReceiverForm("user@example.com")
	form.Set("ip_address", "198.51.100.9")

	payload := form.Payload("203.0.113.7")
	if payload["ip_address"] != "198.51.100.9" {
		t.Errorf("ip_address = %v, want the form's own value", payload["ip_address"])
	}
}

func TestBankAccountFormValidate(t *testing.T) {
	form := NewBankAccountForm("pix")
	form.Set("name", "Nubank")

	err := form.Validate()
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("Validate() = %v, want MissingFieldError", err)
	}
	if missing.Label != "Pix Key" {
		t.Errorf("missing label = %q", missing.Label)
	}

	form.Set("pix_key", "ana@example.com")
	if err := form.Validate(); err != nil {
		t.Fatalf("Validate() after completing = %v", err)
	}
}

func TestBankAccountFormPayload(t *testing.T) {
	form := NewBankAccountForm("pix")
	form.SetAll(map[string]string{
		"name":    "Nubank",
		"pix_key": "ana@example.com",
	})
	form.Set("unused", "")

	payload := form.Payload()
	if payload["type"] != "pix" {
		t.Errorf("type = %v", payload["type"])
	}
	if payload["name"] != "Nubank" || payload["pix_key"] != "ana@example.com" {
		t.Errorf("payload = %v", payload)
	}
	if _, ok := payload["unused"]; ok {
		t.Error("blank fields should be omitted")
	}
}

func TestRemoveConfirmationExactMatch(t *testing.T) {
	accounts := []blindpay.BankAccount{
		{ID: "ba_1", Type: "ach", Name: "Chase Checking"},
		{ID: "ba_2", Type: "pix", Name: "Nubank"},
	}

	confirmation := NewRemoveConfirmation(accounts)

	confirmation.Type("chase checking")
	if confirmation.Enabled() {
		t.Error("case-insensitive match should not enable removal")
	}

	confirmation.Type("Chase Checking")
	account, ok := confirmation.Match()
	if !ok {
		t.Fatal("exact match should enable removal")
	}
	if account.ID != "ba_1" {
		t.Errorf("matched account = %q", account.ID)
	}
}
