package forms

import (
	"fmt"
	"time"

	"github.com/offrampkit/offramp-widget-backend/services/schema"
)

// MissingFieldError blocks a submission before any network call; the first
// missing required field (in schema order) wins.
type MissingFieldError struct {
	Label string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("please fill out %s", e.Label)
}

// ReceiverForm drives the create-receiver (KYC) flow. The active field set
// follows the jurisdiction policy: picking a country re-derives the tier and
// entity type, which selects the schema the form validates against.
type ReceiverForm struct {
	email  string
	values map[string]string
	tier   schema.Tier
	entity schema.Entity
}

func NewReceiverForm(email string) *ReceiverForm {
	f := &ReceiverForm{
		email:  email,
		values: make(map[string]string),
		tier:   schema.TierStandard,
		entity: schema.EntityIndividual,
	}
	if email != "" {
		f.values["email"] = email
	}
	return f
}

func (f *ReceiverForm) Set(name, value string) {
	if name == "country" {
		f.tier, f.entity = schema.TierFor(value)
	}
	f.values[name] = value
}

// SetAll applies a batch of field values, handling country first so the
// derived tier matches regardless of map iteration order.
func (f *ReceiverForm) SetAll(values map[string]string) {
	if country, ok := values["country"]; ok {
		f.Set("country", country)
	}
	for name, value := range values {
		if name == "country" {
			continue
		}
		f.Set(name, value)
	}
}

func (f *ReceiverForm) Get(name string) string {
	return f.values[name]
}

func (f *ReceiverForm) Tier() schema.Tier {
	return f.tier
}

func (f *ReceiverForm) Entity() schema.Entity {
	return f.entity
}

func (f *ReceiverForm) fields() []schema.FieldSpec {
	return schema.Fields(schema.DomainKYC, schema.KYCKey(f.tier, f.entity))
}

func (f *ReceiverForm) Validate() error {
	for _, field := range f.fields() {
		if field.Required && f.values[field.Name] == "" {
			return &MissingFieldError{Label: field.Label}
		}
	}
	return nil
}

// Payload assembles the receiverData body. Blank fields are omitted rather
// than sent as empty strings; date fields are normalized to RFC3339; the
// caller's IP is captured unless the form already carries one.
func (f *ReceiverForm) Payload(clientIP string) map[string]interface{} {
	payload := make(map[string]interface{})
	for name, value := range f.values {
		if value == "" {
			continue
		}
		payload[name] = value
	}

	for _, field := range f.fields() {
		if field.Type != schema.TypeDate {
			continue
		}
		if raw, ok := payload[field.Name].(string); ok {
			payload[field.Name] = toISODate(raw)
		}
	}

	payload["type"] = string(f.entity)
	payload["kyc_type"] = string(f.tier)

	if _, ok := payload["ip_address"]; !ok && clientIP != "" {
		payload["ip_address"] = clientIP
	}

	return payload
}

func toISODate(raw string) string {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	return raw
}
