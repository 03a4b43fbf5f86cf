package schema

// The registry is the single source of truth for every dynamic form the
// widget renders: KYC field sets keyed by tier and entity type, and
// bank-account field sets keyed by rail. Lookups are pure; unknown keys
// resolve to an empty list, never an error.

type Domain string

const (
	DomainKYC         Domain = "kyc"
	DomainBankAccount Domain = "bank_account"
)

type FieldType string

const (
	TypeText   FieldType = "text"
	TypeDate   FieldType = "date"
	TypeEmail  FieldType = "email"
	TypeFile   FieldType = "file"
	TypeSelect FieldType = "select"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type FieldSpec struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []Option  `json:"options,omitempty"`
}

var countryOptions = []Option{
	{Value: "US", Label: "US"},
	{Value: "MX", Label: "Mexico"},
	{Value: "AR", Label: "Argentina"},
	{Value: "BR", Label: "Brazil"},
}

var idDocumentTypeOptions = []Option{
	{Value: "passport", Label: "Passport"},
	{Value: "id_card", Label: "ID Card"},
	{Value: "drivers_license", Label: "Driver's License"},
}

var proofOfAddressTypeOptions = []Option{
	{Value: "utility_bill", Label: "Utility Bill"},
	{Value: "bank_statement", Label: "Bank Statement"},
}

var purposeOfTransactionsOptions = []Option{
	{Value: "living_expenses", Label: "Living Expenses"},
	{Value: "business_transactions", Label: "Business Transactions"},
	{Value: "investment", Label: "Investment"},
	{Value: "other", Label: "Other"},
}

// Shared by every individual tier: the light tier is exactly this set.
var kycBasicIndividual = []FieldSpec{
	{Name: "country", Label: "Country", Type: TypeSelect, Required: true, Options: countryOptions},
	{Name: "first_name", Label: "First Name", Type: TypeText, Required: true},
	{Name: "last_name", Label: "Last Name", Type: TypeText, Required: true},
	{Name: "email", Label: "Email", Type: TypeEmail, Required: true},
	{Name: "date_of_birth", Label: "Date of Birth", Type: TypeDate, Required: true},
}

var kycStandardIndividualExtra = []FieldSpec{
	{Name: "tax_id", Label: "Tax ID", Type: TypeText, Required: true},
	{Name: "phone_number", Label: "Phone Number", Type: TypeText, Required: true},
	{Name: "address", Label: "Address", Type: TypeText, Required: true},
	{Name: "city", Label: "City", Type: TypeText, Required: true},
	{Name: "state", Label: "State", Type: TypeText, Required: true},
	{Name: "zip", Label: "Zip", Type: TypeText, Required: true},
	{Name: "id_document_country", Label: "ID Document Country", Type: TypeText, Required: false},
	{Name: "id_document_type", Label: "ID Document Type", Type: TypeSelect, Required: true, Options: idDocumentTypeOptions},
	{Name: "id_document_front", Label: "ID Document Front", Type: TypeFile, Required: true},
	{Name: "id_document_back", Label: "ID Document Back", Type: TypeFile, Required: true},
	{Name: "proof_of_address_type", Label: "Proof of Address Type", Type: TypeSelect, Required: true, Options: proofOfAddressTypeOptions},
	{Name: "proof_of_address_document", Label: "Proof of Address Document", Type: TypeFile, Required: true},
}

var kycEnhancedIndividualExtra = []FieldSpec{
	{Name: "purpose_of_transactions", Label: "Purpose of Transactions", Type: TypeSelect, Required: true, Options: purposeOfTransactionsOptions},
	{Name: "source_of_funds_document", Label: "Source of Funds Document", Type: TypeFile, Required: true},
}

var kycStandardBusiness = []FieldSpec{
	{Name: "country", Label: "Country", Type: TypeSelect, Required: true, Options: countryOptions},
	{Name: "legal_name", Label: "Legal Name", Type: TypeText, Required: true},
	{Name: "email", Label: "Email", Type: TypeEmail, Required: true},
	{Name: "formation_date", Label: "Formation Date", Type: TypeDate, Required: true},
	{Name: "tax_id", Label: "Tax ID", Type: TypeText, Required: true},
	{Name: "phone_number", Label: "Phone Number", Type: TypeText, Required: true},
	{Name: "address", Label: "Address", Type: TypeText, Required: true},
	{Name: "city", Label: "City", Type: TypeText, Required: true},
	{Name: "state", Label: "State", Type: TypeText, Required: true},
	{Name: "zip", Label: "Zip", Type: TypeText, Required: true},
	{Name: "website", Label: "Website", Type: TypeText, Required: false},
	{Name: "incorporation_document", Label: "Incorporation Document", Type: TypeFile, Required: true},
	{Name: "proof_of_ownership_document", Label: "Proof of Ownership Document", Type: TypeFile, Required: true},
}

var kycFields = map[string][]FieldSpec{
	KYCKey(TierLight, EntityIndividual):    kycBasicIndividual,
	KYCKey(TierStandard, EntityIndividual): concat(kycBasicIndividual, kycStandardIndividualExtra),
	KYCKey(TierEnhanced, EntityIndividual): concat(kycBasicIndividual, kycStandardIndividualExtra, kycEnhancedIndividualExtra),
	KYCKey(TierStandard, EntityBusiness):   kycStandardBusiness,
	KYCKey(TierEnhanced, EntityBusiness):   concat(kycStandardBusiness, kycEnhancedIndividualExtra),
}

var accountTypeOptions = []Option{
	{Value: "checking", Label: "Checking"},
	{Value: "saving", Label: "Saving"},
}

var accountClassOptions = []Option{
	{Value: "individual", Label: "Individual"},
	{Value: "business", Label: "Business"},
}

var transfersTypeOptions = []Option{
	{Value: "CVU", Label: "CVU"},
	{Value: "CBU", Label: "CBU"},
	{Value: "ALIAS", Label: "ALIAS"},
}

var bankAccountFields = map[string][]FieldSpec{
	"pix": {
		{Name: "name", Label: "Bank Account Name", Type: TypeText, Required: true},
		{Name: "pix_key", Label: "Pix Key", Type: TypeText, Required: true},
	},
	"ach": {
		{Name: "name", Label: "Bank Account Name", Type: TypeText, Required: true},
		{Name: "beneficiary_name", Label: "Beneficiary Name", Type: TypeText, Required: true},
		{Name: "account_number", Label: "Account Number", Type: TypeText, Required: true},
		{Name: "routing_number", Label: "Routing Number", Type: TypeText, Required: true},
		{Name: "account_type", Label: "Account Type", Type: TypeSelect, Required: true, Options: accountTypeOptions},
		{Name: "account_class", Label: "Account Class", Type: TypeSelect, Required: false, Options: accountClassOptions},
	},
	"wire": {
		{Name: "name", Label: "Bank Account Name", Type: TypeText, Required: true},
		{Name: "beneficiary_name", Label: "Beneficiary Name", Type: TypeText, Required: true},
		{Name: "account_number", Label: "Account Number", Type: TypeText, Required: true},
		{Name: "routing_number", Label: "Routing Number", Type: TypeText, Required: true},
		{Name: "address_line_1", Label: "Address Line 1", Type: TypeText, Required: true},
		{Name: "address_line_2", Label: "Address Line 2", Type: TypeText, Required: false},
		{Name: "city", Label: "City", Type: TypeText, Required: true},
		{Name: "state_province_region", Label: "State/Province/Region", Type: TypeText, Required: true},
		{Name: "country", Label: "Country", Type: TypeText, Required: true},
		{Name: "postal_code", Label: "Postal Code", Type: TypeText, Required: true},
	},
	"spei_bitso": {
		{Name: "name", Label: "Bank Account Name", Type: TypeText, Required: true},
		{Name: "beneficiary_name", Label: "Beneficiary Name", Type: TypeText, Required: true},
		{Name: "spei_protocol", Label: "SPEI Protocol", Type: TypeText, Required: true},
		{Name: "spei_institution_code", Label: "SPEI Institution Code", Type: TypeText, Required: true},
		{Name: "spei_clabe", Label: "SPEI CLABE", Type: TypeText, Required: true},
	},
	"ach_cop_bitso": {
		{Name: "name", Label: "Bank Account Name", Type: TypeText, Required: true},
		{Name: "account_type", Label: "Account Type", Type: TypeSelect, Required: true, Options: accountTypeOptions},
		{Name: "ach_cop_beneficiary_first_name", Label: "First Name", Type: TypeText, Required: true},
		{Name: "ach_cop_beneficiary_last_name", Label: "Last Name", Type: TypeText, Required: true},
		{Name: "ach_cop_document_id", Label: "Document ID", Type: TypeText, Required: true},
		{Name: "ach_cop_document_type", Label: "Document Type", Type: TypeText, Required: true},
		{Name: "ach_cop_email", Label: "Email", Type: TypeEmail, Required: true},
		{Name: "ach_cop_bank_code", Label: "Bank Code", Type: TypeText, Required: true},
		{Name: "ach_cop_bank_account", Label: "Bank Account", Type: TypeText, Required: true},
	},
	"transfers_bitso": {
		{Name: "name", Label: "Bank Account Name", Type: TypeText, Required: true},
		{Name: "beneficiary_name", Label: "Beneficiary Name", Type: TypeText, Required: true},
		{Name: "transfers_type", Label: "Transfer Type", Type: TypeSelect, Required: true, Options: transfersTypeOptions},
		{Name: "transfers_account", Label: "Transfer Account", Type: TypeText, Required: true},
	},
}

// Fields returns the ordered field list for a schema key, or an empty list
// for keys the registry does not know.
func Fields(domain Domain, key string) []FieldSpec {
	var fields []FieldSpec
	switch domain {
	case DomainKYC:
		fields = kycFields[key]
	case DomainBankAccount:
		fields = bankAccountFields[key]
	}

	out := make([]FieldSpec, len(fields))
	copy(out, fields)
	return out
}

func concat(lists ...[]FieldSpec) []FieldSpec {
	var out []FieldSpec
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
