package blindpay

import "encoding/json"

// APIError is the in-band business error the backend embeds in an otherwise
// successful response. Transport success does not mean business success.
type APIError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

type Receiver struct {
	ID          string `json:"id"`
	Type        string `json:"type,omitempty"`
	KYCType     string `json:"kyc_type,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Country     string `json:"country,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	TaxID       string `json:"tax_id,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	IPAddress   string `json:"ip_address,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Zip         string `json:"zip,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type BlockchainAddress struct {
	Sepolia         string `json:"sepolia,omitempty"`
	ArbitrumSepolia string `json:"arbitrum_sepolia,omitempty"`
	BaseSepolia     string `json:"base_sepolia,omitempty"`
	PolygonAmoy     string `json:"polygon_amoy,omitempty"`
	Base            string `json:"base,omitempty"`
	Arbitrum        string `json:"arbitrum,omitempty"`
	Polygon         string `json:"polygon,omitempty"`
}

type BankAccount struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`

	PixKey string `json:"pix_key,omitempty"`

	BeneficiaryName string `json:"beneficiary_name,omitempty"`
	RoutingNumber   string `json:"routing_number,omitempty"`
	AccountNumber   string `json:"account_number,omitempty"`
	AccountType     string `json:"account_type,omitempty"`
	AccountClass    string `json:"account_class,omitempty"`

	AddressLine1        string `json:"address_line_1,omitempty"`
	AddressLine2        string `json:"address_line_2,omitempty"`
	City                string `json:"city,omitempty"`
	StateProvinceRegion string `json:"state_province_region,omitempty"`
	Country             string `json:"country,omitempty"`
	PostalCode          string `json:"postal_code,omitempty"`

	SpeiProtocol        string `json:"spei_protocol,omitempty"`
	SpeiInstitutionCode string `json:"spei_institution_code,omitempty"`
	SpeiClabe           string `json:"spei_clabe,omitempty"`

	TransfersType    string `json:"transfers_type,omitempty"`
	TransfersAccount string `json:"transfers_account,omitempty"`

	AchCopBeneficiaryFirstName string `json:"ach_cop_beneficiary_first_name,omitempty"`
	AchCopBeneficiaryLastName  string `json:"ach_cop_beneficiary_last_name,omitempty"`
	AchCopDocumentID           string `json:"ach_cop_document_id,omitempty"`
	AchCopDocumentType         string `json:"ach_cop_document_type,omitempty"`
	AchCopEmail                string `json:"ach_cop_email,omitempty"`
	AchCopBankCode             string `json:"ach_cop_bank_code,omitempty"`
	AchCopBankAccount          string `json:"ach_cop_bank_account,omitempty"`

	BlockchainAddress BlockchainAddress `json:"blockchain_address,omitempty"`
}

// Field resolves a schema field name against the account record, for
// schema-ordered display rows.
func (b *BankAccount) Field(name string) string {
	switch name {
	case "name":
		return b.Name
	case "pix_key":
		return b.PixKey
	case "beneficiary_name":
		return b.BeneficiaryName
	case "routing_number":
		return b.RoutingNumber
	case "account_number":
		return b.AccountNumber
	case "account_type":
		return b.AccountType
	case "account_class":
		return b.AccountClass
	case "address_line_1":
		return b.AddressLine1
	case "address_line_2":
		return b.AddressLine2
	case "city":
		return b.City
	case "state_province_region":
		return b.StateProvinceRegion
	case "country":
		return b.Country
	case "postal_code":
		return b.PostalCode
	case "spei_protocol":
		return b.SpeiProtocol
	case "spei_institution_code":
		return b.SpeiInstitutionCode
	case "spei_clabe":
		return b.SpeiClabe
	case "transfers_type":
		return b.TransfersType
	case "transfers_account":
		return b.TransfersAccount
	case "ach_cop_beneficiary_first_name":
		return b.AchCopBeneficiaryFirstName
	case "ach_cop_beneficiary_last_name":
		return b.AchCopBeneficiaryLastName
	case "ach_cop_document_id":
		return b.AchCopDocumentID
	case "ach_cop_document_type":
		return b.AchCopDocumentType
	case "ach_cop_email":
		return b.AchCopEmail
	case "ach_cop_bank_code":
		return b.AchCopBankCode
	case "ach_cop_bank_account":
		return b.AchCopBankAccount
	default:
		return ""
	}
}

type Member struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

type QuoteNetwork struct {
	ChainID int64  `json:"chainId"`
	Name    string `json:"name"`
}

type QuoteContract struct {
	Address                 string            `json:"address"`
	ABI                     []json.RawMessage `json:"abi"`
	FunctionName            string            `json:"functionName"`
	BlindPayContractAddress string            `json:"blindpayContractAddress"`
	Amount                  string            `json:"amount"`
	Network                 QuoteNetwork      `json:"network"`
}

// Quote amounts are integer minor units; expires_at is a unix-millisecond
// deadline the backend re-validates on submission.
type Quote struct {
	ID                  string        `json:"id"`
	ExpiresAt           int64         `json:"expires_at"`
	CommercialQuotation float64       `json:"commercial_quotation"`
	BlindpayQuotation   float64       `json:"blindpay_quotation"`
	SenderAmount        int64         `json:"sender_amount"`
	PartnerFeeAmount    int64         `json:"partner_fee_amount"`
	ReceiverAmount      int64         `json:"receiver_amount"`
	FlatFee             int64         `json:"flat_fee"`
	Contract            QuoteContract `json:"contract"`
}

type ReceiverEnvelope struct {
	Data  *Receiver `json:"data"`
	Error *APIError `json:"error"`
}

type ReceiverListEnvelope struct {
	Data  []Receiver `json:"data"`
	Error *APIError  `json:"error"`
}

type MemberListEnvelope struct {
	Data  []Member  `json:"data"`
	Error *APIError `json:"error"`
}

type BankAccountEnvelope struct {
	Data  *BankAccount `json:"data"`
	Error *APIError    `json:"error"`
}

type BankAccountListEnvelope struct {
	Data  []BankAccount `json:"data"`
	Error *APIError     `json:"error"`
}

type QuoteEnvelope struct {
	Data  *Quote    `json:"data"`
	Error *APIError `json:"error"`
}

type GenericEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error *APIError       `json:"error"`
}
