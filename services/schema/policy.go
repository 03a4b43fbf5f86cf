package schema

type Tier string

const (
	TierLight    Tier = "light"
	TierStandard Tier = "standard"
	TierEnhanced Tier = "enhanced"
)

type Entity string

const (
	EntityIndividual Entity = "individual"
	EntityBusiness   Entity = "business"
)

// KYCKey builds the registry key for a tier/entity pair.
func KYCKey(tier Tier, entity Entity) string {
	return string(tier) + ":" + string(entity)
}

// TierFor applies the jurisdiction policy: US onboards at standard,
// MX/AR/BR qualify for the light tier, everywhere else defaults to standard.
func TierFor(country string) (Tier, Entity) {
	switch country {
	case "US":
		return TierStandard, EntityIndividual
	case "MX", "AR", "BR":
		return TierLight, EntityIndividual
	default:
		return TierStandard, EntityIndividual
	}
}

// RailLocale describes a bank-transfer rail for display purposes.
type RailLocale struct {
	Country       string `json:"country"`
	Currency      string `json:"currency"`
	Flag          string `json:"flag"`
	EstimatedTime string `json:"estimated_time"`
}

var railLocales = map[string]RailLocale{
	"ach": {
		Country:       "United States",
		Currency:      "USD",
		Flag:          "🇺🇸",
		EstimatedTime: "~2 business days",
	},
	"wire": {
		Country:       "United States",
		Currency:      "USD",
		Flag:          "🇺🇸",
		EstimatedTime: "~1 business day",
	},
	"pix": {
		Country:       "Brazil",
		Currency:      "BRL",
		Flag:          "🇧🇷",
		EstimatedTime: "~5 minutes",
	},
	"spei_bitso": {
		Country:       "Mexico",
		Currency:      "MXN",
		Flag:          "🇲🇽",
		EstimatedTime: "~5 minutes",
	},
	"ach_cop_bitso": {
		Country:       "Colombia",
		Currency:      "COP",
		Flag:          "🇨🇴",
		EstimatedTime: "~1 business day",
	},
	"transfers_bitso": {
		Country:       "Argentina",
		Currency:      "ARS",
		Flag:          "🇦🇷",
		EstimatedTime: "~5 minutes",
	},
}

// Stable presentation order for rail pickers.
var railOrder = []string{"pix", "ach", "wire", "spei_bitso", "ach_cop_bitso", "transfers_bitso"}

// LocaleFor returns the display locale for a rail; unknown rails get the
// neutral placeholder rather than an error.
func LocaleFor(rail string) RailLocale {
	if locale, ok := railLocales[rail]; ok {
		return locale
	}
	return RailLocale{
		Country:       "Unknown",
		Currency:      "Unknown",
		Flag:          "🏳️",
		EstimatedTime: "Unknown",
	}
}

// Rails lists the supported rails in presentation order.
func Rails() []string {
	out := make([]string, len(railOrder))
	copy(out, railOrder)
	return out
}
