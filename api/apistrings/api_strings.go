package apistrings

const (
	/// Session Related Strings
	SessionNotFound   = "widget session does not exist or has expired"
	InvalidEmbedToken = "invalid embed token, please re-authenticate with the host"

	/// Core Functionality Error
	ServerError   = "a server error occurred, please try again later"
	RequestFailed = "request to payments backend failed, please try again"

	/// Onboarding Related Strings
	InvalidReceiverInput = "invalid receiver input, please check submitted information"
	UnknownSchemaKey     = "no form schema exists for the requested key"

	/// Bank Account Related Strings
	InvalidBankAccountInput = "invalid bank account input, please check submitted information"
	UnknownRail             = "entered payment rail is not supported"
	KYCTierHint             = "this payment rail requires a higher verification level, please complete KYC first"

	/// Withdrawal Related Strings
	InvalidAmountInput = "invalid amount, please enter a positive number"
)
