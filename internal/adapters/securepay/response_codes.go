package securepay

import (
	pkgerrors "github.com/kevin07696/securepay-gateway/pkg/errors"
)

// ResponseCodeInfo contains detailed information about a response code
type ResponseCodeInfo struct {
	Code        string
	Display     string
	Description string
	IsApproved  bool
	IsRetriable bool
	Category    pkgerrors.ErrorCategory
}

// bankResponseCodes covers the two-digit responseCode values returned inside a Txn
var bankResponseCodes = map[string]ResponseCodeInfo{
	// Approvals
	"00": {Code: "00", Display: "APPROVED", Description: "Approved", IsApproved: true, Category: pkgerrors.CategoryApproved},
	"08": {Code: "08", Display: "HONOUR WITH ID", Description: "Honour with identification", IsApproved: true, Category: pkgerrors.CategoryApproved},
	"11": {Code: "11", Display: "APPROVED VIP", Description: "Approved VIP", IsApproved: true, Category: pkgerrors.CategoryApproved},
	"16": {Code: "16", Display: "APPROVED", Description: "Approved, update track 3", IsApproved: true, Category: pkgerrors.CategoryApproved},
	"77": {Code: "77", Display: "APPROVED", Description: "Approved (ANZ only)", IsApproved: true, Category: pkgerrors.CategoryApproved},

	// Declines
	"01": {Code: "01", Display: "REFER TO ISSUER", Description: "Refer to card issuer", Category: pkgerrors.CategoryDeclined},
	"03": {Code: "03", Display: "INVALID MERCHANT", Description: "Invalid merchant", Category: pkgerrors.CategoryMerchantConfig},
	"04": {Code: "04", Display: "PICK UP CARD", Description: "Pick-up card", Category: pkgerrors.CategoryFraud},
	"05": {Code: "05", Display: "DO NOT HONOUR", Description: "Do not honour", Category: pkgerrors.CategoryDeclined},
	"12": {Code: "12", Display: "INVALID TRANSACTION", Description: "Invalid transaction", Category: pkgerrors.CategoryInvalidRequest},
	"14": {Code: "14", Display: "INVALID CARD", Description: "Invalid card number", Category: pkgerrors.CategoryInvalidCard},
	"31": {Code: "31", Display: "BANK NOT SUPPORTED", Description: "Bank not supported by switch", Category: pkgerrors.CategoryInvalidCard},
	"33": {Code: "33", Display: "EXPIRED CARD", Description: "Expired card, pick up", Category: pkgerrors.CategoryExpiredCard},
	"41": {Code: "41", Display: "LOST CARD", Description: "Lost card, pick up", Category: pkgerrors.CategoryFraud},
	"43": {Code: "43", Display: "STOLEN CARD", Description: "Stolen card, pick up", Category: pkgerrors.CategoryFraud},
	"51": {Code: "51", Display: "INSUFFICIENT FUNDS", Description: "Insufficient funds", IsRetriable: true, Category: pkgerrors.CategoryInsufficientFunds},
	"54": {Code: "54", Display: "CARD EXPIRED", Description: "Expired card", Category: pkgerrors.CategoryExpiredCard},
	"57": {Code: "57", Display: "NOT PERMITTED", Description: "Function not permitted to cardholder", Category: pkgerrors.CategoryDeclined},
	"61": {Code: "61", Display: "OVER LIMIT", Description: "Exceeds withdrawal amount limit", IsRetriable: true, Category: pkgerrors.CategoryInsufficientFunds},

	// Issuer / switch problems
	"22": {Code: "22", Display: "SUSPECTED MALFUNCTION", Description: "Suspected malfunction", IsRetriable: true, Category: pkgerrors.CategorySystemError},
	"91": {Code: "91", Display: "ISSUER UNAVAILABLE", Description: "Card issuer unavailable", IsRetriable: true, Category: pkgerrors.CategorySystemError},
	"96": {Code: "96", Display: "SYSTEM ERROR", Description: "System malfunction", IsRetriable: true, Category: pkgerrors.CategorySystemError},
}

// statusCodes covers the three-digit statusCode values of the message Status block
var statusCodes = map[string]ResponseCodeInfo{
	"000": {Code: "000", Display: "NORMAL", Description: "Message processed", IsApproved: true, Category: pkgerrors.CategoryApproved},
	"504": {Code: "504", Display: "INVALID MERCHANT ID", Description: "Invalid merchant ID", Category: pkgerrors.CategoryMerchantConfig},
	"505": {Code: "505", Display: "INVALID URL", Description: "Invalid URL", Category: pkgerrors.CategoryInvalidRequest},
	"510": {Code: "510", Display: "UNABLE TO CONNECT", Description: "Unable to connect to server", IsRetriable: true, Category: pkgerrors.CategoryNetworkError},
	"511": {Code: "511", Display: "CONNECTION ABORTED", Description: "Server connection aborted during transaction", IsRetriable: true, Category: pkgerrors.CategoryNetworkError},
	"512": {Code: "512", Display: "TIMED OUT", Description: "Transaction timed out by client", IsRetriable: true, Category: pkgerrors.CategoryNetworkError},
	"513": {Code: "513", Display: "DATABASE ERROR", Description: "General database error", IsRetriable: true, Category: pkgerrors.CategorySystemError},
	"514": {Code: "514", Display: "PROPERTIES ERROR", Description: "Error loading properties file", Category: pkgerrors.CategorySystemError},
	"515": {Code: "515", Display: "FATAL ERROR", Description: "Fatal unknown error", Category: pkgerrors.CategorySystemError},
	"516": {Code: "516", Display: "REQUEST TYPE UNAVAILABLE", Description: "Request type unavailable", Category: pkgerrors.CategoryInvalidRequest},
	"517": {Code: "517", Display: "MESSAGE FORMAT ERROR", Description: "Message format error", Category: pkgerrors.CategoryInvalidRequest},
	"524": {Code: "524", Display: "NO RESPONSE", Description: "Response not received", IsRetriable: true, Category: pkgerrors.CategoryNetworkError},
	"545": {Code: "545", Display: "MAINTENANCE", Description: "System maintenance in progress", IsRetriable: true, Category: pkgerrors.CategorySystemError},
	"550": {Code: "550", Display: "INVALID PASSWORD", Description: "Invalid password", Category: pkgerrors.CategoryMerchantConfig},
	"575": {Code: "575", Display: "NOT IMPLEMENTED", Description: "Not implemented", Category: pkgerrors.CategoryInvalidRequest},
	"577": {Code: "577", Display: "TOO MANY RECORDS", Description: "Too many records for processing", Category: pkgerrors.CategoryInvalidRequest},
	"580": {Code: "580", Display: "PROCESS NOT CALLED", Description: "Process method has not been called", Category: pkgerrors.CategorySystemError},
	"595": {Code: "595", Display: "MERCHANT DISABLED", Description: "Merchant disabled", Category: pkgerrors.CategoryMerchantConfig},
}

// GetResponseCode retrieves information about a Txn responseCode
func GetResponseCode(code string) ResponseCodeInfo {
	if info, exists := bankResponseCodes[code]; exists {
		return info
	}
	return unknownCode(code)
}

// GetStatusCode retrieves information about a message statusCode
func GetStatusCode(code string) ResponseCodeInfo {
	if info, exists := statusCodes[code]; exists {
		return info
	}
	return unknownCode(code)
}

// describeResponse picks the most specific code in a parsed response.
// A rejected message (e.g. bad credentials) has a statusCode but no responseCode.
func describeResponse(params map[string]string) ResponseCodeInfo {
	if code := params["response_code"]; code != "" {
		return GetResponseCode(code)
	}
	if code := params["status_code"]; code != "" {
		return GetStatusCode(code)
	}
	return unknownCode("")
}

func unknownCode(code string) ResponseCodeInfo {
	return ResponseCodeInfo{
		Code:        code,
		Display:     "UNKNOWN",
		Description: "Unknown response code",
		IsRetriable: false,
		Category:    pkgerrors.CategoryDeclined,
	}
}
