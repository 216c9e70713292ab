package securepay

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/kevin07696/securepay-gateway/internal/domain/models"
	"github.com/kevin07696/securepay-gateway/pkg/encoding"
)

const (
	apiVersion         = "xml-4.2"
	periodicAPIVersion = "spxml-4.2"

	requestTypePayment  = "Payment"
	requestTypePeriodic = "Periodic"
)

// securePayMessage is the request envelope shared by every call
type securePayMessage struct {
	XMLName      xml.Name      `xml:"SecurePayMessage"`
	MessageInfo  messageInfo   `xml:"MessageInfo"`
	MerchantInfo merchantInfo  `xml:"MerchantInfo"`
	RequestType  string        `xml:"RequestType"`
	Payment      *paymentBody  `xml:"Payment,omitempty"`
	Periodic     *periodicBody `xml:"Periodic,omitempty"`
}

type messageInfo struct {
	MessageID        string `xml:"messageID"`
	MessageTimestamp string `xml:"messageTimestamp"`
	TimeoutValue     int    `xml:"timeoutValue"`
	APIVersion       string `xml:"apiVersion"`
}

type merchantInfo struct {
	MerchantID string `xml:"merchantID"`
	Password   string `xml:"password"`
}

type paymentBody struct {
	TxnList txnList `xml:"TxnList"`
}

type txnList struct {
	Count int `xml:"count,attr"`
	Txn   txn `xml:"Txn"`
}

type txn struct {
	ID              int             `xml:"ID,attr"`
	TxnType         int             `xml:"txnType"`
	TxnSource       int             `xml:"txnSource"`
	Amount          string          `xml:"amount"`
	Currency        string          `xml:"currency"`
	PurchaseOrderNo string          `xml:"purchaseOrderNo"`
	TxnID           string          `xml:"txnID,omitempty"`
	PreauthID       string          `xml:"preauthID,omitempty"`
	CreditCardInfo  *creditCardInfo `xml:"CreditCardInfo,omitempty"`
}

type creditCardInfo struct {
	CardNumber string `xml:"cardNumber"`
	ExpiryDate string `xml:"expiryDate"`
	CVV        string `xml:"cvv,omitempty"`
}

type periodicBody struct {
	PeriodicList periodicList `xml:"PeriodicList"`
}

type periodicList struct {
	Count int          `xml:"count,attr"`
	Item  periodicItem `xml:"PeriodicItem"`
}

type periodicItem struct {
	ID               int             `xml:"ID,attr"`
	ActionType       string          `xml:"actionType"`
	ClientID         string          `xml:"clientID"`
	Amount           string          `xml:"amount,omitempty"`
	StartDate        string          `xml:"startDate,omitempty"`
	PeriodicType     int             `xml:"periodicType,omitempty"`
	PaymentInterval  int             `xml:"paymentInterval,omitempty"`
	NumberOfPayments int             `xml:"numberOfPayments,omitempty"`
	CreditCardInfo   *creditCardInfo `xml:"CreditCardInfo,omitempty"`
}

// envelope carries the per-request header values
type envelope struct {
	MessageID      string
	Timestamp      string
	TimeoutSeconds int
	Credentials    models.Credentials
}

// transactionRequest is the input for every /payment action
type transactionRequest struct {
	Action    Action
	Money     models.Money
	Currency  string
	OrderID   string
	Card      *models.CreditCard
	TxnID     string // void/credit reference
	PreauthID string // capture reference
}

// periodicRequest is the input for every /periodic action
type periodicRequest struct {
	Action           RecurringAction
	ProfileID        string
	Money            *models.Money
	StartDate        string
	PaymentInterval  int
	NumberOfPayments int
	Card             *models.CreditCard
}

// buildTransaction assembles a Payment message
func buildTransaction(env envelope, req transactionRequest) ([]byte, error) {
	code, err := req.Action.Code()
	if err != nil {
		return nil, err
	}

	t := txn{
		ID:              1,
		TxnType:         code,
		TxnSource:       txnSourceXMLAPI,
		Amount:          req.Money.MinorUnits(),
		Currency:        req.Currency,
		PurchaseOrderNo: SanitizeOrderID(req.OrderID),
		TxnID:           req.TxnID,
		PreauthID:       req.PreauthID,
		CreditCardInfo:  cardInfo(req.Card),
	}

	msg := newMessage(env, apiVersion, requestTypePayment)
	msg.Payment = &paymentBody{TxnList: txnList{Count: 1, Txn: t}}

	return marshalMessage(msg)
}

// buildPeriodic assembles a Periodic message
func buildPeriodic(env envelope, req periodicRequest) ([]byte, error) {
	if !req.Action.Valid() {
		return nil, fmt.Errorf("invalid recurring profile action: %q", req.Action)
	}

	item := periodicItem{
		ID:         1,
		ActionType: string(req.Action),
		ClientID:   req.ProfileID,
	}

	switch req.Action {
	case RecurringAdd:
		if req.Money == nil {
			return nil, fmt.Errorf("recurring add requires an amount")
		}
		item.Amount = req.Money.MinorUnits()
		item.StartDate = req.StartDate
		item.PeriodicType = periodicTypeCalendar
		item.PaymentInterval = req.PaymentInterval
		item.NumberOfPayments = req.NumberOfPayments
		item.CreditCardInfo = cardInfo(req.Card)
	case RecurringTrigger:
		if req.Money != nil {
			item.Amount = req.Money.MinorUnits()
		}
	}

	msg := newMessage(env, periodicAPIVersion, requestTypePeriodic)
	msg.Periodic = &periodicBody{PeriodicList: periodicList{Count: 1, Item: item}}

	return marshalMessage(msg)
}

func newMessage(env envelope, version, requestType string) *securePayMessage {
	return &securePayMessage{
		MessageInfo: messageInfo{
			MessageID:        env.MessageID,
			MessageTimestamp: env.Timestamp,
			TimeoutValue:     env.TimeoutSeconds,
			APIVersion:       version,
		},
		MerchantInfo: merchantInfo{
			MerchantID: env.Credentials.Login,
			Password:   env.Credentials.Password,
		},
		RequestType: requestType,
	}
}

func cardInfo(card *models.CreditCard) *creditCardInfo {
	if card == nil {
		return nil
	}
	info := &creditCardInfo{
		CardNumber: card.Number,
		ExpiryDate: card.ExpiryDate(),
	}
	if card.HasVerificationValue() {
		info.CVV = card.VerificationValue
	}
	return info
}

func marshalMessage(msg *securePayMessage) ([]byte, error) {
	body, err := encoding.EncodeXML(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return body, nil
}

// SanitizeOrderID strips the characters the provider rejects in purchaseOrderNo
func SanitizeOrderID(orderID string) string {
	return strings.NewReplacer(" ", "", "'", "").Replace(orderID)
}
