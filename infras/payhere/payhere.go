package payhere

//go:generate go run go.uber.org/mock/mockgen -source=./payhere.go -destination=./mocks/payhere_mock.go -package=mocks

import (
	"context"
	"crypto/md5" //nolint:gosec
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"net/url"
	"strings"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	SandboxCheckoutURL = "https://sandbox.payhere.lk/pay/checkout"
	LiveCheckoutURL    = "https://www.payhere.lk/pay/checkout"

	HashMD5    = "md5"
	HashSHA256 = "sha256"
)

// Gateway status codes sent in the notify callback.
const (
	StatusCodeSuccess    = "2"
	StatusCodePending    = "0"
	StatusCodeCanceled   = "-1"
	StatusCodeFailed     = "-2"
	StatusCodeChargeback = "-3"
)

const (
	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
	PaymentStatusFailed    = "failed"
)

// Notify callback form fields.
const (
	FieldPaymentID     = "payment_id"
	FieldMerchantID    = "merchant_id"
	FieldOrderID       = "order_id"
	FieldAmount        = "payhere_amount"
	FieldCurrency      = "payhere_currency"
	FieldStatusCode    = "status_code"
	FieldSignature     = "md5sig"
	FieldMethod        = "method"
	FieldStatusMessage = "status_message"
	FieldCustom1       = "custom_1"
	FieldCustom2       = "custom_2"
)

type Order struct {
	OrderID   string
	Items     string
	Amount    decimal.Decimal
	Currency  string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	Country   string
	Custom1   string
	Custom2   string
}

type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Form is the ordered field list the browser posts to Action.
type Form struct {
	Action string  `json:"action"`
	Fields []Field `json:"fields"`
}

func (f Form) Get(name string) string {
	for _, field := range f.Fields {
		if field.Name == name {
			return field.Value
		}
	}

	return constant.Empty
}

type Callback struct {
	PaymentID     string
	MerchantID    string
	OrderID       string
	Amount        string
	Currency      string
	StatusCode    string
	Signature     string
	Method        string
	StatusMessage string
	Custom1       string
	Custom2       string
}

func CallbackFromForm(values url.Values) Callback {
	return Callback{
		PaymentID:     values.Get(FieldPaymentID),
		MerchantID:    values.Get(FieldMerchantID),
		OrderID:       values.Get(FieldOrderID),
		Amount:        values.Get(FieldAmount),
		Currency:      values.Get(FieldCurrency),
		StatusCode:    values.Get(FieldStatusCode),
		Signature:     values.Get(FieldSignature),
		Method:        values.Get(FieldMethod),
		StatusMessage: values.Get(FieldStatusMessage),
		Custom1:       values.Get(FieldCustom1),
		Custom2:       values.Get(FieldCustom2),
	}
}

// Payload is the callback as stored with the payment record. The signature is dropped.
func (c Callback) Payload() map[string]string {
	return map[string]string{
		FieldPaymentID:     c.PaymentID,
		FieldMerchantID:    c.MerchantID,
		FieldOrderID:       c.OrderID,
		FieldAmount:        c.Amount,
		FieldCurrency:      c.Currency,
		FieldStatusCode:    c.StatusCode,
		FieldMethod:        c.Method,
		FieldStatusMessage: c.StatusMessage,
	}
}

type Verification struct {
	Authentic bool
	Success   bool
}

type Gateway interface {
	CheckoutURL() string
	CheckoutForm(ctx context.Context, order Order) Form
	// Verify never returns an error: anything that does not check out is reported as not authentic.
	Verify(ctx context.Context, callback Callback) Verification
}

type gatewayImpl struct {
	cfg  *config.Config
	otel otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Gateway {
	return &gatewayImpl{
		cfg:  cfg,
		otel: otel,
	}
}

func (g *gatewayImpl) CheckoutURL() string {
	if g.cfg.External.PayHere.Sandbox {
		return SandboxCheckoutURL
	}

	return LiveCheckoutURL
}

func (g *gatewayImpl) CheckoutForm(ctx context.Context, order Order) Form {
	_, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".CheckoutForm")
	defer scope.End()

	payhere := g.cfg.External.PayHere
	amount := FormatAmount(order.Amount)

	scope.SetAttributes(map[string]any{
		"order_id": order.OrderID,
		"amount":   amount,
	})

	fields := []Field{
		{Name: "merchant_id", Value: payhere.MerchantID},
		{Name: "return_url", Value: payhere.ReturnURL},
		{Name: "cancel_url", Value: payhere.CancelURL},
		{Name: "notify_url", Value: payhere.NotifyURL},
		{Name: "order_id", Value: order.OrderID},
		{Name: "items", Value: order.Items},
		{Name: "currency", Value: order.Currency},
		{Name: "amount", Value: amount},
		{Name: "first_name", Value: order.FirstName},
		{Name: "last_name", Value: order.LastName},
		{Name: "email", Value: order.Email},
		{Name: "phone", Value: order.Phone},
		{Name: "address", Value: order.Address},
		{Name: "city", Value: order.City},
		{Name: "country", Value: order.Country},
		{Name: FieldCustom1, Value: order.Custom1},
		{Name: FieldCustom2, Value: order.Custom2},
		{Name: "hash", Value: g.sign(payhere.MerchantID, order.OrderID, amount, order.Currency)},
	}

	return Form{
		Action: g.CheckoutURL(),
		Fields: fields,
	}
}

func (g *gatewayImpl) Verify(ctx context.Context, callback Callback) Verification {
	_, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".Verify")
	defer scope.End()

	expected := g.sign(callback.MerchantID, callback.OrderID, callback.Amount, callback.Currency, callback.StatusCode)
	authentic := subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToUpper(callback.Signature))) == 1

	scope.SetAttributes(map[string]any{
		"order_id":    callback.OrderID,
		"status_code": callback.StatusCode,
		"authentic":   authentic,
	})

	if !authentic {
		log.Warn().Str("order_id", callback.OrderID).Msg("payment callback signature mismatch")
	}

	return Verification{
		Authentic: authentic,
		Success:   authentic && callback.StatusCode == StatusCodeSuccess,
	}
}

// sign computes UPPER(hex(H(parts... || UPPER(hex(H(secret)))))).
func (g *gatewayImpl) sign(parts ...string) string {
	secretDigest := digest(g.newHash(), g.cfg.External.PayHere.MerchantSecret)

	return digest(g.newHash(), strings.Join(parts, constant.Empty)+secretDigest)
}

func (g *gatewayImpl) newHash() hash.Hash {
	if strings.EqualFold(g.cfg.External.PayHere.HashAlgorithm, HashSHA256) {
		return sha256.New()
	}

	return md5.New() //nolint:gosec
}

func digest(h hash.Hash, value string) string {
	h.Write([]byte(value))

	return strings.ToUpper(hex.EncodeToString(h.Sum(nil)))
}

// MapStatus translates a gateway status code into a payment status.
// Unknown codes are reported as failed.
func MapStatus(code string) string {
	switch code {
	case StatusCodeSuccess:
		return PaymentStatusCompleted
	case StatusCodePending:
		return PaymentStatusPending
	default:
		return PaymentStatusFailed
	}
}

// FormatAmount renders an amount with exactly two decimals and no grouping.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
