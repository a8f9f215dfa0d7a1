// Package templates renders guest notification bodies.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

const (
	BookingConfirmation = "booking_confirmation"
	PaymentConfirmation = "payment_confirmation"
	HotelRules          = "hotel_rules"
	Emergency           = "emergency"
	Refund              = "refund"
)

const (
	KindEmail = "email"
	KindSMS   = "sms"
)

//go:embed *.tmpl
var files embed.FS

var parsed = template.Must(template.New("notification").ParseFS(files, "*.tmpl"))

type Data struct {
	HotelName      string
	EmergencyPhone string
	CheckInTime    string
	CheckOutTime   string
	Currency       string
	GuestName      string
	BookingCode    string
	RoomName       string
	CheckIn        string
	CheckInShort   string
	CheckOut       string
	Nights         int
	TotalAmount    string
	PaymentMethod  string
	EmergencyType  string
	Description    string
	RefundAmount   string
}

// Has reports whether a template exists for name and kind.
func Has(name, kind string) bool {
	return parsed.Lookup(fileName(name, kind)) != nil
}

func Render(name, kind string, data Data) (string, error) {
	var buf bytes.Buffer

	if err := parsed.ExecuteTemplate(&buf, fileName(name, kind), data); err != nil {
		return "", fmt.Errorf("failed to render %s %s template: %w", name, kind, err)
	}

	return strings.TrimSpace(buf.String()), nil
}

func fileName(name, kind string) string {
	return name + "." + kind + ".tmpl"
}
