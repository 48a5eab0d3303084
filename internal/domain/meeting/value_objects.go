package meeting

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrEmptyGuestName   = errors.New("guest name is required")
	ErrInvalidGuestMail = errors.New("invalid guest email")
)

// Guest identifies the booking party. Email is the natural idempotency
// key component; the display timezone is carried for notifications and
// never used for validation.
type Guest struct {
	name            string
	email           string
	displayTimezone string
}

func NewGuest(name, email, displayTimezone string) (Guest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Guest{}, ErrEmptyGuestName
	}
	email, err := NormalizeEmail(email)
	if err != nil {
		return Guest{}, err
	}
	return Guest{name: name, email: email, displayTimezone: displayTimezone}, nil
}

// NormalizeEmail lowercases and validates an address. Reservation and
// conflict checks compare normalized emails only.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidGuestMail
	}
	return email, nil
}

func (g Guest) Name() string            { return g.name }
func (g Guest) Email() string           { return g.email }
func (g Guest) DisplayTimezone() string { return g.displayTimezone }

// Same reports whether two guests are the same party for conflict
// purposes. Email comparison only: names are free text.
func (g Guest) Same(other Guest) bool {
	return g.email == other.email
}

type PaymentStatus string

const (
	PaymentStatusNone      PaymentStatus = "none"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)
