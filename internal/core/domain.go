package core

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"

	SenderUser      Sender = "user"
	SenderAssistant Sender = "ai"

	ContactByEmail ContactPreference = "email"
	ContactByPhone ContactPreference = "phone"
)

type (
	BookingStatus     string
	Sender            string
	ContactPreference string

	// Profile is the mock account a visitor registers from the contact page.
	// No credentials are kept.
	Profile struct {
		ID        string    `json:"id"`
		FirstName string    `json:"firstName"`
		LastName  string    `json:"lastName"`
		Email     string    `json:"email"`
		Phone     string    `json:"phone"`
		CreatedAt time.Time `json:"createdAt"`
	}

	SavedCar struct {
		VehicleID int       `json:"id"`
		Name      string    `json:"name"`
		Price     float64   `json:"price"`
		SavedAt   time.Time `json:"savedAt"`
	}

	Booking struct {
		ID            string        `json:"id"`
		FirstName     string        `json:"firstName"`
		LastName      string        `json:"lastName"`
		Email         string        `json:"email"`
		Phone         string        `json:"phone"`
		LicenseNumber string        `json:"licenseNumber"`
		Message       string        `json:"message,omitempty"`
		VehicleID     int           `json:"vehicleId"`
		Vehicle       string        `json:"vehicle"`
		Date          string        `json:"date"`
		Time          string        `json:"time"`
		Status        BookingStatus `json:"status"`
		CreatedAt     time.Time     `json:"createdAt"`
	}

	ChatMessage struct {
		ID        string    `json:"id"`
		Content   string    `json:"content"`
		Sender    Sender    `json:"sender"`
		Intent    string    `json:"intent,omitempty"`
		Timestamp time.Time `json:"timestamp"`
	}

	ContactMessage struct {
		Name             string            `json:"name"`
		Email            string            `json:"email"`
		Phone            string            `json:"phone"`
		Subject          string            `json:"subject"`
		Message          string            `json:"message"`
		PreferredContact ContactPreference `json:"preferredContact"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyFirstName   = errors.New("empty first name")
	ErrEmptyLastName    = errors.New("empty last name")
	ErrEmptyName        = errors.New("empty name")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrEmptyPhone       = errors.New("empty phone")
	ErrEmptyMessage     = errors.New("empty message")
	ErrMessageTooLong   = errors.New("message too long (max 2000 characters)")
	ErrInvalidPreferred = errors.New("preferred contact must be email or phone")
)

const maxMessageLength = 2000

// ValidEmail reports whether s parses as a bare address.
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if strings.TrimSpace(p.LastName) == "" {
		return ErrEmptyLastName
	}
	if !ValidEmail(p.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// FullName joins first and last name.
func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (b Booking) FullName() string {
	return strings.TrimSpace(b.FirstName + " " + b.LastName)
}

func (c ContactMessage) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !ValidEmail(c.Email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(c.Message) == "" {
		return ErrEmptyMessage
	}
	if len(c.Message) > maxMessageLength {
		return ErrMessageTooLong
	}
	switch c.PreferredContact {
	case "", ContactByEmail, ContactByPhone:
	default:
		return ErrInvalidPreferred
	}
	if c.PreferredContact == ContactByPhone && strings.TrimSpace(c.Phone) == "" {
		return ErrEmptyPhone
	}
	return nil
}
