package validation

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout to format dat przechowywanych w bazie (ISO-8601, sam dzień).
const DateLayout = "2006-01-02"

// TimestampLayout: znacznik zapisu, UTC z dokładnością do sekundy.
const TimestampLayout = "2006-01-02T15:04:05"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors zbiera błędy walidacji formularza lub rekordu.
type Errors struct {
	Fields []FieldError `json:"errors"`
}

func (ve *Errors) Add(field, message string) {
	ve.Fields = append(ve.Fields, FieldError{Field: field, Message: message})
}

func (ve *Errors) HasErrors() bool {
	return len(ve.Fields) > 0
}

func (ve *Errors) Error() string {
	msgs := make([]string, len(ve.Fields))
	for i, e := range ve.Fields {
		msgs[i] = e.Field + ": " + e.Message
	}
	return strings.Join(msgs, "; ")
}

// Err zwraca nil gdy nie ma błędów, żeby nie wpaść w pułapkę typowanego nila.
func (ve *Errors) Err() error {
	if !ve.HasErrors() {
		return nil
	}
	return ve
}

func RequireField(ve *Errors, field, value string) {
	if strings.TrimSpace(value) == "" {
		ve.Add(field, "is required")
	}
}

// ValidateEnum: pusta wartość przechodzi, wymagalność sprawdza RequireField.
func ValidateEnum(ve *Errors, field, value string, allowed []string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	ve.Add(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
}

func ValidateDate(ve *Errors, field, value string) {
	if value == "" {
		return
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		ve.Add(field, "must be a valid date (YYYY-MM-DD)")
	}
}

func ValidateNonNegative(ve *Errors, field string, value float64) {
	if value < 0 {
		ve.Add(field, "must not be negative")
	}
}
