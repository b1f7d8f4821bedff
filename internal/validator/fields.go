// Package validator checks a person's user data against the configured
// field definitions before a verification run is allowed to start.
package validator

import (
	"time"

	"docverify/internal/domain"
)

// FieldError describes one field that failed validation.
type FieldError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

type checkFunc func(value string) string

// checks maps a validation kind to its rule. Messages are operator-facing.
var checks = map[domain.FieldValidation]checkFunc{
	domain.FieldValidationCPF:         checkCPF,
	domain.FieldValidationZipCode:     checkZipCode,
	domain.FieldValidationDateOfBirth: checkDateOfBirth,
}

// ValidateFields checks every configured field against the user-data map.
// All fields are required; fields with a validation kind also run its rule.
// Returns one entry per failing field, empty when the data is clean.
func ValidateFields(fields []domain.UserDataField, data domain.UserData) []FieldError {
	var errs []FieldError
	for _, field := range fields {
		value := data[field.Key]
		if msg := validateValue(value, field.Validation); msg != "" {
			errs = append(errs, FieldError{Key: field.Key, Message: msg})
		}
	}
	return errs
}

func validateValue(value string, kind domain.FieldValidation) string {
	if value == "" {
		return "Este campo é obrigatório."
	}
	if check, ok := checks[kind]; ok {
		return check(value)
	}
	return ""
}

func checkCPF(value string) string {
	if len(value) != 11 || !allDigits(value) {
		return "CPF inválido. Deve conter 11 dígitos."
	}
	return ""
}

func checkZipCode(value string) string {
	if len(value) != 8 || !allDigits(value) {
		return "CEP inválido. Deve conter 8 dígitos."
	}
	return ""
}

func checkDateOfBirth(value string) string {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return "Data inválida."
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.After(today) {
		return "A data de nascimento não pode ser no futuro."
	}
	return ""
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
