package employee

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MsgID        = "ID must contain only numbers."
	MsgFirstName = "Name must not be empty and must have at least 2 characters."
	MsgLastName  = "Last name must not be empty and must have at least 2 characters."
	MsgPhone     = "Phone must contain 7-15 digits."
	MsgEmail     = "Email must be valid (e.g. user@domain.com)."
	MsgSalary    = "Salary must be a valid number."
	MsgPosition  = "Must select a position."
)

const minNameLength = 2

var (
	phonePattern  = regexp.MustCompile(`^[0-9]{7,15}$`)
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	salaryPattern = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
)

// Rule checks a single raw value and reports the message to show when it fails.
type Rule func(value string) (bool, string)

// ValidationOrder is the order in which Validate evaluates fields.
var ValidationOrder = []Field{
	FieldID,
	FieldFirstName,
	FieldLastName,
	FieldPhone,
	FieldEmail,
	FieldSalary,
	FieldPosition,
}

// RuleFor returns the check for a single field, or nil when the field has none.
func RuleFor(f Field, catalog Catalog) Rule {
	switch f {
	case FieldID:
		return CheckID
	case FieldFirstName:
		return CheckFirstName
	case FieldLastName:
		return CheckLastName
	case FieldPhone:
		return CheckPhone
	case FieldEmail:
		return CheckEmail
	case FieldSalary:
		return CheckSalary
	case FieldPosition:
		return catalog.CheckPosition
	}
	return nil
}

// Validate evaluates the rules in ValidationOrder and stops at the first
// failure. Gender is deliberately not checked.
func Validate(in Input, catalog Catalog) *FieldError {
	for _, f := range ValidationOrder {
		if ok, msg := RuleFor(f, catalog)(in.Value(f)); !ok {
			return &FieldError{Field: f, Message: msg}
		}
	}
	return nil
}

func CheckID(value string) (bool, string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false, MsgID
	}
	if _, err := strconv.ParseInt(trimmed, 10, 32); err != nil {
		return false, MsgID
	}
	return true, ""
}

func CheckFirstName(value string) (bool, string) {
	return checkName(value, MsgFirstName)
}

func CheckLastName(value string) (bool, string) {
	return checkName(value, MsgLastName)
}

func checkName(value, msg string) (bool, string) {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < minNameLength {
		return false, msg
	}
	return true, ""
}

// CheckPhone accepts a blank value. The pattern applies to the raw text, so
// surrounding spaces are rejected.
func CheckPhone(value string) (bool, string) {
	if strings.TrimSpace(value) == "" {
		return true, ""
	}
	if !phonePattern.MatchString(value) {
		return false, MsgPhone
	}
	return true, ""
}

func CheckEmail(value string) (bool, string) {
	if strings.TrimSpace(value) == "" {
		return true, ""
	}
	if !emailPattern.MatchString(value) {
		return false, MsgEmail
	}
	return true, ""
}

func CheckSalary(value string) (bool, string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true, ""
	}
	if !salaryPattern.MatchString(trimmed) {
		return false, MsgSalary
	}
	amount, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || amount < 0 {
		return false, MsgSalary
	}
	return true, ""
}
