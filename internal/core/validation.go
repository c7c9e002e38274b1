package core

// validation.go provides record-level validation for import candidates.
//
// Validation happens at two levels:
//  1. Field validation: each value is checked against its FieldSpec
//     (required, length bounds, pattern, enum domain, date, email)
//  2. Rule validation: named cross-field predicates (date bounds)
//
// The Validator can return all errors (for diagnostics) or just the first one.
// Importers only need pass/fail: a failed candidate is logged with the same
// generic message regardless of which rule rejected it.

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// ValidationError represents a single failed field or rule.
type ValidationError struct {
	Field   string // Field or rule name
	Value   string // The invalid value (empty for rules)
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult contains the result of validating a record.
type ValidationResult struct {
	Valid  bool              // True if all validations passed
	Errors []ValidationError // List of validation errors (empty if Valid)
}

// Validator checks records against a Schema. It has no side effects.
type Validator struct {
	schema Schema
}

// NewValidator creates a validator for the given schema.
func NewValidator(schema Schema) *Validator {
	return &Validator{schema: schema}
}

// Validate reports whether r satisfies every field spec and rule.
func (v *Validator) Validate(r Record) bool {
	return v.FirstFailure(r) == nil
}

// ValidateAll validates a record and returns every failure.
func (v *Validator) ValidateAll(r Record) ValidationResult {
	result := ValidationResult{Valid: true}

	for _, spec := range v.schema.Fields {
		if err := checkField(r[spec.Name], spec); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   spec.Name,
				Value:   r[spec.Name],
				Message: err.Error(),
			})
		}
	}

	for _, rule := range v.schema.Rules {
		if !rule.Check(r) {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   rule.Name,
				Message: "rule not satisfied",
			})
		}
	}

	return result
}

// FirstFailure returns the first failing field or rule, or nil.
// Field specs are checked in order before rules, and rules only run once
// every field is well formed.
func (v *Validator) FirstFailure(r Record) error {
	for _, spec := range v.schema.Fields {
		if err := checkField(r[spec.Name], spec); err != nil {
			return ValidationError{Field: spec.Name, Value: r[spec.Name], Message: err.Error()}
		}
	}
	for _, rule := range v.schema.Rules {
		if !rule.Check(r) {
			return ValidationError{Field: rule.Name, Message: "rule not satisfied"}
		}
	}
	return nil
}

func checkField(value string, spec FieldSpec) error {
	if value == "" {
		if spec.Required {
			return fmt.Errorf("required field is empty")
		}
		return nil
	}
	return ValidateCell(value, spec)
}

// ValidateCell validates a single non-empty value against a field specification.
// Returns nil if valid, or an error describing the problem.
func ValidateCell(value string, spec FieldSpec) error {
	if value == "" {
		return nil
	}

	n := utf8.RuneCountInString(value)
	if spec.MinLen > 0 && n < spec.MinLen {
		return fmt.Errorf("must be at least %d characters", spec.MinLen)
	}
	if spec.MaxLen > 0 && n > spec.MaxLen {
		return fmt.Errorf("must be at most %d characters", spec.MaxLen)
	}
	if spec.Pattern != nil && !spec.Pattern.MatchString(value) {
		return fmt.Errorf("does not match %s", spec.Pattern.String())
	}

	switch spec.Type {
	case FieldDate:
		if _, ok := ParseDate(value); !ok {
			return fmt.Errorf("invalid date format (use DD/MM/YYYY)")
		}
	case FieldEnum:
		for _, ev := range spec.EnumValues {
			if ev == strings.TrimSpace(value) {
				return nil
			}
		}
		return fmt.Errorf("value must be one of: %s", strings.Join(spec.EnumValues, ", "))
	case FieldEmail:
		if !isEmailAddress(value) {
			return fmt.Errorf("invalid email address")
		}
	}
	return nil
}

// isEmailAddress accepts a bare addr-spec: no display name, no angle brackets.
func isEmailAddress(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s
}
