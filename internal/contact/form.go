package contact

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailPattern matches the loose address check used by the contact form.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Field names, in the order errors are reported.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

var fieldOrder = []string{FieldName, FieldEmail, FieldSubject, FieldMessage}

// Form is a contact form submission.
type Form struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	Newsletter bool   `json:"newsletter"`
}

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

// Error returns the first message in field order.
func (fe FieldErrors) Error() string {
	for _, f := range fieldOrder {
		if msg, ok := fe[f]; ok {
			return msg
		}
	}
	for _, msg := range fe {
		return msg
	}
	return "invalid form"
}

type lengthRule struct {
	field    string
	label    string
	min, max int
}

var lengthRules = []lengthRule{
	{FieldName, "Name", 2, 100},
	{FieldSubject, "Subject", 5, 200},
	{FieldMessage, "Message", 10, 1000},
}

// Normalize trims surrounding whitespace from every text field.
func (f *Form) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)
}

// Validate normalizes the form and checks every field. It returns nil when
// the form is valid.
func (f *Form) Validate() error {
	f.Normalize()
	errs := FieldErrors{}

	values := map[string]string{
		FieldName:    f.Name,
		FieldEmail:   f.Email,
		FieldSubject: f.Subject,
		FieldMessage: f.Message,
	}

	for _, rule := range lengthRules {
		v := values[rule.field]
		n := utf8.RuneCountInString(v)
		switch {
		case n == 0:
			errs[rule.field] = rule.label + " is required"
		case n < rule.min || n > rule.max:
			errs[rule.field] = fmt.Sprintf("%s must be between %d and %d characters", rule.label, rule.min, rule.max)
		}
	}

	switch {
	case f.Email == "":
		errs[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(f.Email):
		errs[FieldEmail] = "Please enter a valid email address"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// IsEmpty reports whether no field was filled in at all.
func (f Form) IsEmpty() bool {
	return f == Form{}
}
