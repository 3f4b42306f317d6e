// Package forms validates submitted form fields against an ordered rule set.
//
// Validation is pure and single-pass: rules run in declaration order and each
// field reports at most its first failing rule, so error lists read in the
// same order as the form itself.
package forms

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type ruleKind int

const (
	ruleRequired ruleKind = iota
	ruleNumeric
	ruleSelected
	ruleChoice
)

// Rule checks a single field. Construct rules with Required, Numeric,
// Selected or Choice.
type Rule struct {
	field string
	label string
	kind  ruleKind
}

// Required fails when the field is empty or whitespace.
func Required(field, label string) Rule {
	return Rule{field: field, label: label, kind: ruleRequired}
}

// Numeric fails when the field is empty, not a number, or negative.
func Numeric(field, label string) Rule {
	return Rule{field: field, label: label, kind: ruleNumeric}
}

// Selected fails when the field is not a positive integer, i.e. the select
// was left on its "unset" sentinel option.
func Selected(field, label string) Rule {
	return Rule{field: field, label: label, kind: ruleSelected}
}

// Choice fails when the field is neither "0" nor "1".
func Choice(field, label string) Rule {
	return Rule{field: field, label: label, kind: ruleChoice}
}

func (r Rule) check(value string) string {
	value = strings.TrimSpace(value)
	switch r.kind {
	case ruleRequired:
		if value == "" {
			return fmt.Sprintf("%s can't be empty", r.label)
		}
	case ruleNumeric:
		if value == "" {
			return fmt.Sprintf("%s can't be empty", r.label)
		}
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Sprintf("%s must be a number", r.label)
		}
		if n < 0 {
			return fmt.Sprintf("%s can't be negative", r.label)
		}
	case ruleSelected:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Sprintf("You must choose a %s", r.label)
		}
	case ruleChoice:
		if value != "0" && value != "1" {
			return fmt.Sprintf("You must choose a %s", r.label)
		}
	}
	return ""
}

// Validate runs the rules against the submitted values and returns the
// collected error messages, one per first-failing rule per field.
func Validate(values url.Values, rules []Rule) []string {
	var errs []string
	failed := make(map[string]bool)

	for _, r := range rules {
		if failed[r.field] {
			continue
		}
		if msg := r.check(values.Get(r.field)); msg != "" {
			errs = append(errs, msg)
			failed[r.field] = true
		}
	}

	return errs
}
