// Package validation provides declarative field-level request validation.
// Rules for an endpoint run before the handler body touches any store, and
// every failing rule is collected so the caller sees the complete list.
package validation

import (
	"fmt"
	"regexp"

	"devconnect/internal/models"
)

// emailRe is deliberately loose; it guards against obvious garbage, not RFC
// edge cases.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Rule checks a single field and returns a failure item, or nil when the
// field passes.
type Rule func() *models.ErrorItem

// Run evaluates all rules in order and returns a validation error carrying
// every failure, or nil when everything passes.
func Run(rules ...Rule) error {
	var items []models.ErrorItem
	for _, rule := range rules {
		if item := rule(); item != nil {
			items = append(items, *item)
		}
	}
	if len(items) == 0 {
		return nil
	}
	return models.NewFieldValidationError(items)
}

// Required fails when value is the empty string.
func Required(field, value, message string) Rule {
	return func() *models.ErrorItem {
		if value == "" {
			return &models.ErrorItem{Msg: message, Param: field}
		}
		return nil
	}
}

// Email fails when value does not look like an email address.
func Email(field, value, message string) Rule {
	return func() *models.ErrorItem {
		if !emailRe.MatchString(value) {
			return &models.ErrorItem{Msg: message, Param: field}
		}
		return nil
	}
}

// MinLen fails when value is shorter than min bytes.
func MinLen(field, value string, min int, message string) Rule {
	return func() *models.ErrorItem {
		if len(value) < min {
			return &models.ErrorItem{Msg: message, Param: field}
		}
		return nil
	}
}

// NotEmptySlice fails when the slice has no elements.
func NotEmptySlice(field string, value []string, message string) Rule {
	return func() *models.ErrorItem {
		if len(value) == 0 {
			return &models.ErrorItem{Msg: message, Param: field}
		}
		return nil
	}
}

// MaxLen fails when value exceeds max bytes.
func MaxLen(field, value string, max int, message string) Rule {
	return func() *models.ErrorItem {
		if len(value) > max {
			return &models.ErrorItem{Msg: fmt.Sprintf("%s (max %d characters)", message, max), Param: field}
		}
		return nil
	}
}
