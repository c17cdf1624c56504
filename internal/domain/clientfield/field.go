package clientfield

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/models"
)

func ValidType(t models.FieldType) bool {
	switch t {
	case models.FieldTypeText,
		models.FieldTypeNumber,
		models.FieldTypeDate,
		models.FieldTypeSelect,
		models.FieldTypeCheckbox:
		return true
	}
	return false
}

// ValidateDefinition checks a new field before it is stored.
func ValidateDefinition(name string, t models.FieldType, options []string) error {
	if strings.TrimSpace(name) == "" {
		return httperr.ErrValidation("invalid_name", "field name is required")
	}
	if !ValidType(t) {
		return httperr.ErrValidation("invalid_type", fmt.Sprintf("unknown field type %q", t))
	}
	if t == models.FieldTypeSelect && len(options) == 0 {
		return httperr.ErrBusiness("select_without_options", "SELECT fields require at least one option")
	}
	return nil
}

// RemovedOptions lists entries of current missing from next, in current order.
func RemovedOptions(current, next []string) []string {
	keep := make(map[string]struct{}, len(next))
	for _, o := range next {
		keep[o] = struct{}{}
	}

	var removed []string
	for _, o := range current {
		if _, ok := keep[o]; !ok {
			removed = append(removed, o)
		}
	}
	return removed
}

// ValidateOptionsUpdate enforces append-only options on SELECT fields.
func ValidateOptionsUpdate(f *models.ClientField, next []string) error {
	if f.Type != models.FieldTypeSelect {
		return nil
	}
	if len(next) == 0 {
		return httperr.ErrBusiness("select_without_options", "SELECT fields require at least one option")
	}
	if removed := RemovedOptions(f.Options, next); len(removed) > 0 {
		return httperr.ErrValidation(
			"options_removed",
			fmt.Sprintf("options cannot be removed: %s", strings.Join(removed, ", ")),
		)
	}
	return nil
}

// ValidateValue checks raw against the field type and returns the value to
// store. Empty values are stored as-is.
func ValidateValue(f *models.ClientField, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return v, nil
	}

	invalid := func(expect string) error {
		return httperr.ErrBusiness(
			"invalid_field_value",
			fmt.Sprintf("value for %q must be %s", f.Name, expect),
		)
	}

	switch f.Type {
	case models.FieldTypeNumber:
		if _, err := decimal.NewFromString(v); err != nil {
			return "", invalid("a number")
		}
	case models.FieldTypeDate:
		if _, err := time.Parse("2006-01-02", v); err != nil {
			if _, err := time.Parse(time.RFC3339, v); err != nil {
				return "", invalid("a date")
			}
		}
	case models.FieldTypeCheckbox:
		if v != "true" && v != "false" {
			return "", invalid("true or false")
		}
	case models.FieldTypeSelect:
		found := false
		for _, o := range f.Options {
			if o == v {
				found = true
				break
			}
		}
		if !found {
			return "", invalid("one of the field options")
		}
	}
	return v, nil
}

// MissingRequired returns the names of active required fields absent from
// values (keyed by field id) or present with an empty value.
func MissingRequired(fields []models.ClientField, values map[string]string) []string {
	var missing []string
	for _, f := range fields {
		if !f.Active || !f.Required {
			continue
		}
		if strings.TrimSpace(values[f.ID]) == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}
