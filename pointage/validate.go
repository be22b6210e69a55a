package pointage

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormInput is what the entry dialog submits. Times are HH:MM here; the
// API layer appends seconds on the wire.
type FormInput struct {
	ID        string `json:"id_pointage" validate:"required,max=10"`
	EmployeID string `json:"employe" validate:"required"`
	Date      string `json:"date_pointage" validate:"required"`
	CheckIn   string `json:"heure_entree" validate:"required"`
	CheckOut  string `json:"heure_sortie"`
	Note      string `json:"remarque"`
}

// Reason identifies which submission rule failed.
type Reason string

const (
	ReasonMissingField Reason = "missing_field"
	ReasonIDTooLong    Reason = "id_too_long"
	ReasonBadCheckIn   Reason = "bad_check_in"
	ReasonBadCheckOut  Reason = "bad_check_out"
	ReasonOutOfOrder   Reason = "out_of_order"
)

// ValidationResult is either valid or carries the first failed rule with a
// message ready for display.
type ValidationResult struct {
	Valid   bool
	Reason  Reason
	Message string
}

func valid() ValidationResult {
	return ValidationResult{Valid: true}
}

func invalid(reason Reason, format string, args ...any) ValidationResult {
	return ValidationResult{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// MaxIDLength bounds the user-assigned record id.
const MaxIDLength = 10

// 24-hour HH:MM, zero-padded. Padding is what keeps the lexicographic
// ordering check below sound.
var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateForSubmission checks a form before any network call, stopping at
// the first violated rule: required fields, then the id length bound, then
// the HH:MM shape of both times, then their ordering. Time ordering is a
// string comparison, which is sound once both values match the zero-padded
// clock pattern.
func ValidateForSubmission(f FormInput) ValidationResult {
	if err := formValidator.Struct(f); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return invalid(ReasonMissingField, "invalid form input: %v", err)
		}
		// required failures take precedence over the length bound,
		// whatever order the validator reports them in
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return invalid(ReasonMissingField, "field '%s' is required", fe.Field())
			}
		}
		for _, fe := range verrs {
			if fe.Tag() == "max" {
				return invalid(ReasonIDTooLong, "record id must be at most %s characters", fe.Param())
			}
		}
		return invalid(ReasonMissingField, "field '%s' failed validation for '%s'", verrs[0].Field(), verrs[0].Tag())
	}

	if !clockPattern.MatchString(f.CheckIn) {
		return invalid(ReasonBadCheckIn, "check-in time must use the HH:MM format")
	}
	if f.CheckOut != "" {
		if !clockPattern.MatchString(f.CheckOut) {
			return invalid(ReasonBadCheckOut, "check-out time must use the HH:MM format")
		}
		if f.CheckIn >= f.CheckOut {
			return invalid(ReasonOutOfOrder, "check-out time must be after the check-in time")
		}
	}

	return valid()
}
