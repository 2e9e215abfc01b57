// Package validator decodes and validates JSON request bodies with
// go-playground/validator, adding the rentrobe-specific tags calendar_date,
// garment_size and rental_status.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rentrobe/rentrobe/pkg/httpx"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// GarmentSizes lists the accepted values for the garment_size tag.
var GarmentSizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

// RentalStatuses lists the accepted values for the rental_status tag.
var RentalStatuses = []string{"pending", "approved", "active", "completed", "cancelled"}

// ValidationErrorBody is the 422 response. Fields is keyed by JSON name.
type ValidationErrorBody struct {
	Error  string            `json:"error"  example:"Validation failed"`
	Code   string            `json:"code"   example:"validation_error"`
	Fields map[string]string `json:"fields"`
} // @name ValidationErrorBody

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	for tag, fn := range map[string]validator.Func{
		"calendar_date": isCalendarDate,
		"garment_size":  oneOf(GarmentSizes),
		"rental_status": oneOf(RentalStatuses),
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validator: register %s: %v", tag, err))
		}
	}
	return v
}

// jsonName reports fields by their JSON key so error maps match the payload.
func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

func isCalendarDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	}
}

// Validate runs the struct's validate tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors maps each failing field to a readable message. Any
// error that is not a validator.ValidationErrors yields an empty map.
func FormatValidationErrors(err error) map[string]string {
	out := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return out
	}
	for _, fe := range ve {
		out[fe.Field()] = message(fe)
	}
	return out
}

var fixedMessages = map[string]string{
	"required":      "This field is required",
	"uuid":          "Must be a valid UUID",
	"uuid4":         "Must be a valid UUID",
	"calendar_date": "Must be a date in YYYY-MM-DD format",
	"garment_size":  "Must be one of: " + strings.Join(GarmentSizes, ", "),
	"rental_status": "Must be one of: " + strings.Join(RentalStatuses, ", "),
}

var paramMessages = map[string]string{
	"min":   "Minimum length is %s",
	"max":   "Maximum length is %s",
	"gt":    "Must be greater than %s",
	"gte":   "Must be greater than or equal to %s",
	"lte":   "Must be less than or equal to %s",
	"oneof": "Must be one of: %s",
}

func message(fe validator.FieldError) string {
	if msg, ok := fixedMessages[fe.Tag()]; ok {
		return msg
	}
	if format, ok := paramMessages[fe.Tag()]; ok {
		return fmt.Sprintf(format, fe.Param())
	}
	return fmt.Sprintf("Validation failed on '%s'", fe.Tag())
}

// ValidateRequest decodes the JSON body into a T and validates it. On failure
// it has already written a 400, 413 or 422 response and returns false.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	req := new(T)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.JSONErrorCode(w, http.StatusRequestEntityTooLarge, "Request body too large", "body_too_large")
		} else {
			httpx.JSONErrorCode(w, http.StatusBadRequest, "Invalid JSON", "invalid_json")
		}
		return nil, false
	}
	if !Check(w, req) {
		return nil, false
	}
	return req, true
}

// Check validates an already populated struct, typically one built from
// query parameters, and writes a 422 when it fails.
func Check(w http.ResponseWriter, req any) bool {
	err := Validate(req)
	if err == nil {
		return true
	}
	httpx.JSON(w, http.StatusUnprocessableEntity, ValidationErrorBody{
		Error:  "Validation failed",
		Code:   "validation_error",
		Fields: FormatValidationErrors(err),
	})
	return false
}
