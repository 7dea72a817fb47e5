package pricing

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// MinDescriptionLength is the shortest product description accepted.
const MinDescriptionLength = 10

// Form field names shared by the HTML form and the JSON API.
const (
	FieldProductDescription = "productDescription"
	FieldBasePrice          = "basePrice"
	FieldPackagingCost      = "packagingCost"
	FieldDeliveryCharge     = "deliveryCharge"
	FieldNumberOfProducts   = "numberOfProducts"
	FieldDesiredProfit      = "desiredProfit"
	FieldGatewayFeePercent  = "paymentGatewayFeePercent"
)

// FieldError describes why a single input was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lists every rejected input of a request.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Field+" "+fe.Message)
	}
	return "invalid inputs: " + strings.Join(msgs, "; ")
}

// Field returns the message recorded for field, or "" when it passed.
func (v ValidationErrors) Field(field string) string {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Add records a message for field, keeping only the first one per field.
func (v *ValidationErrors) Add(field, message string) {
	if v.Field(field) != "" {
		return
	}
	*v = append(*v, FieldError{Field: field, Message: message})
}

// Validate checks inputs before they reach Calculate or the suggestion service.
func Validate(in Inputs) error {
	var errs ValidationErrors

	if utf8.RuneCountInString(strings.TrimSpace(in.ProductDescription)) < MinDescriptionLength {
		errs.Add(FieldProductDescription, fmt.Sprintf("must be at least %d characters", MinDescriptionLength))
	}

	checkNonNegative(&errs, FieldBasePrice, in.BasePrice)
	checkNonNegative(&errs, FieldPackagingCost, in.PackagingCost)
	checkNonNegative(&errs, FieldDeliveryCharge, in.DeliveryCharge)
	checkNonNegative(&errs, FieldDesiredProfit, in.DesiredProfit)

	if in.NumberOfProducts < 1 {
		errs.Add(FieldNumberOfProducts, "must be at least 1")
	}

	if checkNonNegative(&errs, FieldGatewayFeePercent, in.GatewayFeePercent) && in.GatewayFeePercent >= 100 {
		errs.Add(FieldGatewayFeePercent, "must be less than 100")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func checkNonNegative(errs *ValidationErrors, field string, value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		errs.Add(field, "must be a number")
		return false
	}
	if value < 0 {
		errs.Add(field, "must be greater than or equal to 0")
		return false
	}
	return true
}
