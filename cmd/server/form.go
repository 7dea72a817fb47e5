package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/endracle/priceninja/internal/pricing"
)

var formFields = []string{
	pricing.FieldProductDescription,
	pricing.FieldBasePrice,
	pricing.FieldPackagingCost,
	pricing.FieldDeliveryCharge,
	pricing.FieldNumberOfProducts,
	pricing.FieldDesiredProfit,
	pricing.FieldGatewayFeePercent,
}

// formValues keeps the raw submitted strings so the form can be re-rendered as typed.
type formValues map[string]string

func defaultFormValues() formValues {
	return inputsToForm(pricing.Defaults())
}

func inputsToForm(in pricing.Inputs) formValues {
	return formValues{
		pricing.FieldProductDescription: in.ProductDescription,
		pricing.FieldBasePrice:          formatFloat(in.BasePrice),
		pricing.FieldPackagingCost:      formatFloat(in.PackagingCost),
		pricing.FieldDeliveryCharge:     formatFloat(in.DeliveryCharge),
		pricing.FieldNumberOfProducts:   strconv.Itoa(in.NumberOfProducts),
		pricing.FieldDesiredProfit:      formatFloat(in.DesiredProfit),
		pricing.FieldGatewayFeePercent:  formatFloat(in.GatewayFeePercent),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseCalculatorForm reads the calculator form. The returned error is a
// pricing.ValidationErrors covering both unparsable and out-of-range fields.
func parseCalculatorForm(r *http.Request) (pricing.Inputs, formValues, error) {
	values := make(formValues, len(formFields))
	for _, field := range formFields {
		values[field] = strings.TrimSpace(r.FormValue(field))
	}

	var errs pricing.ValidationErrors
	in := pricing.Inputs{
		ProductDescription: values[pricing.FieldProductDescription],
		BasePrice:          parseNumber(values, pricing.FieldBasePrice, &errs),
		PackagingCost:      parseNumber(values, pricing.FieldPackagingCost, &errs),
		DeliveryCharge:     parseNumber(values, pricing.FieldDeliveryCharge, &errs),
		NumberOfProducts:   parseCount(values, pricing.FieldNumberOfProducts, &errs),
		DesiredProfit:      parseNumber(values, pricing.FieldDesiredProfit, &errs),
		GatewayFeePercent:  parseNumber(values, pricing.FieldGatewayFeePercent, &errs),
	}

	if err := pricing.Validate(in); err != nil {
		var verrs pricing.ValidationErrors
		if !errors.As(err, &verrs) {
			return in, values, err
		}
		for _, fe := range verrs {
			errs.Add(fe.Field, fe.Message)
		}
	}

	if len(errs) > 0 {
		return in, values, errs
	}
	return in, values, nil
}

func parseNumber(values formValues, field string, errs *pricing.ValidationErrors) float64 {
	value, err := strconv.ParseFloat(values[field], 64)
	if err != nil {
		errs.Add(field, "must be a number")
		return 0
	}
	return value
}

func parseCount(values formValues, field string, errs *pricing.ValidationErrors) int {
	value, err := strconv.Atoi(values[field])
	if err != nil {
		errs.Add(field, "must be a whole number")
		return 0
	}
	return value
}
