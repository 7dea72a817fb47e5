package main

import (
	"errors"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/endracle/priceninja/internal/pricing"
)

func validForm() url.Values {
	form := url.Values{}
	form.Set("productDescription", "A high-quality custom t-shirt.")
	form.Set("basePrice", "280")
	form.Set("packagingCost", "30")
	form.Set("deliveryCharge", "80")
	form.Set("numberOfProducts", "1")
	form.Set("desiredProfit", "150")
	form.Set("paymentGatewayFeePercent", "2")
	return form
}

func TestParseCalculatorForm_Success(t *testing.T) {
	req := httptest.NewRequest("POST", "/calculate", nil)
	req.Form = validForm()

	in, values, err := parseCalculatorForm(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if in != pricing.Defaults() {
		t.Fatalf("unexpected inputs: %+v", in)
	}
	if values["basePrice"] != "280" {
		t.Fatalf("expected raw basePrice to be kept, got %q", values["basePrice"])
	}
}

func TestParseCalculatorForm_InvalidNumbers(t *testing.T) {
	form := validForm()
	form.Set("basePrice", "abc")
	form.Set("numberOfProducts", "2.5")

	req := httptest.NewRequest("POST", "/calculate", nil)
	req.Form = form

	_, values, err := parseCalculatorForm(req)
	var verrs pricing.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if got := verrs.Field("basePrice"); got != "must be a number" {
		t.Fatalf("basePrice error = %q", got)
	}
	if got := verrs.Field("numberOfProducts"); got != "must be a whole number" {
		t.Fatalf("numberOfProducts error = %q", got)
	}
	if values["basePrice"] != "abc" {
		t.Fatalf("expected raw value to be echoed back, got %q", values["basePrice"])
	}
}

func TestParseCalculatorForm_RejectsFeeOfHundred(t *testing.T) {
	form := validForm()
	form.Set("paymentGatewayFeePercent", "100")

	req := httptest.NewRequest("POST", "/calculate", nil)
	req.Form = form

	_, _, err := parseCalculatorForm(req)
	var verrs pricing.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if got := verrs.Field("paymentGatewayFeePercent"); got != "must be less than 100" {
		t.Fatalf("fee error = %q", got)
	}
}

func TestParseCalculatorForm_ShortDescriptionAndNegativeCost(t *testing.T) {
	form := validForm()
	form.Set("productDescription", "Mug")
	form.Set("deliveryCharge", "-3")

	req := httptest.NewRequest("POST", "/calculate", nil)
	req.Form = form

	_, _, err := parseCalculatorForm(req)
	var verrs pricing.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if len(verrs) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", verrs)
	}
	if verrs.Field("productDescription") == "" || verrs.Field("deliveryCharge") == "" {
		t.Fatalf("unexpected field errors: %+v", verrs)
	}
}
