package pricing

import (
	"errors"
	"math"
)

var (
	// ErrFeeTooHigh is returned when the gateway fee would consume the whole selling price.
	ErrFeeTooHigh = errors.New("payment gateway fee must be less than 100%")

	// ErrInvalidFee is returned for a negative or non-finite gateway fee.
	ErrInvalidFee = errors.New("payment gateway fee must be a finite value of at least 0%")

	// ErrOutOfRange is returned when the batch totals are too large to represent.
	ErrOutOfRange = errors.New("inputs are too large to calculate a selling price")
)

// Component names, in breakdown order.
const (
	ComponentBasePrice      = "basePrice"
	ComponentPackagingCost  = "packagingCost"
	ComponentDeliveryCharge = "deliveryCharge"
	ComponentGatewayFee     = "gatewayFee"
	ComponentProfit         = "profit"
)

var componentLabels = map[string]string{
	ComponentBasePrice:      "Base Price",
	ComponentPackagingCost:  "Packaging Cost",
	ComponentDeliveryCharge: "Delivery Charge",
	ComponentGatewayFee:     "Payment Gateway Fee",
	ComponentProfit:         "Profit",
}

// Inputs represents the cost and profit figures of a batch of identical products.
type Inputs struct {
	ProductDescription string  `json:"productDescription"`
	BasePrice          float64 `json:"basePrice"`
	PackagingCost      float64 `json:"packagingCost"`
	DeliveryCharge     float64 `json:"deliveryCharge"`
	NumberOfProducts   int     `json:"numberOfProducts"`
	DesiredProfit      float64 `json:"desiredProfit"`
	GatewayFeePercent  float64 `json:"paymentGatewayFeePercent"`
}

// Defaults returns the values the form starts with.
func Defaults() Inputs {
	return Inputs{
		ProductDescription: "A high-quality custom t-shirt.",
		BasePrice:          280,
		PackagingCost:      30,
		DeliveryCharge:     80,
		NumberOfProducts:   1,
		DesiredProfit:      150,
		GatewayFeePercent:  2,
	}
}

// Component is one line of the selling price breakdown.
type Component struct {
	Name  string  `json:"component"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Share returns the component's percentage of total.
func (c Component) Share(total float64) float64 {
	if total == 0 {
		return 0
	}
	return c.Value / total * 100
}

// Result groups the selling price with its intermediate values and breakdown.
type Result struct {
	TotalCost      float64     `json:"totalCost"`
	PriceBeforeFee float64     `json:"priceBeforeFee"`
	GatewayFee     float64     `json:"gatewayFee"`
	SellingPrice   float64     `json:"sellingPrice"`
	Breakdown      []Component `json:"breakdown"`
}

// Calculate computes the selling price that covers the batch costs, the desired
// profit and the payment gateway fee taken from the final price.
func Calculate(in Inputs) (Result, error) {
	fee := in.GatewayFeePercent
	if math.IsNaN(fee) || math.IsInf(fee, 0) || fee < 0 {
		return Result{}, ErrInvalidFee
	}
	if fee >= 100 {
		return Result{}, ErrFeeTooHigh
	}

	units := float64(in.NumberOfProducts)
	totalCost := units * (in.BasePrice + in.PackagingCost + in.DeliveryCharge)
	priceBeforeFee := in.DesiredProfit + totalCost
	sellingPrice := priceBeforeFee / (1 - fee/100)
	gatewayFee := sellingPrice * (fee / 100)
	if !finite(totalCost, priceBeforeFee, sellingPrice, gatewayFee) {
		return Result{}, ErrOutOfRange
	}

	lines := []Component{
		newComponent(ComponentBasePrice, units*in.BasePrice),
		newComponent(ComponentPackagingCost, units*in.PackagingCost),
		newComponent(ComponentDeliveryCharge, units*in.DeliveryCharge),
		newComponent(ComponentGatewayFee, gatewayFee),
		newComponent(ComponentProfit, in.DesiredProfit),
	}

	breakdown := make([]Component, 0, len(lines))
	for _, line := range lines {
		if line.Value > 0 {
			breakdown = append(breakdown, line)
		}
	}

	return Result{
		TotalCost:      totalCost,
		PriceBeforeFee: priceBeforeFee,
		GatewayFee:     gatewayFee,
		SellingPrice:   sellingPrice,
		Breakdown:      breakdown,
	}, nil
}

func newComponent(name string, value float64) Component {
	return Component{Name: name, Label: componentLabels[name], Value: value}
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
