package suggest

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/endracle/priceninja/internal/pricing"
)

const promptText = `You are a pricing strategy expert. Analyze the product information and suggest effective pricing strategies considering similar products and market trends.

Product Description: {{.ProductDescription}}
Base Price: {{num .BasePrice}}
Packaging Cost: {{num .PackagingCost}}
Delivery Charge: {{num .DeliveryCharge}}
Number of Products: {{.NumberOfProducts}}
Desired Profit (whole batch): {{num .DesiredProfit}}

Consider these factors when making your suggestions:
- Pricing of similar products in the market.
- Current market trends.
- The product's unique value proposition.
- Profit margins and competitor pricing.

Provide a detailed suggestion for the user to consider when pricing their product.
`

var promptTemplate = template.Must(template.New("suggestion").Funcs(template.FuncMap{
	"num": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
}).Parse(promptText))

// BuildPrompt fills the suggestion prompt with the product inputs.
func BuildPrompt(in pricing.Inputs) (string, error) {
	var b strings.Builder
	if err := promptTemplate.Execute(&b, in); err != nil {
		return "", fmt.Errorf("render suggestion prompt: %w", err)
	}
	return b.String(), nil
}
