package entitlement

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceQuote is the tenant-facing price of a module in a country's
// currency and tax regime. Subtotal is tax-exclusive, Total is
// tax-inclusive. When TaxComputedExternally is set the tax fields are
// unresolved and Total equals Subtotal.
type PriceQuote struct {
	ModuleID    ModuleID `json:"module_id"`
	Tier        Tier     `json:"tier"`
	CountryCode string   `json:"country_code"`

	Subtotal Money   `json:"subtotal"`
	TaxName  string  `json:"tax_name,omitempty"`
	TaxRate  float64 `json:"tax_rate,omitempty"`
	Tax      Money   `json:"tax,omitempty"`
	Total    Money   `json:"total"`

	// TaxComputedExternally marks quotes for countries whose tax is
	// resolved outside this core (nexus-dependent regimes). Clients
	// must surface this instead of showing zero tax.
	TaxComputedExternally bool `json:"tax_computed_externally,omitempty"`
}

// Display renders the amount with its currency symbol for UI use,
// e.g. "₹ 1,770.00". Falls back to "CODE amount" for currencies the
// formatter does not know.
func (m Money) Display() string {
	unit, err := currency.ParseISO(m.Currency)
	if err != nil {
		return fmt.Sprintf("%s %.2f", m.Currency, float64(m.Amount)/100)
	}
	p := message.NewPrinter(language.English)
	return p.Sprint(currency.Symbol(unit.Amount(float64(m.Amount) / 100)))
}
