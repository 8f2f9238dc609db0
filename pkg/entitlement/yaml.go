package entitlement

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadMatrixYAML reads a matrix configuration document:
//
//	tiers:
//	  starter:
//	    features: [multi_currency]
//	    limits: {max_users: 10, max_customers: 500}
//	modules:
//	  hrms:
//	    starter: {access: included, price_usd: 0}
//	    free: {access: locked}
//	  furniture_manufacturing:
//	    starter: {access: addon, price_usd: 1500}
func LoadMatrixYAML(r io.Reader) (*Matrix, error) {
	var cfg MatrixConfig
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Join(ErrInvalidMatrix, err)
	}
	return NewMatrix(cfg)
}

// LoadPricingYAML reads the per-country pricing table:
//
//	countries:
//	  IN: {currency: INR, tax_name: GST, tax_rate: 0.18, exchange_rate: 83.2}
//	  US: {currency: USD, tax_name: "Sales Tax", nexus_dependent: true, exchange_rate: 1}
func LoadPricingYAML(r io.Reader) (PricingTable, error) {
	var doc struct {
		Countries map[string]CountryPricing `yaml:"countries"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Join(ErrCountryNotFound, err)
	}

	table := make(PricingTable, len(doc.Countries))
	for code, pricing := range doc.Countries {
		pricing.CountryCode = code
		table[code] = pricing
	}
	return table, nil
}
