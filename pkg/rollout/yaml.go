package rollout

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a rollout policy bootstrap document and returns a
// seeded MemoryStore:
//
//	countries:
//	  IN:
//	    active: true
//	    business_types: [manufacturing, clinic]
//	    modules: [hrms, clinic]
//	    features: {ai_insights: true}
//	  BR:
//	    active: false
//	    coming_soon_message: "Chegando em breve!"
func LoadYAML(r io.Reader) (*MemoryStore, error) {
	var doc struct {
		Countries map[string]Policy `yaml:"countries"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Join(ErrInvalidPolicy, err)
	}

	policies := make([]Policy, 0, len(doc.Countries))
	for code, p := range doc.Countries {
		p.CountryCode = code
		policies = append(policies, p)
	}
	return NewMemoryStore(policies...)
}
