package permission

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlSource loads a permission catalog from YAML, the format the
// configuration store publishes:
//
//	roles:
//	  platform_admin:
//	    - view-tenants-scoped
//	    - manage-addon-grants
//
// Role keys may use legacy spellings; they are normalized on load.
type yamlSource struct {
	r    io.Reader
	path string
}

type yamlCatalog struct {
	Roles map[string][]string `yaml:"roles"`
}

// NewYAMLSource creates a Source reading a YAML catalog from r.
func NewYAMLSource(r io.Reader) Source {
	return &yamlSource{r: r}
}

// NewYAMLFileSource creates a Source reading a YAML catalog from a file.
func NewYAMLFileSource(path string) Source {
	return &yamlSource{path: path}
}

// Load parses the YAML document and normalizes role names.
func (s *yamlSource) Load(ctx context.Context) (map[Role][]Permission, error) {
	r := s.r
	if r == nil {
		f, err := os.Open(s.path)
		if err != nil {
			return nil, errors.Join(ErrInvalidCatalog, err)
		}
		defer f.Close()
		r = f
	}

	var doc yamlCatalog
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}
	if len(doc.Roles) == 0 {
		return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("catalog has no roles"))
	}

	catalog := make(map[Role][]Permission, len(doc.Roles))
	for rawRole, rawPerms := range doc.Roles {
		role, err := NormalizeRole(rawRole)
		if err != nil {
			return nil, errors.Join(ErrInvalidCatalog, err)
		}
		perms := make([]Permission, 0, len(rawPerms))
		for _, p := range rawPerms {
			perms = append(perms, Permission(p))
		}
		catalog[role] = perms
	}
	return catalog, nil
}
