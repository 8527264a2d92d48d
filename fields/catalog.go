package fields

import (
	"errors"

	"gopkg.in/yaml.v3"
)

// Catalog is a parsed message catalog keyed by variant name, then error
// code. The reserved section "base" applies to every variant before its own
// section does, so a catalog can restyle "required" once.
//
//	base:
//	  required: "Wajib diisi."
//	integer:
//	  invalid: "Harus berupa angka."
type Catalog map[string]map[string]string

// ParseCatalog parses a YAML catalog document.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}
	return c, nil
}

// MustParseCatalog parses a YAML catalog document and panics on failure.
// Intended for catalogs embedded at build time.
func MustParseCatalog(data []byte) Catalog {
	c, err := ParseCatalog(data)
	if err != nil {
		panic("fields: " + err.Error())
	}
	return c
}

// For returns the merged overrides a variant receives from the catalog.
func (c Catalog) For(typeName string) map[string]string {
	return mergeMessages(c["base"], c[typeName])
}
