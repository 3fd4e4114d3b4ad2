package dialect

import (
	"fmt"

	"github.com/gnoswap-labs/xqlint/xquery/entity"
)

// Config selects the language version, vendor product and extensions a
// document is checked against.
type Config struct {
	// Product is XQuery for plain W3C processing, or a vendor kind.
	Product Kind
	// ProductVersion is the vendor version; ignored when Product is XQuery.
	ProductVersion Version
	// XQuery is the targeted XQuery version.
	XQuery Version
	// Extensions lists explicitly enabled extension specifications.
	Extensions []Version
	// Entities is the entity name table used for `&name;` references.
	Entities entity.Set
}

// Default returns the W3C XQuery 3.1 configuration with predefined entities.
func Default() Config {
	return Config{
		Product:  XQuery,
		XQuery:   XQuery31,
		Entities: entity.Predefined,
	}
}

// ForProduct returns the usual configuration for a vendor product version:
// the XQuery dialect, implied extensions and entity table the product uses.
func ForProduct(v Version) Config {
	cfg := Config{Product: v.Kind, ProductVersion: v, Entities: entity.Predefined}
	switch v.Kind {
	case MarkLogic:
		cfg.XQuery = MarkLogicXQuery10
		cfg.Entities = entity.HTML5
	case BaseX, Saxon:
		cfg.XQuery = XQuery31
	default:
		return Default()
	}
	return cfg
}

// Validate checks that the versions in cfg belong to the expected kinds.
func (c Config) Validate() error {
	if c.XQuery.Kind != XQuery || c.XQuery.IsZero() {
		return fmt.Errorf("%w: xquery version %q", ErrUnknownVersion, c.XQuery.Label)
	}
	if c.Product != XQuery {
		if !c.Product.IsProduct() {
			return fmt.Errorf("%w: %s is not a product", ErrUnknownVersion, c.Product)
		}
		if c.ProductVersion.Kind != c.Product {
			return fmt.Errorf("%w: %s version %q", ErrUnknownVersion, c.Product, c.ProductVersion.Label)
		}
	}
	for _, ext := range c.Extensions {
		switch ext.Kind {
		case FullText, UpdateFacility, Scripting:
		default:
			return fmt.Errorf("%w: %s is not an extension", ErrUnknownVersion, ext)
		}
	}
	return nil
}

// WithXQueryVersion returns a copy of c targeting the version named by a
// `xquery version` declaration. ok is false when the label is unknown.
func (c Config) WithXQueryVersion(label string) (Config, bool) {
	v, err := ParseVersion(XQuery, label)
	if err != nil {
		return c, false
	}
	c.XQuery = v
	return c, true
}

// implied returns the extension versions a product ships with.
func (c Config) implied() []Version {
	switch c.Product {
	case BaseX:
		return []Version{FullText10, UpdateFacility30}
	case Saxon:
		return []Version{UpdateFacility10}
	}
	return nil
}

// Supports reports whether a construct requiring v is available.
func (c Config) Supports(v Version) bool {
	switch v.Kind {
	case XQuery:
		if v.IsMarkLogicDialect() {
			return c.XQuery.Label == v.Label
		}
		if c.XQuery.IsMarkLogicDialect() {
			// 1.0-ml extends XQuery 1.0 only; later features are
			// listed with MarkLogic alternatives where supported.
			return !v.AtLeast(XQuery30)
		}
		return c.XQuery.AtLeast(v)
	case FullText, UpdateFacility, Scripting:
		for _, ext := range c.Extensions {
			if ext.AtLeast(v) {
				return true
			}
		}
		for _, ext := range c.implied() {
			if ext.AtLeast(v) {
				return true
			}
		}
		return false
	case MarkLogic, BaseX, Saxon:
		return c.Product == v.Kind && c.ProductVersion.AtLeast(v)
	}
	panic(fmt.Sprintf("dialect: invalid kind %d", v.Kind))
}

// SupportsAny reports whether at least one alternative in reqs is supported.
// An empty list is core syntax and always supported.
func (c Config) SupportsAny(reqs []Version) bool {
	if len(reqs) == 0 {
		return true
	}
	for _, v := range reqs {
		if c.Supports(v) {
			return true
		}
	}
	return false
}

func (c Config) String() string {
	if c.Product == XQuery {
		return "W3C " + c.XQuery.String()
	}
	return c.ProductVersion.String() + " (" + c.XQuery.String() + ")"
}
