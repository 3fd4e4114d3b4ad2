package dialect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a specification family or a vendor product.
type Kind int

const (
	XQuery Kind = iota
	FullText
	UpdateFacility
	Scripting
	MarkLogic
	BaseX
	Saxon
)

var kindNames = [...]string{
	XQuery:         "XQuery",
	FullText:       "Full Text",
	UpdateFacility: "Update Facility",
	Scripting:      "Scripting",
	MarkLogic:      "MarkLogic",
	BaseX:          "BaseX",
	Saxon:          "Saxon",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// IsProduct reports whether k names a vendor implementation rather than a
// W3C specification.
func (k Kind) IsProduct() bool {
	return k == MarkLogic || k == BaseX || k == Saxon
}

// Version is one version of a specification or product.
//
// Label is the version string as written in source (for XQuery versions) or
// in configuration files. MarkLogic's XQuery dialects ("0.9-ml", "1.0-ml")
// are XQuery versions that only match themselves.
type Version struct {
	Kind  Kind
	Major int
	Minor int
	Label string
}

var (
	XQuery10          = Version{XQuery, 1, 0, "1.0"}
	XQuery30          = Version{XQuery, 3, 0, "3.0"}
	XQuery31          = Version{XQuery, 3, 1, "3.1"}
	XQuery40          = Version{XQuery, 4, 0, "4.0"}
	MarkLogicXQuery09 = Version{XQuery, 0, 9, "0.9-ml"}
	MarkLogicXQuery10 = Version{XQuery, 1, 0, "1.0-ml"}

	FullText10 = Version{FullText, 1, 0, "1.0"}
	FullText30 = Version{FullText, 3, 0, "3.0"}

	UpdateFacility10 = Version{UpdateFacility, 1, 0, "1.0"}
	UpdateFacility30 = Version{UpdateFacility, 3, 0, "3.0"}

	Scripting10 = Version{Scripting, 1, 0, "1.0"}

	MarkLogic60 = Version{MarkLogic, 6, 0, "6.0"}
	MarkLogic70 = Version{MarkLogic, 7, 0, "7.0"}
	MarkLogic80 = Version{MarkLogic, 8, 0, "8.0"}
	MarkLogic90 = Version{MarkLogic, 9, 0, "9.0"}

	BaseX78 = Version{BaseX, 7, 8, "7.8"}
	BaseX80 = Version{BaseX, 8, 0, "8.0"}
	BaseX84 = Version{BaseX, 8, 4, "8.4"}
	BaseX85 = Version{BaseX, 8, 5, "8.5"}
	BaseX86 = Version{BaseX, 8, 6, "8.6"}
	BaseX90 = Version{BaseX, 9, 0, "9.0"}
	BaseX91 = Version{BaseX, 9, 1, "9.1"}

	Saxon94  = Version{Saxon, 9, 4, "9.4"}
	Saxon96  = Version{Saxon, 9, 6, "9.6"}
	Saxon98  = Version{Saxon, 9, 8, "9.8"}
	Saxon99  = Version{Saxon, 9, 9, "9.9"}
	Saxon100 = Version{Saxon, 10, 0, "10.0"}
)

// Known lists every version the classifier and configuration understand,
// grouped by kind and ordered oldest first.
var Known = []Version{
	XQuery10, XQuery30, XQuery31, XQuery40, MarkLogicXQuery09, MarkLogicXQuery10,
	FullText10, FullText30,
	UpdateFacility10, UpdateFacility30,
	Scripting10,
	MarkLogic60, MarkLogic70, MarkLogic80, MarkLogic90,
	BaseX78, BaseX80, BaseX84, BaseX85, BaseX86, BaseX90, BaseX91,
	Saxon94, Saxon96, Saxon98, Saxon99, Saxon100,
}

// ErrUnknownVersion reports a version string that is not in Known.
var ErrUnknownVersion = errors.New("unknown version")

// IsZero reports whether v is the zero Version.
func (v Version) IsZero() bool {
	return v == Version{}
}

// IsMarkLogicDialect reports whether v is one of MarkLogic's XQuery dialects.
func (v Version) IsMarkLogicDialect() bool {
	return v.Kind == XQuery && strings.HasSuffix(v.Label, "-ml")
}

// AtLeast reports whether v is the same kind as o and not older.
func (v Version) AtLeast(o Version) bool {
	if v.Kind != o.Kind {
		return false
	}
	if v.Major != o.Major {
		return v.Major > o.Major
	}
	return v.Minor >= o.Minor
}

func (v Version) String() string {
	if v.IsZero() {
		return "none"
	}
	return v.Kind.String() + " " + v.Label
}

// ParseVersion looks up the version of kind k labelled s.
func ParseVersion(k Kind, s string) (Version, error) {
	s = strings.TrimSpace(s)
	for _, v := range Known {
		if v.Kind == k && v.Label == s {
			return v, nil
		}
	}
	return Version{}, fmt.Errorf("%w: %s %q", ErrUnknownVersion, k, s)
}

// ParseKind maps a configuration name such as "marklogic" or "full-text"
// to its Kind. "w3c" is an alias of XQuery.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "w3c", "xquery":
		return XQuery, nil
	case "full-text", "fulltext", "ft":
		return FullText, nil
	case "update-facility", "update", "xquf":
		return UpdateFacility, nil
	case "scripting":
		return Scripting, nil
	case "marklogic":
		return MarkLogic, nil
	case "basex":
		return BaseX, nil
	case "saxon":
		return Saxon, nil
	}
	return 0, fmt.Errorf("%w: product %q", ErrUnknownVersion, s)
}

// Latest returns the newest known version of kind k.
func Latest(k Kind) Version {
	var latest Version
	for _, v := range Known {
		if v.Kind != k || v.IsMarkLogicDialect() {
			continue
		}
		if latest.IsZero() || v.AtLeast(latest) {
			latest = v
		}
	}
	return latest
}

// FormatAlternatives renders a requirement list as "XQuery 3.0 or MarkLogic 6.0".
func FormatAlternatives(reqs []Version) string {
	parts := make([]string, len(reqs))
	for i, v := range reqs {
		parts[i] = v.String()
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}
