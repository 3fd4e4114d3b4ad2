// Package entity holds the named character entity tables recognised in
// XQuery string literals, attribute values and element content.
package entity

import (
	"fmt"
	"strings"
)

// Set selects which entity names are recognised.
type Set int

const (
	// Predefined is the five XML entities, the only ones W3C XQuery allows.
	Predefined Set = iota
	// HTML4 adds the 253 HTML 4.01 entities.
	HTML4
	// HTML5 adds HTML5 names on top of HTML4.
	HTML5

	setCount
)

// Sets is the number of entity sets.
const Sets = int(setCount)

func (s Set) String() string {
	switch s {
	case Predefined:
		return "predefined"
	case HTML4:
		return "html4"
	case HTML5:
		return "html5"
	}
	return fmt.Sprintf("Set(%d)", int(s))
}

// ParseSet maps a configuration name to a Set.
func ParseSet(name string) (Set, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "predefined", "xquery", "xml":
		return Predefined, nil
	case "html4", "html":
		return HTML4, nil
	case "html5":
		return HTML5, nil
	}
	return Predefined, fmt.Errorf("unknown entity set %q", name)
}

var predefined = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"apos": "'",
	"quot": "\"",
}

// Lookup returns the replacement text of the entity name in set s.
func Lookup(s Set, name string) (string, bool) {
	if v, ok := predefined[name]; ok {
		return v, true
	}
	switch s {
	case HTML4:
		if r, ok := html4[name]; ok {
			return string(r), true
		}
	case HTML5:
		if v, ok := html5[name]; ok {
			return v, true
		}
		if r, ok := html4[name]; ok {
			return string(r), true
		}
	}
	return "", false
}

// IsPredefined reports whether name is one of the five XML entities.
func IsPredefined(name string) bool {
	_, ok := predefined[name]
	return ok
}

// Smallest returns the smallest set that defines name.
func Smallest(name string) (Set, bool) {
	for s := Predefined; s < setCount; s++ {
		if _, ok := Lookup(s, name); ok {
			return s, true
		}
	}
	return Predefined, false
}
