package lexer

import (
	"github.com/gnoswap-labs/xqlint/xquery/dialect"
)

// reservedFunctionNames lists the unprefixed names that cannot be used as
// function names, with the versions that reserve them.
var reservedFunctionNames = map[string][]dialect.Version{
	"attribute":              {dialect.XQuery10},
	"comment":                {dialect.XQuery10},
	"document-node":          {dialect.XQuery10},
	"element":                {dialect.XQuery10},
	"empty-sequence":         {dialect.XQuery10},
	"if":                     {dialect.XQuery10},
	"item":                   {dialect.XQuery10},
	"node":                   {dialect.XQuery10},
	"processing-instruction": {dialect.XQuery10},
	"schema-attribute":       {dialect.XQuery10},
	"schema-element":         {dialect.XQuery10},
	"text":                   {dialect.XQuery10},
	"typeswitch":             {dialect.XQuery10},

	"function":       {dialect.XQuery30, dialect.MarkLogic60},
	"namespace-node": {dialect.XQuery30, dialect.MarkLogic60},
	"switch":         {dialect.XQuery30, dialect.MarkLogic60},

	"array": {dialect.XQuery31},
	"map":   {dialect.XQuery31},

	"enum":   {dialect.XQuery40},
	"record": {dialect.XQuery40},

	"binary": {dialect.MarkLogic60},

	"attribute-decl":   {dialect.MarkLogic70},
	"complex-type":     {dialect.MarkLogic70},
	"element-decl":     {dialect.MarkLogic70},
	"model-group":      {dialect.MarkLogic70},
	"schema-component": {dialect.MarkLogic70},
	"schema-facet":     {dialect.MarkLogic70},
	"schema-particle":  {dialect.MarkLogic70},
	"schema-root":      {dialect.MarkLogic70},
	"schema-type":      {dialect.MarkLogic70},
	"schema-wildcard":  {dialect.MarkLogic70},
	"simple-type":      {dialect.MarkLogic70},

	"array-node":   {dialect.MarkLogic80},
	"boolean-node": {dialect.MarkLogic80},
	"null-node":    {dialect.MarkLogic80},
	"number-node":  {dialect.MarkLogic80},
	"object-node":  {dialect.MarkLogic80},

	"while": {dialect.Scripting10},
}

// IsReservedFunctionName reports whether the unprefixed name is reserved
// as a function name under cfg.
func IsReservedFunctionName(name string, cfg dialect.Config) bool {
	reqs, ok := reservedFunctionNames[name]
	return ok && cfg.SupportsAny(reqs)
}

// ReservedFunctionNameVersions returns the versions that reserve name.
func ReservedFunctionNameVersions(name string) []dialect.Version {
	return reservedFunctionNames[name]
}
