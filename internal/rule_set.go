package internal

import (
	"github.com/gnoswap-labs/xqlint/internal/lints"
	tt "github.com/gnoswap-labs/xqlint/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the given file and returns a slice of Issues.
	Check(f *lints.File) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	// Severity returns the severity of the lint rule.
	Severity() tt.Severity

	// SetSeverity sets the severity of the lint rule.
	SetSeverity(tt.Severity)
}

type LexicalErrorRule struct {
	severity tt.Severity
}

func NewLexicalErrorRule() LintRule {
	return &LexicalErrorRule{severity: tt.SeverityError}
}

func (r *LexicalErrorRule) Check(f *lints.File) ([]tt.Issue, error) {
	return lints.DetectLexicalErrors(f, r.severity)
}

func (r *LexicalErrorRule) Name() string {
	return lints.LexicalError
}

func (r *LexicalErrorRule) Severity() tt.Severity {
	return r.severity
}

func (r *LexicalErrorRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}

type SyntaxErrorRule struct {
	severity tt.Severity
}

func NewSyntaxErrorRule() LintRule {
	return &SyntaxErrorRule{severity: tt.SeverityError}
}

func (r *SyntaxErrorRule) Check(f *lints.File) ([]tt.Issue, error) {
	return lints.DetectSyntaxErrors(f, r.severity)
}

func (r *SyntaxErrorRule) Name() string {
	return lints.SyntaxError
}

func (r *SyntaxErrorRule) Severity() tt.Severity {
	return r.severity
}

func (r *SyntaxErrorRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}

type UnsupportedConstructRule struct {
	severity tt.Severity
}

func NewUnsupportedConstructRule() LintRule {
	return &UnsupportedConstructRule{severity: tt.SeverityError}
}

func (r *UnsupportedConstructRule) Check(f *lints.File) ([]tt.Issue, error) {
	return lints.DetectUnsupportedConstructs(f, r.severity)
}

func (r *UnsupportedConstructRule) Name() string {
	return lints.UnsupportedConstruct
}

func (r *UnsupportedConstructRule) Severity() tt.Severity {
	return r.severity
}

func (r *UnsupportedConstructRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}

type UnknownEntityRule struct {
	severity tt.Severity
}

func NewUnknownEntityRule() LintRule {
	return &UnknownEntityRule{severity: tt.SeverityWarning}
}

func (r *UnknownEntityRule) Check(f *lints.File) ([]tt.Issue, error) {
	return lints.DetectUnknownEntities(f, r.severity)
}

func (r *UnknownEntityRule) Name() string {
	return lints.UnknownEntity
}

func (r *UnknownEntityRule) Severity() tt.Severity {
	return r.severity
}

func (r *UnknownEntityRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}

type ReservedFunctionNameRule struct {
	severity tt.Severity
}

func NewReservedFunctionNameRule() LintRule {
	return &ReservedFunctionNameRule{severity: tt.SeverityError}
}

func (r *ReservedFunctionNameRule) Check(f *lints.File) ([]tt.Issue, error) {
	return lints.DetectReservedFunctionNames(f, r.severity)
}

func (r *ReservedFunctionNameRule) Name() string {
	return lints.ReservedFunctionName
}

func (r *ReservedFunctionNameRule) Severity() tt.Severity {
	return r.severity
}

func (r *ReservedFunctionNameRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}

type UnsupportedVersionRule struct {
	severity tt.Severity
}

func NewUnsupportedVersionRule() LintRule {
	return &UnsupportedVersionRule{severity: tt.SeverityWarning}
}

func (r *UnsupportedVersionRule) Check(f *lints.File) ([]tt.Issue, error) {
	return lints.DetectUnsupportedVersion(f, r.severity)
}

func (r *UnsupportedVersionRule) Name() string {
	return lints.UnsupportedVersion
}

func (r *UnsupportedVersionRule) Severity() tt.Severity {
	return r.severity
}

func (r *UnsupportedVersionRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}
