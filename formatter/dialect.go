package formatter

// DialectIssueFormatter formats issues about constructs or versions the
// configured dialect lacks.
type DialectIssueFormatter struct{}

func (f *DialectIssueFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent -}}
{{note .Note .Padding -}}
{{help .Padding "set the dialect in .xqlint.yaml or declare the version with 'xquery version'"}}
`
}
