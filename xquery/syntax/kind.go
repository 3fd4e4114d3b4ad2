package syntax

import "fmt"

// Kind identifies the grammar production a Node was built from.
type Kind uint16

const (
	KindInvalid Kind = iota

	// KindToken is a leaf holding one lexer token.
	KindToken
	// KindError marks a production the parser expected but could not
	// build; it holds whatever tokens were skipped during recovery.
	KindError

	// modules and prolog
	KindModule
	KindVersionDecl
	KindMainModule
	KindLibraryModule
	KindModuleDecl
	KindProlog
	KindTransactionSeparator
	KindDefaultNamespaceDecl
	KindBoundarySpaceDecl
	KindDefaultCollationDecl
	KindBaseURIDecl
	KindConstructionDecl
	KindOrderingModeDecl
	KindEmptyOrderDecl
	KindCopyNamespacesDecl
	KindDecimalFormatDecl
	KindDFPropertyName
	KindNamespaceDecl
	KindSchemaImport
	KindSchemaPrefix
	KindModuleImport
	KindContextItemDecl
	KindAnnotatedDecl
	KindAnnotation
	KindVarDecl
	KindFunctionDecl
	KindParamList
	KindParam
	KindTypeDeclaration
	KindOptionDecl
	KindFTOptionDecl
	KindRevalidationDecl
	KindTypeDecl
	KindQueryBody
	KindEnclosedExpr

	// expressions
	KindExpr
	KindFLWORExpr
	KindForClause
	KindForBinding
	KindForMemberBinding
	KindPositionalVar
	KindAllowingEmpty
	KindFTScoreVar
	KindLetClause
	KindLetBinding
	KindWindowClause
	KindWindowStartCondition
	KindWindowEndCondition
	KindWindowVars
	KindCountClause
	KindWhereClause
	KindGroupByClause
	KindGroupingSpec
	KindOrderByClause
	KindOrderSpec
	KindReturnClause
	KindQuantifiedExpr
	KindQuantifiedBinding
	KindSwitchExpr
	KindSwitchCaseClause
	KindSwitchDefaultClause
	KindTypeswitchExpr
	KindCaseClause
	KindDefaultCaseClause
	KindSequenceTypeUnion
	KindIfExpr
	KindTryCatchExpr
	KindTryClause
	KindCatchClause
	KindCatchErrorList
	KindOrExpr
	KindAndExpr
	KindComparisonExpr
	KindFTContainsExpr
	KindOtherwiseExpr
	KindStringConcatExpr
	KindRangeExpr
	KindAdditiveExpr
	KindMultiplicativeExpr
	KindUnionExpr
	KindIntersectExceptExpr
	KindInstanceofExpr
	KindTreatExpr
	KindCastableExpr
	KindCastExpr
	KindArrowExpr
	KindUnaryExpr
	KindSimpleMapExpr
	KindValidateExpr
	KindExtensionExpr
	KindPragma
	KindPathExpr
	KindRelativePathExpr
	KindAxisStep
	KindForwardAxis
	KindReverseAxis
	KindAbbrevForwardStep
	KindAbbrevReverseStep
	KindNameTest
	KindWildcard
	KindPredicate
	KindPostfixExpr
	KindArgumentList
	KindKeywordArgument
	KindArgumentPlaceholder
	KindLookup
	KindUnaryLookup
	KindKeySpecifier

	// primary expressions
	KindVarRef
	KindVarName
	KindParenthesizedExpr
	KindContextItemExpr
	KindFunctionCall
	KindOrderedExpr
	KindUnorderedExpr
	KindNamedFunctionRef
	KindInlineFunctionExpr
	KindContextItemFunctionExpr
	KindMapConstructor
	KindMapConstructorEntry
	KindSquareArrayConstructor
	KindCurlyArrayConstructor
	KindStringConstructor
	KindStringConstructorContent
	KindStringConstructorInterpolation

	// literals and names
	KindIntegerLiteral
	KindDecimalLiteral
	KindDoubleLiteral
	KindStringLiteral
	KindBracedURILiteral
	KindNCName
	KindQName
	KindURIQualifiedName

	// direct and computed constructors
	KindDirElemConstructor
	KindDirAttributeList
	KindDirAttribute
	KindDirAttributeValue
	KindDirElemContent
	KindDirCommentConstructor
	KindDirPIConstructor
	KindCDataSection
	KindCompDocConstructor
	KindCompElemConstructor
	KindCompAttrConstructor
	KindCompNamespaceConstructor
	KindCompTextConstructor
	KindCompCommentConstructor
	KindCompPIConstructor
	KindCompBinaryConstructor
	KindCompArrayNodeConstructor
	KindCompBooleanNodeConstructor
	KindCompNullNodeConstructor
	KindCompNumberNodeConstructor
	KindCompObjectNodeConstructor

	// types
	KindSequenceType
	KindSingleType
	KindAtomicOrUnionType
	KindParenthesizedItemType
	KindAnyItemType
	KindEmptySequenceType
	KindDocumentTest
	KindElementTest
	KindAttributeTest
	KindSchemaElementTest
	KindSchemaAttributeTest
	KindPITest
	KindCommentTest
	KindTextTest
	KindNamespaceNodeTest
	KindAnyKindTest
	KindBinaryTest
	KindArrayNodeTest
	KindBooleanNodeTest
	KindNullNodeTest
	KindNumberNodeTest
	KindObjectNodeTest
	KindSchemaComponentTest
	KindFunctionTest
	KindMapTest
	KindArrayTest
	KindTupleType
	KindTupleField
	KindUnionType
	KindTypeAlias

	// Full Text
	KindFTSelection
	KindFTOr
	KindFTAnd
	KindFTMildNot
	KindFTUnaryNot
	KindFTPrimaryWithOptions
	KindFTWords
	KindFTAnyallOption
	KindFTTimes
	KindFTRange
	KindFTOrder
	KindFTWindow
	KindFTDistance
	KindFTScope
	KindFTContent
	KindFTWeight
	KindFTMatchOptions
	KindFTMatchOption
	KindFTExtensionSelection
	KindFTIgnoreOption

	// Update Facility
	KindInsertExpr
	KindDeleteExpr
	KindReplaceExpr
	KindRenameExpr
	KindCopyModifyExpr
	KindCopyBinding
	KindTransformWithExpr
	KindUpdateExpr

	// Scripting
	KindBlockExpr
	KindBlockVarDecl
	KindApplyExpr
	KindAssignmentExpr
	KindWhileExpr
	KindExitExpr
	KindBreakExpr
	KindContinueExpr

	kindCount
)

// Capability is a set of roles a node kind plays.
type Capability uint32

const (
	CapExpr Capability = 1 << iota
	CapLiteral
	CapName
	CapConstructor
	CapDirectConstructor
	CapType
	CapKindTest
	CapDecl
	CapClause
	CapFullText
	CapUpdating
	CapScripting
	// CapDecodable nodes have a string value built from their tokens.
	CapDecodable
)

type kindInfo struct {
	name string
	caps Capability
}

var kinds = [kindCount]kindInfo{
	KindInvalid: {"Invalid", 0},
	KindToken:   {"Token", 0},
	KindError:   {"Error", 0},

	KindModule:               {"Module", 0},
	KindVersionDecl:          {"VersionDecl", CapDecl},
	KindMainModule:           {"MainModule", 0},
	KindLibraryModule:        {"LibraryModule", 0},
	KindModuleDecl:           {"ModuleDecl", CapDecl},
	KindProlog:               {"Prolog", 0},
	KindTransactionSeparator: {"TransactionSeparator", 0},
	KindDefaultNamespaceDecl: {"DefaultNamespaceDecl", CapDecl},
	KindBoundarySpaceDecl:    {"BoundarySpaceDecl", CapDecl},
	KindDefaultCollationDecl: {"DefaultCollationDecl", CapDecl},
	KindBaseURIDecl:          {"BaseURIDecl", CapDecl},
	KindConstructionDecl:     {"ConstructionDecl", CapDecl},
	KindOrderingModeDecl:     {"OrderingModeDecl", CapDecl},
	KindEmptyOrderDecl:       {"EmptyOrderDecl", CapDecl},
	KindCopyNamespacesDecl:   {"CopyNamespacesDecl", CapDecl},
	KindDecimalFormatDecl:    {"DecimalFormatDecl", CapDecl},
	KindDFPropertyName:       {"DFPropertyName", 0},
	KindNamespaceDecl:        {"NamespaceDecl", CapDecl},
	KindSchemaImport:         {"SchemaImport", CapDecl},
	KindSchemaPrefix:         {"SchemaPrefix", 0},
	KindModuleImport:         {"ModuleImport", CapDecl},
	KindContextItemDecl:      {"ContextItemDecl", CapDecl},
	KindAnnotatedDecl:        {"AnnotatedDecl", CapDecl},
	KindAnnotation:           {"Annotation", 0},
	KindVarDecl:              {"VarDecl", CapDecl},
	KindFunctionDecl:         {"FunctionDecl", CapDecl},
	KindParamList:            {"ParamList", 0},
	KindParam:                {"Param", 0},
	KindTypeDeclaration:      {"TypeDeclaration", 0},
	KindOptionDecl:           {"OptionDecl", CapDecl},
	KindFTOptionDecl:         {"FTOptionDecl", CapDecl | CapFullText},
	KindRevalidationDecl:     {"RevalidationDecl", CapDecl | CapUpdating},
	KindTypeDecl:             {"TypeDecl", CapDecl},
	KindQueryBody:            {"QueryBody", 0},
	KindEnclosedExpr:         {"EnclosedExpr", CapExpr},

	KindExpr:                 {"Expr", CapExpr},
	KindFLWORExpr:            {"FLWORExpr", CapExpr},
	KindForClause:            {"ForClause", CapClause},
	KindForBinding:           {"ForBinding", 0},
	KindForMemberBinding:     {"ForMemberBinding", 0},
	KindPositionalVar:        {"PositionalVar", 0},
	KindAllowingEmpty:        {"AllowingEmpty", 0},
	KindFTScoreVar:           {"FTScoreVar", CapFullText},
	KindLetClause:            {"LetClause", CapClause},
	KindLetBinding:           {"LetBinding", 0},
	KindWindowClause:         {"WindowClause", CapClause},
	KindWindowStartCondition: {"WindowStartCondition", 0},
	KindWindowEndCondition:   {"WindowEndCondition", 0},
	KindWindowVars:           {"WindowVars", 0},
	KindCountClause:          {"CountClause", CapClause},
	KindWhereClause:          {"WhereClause", CapClause},
	KindGroupByClause:        {"GroupByClause", CapClause},
	KindGroupingSpec:         {"GroupingSpec", 0},
	KindOrderByClause:        {"OrderByClause", CapClause},
	KindOrderSpec:            {"OrderSpec", 0},
	KindReturnClause:         {"ReturnClause", CapClause},
	KindQuantifiedExpr:       {"QuantifiedExpr", CapExpr},
	KindQuantifiedBinding:    {"QuantifiedBinding", 0},
	KindSwitchExpr:           {"SwitchExpr", CapExpr},
	KindSwitchCaseClause:     {"SwitchCaseClause", 0},
	KindSwitchDefaultClause:  {"SwitchDefaultClause", 0},
	KindTypeswitchExpr:       {"TypeswitchExpr", CapExpr},
	KindCaseClause:           {"CaseClause", 0},
	KindDefaultCaseClause:    {"DefaultCaseClause", 0},
	KindSequenceTypeUnion:    {"SequenceTypeUnion", CapType},
	KindIfExpr:               {"IfExpr", CapExpr},
	KindTryCatchExpr:         {"TryCatchExpr", CapExpr},
	KindTryClause:            {"TryClause", 0},
	KindCatchClause:          {"CatchClause", 0},
	KindCatchErrorList:       {"CatchErrorList", 0},
	KindOrExpr:               {"OrExpr", CapExpr},
	KindAndExpr:              {"AndExpr", CapExpr},
	KindComparisonExpr:       {"ComparisonExpr", CapExpr},
	KindFTContainsExpr:       {"FTContainsExpr", CapExpr | CapFullText},
	KindOtherwiseExpr:        {"OtherwiseExpr", CapExpr},
	KindStringConcatExpr:     {"StringConcatExpr", CapExpr},
	KindRangeExpr:            {"RangeExpr", CapExpr},
	KindAdditiveExpr:         {"AdditiveExpr", CapExpr},
	KindMultiplicativeExpr:   {"MultiplicativeExpr", CapExpr},
	KindUnionExpr:            {"UnionExpr", CapExpr},
	KindIntersectExceptExpr:  {"IntersectExceptExpr", CapExpr},
	KindInstanceofExpr:       {"InstanceofExpr", CapExpr},
	KindTreatExpr:            {"TreatExpr", CapExpr},
	KindCastableExpr:         {"CastableExpr", CapExpr},
	KindCastExpr:             {"CastExpr", CapExpr},
	KindArrowExpr:            {"ArrowExpr", CapExpr},
	KindUnaryExpr:            {"UnaryExpr", CapExpr},
	KindSimpleMapExpr:        {"SimpleMapExpr", CapExpr},
	KindValidateExpr:         {"ValidateExpr", CapExpr},
	KindExtensionExpr:        {"ExtensionExpr", CapExpr},
	KindPragma:               {"Pragma", 0},
	KindPathExpr:             {"PathExpr", CapExpr},
	KindRelativePathExpr:     {"RelativePathExpr", CapExpr},
	KindAxisStep:             {"AxisStep", CapExpr},
	KindForwardAxis:          {"ForwardAxis", 0},
	KindReverseAxis:          {"ReverseAxis", 0},
	KindAbbrevForwardStep:    {"AbbrevForwardStep", 0},
	KindAbbrevReverseStep:    {"AbbrevReverseStep", 0},
	KindNameTest:             {"NameTest", 0},
	KindWildcard:             {"Wildcard", 0},
	KindPredicate:            {"Predicate", 0},
	KindPostfixExpr:          {"PostfixExpr", CapExpr},
	KindArgumentList:         {"ArgumentList", 0},
	KindKeywordArgument:      {"KeywordArgument", 0},
	KindArgumentPlaceholder:  {"ArgumentPlaceholder", 0},
	KindLookup:               {"Lookup", 0},
	KindUnaryLookup:          {"UnaryLookup", CapExpr},
	KindKeySpecifier:         {"KeySpecifier", 0},

	KindVarRef:                         {"VarRef", CapExpr},
	KindVarName:                        {"VarName", 0},
	KindParenthesizedExpr:              {"ParenthesizedExpr", CapExpr},
	KindContextItemExpr:                {"ContextItemExpr", CapExpr},
	KindFunctionCall:                   {"FunctionCall", CapExpr},
	KindOrderedExpr:                    {"OrderedExpr", CapExpr},
	KindUnorderedExpr:                  {"UnorderedExpr", CapExpr},
	KindNamedFunctionRef:               {"NamedFunctionRef", CapExpr},
	KindInlineFunctionExpr:             {"InlineFunctionExpr", CapExpr},
	KindContextItemFunctionExpr:        {"ContextItemFunctionExpr", CapExpr},
	KindMapConstructor:                 {"MapConstructor", CapExpr | CapConstructor},
	KindMapConstructorEntry:            {"MapConstructorEntry", 0},
	KindSquareArrayConstructor:         {"SquareArrayConstructor", CapExpr | CapConstructor},
	KindCurlyArrayConstructor:          {"CurlyArrayConstructor", CapExpr | CapConstructor},
	KindStringConstructor:              {"StringConstructor", CapExpr | CapConstructor},
	KindStringConstructorContent:       {"StringConstructorContent", CapDecodable},
	KindStringConstructorInterpolation: {"StringConstructorInterpolation", 0},

	KindIntegerLiteral:   {"IntegerLiteral", CapExpr | CapLiteral},
	KindDecimalLiteral:   {"DecimalLiteral", CapExpr | CapLiteral},
	KindDoubleLiteral:    {"DoubleLiteral", CapExpr | CapLiteral},
	KindStringLiteral:    {"StringLiteral", CapExpr | CapLiteral | CapDecodable},
	KindBracedURILiteral: {"BracedURILiteral", CapLiteral | CapDecodable},
	KindNCName:           {"NCName", CapName},
	KindQName:            {"QName", CapName},
	KindURIQualifiedName: {"URIQualifiedName", CapName},

	KindDirElemConstructor:         {"DirElemConstructor", CapExpr | CapConstructor | CapDirectConstructor},
	KindDirAttributeList:           {"DirAttributeList", 0},
	KindDirAttribute:               {"DirAttribute", 0},
	KindDirAttributeValue:          {"DirAttributeValue", CapDecodable},
	KindDirElemContent:             {"DirElemContent", CapDecodable},
	KindDirCommentConstructor:      {"DirCommentConstructor", CapExpr | CapConstructor | CapDirectConstructor | CapDecodable},
	KindDirPIConstructor:           {"DirPIConstructor", CapExpr | CapConstructor | CapDirectConstructor | CapDecodable},
	KindCDataSection:               {"CDataSection", CapDecodable},
	KindCompDocConstructor:         {"CompDocConstructor", CapExpr | CapConstructor},
	KindCompElemConstructor:        {"CompElemConstructor", CapExpr | CapConstructor},
	KindCompAttrConstructor:        {"CompAttrConstructor", CapExpr | CapConstructor},
	KindCompNamespaceConstructor:   {"CompNamespaceConstructor", CapExpr | CapConstructor},
	KindCompTextConstructor:        {"CompTextConstructor", CapExpr | CapConstructor},
	KindCompCommentConstructor:     {"CompCommentConstructor", CapExpr | CapConstructor},
	KindCompPIConstructor:          {"CompPIConstructor", CapExpr | CapConstructor},
	KindCompBinaryConstructor:      {"CompBinaryConstructor", CapExpr | CapConstructor},
	KindCompArrayNodeConstructor:   {"CompArrayNodeConstructor", CapExpr | CapConstructor},
	KindCompBooleanNodeConstructor: {"CompBooleanNodeConstructor", CapExpr | CapConstructor},
	KindCompNullNodeConstructor:    {"CompNullNodeConstructor", CapExpr | CapConstructor},
	KindCompNumberNodeConstructor:  {"CompNumberNodeConstructor", CapExpr | CapConstructor},
	KindCompObjectNodeConstructor:  {"CompObjectNodeConstructor", CapExpr | CapConstructor},

	KindSequenceType:          {"SequenceType", CapType},
	KindSingleType:            {"SingleType", CapType},
	KindAtomicOrUnionType:     {"AtomicOrUnionType", CapType},
	KindParenthesizedItemType: {"ParenthesizedItemType", CapType},
	KindAnyItemType:           {"AnyItemType", CapType},
	KindEmptySequenceType:     {"EmptySequenceType", CapType},
	KindDocumentTest:          {"DocumentTest", CapType | CapKindTest},
	KindElementTest:           {"ElementTest", CapType | CapKindTest},
	KindAttributeTest:         {"AttributeTest", CapType | CapKindTest},
	KindSchemaElementTest:     {"SchemaElementTest", CapType | CapKindTest},
	KindSchemaAttributeTest:   {"SchemaAttributeTest", CapType | CapKindTest},
	KindPITest:                {"PITest", CapType | CapKindTest},
	KindCommentTest:           {"CommentTest", CapType | CapKindTest},
	KindTextTest:              {"TextTest", CapType | CapKindTest},
	KindNamespaceNodeTest:     {"NamespaceNodeTest", CapType | CapKindTest},
	KindAnyKindTest:           {"AnyKindTest", CapType | CapKindTest},
	KindBinaryTest:            {"BinaryTest", CapType | CapKindTest},
	KindArrayNodeTest:         {"ArrayNodeTest", CapType | CapKindTest},
	KindBooleanNodeTest:       {"BooleanNodeTest", CapType | CapKindTest},
	KindNullNodeTest:          {"NullNodeTest", CapType | CapKindTest},
	KindNumberNodeTest:        {"NumberNodeTest", CapType | CapKindTest},
	KindObjectNodeTest:        {"ObjectNodeTest", CapType | CapKindTest},
	KindSchemaComponentTest:   {"SchemaComponentTest", CapType | CapKindTest},
	KindFunctionTest:          {"FunctionTest", CapType},
	KindMapTest:               {"MapTest", CapType},
	KindArrayTest:             {"ArrayTest", CapType},
	KindTupleType:             {"TupleType", CapType},
	KindTupleField:            {"TupleField", 0},
	KindUnionType:             {"UnionType", CapType},
	KindTypeAlias:             {"TypeAlias", CapType},

	KindFTSelection:          {"FTSelection", CapFullText},
	KindFTOr:                 {"FTOr", CapFullText},
	KindFTAnd:                {"FTAnd", CapFullText},
	KindFTMildNot:            {"FTMildNot", CapFullText},
	KindFTUnaryNot:           {"FTUnaryNot", CapFullText},
	KindFTPrimaryWithOptions: {"FTPrimaryWithOptions", CapFullText},
	KindFTWords:              {"FTWords", CapFullText},
	KindFTAnyallOption:       {"FTAnyallOption", CapFullText},
	KindFTTimes:              {"FTTimes", CapFullText},
	KindFTRange:              {"FTRange", CapFullText},
	KindFTOrder:              {"FTOrder", CapFullText},
	KindFTWindow:             {"FTWindow", CapFullText},
	KindFTDistance:           {"FTDistance", CapFullText},
	KindFTScope:              {"FTScope", CapFullText},
	KindFTContent:            {"FTContent", CapFullText},
	KindFTWeight:             {"FTWeight", CapFullText},
	KindFTMatchOptions:       {"FTMatchOptions", CapFullText},
	KindFTMatchOption:        {"FTMatchOption", CapFullText},
	KindFTExtensionSelection: {"FTExtensionSelection", CapFullText},
	KindFTIgnoreOption:       {"FTIgnoreOption", CapFullText},

	KindInsertExpr:        {"InsertExpr", CapExpr | CapUpdating},
	KindDeleteExpr:        {"DeleteExpr", CapExpr | CapUpdating},
	KindReplaceExpr:       {"ReplaceExpr", CapExpr | CapUpdating},
	KindRenameExpr:        {"RenameExpr", CapExpr | CapUpdating},
	KindCopyModifyExpr:    {"CopyModifyExpr", CapExpr | CapUpdating},
	KindCopyBinding:       {"CopyBinding", CapUpdating},
	KindTransformWithExpr: {"TransformWithExpr", CapExpr | CapUpdating},
	KindUpdateExpr:        {"UpdateExpr", CapExpr | CapUpdating},

	KindBlockExpr:      {"BlockExpr", CapExpr | CapScripting},
	KindBlockVarDecl:   {"BlockVarDecl", CapScripting},
	KindApplyExpr:      {"ApplyExpr", CapExpr | CapScripting},
	KindAssignmentExpr: {"AssignmentExpr", CapExpr | CapScripting},
	KindWhileExpr:      {"WhileExpr", CapExpr | CapScripting},
	KindExitExpr:       {"ExitExpr", CapExpr | CapScripting},
	KindBreakExpr:      {"BreakExpr", CapExpr | CapScripting},
	KindContinueExpr:   {"ContinueExpr", CapExpr | CapScripting},
}

func (k Kind) String() string {
	if k < kindCount && kinds[k].name != "" {
		return kinds[k].name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Capabilities returns the capability set of kind k.
func (k Kind) Capabilities() Capability {
	if k < kindCount {
		return kinds[k].caps
	}
	return 0
}

// HasCapability reports whether n's kind has every capability in c.
func HasCapability(n *Node, c Capability) bool {
	return n != nil && n.Kind.Capabilities()&c == c
}
