package python

import "strings"

// astKinds maps tree-sitter-python node kinds to the names Python's own ast
// module uses for the same construct. Diagram labels show these names, so a
// list literal reads "List" rather than "list".
var astKinds = map[string]string{
	"identifier":               "Name",
	"call":                     "Call",
	"attribute":                "Attribute",
	"subscript":                "Subscript",
	"generic_type":             "Subscript",
	"member_type":              "Attribute",
	"union_type":               "BinOp",
	"list":                     "List",
	"tuple":                    "Tuple",
	"expression_list":          "Tuple",
	"pattern_list":             "Tuple",
	"tuple_pattern":            "Tuple",
	"list_pattern":             "List",
	"dictionary":               "Dict",
	"set":                      "Set",
	"list_comprehension":       "ListComp",
	"dictionary_comprehension": "DictComp",
	"set_comprehension":        "SetComp",
	"generator_expression":     "GeneratorExp",
	"binary_operator":          "BinOp",
	"unary_operator":           "UnaryOp",
	"not_operator":             "UnaryOp",
	"boolean_operator":         "BoolOp",
	"comparison_operator":      "Compare",
	"conditional_expression":   "IfExp",
	"lambda":                   "Lambda",
	"await":                    "Await",
	"yield":                    "Yield",
	"named_expression":         "NamedExpr",
	"slice":                    "Slice",
	"list_splat":               "Starred",
	"splat_type":               "Starred",
	"string":                   "Constant",
	"concatenated_string":      "Constant",
	"integer":                  "Constant",
	"float":                    "Constant",
	"true":                     "Constant",
	"false":                    "Constant",
	"none":                     "Constant",
	"ellipsis":                 "Constant",
	"assignment":               "Assign",
	"augmented_assignment":     "AugAssign",
	"expression_statement":     "Expr",
	"return_statement":         "Return",
	"pass_statement":           "Pass",
	"if_statement":             "If",
	"for_statement":            "For",
	"while_statement":          "While",
	"try_statement":            "Try",
	"with_statement":           "With",
	"import_statement":         "Import",
	"import_from_statement":    "ImportFrom",
	"class_definition":         "ClassDef",
	"function_definition":      "FunctionDef",
	"decorated_definition":     "FunctionDef",
}

// kindLabel returns the ast-style label for a tree-sitter node kind. Kinds
// without a mapping are converted from snake_case to CamelCase.
func kindLabel(kind string) string {
	if label, ok := astKinds[kind]; ok {
		return label
	}
	var b strings.Builder
	for _, part := range strings.Split(kind, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
