// Package chapter builds a tree of lexical contexts (classes, methods,
// docstrings and __all__ export lists) from Python source lines using
// indentation alone, without a grammar-based parser.
package chapter

// Kind identifies the lexical context a node represents.
type Kind int

const (
	// KindRoot is the synthetic module-level context. One per file.
	KindRoot Kind = iota

	// KindMethod is a def/async def block.
	KindMethod

	// KindClass is a class block.
	KindClass

	// KindAll is an __all__ export list assignment.
	KindAll

	// KindDocstring is a triple-quoted docstring.
	KindDocstring
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindMethod:
		return "method"
	case KindClass:
		return "class"
	case KindAll:
		return "all"
	case KindDocstring:
		return "docstring"
	default:
		return "unknown"
	}
}

// Span is a half-open [Start, End) byte range into the original source.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

const (
	// RootName is the name given to every Root node.
	RootName = "__root__"

	// AllName is the name given to __all__ nodes.
	AllName = "__all__"
)
