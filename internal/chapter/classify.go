package chapter

import (
	"regexp"
	"strings"
)

// LineKind is the structural role of a single physical line, decided before
// the line reaches the processor's state machine.
type LineKind int

const (
	LineOther LineKind = iota
	LineBlank
	LineComment
	LineClass
	LineMethod
	LineDocstring
	LineAll
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineComment:
		return "comment"
	case LineClass:
		return "class"
	case LineMethod:
		return "method"
	case LineDocstring:
		return "docstring"
	case LineAll:
		return "all"
	default:
		return "other"
	}
}

// TabWidth is the column stop used when a tab appears in leading whitespace.
const TabWidth = 8

var (
	classHeader  = regexp.MustCompile(`^[ \t]*class[ \t]+([A-Za-z_][A-Za-z0-9_]*)[ \t]*[(:]`)
	methodHeader = regexp.MustCompile(`^[ \t]*(?:async[ \t]+)?def[ \t]+([A-Za-z_][A-Za-z0-9_]*)[ \t]*\(`)
	allHeader    = regexp.MustCompile(`^[ \t]*__all__[ \t]*(?::[^=]*)?\+?=`)
	docPrefix    = regexp.MustCompile(`^[rRuUbBfF]{0,2}("""|''')`)
)

// LineInfo is the classification of one physical line.
type LineInfo struct {
	Kind   LineKind
	Indent int    // leading whitespace width in columns
	Name   string // class or method identifier
	Delim  string // docstring delimiter
	Rest   string // text after the docstring delimiter or the __all__ '='
}

// Classify decides the structural role of line. Matching is anchored on the
// keyword plus its delimiter, so comments or strings that only mention
// "class" or "def" stay LineOther or LineComment.
func Classify(line string) LineInfo {
	trimmed := strings.TrimSpace(line)
	info := LineInfo{Indent: IndentWidth(line)}

	switch {
	case trimmed == "":
		info.Kind = LineBlank
	case strings.HasPrefix(trimmed, "#"):
		info.Kind = LineComment
	default:
		if m := classHeader.FindStringSubmatch(line); m != nil {
			info.Kind = LineClass
			info.Name = m[1]
		} else if m := methodHeader.FindStringSubmatch(line); m != nil {
			info.Kind = LineMethod
			info.Name = m[1]
		} else if loc := allHeader.FindStringIndex(line); loc != nil {
			info.Kind = LineAll
			info.Rest = line[loc[1]:]
		} else if m := docPrefix.FindStringSubmatchIndex(trimmed); m != nil {
			info.Kind = LineDocstring
			info.Delim = trimmed[m[2]:m[3]]
			info.Rest = trimmed[m[1]:]
		}
	}
	return info
}

// IndentWidth returns the width of line's leading whitespace. Tabs advance
// to the next multiple of TabWidth.
func IndentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += TabWidth - width%TabWidth
		case '\f':
			width = 0
		default:
			return width
		}
	}
	return width
}

// HeaderComplete reports whether a (possibly joined) class or def header has
// reached its terminating colon: a ':' outside brackets and string literals.
func HeaderComplete(header string) bool {
	depth := 0
	var quote rune
	for _, r := range header {
		if quote != 0 {
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '\'', '"':
			quote = r
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '#':
			return false
		case ':':
			if depth <= 0 {
				return true
			}
		}
	}
	return false
}

// StripComment removes a trailing '#' comment from one physical line. A '#'
// inside a string literal is kept.
func StripComment(line string) string {
	var quote rune
	for i, r := range line {
		if quote != 0 {
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '\'', '"':
			quote = r
		case '#':
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return line
}

// BracketDepth returns the net bracket nesting change across text, ignoring
// brackets inside string literals.
func BracketDepth(text string) int {
	depth := 0
	var quote rune
	for _, r := range text {
		if quote != 0 {
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '\'', '"':
			quote = r
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '#':
			return depth
		}
	}
	return depth
}
