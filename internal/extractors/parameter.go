package extractors

import (
	"regexp"
	"strings"
)

var (
	argSeparator  = regexp.MustCompile(`,\s`)
	typeSeparator = regexp.MustCompile(`:\s`)
)

// Parameters returns the arguments of a method header with their annotated
// types. Unannotated arguments get DefaultType.
func Parameters(header string) []Parameter {
	args, ok := HeaderArguments(header)
	if !ok {
		return nil
	}

	var params []Parameter
	for _, arg := range argSeparator.Split(strings.TrimSpace(args), -1) {
		parts := typeSeparator.Split(arg, 2)
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}
		typ := DefaultType
		if len(parts) == 2 {
			typ = strings.TrimSpace(parts[1])
		}
		params = append(params, Parameter{Name: name, Type: typ})
	}
	return params
}

// HeaderArguments returns the text between a header's first '(' and its
// matching ')', with bracketed commas marked by MarkCommasForSplit. It
// reports false when the header has no arguments.
func HeaderArguments(header string) (string, bool) {
	open := strings.IndexByte(header, '(')
	if open < 0 {
		return "", false
	}

	depth := 0
	end := len(header)
	for i := open; i < len(header); i++ {
		switch header[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 {
			end = i
			break
		}
	}

	args := header[open+1 : end]
	if strings.TrimSpace(args) == "" {
		return "", false
	}
	return MarkCommasForSplit(args), true
}

// MarkCommasForSplit drops the character following each comma nested inside
// brackets, so "Dict[str, int]" survives a split on ", ".
func MarkCommasForSplit(args string) string {
	var b strings.Builder
	b.Grow(len(args))

	depth := 0
	skip := false
	for _, r := range args {
		if skip {
			skip = false
			if r == ' ' || r == '\t' {
				continue
			}
		}
		switch r {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			if depth > 0 {
				depth--
			}
		case ',':
			skip = depth > 0
		}
		b.WriteRune(r)
	}
	return b.String()
}
