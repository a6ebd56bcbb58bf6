package extractors

import (
	"log"
	"strings"

	"github.com/mvp-joe/jones/internal/chapter"
)

// ClassInheritance returns the base classes listed in a class header.
// Keyword arguments such as metaclass=... are not bases and are skipped.
// It returns nil for a header without parentheses.
func ClassInheritance(header string) []string {
	args, ok := HeaderArguments(header)
	if !ok {
		return nil
	}

	var bases []string
	for _, base := range splitTopLevel(args) {
		base = strings.TrimSpace(base)
		if base == "" || isKeywordArgument(base) {
			continue
		}
		bases = append(bases, base)
	}
	return bases
}

// splitTopLevel splits s on commas that are not nested inside brackets.
func splitTopLevel(s string) []string {
	var parts []string
	depth, last := 0, 0
	for i, r := range s {
		switch r {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, s[last:])
}

// isKeywordArgument reports whether arg is name=value at bracket depth zero.
func isKeywordArgument(arg string) bool {
	eq := strings.IndexByte(arg, '=')
	if eq < 0 {
		return false
	}
	return !strings.ContainsAny(arg[:eq], "[({")
}

// ExtractClass builds the PythonClass for a Class node of a tree parsed
// from src. The header gives the bases, each Method child its signature and
// the first Docstring child the documentation.
func ExtractClass(src string, class chapter.Node, path string) PythonClass {
	pc := PythonClass{
		Name:      class.Name(),
		Path:      path,
		Docstring: DefaultType,
	}

	span, ok := class.Location()
	if !ok {
		return pc
	}
	pc.Span = span

	header, _ := ReassembleHeader(spanLines(src, span))
	pc.Inheritance = ClassInheritance(header)

	for _, m := range class.ChildrenOfKind(chapter.KindMethod) {
		ms, ok := m.Location()
		if !ok {
			continue
		}
		header, _ := ReassembleHeader(spanLines(src, ms))
		method, err := ParseMethod(header)
		if err != nil {
			log.Printf("Warning: skipping method %s.%s: %v", class.Name(), m.Name(), err)
			continue
		}
		pc.Methods = append(pc.Methods, method)
	}

	if doc, ok := class.Docstring(); ok {
		pc.Docstring = doc
	}
	return pc
}

func spanLines(src string, span chapter.Span) []string {
	start, end := span.Start, span.End
	if start > len(src) {
		start = len(src)
	}
	if end > len(src) {
		end = len(src)
	}
	return strings.Split(src[start:end], "\n")
}
