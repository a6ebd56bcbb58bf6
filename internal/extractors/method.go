package extractors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mvp-joe/jones/internal/chapter"
)

var (
	// ErrNotMethodHeader is returned when a line does not start with def.
	ErrNotMethodHeader = errors.New("not a method header")

	// ErrNoOutputType is returned when a header has no return annotation.
	ErrNoOutputType = errors.New("output type not found")
)

var nonWord = regexp.MustCompile(`\W+`)

// MethodName returns the identifier following def in a method header.
func MethodName(header string) (string, error) {
	header = strings.TrimSpace(header)
	header = strings.TrimPrefix(header, "async ")
	tokens := nonWord.Split(strings.TrimSpace(header), -1)
	if len(tokens) < 2 || tokens[0] != "def" || tokens[1] == "" {
		return "", ErrNotMethodHeader
	}
	return tokens[1], nil
}

// MethodOutput returns the annotated return type of a method header.
func MethodOutput(header string) (string, error) {
	parts := strings.Split(strings.TrimSpace(header), " -> ")
	if len(parts) == 1 {
		return "", ErrNoOutputType
	}
	return strings.ReplaceAll(strings.TrimSpace(parts[1]), ":", ""), nil
}

// ParseMethod builds a Method from a complete (possibly reassembled) header.
func ParseMethod(header string) (Method, error) {
	name, err := MethodName(header)
	if err != nil {
		return Method{}, fmt.Errorf("parse method %q: %w", header, err)
	}

	output, err := MethodOutput(header)
	if err != nil {
		output = DefaultType
	}

	return Method{
		Name:       name,
		Parameters: Parameters(header),
		Output:     output,
	}, nil
}

// ReassembleHeader joins the physical lines of a class or def header that
// starts at lines[0], dropping any trailing comments. It returns the
// single-line header and the number of lines consumed.
func ReassembleHeader(lines []string) (string, int) {
	if len(lines) == 0 {
		return "", 0
	}
	header := strings.TrimSpace(chapter.StripComment(lines[0]))
	n := 1
	for !chapter.HeaderComplete(header) && n < len(lines) {
		header += " " + strings.TrimSpace(chapter.StripComment(lines[n]))
		n++
	}
	return header, n
}
