// Package extractors pulls method signatures, base classes and docstrings out
// of single Python header lines and small code blocks.
package extractors

import "github.com/mvp-joe/jones/internal/chapter"

// DefaultType is reported for parameters and outputs without an annotation.
const DefaultType = "None"

// Parameter is one argument of a Python method.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Method is a method found inside a Python class.
type Method struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
	Output     string      `json:"output"`
}

// PythonClass is the extracted view of one class definition.
type PythonClass struct {
	Name        string       `json:"name"`
	Path        string       `json:"path"`
	Methods     []Method     `json:"methods"`
	Inheritance []string     `json:"inheritance"`
	Docstring   string       `json:"docstring"`
	Span        chapter.Span `json:"span"`
}
