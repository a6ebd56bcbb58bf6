package chapter

import "strings"

// IndentUnit is the number of columns added or removed per step.
const IndentUnit = 4

// Indent tracks an indentation width together with its whitespace string so
// callers can prefix or compare without rebuilding the string every time.
type Indent struct {
	value  string
	spaces int
}

// NewIndent returns a tracker at width zero.
func NewIndent() *Indent {
	return &Indent{}
}

// Value returns the whitespace string for the current width.
func (i *Indent) Value() string {
	return i.value
}

// Increase adds one indentation unit.
func (i *Indent) Increase() {
	i.spaces += IndentUnit
	i.value += strings.Repeat(" ", IndentUnit)
}

// Decrease removes one indentation unit. It never goes below zero.
func (i *Indent) Decrease() {
	if i.spaces == 0 {
		return
	}
	i.spaces -= IndentUnit
	i.value = i.value[:i.spaces]
}
