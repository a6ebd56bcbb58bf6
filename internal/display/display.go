// Package display renders search results, classes and context trees for the
// terminal using colorstring markup.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/colorstring"
	"github.com/mvp-joe/jones/internal/chapter"
	"github.com/mvp-joe/jones/internal/extractors"
	"github.com/mvp-joe/jones/internal/hierarchy"
	"github.com/mvp-joe/jones/internal/navigation"
)

// NotFoundMessage is printed when a search or lookup finds nothing.
const NotFoundMessage = "Searched class was not found in project"

// Printer writes colorized output to a writer. Only the printer's own
// labels pass through colorstring; names, paths and docstrings are written
// as-is so text such as "[bold]" in a docstring is never interpreted.
type Printer struct {
	w     io.Writer
	color colorstring.Colorize
}

// NewPrinter creates a printer writing to w. When color is false plain text
// is written.
func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{
		w: w,
		color: colorstring.Colorize{
			Colors:  colorstring.DefaultColors,
			Disable: !color,
		},
	}
}

// paint wraps text in the named color followed by a reset.
func (p *Printer) paint(color, text string) string {
	if p.color.Disable {
		return text
	}
	return p.color.Color("["+color+"]") + text + p.color.Color("[reset]")
}

func (p *Printer) println(parts ...string) {
	fmt.Fprintln(p.w, strings.Join(parts, ""))
}

// NotFound prints the not-found message.
func (p *Printer) NotFound() {
	p.println(p.paint("green", "Output"), ": ", p.paint("yellow", NotFoundMessage))
}

// Matches prints one ":: name -> path" line per match under a header.
func (p *Printer) Matches(matches []navigation.ClassMatch) {
	if len(matches) == 0 {
		p.NotFound()
		return
	}

	p.println("> [", p.paint("cyan", "FOUND MATCHES"), "]")
	for _, m := range matches {
		p.println(":: ", p.paint("yellow", strings.ReplaceAll(m.Name, "\r", "")), " -> ", p.paint("magenta", m.Path))
	}
}

// Class prints a class with its docstring, bases and method signatures.
func (p *Printer) Class(class *extractors.PythonClass) {
	p.println("# Class :: [", p.paint("cyan", class.Name), "]")
	p.println(p.paint("yellow", class.Docstring))
	p.println("* inherit -> ", p.paint("green", strings.Join(class.Inheritance, ", ")))
	fmt.Fprintln(p.w)
	p.println("# Methods")
	p.println("-------")

	for _, method := range class.Methods {
		p.println(":: [", p.paint("yellow", method.Name), "] -> ", p.paint("cyan", method.Output))
		for _, param := range method.Parameters {
			p.println("  * ", p.paint("magenta", param.Name), ": ", p.paint("green", param.Type))
		}
	}
}

// Tree prints every context of tree, one per line, indented by depth. Spans
// are shown as (start:end); nodes left open print "open". __all__ nodes list
// their exported names.
func (p *Printer) Tree(tree *chapter.Tree) {
	indent := chapter.NewIndent()

	var render func(n chapter.Node)
	render = func(n chapter.Node) {
		for _, child := range n.Children() {
			p.println(indent.Value(), p.describe(child))
			indent.Increase()
			render(child)
			indent.Decrease()
		}
	}

	p.println(p.paint("dim", chapter.RootName))
	indent.Increase()
	render(tree.Root())
}

func (p *Printer) describe(n chapter.Node) string {
	location := "open"
	if span, ok := n.Location(); ok {
		location = fmt.Sprintf("%d:%d", span.Start, span.End)
	}

	var b strings.Builder
	switch n.Kind() {
	case chapter.KindClass:
		b.WriteString(p.paint("cyan", "class") + " " + n.Name())
	case chapter.KindMethod:
		b.WriteString(p.paint("yellow", "def") + " " + n.Name())
	case chapter.KindAll:
		b.WriteString(p.paint("green", n.Kind().String()) + " " + n.Name())
	default:
		b.WriteString(p.paint("green", n.Kind().String()))
	}
	b.WriteString(" " + p.paint("dim", "("+location+")"))

	if v, ok := n.Value(); ok {
		var names []string
		if n.Kind() == chapter.KindAll {
			names = extractors.AllNames(v)
		}
		if len(names) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(names, ", "))
		} else {
			fmt.Fprintf(&b, " %q", v)
		}
	}
	if (n.Kind() == chapter.KindClass || n.Kind() == chapter.KindMethod) && !n.IsPublic() {
		b.WriteString(" " + p.paint("red", "private"))
	}
	return b.String()
}

// Hierarchy prints base followed by its subclasses, indented by depth.
func (p *Printer) Hierarchy(base *extractors.PythonClass, subclasses []hierarchy.Relative) {
	p.println(p.paint("cyan", base.Name), " -> ", p.paint("magenta", base.Path))
	if len(subclasses) == 0 {
		p.println("  (no subclasses)")
		return
	}
	for _, sub := range subclasses {
		p.println(strings.Repeat("  ", sub.Depth),
			":: ", p.paint("yellow", sub.Class.Name),
			" (", strings.Join(sub.Class.Inheritance, ", "), ") -> ",
			p.paint("magenta", sub.Class.Path))
	}
}
