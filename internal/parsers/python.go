package parsers

import (
	"context"
	"os"
	"strings"

	"github.com/mvp-joe/jones/internal/chapter"
	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// PythonParser builds context trees for Python source using tree-sitter-python.
type PythonParser struct {
	*treeSitterParser
}

// NewPythonParser creates a new Python parser.
func NewPythonParser() *PythonParser {
	lang := sitter.NewLanguage(python.Language())
	return &PythonParser{
		treeSitterParser: newTreeSitterParser(lang, "python"),
	}
}

// ParseFile reads and parses a Python source file.
func (p *PythonParser) ParseFile(ctx context.Context, filePath string) (*chapter.Tree, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return p.Parse(ctx, source)
}

// Parse builds the context tree of source. Class and function definitions
// become Class and Method nodes, string expression statements opened with
// triple quotes become Docstring nodes and __all__ assignments become All
// nodes. Spans start at the beginning of the definition's line.
func (p *PythonParser) Parse(ctx context.Context, source []byte) (*chapter.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree, err := p.parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	b := chapter.NewBuilder()
	v := &pythonVisitor{source: source, builder: b}
	v.visitChildren(tree.RootNode(), chapter.RootID)
	return b.Freeze(), nil
}

type pythonVisitor struct {
	source  []byte
	builder *chapter.Builder
}

func (v *pythonVisitor) visitChildren(node *sitter.Node, parent chapter.NodeID) {
	for i := 0; i < int(node.ChildCount()); i++ {
		v.visit(node.Child(uint(i)), parent)
	}
}

func (v *pythonVisitor) visit(node *sitter.Node, parent chapter.NodeID) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "class_definition":
		v.definition(node, parent, chapter.KindClass)
	case "function_definition":
		v.definition(node, parent, chapter.KindMethod)
	case "expression_statement":
		v.statement(node, parent)
	default:
		v.visitChildren(node, parent)
	}
}

// definition opens a Class or Method node and descends into its body.
func (v *pythonVisitor) definition(node *sitter.Node, parent chapter.NodeID, kind chapter.Kind) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		v.visitChildren(node, parent)
		return
	}

	name := extractNodeText(nameNode, v.source)
	id := v.open(name, kind, node, parent)
	if body := node.ChildByFieldName("body"); body != nil {
		v.visitChildren(body, id)
	}
}

func (v *pythonVisitor) statement(node *sitter.Node, parent chapter.NodeID) {
	first := node.Child(0)
	if first == nil {
		return
	}

	switch first.Kind() {
	case "string":
		body, ok := docstringBody(extractNodeText(first, v.source))
		if !ok {
			return
		}
		id := v.open("", chapter.KindDocstring, node, parent)
		v.builder.AppendValue(id, chapter.DocstringValue(body))
	case "assignment", "augmented_assignment":
		left := first.ChildByFieldName("left")
		right := first.ChildByFieldName("right")
		if left == nil || right == nil || extractNodeText(left, v.source) != chapter.AllName {
			return
		}
		id := v.open(chapter.AllName, chapter.KindAll, node, parent)
		v.builder.AppendValue(id, trimLines(extractNodeText(right, v.source)))
	}
}

func (v *pythonVisitor) open(name string, kind chapter.Kind, node *sitter.Node, parent chapter.NodeID) chapter.NodeID {
	id := v.builder.NewNode(name, kind, lineStart(node), chapter.IsPublicName(name))
	v.builder.Attach(parent, id)
	v.builder.SetLocation(id, int(node.EndByte()))
	return id
}

// docstringBody strips the prefix and triple-quote delimiters of a string
// literal. It reports false for strings not opened with triple quotes.
func docstringBody(literal string) (string, bool) {
	text := strings.TrimLeft(literal, "rRuUbBfF")
	for _, delim := range []string{`"""`, `'''`} {
		if strings.HasPrefix(text, delim) {
			text = strings.TrimPrefix(text, delim)
			return strings.TrimSuffix(text, delim), true
		}
	}
	return "", false
}
