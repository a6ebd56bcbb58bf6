package chapter

import "strings"

// frame is one open context on the processor's stack.
type frame struct {
	id     NodeID
	kind   Kind
	indent int    // indentation of the line that opened the context
	delim  string // closing delimiter of an open docstring
	depth  int    // bracket depth of an open __all__ list
}

// Processor scans the lines of one Python file and builds its context tree.
// A Processor is single use: ParseModule consumes it.
type Processor struct {
	lines   []string
	starts  []int // byte offset of each line; starts[len(lines)] is past the end
	final   int
	builder *Builder
	stack   []frame

	prevShort      bool
	blankRunClosed bool
}

// Load prepares a processor for the given source lines. Lines carry no
// terminator; each one is assumed to be followed by a single '\n' except the last.
func Load(lines []string) *Processor {
	starts := make([]int, len(lines)+1)
	for i, line := range lines {
		starts[i+1] = starts[i] + len(line) + 1
	}
	final := 0
	if len(lines) > 0 {
		final = starts[len(lines)] - 1
	}
	return &Processor{
		lines:   lines,
		starts:  starts,
		final:   final,
		builder: NewBuilder(),
		stack:   []frame{{id: RootID, kind: KindRoot, indent: -1}},
	}
}

// ParseModule builds the tree for the given lines. It never fails: malformed
// input yields a best-effort tree with every context closed.
func ParseModule(lines []string) *Tree {
	return Load(lines).ParseModule()
}

// ParseSource splits src on '\n' and parses it.
func ParseSource(src string) *Tree {
	return ParseModule(strings.Split(src, "\n"))
}

// ParseModule runs the scan and returns the frozen Root tree.
func (p *Processor) ParseModule() *Tree {
	for i := 0; i < len(p.lines); {
		i = p.step(i)
	}
	for len(p.stack) > 1 {
		p.pop(p.final)
	}
	return p.builder.Freeze()
}

func (p *Processor) top() frame {
	return p.stack[len(p.stack)-1]
}

// lineEnd is the offset just past line i's terminator, clamped to the source length.
func (p *Processor) lineEnd(i int) int {
	if end := p.starts[i+1]; end < p.final {
		return end
	}
	return p.final
}

// step handles line i and returns the index of the next unconsumed line.
func (p *Processor) step(i int) int {
	line := p.lines[i]
	short := len(line) <= 1

	switch p.top().kind {
	case KindDocstring:
		p.continueDocstring(i)
		p.prevShort = short
		return i + 1
	case KindAll:
		p.continueAll(i)
		p.prevShort = short
		return i + 1
	}

	info := Classify(line)
	start := p.starts[i]

	switch info.Kind {
	case LineBlank:
		// Two consecutive near-empty lines end the innermost block. This is a
		// heuristic and can close a body early when it contains blank pairs.
		if short && p.prevShort && !p.blankRunClosed {
			if k := p.top().kind; k == KindClass || k == KindMethod {
				p.pop(start)
			}
			p.blankRunClosed = true
		}
		p.prevShort = short
		return i + 1
	case LineComment:
		p.prevShort = short
		p.blankRunClosed = false
		return i + 1
	}
	p.blankRunClosed = false
	p.prevShort = short

	p.closeDedented(info.Indent, start)

	switch info.Kind {
	case LineDocstring:
		p.openDocstring(i, info)
	case LineClass:
		return p.openBlock(i, info, KindClass)
	case LineMethod:
		return p.openBlock(i, info, KindMethod)
	case LineAll:
		p.openAll(i, info)
	}
	return i + 1
}

// closeDedented pops every context that opened at or beyond indent.
func (p *Processor) closeDedented(indent, at int) {
	for len(p.stack) > 1 && p.top().indent >= indent {
		p.pop(at)
	}
}

func (p *Processor) push(f frame) {
	p.stack = append(p.stack, f)
}

func (p *Processor) pop(at int) {
	f := p.top()
	p.stack = p.stack[:len(p.stack)-1]
	if f.kind == KindDocstring {
		p.finishDocstring(f.id)
	}
	p.builder.SetLocation(f.id, at)
}

func (p *Processor) attach(name string, kind Kind, start int) NodeID {
	id := p.builder.NewNode(name, kind, start, IsPublicName(name))
	p.builder.Attach(p.top().id, id)
	return id
}

// openBlock opens a class or method context. Headers that span several
// physical lines are consumed up to their terminating colon.
func (p *Processor) openBlock(i int, info LineInfo, kind Kind) int {
	last := p.headerEnd(i)
	id := p.attach(info.Name, kind, p.starts[i])
	p.push(frame{id: id, kind: kind, indent: info.Indent})
	p.prevShort = len(p.lines[last]) <= 1
	return last + 1
}

// headerEnd returns the index of the last physical line of the header that
// starts at line i. Comments are cut from each line before joining. Reassembly
// stops early at end of input or at a line that is itself a class or def header.
func (p *Processor) headerEnd(i int) int {
	header := strings.TrimSpace(StripComment(p.lines[i]))
	j := i
	for !HeaderComplete(header) && j+1 < len(p.lines) {
		next := Classify(p.lines[j+1])
		if next.Kind == LineClass || next.Kind == LineMethod {
			break
		}
		j++
		header += " " + strings.TrimSpace(StripComment(p.lines[j]))
	}
	return j
}

func (p *Processor) openDocstring(i int, info LineInfo) {
	id := p.attach("", KindDocstring, p.starts[i])
	if end := strings.Index(info.Rest, info.Delim); end >= 0 {
		p.appendPiece(id, strings.TrimSpace(info.Rest[:end]))
		p.finishDocstring(id)
		p.builder.SetLocation(id, p.lineEnd(i))
		return
	}
	p.appendPiece(id, strings.TrimSpace(info.Rest))
	p.push(frame{id: id, kind: KindDocstring, indent: info.Indent, delim: info.Delim})
}

func (p *Processor) continueDocstring(i int) {
	f := p.top()
	line := p.lines[i]
	if end := strings.Index(line, f.delim); end >= 0 {
		p.appendPiece(f.id, strings.TrimSpace(line[:end]))
		p.pop(p.lineEnd(i))
		return
	}
	p.appendPiece(f.id, strings.TrimSpace(line))
}

// appendPiece adds one docstring line to the node value, newline separated.
// Leading empty pieces are dropped.
func (p *Processor) appendPiece(id NodeID, piece string) {
	n := &p.builder.nodes[id]
	switch {
	case !n.hasValue && piece == "":
	case !n.hasValue:
		p.builder.AppendValue(id, piece)
	default:
		p.builder.AppendValue(id, "\n"+piece)
	}
}

// finishDocstring trims trailing empty pieces and guarantees a value.
func (p *Processor) finishDocstring(id NodeID) {
	n := &p.builder.nodes[id]
	if !n.hasValue {
		p.builder.AppendValue(id, "")
		return
	}
	n.value = strings.TrimRight(n.value, "\n")
}

// DocstringValue normalizes the text between a docstring's delimiters the way
// the processor stores it: lines trimmed, leading and trailing empty lines removed.
func DocstringValue(body string) string {
	var b strings.Builder
	started := false
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if !started && line == "" {
			continue
		}
		if started {
			b.WriteByte('\n')
		}
		started = true
		b.WriteString(line)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (p *Processor) openAll(i int, info LineInfo) {
	id := p.attach(AllName, KindAll, p.starts[i])
	p.builder.AppendValue(id, strings.TrimSpace(info.Rest))
	depth := BracketDepth(info.Rest)
	if depth <= 0 {
		p.builder.SetLocation(id, p.lineEnd(i))
		return
	}
	p.push(frame{id: id, kind: KindAll, indent: info.Indent, depth: depth})
}

func (p *Processor) continueAll(i int) {
	f := &p.stack[len(p.stack)-1]
	line := p.lines[i]
	f.depth += BracketDepth(line)
	p.builder.AppendValue(f.id, "\n"+strings.TrimSpace(line))
	if f.depth <= 0 {
		p.pop(p.lineEnd(i))
	}
}
