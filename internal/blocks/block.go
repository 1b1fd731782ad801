package blocks

// Block is one structural unit of translated output. The set of kinds is
// closed: Heading, BulletItem, NumberItem, CodeBlock and Paragraph. Consumers
// switch over the concrete types.
type Block interface {
	isBlock()
}

// Run is a contiguous span of text sharing the same styling.
type Run struct {
	Text string
	Bold bool
	// Link is an absolute URL. Translated markdown never sets it; only
	// synthesized documents do.
	Link string
}

// Heading is a level 1-3 heading.
type Heading struct {
	Level int
	Text  string
}

// BulletItem is a single bulleted list entry.
type BulletItem struct {
	Runs []Run
}

// NumberItem is a single numbered list entry.
type NumberItem struct {
	Runs []Run
}

// CodeBlock is a fenced code block with a normalized language tag.
type CodeBlock struct {
	Language string
	Text     string
}

// Paragraph is a plain paragraph.
type Paragraph struct {
	Runs []Run
}

func (Heading) isBlock()    {}
func (BulletItem) isBlock() {}
func (NumberItem) isBlock() {}
func (CodeBlock) isBlock()  {}
func (Paragraph) isBlock()  {}

// PlainText joins the text of all runs.
func PlainText(runs []Run) string {
	n := 0
	for _, r := range runs {
		n += len(r.Text)
	}
	buf := make([]byte, 0, n)
	for _, r := range runs {
		buf = append(buf, r.Text...)
	}
	return string(buf)
}
