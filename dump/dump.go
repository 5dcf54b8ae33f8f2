// Package dump renders tag trees as indented, optionally colored text.
// The output is a debug aid for humans, not a parseable encoding.
package dump

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/tagmap-io/tagmap/tag"
)

// Option controls rendering.
type Option func(*printer)

// WithColor forces coloring on or off. Without it, color is enabled only
// when the writer is a terminal.
func WithColor(on bool) Option {
	return func(p *printer) {
		p.useColor = on
	}
}

// WithIndent sets the per-level indent string (default two spaces).
func WithIndent(indent string) Option {
	return func(p *printer) {
		p.indent = indent
	}
}

// Dump writes a human-readable rendering of the tree rooted at n.
func Dump(w io.Writer, n *tag.Node, opts ...Option) error {
	return newPrinter(w, opts).print(n, 0)
}

// Sdump returns the rendering as a string, uncolored unless forced.
func Sdump(n *tag.Node, opts ...Option) string {
	var sb strings.Builder
	if err := Dump(&sb, n, opts...); err != nil {
		return ""
	}
	return sb.String()
}

type sprintf func(format string, a ...interface{}) string

type printer struct {
	w        io.Writer
	indent   string
	useColor bool

	kind  sprintf
	name  sprintf
	value sprintf
}

func newPrinter(w io.Writer, opts []Option) *printer {
	p := &printer{
		w:        w,
		indent:   "  ",
		useColor: isTerminal(w),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.useColor {
		p.kind = color.RGB(74, 92, 138).SprintfFunc()
		p.name = color.RGB(196, 96, 16).SprintfFunc()
		p.value = color.RGB(128, 216, 236).SprintfFunc()
	} else {
		p.kind = fmt.Sprintf
		p.name = fmt.Sprintf
		p.value = fmt.Sprintf
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *printer) print(n *tag.Node, depth int) error {
	if n == nil {
		_, err := fmt.Fprintln(p.w, "<nil>")
		return err
	}
	head := p.kind("%s", n.Kind.String())
	if n.Name != "" {
		head += p.name("(%q)", n.Name)
	}
	if _, err := fmt.Fprintf(p.w, "%s%s: %s\n",
		strings.Repeat(p.indent, depth), head, p.value("%s", payload(n))); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := p.print(c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func payload(n *tag.Node) string {
	switch n.Kind {
	case tag.KindByte, tag.KindShort, tag.KindInt, tag.KindLong:
		return strconv.FormatInt(n.Int, 10)
	case tag.KindFloat, tag.KindDouble:
		return strconv.FormatFloat(n.Float, 'g', -1, 64)
	case tag.KindString:
		return strconv.Quote(n.Str)
	case tag.KindByteArray:
		return fmt.Sprintf("%d bytes", len(n.Bytes))
	case tag.KindIntArray:
		parts := make([]string, len(n.Ints))
		for i, x := range n.Ints {
			parts[i] = strconv.FormatInt(int64(x), 10)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case tag.KindList, tag.KindCompound:
		if n.Len() == 1 {
			return "1 entry"
		}
		return fmt.Sprintf("%d entries", n.Len())
	}
	return "<invalid>"
}
