package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/oy3o/jce"
)

var diagCommand = &command{
	name:    "diag",
	args:    "[flags] [file]",
	summary: "print the wire layout of JCE input as an indented tree",
	run:     runDiag,
}

// maxDiagBytes is how much of a SimpleList payload diag prints.
const maxDiagBytes = 32

func runDiag(e *env, args []string) error {
	var (
		in    inputFlags
		color string
	)
	fs := pflag.NewFlagSet("diag", pflag.ContinueOnError)
	in.register(fs)
	fs.StringVar(&color, "color", "auto", "colour output: auto, always or never")
	if done, err := parseFlags(e, fs, args); done || err != nil {
		return err
	}
	path, err := fileArg(fs)
	if err != nil {
		return err
	}
	data, err := in.read(e, path)
	if err != nil {
		return err
	}

	p := &diagPrinter{
		w:        e.stdout,
		r:        in.reader(data),
		maxDepth: in.maxDepth,
	}
	switch color {
	case "always":
		r := lipgloss.NewRenderer(e.stdout)
		r.SetColorProfile(termenv.ANSI256)
		p.styles = newDiagStyles(r)
	case "auto":
		if isTerminal(e.stdout) {
			p.styles = newDiagStyles(lipgloss.NewRenderer(e.stdout))
		}
	case "never":
	default:
		return fmt.Errorf("unknown --color %q", color)
	}

	for p.ok() && p.r.Count() < int64(len(data)) {
		p.field(0, "")
		if !in.fields {
			break
		}
	}
	if err := p.error(); err != nil {
		return fmt.Errorf("offset %d: %w", p.r.Count(), err)
	}
	if !in.fields && p.r.Count() < int64(len(data)) {
		return fmt.Errorf("%w: %d bytes after the value", jce.ErrTrailingData, int64(len(data))-p.r.Count())
	}
	return nil
}

type diagStyles struct {
	offset, typ, tag, value, role lipgloss.Style
}

func newDiagStyles(r *lipgloss.Renderer) *diagStyles {
	return &diagStyles{
		offset: r.NewStyle().Foreground(lipgloss.Color("8")),
		typ:    r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		tag:    r.NewStyle().Foreground(lipgloss.Color("11")),
		value:  r.NewStyle().Foreground(lipgloss.Color("10")),
		role:   r.NewStyle().Foreground(lipgloss.Color("13")),
	}
}

// diagPrinter walks the input one header at a time, printing each field
// with the offset of its header.
type diagPrinter struct {
	w        io.Writer
	r        *jce.Reader
	styles   *diagStyles // nil prints plain text
	depth    int
	maxDepth int
	err      error
}

func (p *diagPrinter) ok() bool { return p.err == nil && p.r.Err() == nil }

func (p *diagPrinter) error() error {
	if p.err != nil {
		return p.err
	}
	return p.r.Err()
}

func (p *diagPrinter) paint(s lipgloss.Style, text string) string {
	if p.styles == nil || text == "" {
		return text
	}
	return s.Render(text)
}

func (p *diagPrinter) line(off int64, indent int, role string, h jce.Head, detail string) {
	var st diagStyles
	if p.styles != nil {
		st = *p.styles
	}
	var b strings.Builder
	b.WriteString(p.paint(st.offset, fmt.Sprintf("%06x", off)))
	b.WriteString("  ")
	b.WriteString(strings.Repeat("  ", indent))
	if role != "" {
		b.WriteString(p.paint(st.role, role))
		b.WriteByte(' ')
	}
	b.WriteString(p.paint(st.typ, h.Type.String()))
	b.WriteString(p.paint(st.tag, "@"+strconv.Itoa(int(h.Tag))))
	if detail != "" {
		b.WriteByte(' ')
		b.WriteString(p.paint(st.value, detail))
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(p.w, b.String()); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *diagPrinter) field(indent int, role string) {
	off := p.r.Count()
	h := p.r.ReadHead()
	if p.ok() {
		p.value(off, indent, role, h)
	}
}

func (p *diagPrinter) enter() bool {
	if p.depth >= p.maxDepth {
		p.err = fmt.Errorf("%w: limit %d", jce.ErrDepthExceeded, p.maxDepth)
		return false
	}
	p.depth++
	return true
}

func (p *diagPrinter) value(off int64, indent int, role string, h jce.Head) {
	switch h.Type {
	case jce.List, jce.Map:
		if !p.enter() {
			return
		}
		defer func() { p.depth-- }()
		n := p.r.ReadCount()
		if !p.ok() {
			return
		}
		p.line(off, indent, role, h, fmt.Sprintf("(%d)", n))
		for i := 0; i < n && p.ok(); i++ {
			if h.Type == jce.Map {
				p.field(indent+1, "key")
				p.field(indent+1, "val")
			} else {
				p.field(indent+1, "")
			}
		}
	case jce.StructBegin:
		if !p.enter() {
			return
		}
		defer func() { p.depth-- }()
		p.line(off, indent, role, h, "")
		for p.ok() {
			off := p.r.Count()
			f := p.r.ReadHead()
			if !p.ok() {
				p.err = fmt.Errorf("%w: struct opened at offset %d: %w", jce.ErrMissingTerminator, off, p.r.Err())
				return
			}
			if f.Type == jce.StructEnd {
				p.line(off, indent, "", f, "")
				return
			}
			p.value(off, indent+1, "", f)
		}
	default:
		v := p.r.ReadValue(h)
		if p.ok() {
			p.line(off, indent, role, h, scalarText(v))
		}
	}
}

func scalarText(v jce.Value) string {
	switch v.Type {
	case jce.Byte, jce.Short, jce.Int, jce.Long, jce.ZeroTag:
		return strconv.FormatInt(v.Int, 10)
	case jce.Float:
		return strconv.FormatFloat(v.Float, 'g', -1, 32)
	case jce.Double:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case jce.String1, jce.String4:
		return strconv.Quote(v.Str)
	case jce.SimpleList:
		text := fmt.Sprintf("(%d) %s", len(v.Bytes), hex.EncodeToString(v.Bytes[:min(len(v.Bytes), maxDiagBytes)]))
		if len(v.Bytes) > maxDiagBytes {
			text += "…"
		}
		return strings.TrimSpace(text)
	}
	return ""
}
