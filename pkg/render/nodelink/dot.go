package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flipstack/pkg/core/stack"
)

// Options configures path diagrams.
type Options struct {
	// Mode selects how discs are labeled.
	Mode stack.Mode
	// Detailed draws each stack vertically with its distance from the start.
	Detailed bool
}

// ToDOT converts a path and its flip sequence to Graphviz DOT. moves[i] is
// the prefix index flipped between path[i] and path[i+1]; missing entries
// leave the arrow unlabeled.
func ToDOT(path []stack.Stack, moves []int, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=20, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=14];\n")
	buf.WriteString("\n")

	for i, s := range path {
		attrs := fmtAttrs(i, len(path), fmtLabel(s, i, opts))
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(i), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := 1; i < len(path); i++ {
		if i-1 < len(moves) {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", nodeID(i-1), nodeID(i), flipLabel(moves[i-1]))
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(i-1), nodeID(i))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string { return "s" + strconv.Itoa(i) }

// flipLabel names a move by the number of discs it turns over.
func flipLabel(k int) string { return fmt.Sprintf("flip %d", k+1) }

func fmtLabel(s stack.Stack, step int, opts Options) string {
	if !opts.Detailed {
		return s.Text()
	}
	lines := make([]string, 0, len(s)+1)
	lines = append(lines, fmt.Sprintf("d=%d", step))
	for _, v := range s {
		lines = append(lines, discLabel(v, opts.Mode))
	}
	return strings.Join(lines, "\n")
}

// discLabel marks a burnt disc lying burnt side up with an asterisk.
func discLabel(v int, mode stack.Mode) string {
	if mode == stack.Signed && v < 0 {
		return strconv.Itoa(-v) + "*"
	}
	return strconv.Itoa(v)
}

func fmtAttrs(i, n int, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case i == n-1:
		attrs = append(attrs, "fillcolor=palegreen", "penwidth=2")
	case i == 0:
		attrs = append(attrs, "fillcolor=lightyellow")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// zero-origin viewBox and pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
