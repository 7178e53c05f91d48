// Package svg serializes drawings to SVG.
//
// The renderer walks a composed drawing.Drawing and emits layered SVG:
// background, sketch strokes (heavy ink), lettering strokes, hatching,
// centerlines, dimensions, callouts, and labels. It writes vector paths
// only; perturbation has already happened upstream and no geometry is
// recomputed here.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/timcondit/kintsugi/pkg/drawing"
	"github.com/timcondit/kintsugi/pkg/geom"
)

const arrowSize = 6.0

// Option customizes a render pass.
type Option func(*renderer)

// WithIDPrefix namespaces generated element ids (clip paths). Needed when
// several rendered drawings are inlined into one HTML document.
func WithIDPrefix(prefix string) Option {
	return func(r *renderer) { r.idPrefix = prefix }
}

// WithBackground overrides the drawing's background fill.
func WithBackground(color string) Option {
	return func(r *renderer) { r.background = color }
}

type renderer struct {
	idPrefix   string
	background string
	clipSeq    int
}

// Render serializes a drawing to SVG bytes.
func Render(d *drawing.Drawing, opts ...Option) []byte {
	r := &renderer{background: d.Background}
	for _, opt := range opts {
		opt(r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" width="%g" height="%g">`+"\n",
		d.Width, d.Height, d.Width, d.Height)
	fmt.Fprintf(&buf, `<rect width="100%%" height="100%%" fill="%s" />`+"\n", r.background)

	for _, path := range d.SketchPaths {
		if pd := pathData(path); pd != "" {
			fmt.Fprintf(&buf, `<path d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" />`+"\n",
				pd, drawing.Palette["ink"], drawing.StrokeHeavy)
		}
	}

	for _, path := range d.TextPaths {
		if pd := pathData(path); pd != "" {
			fmt.Fprintf(&buf, `<path d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round" />`+"\n",
				pd, drawing.Palette["brown"], drawing.StrokeMedium)
		}
	}

	for _, h := range d.Hatches {
		r.renderHatch(&buf, h)
	}
	for _, c := range d.CenterLines {
		renderCenterLine(&buf, c)
	}
	for _, dim := range d.Dimensions {
		renderDimension(&buf, dim)
	}
	for _, c := range d.Callouts {
		renderCallout(&buf, c)
	}
	for _, l := range d.Labels {
		fill := drawing.Palette["amber"]
		if l.Style != "dimension" {
			fill = drawing.Palette["brown"]
		}
		fmt.Fprintf(&buf, `<text x="%.2f" y="%.2f" font-family="serif" font-size="10" fill="%s">%s</text>`+"\n",
			l.X, l.Y, fill, escape(l.Text))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// pathData converts a polyline to an SVG path d attribute.
func pathData(points geom.Polyline) string {
	if len(points) == 0 {
		return ""
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "M %.2f,%.2f", points[0].X, points[0].Y)
	for _, p := range points[1:] {
		fmt.Fprintf(&b, " L %.2f,%.2f", p.X, p.Y)
	}
	return b.String()
}

// arrowHead writes a filled arrow head pointing along angleDeg.
func arrowHead(buf *bytes.Buffer, x, y, angleDeg float64) {
	rad := angleDeg * math.Pi / 180
	b1x := x - arrowSize*math.Cos(rad) + arrowSize*0.4*math.Sin(rad)
	b1y := y - arrowSize*math.Sin(rad) - arrowSize*0.4*math.Cos(rad)
	b2x := x - arrowSize*math.Cos(rad) - arrowSize*0.4*math.Sin(rad)
	b2y := y - arrowSize*math.Sin(rad) + arrowSize*0.4*math.Cos(rad)
	fmt.Fprintf(buf, `<polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s" />`+"\n",
		x, y, b1x, b1y, b2x, b2y, drawing.Palette["amber"])
}

func renderDimension(buf *bytes.Buffer, d drawing.Dimension) {
	dx := d.X2 - d.X1
	dy := d.Y2 - d.Y1
	length := math.Hypot(dx, dy)
	if length < 1 {
		return
	}

	perpX := -dy / length
	perpY := dx / length
	if d.Side == drawing.SideBelow || d.Side == drawing.SideRight {
		perpX, perpY = -perpX, -perpY
	}

	ox := perpX * d.Offset
	oy := perpY * d.Offset

	lx1, ly1 := d.X1+ox, d.Y1+oy
	lx2, ly2 := d.X2+ox, d.Y2+oy

	const extGap = 2.0
	ex1, ey1 := d.X1+perpX*extGap, d.Y1+perpY*extGap
	ex2, ey2 := d.X2+perpX*extGap, d.Y2+perpY*extGap

	lineAngle := math.Atan2(dy, dx) * 180 / math.Pi

	fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%s" />`+"\n",
		ex1, ey1, lx1, ly1, drawing.Palette["amber"], drawing.StrokeLight)
	fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%s" />`+"\n",
		ex2, ey2, lx2, ly2, drawing.Palette["amber"], drawing.StrokeLight)
	fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%s" />`+"\n",
		lx1, ly1, lx2, ly2, drawing.Palette["amber"], drawing.StrokeMedium)

	arrowHead(buf, lx1, ly1, lineAngle+180)
	arrowHead(buf, lx2, ly2, lineAngle)

	if d.Label == "" {
		return
	}

	midX := (lx1 + lx2) / 2
	midY := (ly1 + ly2) / 2
	labelX := midX + perpX*8
	labelY := midY + perpY*8

	// Backing plate so the label stays readable over hatching.
	fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="36" height="14" rx="2" fill="%s" opacity="0.85" />`+"\n",
		labelX-18, labelY-7, drawing.Palette["cream"])
	fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" text-anchor="middle" font-family="serif" font-size="10" fill="%s">%s</text>`+"\n",
		labelX, labelY+4, drawing.Palette["amber"], escape(d.Label))
}

// circledDigits are the callout bubble glyphs for numbers 1-9.
var circledDigits = []rune("①②③④⑤⑥⑦⑧⑨")

func renderCallout(buf *bytes.Buffer, c drawing.Callout) {
	label := fmt.Sprintf("%d", c.Number)
	if c.Number >= 1 && c.Number <= 9 {
		label = string(circledDigits[c.Number-1])
	}
	fmt.Fprintf(buf, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="%s" />`+"\n",
		c.X, c.Y, c.Radius, drawing.Palette["cream"], drawing.Palette["amber"], drawing.StrokeMedium)
	fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" text-anchor="middle" font-family="serif" font-size="%.1f" fill="%s">%s</text>`+"\n",
		c.X, c.Y+4.5, c.Radius*1.2, drawing.Palette["amber"], label)
}

func (r *renderer) renderHatch(buf *bytes.Buffer, h drawing.HatchRegion) {
	r.clipSeq++
	clipID := fmt.Sprintf("%shatch-clip-%d", r.idPrefix, r.clipSeq)

	angleRad := h.AngleDeg * math.Pi / 180
	cosA := math.Cos(angleRad)
	sinA := math.Sin(angleRad)

	fmt.Fprintf(buf, `<defs><clipPath id="%s"><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" /></clipPath></defs>`+"\n",
		clipID, h.X, h.Y, h.Width, h.Height)
	fmt.Fprintf(buf, `<g clip-path="url(#%s)" opacity="0.5">`+"\n", clipID)

	diagonal := math.Hypot(h.Width, h.Height)
	for t := -diagonal; t <= diagonal*2; t += h.Spacing {
		cx := h.X + h.Width/2 + t*cosA
		cy := h.Y + h.Height/2 + t*sinA
		lx1 := cx + diagonal*(-sinA)
		ly1 := cy + diagonal*cosA
		lx2 := cx - diagonal*(-sinA)
		ly2 := cy - diagonal*cosA
		fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%s" />`+"\n",
			lx1, ly1, lx2, ly2, drawing.Palette["hatch"], drawing.StrokeLight)
	}

	buf.WriteString("</g>\n")
}

func renderCenterLine(buf *bytes.Buffer, c drawing.CenterLine) {
	fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%s" stroke-dasharray="8,3,2,3" opacity="0.7" />`+"\n",
		c.X1, c.Y1, c.X2, c.Y2, drawing.Palette["amber"], drawing.StrokeLight)
}

// escape XML-escapes text content.
func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
