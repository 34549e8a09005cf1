package export

import (
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"FlowScope/internal/flow"
	"FlowScope/internal/geom"
	"FlowScope/internal/state"
)

// pdfScale converts diagram units to millimetres on the page.
const pdfScale = 3.0

const (
	plateW      = 14.0 / pdfScale
	plateH      = 24.0 / pdfScale
	connectorR  = 4.0 / pdfScale
	badgeW      = 120.0 / pdfScale
	badgeH      = 44.0 / pdfScale
	badgeTextDX = 6.0 / pdfScale
)

// ExportPDF renders a snapshot of the diagram to a PDF file, drawing
// the same four collections the live scene holds plus the badges.
func ExportPDF(path string, snap state.Snapshot) error {
	d := flow.Flatten(snap.Arrows, snap.APPositions)

	p := gofpdf.New("L", "mm", "A4", "")
	p.AddPage()
	p.SetFont("Helvetica", "B", 8)

	drawStartPlates(p, d)
	drawArrows(p, d)
	drawConnectors(p, d)
	drawFeet(p, d)
	drawBadges(p, snap.AccessPoints)

	return p.OutputFileAndClose(path)
}

func mm(v float64) float64 {
	return v / pdfScale
}

func drawStartPlates(p *gofpdf.Fpdf, d flow.Diagram) {
	p.SetFillColor(92, 100, 112)
	for _, key := range sortedKeys(d.StartPlates) {
		pos := d.StartPlates[key]
		p.Rect(mm(pos.X)-plateW/2, mm(pos.Y)-plateH/2, plateW, plateH, "F")
	}
}

func drawArrows(p *gofpdf.Fpdf, d flow.Diagram) {
	p.SetDrawColor(110, 116, 125)
	p.SetLineWidth(0.5)
	for _, key := range sortedKeys(d.Arrows) {
		a := d.Arrows[key]
		for i := 1; i < len(a.Points); i++ {
			p.Line(mm(a.Points[i-1].X), mm(a.Points[i-1].Y), mm(a.Points[i].X), mm(a.Points[i].Y))
		}
		if a.Handle != nil {
			drawPolygon(p, geom.HandleOutline(*a.Handle))
		}
	}
}

func drawConnectors(p *gofpdf.Fpdf, d flow.Diagram) {
	p.SetFillColor(110, 116, 125)
	for _, key := range sortedKeys(d.Connectors) {
		pos := d.Connectors[key]
		p.Circle(mm(pos.X), mm(pos.Y), connectorR, "F")
	}
}

func drawFeet(p *gofpdf.Fpdf, d flow.Diagram) {
	p.SetDrawColor(150, 155, 162)
	p.SetLineWidth(0.25)
	for _, key := range sortedKeys(d.Feet) {
		f := d.Feet[key]
		p.Line(mm(f.From.X), mm(f.From.Y), mm(f.To.X), mm(f.To.Y))
	}
}

func drawBadges(p *gofpdf.Fpdf, accessPts map[string]flow.AccessPointMeta) {
	p.SetDrawColor(60, 64, 72)
	p.SetLineWidth(0.3)
	p.SetTextColor(30, 33, 38)

	for _, id := range sortedKeys(accessPts) {
		meta := accessPts[id]
		x, y := mm(meta.Position.X), mm(meta.Position.Y)
		p.Rect(x, y, badgeW, badgeH, "D")

		title := string(meta.L4Protocol)
		if meta.L4Protocol.HasPort() {
			title = fmt.Sprintf("%d/%s", meta.Port, meta.L4Protocol)
		}
		p.Text(x+badgeTextDX, y+badgeH/2, title)
	}
}

func drawPolygon(p *gofpdf.Fpdf, outline []geom.Vec2) {
	if len(outline) < 2 {
		return
	}
	points := make([]gofpdf.PointType, 0, len(outline))
	for _, v := range outline {
		points = append(points, gofpdf.PointType{X: mm(v.X), Y: mm(v.Y)})
	}
	p.Polygon(points, "D")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
