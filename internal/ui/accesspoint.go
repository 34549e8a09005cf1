package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"FlowScope/internal/flow"
	"FlowScope/internal/geom"
)

const (
	apWidth     = float32(120)
	apHeight    = float32(44)
	apDotRadius = float32(5)
	apPadding   = float32(8)
)

var (
	apBackground = color.NRGBA{R: 36, G: 40, B: 48, A: 255}
	apTitleColor = color.NRGBA{R: 235, G: 238, B: 242, A: 255}
	apL7Color    = color.NRGBA{R: 150, G: 158, B: 170, A: 255}

	verdictForwardedColor = color.NRGBA{R: 80, G: 200, B: 120, A: 255}
	verdictDroppedColor   = color.NRGBA{R: 220, G: 80, B: 80, A: 255}
	verdictIdleColor      = color.NRGBA{R: 130, G: 136, B: 146, A: 255}
)

// AccessPoint renders one protocol/port badge. Its connector anchor is
// reported through OnAnchor whenever layout establishes or moves it;
// the diagram state feeds those positions back into the feet geometry.
type AccessPoint struct {
	widget.BaseWidget

	id   string
	meta flow.AccessPointMeta

	// OnAnchor receives the badge's connector anchor in diagram
	// coordinates. Never called while the position is unchanged.
	OnAnchor func(id string, pos geom.Vec2)

	lastAnchor geom.Vec2
	hasAnchor  bool
}

func NewAccessPoint(id string, meta flow.AccessPointMeta, onAnchor func(string, geom.Vec2)) *AccessPoint {
	ap := &AccessPoint{id: id, meta: meta, OnAnchor: onAnchor}
	ap.ExtendBaseWidget(ap)
	return ap
}

// ID returns the access point id this badge renders.
func (ap *AccessPoint) ID() string {
	return ap.id
}

// SetMeta updates the badge contents and placement, then re-reports the
// anchor if it moved.
func (ap *AccessPoint) SetMeta(meta flow.AccessPointMeta) {
	ap.meta = meta
	ap.Move(fyne.NewPos(float32(meta.Position.X), float32(meta.Position.Y)))
	ap.Refresh()
	ap.reportAnchor()
}

// Anchor returns the connector anchor in diagram coordinates: the
// centre of the badge's left-edge dot.
func (ap *AccessPoint) Anchor() geom.Vec2 {
	pos := ap.Position()
	return geom.V(
		float64(pos.X)+float64(apPadding+apDotRadius),
		float64(pos.Y)+float64(apHeight/2),
	)
}

func (ap *AccessPoint) reportAnchor() {
	anchor := ap.Anchor()
	if ap.hasAnchor && anchor == ap.lastAnchor {
		return
	}
	ap.lastAnchor = anchor
	ap.hasAnchor = true
	if ap.OnAnchor != nil {
		ap.OnAnchor(ap.id, anchor)
	}
}

// apTitle formats the badge's main label. ICMP has no port semantics,
// so those badges show the protocol alone.
func apTitle(meta flow.AccessPointMeta) string {
	if !meta.L4Protocol.HasPort() {
		return string(meta.L4Protocol)
	}
	return fmt.Sprintf("%d/%s", meta.Port, meta.L4Protocol)
}

// apL7Label returns the application protocol label, or "" when it is
// unset or the Unknown sentinel.
func apL7Label(meta flow.AccessPointMeta) string {
	if meta.L7Protocol == "" || meta.L7Protocol == flow.L7Unknown {
		return ""
	}
	return meta.L7Protocol
}

// verdictColor picks the dot tint: any drop wins over forwarded.
func verdictColor(verdicts []flow.Verdict) color.Color {
	tint := color.Color(verdictIdleColor)
	for _, v := range verdicts {
		switch v {
		case flow.VerdictDropped:
			return verdictDroppedColor
		case flow.VerdictForwarded:
			tint = verdictForwardedColor
		}
	}
	return tint
}

func (ap *AccessPoint) CreateRenderer() fyne.WidgetRenderer {
	r := &accessPointRenderer{ap: ap}
	r.background = canvas.NewRectangle(apBackground)
	r.background.CornerRadius = 6

	r.dot = canvas.NewCircle(verdictColor(ap.meta.Verdicts))

	r.title = canvas.NewText(apTitle(ap.meta), apTitleColor)
	r.title.TextSize = 13
	r.title.TextStyle = fyne.TextStyle{Bold: true}

	r.l7 = canvas.NewText(apL7Label(ap.meta), apL7Color)
	r.l7.TextSize = 11

	return r
}

type accessPointRenderer struct {
	ap         *AccessPoint
	background *canvas.Rectangle
	dot        *canvas.Circle
	title      *canvas.Text
	l7         *canvas.Text
}

func (r *accessPointRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{r.background, r.dot, r.title}
	if r.l7.Text != "" {
		objects = append(objects, r.l7)
	}
	return objects
}

func (r *accessPointRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	r.dot.Resize(fyne.NewSize(apDotRadius*2, apDotRadius*2))
	r.dot.Move(fyne.NewPos(apPadding, size.Height/2-apDotRadius))

	textX := apPadding + apDotRadius*2 + apPadding
	if r.l7.Text == "" {
		r.title.Move(fyne.NewPos(textX, size.Height/2-9))
	} else {
		r.title.Move(fyne.NewPos(textX, size.Height/2-17))
		r.l7.Move(fyne.NewPos(textX, size.Height/2+1))
	}

	r.ap.reportAnchor()
}

func (r *accessPointRenderer) MinSize() fyne.Size {
	return fyne.NewSize(apWidth, apHeight)
}

func (r *accessPointRenderer) Refresh() {
	r.dot.FillColor = verdictColor(r.ap.meta.Verdicts)
	r.title.Text = apTitle(r.ap.meta)
	r.l7.Text = apL7Label(r.ap.meta)
	canvas.Refresh(r.ap)
}

func (r *accessPointRenderer) Destroy() {}
