package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"FlowScope/internal/flow"
	"FlowScope/internal/state"
)

const diagramExtent = float32(4000)

var diagramBackground = color.NRGBA{R: 24, G: 27, B: 33, A: 255}

// DiagramView composes the arrow overlay with the access point badges
// inside one scrollable canvas. It subscribes to the diagram state and
// rebuilds on exactly the two inputs that matter: topology and
// access-point positions.
type DiagramView struct {
	*container.Scroll

	content   *fyne.Container
	state     *state.DiagramState
	arrows    *ArrowsRenderer
	badges    map[string]*AccessPoint
	statusBar *widget.Label
}

func NewDiagramView(st *state.DiagramState) *DiagramView {
	v := &DiagramView{
		state:     st,
		arrows:    NewArrowsRenderer(),
		badges:    make(map[string]*AccessPoint),
		statusBar: widget.NewLabel("Waiting for topology feed"),
	}

	bg := canvas.NewRectangle(diagramBackground)
	bg.Resize(fyne.NewSize(diagramExtent, diagramExtent))

	v.content = container.NewWithoutLayout(bg, v.arrows)
	v.content.Resize(fyne.NewSize(diagramExtent, diagramExtent))
	v.arrows.Resize(fyne.NewSize(diagramExtent, diagramExtent))

	v.Scroll = container.NewScroll(v.content)

	st.Subscribe(v.rebuild)
	return v
}

// StatusBar returns the label fed by SetStatus, for window composition.
func (v *DiagramView) StatusBar() fyne.CanvasObject {
	return v.statusBar
}

// SetStatus updates the status line. Safe to call from any goroutine.
func (v *DiagramView) SetStatus(text string) {
	fyne.Do(func() {
		v.statusBar.SetText(text)
	})
}

// rebuild runs on the UI goroutine; state mutation is marshalled there
// before reaching this subscriber.
func (v *DiagramView) rebuild(c state.Change) {
	if c&state.ChangeTopology != 0 {
		v.reconcileBadges(v.state.Snapshot().AccessPoints)
	}

	// Snapshot after the badge pass: placing badges reports anchors
	// back into the state, and the arrows must see those positions.
	snap := v.state.Snapshot()
	v.arrows.SetDiagram(flow.Flatten(snap.Arrows, snap.APPositions))
}

func (v *DiagramView) reconcileBadges(accessPts map[string]flow.AccessPointMeta) {
	reconcileKeyed(v.badges, accessPts,
		func(id string, meta flow.AccessPointMeta) *AccessPoint {
			ap := NewAccessPoint(id, meta, v.state.SetAccessPointPosition)
			v.content.Add(ap)
			ap.Resize(fyne.NewSize(apWidth, apHeight))
			ap.SetMeta(meta)
			return ap
		},
		func(ap *AccessPoint, meta flow.AccessPointMeta) {
			ap.SetMeta(meta)
		},
		func(ap *AccessPoint) {
			v.content.Remove(ap)
		},
	)
}
