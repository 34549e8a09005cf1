package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"FlowScope/internal/flow"
	"FlowScope/internal/geom"
)

const (
	plateWidth      = float32(14)
	plateHeight     = float32(24)
	connectorRadius = float32(4)
	arrowStroke     = float32(2)
	feetStroke      = float32(1)
	handleStroke    = float32(1.5)
)

var (
	plateColor     = color.NRGBA{R: 92, G: 100, B: 112, A: 255}
	arrowColor     = color.NRGBA{R: 172, G: 177, B: 184, A: 255}
	connectorColor = color.NRGBA{R: 172, G: 177, B: 184, A: 255}
	feetColor      = color.NRGBA{R: 172, G: 177, B: 184, A: 160}
	handleColor    = color.NRGBA{R: 130, G: 136, B: 146, A: 255}
)

// ArrowsRenderer maintains the arrow overlay as four layered groups:
// start plates, arrows, connectors and feet, each keyed and reconciled
// independently. It is the only mutator of its subtree; feeding it a
// new diagram rebuilds the flat collections wholesale while the canvas
// objects persist and are patched in place.
type ArrowsRenderer struct {
	widget.BaseWidget

	plateGroup     *fyne.Container
	arrowGroup     *fyne.Container
	connectorGroup *fyne.Container
	feetGroup      *fyne.Container
	root           *fyne.Container

	plates     map[string]*canvas.Rectangle
	arrows     map[string]*fyne.Container
	connectors map[string]*canvas.Circle
	feet       map[string]*canvas.Line
}

func NewArrowsRenderer() *ArrowsRenderer {
	r := &ArrowsRenderer{
		plateGroup:     container.NewWithoutLayout(),
		arrowGroup:     container.NewWithoutLayout(),
		connectorGroup: container.NewWithoutLayout(),
		feetGroup:      container.NewWithoutLayout(),
		plates:         make(map[string]*canvas.Rectangle),
		arrows:         make(map[string]*fyne.Container),
		connectors:     make(map[string]*canvas.Circle),
		feet:           make(map[string]*canvas.Line),
	}
	r.root = container.NewWithoutLayout(r.plateGroup, r.arrowGroup, r.connectorGroup, r.feetGroup)
	r.ExtendBaseWidget(r)
	return r
}

// SetDiagram reconciles the scene against freshly flattened collections.
// Group order is fixed: plates, arrows, connectors, feet.
func (r *ArrowsRenderer) SetDiagram(d flow.Diagram) {
	reconcileKeyed(r.plates, d.StartPlates,
		func(_ string, pos geom.Vec2) *canvas.Rectangle {
			plate := canvas.NewRectangle(plateColor)
			plate.CornerRadius = 3
			placePlate(plate, pos)
			r.plateGroup.Add(plate)
			return plate
		},
		func(plate *canvas.Rectangle, pos geom.Vec2) {
			placePlate(plate, pos)
		},
		func(plate *canvas.Rectangle) {
			r.plateGroup.Remove(plate)
		},
	)

	reconcileKeyed(r.arrows, d.Arrows,
		func(_ string, a flow.Arrow) *fyne.Container {
			node := container.NewWithoutLayout()
			rebuildArrow(node, a)
			r.arrowGroup.Add(node)
			return node
		},
		func(node *fyne.Container, a flow.Arrow) {
			rebuildArrow(node, a)
		},
		func(node *fyne.Container) {
			r.arrowGroup.Remove(node)
		},
	)

	reconcileKeyed(r.connectors, d.Connectors,
		func(_ string, pos geom.Vec2) *canvas.Circle {
			dot := canvas.NewCircle(connectorColor)
			placeConnector(dot, pos)
			r.connectorGroup.Add(dot)
			return dot
		},
		func(dot *canvas.Circle, pos geom.Vec2) {
			placeConnector(dot, pos)
		},
		func(dot *canvas.Circle) {
			r.connectorGroup.Remove(dot)
		},
	)

	reconcileKeyed(r.feet, d.Feet,
		func(_ string, f flow.Foot) *canvas.Line {
			line := newStrokeLine(feetColor, feetStroke, f.From, f.To)
			r.feetGroup.Add(line)
			return line
		},
		func(line *canvas.Line, f flow.Foot) {
			line.Position1 = toPos(f.From)
			line.Position2 = toPos(f.To)
		},
		func(line *canvas.Line) {
			r.feetGroup.Remove(line)
		},
	)

	r.root.Refresh()
}

// Keys returns the current key sets of the four retained collections,
// in group order.
func (r *ArrowsRenderer) Keys() (plates, arrows, connectors, feet []string) {
	for k := range r.plates {
		plates = append(plates, k)
	}
	for k := range r.arrows {
		arrows = append(arrows, k)
	}
	for k := range r.connectors {
		connectors = append(connectors, k)
	}
	for k := range r.feet {
		feet = append(feet, k)
	}
	return
}

func (r *ArrowsRenderer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(r.root)
}

// rebuildArrow repopulates one arrow node with its polyline segments
// and, when present, the closed handle outline. The node container
// itself persists so reconciliation keeps its identity.
func rebuildArrow(node *fyne.Container, a flow.Arrow) {
	objects := make([]fyne.CanvasObject, 0, len(a.Points))
	for i := 1; i < len(a.Points); i++ {
		objects = append(objects, newStrokeLine(arrowColor, arrowStroke, a.Points[i-1], a.Points[i]))
	}
	if a.Handle != nil {
		outline := geom.HandleOutline(*a.Handle)
		for i := 1; i < len(outline); i++ {
			objects = append(objects, newStrokeLine(handleColor, handleStroke, outline[i-1], outline[i]))
		}
	}
	node.Objects = objects
	node.Refresh()
}

func placePlate(plate *canvas.Rectangle, pos geom.Vec2) {
	plate.Resize(fyne.NewSize(plateWidth, plateHeight))
	plate.Move(fyne.NewPos(
		float32(pos.X)-plateWidth/2,
		float32(pos.Y)-plateHeight/2,
	))
}

func placeConnector(dot *canvas.Circle, pos geom.Vec2) {
	dot.Resize(fyne.NewSize(connectorRadius*2, connectorRadius*2))
	dot.Move(fyne.NewPos(
		float32(pos.X)-connectorRadius,
		float32(pos.Y)-connectorRadius,
	))
}

func newStrokeLine(col color.Color, stroke float32, a, b geom.Vec2) *canvas.Line {
	line := canvas.NewLine(col)
	line.StrokeWidth = stroke
	line.Position1 = toPos(a)
	line.Position2 = toPos(b)
	return line
}

func toPos(v geom.Vec2) fyne.Position {
	return fyne.NewPos(float32(v.X), float32(v.Y))
}
