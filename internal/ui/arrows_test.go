package ui

import (
	"sort"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"

	"FlowScope/internal/flow"
	"FlowScope/internal/geom"
)

func testDiagram(withFeet bool) flow.Diagram {
	positions := map[string]geom.Vec2{}
	if withFeet {
		positions["A"] = geom.V(140, 10)
	}
	return flow.Flatten(map[string]flow.SenderArrows{
		"S": {
			StartPoint: geom.V(0, 0),
			Arrows: map[string]flow.ConnectorArrow{
				"R": {
					Points: []geom.Vec2{geom.V(50, 0), geom.V(100, 0)},
					Connector: flow.Connector{
						Position:       geom.V(100, 0),
						AccessPointIDs: []string{"A"},
					},
				},
			},
		},
	}, positions)
}

func sorted(keys []string) []string {
	sort.Strings(keys)
	return keys
}

func TestSetDiagramPopulatesGroups(t *testing.T) {
	test.NewApp()
	r := NewArrowsRenderer()

	r.SetDiagram(testDiagram(true))

	plates, arrows, connectors, feet := r.Keys()
	require.Equal(t, []string{"S"}, plates)
	require.Equal(t, []string{"S -> R"}, arrows)
	require.Equal(t, []string{"S -> R"}, connectors)
	require.Equal(t, []string{"S -> R -> A"}, feet)

	require.Len(t, r.plateGroup.Objects, 1)
	require.Len(t, r.arrowGroup.Objects, 1)
	require.Len(t, r.connectorGroup.Objects, 1)
	require.Len(t, r.feetGroup.Objects, 1)
}

func TestSetDiagramOmitsFeetForUnknownPosition(t *testing.T) {
	test.NewApp()
	r := NewArrowsRenderer()

	r.SetDiagram(testDiagram(false))

	_, _, _, feet := r.Keys()
	require.Empty(t, feet)
	require.Empty(t, r.feetGroup.Objects)
}

func TestSetDiagramPreservesNodeIdentity(t *testing.T) {
	test.NewApp()
	r := NewArrowsRenderer()

	r.SetDiagram(testDiagram(true))
	plate := r.plates["S"]
	arrow := r.arrows["S -> R"]
	dot := r.connectors["S -> R"]

	r.SetDiagram(testDiagram(true))
	require.Same(t, plate, r.plates["S"])
	require.Same(t, arrow, r.arrows["S -> R"])
	require.Same(t, dot, r.connectors["S -> R"])
}

func TestSetDiagramRemovesVanishedSender(t *testing.T) {
	test.NewApp()
	r := NewArrowsRenderer()

	r.SetDiagram(testDiagram(true))
	r.SetDiagram(flow.Flatten(nil, nil))

	plates, arrows, connectors, feet := r.Keys()
	require.Empty(t, plates)
	require.Empty(t, arrows)
	require.Empty(t, connectors)
	require.Empty(t, feet)
	require.Empty(t, r.plateGroup.Objects)
	require.Empty(t, r.arrowGroup.Objects)
	require.Empty(t, r.connectorGroup.Objects)
	require.Empty(t, r.feetGroup.Objects)
}

func TestArrowNodeSegments(t *testing.T) {
	test.NewApp()
	r := NewArrowsRenderer()
	r.SetDiagram(testDiagram(true))

	node := r.arrows["S -> R"]
	require.NotNil(t, node)
	// Two polyline segments plus the closed handle outline.
	outline := geom.HandleOutline(geom.Segment{Start: geom.V(69, 0), End: geom.V(81, 0)})
	require.Len(t, node.Objects, 2+len(outline)-1)
}

func TestSetDiagramIdempotentKeys(t *testing.T) {
	test.NewApp()
	r := NewArrowsRenderer()

	r.SetDiagram(testDiagram(true))
	p1, a1, c1, f1 := r.Keys()
	r.SetDiagram(testDiagram(true))
	p2, a2, c2, f2 := r.Keys()

	require.Equal(t, sorted(p1), sorted(p2))
	require.Equal(t, sorted(a1), sorted(a2))
	require.Equal(t, sorted(c1), sorted(c2))
	require.Equal(t, sorted(f1), sorted(f2))
}
