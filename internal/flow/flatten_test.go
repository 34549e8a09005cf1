package flow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"FlowScope/internal/geom"
)

func sampleTopology() map[string]SenderArrows {
	return map[string]SenderArrows{
		"S": {
			StartPoint: geom.V(0, 0),
			Arrows: map[string]ConnectorArrow{
				"R": {
					Points: []geom.Vec2{geom.V(50, 0), geom.V(100, 0)},
					Connector: Connector{
						Position:       geom.V(100, 0),
						AccessPointIDs: []string{"A"},
					},
				},
			},
		},
	}
}

func TestFlattenFeetWithKnownPosition(t *testing.T) {
	positions := map[string]geom.Vec2{"A": geom.V(120, 10)}
	d := Flatten(sampleTopology(), positions)

	require.Len(t, d.Feet, 1)
	foot, ok := d.Feet["S -> R -> A"]
	require.True(t, ok, "expected foot keyed by sender, receiver and access point")
	require.Equal(t, geom.V(100, 0), foot.From)
	require.Equal(t, geom.V(120, 10), foot.To)
}

func TestFlattenFeetWithUnknownPosition(t *testing.T) {
	d := Flatten(sampleTopology(), nil)

	require.Empty(t, d.Feet, "unknown access point position must be skipped silently")
	require.Len(t, d.StartPlates, 1)
	require.Len(t, d.Arrows, 1)
	require.Len(t, d.Connectors, 1)
}

func TestFlattenArrowPoints(t *testing.T) {
	d := Flatten(sampleTopology(), nil)

	arrow, ok := d.Arrows["S -> R"]
	require.True(t, ok)
	require.Equal(t, []geom.Vec2{geom.V(0, 0), geom.V(50, 0), geom.V(100, 0)}, arrow.Points,
		"start point must be prepended to the connector waypoints")
	require.NotNil(t, arrow.Handle)
	require.Equal(t, geom.V(75, 0), arrow.Handle.Mid())
}

func TestFlattenShortArrowHasNoHandle(t *testing.T) {
	topo := map[string]SenderArrows{
		"S": {
			StartPoint: geom.V(0, 0),
			Arrows: map[string]ConnectorArrow{
				"R": {
					Points:    []geom.Vec2{geom.V(10, 0)},
					Connector: Connector{Position: geom.V(10, 0)},
				},
			},
		},
	}
	d := Flatten(topo, nil)
	require.Nil(t, d.Arrows["S -> R"].Handle)
}

func TestFlattenIdempotent(t *testing.T) {
	topo := sampleTopology()
	positions := map[string]geom.Vec2{"A": geom.V(120, 10)}

	a := Flatten(topo, positions)
	b := Flatten(topo, positions)

	require.Equal(t, a, b, "same input must flatten to identical collections")
}

func TestFlattenRemovedSender(t *testing.T) {
	topo := sampleTopology()
	topo["T"] = SenderArrows{
		StartPoint: geom.V(0, 100),
		Arrows: map[string]ConnectorArrow{
			"R": {
				Points: []geom.Vec2{geom.V(40, 100), geom.V(90, 100)},
				Connector: Connector{
					Position:       geom.V(90, 100),
					AccessPointIDs: []string{"A"},
				},
			},
		},
	}
	positions := map[string]geom.Vec2{"A": geom.V(120, 10)}

	before := Flatten(topo, positions)
	require.Contains(t, before.StartPlates, "T")
	require.Contains(t, before.Arrows, "T -> R")
	require.Contains(t, before.Feet, "T -> R -> A")

	delete(topo, "T")
	after := Flatten(topo, positions)
	require.NotContains(t, after.StartPlates, "T")
	require.NotContains(t, after.Arrows, "T -> R")
	require.NotContains(t, after.Connectors, "T -> R")
	require.NotContains(t, after.Feet, "T -> R -> A")
}

func TestHasPort(t *testing.T) {
	require.True(t, TCP.HasPort())
	require.True(t, UDP.HasPort())
	require.False(t, ICMPv4.HasPort())
	require.False(t, ICMPv6.HasPort())
}
