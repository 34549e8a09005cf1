package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"FlowScope/internal/flow"
	"FlowScope/internal/geom"
)

func testTopology() (map[string]flow.SenderArrows, map[string]flow.AccessPointMeta) {
	arrows := map[string]flow.SenderArrows{
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
	}
	aps := map[string]flow.AccessPointMeta{
		"A": {Port: 443, L4Protocol: flow.TCP, Position: geom.V(140, 0)},
	}
	return arrows, aps
}

func TestSubscribeTopologyChange(t *testing.T) {
	s := NewDiagramState()
	var got []Change
	s.Subscribe(func(c Change) { got = append(got, c) })

	arrows, aps := testTopology()
	s.SetTopology(arrows, aps)

	require.Equal(t, []Change{ChangeTopology}, got)
	snap := s.Snapshot()
	require.Len(t, snap.Arrows, 1)
	require.Len(t, snap.AccessPoints, 1)
}

func TestPositionChangeNotifiesOnce(t *testing.T) {
	s := NewDiagramState()
	arrows, aps := testTopology()
	s.SetTopology(arrows, aps)

	var count int
	s.Subscribe(func(c Change) {
		require.Equal(t, ChangePositions, c)
		count++
	})

	s.SetAccessPointPosition("A", geom.V(140, 5))
	s.SetAccessPointPosition("A", geom.V(140, 5)) // no-op
	require.Equal(t, 1, count, "unchanged position must not notify")

	s.SetAccessPointPosition("A", geom.V(141, 5))
	require.Equal(t, 2, count)
}

func TestTopologySwapDropsStalePositions(t *testing.T) {
	s := NewDiagramState()
	arrows, aps := testTopology()
	s.SetTopology(arrows, aps)
	s.SetAccessPointPosition("A", geom.V(140, 5))

	s.SetTopology(map[string]flow.SenderArrows{}, map[string]flow.AccessPointMeta{})
	snap := s.Snapshot()
	require.Empty(t, snap.APPositions, "positions of removed access points must be dropped")
}

func TestRemoveSender(t *testing.T) {
	s := NewDiagramState()
	arrows, aps := testTopology()
	s.SetTopology(arrows, aps)

	var notified int
	s.Subscribe(func(Change) { notified++ })

	s.RemoveSender("S")
	require.Equal(t, 1, notified)
	require.Empty(t, s.Snapshot().Arrows)

	s.RemoveSender("S") // already gone
	require.Equal(t, 1, notified, "removing an absent sender must not notify")
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewDiagramState()
	arrows, aps := testTopology()
	s.SetTopology(arrows, aps)

	snap := s.Snapshot()
	delete(snap.Arrows, "S")
	require.Len(t, s.Snapshot().Arrows, 1, "mutating a snapshot must not touch the state")
}

func TestSubscriberMayReenterState(t *testing.T) {
	s := NewDiagramState()
	arrows, aps := testTopology()

	// Listeners run with no lock held, so reading a snapshot and
	// reporting a position from inside a notification must work.
	s.Subscribe(func(c Change) {
		_ = s.Snapshot()
		if c&ChangeTopology != 0 {
			s.SetAccessPointPosition("A", geom.V(1, 2))
		}
	})

	s.SetTopology(arrows, aps)
	require.Equal(t, geom.V(1, 2), s.Snapshot().APPositions["A"])
}

func TestSessionSequence(t *testing.T) {
	sess := NewSession()
	require.NotEmpty(t, sess.SiteID())

	require.Equal(t, uint64(1), sess.NextSeq())
	sess.Observe(10)
	require.Equal(t, uint64(11), sess.NextSeq())
	sess.Observe(5) // older, ignored
	require.Equal(t, uint64(12), sess.NextSeq())
}
