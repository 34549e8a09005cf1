package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"FlowScope/internal/flow"
	"FlowScope/internal/geom"
	"FlowScope/internal/state"
)

func TestExportPDFWritesFile(t *testing.T) {
	snap := state.Snapshot{
		Arrows: map[string]flow.SenderArrows{
			"S": {
				StartPoint: geom.V(20, 20),
				Arrows: map[string]flow.ConnectorArrow{
					"R": {
						Points: []geom.Vec2{geom.V(120, 20), geom.V(220, 20)},
						Connector: flow.Connector{
							Position:       geom.V(220, 20),
							AccessPointIDs: []string{"A"},
						},
					},
				},
			},
		},
		AccessPoints: map[string]flow.AccessPointMeta{
			"A": {Port: 443, L4Protocol: flow.TCP, Position: geom.V(260, 10)},
			"B": {L4Protocol: flow.ICMPv6, Position: geom.V(260, 80)},
		},
		APPositions: map[string]geom.Vec2{"A": geom.V(260, 30)},
	}

	path := filepath.Join(t.TempDir(), "diagram.pdf")
	require.NoError(t, ExportPDF(path, snap))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	require.Equal(t, "%PDF", string(data[:4]))
}

func TestExportPDFEmptySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, ExportPDF(path, state.Snapshot{}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}
