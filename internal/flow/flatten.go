package flow

import (
	"fmt"

	"FlowScope/internal/geom"
)

// Arrow is one derived sender-to-receiver path: the sender start point
// prepended to the connector waypoints, plus the optional grip handle.
type Arrow struct {
	Points []geom.Vec2
	Handle *geom.Segment
}

// Foot is one derived connector-to-access-point stub.
type Foot struct {
	From geom.Vec2
	To   geom.Vec2
}

// Diagram holds the four flat keyed collections derived from the
// topology inputs. Keys are unique within each collection; the scene
// reconciliation relies on that.
type Diagram struct {
	StartPlates map[string]geom.Vec2
	Arrows      map[string]Arrow
	Connectors  map[string]geom.Vec2
	Feet        map[string]Foot
}

// ArrowKey identifies a sender-to-receiver arrow and its connector.
func ArrowKey(senderID, receiverID string) string {
	return fmt.Sprintf("%s -> %s", senderID, receiverID)
}

// FootKey identifies one connector-to-access-point stub.
func FootKey(senderID, receiverID, apID string) string {
	return fmt.Sprintf("%s -> %s -> %s", senderID, receiverID, apID)
}

// Flatten rebuilds the four derived collections from scratch. It never
// mutates its inputs and never fails: an access point with no known
// position simply contributes no foot.
func Flatten(arrows map[string]SenderArrows, apPositions map[string]geom.Vec2) Diagram {
	d := Diagram{
		StartPlates: make(map[string]geom.Vec2, len(arrows)),
		Arrows:      make(map[string]Arrow),
		Connectors:  make(map[string]geom.Vec2),
		Feet:        make(map[string]Foot),
	}

	for senderID, sa := range arrows {
		d.StartPlates[senderID] = sa.StartPoint

		for receiverID, ca := range sa.Arrows {
			key := ArrowKey(senderID, receiverID)

			points := make([]geom.Vec2, 0, len(ca.Points)+1)
			points = append(points, sa.StartPoint)
			points = append(points, ca.Points...)

			arrow := Arrow{Points: points}
			if seg, ok := geom.ArrowHandle(points, geom.HandleWidth); ok {
				arrow.Handle = &seg
			}
			d.Arrows[key] = arrow
			d.Connectors[key] = ca.Connector.Position

			for _, apID := range ca.Connector.AccessPointIDs {
				pos, ok := apPositions[apID]
				if !ok {
					// Not laid out yet; the foot appears on a later pass.
					continue
				}
				d.Feet[FootKey(senderID, receiverID, apID)] = Foot{
					From: ca.Connector.Position,
					To:   pos,
				}
			}
		}
	}
	return d
}
