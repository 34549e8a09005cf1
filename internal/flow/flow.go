package flow

import "FlowScope/internal/geom"

// L4Protocol is the transport protocol of an access point.
type L4Protocol string

const (
	TCP    L4Protocol = "TCP"
	UDP    L4Protocol = "UDP"
	ICMPv4 L4Protocol = "ICMPv4"
	ICMPv6 L4Protocol = "ICMPv6"
)

// HasPort reports whether the protocol carries port semantics.
// ICMP has none, so its access points render without a port.
func (p L4Protocol) HasPort() bool {
	return p != ICMPv4 && p != ICMPv6
}

// L7Unknown is the sentinel for an unidentified application protocol.
// Access points never show it as a label.
const L7Unknown = "Unknown"

// Verdict is the observed outcome of flows through an access point.
type Verdict string

const (
	VerdictForwarded Verdict = "forwarded"
	VerdictDropped   Verdict = "dropped"
	VerdictAudit     Verdict = "audit"
)

// AccessPointMeta describes one protocol/port endpoint badge, with the
// screen placement supplied by the feed.
type AccessPointMeta struct {
	Port       uint16     `json:"port"`
	L4Protocol L4Protocol `json:"l4_protocol"`
	L7Protocol string     `json:"l7_protocol,omitempty"`
	Verdicts   []Verdict  `json:"verdicts,omitempty"`
	Position   geom.Vec2  `json:"position"`
}

// Connector is the junction where one receiver's arrow fans out toward
// its access points.
type Connector struct {
	Position       geom.Vec2 `json:"position"`
	AccessPointIDs []string  `json:"access_point_ids"`
}

// ConnectorArrow is one receiver's path segment: the waypoints from the
// sender toward the connector, plus the connector itself.
type ConnectorArrow struct {
	Points    []geom.Vec2 `json:"points"`
	Connector Connector   `json:"connector"`
}

// SenderArrows bundles everything drawn for one sender: its start point
// and a connector arrow per receiver id.
type SenderArrows struct {
	StartPoint geom.Vec2                 `json:"start_point"`
	Arrows     map[string]ConnectorArrow `json:"arrows"`
}
