package state

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"FlowScope/internal/flow"
	"FlowScope/internal/geom"
)

// Change says which diagram input a notification is about. Only these
// two inputs ever trigger recomputation downstream.
type Change int

const (
	ChangeTopology Change = 1 << iota
	ChangePositions
)

// DiagramState owns the two rendering inputs: the sender-arrows map
// from the feed, and the access-point positions reported back by the
// laid-out badges. Subscribers are notified synchronously whenever one
// of them actually changes.
type DiagramState struct {
	mu          sync.RWMutex
	arrows      map[string]flow.SenderArrows
	accessPts   map[string]flow.AccessPointMeta
	apPositions map[string]geom.Vec2
	subs        []func(Change)
}

// Snapshot is a consistent copy of the diagram inputs.
type Snapshot struct {
	Arrows       map[string]flow.SenderArrows
	AccessPoints map[string]flow.AccessPointMeta
	APPositions  map[string]geom.Vec2
}

func NewDiagramState() *DiagramState {
	return &DiagramState{
		arrows:      make(map[string]flow.SenderArrows),
		accessPts:   make(map[string]flow.AccessPointMeta),
		apPositions: make(map[string]geom.Vec2),
	}
}

// Subscribe registers a change listener. Listeners run synchronously on
// the mutating goroutine after the state lock is released, so they may
// re-enter the state (Snapshot, SetAccessPointPosition); the no-op
// guard on unchanged positions keeps such re-entry from looping.
func (s *DiagramState) Subscribe(fn func(Change)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *DiagramState) notify(c Change) {
	s.mu.RLock()
	subs := make([]func(Change), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn(c)
	}
}

// SetTopology replaces the sender-arrows map and access-point metadata
// wholesale, as delivered by one feed message.
func (s *DiagramState) SetTopology(arrows map[string]flow.SenderArrows, accessPts map[string]flow.AccessPointMeta) {
	s.mu.Lock()
	s.arrows = copyArrows(arrows)
	s.accessPts = copyAccessPts(accessPts)
	// Positions for access points that vanished are dropped so stale
	// feet cannot survive a topology swap.
	for id := range s.apPositions {
		if _, ok := s.accessPts[id]; !ok {
			delete(s.apPositions, id)
		}
	}
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"senders":      len(arrows),
		"accessPoints": len(accessPts),
	}).Debug("topology replaced")
	s.notify(ChangeTopology)
}

// RemoveSender drops one sender and everything keyed under it.
func (s *DiagramState) RemoveSender(senderID string) {
	s.mu.Lock()
	_, ok := s.arrows[senderID]
	if ok {
		delete(s.arrows, senderID)
	}
	s.mu.Unlock()

	if ok {
		log.WithField("sender", senderID).Debug("sender removed")
		s.notify(ChangeTopology)
	}
}

// SetAccessPointPosition records a badge's reported connector anchor.
// Unchanged positions do not notify, so anchor reports settle instead
// of looping.
func (s *DiagramState) SetAccessPointPosition(apID string, pos geom.Vec2) {
	s.mu.Lock()
	old, ok := s.apPositions[apID]
	if ok && old == pos {
		s.mu.Unlock()
		return
	}
	s.apPositions[apID] = pos
	s.mu.Unlock()

	s.notify(ChangePositions)
}

// Clear empties both inputs.
func (s *DiagramState) Clear() {
	s.mu.Lock()
	s.arrows = make(map[string]flow.SenderArrows)
	s.accessPts = make(map[string]flow.AccessPointMeta)
	s.apPositions = make(map[string]geom.Vec2)
	s.mu.Unlock()

	s.notify(ChangeTopology | ChangePositions)
}

// Snapshot returns copies of the current inputs.
func (s *DiagramState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Arrows:       copyArrows(s.arrows),
		AccessPoints: copyAccessPts(s.accessPts),
		APPositions:  copyPositions(s.apPositions),
	}
}

func copyArrows(in map[string]flow.SenderArrows) map[string]flow.SenderArrows {
	out := make(map[string]flow.SenderArrows, len(in))
	for id, sa := range in {
		arrows := make(map[string]flow.ConnectorArrow, len(sa.Arrows))
		for rid, ca := range sa.Arrows {
			arrows[rid] = ca
		}
		out[id] = flow.SenderArrows{StartPoint: sa.StartPoint, Arrows: arrows}
	}
	return out
}

func copyAccessPts(in map[string]flow.AccessPointMeta) map[string]flow.AccessPointMeta {
	out := make(map[string]flow.AccessPointMeta, len(in))
	for id, m := range in {
		out[id] = m
	}
	return out
}

func copyPositions(in map[string]geom.Vec2) map[string]geom.Vec2 {
	out := make(map[string]geom.Vec2, len(in))
	for id, p := range in {
		out[id] = p
	}
	return out
}
