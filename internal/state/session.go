package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Session identifies this viewer instance on the wire. Re-shared feed
// messages carry the site id and a lamport sequence so downstream
// viewers can ignore stale or echoed updates.
type Session struct {
	siteID  string
	lamport uint64
}

func NewSession() *Session {
	return &Session{siteID: uuid.NewString()}
}

// SiteID returns the stable id of this viewer instance.
func (s *Session) SiteID() string {
	return s.siteID
}

// NextSeq returns the next outgoing message sequence number.
func (s *Session) NextSeq() uint64 {
	return atomic.AddUint64(&s.lamport, 1)
}

// Observe advances the sequence past one seen from another site.
func (s *Session) Observe(seq uint64) {
	for {
		cur := atomic.LoadUint64(&s.lamport)
		if seq <= cur {
			return
		}
		if atomic.CompareAndSwapUint64(&s.lamport, cur, seq) {
			return
		}
	}
}
