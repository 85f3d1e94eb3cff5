package core

import "sync"

// Pending is the single-slot record for an outstanding yes/no confirmation.
//
// The slot is either idle or armed with a payload carried over from the
// request that asked the question. The very next qualifying message consumes
// the slot through Take, which clears it unconditionally before the answer is
// even interpreted. A failing confirmation handler can never leave the bot
// stuck waiting, and a cleared slot never carries a stale payload into a
// future confirmation.
//
// There is deliberately no timeout: an armed slot stays armed until the next
// qualifying message arrives, however long that takes.
type Pending struct {
	mu       sync.Mutex
	awaiting bool
	payload  interface{}
}

// Arm puts the slot into the awaiting state carrying payload. Arming an
// already armed slot replaces the payload.
func (p *Pending) Arm(payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.awaiting = true
	p.payload = payload
}

// Take consumes the slot. It returns the payload and whether the slot was
// armed, and always leaves the slot idle with the payload cleared.
func (p *Pending) Take() (interface{}, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	payload, armed := p.payload, p.awaiting
	p.awaiting = false
	p.payload = nil
	return payload, armed
}

// Awaiting reports whether a confirmation is outstanding.
func (p *Pending) Awaiting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.awaiting
}
