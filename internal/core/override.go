package core

type OverrideState int

const (
	StateConfirmed OverrideState = iota
	StatePending
)

func (s OverrideState) String() string {
	switch s {
	case StatePending:
		return "pending"
	default:
		return "confirmed"
	}
}

// Edit is an in-progress change reported by the live editing channel.
// HasBlocks is false when the edit touched fields other than the page
// builder; such edits never replace the rendered sequence.
type Edit struct {
	Document  DocumentRef
	Rev       string
	Blocks    Blocks
	HasBlocks bool
}

// DocumentState is the optimistic override state of one document. The zero
// value is a confirmed document with nothing observed yet.
type DocumentState struct {
	State      OverrideState
	Base       Blocks
	BaseRev    string
	Override   Blocks
	PendingRev string
}

// ApplyEdit moves to pending with the edited blocks. A newer edit simply
// replaces an older pending one.
func (s DocumentState) ApplyEdit(e Edit) (DocumentState, bool) {
	if !e.HasBlocks {
		return s, false
	}
	return DocumentState{
		State:      StatePending,
		Base:       s.Base,
		BaseRev:    s.BaseRev,
		Override:   e.Blocks,
		PendingRev: e.Rev,
	}, true
}

// Confirm promotes the pending override when rev names it. Stale
// confirmations are ignored.
func (s DocumentState) Confirm(rev string) (DocumentState, bool) {
	if s.State != StatePending || rev != s.PendingRev {
		return s, false
	}
	return DocumentState{
		State:   StateConfirmed,
		Base:    s.Override,
		BaseRev: rev,
	}, true
}

func (s DocumentState) Revert() (DocumentState, bool) {
	if s.State != StatePending {
		return s, false
	}
	return DocumentState{
		State:   StateConfirmed,
		Base:    s.Base,
		BaseRev: s.BaseRev,
	}, true
}

// Observe records a copy fetched from the content source as the last known
// good sequence. A fetched revision equal to the pending one means the edit
// landed, so the state settles on the fetched copy.
func (s DocumentState) Observe(fetched Blocks, rev string) (DocumentState, bool) {
	if s.State == StatePending && rev != "" && rev == s.PendingRev {
		return DocumentState{
			State:   StateConfirmed,
			Base:    fetched,
			BaseRev: rev,
		}, true
	}
	changed := rev != s.BaseRev
	s.Base = fetched
	s.BaseRev = rev
	return s, changed
}

func (s DocumentState) Resolve(fetched Blocks) Blocks {
	if s.State == StatePending {
		return s.Override
	}
	return fetched
}
