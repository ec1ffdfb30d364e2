package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var homeRef = DocumentRef{ID: "home", Type: DocHomePage}

func seq(keys ...string) Blocks {
	out := make(Blocks, len(keys))
	for i, k := range keys {
		out[i] = Block{Type: TagHero, Key: k}
	}
	return out
}

func TestDocumentStateEditAndConfirm(t *testing.T) {
	var s DocumentState
	s, _ = s.Observe(seq("a"), "r1")

	s, changed := s.ApplyEdit(Edit{Document: homeRef, Rev: "r2", Blocks: seq("a", "b"), HasBlocks: true})
	assert.True(t, changed)
	assert.Equal(t, StatePending, s.State)
	if diff := cmp.Diff(seq("a", "b"), s.Resolve(seq("a"))); diff != "" {
		t.Errorf("pending should resolve to override (-want +got):\n%s", diff)
	}

	s, changed = s.Confirm("stale")
	assert.False(t, changed)
	assert.Equal(t, StatePending, s.State)

	s, changed = s.Confirm("r2")
	assert.True(t, changed)
	assert.Equal(t, StateConfirmed, s.State)
	assert.Equal(t, seq("a", "b"), s.Base)
	assert.Equal(t, seq("z"), s.Resolve(seq("z")))
}

func TestDocumentStateRevert(t *testing.T) {
	var s DocumentState
	s, _ = s.Observe(seq("a"), "r1")
	s, _ = s.ApplyEdit(Edit{Document: homeRef, Rev: "r2", Blocks: seq("x"), HasBlocks: true})

	s, changed := s.Revert()
	assert.True(t, changed)
	assert.Equal(t, StateConfirmed, s.State)
	assert.Equal(t, seq("a"), s.Base)
	assert.Equal(t, "r1", s.BaseRev)

	_, changed = s.Revert()
	assert.False(t, changed)
}

func TestDocumentStateLastEditWins(t *testing.T) {
	var s DocumentState
	s, _ = s.ApplyEdit(Edit{Rev: "r2", Blocks: seq("x"), HasBlocks: true})
	s, _ = s.ApplyEdit(Edit{Rev: "r3", Blocks: seq("y"), HasBlocks: true})
	assert.Equal(t, seq("y"), s.Resolve(nil))
	assert.Equal(t, "r3", s.PendingRev)
}

func TestDocumentStateIgnoresEditsWithoutBlocks(t *testing.T) {
	var s DocumentState
	s, changed := s.ApplyEdit(Edit{Rev: "r2", HasBlocks: false})
	assert.False(t, changed)
	assert.Equal(t, StateConfirmed, s.State)
}

func TestDocumentStateObserveConfirmsMatchingRev(t *testing.T) {
	var s DocumentState
	s, _ = s.ApplyEdit(Edit{Rev: "r2", Blocks: seq("x"), HasBlocks: true})

	s, changed := s.Observe(seq("a"), "r1")
	assert.True(t, changed)
	assert.Equal(t, StatePending, s.State)

	s, changed = s.Observe(seq("x", "server"), "r2")
	assert.True(t, changed)
	assert.Equal(t, StateConfirmed, s.State)
	assert.Equal(t, seq("x", "server"), s.Resolve(seq("x", "server")))
}
