package topdown

import (
	"reflect"
	"testing"
)

func TestQuerySurface_NullMissingFilledDistinction(t *testing.T) {
	s := newTestState(t, 100, 0)

	filled := &ParentViewPayload{
		BlockHash:        hashOf(1),
		CrossMessages:    []CrossMessage{{Nonce: 1}, {Nonce: 2}},
		ValidatorChanges: []ValidatorChangeRequest{{ConfigurationNumber: 1}},
	}
	if err := s.NewParentView(101, filled); err != nil {
		t.Fatalf("NewParentView(101) failed: %v", err)
	}
	if err := s.NewParentView(102, nil); err != nil {
		t.Fatalf("NewParentView(102) failed: %v", err)
	}

	// Filled: exact sequences fed in, round-tripped.
	msgs, ok := s.TopDownMsgs(101)
	if !ok || !reflect.DeepEqual(msgs, filled.CrossMessages) {
		t.Errorf("TopDownMsgs(101) = %v, %v; want %v, true", msgs, ok, filled.CrossMessages)
	}
	changes, ok := s.ValidatorChanges(101)
	if !ok || !reflect.DeepEqual(changes, filled.ValidatorChanges) {
		t.Errorf("ValidatorChanges(101) = %v, %v; want %v, true", changes, ok, filled.ValidatorChanges)
	}

	// Null: present but empty.
	msgs, ok = s.TopDownMsgs(102)
	if !ok || len(msgs) != 0 {
		t.Errorf("TopDownMsgs(102) on a null round = %v, %v; want empty slice, true", msgs, ok)
	}
	changes, ok = s.ValidatorChanges(102)
	if !ok || len(changes) != 0 {
		t.Errorf("ValidatorChanges(102) on a null round = %v, %v; want empty slice, true", changes, ok)
	}

	// Missing: never observed.
	if _, ok := s.TopDownMsgs(999); ok {
		t.Error("TopDownMsgs(999) on a never-observed height should report not-found")
	}
	if _, ok := s.ValidatorChanges(999); ok {
		t.Error("ValidatorChanges(999) on a never-observed height should report not-found")
	}
}

func TestQuerySurface_BlockHashAtHeight(t *testing.T) {
	s := newTestState(t, 100, 0xaa)
	if err := s.NewParentView(101, filledPayload(1)); err != nil {
		t.Fatalf("NewParentView(101) failed: %v", err)
	}
	if err := s.NewParentView(102, nil); err != nil {
		t.Fatalf("NewParentView(102) failed: %v", err)
	}

	if hash, ok := s.BlockHashAtHeight(100); !ok || !reflect.DeepEqual(hash, hashOf(0xaa)) {
		t.Errorf("BlockHashAtHeight(100) = %x, %v; want committed hash", hash, ok)
	}
	if hash, ok := s.BlockHashAtHeight(101); !ok || !reflect.DeepEqual(hash, hashOf(1)) {
		t.Errorf("BlockHashAtHeight(101) = %x, %v; want filled hash", hash, ok)
	}
	if _, ok := s.BlockHashAtHeight(102); ok {
		t.Error("BlockHashAtHeight(102) on a null round should report not-found")
	}
}

func TestQuerySurface_LatestHeightFallsBackToCommitted(t *testing.T) {
	s := newTestState(t, 100, 0)
	if h, ok := s.LatestHeight(); !ok || h != 100 {
		t.Errorf("LatestHeight() on an empty cache = %d, %v; want 100, true", h, ok)
	}
	if err := s.NewParentView(101, filledPayload(1)); err != nil {
		t.Fatalf("NewParentView(101) failed: %v", err)
	}
	if h, ok := s.LatestHeight(); !ok || h != 101 {
		t.Errorf("LatestHeight() after an insert = %d, %v; want 101, true", h, ok)
	}
}

func TestQuerySurface_FirstNonNullBlock(t *testing.T) {
	s := newTestState(t, 100, 0)
	if err := s.NewParentView(101, nil); err != nil {
		t.Fatalf("NewParentView(101) failed: %v", err)
	}
	if err := s.NewParentView(102, filledPayload(2)); err != nil {
		t.Fatalf("NewParentView(102) failed: %v", err)
	}
	if err := s.NewParentView(103, nil); err != nil {
		t.Fatalf("NewParentView(103) failed: %v", err)
	}

	if h, ok := s.FirstNonNullBlock(103); !ok || h != 102 {
		t.Errorf("FirstNonNullBlock(103) = %d, %v; want 102, true", h, ok)
	}
	// Only a null round has been observed at or below 101, and the
	// committed height itself was never re-ingested into this process's
	// cache, so there is nothing filled to find.
	if _, ok := s.FirstNonNullBlock(101); ok {
		t.Error("FirstNonNullBlock(101) should report not-found when only a null round is cached")
	}
}

func TestQuerySurface_FirstNonNullBlock_FindsRetainedCommittedEntry(t *testing.T) {
	s := newTestState(t, 100, 0xaa)
	if err := s.NewParentView(101, filledPayload(1)); err != nil {
		t.Fatalf("NewParentView(101) failed: %v", err)
	}
	previous := s.LastCommittedFinality()
	if err := s.SetNewFinality(IPCParentFinality{Height: 101, BlockHash: hashOf(1)}, previous); err != nil {
		t.Fatalf("SetNewFinality failed: %v", err)
	}
	if err := s.NewParentView(102, nil); err != nil {
		t.Fatalf("NewParentView(102) failed: %v", err)
	}

	// 101 is the just-committed height, retained in cache by I3, and is
	// filled, so it must be found even though 102 is null.
	if h, ok := s.FirstNonNullBlock(102); !ok || h != 101 {
		t.Errorf("FirstNonNullBlock(102) = %d, %v; want 101, true", h, ok)
	}
}

func TestGenesisEpoch(t *testing.T) {
	s, err := NewFinalityState(Config{}, 42, nil, nil)
	if err != nil {
		t.Fatalf("NewFinalityState failed: %v", err)
	}
	if s.GenesisEpoch() != 42 {
		t.Errorf("GenesisEpoch() = %d; want 42", s.GenesisEpoch())
	}
}
