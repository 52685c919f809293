package topdown

import (
	"errors"
	"testing"
)

type recordingSink struct {
	calls []IPCParentFinality
}

func (r *recordingSink) ParentFinalityCommitted(height BlockHeight, blockHashHex string) {
	r.calls = append(r.calls, IPCParentFinality{Height: height})
}

func TestSetNewFinality_RejectsMismatchedPrevious(t *testing.T) {
	s := newTestState(t, 100, 0)
	wrong := &IPCParentFinality{Height: 999, BlockHash: hashOf(0xee)}

	err := s.SetNewFinality(IPCParentFinality{Height: 101, BlockHash: hashOf(1)}, wrong)
	if !errors.Is(err, ErrFinalityMismatch) {
		t.Fatalf("SetNewFinality with wrong previous = %v; want ErrFinalityMismatch", err)
	}
	if s.LastCommittedFinality().Height != 100 {
		t.Error("a rejected commit must not change last committed finality")
	}
}

func TestSetNewFinality_PrunesBelowButKeepsCommittedHeight(t *testing.T) {
	sink := &recordingSink{}
	s, err := NewFinalityState(Config{}, 0, &IPCParentFinality{Height: 100, BlockHash: hashOf(0)}, sink)
	if err != nil {
		t.Fatalf("NewFinalityState failed: %v", err)
	}
	for h := BlockHeight(101); h <= 105; h++ {
		if err := s.NewParentView(h, filledPayload(byte(h-100))); err != nil {
			t.Fatalf("NewParentView(%d) failed: %v", h, err)
		}
	}

	previous := s.LastCommittedFinality()
	newFinality := IPCParentFinality{Height: 103, BlockHash: hashOf(3)}
	if err := s.SetNewFinality(newFinality, previous); err != nil {
		t.Fatalf("SetNewFinality failed: %v", err)
	}

	if got := s.LastCommittedFinality(); got == nil || got.Height != 103 {
		t.Fatalf("LastCommittedFinality() = %+v; want height 103", got)
	}
	if _, ok := s.BlockHashAtHeight(102); ok {
		t.Error("height 102 should have been pruned")
	}
	if _, ok := s.BlockHashAtHeight(103); !ok {
		t.Error("height 103 itself must survive pruning (I3)")
	}
	if _, ok := s.BlockHashAtHeight(104); !ok {
		t.Error("height 104 is above the committed height and must survive")
	}

	if len(sink.calls) != 1 || sink.calls[0].Height != 103 {
		t.Errorf("event sink recorded %+v; want exactly one call for height 103", sink.calls)
	}
}

func TestSetNewSealedFinality(t *testing.T) {
	s := newTestState(t, 100, 0)
	if err := s.NewParentView(101, filledPayload(1)); err != nil {
		t.Fatalf("NewParentView(101) failed: %v", err)
	}

	sealed, err := s.SealedProposalAtHeight(101)
	if err != nil || sealed == nil {
		t.Fatalf("SealedProposalAtHeight(101) = %+v, %v", sealed, err)
	}

	previous := s.LastCommittedFinality()
	if err := s.SetNewSealedFinality(sealed, previous); err != nil {
		t.Fatalf("SetNewSealedFinality failed: %v", err)
	}
	if s.LastCommittedFinality().Height != 101 {
		t.Error("SetNewSealedFinality should commit sealed.Finality()")
	}
}

func TestReset_ClearsCacheAndBypassesPreviousCheck(t *testing.T) {
	s := newTestState(t, 100, 0)
	if err := s.NewParentView(101, filledPayload(1)); err != nil {
		t.Fatalf("NewParentView(101) failed: %v", err)
	}

	s.Reset(IPCParentFinality{Height: 500, BlockHash: hashOf(0x55)})

	if s.LastCommittedFinality().Height != 500 {
		t.Error("Reset should force last committed finality")
	}
	if s.CachedBlocks() != 0 {
		t.Error("Reset should clear the cache")
	}
}
