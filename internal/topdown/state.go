package topdown

import "sync"

// FinalityState is the transactional state container: a SequentialKeyCache
// of parent-chain observations plus the last committed finality. It has no
// STM runtime underneath it — instead every exported method that reads or
// writes the cache or the last committed finality does so under the single
// mutex (SetNewFinality releases it only before calling the event sink;
// GenesisEpoch reads an immutable field and takes no lock), so each one is
// its own transaction: the
// read-modify-write it performs is atomic and isolated from every other
// method the way the design notes ask for, without requiring conflict
// detection or retry because there is only ever one writer lock to win.
//
// This mirrors the teacher's own State and Mempool types, which guard their
// maps with a single sync.RWMutex and never hold it across I/O.
type FinalityState struct {
	mu sync.RWMutex

	config       Config
	genesisEpoch BlockHeight

	cache         *SequentialKeyCache[*ParentViewPayload]
	lastCommitted *IPCParentFinality

	sink EventSink
}

// NewFinalityState constructs a FinalityState at the given genesis epoch,
// optionally seeded with a committed finality restored from durable storage
// by the caller. The cache always starts empty; it is the caller's job to
// re-observe parent heights above the seeded finality after a restart.
func NewFinalityState(cfg Config, genesisEpoch BlockHeight, seeded *IPCParentFinality, sink EventSink) (*FinalityState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = NoopEventSink{}
	}

	var committed *IPCParentFinality
	if seeded != nil {
		cp := *seeded
		committed = &cp
	}

	return &FinalityState{
		config:        cfg,
		genesisEpoch:  genesisEpoch,
		cache:         Sequential[*ParentViewPayload](),
		lastCommitted: committed,
		sink:          sink,
	}, nil
}

// firstNonNullBlockLocked returns the greatest filled height in
// [lower_bound, h], or false if that range is empty or contains no filled
// entry. Callers must hold s.mu (read or write).
func (s *FinalityState) firstNonNullBlockLocked(h BlockHeight) (BlockHeight, bool) {
	lo, ok := s.cache.LowerBound()
	if !ok || h < lo {
		return 0, false
	}
	for height := h; ; height-- {
		if v, ok := s.cache.GetValue(height); ok && v != nil {
			return height, true
		}
		if height == lo {
			break
		}
	}
	return 0, false
}

// blockHashAtHeightLocked resolves the hash recorded at h, whether it lives
// in the last committed finality or in a filled cache entry. Callers must
// hold s.mu (read or write).
func (s *FinalityState) blockHashAtHeightLocked(h BlockHeight) (BlockHash, bool) {
	if s.lastCommitted != nil && s.lastCommitted.Height == h {
		return s.lastCommitted.BlockHash, true
	}
	v, ok := s.cache.GetValue(h)
	if !ok || v == nil {
		return nil, false
	}
	return v.BlockHash, true
}

// validatorChangesLocked and topDownMsgsLocked implement the null/missing
// three-way distinction from the query surface: missing entries return
// false, null entries return an empty (non-nil) slice, filled entries
// return their recorded slice. Callers must hold s.mu (read or write).
func (s *FinalityState) validatorChangesLocked(h BlockHeight) ([]ValidatorChangeRequest, bool) {
	v, ok := s.cache.GetValue(h)
	if !ok {
		return nil, false
	}
	if v == nil {
		return []ValidatorChangeRequest{}, true
	}
	return v.ValidatorChanges, true
}

func (s *FinalityState) topDownMsgsLocked(h BlockHeight) ([]CrossMessage, bool) {
	v, ok := s.cache.GetValue(h)
	if !ok {
		return nil, false
	}
	if v == nil {
		return []CrossMessage{}, true
	}
	return v.CrossMessages, true
}

// sealedProposalLocked rebuilds the SealedTopdownProposal committing to
// height h, walking [last_committed, h) for its side effects. It returns
// (nil, nil) when h has no filled entry or last-committed hasn't been
// seeded. Callers must hold s.mu (read or write).
func (s *FinalityState) sealedProposalLocked(h BlockHeight) (*SealedTopdownProposal, error) {
	if s.lastCommitted == nil {
		return nil, nil
	}
	v, ok := s.cache.GetValue(h)
	if !ok || v == nil {
		return nil, nil
	}
	hash := v.BlockHash

	var crossMsgs []CrossMessage
	var changes []ValidatorChangeRequest
	for height := s.lastCommitted.Height; height < h; height++ {
		if msgs, ok := s.topDownMsgsLocked(height); ok {
			crossMsgs = append(crossMsgs, msgs...)
		}
		if chs, ok := s.validatorChangesLocked(height); ok {
			changes = append(changes, chs...)
		}
	}

	commitment, err := sideEffectCommitment(crossMsgs, changes)
	if err != nil {
		return nil, err
	}

	return &SealedTopdownProposal{
		Height:           h,
		BlockHash:        hash,
		Commitment:       commitment,
		CrossMessages:    crossMsgs,
		ValidatorChanges: changes,
	}, nil
}
