package topdown

import (
	"encoding/hex"
	"errors"
)

// ErrFinalityMismatch is returned by SetNewFinality when the caller's
// previous finality does not match what is actually committed. The source
// spec treats this as a debug-time assertion failure (a programmer error);
// this implementation returns it as an ordinary error instead of panicking,
// since crashing a validator process over a caller bug is worse than
// surfacing it — callers that want fail-fast behavior can panic on the
// returned error themselves.
var ErrFinalityMismatch = errors.New("set_new_finality: previous finality does not match last committed")

// SetNewFinality installs f as the new last committed finality, provided
// previous matches what is currently committed, then prunes the cache below
// f.Height (I3: the entry at f.Height itself is kept for deferred
// execution). The ParentFinalityCommitted event fires after the state write
// completes, so observers never see an event without the state it
// describes, only possibly the reverse if the sink itself drops it.
func (s *FinalityState) SetNewFinality(f IPCParentFinality, previous *IPCParentFinality) error {
	s.mu.Lock()
	if !finalityEqual(s.lastCommitted, previous) {
		s.mu.Unlock()
		return ErrFinalityMismatch
	}

	s.cache.RemoveKeyBelow(f.Height)
	committed := f
	s.lastCommitted = &committed
	s.mu.Unlock()

	log.Infow("committed new parent finality", "height", f.Height)
	s.sink.ParentFinalityCommitted(f.Height, hex.EncodeToString(f.BlockHash))
	return nil
}

// SetNewSealedFinality is SetNewFinality for a SealedTopdownProposal,
// deriving f from sp.Finality().
func (s *FinalityState) SetNewSealedFinality(sp *SealedTopdownProposal, previous *IPCParentFinality) error {
	return s.SetNewFinality(sp.Finality(), previous)
}

// Reset clears the cache and forces the last committed finality to f,
// bypassing the previous-finality check. Operators call this after
// detecting a parent-chain reorg or restoring from a snapshot.
func (s *FinalityState) Reset(f IPCParentFinality) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = Sequential[*ParentViewPayload]()
	committed := f
	s.lastCommitted = &committed
	log.Warnw("finality state reset", "height", f.Height)
}
