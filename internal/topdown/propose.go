package topdown

// NextProposal runs the D/W height-selection algorithm: it caps its upper
// bound at W heights past the last committed finality, then steps
// back D further from the newest known non-null height for safety against
// late-arriving null-round evidence. It never returns a null height (I4) and
// never repeats the last committed height.
//
// last_committed_finality must already be seeded (via NewFinalityState or
// Reset) before this is ever called; an unseeded call is a programmer error
// on the caller's part, logged and treated as "nothing to propose" rather
// than panicking, since the verifier already handles the unseeded case by
// returning false.
func (s *FinalityState) NextProposal() (*IPCParentFinality, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest, ok := s.cache.UpperBound()
	if !ok {
		return nil, false
	}
	if s.lastCommitted == nil {
		log.Errorw("next_proposal called before last committed finality was seeded")
		return nil, false
	}
	lc := s.lastCommitted.Height

	maxProposalHeight := s.config.maxProposalHeight(lc)
	candidate := latest
	if maxProposalHeight < candidate {
		candidate = maxProposalHeight
	}
	log.Debugw("next_proposal candidate", "last_committed", lc, "latest", latest, "candidate", candidate)

	nn1, ok := s.firstNonNullBlockLocked(candidate)
	if !ok {
		log.Debugw("next_proposal: no non-null block at or below candidate", "candidate", candidate)
		return nil, false
	}

	delay := s.config.proposalDelay()
	if nn1 < delay {
		log.Debugw("next_proposal: delay steps back past height zero", "first_non_null", nn1, "delay", delay)
		return nil, false
	}
	delayedCandidate := nn1 - delay

	nn2, ok := s.firstNonNullBlockLocked(delayedCandidate)
	if !ok {
		log.Debugw("next_proposal: no non-null block at or below delayed candidate", "delayed_candidate", delayedCandidate)
		return nil, false
	}

	if nn2 == lc {
		log.Debugw("next_proposal: no new filled block beyond last committed", "height", nn2)
		return nil, false
	}

	hash, ok := s.blockHashAtHeightLocked(nn2)
	if !ok {
		// unreachable: nn2 came from firstNonNullBlockLocked, which only
		// ever returns heights with a filled cache entry.
		return nil, false
	}

	log.Debugw("next_proposal: proposing", "height", nn2)
	return &IPCParentFinality{Height: nn2, BlockHash: hash}, true
}

// SealedProposalAtHeight builds the SealedTopdownProposal committing to h,
// or returns (nil, nil) if h has no filled cache entry or the last committed
// finality has not been seeded.
func (s *FinalityState) SealedProposalAtHeight(h BlockHeight) (*SealedTopdownProposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sealedProposalLocked(h)
}
