package topdown

import "bytes"

// CheckProposal reports whether p is acceptable: its height is above the
// last committed one, within what has actually been observed, and its hash
// matches the corresponding cache entry. It deliberately does not re-run
// the D/W algorithm — any filled height beyond last-committed with a
// matching hash is acceptable, because the algorithm guarantees liveness
// across validators with slightly different views, not a single unique
// answer. It never fails; it answers false whenever p cannot be verified.
func (s *FinalityState) CheckProposal(p *IPCParentFinality) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checkHeightLocked(p.Height) && s.checkBlockHashLocked(p)
}

func (s *FinalityState) checkHeightLocked(h BlockHeight) bool {
	if s.lastCommitted == nil {
		log.Debugw("check_proposal: last committed finality not seeded")
		return false
	}
	if h <= s.lastCommitted.Height {
		log.Debugw("check_proposal: height not above last committed", "height", h, "last_committed", s.lastCommitted.Height)
		return false
	}
	latest, ok := s.cache.UpperBound()
	if !ok || latest < h {
		log.Debugw("check_proposal: height not yet observed", "height", h)
		return false
	}
	return true
}

func (s *FinalityState) checkBlockHashLocked(p *IPCParentFinality) bool {
	hash, ok := s.blockHashAtHeightLocked(p.Height)
	if !ok {
		log.Debugw("check_proposal: no filled entry at height", "height", p.Height)
		return false
	}
	if !bytes.Equal(hash, p.BlockHash) {
		log.Debugw("check_proposal: block hash mismatch", "height", p.Height)
		return false
	}
	return true
}

// CheckSealedProposal re-derives the expected SealedTopdownProposal for
// p.Height and compares its commitment byte-for-byte against p's, after
// first running the same checks CheckProposal does on p.Finality().
func (s *FinalityState) CheckSealedProposal(p *SealedTopdownProposal) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	finality := p.Finality()
	if !s.checkHeightLocked(finality.Height) || !s.checkBlockHashLocked(&finality) {
		return false
	}

	expected, err := s.sealedProposalLocked(p.Height)
	if err != nil || expected == nil {
		log.Debugw("check_sealed_proposal: could not rebuild expected proposal", "height", p.Height, "error", err)
		return false
	}
	return expected.Commitment.Equals(p.Commitment)
}
