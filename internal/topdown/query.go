package topdown

// GenesisEpoch returns the height this FinalityState was constructed at.
// It never changes over the lifetime of the state, so it needs no lock.
func (s *FinalityState) GenesisEpoch() BlockHeight {
	return s.genesisEpoch
}

// LastCommittedFinality returns a copy of the currently committed finality,
// or nil if none has been seeded yet.
func (s *FinalityState) LastCommittedFinality() *IPCParentFinality {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastCommitted == nil {
		return nil
	}
	cp := *s.lastCommitted
	return &cp
}

// CachedBlocks returns the number of heights currently held in the cache.
func (s *FinalityState) CachedBlocks() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Size()
}

// LatestHeightInCache returns the cache's upper bound, or false if it is
// empty.
func (s *FinalityState) LatestHeightInCache() (BlockHeight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.UpperBound()
}

// LatestHeight returns the cache's upper bound if it has one, falling back
// to the last committed height, or false if neither exists.
func (s *FinalityState) LatestHeight() (BlockHeight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if h, ok := s.cache.UpperBound(); ok {
		return h, true
	}
	if s.lastCommitted != nil {
		return s.lastCommitted.Height, true
	}
	return 0, false
}

// FirstNonNullBlock returns the greatest filled height in
// [lower_bound, h], or false if that range is empty or has no filled entry.
func (s *FinalityState) FirstNonNullBlock(h BlockHeight) (BlockHeight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.firstNonNullBlockLocked(h)
}

// BlockHashAtHeight returns the block hash recorded at h, whether it comes
// from the last committed finality or a filled cache entry.
func (s *FinalityState) BlockHashAtHeight(h BlockHeight) (BlockHash, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blockHashAtHeightLocked(h)
}

// ValidatorChanges returns the validator changes recorded at h: the
// recorded slice for a filled entry, an empty slice for a null round, or
// false for a height never observed.
func (s *FinalityState) ValidatorChanges(h BlockHeight) ([]ValidatorChangeRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.validatorChangesLocked(h)
}

// TopDownMsgs returns the cross messages recorded at h, with the same
// filled/null/missing semantics as ValidatorChanges.
func (s *FinalityState) TopDownMsgs(h BlockHeight) ([]CrossMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.topDownMsgsLocked(h)
}
