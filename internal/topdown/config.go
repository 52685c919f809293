package topdown

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidMaxProposalRange is returned by Config.Validate when
// MaxProposalRange is set to zero.
var ErrInvalidMaxProposalRange = errors.New("config: max_proposal_range must be positive")

// ErrInvalidMaxCacheBlocks is returned by Config.Validate when
// MaxCacheBlocks is set to zero.
var ErrInvalidMaxCacheBlocks = errors.New("config: max_cache_blocks must be positive")

// Config carries the tunables of the finality provider. ChainHeadDelay,
// PollingInterval, ExponentialBackOff and ExponentialRetryLimit are not
// consulted by anything in this package; they exist so the out-of-scope
// parent-chain syncer can read them off the same struct the core validates.
type Config struct {
	ChainHeadDelay        uint64
	PollingInterval       time.Duration
	ExponentialBackOff    float64
	ExponentialRetryLimit uint64

	// MaxProposalRange bounds how far past the last committed height a
	// proposal may reach for. Nil means unbounded (limited only by what
	// has been observed).
	MaxProposalRange *uint64

	// MaxCacheBlocks bounds the cache size. Nil means the cache grows
	// unbounded until commits prune it.
	MaxCacheBlocks *uint64

	// ProposalDelay steps a proposal back from the newest known non-null
	// height, trading liveness for robustness against late-arriving
	// null-round evidence. Nil means no delay.
	ProposalDelay *uint64
}

// Validate rejects configurations that can never produce a useful provider,
// following the teacher's pattern of checking inputs once at construction
// instead of failing deep inside a transaction.
func (c Config) Validate() error {
	if c.MaxProposalRange != nil && *c.MaxProposalRange == 0 {
		return ErrInvalidMaxProposalRange
	}
	if c.MaxCacheBlocks != nil && *c.MaxCacheBlocks == 0 {
		return ErrInvalidMaxCacheBlocks
	}
	return nil
}

// maxProposalHeight returns lc + W, saturated at math.MaxUint64 instead of
// wrapping. A nil MaxProposalRange (unbounded) saturates immediately, which
// is what makes it unbounded: the caller takes min(this, latest), and
// min(MaxUint64, latest) == latest. Computing lc + math.MaxUint64 directly
// would wrap around to lc-1, silently turning "unbounded" into "propose
// nothing" — the point of saturating here instead of just returning a huge
// W is to also guard a finite W large enough to overflow lc+W.
func (c Config) maxProposalHeight(lc BlockHeight) BlockHeight {
	if c.MaxProposalRange == nil {
		return math.MaxUint64
	}
	w := *c.MaxProposalRange
	if w > math.MaxUint64-lc {
		return math.MaxUint64
	}
	return lc + w
}

func (c Config) proposalDelay() uint64 {
	if c.ProposalDelay == nil {
		return 0
	}
	return *c.ProposalDelay
}
