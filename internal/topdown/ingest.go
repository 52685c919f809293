package topdown

import (
	"errors"
	"fmt"
)

// ErrNonSequentialParentViewInsert is returned when new_parent_view either
// violates the cache's own sequentiality (I1) or the embedded nonce /
// configuration-number sequentiality of a filled payload (I5). The syncer
// must halt and re-sync from a lower height on this error.
var ErrNonSequentialParentViewInsert = errors.New("non-sequential parent view insert")

// ErrCacheFull is returned when MaxCacheBlocks is set and the cache is
// already at capacity, per the refuse-on-overflow policy spec.md suggests
// for I6.
var ErrCacheFull = errors.New("parent view cache is full")

// NewParentView ingests an observation of the parent chain at height h.
// payload is nil for a null round. It validates I5 before touching the
// cache, so a bad payload never mutates state, and appends under the
// state's lock so the whole ingest is one transaction.
func (s *FinalityState) NewParentView(h BlockHeight, payload *ParentViewPayload) error {
	if payload != nil {
		if err := ensureSequentialNonces(payload.CrossMessages); err != nil {
			return fmt.Errorf("%w: %v", ErrNonSequentialParentViewInsert, err)
		}
		if err := ensureSequentialConfigurationNumbers(payload.ValidatorChanges); err != nil {
			return fmt.Errorf("%w: %v", ErrNonSequentialParentViewInsert, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.MaxCacheBlocks != nil && uint64(s.cache.Size()) >= *s.config.MaxCacheBlocks {
		log.Warnw("parent view cache full, refusing ingest", "height", h, "max_cache_blocks", *s.config.MaxCacheBlocks)
		return ErrCacheFull
	}

	if err := s.cache.Append(h, payload); err != nil {
		return fmt.Errorf("%w: %v", ErrNonSequentialParentViewInsert, err)
	}

	log.Debugw("ingested parent view", "height", h, "null_round", payload == nil)
	return nil
}

func ensureSequentialNonces(msgs []CrossMessage) error {
	for i := 1; i < len(msgs); i++ {
		if msgs[i].Nonce != msgs[i-1].Nonce+1 {
			return fmt.Errorf("cross message nonce %d does not follow %d", msgs[i].Nonce, msgs[i-1].Nonce)
		}
	}
	return nil
}

func ensureSequentialConfigurationNumbers(changes []ValidatorChangeRequest) error {
	for i := 1; i < len(changes); i++ {
		if changes[i].ConfigurationNumber != changes[i-1].ConfigurationNumber+1 {
			return fmt.Errorf("validator change configuration number %d does not follow %d", changes[i].ConfigurationNumber, changes[i-1].ConfigurationNumber)
		}
	}
	return nil
}
