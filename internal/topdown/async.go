package topdown

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// AsyncQuerySurface wraps ValidatorChanges and TopDownMsgs so that
// concurrent RPC callers asking about the same height share a single read
// of FinalityState instead of each taking the lock independently. It is
// cancellation-safe: a caller whose context is cancelled simply stops
// waiting on the shared result and returns ctx.Err(); the in-flight read
// itself has no side effects to roll back, so other waiters on the same
// height are unaffected.
type AsyncQuerySurface struct {
	state *FinalityState
	group singleflight.Group
}

// NewAsyncQuerySurface wraps state for deduplicated concurrent queries.
func NewAsyncQuerySurface(state *FinalityState) *AsyncQuerySurface {
	return &AsyncQuerySurface{state: state}
}

type validatorChangesResult struct {
	changes []ValidatorChangeRequest
	found   bool
}

type topDownMsgsResult struct {
	msgs  []CrossMessage
	found bool
}

// ValidatorChanges is the cancellation-safe, deduplicating counterpart to
// FinalityState.ValidatorChanges.
func (a *AsyncQuerySurface) ValidatorChanges(ctx context.Context, h BlockHeight) ([]ValidatorChangeRequest, bool, error) {
	resCh := a.group.DoChan(fmt.Sprintf("validator_changes:%d", h), func() (any, error) {
		changes, found := a.state.ValidatorChanges(h)
		return validatorChangesResult{changes: changes, found: found}, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-resCh:
		r := res.Val.(validatorChangesResult)
		return r.changes, r.found, nil
	}
}

// TopDownMsgs is the cancellation-safe, deduplicating counterpart to
// FinalityState.TopDownMsgs.
func (a *AsyncQuerySurface) TopDownMsgs(ctx context.Context, h BlockHeight) ([]CrossMessage, bool, error) {
	resCh := a.group.DoChan(fmt.Sprintf("top_down_msgs:%d", h), func() (any, error) {
		msgs, found := a.state.TopDownMsgs(h)
		return topDownMsgsResult{msgs: msgs, found: found}, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-resCh:
		r := res.Val.(topDownMsgsResult)
		return r.msgs, r.found, nil
	}
}
