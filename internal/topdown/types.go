// Package topdown implements the parent-chain finality provider: the
// sequential cache of parent-chain observations, the height-selection
// algorithm consensus uses to propose checkpoints of that parent chain, and
// the verify/commit transactions that keep validators converged on the same
// committed finality.
package topdown

import (
	"bytes"
	"fmt"
)

// BlockHeight indexes both the parent chain's blocks and the cache slots
// that hold observations of them.
type BlockHeight = uint64

// BlockHash is an opaque parent-chain block hash, 32 bytes in practice but
// never interpreted as anything but a byte string by this package.
type BlockHash []byte

// ValidatorChangeRequest is a parent-chain event that updates the child
// subnet's validator configuration. ConfigurationNumber is monotonic within
// the sequence embedded in a single ParentViewPayload.
type ValidatorChangeRequest struct {
	ConfigurationNumber uint64
	Payload             []byte
}

// CrossMessage is a top-down message originating on the parent chain and
// destined for the child subnet. Nonce is monotonic within the sequence
// embedded in a single ParentViewPayload.
type CrossMessage struct {
	Nonce   uint64
	Payload []byte
}

// ParentViewPayload is what a cache slot holds when the corresponding
// parent-chain height produced a block. A nil *ParentViewPayload stored at a
// present key represents a null round; an absent key represents a height
// never observed. Ingest, FirstNonNullBlock and friends all rely on this
// three-way distinction.
type ParentViewPayload struct {
	BlockHash        BlockHash
	ValidatorChanges []ValidatorChangeRequest
	CrossMessages    []CrossMessage
}

// IPCParentFinality identifies a parent-chain block the child subnet has
// accepted as canonical up to that height.
type IPCParentFinality struct {
	Height    BlockHeight
	BlockHash BlockHash
}

func (f IPCParentFinality) String() string {
	return fmt.Sprintf("IPCParentFinality{height=%d, block_hash=%x}", f.Height, f.BlockHash)
}

func finalityEqual(a, b *IPCParentFinality) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Height == b.Height && bytes.Equal(a.BlockHash, b.BlockHash)
}
