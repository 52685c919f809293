package topdown

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
	mh "github.com/multiformats/go-multihash"
)

// sideEffectCommitment computes the side_effect_cid of a sealed proposal: a
// multihash digest of the canonical encoding of the concatenated
// cross-message and validator-change bytes, wrapped in a CIDv1 tagged with
// the DagCbor codec to mark it as a commitment over structured data.
//
// gob is the same serializer the teacher reaches for before hashing a slice
// of structured records (internal/mempool/mempool.go hashes transaction
// slices the same way); using it here keeps the two validators' encodings
// identical as long as they run the same Go toolchain, which determinism
// property P6 already assumes of the counterpart implementation.
func sideEffectCommitment(crossMsgs []CrossMessage, changes []ValidatorChangeRequest) (cid.Cid, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(crossMsgs); err != nil {
		return cid.Undef, fmt.Errorf("encoding cross messages: %w", err)
	}
	if err := enc.Encode(changes); err != nil {
		return cid.Undef, fmt.Errorf("encoding validator changes: %w", err)
	}

	sum, err := mh.Sum(buf.Bytes(), mh.SHA2_256, -1)
	if err != nil {
		return cid.Undef, fmt.Errorf("hashing side effects: %w", err)
	}

	return cid.NewCidV1(uint64(multicodec.DagCbor), sum), nil
}
