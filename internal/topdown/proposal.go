package topdown

import "github.com/ipfs/go-cid"

// SealedTopdownProposal is a proposal whose content-addressed Commitment
// fingerprints every side effect it carries, so independent validators can
// agree on it bit-for-bit without exchanging the side effects themselves.
type SealedTopdownProposal struct {
	Height           BlockHeight
	BlockHash        BlockHash
	Commitment       cid.Cid
	CrossMessages    []CrossMessage
	ValidatorChanges []ValidatorChangeRequest
}

// Finality extracts the (height, block_hash) pair a SealedTopdownProposal
// commits to, discarding the side-effect commitment.
func (p *SealedTopdownProposal) Finality() IPCParentFinality {
	return IPCParentFinality{Height: p.Height, BlockHash: p.BlockHash}
}
