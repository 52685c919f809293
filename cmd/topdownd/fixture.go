package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ipc-edge/topdown/internal/topdown"
)

// crossMessageJSON and validatorChangeJSON mirror topdown.CrossMessage and
// topdown.ValidatorChangeRequest with hex-encoded payloads, since JSON has
// no native byte-string type.
type crossMessageJSON struct {
	Nonce      uint64 `json:"nonce"`
	PayloadHex string `json:"payload_hex,omitempty"`
}

type validatorChangeJSON struct {
	ConfigurationNumber uint64 `json:"configuration_number"`
	PayloadHex          string `json:"payload_hex,omitempty"`
}

type observationJSON struct {
	Height           topdown.BlockHeight   `json:"height"`
	Null             bool                  `json:"null"`
	BlockHashHex     string                `json:"block_hash,omitempty"`
	CrossMessages    []crossMessageJSON    `json:"cross_messages,omitempty"`
	ValidatorChanges []validatorChangeJSON `json:"validator_changes,omitempty"`
}

type configJSON struct {
	MaxProposalRange *uint64 `json:"max_proposal_range,omitempty"`
	MaxCacheBlocks   *uint64 `json:"max_cache_blocks,omitempty"`
	ProposalDelay    *uint64 `json:"proposal_delay,omitempty"`
}

type finalityJSON struct {
	Height       topdown.BlockHeight `json:"height"`
	BlockHashHex string              `json:"block_hash"`
}

// fixture is the on-disk shape topdownd replay consumes: a seeded finality
// state plus an ordered list of parent-chain observations to feed through
// NewParentView, checking for a proposal after each one.
type fixture struct {
	GenesisEpoch      topdown.BlockHeight `json:"genesis_epoch"`
	Config            configJSON          `json:"config"`
	CommittedFinality *finalityJSON       `json:"committed_finality,omitempty"`
	Observations      []observationJSON   `json:"observations"`
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	return &f, nil
}

func (f *fixture) toConfig() topdown.Config {
	return topdown.Config{
		MaxProposalRange: f.Config.MaxProposalRange,
		MaxCacheBlocks:   f.Config.MaxCacheBlocks,
		ProposalDelay:    f.Config.ProposalDelay,
	}
}

func (f *fixture) toCommittedFinality() (*topdown.IPCParentFinality, error) {
	if f.CommittedFinality == nil {
		return nil, nil
	}
	hash, err := hex.DecodeString(f.CommittedFinality.BlockHashHex)
	if err != nil {
		return nil, fmt.Errorf("decoding committed_finality.block_hash: %w", err)
	}
	return &topdown.IPCParentFinality{Height: f.CommittedFinality.Height, BlockHash: hash}, nil
}

func (o observationJSON) toPayload() (*topdown.ParentViewPayload, error) {
	if o.Null {
		return nil, nil
	}
	hash, err := hex.DecodeString(o.BlockHashHex)
	if err != nil {
		return nil, fmt.Errorf("decoding observation %d block_hash: %w", o.Height, err)
	}

	crossMsgs := make([]topdown.CrossMessage, 0, len(o.CrossMessages))
	for _, m := range o.CrossMessages {
		payload, err := hex.DecodeString(m.PayloadHex)
		if err != nil {
			return nil, fmt.Errorf("decoding observation %d cross message payload: %w", o.Height, err)
		}
		crossMsgs = append(crossMsgs, topdown.CrossMessage{Nonce: m.Nonce, Payload: payload})
	}

	changes := make([]topdown.ValidatorChangeRequest, 0, len(o.ValidatorChanges))
	for _, c := range o.ValidatorChanges {
		payload, err := hex.DecodeString(c.PayloadHex)
		if err != nil {
			return nil, fmt.Errorf("decoding observation %d validator change payload: %w", o.Height, err)
		}
		changes = append(changes, topdown.ValidatorChangeRequest{ConfigurationNumber: c.ConfigurationNumber, Payload: payload})
	}

	return &topdown.ParentViewPayload{BlockHash: hash, CrossMessages: crossMsgs, ValidatorChanges: changes}, nil
}
