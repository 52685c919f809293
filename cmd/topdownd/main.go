// Command topdownd is an operator CLI over the parent-chain finality
// provider library. It replays a JSON fixture of parent-chain observations
// through Ingestor/Proposer/Committer, driving the propose-verify-commit
// cycle the way a consensus engine would, one fixture-described round at a
// time. It is a demo and inspection tool, not the production syncer or
// consensus engine (those stay out of scope).
package main

import (
	"fmt"
	"os"

	logging "github.com/ipfs/go-log/v2"

	"github.com/ipc-edge/topdown/cmd/topdownd/cli"
	"github.com/ipc-edge/topdown/internal/topdown"
)

var log = logging.Logger("topdownd")

type replayer struct{}

func (replayer) Replay(fixturePath string) error {
	f, err := loadFixture(fixturePath)
	if err != nil {
		return err
	}

	committed, err := f.toCommittedFinality()
	if err != nil {
		return err
	}

	state, err := topdown.NewFinalityState(f.toConfig(), f.GenesisEpoch, committed, topdown.LoggingEventSink{})
	if err != nil {
		return fmt.Errorf("constructing finality state: %w", err)
	}

	for _, o := range f.Observations {
		payload, err := o.toPayload()
		if err != nil {
			return err
		}
		if err := state.NewParentView(o.Height, payload); err != nil {
			return fmt.Errorf("ingesting height %d: %w", o.Height, err)
		}

		proposal, ok := state.NextProposal()
		if !ok {
			log.Infow("no proposal available", "after_height", o.Height)
			continue
		}

		log.Infow("proposal available", "height", proposal.Height)
		if !state.CheckProposal(proposal) {
			return fmt.Errorf("round-trip failure: our own proposal at height %d did not verify", proposal.Height)
		}

		previous := state.LastCommittedFinality()
		if err := state.SetNewFinality(*proposal, previous); err != nil {
			return fmt.Errorf("committing height %d: %w", proposal.Height, err)
		}
	}

	final := state.LastCommittedFinality()
	if final == nil {
		fmt.Println("no finality committed")
		return nil
	}
	fmt.Printf("final committed finality: height=%d block_hash=%x\n", final.Height, final.BlockHash)
	return nil
}

func main() {
	root := cli.NewRootCmd(replayer{})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
