// Package cli wires the topdownd operator commands onto a cobra.Command
// tree, the way the teacher's cmd/empower1d/cli package does for its own
// addblock/printchain commands.
package cli

import (
	"github.com/spf13/cobra"
)

// Runner is implemented by main so the cli package never imports the
// concrete replay logic directly, keeping the command tree free of
// business logic the way cmd/empower1d/cli keeps it free of blockchain
// internals.
type Runner interface {
	Replay(fixturePath string) error
}

// NewRootCmd builds the topdownd command tree for r.
func NewRootCmd(r Runner) *cobra.Command {
	root := &cobra.Command{
		Use:   "topdownd",
		Short: "Operator tooling for the parent-chain finality provider",
		Long: "topdownd drives the finality provider library from a JSON fixture of\n" +
			"parent-chain observations, for local inspection of the propose/verify/\n" +
			"commit cycle. It is not the production syncer or consensus engine.",
	}

	var fixturePath string
	replay := &cobra.Command{
		Use:   "replay",
		Short: "Feed a fixture of parent-chain observations through the finality provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.Replay(fixturePath)
		},
	}
	replay.Flags().StringVarP(&fixturePath, "fixture", "f", "", "path to a JSON fixture of parent-chain observations")
	_ = replay.MarkFlagRequired("fixture")

	root.AddCommand(replay)
	return root
}
