package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"blocksmith/internal/goal"
	"blocksmith/internal/types"
)

var checkCmd = &cobra.Command{
	Use:   "check [goal]",
	Short: "Check whether the world already satisfies a goal",
	Long: `Validates the world file and evaluates the goal formula against it
without planning. Exits non-zero when the goal is not satisfied.

Example:
  blocksmith check --world world.yaml "holding(a) | ontop(a,floor)"`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, state, err := loadWorld(worldPath)
	if err != nil {
		return err
	}

	f, err := types.ParseFormula(args[0])
	if err != nil {
		return fmt.Errorf("goal %q: %w", args[0], err)
	}

	if !goal.Satisfied(f, state) {
		return fmt.Errorf("goal not satisfied in %s", worldPath)
	}
	fmt.Println("satisfied")
	return nil
}
