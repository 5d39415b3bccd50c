package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"blocksmith/internal/logging"
	"blocksmith/internal/physics"
	"blocksmith/internal/planner"
	"blocksmith/internal/types"
)

var planCmd = &cobra.Command{
	Use:   "plan [goal]...",
	Short: "Plan actions that make the world satisfy a goal",
	Long: `Searches for a minimum-length sequence of primitive actions that
transforms the world so the goal formula holds. With several goal
arguments the alternatives are planned concurrently and the cheapest
plan wins.

Example:
  blocksmith plan --world world.yaml "ontop(a,b) & ontop(b,floor)"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	catalog, start, err := loadWorld(worldPath)
	if err != nil {
		return err
	}

	formulas := make([]types.Formula, 0, len(args))
	for _, arg := range args {
		f, err := types.ParseFormula(arg)
		if err != nil {
			return fmt.Errorf("goal %q: %w", arg, err)
		}
		formulas = append(formulas, f)
	}

	laws, err := buildLaws(catalog)
	if err != nil {
		return err
	}

	defer logging.StartTimer("plan")()
	p := planner.New(laws, cfg.Search.Parallelism)

	res, err := p.PlanAny(formulas, start, timeout)
	if err != nil {
		if errors.Is(err, planner.ErrTimeout) {
			return fmt.Errorf("no plan within %s; try a larger --timeout", timeout)
		}
		return err
	}

	logger.Info("plan found",
		zap.String("id", res.ID),
		zap.Int("actions", len(res.Actions)),
		zap.Int("expanded", res.Expanded),
		zap.Duration("elapsed", res.Elapsed))
	logging.Planner("plan %s: %d actions, %d states expanded in %s",
		res.ID, len(res.Actions), res.Expanded, res.Elapsed)

	if len(res.Actions) == 0 {
		fmt.Println("already satisfied (0 actions)")
		return nil
	}
	for _, a := range res.Actions {
		fmt.Println(a)
	}
	return nil
}

// buildLaws assembles the physical-law regime from the object catalog and
// the configuration: the datalog rule engine by default, the built-in
// static table when configured.
func buildLaws(catalog types.Catalog) (physics.Laws, error) {
	if cfg.Physics.Static {
		return physics.NewStaticLaws(catalog), nil
	}

	extra := ""
	if cfg.Physics.RulesPath != "" {
		data, err := os.ReadFile(cfg.Physics.RulesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read rules: %w", err)
		}
		extra = string(data)
	}
	return physics.NewLaws(catalog, extra)
}
