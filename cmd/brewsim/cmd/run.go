package cmd

import (
	"fmt"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"brewchain/cmd/brewsim/sim"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario and print the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, newViper())
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}
			rep, _, err := runScenario(cfg, logger)
			if err != nil {
				return err
			}
			if err := rep.Encode(cmd.OutOrStdout(), cfg.Output); err != nil {
				return err
			}
			if rep.Mismatches > 0 || len(rep.Invariants) > 0 {
				return fmt.Errorf("scenario %q: %d unexpected step outcomes, %d broken invariants",
					rep.Scenario, rep.Mismatches, len(rep.Invariants))
			}
			return nil
		},
	}

	addCommonFlags(cmd.Flags())
	cmd.Flags().StringP(flagOutput, "o", "json", "report format (json|yaml)")
	return cmd
}

func runScenario(cfg Config, logger log.Logger) (sim.Report, *sim.Host, error) {
	s, err := sim.LoadScenario(cfg.Scenario)
	if err != nil {
		return sim.Report{}, nil, err
	}
	host, err := sim.NewHost(logger, s.Authority)
	if err != nil {
		return sim.Report{}, nil, err
	}
	r := sim.NewRunner(host, s, logger)
	if err := r.Init(); err != nil {
		return sim.Report{}, nil, err
	}
	logger.Info("running scenario", "name", s.Name, "steps", len(s.Steps))
	rep, err := r.Run()
	if err != nil {
		return sim.Report{}, nil, err
	}
	return rep, host, nil
}
