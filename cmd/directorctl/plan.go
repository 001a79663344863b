package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var planCmdRunner = runPlan

func newPlanCmd(root *rootFlags) *cobra.Command {
	opts := applyOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what a reconciliation would change without applying it",
		Long: `Plan performs the read and comparison steps of a reconciliation but
suppresses all mutating calls. Exits with code 0 when the remote object is
converged and code 1 when a create, update or delete would be performed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DryRun = true
			opts.Verbose = root.verbose

			changed, err := planCmdRunner(opts)
			if err != nil {
				return err
			}
			if changed {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output the result in JSON format")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

func runPlan(opts applyOptions) (bool, error) {
	result, err := reconcileFromConfig(opts)
	if err != nil {
		return false, err
	}

	if err := printResult(os.Stdout, result, opts.JSON); err != nil {
		return false, err
	}

	if !result.Changed {
		fmt.Fprintln(os.Stdout, "remote object is converged")
	}

	return result.Changed, nil
}
