package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/directorctl/internal/config"
	"github.com/alexisbeaulieu97/directorctl/internal/director"
	"github.com/alexisbeaulieu97/directorctl/internal/icinga"
	"github.com/alexisbeaulieu97/directorctl/internal/logger"
)

type applyOptions struct {
	ConfigPath string
	DryRun     bool
	Verbose    bool
	JSON       bool
}

var applyCmdRunner = runApply

func newApplyCmd(root *rootFlags) *cobra.Command {
	opts := applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Reconcile the declared service object against the Director",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DryRun = root.dryRun
			opts.Verbose = root.verbose

			return applyCmdRunner(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output the result in JSON format")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

func runApply(opts applyOptions) error {
	result, err := reconcileFromConfig(opts)
	if err != nil {
		return err
	}

	return printResult(os.Stdout, result, opts.JSON)
}

// reconcileFromConfig wires the declaration, transport and engine together
// and performs a single reconciliation.
func reconcileFromConfig(opts applyOptions) (*icinga.Result, error) {
	cfg, err := config.ParseConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	level := "info"
	if opts.Verbose {
		level = "debug"
	}

	log, err := logger.New(logger.Options{Level: level, HumanReadable: !opts.JSON})
	if err != nil {
		return nil, err
	}

	client, err := director.New(director.Options{
		BaseURL:       cfg.Director.URL,
		Username:      cfg.Director.Username,
		Password:      cfg.Director.Password,
		ClientCert:    cfg.Director.ClientCert,
		ClientKey:     cfg.Director.ClientKey,
		ValidateCerts: cfg.Director.ValidateCerts,
		UseProxy:      cfg.Director.UseProxy,
		Timeout:       cfg.Director.Timeout,
	}, log)
	if err != nil {
		return nil, err
	}

	def, err := icinga.NewDefinition(cfg.Service)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Director.Timeout*3)
	defer cancel()

	reconciler := icinga.NewReconciler(client, log, opts.DryRun)
	return reconciler.Reconcile(ctx, def)
}

func printResult(out *os.File, result *icinga.Result, asJSON bool) error {
	if asJSON {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(encoded))
		return nil
	}

	styled := term.IsTerminal(int(out.Fd()))
	fmt.Fprint(out, renderResult(result, styled))
	return nil
}
