package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/duodex/internal/config"
	"github.com/kailas-cloud/duodex/internal/usecase/maintenance"
)

func indexCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the search index",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ensure",
		Short: "Create the search index if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, svc, err := openMaintenance(cmd, flags)
			if err != nil {
				return err
			}
			defer a.close()

			created, err := svc.EnsureIndex(cmd.Context())
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintln(cmd.OutOrStdout(), "index created")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "index already exists")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rebuild",
		Short: "Drop and recreate the search index over the stored articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, svc, err := openMaintenance(cmd, flags)
			if err != nil {
				return err
			}
			defer a.close()

			if err := svc.RebuildIndex(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "index rebuilt")
			return nil
		},
	})

	return cmd
}

func seedCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Import articles from a YAML or JSON seed file",
		Long: `Import articles from a YAML or JSON seed file.

The file holds either a list of articles or a mapping with an "articles" list.
Every record is validated before anything is written. Records without an id
get a generated one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, svc, err := openMaintenance(cmd, flags)
			if err != nil {
				return err
			}
			defer a.close()

			if a.cfg.Database.Driver == config.DriverMemory {
				a.logger.Warn("The memory driver does not persist seeded articles")
			}

			f, err := os.Open(filepath.Clean(args[0]))
			if err != nil {
				return fmt.Errorf("open seed file: %w", err)
			}
			defer func() { _ = f.Close() }()

			n, err := svc.Seed(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d articles\n", n)
			return nil
		},
	}
}

func reconcileCmd(flags *globalFlags) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "reconcile-language",
		Short: "Fix language tags that contradict which content fields are present",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, svc, err := openMaintenance(cmd, flags)
			if err != nil {
				return err
			}
			defer a.close()

			report, err := svc.ReconcileLanguage(cmd.Context(), dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, c := range report.Changes {
				fmt.Fprintf(out, "%s: %s -> %s\n", c.ID, c.From, c.To)
			}
			verb := "updated"
			if report.DryRun {
				verb = "would update"
			}
			fmt.Fprintf(out, "scanned %d articles, %s %d\n", report.Scanned, verb, len(report.Changes))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without writing them")

	return cmd
}

// openMaintenance builds the app and connects to the store before returning
// the maintenance service.
func openMaintenance(cmd *cobra.Command, flags *globalFlags) (*app, *maintenance.Service, error) {
	a, err := newApp(flags)
	if err != nil {
		return nil, nil, err
	}
	a.logStartup(cmd.CommandPath())

	if err := a.connect(cmd.Context()); err != nil {
		a.close()
		return nil, nil, err
	}
	return a, maintenance.New(a.repo, a.logger), nil
}
