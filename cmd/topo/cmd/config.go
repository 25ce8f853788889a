package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	configtemplate "github.com/topo-sh/topo/configs"
	"github.com/topo-sh/topo/internal/config"
	"github.com/topo-sh/topo/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or initialize topo's per-repository configuration",
	}

	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a commented config.yaml template to <path>/.topo/config.yaml",
		Long: `Write topo's config template to <path>/.topo/config.yaml, where
internal/config.Load reads it back. Every field is commented with its
default; uncomment and edit only what you want to override.

This only ever writes topo's own config file - it does not scan or
template anything into the target repository itself.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args)
			if err != nil {
				return err
			}

			path := config.ConfigPath(root)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(configtemplate.ConfigTemplate), 0o644); err != nil {
				return fmt.Errorf("writing config template: %w", err)
			}

			out := output.New(cmd.OutOrStdout())
			out.Successf("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config.yaml")
	return cmd
}
