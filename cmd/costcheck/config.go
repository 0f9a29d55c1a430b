package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/costcheck-go/internal/config"
)

var overwrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage costcheck.toml",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the effective configuration to a TOML file",
	Long: `init writes the configuration in effect (defaults, config file,
COSTCHECK_* variables and flags) so it can be edited.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultPath
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.Init(path, cfg, overwrite); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&overwrite, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
