// Package main provides the CLI entry point for costcheck.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ukaji3/costcheck-go/internal/config"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/brands"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
)

var (
	configPath   string
	verbose      bool
	brandName    string
	rulesFile    string
	referenceDir string
	sheetName    string

	outputPath string
	pretty     bool

	cfg    *config.AppConfig
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "costcheck",
	Short: "Validate buyer cost breakdown workbooks against brand rules",
	Long: `costcheck reads BCBD workbooks (.xls, .xlsx), locates the cost lines each
brand's ruleset names, and reports every value that misses its expectation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if brandName != "" {
			cfg.Validation.DefaultBrand = brandName
		}
		if referenceDir != "" {
			cfg.Validation.ReferenceDir = referenceDir
		}
		if rulesFile != "" {
			cfg.Validation.RulesFile = rulesFile
		}

		logger, err = newLogger(cfg.Log, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func newLogger(lc config.LogConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if lc.Level != "" {
		level, err := zapcore.ParseLevel(lc.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

// loadRuleset resolves the ruleset selected by flags and config. An explicit
// --rules file wins over the configured default brand.
func loadRuleset() (*models.Ruleset, error) {
	brand := cfg.Validation.DefaultBrand
	if rulesFile != "" && brandName == "" {
		brand = ""
	}
	opts := brands.Options{
		ReferenceDir: cfg.Validation.ReferenceDir,
		Charset:      cfg.Validation.Charset,
	}
	return brands.Resolve(brand, cfg.Validation.RulesFile, opts)
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&brandName, "brand", "b", "", "Brand ruleset (default from config)")
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "YAML ruleset file")
	rootCmd.PersistentFlags().StringVar(&referenceDir, "reference-dir", "", "Directory holding brand reference tables")
	rootCmd.PersistentFlags().StringVar(&sheetName, "sheet", "", "Validate this sheet instead of the brand's default")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(brandsCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
