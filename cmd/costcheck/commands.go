package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/costcheck-go/internal/server"
	"github.com/ukaji3/costcheck-go/pkg/costcheck"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/brands"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/output"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/parser"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/report"
)

var (
	format    string
	sheetsDir string
	port      int
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate workbooks and print the results",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

var exportCmd = &cobra.Command{
	Use:   "export [files...]",
	Short: "Validate workbooks and write the PDF report",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExport,
}

var dumpCmd = &cobra.Command{
	Use:   "dump [input.xlsx]",
	Short: "Print a workbook's non-empty cells as JSON",
	Long: `dump prints every non-empty cell keyed by row number and column letter.
Use it to find the anchors and columns when writing a ruleset.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

var brandsCmd = &cobra.Command{
	Use:   "brands [name]",
	Short: "List built-in brands, or print one ruleset as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBrands,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload page and validation API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	validateCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, html, json")
	validateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	validateCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "PDF path (default: <Brand>_Validation_<date>.pdf)")

	dumpCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	dumpCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	dumpCmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")

	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default from config)")
}

// validateFiles runs the selected ruleset over paths. Only ruleset errors
// are returned; per-file failures are part of the results.
func validateFiles(paths []string) (*models.Ruleset, []models.FileResult, error) {
	rs, err := loadRuleset()
	if err != nil {
		return nil, nil, err
	}
	inputs := make([]costcheck.Input, 0, len(paths))
	for _, p := range paths {
		inputs = append(inputs, costcheck.ReadInput(p))
	}
	proc := costcheck.NewProcessor(rs, costcheck.Options{Sheet: sheetName, Logger: logger})
	return rs, proc.ProcessFiles(inputs), nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	var render func(*models.Ruleset, []models.FileResult) ([]byte, error)
	switch strings.ToLower(format) {
	case "text":
		render = func(_ *models.Ruleset, results []models.FileResult) ([]byte, error) {
			var buf bytes.Buffer
			err := output.WriteText(&buf, results)
			return buf.Bytes(), err
		}
	case "html":
		render = func(rs *models.Ruleset, results []models.FileResult) ([]byte, error) {
			var buf bytes.Buffer
			err := report.WriteHTML(&buf, report.NewDocument(rs.Title, results, time.Now()))
			return buf.Bytes(), err
		}
	case "json":
		render = func(rs *models.Ruleset, results []models.FileResult) ([]byte, error) {
			return output.ToJSON(output.NewRun("", rs.Brand, results, time.Now()), pretty)
		}
	default:
		return fmt.Errorf("invalid format: %s (must be text, html, or json)", format)
	}

	rs, results, err := validateFiles(args)
	if err != nil {
		return err
	}
	data, err := render(rs, results)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return writeOutput(outputPath, data)
}

func runExport(cmd *cobra.Command, args []string) error {
	rs, results, err := validateFiles(args)
	if err != nil {
		return err
	}

	doc := report.NewDocument(rs.Title, results, time.Now())
	path := outputPath
	if path == "" {
		path = report.FileName(doc.Brand, doc.Generated)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := report.WritePDF(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("export failed: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("report written", zap.String("path", path), zap.Int("files", len(results)))
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runDump(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("%w: %v", costcheck.ErrUnreadable, err)
	}
	wb, err := parser.LoadWorkbook(filepath.Base(inputPath), data)
	if err != nil {
		return fmt.Errorf("%w: %v", costcheck.ErrUnparseable, err)
	}
	dump := parser.DumpWorkbook(wb)

	if sheetsDir != "" {
		return writeSheetFiles(dump, sheetsDir)
	}
	jsonData, err := output.ToJSON(dump, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(outputPath, append(jsonData, '\n'))
}

func writeSheetFiles(dump *models.WorkbookDump, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, sheet := range dump.Sheets {
		jsonData, err := output.ToJSON(sheet, pretty)
		if err != nil {
			return err
		}
		filename := filepath.Join(dir, sheet.Name+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}
	return nil
}

func runBrands(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, name := range brands.Names() {
			rs, _ := brands.Lookup(name)
			marker := " "
			if name == cfg.Validation.DefaultBrand {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %-12s %s (%d rules)\n", marker, name, rs.Title, len(rs.Rules))
		}
		return nil
	}

	rs, ok := brands.Lookup(args[0])
	if !ok {
		return fmt.Errorf("%w: %q", brands.ErrUnknownBrand, args[0])
	}
	data, err := brands.Marshal(rs)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func runServe(cmd *cobra.Command, args []string) error {
	if port != 0 {
		cfg.Server.Port = port
	}
	return server.NewServer(cfg, logger).Run(cfg.Addr())
}
