package costcheck

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/costcheck-go/pkg/costcheck/engine"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/parser"
	"go.uber.org/zap"
)

// Input is one uploaded file. Err records a failure to obtain its bytes.
type Input struct {
	Name string
	Data []byte
	Err  error
}

// ReadInput reads a file from disk. A read failure is kept in the Input so
// that it is reported with the file instead of stopping the run.
func ReadInput(path string) Input {
	data, err := os.ReadFile(path)
	in := Input{Name: filepath.Base(path), Data: data}
	if err != nil {
		in.Err = fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return in
}

// Processor validates files against one ruleset.
type Processor struct {
	rs   *models.Ruleset
	eval *engine.Evaluator
	opts Options
	log  *zap.Logger
}

// NewProcessor creates a processor for rs.
func NewProcessor(rs *models.Ruleset, opts Options) *Processor {
	return &Processor{
		rs:   rs,
		eval: engine.NewEvaluator(rs),
		opts: opts,
		log:  opts.logger().With(zap.String("brand", rs.Brand)),
	}
}

// ProcessFiles validates inputs one at a time, in order. Each file gets its
// own result; a failing file never stops the others.
func (p *Processor) ProcessFiles(inputs []Input) []models.FileResult {
	results := make([]models.FileResult, 0, len(inputs))
	for _, in := range inputs {
		results = append(results, p.Process(in))
	}
	return results
}

// Process validates a single file.
func (p *Processor) Process(in Input) (res models.FileResult) {
	res.FileName = in.Name
	log := p.log.With(zap.String("file", in.Name))

	defer func() {
		if r := recover(); r != nil {
			err := NewFileError(in.Name, "evaluate", fmt.Errorf("%v", r))
			log.Error("processing panicked", zap.Any("panic", r))
			res = models.FileResult{FileName: in.Name, Error: err.Error()}
		}
	}()

	if in.Err != nil {
		err := NewFileError(in.Name, "read", in.Err)
		log.Warn("file unreadable", zap.Error(err))
		res.Error = err.Error()
		return res
	}

	wb, err := parser.LoadWorkbook(in.Name, in.Data)
	if err != nil {
		ferr := NewFileError(in.Name, "parse", fmt.Errorf("%w: %v", ErrUnparseable, err))
		log.Warn("workbook unparseable", zap.Error(ferr))
		res.Error = ferr.Error()
		return res
	}

	sel := p.rs.Sheet
	if p.opts.Sheet != "" {
		sel = models.SheetSelector{By: models.SheetNamed, Name: p.opts.Sheet}
	}
	sheet, ok := wb.Select(sel)
	if !ok {
		// Every rule then reports not found, which is the expected outcome
		// for a file missing the brand's sheet.
		log.Info("sheet not found", zap.String("sheet", sel.Name))
	}
	res.Sheet = sheet.Name
	res.Verdicts = p.eval.Evaluate(sheet.Grid)

	log.Debug("file validated",
		zap.String("sheet", sheet.Name),
		zap.Int("passed", res.Passed()),
		zap.Int("total", res.Total()))
	return res
}

