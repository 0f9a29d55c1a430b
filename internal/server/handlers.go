package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ukaji3/costcheck-go/pkg/costcheck"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/brands"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/output"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/report"
)

type brandInfo struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Default bool   `json:"default"`
}

func (s *Server) brandList() []brandInfo {
	var list []brandInfo
	for _, name := range brands.Names() {
		rs, _ := brands.Lookup(name)
		list = append(list, brandInfo{
			Name:    name,
			Title:   rs.Title,
			Default: name == s.cfg.Validation.DefaultBrand,
		})
	}
	if s.cfg.Validation.RulesFile != "" {
		if rs, err := brands.LoadFile(s.cfg.Validation.RulesFile, s.brandOptions()); err == nil {
			list = append(list, brandInfo{
				Name:    rs.Brand,
				Title:   rs.Title,
				Default: rs.Brand == s.cfg.Validation.DefaultBrand,
			})
		}
	}
	return list
}

// listBrands GET /api/brands
func (s *Server) listBrands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"brands": s.brandList()})
}

func (s *Server) brandOptions() brands.Options {
	return brands.Options{
		ReferenceDir: s.cfg.Validation.ReferenceDir,
		Charset:      s.cfg.Validation.Charset,
	}
}

func (s *Server) ruleset(brand string) (*models.Ruleset, error) {
	if brand == "" {
		brand = s.cfg.Validation.DefaultBrand
	}
	return brands.Resolve(brand, s.cfg.Validation.RulesFile, s.brandOptions())
}

// validate POST /api/validate
func (s *Server) validate(c *gin.Context) {
	limit := s.cfg.Server.MaxUploadMB << 20
	if limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	form, err := c.MultipartForm()
	if err != nil {
		s.fail(c, http.StatusBadRequest, fmt.Sprintf("invalid upload: %v", err))
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		s.fail(c, http.StatusBadRequest, "no files uploaded")
		return
	}

	rs, err := s.ruleset(c.PostForm("brand"))
	switch {
	case errors.Is(err, brands.ErrReferenceMissing):
		s.log.Error("reference table missing", zap.Error(err))
		s.fail(c, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		s.fail(c, http.StatusBadRequest, err.Error())
		return
	}

	inputs := make([]costcheck.Input, 0, len(headers))
	for _, fh := range headers {
		inputs = append(inputs, readUpload(fh))
	}

	proc := costcheck.NewProcessor(rs, costcheck.Options{Logger: s.log})
	results := proc.ProcessFiles(inputs)

	now := time.Now()
	r := &run{
		ID:      uuid.New().String(),
		Brand:   rs.Brand,
		Results: results,
		Doc:     report.NewDocument(rs.Title, results, now),
	}
	s.setLatest(r)
	s.log.Info("validated",
		zap.String("run", r.ID),
		zap.String("brand", rs.Brand),
		zap.Int("files", len(results)))

	c.Header("X-Run-ID", r.ID)
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusOK, output.NewRun(r.ID, r.Brand, results, now))
		return
	}

	var buf bytes.Buffer
	if err := report.WriteHTML(&buf, r.Doc); err != nil {
		s.fail(c, http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// export GET /api/export
func (s *Server) export(c *gin.Context) {
	r := s.getLatest()
	if r == nil {
		c.String(http.StatusNotFound, "no validation run to export")
		return
	}

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, r.Doc); err != nil {
		s.log.Error("pdf export failed", zap.String("run", r.ID), zap.Error(err))
		c.String(http.StatusInternalServerError, "export failed")
		return
	}

	name := report.FileName(r.Doc.Brand, r.Doc.Generated)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("X-Run-ID", r.ID)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// fail replaces the whole result panel with one error.
func (s *Server) fail(c *gin.Context, code int, msg string) {
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(code, gin.H{"error": msg})
		return
	}
	var buf bytes.Buffer
	if err := report.WriteErrorHTML(&buf, msg); err != nil {
		c.String(code, msg)
		return
	}
	c.Data(code, "text/html; charset=utf-8", buf.Bytes())
}

func readUpload(fh *multipart.FileHeader) costcheck.Input {
	in := costcheck.Input{Name: fh.Filename}
	f, err := fh.Open()
	if err != nil {
		in.Err = fmt.Errorf("%w: %v", costcheck.ErrUnreadable, err)
		return in
	}
	defer f.Close()

	in.Data, err = io.ReadAll(f)
	if err != nil {
		in.Err = fmt.Errorf("%w: %v", costcheck.ErrUnreadable, err)
	}
	return in
}
