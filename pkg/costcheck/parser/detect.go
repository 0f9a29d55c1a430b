// Package parser loads workbooks and reference tables into grids.
package parser

import (
	"bytes"
	"path/filepath"
	"strings"
)

// FileType is the detected container format of an upload.
type FileType string

const (
	Unknown FileType = ""
	Xls     FileType = "xls"
	XlsX    FileType = "xlsx"
)

var (
	ole2Magic = []byte{0xd0, 0xcf, 0x11, 0xe0}
	zipMagic  = []byte{0x50, 0x4b, 0x03, 0x04}
)

// DetectType sniffs the magic bytes, falling back to the file extension.
func DetectType(data []byte, fileName string) FileType {
	switch {
	case bytes.HasPrefix(data, ole2Magic):
		return Xls
	case bytes.HasPrefix(data, zipMagic):
		return XlsX
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xls":
		return Xls
	case ".xlsx", ".xlsm":
		return XlsX
	}
	return Unknown
}
