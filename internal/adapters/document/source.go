// Package document inspects knowledge files before they are uploaded.
package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/ihaveaplan/internal/domain"
	"github.com/bnema/ihaveaplan/internal/ports"
	"rsc.io/pdf"
)

// MaxFileSize is the largest file the file_search tool accepts.
const MaxFileSize int64 = 512 << 20

var pdfMagic = []byte("%PDF-")

type Source struct {
	maxSize int64
}

var _ ports.DocumentSource = (*Source)(nil)

func NewSource() *Source {
	return &Source{maxSize: MaxFileSize}
}

// Inspect rejects files that the backend would refuse or that cannot be read as PDF.
func (s *Source) Inspect(ctx context.Context, path string) (domain.KnowledgeFile, error) {
	if err := ctx.Err(); err != nil {
		return domain.KnowledgeFile{}, err
	}
	if strings.TrimSpace(path) == "" {
		return domain.KnowledgeFile{}, &domain.ValidationError{Field: "file", Reason: "path is required"}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return domain.KnowledgeFile{}, fmt.Errorf("resolve knowledge file path: %w", err)
	}

	info, err := os.Stat(absPath)
	switch {
	case os.IsNotExist(err):
		return domain.KnowledgeFile{}, &domain.ValidationError{Field: "file", Reason: fmt.Sprintf("%s does not exist", path), Err: err}
	case err != nil:
		return domain.KnowledgeFile{}, fmt.Errorf("stat knowledge file: %w", err)
	case info.IsDir():
		return domain.KnowledgeFile{}, &domain.ValidationError{Field: "file", Reason: fmt.Sprintf("%s is a directory", path)}
	case info.Size() == 0:
		return domain.KnowledgeFile{}, &domain.ValidationError{Field: "file", Reason: fmt.Sprintf("%s is empty", path)}
	case info.Size() > s.maxSize:
		return domain.KnowledgeFile{}, &domain.ValidationError{
			Field:  "file",
			Reason: fmt.Sprintf("%s is %d bytes, the limit is %d", path, info.Size(), s.maxSize),
		}
	}

	file := domain.KnowledgeFile{Path: absPath, Name: filepath.Base(absPath), Size: info.Size()}

	isPDF, err := looksLikePDF(absPath)
	if err != nil {
		return domain.KnowledgeFile{}, err
	}
	if !isPDF {
		return file, nil
	}

	pages, err := countPages(absPath, info.Size())
	if err != nil {
		return domain.KnowledgeFile{}, &domain.ValidationError{Field: "file", Reason: fmt.Sprintf("%s is not a readable PDF", path), Err: err}
	}
	if pages < 1 {
		return domain.KnowledgeFile{}, &domain.ValidationError{Field: "file", Reason: fmt.Sprintf("%s has no pages", path)}
	}
	file.Pages = pages

	return file, nil
}

func (s *Source) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open knowledge file: %w", err)
	}
	return f, nil
}

func looksLikePDF(path string) (bool, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return true, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open knowledge file: %w", err)
	}
	defer func() { _ = f.Close() }()

	header := make([]byte, len(pdfMagic))
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return false, fmt.Errorf("read knowledge file header: %w", err)
	}
	return bytes.Equal(header[:n], pdfMagic), nil
}

// countPages recovers from the parser panics that malformed object streams trigger.
func countPages(path string, size int64) (pages int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(f, size)
	if err != nil {
		return 0, fmt.Errorf("parse pdf: %w", err)
	}
	return reader.NumPage(), nil
}
