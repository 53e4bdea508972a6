package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
)

const pdfContentType = "application/pdf"

// FileService proxies resume documents between the page and the backend.
type FileService struct {
	api      ports.ResumeAPI
	maxBytes int64
	logger   zerolog.Logger
}

// NewFileService accepts uploads of at most maxMB megabytes.
func NewFileService(api ports.ResumeAPI, maxMB int64, logger zerolog.Logger) *FileService {
	if maxMB <= 0 {
		maxMB = 5
	}
	return &FileService{api: api, maxBytes: maxMB << 20, logger: logger}
}

// UploadResume forwards a PDF and returns where the backend stored it.
func (s *FileService) UploadResume(ctx context.Context, sess domain.Session, filename, contentType string, size int64, body io.Reader) (string, error) {
	if !sess.Authenticated() {
		return "", domain.ErrUnauthenticated
	}
	if err := checkFilename(filename); err != nil {
		return "", err
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil || mt != pdfContentType {
		return "", fmt.Errorf("%w: only PDF files are accepted", domain.ErrInvalidUpload)
	}
	if !strings.EqualFold(path.Ext(filename), ".pdf") {
		return "", fmt.Errorf("%w: only PDF files are accepted", domain.ErrInvalidUpload)
	}
	if size > s.maxBytes {
		return "", fmt.Errorf("%w: file exceeds %d MB", domain.ErrInvalidUpload, s.maxBytes>>20)
	}

	// size comes from the client; the reader is capped regardless.
	limited := &capReader{r: io.LimitReader(body, s.maxBytes+1), max: s.maxBytes}
	url, err := s.api.UploadResumePDF(ctx, sess.Token, filename, limited)
	if limited.over {
		return "", fmt.Errorf("%w: file exceeds %d MB", domain.ErrInvalidUpload, s.maxBytes>>20)
	}
	if err != nil {
		return "", err
	}
	s.logger.Info().Str("filename", filename).Int64("size", size).Msg("resume uploaded")
	return url, nil
}

// Document opens a stored document for inline preview. The caller closes
// the body.
func (s *FileService) Document(ctx context.Context, sess domain.Session, filename string) (*ports.Document, error) {
	if err := checkFilename(filename); err != nil {
		return nil, err
	}
	return s.api.ResumePDF(ctx, sess.Token, filename)
}

func checkFilename(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: bad filename %q", domain.ErrInvalidUpload, name)
	}
	return nil
}

// capReader fails the read once more than max bytes have been seen.
type capReader struct {
	r    io.Reader
	max  int64
	n    int64
	over bool
}

func (c *capReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if c.n > c.max {
		c.over = true
		return n, fmt.Errorf("%w: upload too large", domain.ErrInvalidUpload)
	}
	return n, err
}
