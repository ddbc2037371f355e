package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"fundesk/internal/models"
)

// ProgressFunc receives upload progress in the 0..100 range. The final
// call with 100 happens before the response is decoded.
type ProgressFunc func(percent int)

// FilesService covers the multipart file endpoints.
type FilesService struct {
	c *Client
}

// Files returns the file endpoints.
func (c *Client) Files() *FilesService { return &FilesService{c: c} }

// Upload stores a document of the given type (e.g. reimbursement_proof)
// and returns its descriptor, including server-derived preview sizes.
// Validation failures (disallowed extension, oversized file) surface as
// *ValidationError.
func (s *FilesService) Upload(ctx context.Context, fileType, name string, content io.Reader, progress ProgressFunc) (*models.File, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.c.httpClient.Timeout)
		defer cancel()
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("type", fileType); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	part, err := writer.CreateFormFile("file", filepath.Base(name))
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	body := &progressReader{
		r:        bytes.NewReader(buf.Bytes()),
		total:    int64(buf.Len()),
		progress: progress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.c.baseURL+"/platform/files", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.ContentLength = int64(buf.Len())
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if s.c.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.c.token)
	}

	resp, err := s.c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromResponse(resp.StatusCode, data)
	}

	if progress != nil {
		progress(100)
	}

	var env envelope[models.File]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode file descriptor: %w", err)
	}
	return &env.Data, nil
}

// Download fetches the raw content of a stored file.
func (s *FilesService) Download(ctx context.Context, uid string) ([]byte, error) {
	resp, err := s.c.do(ctx, http.MethodGet, "/platform/files/"+uid+"/download", nil, nil)
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

// progressReader reports read progress as a percentage of total.
type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	lastPct  int
	progress ProgressFunc
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	p.read += int64(n)
	if p.progress != nil && p.total > 0 {
		pct := int(p.read * 100 / p.total)
		if pct > 99 {
			// 100 is reported only once the server answered.
			pct = 99
		}
		if pct != p.lastPct {
			p.lastPct = pct
			p.progress(pct)
		}
	}
	return n, err
}
