// Package upload queues local files for storage through the file API.
//
// Each queued file moves through queued -> uploading -> uploaded, or lands
// in error with at least one message. A file rejected locally (disallowed
// extension) or by the server (422) never reaches uploaded.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"fundesk/internal/api"
	"fundesk/internal/models"
)

// ItemState is the lifecycle phase of one queued file.
type ItemState string

const (
	StateQueued    ItemState = "queued"
	StateUploading ItemState = "uploading"
	StateUploaded  ItemState = "uploaded"
	StateError     ItemState = "error"
)

// Item is one file in the queue.
type Item struct {
	ID       string
	Name     string
	State    ItemState
	Progress int
	Errors   []string
	File     *models.File
}

// DefaultAccepted mirrors the document types the dashboard accepts.
var DefaultAccepted = []string{".xlsx", ".xls", ".docx", ".doc", ".pdf", ".png", ".jpg", ".jpeg"}

// Queue uploads files of one document type sequentially.
type Queue struct {
	files    *api.FilesService
	fileType string
	accepted []string

	mu       sync.Mutex
	items    []*Item
	onChange func(Item)
}

// Option configures a Queue.
type Option func(*Queue)

// WithAccepted overrides the accepted extension list.
func WithAccepted(exts []string) Option {
	return func(q *Queue) { q.accepted = exts }
}

// WithOnChange registers a callback fired after every item transition.
func WithOnChange(fn func(Item)) Option {
	return func(q *Queue) { q.onChange = fn }
}

// NewQueue creates a queue storing files under the given document type
// (e.g. reimbursement_proof).
func NewQueue(files *api.FilesService, fileType string, opts ...Option) *Queue {
	q := &Queue{
		files:    files,
		fileType: fileType,
		accepted: DefaultAccepted,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Add queues a file. Files with a disallowed extension go straight to the
// error state and are skipped by Process.
func (q *Queue) Add(name string) Item {
	item := &Item{
		ID:    uuid.NewString(),
		Name:  name,
		State: StateQueued,
	}
	if !q.accepts(name) {
		item.State = StateError
		item.Errors = []string{fmt.Sprintf("file extension %s is not allowed", filepath.Ext(name))}
	}

	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()

	q.notify(item)
	return *item
}

// Items returns a snapshot of the queue.
func (q *Queue) Items() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Item, len(q.items))
	for i, item := range q.items {
		out[i] = *item
	}
	return out
}

// Open provides the content of a queued file by name.
type Open func(name string) (io.ReadCloser, error)

// Process uploads every queued item in order. Items already in error are
// left untouched. The first context cancellation stops the run.
func (q *Queue) Process(ctx context.Context, open Open) error {
	q.mu.Lock()
	pending := make([]*Item, 0, len(q.items))
	for _, item := range q.items {
		if item.State == StateQueued {
			pending = append(pending, item)
		}
	}
	q.mu.Unlock()

	for _, item := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		q.uploadItem(ctx, item, open)
	}
	return nil
}

func (q *Queue) uploadItem(ctx context.Context, item *Item, open Open) {
	q.transition(item, func() {
		item.State = StateUploading
		item.Progress = 0
	})

	content, err := open(item.Name)
	if err != nil {
		q.fail(item, fmt.Sprintf("failed to open: %v", err))
		return
	}
	defer content.Close()

	file, err := q.files.Upload(ctx, q.fileType, item.Name, content, func(pct int) {
		q.transition(item, func() { item.Progress = pct })
	})
	if err != nil {
		q.fail(item, uploadErrors(err)...)
		return
	}

	q.transition(item, func() {
		item.State = StateUploaded
		item.Progress = 100
		item.File = file
	})
}

func (q *Queue) fail(item *Item, messages ...string) {
	q.transition(item, func() {
		item.State = StateError
		item.Errors = messages
	})
}

func (q *Queue) transition(item *Item, mutate func()) {
	q.mu.Lock()
	mutate()
	snapshot := *item
	q.mu.Unlock()
	q.notify(&snapshot)
}

func (q *Queue) notify(item *Item) {
	if q.onChange != nil {
		q.onChange(*item)
	}
}

func (q *Queue) accepts(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range q.accepted {
		if ext == allowed {
			return true
		}
	}
	return false
}

// uploadErrors flattens an upload failure into display messages. Field
// errors from a 422 keep their server wording.
func uploadErrors(err error) []string {
	var ve *api.ValidationError
	if errors.As(err, &ve) && len(ve.Fields) > 0 {
		keys := make([]string, 0, len(ve.Fields))
		for k := range ve.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var out []string
		for _, field := range keys {
			out = append(out, ve.Fields[field]...)
		}
		return out
	}
	return []string{err.Error()}
}
