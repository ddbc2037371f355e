package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundesk/internal/query"
)

func TestUploadMultipartRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/platform/files", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "reimbursement_proof", r.FormValue("type"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "bon.pdf", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"uid":"f-123","original_name":"bon.pdf","ext":"pdf","size":11,"preview":{"sizes":{"thumbnail":"https://cdn/thumb.jpg"}}}}`)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})

	var progress []int
	file, err := c.Files().Upload(context.Background(), "reimbursement_proof", "bon.pdf",
		strings.NewReader("pdf-content"), func(pct int) { progress = append(progress, pct) })
	require.NoError(t, err)

	assert.Equal(t, "f-123", file.UID)
	assert.Equal(t, "pdf", file.Ext)
	require.NotNil(t, file.Preview)
	assert.Equal(t, "https://cdn/thumb.jpg", file.Preview.Sizes["thumbnail"])

	require.NotEmpty(t, progress)
	assert.Equal(t, 100, progress[len(progress)-1], "final progress call must report completion")
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1], "progress must not go backwards")
	}
}

func TestUploadValidationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message":"The given data was invalid.","errors":{"file":["File extension .exe is not allowed."]}}`)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})

	var progressedTo100 bool
	_, err := c.Files().Upload(context.Background(), "reimbursement_proof", "virus.exe",
		strings.NewReader("mz"), func(pct int) {
			if pct == 100 {
				progressedTo100 = true
			}
		})
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.FieldErrors("file"))
	assert.False(t, progressedTo100, "a rejected upload never completes")
}

func TestExportReturnsPayloadAndExtension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "csv", r.URL.Query().Get("data_format"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		fmt.Fprint(w, "id,amount\n1,10.00\n")
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})

	export, err := c.Exports().Transactions(context.Background(), 7, query.Values{"data_format": "csv"})
	require.NoError(t, err)
	assert.Equal(t, "csv", export.Ext)
	assert.Contains(t, string(export.Data), "id,amount")
}

func TestExtFromContentType(t *testing.T) {
	cases := map[string]string{
		"text/csv; charset=utf-8": "csv",
		"application/vnd.ms-excel": "xls",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": "xlsx",
		"application/zip": "zip",
		"garbage":         "csv",
	}
	for contentType, want := range cases {
		if got := extFromContentType(contentType); got != want {
			t.Errorf("extFromContentType(%q) = %q, want %q", contentType, got, want)
		}
	}
}
