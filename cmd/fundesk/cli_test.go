package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundesk/internal/api"
	"fundesk/internal/config"
	"fundesk/internal/i18n"
	"fundesk/internal/list"
	"fundesk/internal/models"
)

// setupCLI points the command globals at a test server and captures
// output. PersistentPreRunE is skipped on purpose: tests own the wiring.
func setupCLI(t *testing.T, handler http.Handler) *bytes.Buffer {
	t.Helper()
	require.NoError(t, i18n.Init())
	i18n.SetLocale("en")

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client = api.New(api.Config{BaseURL: server.URL, Token: "test-token"})
	cfg = config.Default()
	cfg.Organization = 7

	buf := &bytes.Buffer{}
	stdout = buf
	t.Cleanup(func() { stdout = os.Stdout })
	return buf
}

func writePage[T any](w http.ResponseWriter, data []T, total int) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": data,
		"meta": map[string]any{
			"total": total, "current_page": 1, "per_page": 15, "last_page": 1,
		},
	})
}

func TestFundsListCmd(t *testing.T) {
	buf := setupCLI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/platform/organizations/7/funds", r.URL.Path)
		writePage(w, []models.Fund{
			{ID: 1, Name: "Zomerfonds", StateLocale: "Actief"},
			{ID: 2, Name: "Sportfonds", StateLocale: "Gesloten"},
		}, 2)
	}))

	require.NoError(t, fundsListCmd.RunE(fundsListCmd, nil))
	out := buf.String()
	assert.Contains(t, out, "Zomerfonds")
	assert.Contains(t, out, "Sportfonds")
	assert.Contains(t, out, "page 1/1 (2 total)")
}

func TestListCmdEmptyPage(t *testing.T) {
	buf := setupCLI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writePage(w, []models.Fund{}, 0)
	}))

	require.NoError(t, fundsListCmd.RunE(fundsListCmd, nil))
	assert.Contains(t, buf.String(), "Nothing found")
}

func TestRequireOrg(t *testing.T) {
	setupCLI(t, http.NewServeMux())
	cfg.Organization = 0

	err := fundsListCmd.RunE(fundsListCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no organization selected")
}

func TestGuardedRejectsConcurrentSubmit(t *testing.T) {
	setupCLI(t, http.NewServeMux())

	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = guarded(func() error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	err := guarded(func() error { return nil })
	assert.ErrorIs(t, err, list.ErrSubmitInFlight)
	assert.Equal(t, "Still processing the previous action.", renderError(err))

	close(release)
	wg.Wait()

	// Once the first submission finishes the guard opens again.
	assert.NoError(t, guarded(func() error { return nil }))
}

func TestVoucherDeactivateCmd(t *testing.T) {
	buf := setupCLI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/platform/organizations/7/sponsor/vouchers/12/deactivate", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "fraud", body["note"])

		_ = json.NewEncoder(w).Encode(map[string]any{"data": models.Voucher{
			ID: 12, Number: "VCH-012", State: "deactivated",
		}})
	}))

	voucherNote = "fraud"
	defer func() { voucherNote = "" }()

	require.NoError(t, vouchersDeactivateCmd.RunE(vouchersDeactivateCmd, []string{"12"}))
	assert.Contains(t, buf.String(), "Voucher VCH-012 deactivated.")
}

func TestExportCmdWritesGeneratedFilename(t *testing.T) {
	buf := setupCLI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/platform/organizations/7/sponsor/vouchers/export", r.URL.Path)
		assert.Equal(t, "csv", r.URL.Query().Get("export_type"))
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("id,number\n12,VCH-012\n"))
	}))

	dir := t.TempDir()
	exportDir = dir
	cfg.ClientType = "sponsor"
	defer func() { exportDir = "." }()

	require.NoError(t, exportCmd.RunE(exportCmd, []string{"vouchers"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	name := entries[0].Name()
	assert.Regexp(t, regexp.MustCompile(`^sponsor_vouchers_7_\d{4}-\d{2}-\d{2}_\d{6}\.csv$`), name)

	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Contains(t, string(content), "VCH-012")
	assert.Contains(t, buf.String(), "Export saved to")
}

func TestUploadCmdRejectsExtensionLocally(t *testing.T) {
	requests := 0
	buf := setupCLI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	dir := t.TempDir()
	path := filepath.Join(dir, "malware.exe")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o644))

	err := uploadCmd.RunE(uploadCmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 files failed")
	assert.Contains(t, buf.String(), ".exe is not allowed")
	assert.Zero(t, requests, "rejected file must never reach the server")
}

func TestFeaturesCmdRefinesClientSide(t *testing.T) {
	buf := setupCLI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []models.Feature{
			{Key: "bng", Name: "BNG bulk payments", Enabled: true},
			{Key: "bi", Name: "BI export", Enabled: false},
			{Key: "auth2", Name: "Two factor auth", Enabled: false},
		}})
	}))

	featuresQ = "export"
	featuresState = "all"
	defer func() { featuresQ = ""; featuresState = "all" }()

	require.NoError(t, featuresCmd.RunE(featuresCmd, nil))
	out := buf.String()
	assert.Contains(t, out, "Active (1)")
	assert.Contains(t, out, "Available (2)")
	assert.Contains(t, out, "BI export")
	assert.NotContains(t, out, "Two factor auth")
}

func TestConfigConsentCmd(t *testing.T) {
	buf := setupCLI(t, http.NewServeMux())
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, configConsentCmd.RunE(configConsentCmd, []string{"functional"}))
	assert.Contains(t, buf.String(), "Cookie consent stored: functional")
	assert.Equal(t, config.ConsentFunctional, cfg.CookiesAccepted)

	err := configConsentCmd.RunE(configConsentCmd, []string{"half"})
	require.Error(t, err)
	assert.Equal(t, config.ConsentFunctional, cfg.CookiesAccepted, "invalid value must not overwrite the choice")
}

func TestRenderErrorTaxonomy(t *testing.T) {
	require.NoError(t, i18n.Init())
	i18n.SetLocale("en")

	assert.Equal(t, "You have no permission for this action.",
		renderError(&api.PermissionError{}))
	assert.Contains(t, renderError(&api.NetworkError{Err: os.ErrDeadlineExceeded}),
		"Could not reach the server")
	assert.Contains(t, renderError(&api.RateLimitError{Title: "Too many attempts", Message: "Try again in 60 seconds"}),
		"Too many attempts")

	verr := &api.ValidationError{
		Message: "validation failed",
		Fields:  map[string][]string{"name": {"The name field is required."}},
	}
	out := renderError(verr)
	assert.Contains(t, out, "Failed!")
	assert.Contains(t, out, "name: The name field is required.")
}
