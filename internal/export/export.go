// Package export saves generated export payloads to disk.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fundesk/internal/api"
)

// Filename builds the download name for an export: client type, resource,
// organization id and a timestamp, joined the way the dashboard names its
// browser downloads.
func Filename(clientType, resource string, organizationID int, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%d_%s.%s",
		clientType, resource, organizationID, now.Format("2006-01-02_150405"), ext)
}

// Save writes an export payload into dir using the generated filename and
// returns the full path.
func Save(dir string, clientType, resource string, organizationID int, file *api.ExportFile) (string, error) {
	name := Filename(clientType, resource, organizationID, file.Ext, time.Now())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export %s: %w", path, err)
	}
	return path, nil
}
