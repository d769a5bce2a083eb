package service

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/models"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
	"github.com/noah-isme/student-records/pkg/storage"
)

func newTestExportService(t *testing.T) (*ExportService, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("export-secret", time.Hour)
	svc := NewExportService(store, signer, ExportConfig{APIPrefix: "/api/v1/"}, zap.NewNop())
	return svc, dir
}

func TestExportServiceStoreAndResolve(t *testing.T) {
	svc, dir := newTestExportService(t)

	result, err := svc.Store("Report_দাখিল ষষ্ঠ_2025.csv", models.ReportFormatCSV, []byte("a,b\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, "Report_দাখিল ষষ্ঠ_2025.csv", result.Filename)
	assert.True(t, strings.HasPrefix(result.URL, "/api/v1/export/"))
	assert.NotContains(t, result.RelativePath, " ")
	assert.FileExists(t, filepath.Join(dir, result.RelativePath))

	download, err := svc.ResolveDownload(result.Token)
	require.NoError(t, err)
	defer download.File.Close()
	assert.Equal(t, "Report_দাখিল_ষষ্ঠ_2025.csv", download.Filename)
	assert.Equal(t, models.ReportFormatCSV, download.Format)
	body, err := io.ReadAll(download.File)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(body))
}

func TestExportServiceResolveRejectsBadTokens(t *testing.T) {
	svc, dir := newTestExportService(t)

	_, err := svc.ResolveDownload("not-a-token")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	result, err := svc.Store("Final_List_2025.pdf", models.ReportFormatPDF, []byte("%PDF"))
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, result.RelativePath)))
	_, err = svc.ResolveDownload(result.Token)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestExportServiceCleanup(t *testing.T) {
	svc, dir := newTestExportService(t)
	result, err := svc.Store("Report_x_2025.xlsx", models.ReportFormatXLSX, []byte("xlsx"))
	require.NoError(t, err)

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, result.RelativePath), old, old))

	removed, err := svc.Cleanup(0)
	require.NoError(t, err)
	assert.Len(t, removed, 1)
}

func TestFormatFromFilename(t *testing.T) {
	assert.Equal(t, models.ReportFormatXLSX, formatFromFilename("a.XLSX"))
	assert.Equal(t, models.ReportFormatPDF, formatFromFilename("a.pdf"))
	assert.Equal(t, models.ReportFormat(""), formatFromFilename("a.txt"))
	assert.Equal(t, "na", sanitizeFilename(""))
	assert.Equal(t, "a_b-c", sanitizeFilename("a b/c"))
}
