package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abonnet/univ-edt-api/internal/dto"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
	"github.com/abonnet/univ-edt-api/pkg/storage"
)

func newExportFixture(t *testing.T) (*fixture, *ExportService, *storage.SignedURLSigner) {
	t.Helper()

	f := newFixture(t)
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)

	svc := NewExportService(f.store, files, signer, ExportConfig{}, nil, nil, nil)
	svc.Start(context.Background())
	t.Cleanup(svc.Stop)
	return f, svc, signer
}

// waitCompleted polls the job until the worker pool finishes it.
func waitCompleted(t *testing.T, svc *ExportService, id string) dto.ExportJob {
	t.Helper()
	var job dto.ExportJob
	require.Eventually(t, func() bool {
		var err error
		job, err = svc.GetJob(id)
		require.NoError(t, err)
		return job.Status == ExportStatusCompleted || job.Status == ExportStatusFailed
	}, 5*time.Second, 10*time.Millisecond)
	require.Equal(t, ExportStatusCompleted, job.Status, job.Error)
	return job
}

// tokenFromURL extracts the signed token of a completed job's download link.
func tokenFromURL(t *testing.T, url string) string {
	t.Helper()
	_, token, found := strings.Cut(url, "token=")
	require.True(t, found)
	return token
}

func TestExportCSVLifecycle(t *testing.T) {
	f, svc, _ := newExportFixture(t)
	f.book(mon10, mon12)

	job, err := svc.CreateJob(f.teacher.ID, dto.CreateExportRequest{Format: dto.ExportCSV})
	require.NoError(t, err)
	require.NotEmpty(t, job.ID)
	assert.False(t, job.CreatedAt.IsZero())

	done := waitCompleted(t, svc, job.ID)
	assert.Contains(t, done.DownloadURL, "/api/v1/exports/"+job.ID+"/download?token=")
	require.NotNil(t, done.ExpiresAt)

	file, _, err := svc.ResolveDownload(job.ID, tokenFromURL(t, done.DownloadURL))
	require.NoError(t, err)
	defer file.Close()

	payload, err := io.ReadAll(file)
	require.NoError(t, err)
	content := string(payload)
	assert.Contains(t, content, "Type,Sessions,Hours,Coefficient,Service")
	assert.Contains(t, content, "CM,1,2,1.5,3.0")
	assert.Contains(t, content, "Total,,,,3.0")
}

func TestExportPDFLifecycle(t *testing.T) {
	f, svc, _ := newExportFixture(t)
	f.book(mon10, mon12)

	job, err := svc.CreateJob(f.teacher.ID, dto.CreateExportRequest{Format: dto.ExportPDF})
	require.NoError(t, err)
	done := waitCompleted(t, svc, job.ID)

	file, _, err := svc.ResolveDownload(job.ID, tokenFromURL(t, done.DownloadURL))
	require.NoError(t, err)
	defer file.Close()

	payload, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestExportCreateJobValidation(t *testing.T) {
	f, svc, _ := newExportFixture(t)

	_, err := svc.CreateJob(999, dto.CreateExportRequest{Format: dto.ExportCSV})
	requireAppError(t, err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status)

	_, err = svc.CreateJob(f.teacher.ID, dto.CreateExportRequest{Format: "xlsx"})
	requireAppError(t, err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status)

	_, err = svc.GetJob("nope")
	requireAppError(t, err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status)
}

func TestExportDownloadGuards(t *testing.T) {
	f, svc, signer := newExportFixture(t)
	f.book(mon10, mon12)

	job, err := svc.CreateJob(f.teacher.ID, dto.CreateExportRequest{Format: dto.ExportCSV})
	require.NoError(t, err)
	done := waitCompleted(t, svc, job.ID)
	goodToken := tokenFromURL(t, done.DownloadURL)

	// The token is bound to its job.
	other, err := svc.CreateJob(f.teacher.ID, dto.CreateExportRequest{Format: dto.ExportCSV})
	require.NoError(t, err)
	_, _, err = svc.ResolveDownload(other.ID, goodToken)
	requireAppError(t, err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status)

	// And to the stored file path.
	forged, _, err := signer.Generate(job.ID, "somewhere-else.csv")
	require.NoError(t, err)
	_, _, err = svc.ResolveDownload(job.ID, forged)
	requireAppError(t, err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status)

	// Garbage tokens are rejected outright.
	_, _, err = svc.ResolveDownload(job.ID, "not-a-token")
	requireAppError(t, err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status)
}
