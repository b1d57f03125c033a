package dto

import "time"

// ExportFormat selects the rendering of a workload export.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// CreateExportRequest queues a workload export job.
type CreateExportRequest struct {
	Format ExportFormat `json:"format" validate:"required,oneof=csv pdf"`
}

// ExportJob reports the lifecycle of a queued export.
type ExportJob struct {
	ID          string       `json:"id"`
	Format      ExportFormat `json:"format"`
	Status      string       `json:"status"`
	DownloadURL string       `json:"download_url,omitempty"`
	ExpiresAt   *time.Time   `json:"expires_at,omitempty"`
	Error       string       `json:"error,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}
