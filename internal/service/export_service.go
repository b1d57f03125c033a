package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/models"
	"github.com/abonnet/univ-edt-api/internal/store"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
	"github.com/abonnet/univ-edt-api/pkg/export"
	"github.com/abonnet/univ-edt-api/pkg/jobs"
	"github.com/abonnet/univ-edt-api/pkg/storage"
)

// Export job lifecycle states.
const (
	ExportStatusQueued     = "queued"
	ExportStatusProcessing = "processing"
	ExportStatusCompleted  = "completed"
	ExportStatusFailed     = "failed"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix   string
	Workers     int
	MaxRetries  int
	QueueBuffer int
}

type exportJob struct {
	ID        string
	TeacherID uint32
	Format    dto.ExportFormat
	Status    string
	RelPath   string
	Token     string
	URL       string
	ExpiresAt *time.Time
	Error     string
	CreatedAt time.Time
}

// ExportService renders teacher workload exports asynchronously: jobs are
// queued, processed by a worker pool, stored on disk and downloaded through
// signed links.
type ExportService struct {
	store     *store.Store
	storage   fileStorage
	signer    *storage.SignedURLSigner
	csv       csvRenderer
	pdf       pdfRenderer
	queue     *jobs.Queue
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       ExportConfig

	mu   sync.Mutex
	jobs map[string]*exportJob
}

// NewExportService constructs an ExportService and its worker queue. Start
// must be called before jobs are processed.
func NewExportService(s *store.Store, files fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}

	svc := &ExportService{
		store:     s,
		storage:   files,
		signer:    signer,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		jobs:      map[string]*exportJob{},
	}
	svc.queue = jobs.NewQueue("workload-export", svc.process, jobs.QueueConfig{
		Workers:    cfg.Workers,
		BufferSize: cfg.QueueBuffer,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return svc
}

// Start launches the worker pool.
func (s *ExportService) Start(ctx context.Context) { s.queue.Start(ctx) }

// Stop drains the worker pool.
func (s *ExportService) Stop() { s.queue.Stop() }

// CreateJob queues a workload export for the teacher and returns the job
// descriptor clients poll.
func (s *ExportService) CreateJob(teacherID uint32, req dto.CreateExportRequest) (dto.ExportJob, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ExportJob{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}

	s.store.Lock()
	_, ok := s.store.GetTeacherByID(teacherID)
	s.store.Unlock()
	if !ok {
		return dto.ExportJob{}, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	job := &exportJob{
		ID:        uuid.NewString(),
		TeacherID: teacherID,
		Format:    req.Format,
		Status:    ExportStatusQueued,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "workload_export"}); err != nil {
		s.markFailed(job.ID, "failed to enqueue job")
		return dto.ExportJob{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export job")
	}
	return s.render(job), nil
}

// GetJob returns the current state of an export job.
func (s *ExportService) GetJob(id string) (dto.ExportJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return dto.ExportJob{}, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	return s.render(job), nil
}

// ResolveDownload validates the signed token against the job and opens the
// stored file.
func (s *ExportService) ResolveDownload(id, token string) (*os.File, string, error) {
	jobID, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	if jobID != id {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "token does not match the export job")
	}

	s.mu.Lock()
	job, ok := s.jobs[id]
	s.mu.Unlock()
	if !ok || job.Status != ExportStatusCompleted || job.RelPath != relPath {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export not available")
	}

	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export file")
	}
	return file, relPath, nil
}

// process is the queue handler: it renders, stores and signs one export.
func (s *ExportService) process(ctx context.Context, qj jobs.Job) error {
	s.mu.Lock()
	job, ok := s.jobs[qj.ID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("unknown export job %s", qj.ID)
	}
	job.Status = ExportStatusProcessing
	teacherID, format := job.TeacherID, job.Format
	s.mu.Unlock()

	dataset, title, err := s.buildWorkloadDataset(teacherID)
	if err != nil {
		s.markFailed(qj.ID, err.Error())
		return err
	}

	var payload []byte
	switch format {
	case dto.ExportCSV:
		payload, err = s.csv.Render(dataset)
	case dto.ExportPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		err = fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		s.markFailed(qj.ID, err.Error())
		return err
	}

	filename := fmt.Sprintf("workload_%d_%s.%s", teacherID, time.Now().UTC().Format("20060102_150405"), format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		s.markFailed(qj.ID, "failed to store export")
		return err
	}

	token, expiresAt, err := s.signer.Generate(qj.ID, relPath)
	if err != nil {
		s.markFailed(qj.ID, "failed to sign download link")
		return err
	}

	url := fmt.Sprintf("%s/exports/%s/download?token=%s", strings.TrimRight(s.cfg.APIPrefix, "/"), qj.ID, token)

	s.mu.Lock()
	job.Status = ExportStatusCompleted
	job.RelPath = relPath
	job.Token = token
	job.URL = url
	job.ExpiresAt = &expiresAt
	s.mu.Unlock()

	s.metrics.CountExportJob(ExportStatusCompleted)
	s.logger.Info("workload export completed",
		zap.String("job_id", qj.ID),
		zap.Uint32("teacher_id", teacherID),
		zap.String("path", relPath))
	return nil
}

// buildWorkloadDataset summarizes the teacher's hours per session type.
func (s *ExportService) buildWorkloadDataset(teacherID uint32) (export.Dataset, string, error) {
	s.store.Lock()
	defer s.store.Unlock()

	teacher, ok := s.store.GetTeacherByID(teacherID)
	if !ok {
		return export.Dataset{}, "", fmt.Errorf("teacher %d not found", teacherID)
	}

	perType := map[models.OccupancyType][]models.Occupancy{}
	for _, o := range s.store.ListOccupancies(nil, nil) {
		if o.TeacherID == teacherID {
			perType[o.Type] = append(perType[o.Type], o)
		}
	}

	order := []models.OccupancyType{
		models.OccupancyCM, models.OccupancyTD, models.OccupancyTP,
		models.OccupancyProjet, models.OccupancyAdministration, models.OccupancyExternal,
	}

	rows := []map[string]string{}
	var total float64
	for _, t := range order {
		occupancies := perType[t]
		if len(occupancies) == 0 {
			continue
		}
		weighted := serviceValue(occupancies)
		total += weighted
		rows = append(rows, map[string]string{
			"Type":        string(t),
			"Sessions":    fmt.Sprintf("%d", len(occupancies)),
			"Hours":       fmt.Sprintf("%d", countHours(occupancies).Total),
			"Coefficient": fmt.Sprintf("%.1f", occupancyCoeff(t)),
			"Service":     fmt.Sprintf("%.1f", weighted),
		})
	}
	rows = append(rows, map[string]string{
		"Type": "Total", "Sessions": "", "Hours": "", "Coefficient": "",
		"Service": fmt.Sprintf("%.1f", total),
	})

	dataset := export.Dataset{
		Headers: []string{"Type", "Sessions", "Hours", "Coefficient", "Service"},
		Rows:    rows,
	}
	title := fmt.Sprintf("Service - %s", teacher.FullName())
	return dataset, title, nil
}

func (s *ExportService) markFailed(id, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.Status = ExportStatusFailed
		job.Error = message
	}
	s.metrics.CountExportJob(ExportStatusFailed)
}

func (s *ExportService) render(job *exportJob) dto.ExportJob {
	return dto.ExportJob{
		ID:          job.ID,
		Format:      job.Format,
		Status:      job.Status,
		DownloadURL: job.URL,
		ExpiresAt:   job.ExpiresAt,
		Error:       job.Error,
		CreatedAt:   job.CreatedAt,
	}
}
