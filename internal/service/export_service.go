package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/guardia-api/internal/dto"
	"github.com/noah-isme/guardia-api/internal/models"
	"github.com/noah-isme/guardia-api/pkg/config"
	appErrors "github.com/noah-isme/guardia-api/pkg/errors"
	"github.com/noah-isme/guardia-api/pkg/export"
	"github.com/noah-isme/guardia-api/pkg/jobs"
	"github.com/noah-isme/guardia-api/pkg/storage"
)

type coverageLister interface {
	ListByDate(ctx context.Context, date time.Time) ([]models.Coverage, error)
}

type sheetJob struct {
	Date     string
	Format   string
	Filename string
}

// ExportService generates daily coverage sheets, the printout posted in the
// staff room listing who covers what. Generation runs on a background queue;
// finished sheets land in local storage and are served from there.
type ExportService struct {
	coverages coverageLister
	store     *storage.LocalStorage
	queue     *jobs.Queue
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewExportService constructs the service and its queue. Call Start before
// enqueuing and Stop on shutdown.
func NewExportService(
	coverages coverageLister,
	store *storage.LocalStorage,
	cfg config.ExportsConfig,
	validate *validator.Validate,
	logger *zap.Logger,
) *ExportService {
	s := &ExportService{
		coverages: coverages,
		store:     store,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validate:  validate,
		logger:    logger,
	}
	s.queue = jobs.NewQueue("coverage-sheets", s.process, jobs.QueueConfig{
		Workers:    cfg.WorkerConcurrency,
		MaxRetries: cfg.WorkerRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the sheet workers.
func (s *ExportService) Start() { s.queue.Start() }

// Stop drains the queue.
func (s *ExportService) Stop() { s.queue.Stop() }

// Enqueue schedules generation of one date's coverage sheet.
func (s *ExportService) Enqueue(ctx context.Context, req dto.CoverageSheetRequest) (*dto.CoverageSheetStatus, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}
	if _, err := parseDate(req.Date); err != nil {
		return nil, err
	}

	filename := sheetFilename(req.Date, req.Format)
	job := jobs.Job{
		ID:      uuid.NewString(),
		Type:    "coverage-sheet",
		Payload: sheetJob{Date: req.Date, Format: req.Format, Filename: filename},
	}
	if err := s.queue.Enqueue(job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "enqueue coverage sheet")
	}

	return &dto.CoverageSheetStatus{
		Date:     req.Date,
		Format:   req.Format,
		Filename: filename,
		Ready:    s.store.Exists(filename),
	}, nil
}

// Status reports whether a sheet has been generated.
func (s *ExportService) Status(dateStr, format string) (*dto.CoverageSheetStatus, error) {
	if format != "csv" && format != "pdf" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	if _, err := parseDate(dateStr); err != nil {
		return nil, err
	}
	filename := sheetFilename(dateStr, format)
	return &dto.CoverageSheetStatus{
		Date:     dateStr,
		Format:   format,
		Filename: filename,
		Ready:    s.store.Exists(filename),
	}, nil
}

// Download returns a generated sheet's bytes with its content type.
func (s *ExportService) Download(dateStr, format string) (string, string, []byte, error) {
	status, err := s.Status(dateStr, format)
	if err != nil {
		return "", "", nil, err
	}
	if !status.Ready {
		return "", "", nil, appErrors.Clone(appErrors.ErrNotFound, "coverage sheet has not been generated yet")
	}
	data, err := s.store.Read(status.Filename)
	if err != nil {
		return "", "", nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "read coverage sheet")
	}
	contentType := "text/csv"
	if format == "pdf" {
		contentType = "application/pdf"
	}
	return status.Filename, contentType, data, nil
}

func (s *ExportService) process(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(sheetJob)
	if !ok {
		return fmt.Errorf("unexpected payload for job %s", job.ID)
	}
	date, err := time.Parse(models.DateLayout, payload.Date)
	if err != nil {
		return fmt.Errorf("parse sheet date: %w", err)
	}

	coverages, err := s.coverages.ListByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("list coverages for sheet: %w", err)
	}

	dataset := sheetDataset(coverages)
	var rendered []byte
	switch payload.Format {
	case "pdf":
		rendered, err = s.pdf.Render(dataset, "Daily coverage sheet", payload.Date)
	default:
		rendered, err = s.csv.Render(dataset)
	}
	if err != nil {
		return fmt.Errorf("render coverage sheet: %w", err)
	}

	if _, err := s.store.Save(payload.Filename, rendered); err != nil {
		return fmt.Errorf("save coverage sheet: %w", err)
	}
	s.logger.Info("coverage sheet generated",
		zap.String("date", payload.Date),
		zap.String("format", payload.Format),
		zap.Int("rows", len(coverages)))
	return nil
}

func sheetDataset(coverages []models.Coverage) export.Dataset {
	headers := []string{"Hour", "Teacher", "Group", "Room", "Duty", "Status", "Reviewed by"}
	rows := make([]map[string]string, 0, len(coverages))
	for _, coverage := range coverages {
		row := map[string]string{
			"Hour":    fmt.Sprintf("%d", coverage.Hour),
			"Teacher": coverage.TeacherEmail,
			"Group":   coverage.GroupCode,
			"Room":    coverage.Room,
			"Duty":    string(coverage.DutyType),
			"Status":  string(coverage.Status),
		}
		if coverage.ValidatedBy != nil {
			row["Reviewed by"] = *coverage.ValidatedBy
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func sheetFilename(date, format string) string {
	return fmt.Sprintf("coverage-sheet-%s.%s", date, format)
}
