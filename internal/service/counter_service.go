package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/guardia-api/internal/dto"
	"github.com/noah-isme/guardia-api/internal/models"
	appErrors "github.com/noah-isme/guardia-api/pkg/errors"
)

type counterStore interface {
	Get(ctx context.Context, teacherEmail string, weekday, hour int) (*models.DutyCounter, error)
	ListByTeacher(ctx context.Context, teacherEmail string) ([]models.DutyCounter, error)
	ResetByTeacher(ctx context.Context, teacherEmail string) (int64, error)
}

// CounterService exposes the fairness counters. Reads never fail on a missing
// key; a teacher who has covered nothing simply reads as all zeros.
type CounterService struct {
	counters counterStore
	logger   *zap.Logger
}

// NewCounterService constructs the service.
func NewCounterService(counters counterStore, logger *zap.Logger) *CounterService {
	return &CounterService{counters: counters, logger: logger}
}

// Get returns the counter for one (teacher, weekday, hour) key.
func (s *CounterService) Get(ctx context.Context, teacherEmail string, weekday, hour int) (*dto.CounterItem, error) {
	if weekday < 1 || weekday > 5 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "weekday must be between 1 and 5")
	}
	if hour < 1 || hour > 8 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "hour must be between 1 and 8")
	}

	counter, err := s.counters.Get(ctx, teacherEmail, weekday, hour)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &dto.CounterItem{TeacherEmail: teacherEmail, Weekday: weekday, Hour: hour}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load counter")
	}
	item := counterItem(*counter)
	return &item, nil
}

// ListByTeacher returns every materialized counter row for a teacher.
func (s *CounterService) ListByTeacher(ctx context.Context, teacherEmail string) ([]dto.CounterItem, error) {
	counters, err := s.counters.ListByTeacher(ctx, teacherEmail)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list counters")
	}
	items := make([]dto.CounterItem, 0, len(counters))
	for _, counter := range counters {
		items = append(items, counterItem(counter))
	}
	return items, nil
}

// Reset wipes a teacher's counters. Administrative use only.
func (s *CounterService) Reset(ctx context.Context, teacherEmail string) (*dto.CounterResetResponse, error) {
	removed, err := s.counters.ResetByTeacher(ctx, teacherEmail)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "reset counters")
	}
	s.logger.Info("duty counters reset",
		zap.String("teacher", teacherEmail), zap.Int64("removed", removed))
	return &dto.CounterResetResponse{TeacherEmail: teacherEmail, Removed: removed}, nil
}

func counterItem(counter models.DutyCounter) dto.CounterItem {
	return dto.CounterItem{
		TeacherEmail:     counter.TeacherEmail,
		Weekday:          counter.Weekday,
		Hour:             counter.Hour,
		NormalCount:      counter.NormalCount,
		ProblematicCount: counter.ProblematicCount,
		SupervisionCount: counter.SupervisionCount,
		Total:            counter.Total(),
	}
}
