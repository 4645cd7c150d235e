package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/guardia-api/internal/dto"
	"github.com/noah-isme/guardia-api/internal/models"
	"github.com/noah-isme/guardia-api/internal/roster"
	appErrors "github.com/noah-isme/guardia-api/pkg/errors"
)

type absenceStore interface {
	Create(ctx context.Context, absence *models.Absence) error
	ExistsByTeacherAndDate(ctx context.Context, teacherEmail string, date time.Time) (bool, error)
	FindByID(ctx context.Context, id string) (*models.Absence, error)
	ListByDate(ctx context.Context, date time.Time) ([]models.Absence, error)
	ListByTeacher(ctx context.Context, teacherEmail string) ([]models.Absence, error)
	ListAll(ctx context.Context) ([]models.Absence, error)
	ListUncoveredHoursBySlot(ctx context.Context, date time.Time, hour int) ([]models.AbsenceHour, error)
	Delete(ctx context.Context, id string) error
}

type coverageStore interface {
	Create(ctx context.Context, coverage *models.Coverage) error
	ListActiveBySlot(ctx context.Context, date time.Time, hour int) ([]models.Coverage, error)
	CancelledTeachersBySlot(ctx context.Context, date time.Time, hour int) ([]string, error)
	DeleteReassignableBySlot(ctx context.Context, date time.Time, hour int) (int64, error)
	DeleteByAbsenceHourIDs(ctx context.Context, hourIDs []string) error
	HasValidatedByAbsenceHourIDs(ctx context.Context, hourIDs []string) (bool, error)
	ListByAbsenceHourIDs(ctx context.Context, hourIDs []string) (map[string]models.Coverage, error)
}

type counterReader interface {
	GetMany(ctx context.Context, teacherEmails []string, weekday, hour int) ([]models.DutyCounter, error)
}

// AssignmentService registers absences and computes coverage for their slots.
// All slot work funnels through AssignSlot, which recomputes one (date, hour)
// under the slot lock: registration, redistribution and post-cancellation
// repair all run the same purge-and-reassign sequence.
type AssignmentService struct {
	absences  absenceStore
	coverages coverageStore
	counters  counterReader
	roster    roster.Provider
	locks     *slotLocks
	validate  *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewAssignmentService constructs the service.
func NewAssignmentService(
	absences absenceStore,
	coverages coverageStore,
	counters counterReader,
	rosterProvider roster.Provider,
	validate *validator.Validate,
	logger *zap.Logger,
	metrics *MetricsService,
) *AssignmentService {
	return &AssignmentService{
		absences:  absences,
		coverages: coverages,
		counters:  counters,
		roster:    rosterProvider,
		locks:     newSlotLocks(),
		validate:  validate,
		logger:    logger,
		metrics:   metrics,
	}
}

// RegisterAbsence persists the absence day and immediately assigns coverage
// for each of its hours. Hours nobody can cover come back unfulfilled with a
// reason; the absence itself is always stored.
func (s *AssignmentService) RegisterAbsence(ctx context.Context, req dto.RegisterAbsenceRequest) (*dto.AbsenceResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid absence request")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if _, ok := models.Weekday(date); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "absences can only be registered for school weekdays")
	}

	seen := make(map[int]bool, len(req.Hours))
	for _, hour := range req.Hours {
		if seen[hour.Hour] {
			return nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("hour %d listed more than once", hour.Hour))
		}
		seen[hour.Hour] = true
	}

	exists, err := s.absences.ExistsByTeacherAndDate(ctx, req.TeacherEmail, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "check existing absence")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "teacher already has an absence registered for this date")
	}

	absence := &models.Absence{TeacherEmail: req.TeacherEmail, Date: date}
	for _, hour := range req.Hours {
		entry := models.AbsenceHour{
			Hour:      hour.Hour,
			GroupCode: hour.GroupCode,
			Room:      hour.Room,
		}
		if hour.Task != "" {
			task := hour.Task
			entry.Task = &task
		}
		absence.Hours = append(absence.Hours, entry)
	}
	if err := s.absences.Create(ctx, absence); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store absence")
	}

	s.logger.Info("absence registered",
		zap.String("absence_id", absence.ID),
		zap.String("teacher", absence.TeacherEmail),
		zap.String("date", req.Date),
		zap.Int("hours", len(absence.Hours)))

	outcomesByHourID := make(map[string]dto.HourOutcome)
	for _, hour := range distinctHours(absence.Hours) {
		slotOutcomes, err := s.AssignSlot(ctx, date, hour)
		if err != nil {
			s.logger.Error("slot assignment failed",
				zap.String("date", req.Date), zap.Int("hour", hour), zap.Error(err))
			continue
		}
		for _, outcome := range slotOutcomes {
			outcomesByHourID[outcome.AbsenceHourID] = outcome
		}
	}

	response := &dto.AbsenceResponse{
		ID:           absence.ID,
		TeacherEmail: absence.TeacherEmail,
		Date:         req.Date,
	}
	for _, hour := range absence.Hours {
		outcome, ok := outcomesByHourID[hour.ID]
		if !ok {
			outcome = unfulfilledOutcome(hour, "assignment failed")
		}
		response.Hours = append(response.Hours, outcome)
	}
	return response, nil
}

// AssignSlot recomputes coverage for one (date, hour) slot. It purges the
// still-reassignable rows, collects every open absent hour and assigns the
// least-loaded on-duty teachers: supervision post first, then problematic
// groups, then the rest. Each pick leaves the pool, so no teacher covers two
// things in the same slot. A roster failure degrades to unfulfilled hours
// instead of failing the call.
func (s *AssignmentService) AssignSlot(ctx context.Context, date time.Time, hour int) ([]dto.HourOutcome, error) {
	unlock := s.locks.acquire(date, hour)
	defer unlock()
	return s.assignSlotLocked(ctx, date, hour)
}

func (s *AssignmentService) assignSlotLocked(ctx context.Context, date time.Time, hour int) ([]dto.HourOutcome, error) {
	weekday, ok := models.Weekday(date)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "slots exist only on school weekdays")
	}

	purged, err := s.coverages.DeleteReassignableBySlot(ctx, date, hour)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "purge slot coverages")
	}
	if purged > 0 {
		s.logger.Info("slot purged for reassignment",
			zap.String("date", date.Format(models.DateLayout)),
			zap.Int("hour", hour), zap.Int64("purged", purged))
	}

	open, err := s.absences.ListUncoveredHoursBySlot(ctx, date, hour)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list open hours")
	}
	// The purge may have dropped the supervision post, so a slot with no open
	// hours still needs a pass when anything was purged.
	if len(open) == 0 && purged == 0 {
		return nil, nil
	}

	duty, err := s.roster.TeachersOnDuty(ctx, weekday, hour)
	if err != nil {
		s.logger.Warn("duty roster lookup failed, leaving slot unfulfilled",
			zap.String("date", date.Format(models.DateLayout)),
			zap.Int("hour", hour), zap.Error(err))
		return s.unfulfilledAll(open, "duty roster unavailable"), nil
	}

	active, err := s.coverages.ListActiveBySlot(ctx, date, hour)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list slot coverages")
	}
	busy := make(map[string]bool, len(active))
	hasSupervision := false
	for _, coverage := range active {
		busy[coverage.TeacherEmail] = true
		if coverage.DutyType == models.DutySupervision {
			hasSupervision = true
		}
	}

	// A teacher whose coverage for this slot was cancelled must not be handed
	// the hour again.
	cancelled, err := s.coverages.CancelledTeachersBySlot(ctx, date, hour)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list cancelled teachers")
	}
	for _, email := range cancelled {
		busy[email] = true
	}

	pool := make([]models.DutyTeacher, 0, len(duty))
	for _, teacher := range duty {
		if !busy[teacher.Email] {
			pool = append(pool, teacher)
		}
	}
	if len(pool) == 0 {
		return s.unfulfilledAll(open, "no on-duty teachers available"), nil
	}

	emails := make([]string, len(pool))
	for i, teacher := range pool {
		emails[i] = teacher.Email
	}
	counterRows, err := s.counters.GetMany(ctx, emails, weekday, hour)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load duty counters")
	}
	counters := counterMap(counterRows)

	if !hasSupervision {
		if pick, ok := selectLeastLoaded(pool, counters, models.DutySupervision); ok {
			coverage := &models.Coverage{
				Date:         date,
				Hour:         hour,
				TeacherEmail: pick.Email,
				GroupCode:    models.SupervisionGroupCode,
				DutyType:     models.DutySupervision,
				Status:       models.CoverageAssigned,
			}
			if err := s.coverages.Create(ctx, coverage); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store supervision coverage")
			}
			pool = removeCandidate(pool, pick.Email)
			s.metrics.RecordAssignment(models.DutySupervision)
		} else {
			s.logger.Warn("no teacher left for the supervision post",
				zap.String("date", date.Format(models.DateLayout)), zap.Int("hour", hour))
		}
	}

	problematic := make([]models.AbsenceHour, 0, len(open))
	normal := make([]models.AbsenceHour, 0, len(open))
	for _, absentHour := range open {
		flagged, err := s.roster.IsProblematicGroup(ctx, absentHour.GroupCode)
		if err != nil {
			s.logger.Warn("group lookup failed, treating as normal",
				zap.String("group", absentHour.GroupCode), zap.Error(err))
			flagged = false
		}
		if flagged {
			problematic = append(problematic, absentHour)
		} else {
			normal = append(normal, absentHour)
		}
	}

	outcomes := make([]dto.HourOutcome, 0, len(open))
	assign := func(hours []models.AbsenceHour, duty models.DutyType) error {
		for _, absentHour := range hours {
			pick, ok := selectLeastLoaded(pool, counters, duty)
			if !ok {
				outcomes = append(outcomes, unfulfilledOutcome(absentHour, "no on-duty teacher left for this hour"))
				s.metrics.RecordUnfulfilled()
				continue
			}
			hourID := absentHour.ID
			coverage := &models.Coverage{
				AbsenceHourID: &hourID,
				Date:          date,
				Hour:          hour,
				TeacherEmail:  pick.Email,
				GroupCode:     absentHour.GroupCode,
				Room:          absentHour.Room,
				DutyType:      duty,
				Status:        models.CoverageAssigned,
			}
			if err := s.coverages.Create(ctx, coverage); err != nil {
				return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store coverage")
			}
			pool = removeCandidate(pool, pick.Email)
			s.metrics.RecordAssignment(duty)
			item := newCoverageItem(*coverage)
			outcomes = append(outcomes, dto.HourOutcome{
				AbsenceHourID: absentHour.ID,
				Hour:          absentHour.Hour,
				GroupCode:     absentHour.GroupCode,
				Room:          absentHour.Room,
				Task:          taskValue(absentHour.Task),
				Coverage:      &item,
			})
		}
		return nil
	}
	if err := assign(problematic, models.DutyProblematic); err != nil {
		return nil, err
	}
	if err := assign(normal, models.DutyNormal); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Redistribute recomputes the given slots of a date. One failing slot does
// not stop the rest; failures are reported at the end.
func (s *AssignmentService) Redistribute(ctx context.Context, req dto.RedistributeRequest) ([]dto.HourOutcome, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid redistribution request")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if _, ok := models.Weekday(date); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "slots exist only on school weekdays")
	}

	hours := distinctInts(req.Hours)
	outcomes := make([]dto.HourOutcome, 0)
	failed := 0
	for _, hour := range hours {
		s.metrics.RecordRedistribution()
		slotOutcomes, err := s.AssignSlot(ctx, date, hour)
		if err != nil {
			failed++
			s.logger.Error("slot redistribution failed",
				zap.String("date", req.Date), zap.Int("hour", hour), zap.Error(err))
			continue
		}
		outcomes = append(outcomes, slotOutcomes...)
	}
	if failed > 0 {
		return outcomes, appErrors.Clone(appErrors.ErrInternal,
			fmt.Sprintf("redistribution failed for %d slot(s)", failed))
	}
	return outcomes, nil
}

// DeleteAbsence withdraws an absence, drops its pending coverages and
// rebalances the affected slots. Validated history blocks the withdrawal.
func (s *AssignmentService) DeleteAbsence(ctx context.Context, id string) error {
	absence, err := s.absences.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "absence not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load absence")
	}

	hourIDs := make([]string, len(absence.Hours))
	for i, hour := range absence.Hours {
		hourIDs[i] = hour.ID
	}
	validated, err := s.coverages.HasValidatedByAbsenceHourIDs(ctx, hourIDs)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "check validated coverages")
	}
	if validated {
		return appErrors.Clone(appErrors.ErrConflict, "absence has validated coverage and cannot be withdrawn")
	}

	if err := s.coverages.DeleteByAbsenceHourIDs(ctx, hourIDs); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "drop absence coverages")
	}
	if err := s.absences.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "absence not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "delete absence")
	}

	s.logger.Info("absence withdrawn",
		zap.String("absence_id", id), zap.String("teacher", absence.TeacherEmail))

	for _, hour := range distinctHours(absence.Hours) {
		if _, err := s.AssignSlot(ctx, absence.Date, hour); err != nil {
			s.logger.Error("slot rebalance after withdrawal failed",
				zap.String("date", absence.Date.Format(models.DateLayout)),
				zap.Int("hour", hour), zap.Error(err))
		}
	}
	return nil
}

// GetAbsence returns one absence with its coverages resolved.
func (s *AssignmentService) GetAbsence(ctx context.Context, id string) (*dto.AbsenceItem, error) {
	absence, err := s.absences.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "absence not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load absence")
	}
	items, err := s.resolveAbsences(ctx, []models.Absence{*absence})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// ListByDate groups a date's absences per hour index, coverages resolved.
func (s *AssignmentService) ListByDate(ctx context.Context, dateStr string) (dto.AbsencesByHour, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}
	absences, err := s.absences.ListByDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list absences")
	}
	items, err := s.resolveAbsences(ctx, absences)
	if err != nil {
		return nil, err
	}
	return groupByHour(items), nil
}

// History returns every absence grouped by date, then by hour.
func (s *AssignmentService) History(ctx context.Context) (dto.AbsenceHistory, error) {
	absences, err := s.absences.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list absences")
	}
	items, err := s.resolveAbsences(ctx, absences)
	if err != nil {
		return nil, err
	}
	history := make(dto.AbsenceHistory)
	for _, item := range items {
		byHour, ok := history[item.Date]
		if !ok {
			byHour = make(dto.AbsencesByHour)
			history[item.Date] = byHour
		}
		mergeByHour(byHour, item)
	}
	return history, nil
}

// HistoryByTeacher returns one teacher's absences, newest first.
func (s *AssignmentService) HistoryByTeacher(ctx context.Context, teacherEmail string) ([]dto.AbsenceItem, error) {
	absences, err := s.absences.ListByTeacher(ctx, teacherEmail)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list absences")
	}
	return s.resolveAbsences(ctx, absences)
}

// SupervisionPreview names the teacher the engine would put on the
// supervision post for a slot, without writing anything.
func (s *AssignmentService) SupervisionPreview(ctx context.Context, dateStr string, hour int) (*dto.SupervisionPreviewItem, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}
	weekday, ok := models.Weekday(date)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "slots exist only on school weekdays")
	}
	if hour < 1 || hour > 8 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "hour must be between 1 and 8")
	}

	duty, err := s.roster.TeachersOnDuty(ctx, weekday, hour)
	if err != nil {
		return nil, err
	}

	active, err := s.coverages.ListActiveBySlot(ctx, date, hour)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list slot coverages")
	}
	busy := make(map[string]bool, len(active))
	for _, coverage := range active {
		busy[coverage.TeacherEmail] = true
	}
	cancelled, err := s.coverages.CancelledTeachersBySlot(ctx, date, hour)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list cancelled teachers")
	}
	for _, email := range cancelled {
		busy[email] = true
	}
	pool := make([]models.DutyTeacher, 0, len(duty))
	for _, teacher := range duty {
		if !busy[teacher.Email] {
			pool = append(pool, teacher)
		}
	}
	if len(pool) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no on-duty teachers available for this slot")
	}

	emails := make([]string, len(pool))
	for i, teacher := range pool {
		emails[i] = teacher.Email
	}
	counterRows, err := s.counters.GetMany(ctx, emails, weekday, hour)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load duty counters")
	}
	counters := counterMap(counterRows)

	pick, _ := selectLeastLoaded(pool, counters, models.DutySupervision)
	return &dto.SupervisionPreviewItem{
		Date:             dateStr,
		Hour:             hour,
		TeacherEmail:     pick.Email,
		TeacherName:      pick.FullName,
		SupervisionCount: counters[pick.Email].SupervisionCount,
	}, nil
}

func (s *AssignmentService) resolveAbsences(ctx context.Context, absences []models.Absence) ([]dto.AbsenceItem, error) {
	hourIDs := make([]string, 0)
	for _, absence := range absences {
		for _, hour := range absence.Hours {
			hourIDs = append(hourIDs, hour.ID)
		}
	}
	coverages, err := s.coverages.ListByAbsenceHourIDs(ctx, hourIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "resolve coverages")
	}

	items := make([]dto.AbsenceItem, 0, len(absences))
	for _, absence := range absences {
		item := dto.AbsenceItem{
			ID:           absence.ID,
			TeacherEmail: absence.TeacherEmail,
			Date:         absence.Date.Format(models.DateLayout),
		}
		for _, hour := range absence.Hours {
			hourItem := dto.AbsenceHourItem{
				ID:        hour.ID,
				Hour:      hour.Hour,
				GroupCode: hour.GroupCode,
				Room:      hour.Room,
				Task:      taskValue(hour.Task),
			}
			if coverage, ok := coverages[hour.ID]; ok {
				covItem := newCoverageItem(coverage)
				hourItem.Coverage = &covItem
			}
			item.Hours = append(item.Hours, hourItem)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *AssignmentService) unfulfilledAll(hours []models.AbsenceHour, reason string) []dto.HourOutcome {
	outcomes := make([]dto.HourOutcome, 0, len(hours))
	for _, hour := range hours {
		outcomes = append(outcomes, unfulfilledOutcome(hour, reason))
		s.metrics.RecordUnfulfilled()
	}
	return outcomes
}

func unfulfilledOutcome(hour models.AbsenceHour, reason string) dto.HourOutcome {
	return dto.HourOutcome{
		AbsenceHourID: hour.ID,
		Hour:          hour.Hour,
		GroupCode:     hour.GroupCode,
		Room:          hour.Room,
		Task:          taskValue(hour.Task),
		Unfulfilled:   true,
		Reason:        reason,
	}
}

func groupByHour(items []dto.AbsenceItem) dto.AbsencesByHour {
	grouped := make(dto.AbsencesByHour)
	for _, item := range items {
		mergeByHour(grouped, item)
	}
	return grouped
}

// mergeByHour splits one absence into per-hour entries keyed by hour index.
func mergeByHour(grouped dto.AbsencesByHour, item dto.AbsenceItem) {
	for _, hour := range item.Hours {
		key := strconv.Itoa(hour.Hour)
		entry := dto.AbsenceItem{
			ID:           item.ID,
			TeacherEmail: item.TeacherEmail,
			Date:         item.Date,
			Hours:        []dto.AbsenceHourItem{hour},
		}
		grouped[key] = append(grouped[key], entry)
	}
}

func distinctHours(hours []models.AbsenceHour) []int {
	indexes := make([]int, 0, len(hours))
	for _, hour := range hours {
		indexes = append(indexes, hour.Hour)
	}
	return distinctInts(indexes)
}

func distinctInts(values []int) []int {
	seen := make(map[int]bool, len(values))
	out := make([]int, 0, len(values))
	for _, value := range values {
		if !seen[value] {
			seen[value] = true
			out = append(out, value)
		}
	}
	sort.Ints(out)
	return out
}

func taskValue(task *string) string {
	if task == nil {
		return ""
	}
	return *task
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date must be formatted as YYYY-MM-DD")
	}
	return date, nil
}

func newCoverageItem(coverage models.Coverage) dto.CoverageItem {
	item := dto.CoverageItem{
		ID:           coverage.ID,
		Date:         coverage.Date.Format(models.DateLayout),
		Hour:         coverage.Hour,
		TeacherEmail: coverage.TeacherEmail,
		GroupCode:    coverage.GroupCode,
		Room:         coverage.Room,
		DutyType:     string(coverage.DutyType),
		Status:       string(coverage.Status),
		ValidatedAt:  coverage.ValidatedAt,
	}
	if coverage.AbsenceHourID != nil {
		item.AbsenceHourID = *coverage.AbsenceHourID
	}
	if coverage.ValidatedBy != nil {
		item.ValidatedBy = *coverage.ValidatedBy
	}
	if coverage.CancelReason != nil {
		item.CancelReason = *coverage.CancelReason
	}
	return item
}
