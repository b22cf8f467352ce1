package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/workpulse/hr-backend-go/internal/domain/attendance"
	"github.com/workpulse/hr-backend-go/internal/domain/worklocation"
	"github.com/workpulse/hr-backend-go/internal/pkg/geocode"
	"github.com/workpulse/hr-backend-go/internal/service/geofence"
	"github.com/workpulse/hr-backend-go/internal/service/timesheet"
)

// AttendanceServiceImpl owns the per-user-per-day record lifecycle.
// It holds no mutable state of its own; the conditional repository
// operations are what serialize concurrent requests for the same day.
type AttendanceServiceImpl struct {
	attendanceRepo   attendance.Repository
	workLocationRepo worklocation.Repository
	validator        *geofence.Validator
	engine           *timesheet.Engine
	geocoder         geocode.Geocoder
	location         *time.Location
	now              func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.Repository,
	workLocationRepo worklocation.Repository,
	validator *geofence.Validator,
	engine *timesheet.Engine,
	geocoder geocode.Geocoder,
	location *time.Location,
) attendance.Service {
	if location == nil {
		location = time.UTC
	}
	if geocoder == nil {
		geocoder = geocode.Disabled{}
	}
	return &AttendanceServiceImpl{
		attendanceRepo:   attendanceRepo,
		workLocationRepo: workLocationRepo,
		validator:        validator,
		engine:           engine,
		geocoder:         geocoder,
		location:         location,
		now:              time.Now,
	}
}

// CheckIn implements attendance.Service.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	nowUTC := s.now().UTC()
	workDay := s.workDay(nowUTC)

	record := attendance.Record{
		UserID:        req.UserID,
		Date:          workDay,
		CheckIn:       &nowUTC,
		Status:        attendance.StatusPresent,
		IsGPSVerified: req.GPSVerified,
		Notes:         req.Notes,
	}

	if req.Position != nil {
		locations, err := s.workLocationRepo.ListActive(ctx)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to list active work locations: %w", err)
		}

		classification, err := s.validator.Classify(*req.Position, locations)
		if err != nil {
			return attendance.RecordResponse{}, err
		}

		record.Status = classification.Status
		record.IsLocationValid = classification.IsLocationValid
		record.RequiresApproval = classification.RequiresApproval
		record.CheckInLatitude = &req.Position.Latitude
		record.CheckInLongitude = &req.Position.Longitude
		if req.Position.AccuracyMeters > 0 {
			record.CheckInAccuracy = &req.Position.AccuracyMeters
		}

		if addr := s.resolveAddress(ctx, req.Position.Latitude, req.Position.Longitude); addr != "" {
			record.CheckInAddress = &addr
		}
	}

	// No verified fix means a human has to look at the record, whether
	// or not a manual position was typed in.
	if !record.IsGPSVerified {
		record.RequiresApproval = true
	}

	stored, created, err := s.attendanceRepo.CreateIfAbsent(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	if !created {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	}

	return mapRecordToResponse(stored), nil
}

// CheckOut implements attendance.Service.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	nowUTC := s.now().UTC()
	workDay := s.workDay(nowUTC)

	record, err := s.attendanceRepo.GetByUserAndDate(ctx, req.UserID, workDay)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get today's record: %w", err)
	}
	if record == nil || record.CheckIn == nil {
		return attendance.RecordResponse{}, attendance.ErrNoActiveCheckIn
	}

	// A record already closed today is returned as-is so that client
	// retries after a lost response are harmless.
	if record.CheckOut != nil {
		return mapRecordToResponse(*record), nil
	}

	result, err := s.engine.Compute(*record.CheckIn, nowUTC)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	updated := *record
	updated.CheckOut = &nowUTC
	updated.WorkingHours = result.WorkingHours
	updated.OvertimeHours = result.OvertimeHours
	updated.TOILHoursEarned = result.TOILHoursEarned
	updated.IsWeekendWork = result.IsWeekendWork

	if req.Position != nil {
		updated.CheckOutLatitude = &req.Position.Latitude
		updated.CheckOutLongitude = &req.Position.Longitude
		if req.Position.AccuracyMeters > 0 {
			updated.CheckOutAccuracy = &req.Position.AccuracyMeters
		}
		if addr := s.resolveAddress(ctx, req.Position.Latitude, req.Position.Longitude); addr != "" {
			updated.CheckOutAddress = &addr
		}
	}

	// An unverified closing fix routes the record to manual review,
	// same as an unverified check-in.
	if !req.GPSVerified {
		updated.RequiresApproval = true
	}

	if req.Notes != nil {
		updated.Notes = appendNotes(updated.Notes, *req.Notes)
	}

	stored, closed, err := s.attendanceRepo.CloseIfOpen(ctx, updated)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to close attendance record: %w", err)
	}
	if !closed {
		// Lost the race to a concurrent check-out or the sweeper; the
		// stored row already holds a valid close.
		return mapRecordToResponse(stored), nil
	}

	return mapRecordToResponse(stored), nil
}

// GetToday implements attendance.Service.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, userID string) (*attendance.RecordResponse, error) {
	workDay := s.workDay(s.now().UTC())

	record, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, workDay)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's record: %w", err)
	}
	if record == nil {
		return nil, nil
	}

	resp := mapRecordToResponse(*record)
	return &resp, nil
}

// ListHistory implements attendance.Service.
func (s *AttendanceServiceImpl) ListHistory(ctx context.Context, userID string, filter attendance.HistoryFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	records, total, err := s.attendanceRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance history: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapRecordToResponse(record))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Records:    responses,
	}, nil
}

// Get implements attendance.Service.
func (s *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.RecordResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return mapRecordToResponse(record), nil
}

// AdminUpdate implements attendance.Service. It bypasses the state
// machine guards but changed time fields still run through the engine
// so the stored hours can never disagree with the stored timestamps.
func (s *AttendanceServiceImpl) AdminUpdate(ctx context.Context, req attendance.AdminUpdateRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	timeChanged := false

	if req.CheckInTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckInTime)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		utc := t.UTC()
		record.CheckIn = &utc
		timeChanged = true
	}

	if req.CheckOutTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckOutTime)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		utc := t.UTC()
		record.CheckOut = &utc
		timeChanged = true
	}

	if timeChanged && record.CheckIn != nil && record.CheckOut != nil {
		result, err := s.engine.Compute(*record.CheckIn, *record.CheckOut)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		record.WorkingHours = result.WorkingHours
		record.OvertimeHours = result.OvertimeHours
		record.TOILHoursEarned = result.TOILHoursEarned
		record.IsWeekendWork = result.IsWeekendWork
	}

	if req.Status != nil {
		record.Status = *req.Status
	}
	if req.RequiresApproval != nil {
		record.RequiresApproval = *req.RequiresApproval
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	editedAt := s.now().UTC()
	record.AdminEditedBy = &req.EditorID
	record.AdminEditedAt = &editedAt

	stored, err := s.attendanceRepo.Update(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapRecordToResponse(stored), nil
}

// workDay truncates a UTC instant to the start of its day in the
// configured local timezone.
func (s *AttendanceServiceImpl) workDay(t time.Time) time.Time {
	local := t.In(s.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
}

// resolveAddress is best-effort by contract: any geocoder failure only
// costs the display address, never the check-in/out itself.
func (s *AttendanceServiceImpl) resolveAddress(ctx context.Context, lat, lon float64) string {
	addr, err := s.geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		slog.Warn("Reverse geocoding failed", "error", err)
		return ""
	}
	return addr
}

func appendNotes(existing *string, note string) *string {
	if note == "" {
		return existing
	}
	if existing == nil || *existing == "" {
		return &note
	}
	combined := *existing + "; " + note
	return &combined
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func mapRecordToResponse(record attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:     record.ID,
		UserID: record.UserID,
		Date:   record.Date.Format("2006-01-02"),

		CheckInTime:  timePtrToString(record.CheckIn),
		CheckOutTime: timePtrToString(record.CheckOut),

		CheckInLatitude:  record.CheckInLatitude,
		CheckInLongitude: record.CheckInLongitude,
		CheckInAccuracy:  record.CheckInAccuracy,
		CheckInAddress:   record.CheckInAddress,

		CheckOutLatitude:  record.CheckOutLatitude,
		CheckOutLongitude: record.CheckOutLongitude,
		CheckOutAccuracy:  record.CheckOutAccuracy,
		CheckOutAddress:   record.CheckOutAddress,

		Status: record.Status,

		WorkingHours:    record.WorkingHours,
		OvertimeHours:   record.OvertimeHours,
		TOILHoursEarned: record.TOILHoursEarned,

		IsWeekendWork:    record.IsWeekendWork,
		IsGPSVerified:    record.IsGPSVerified,
		IsLocationValid:  record.IsLocationValid,
		RequiresApproval: record.RequiresApproval,
		IsAutoCheckout:   record.IsAutoCheckout,

		Notes: record.Notes,

		AdminEditedBy: record.AdminEditedBy,
		AdminEditedAt: timePtrToString(record.AdminEditedAt),

		CreatedAt: record.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: record.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
