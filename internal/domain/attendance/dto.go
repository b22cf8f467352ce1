package attendance

import (
	"github.com/workpulse/hr-backend-go/internal/pkg/validator"
)

// Position is a client-reported GPS fix. Accuracy is best-effort; zero
// means unknown and is accepted. The server can only validate the
// coordinates for well-formedness, never for authenticity.
type Position struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AccuracyMeters float64 `json:"accuracy_meters,omitempty"`
}

type CheckInRequest struct {
	UserID string `json:"-"`

	// Position is nil for manual (GPS-less) entries.
	Position    *Position `json:"position,omitempty"`
	GPSVerified bool      `json:"-"`
	Notes       *string   `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if r.Position != nil {
		errs = append(errs, validatePosition(*r.Position)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	UserID string `json:"-"`

	Position    *Position `json:"position,omitempty"`
	GPSVerified bool      `json:"-"`
	Notes       *string   `json:"notes,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if r.Position != nil {
		errs = append(errs, validatePosition(*r.Position)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validatePosition(p Position) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if p.Latitude < -90 || p.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if p.Longitude < -180 || p.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if p.AccuracyMeters < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "accuracy_meters",
			Message: "accuracy_meters must not be negative",
		})
	}

	return errs
}

type RecordResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Date   string `json:"date"`

	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`

	CheckInLatitude  *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude *float64 `json:"check_in_longitude,omitempty"`
	CheckInAccuracy  *float64 `json:"check_in_accuracy,omitempty"`
	CheckInAddress   *string  `json:"check_in_address,omitempty"`

	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
	CheckOutAccuracy  *float64 `json:"check_out_accuracy,omitempty"`
	CheckOutAddress   *string  `json:"check_out_address,omitempty"`

	Status Status `json:"status"`

	WorkingHours    float64 `json:"working_hours"`
	OvertimeHours   float64 `json:"overtime_hours"`
	TOILHoursEarned float64 `json:"toil_hours_earned"`

	IsWeekendWork    bool `json:"is_weekend_work"`
	IsGPSVerified    bool `json:"is_gps_verified"`
	IsLocationValid  bool `json:"is_location_valid"`
	RequiresApproval bool `json:"requires_approval"`
	IsAutoCheckout   bool `json:"is_auto_checkout"`

	Notes *string `json:"notes,omitempty"`

	AdminEditedBy *string `json:"admin_edited_by,omitempty"`
	AdminEditedAt *string `json:"admin_edited_at,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// HistoryFilter selects a user's attendance history.
type HistoryFilter struct {
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}

// AdminUpdateRequest lets a privileged user correct a record. It
// bypasses the state-machine guards, but changed time fields are still
// re-run through the time accounting engine.
type AdminUpdateRequest struct {
	ID       string `json:"-"`
	EditorID string `json:"-"`

	CheckInTime  *string `json:"check_in_time,omitempty"`  // RFC3339
	CheckOutTime *string `json:"check_out_time,omitempty"` // RFC3339

	Status           *Status `json:"status,omitempty"`
	RequiresApproval *bool   `json:"requires_approval,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

func (r *AdminUpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CheckInTime != nil {
		if _, valid := validator.IsValidDateTime(*r.CheckInTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must be an RFC3339 timestamp",
			})
		}
	}

	if r.CheckOutTime != nil {
		if _, valid := validator.IsValidDateTime(*r.CheckOutTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be an RFC3339 timestamp",
			})
		}
	}

	if r.Status != nil {
		valid := []string{
			string(StatusPresent), string(StatusRemote),
			string(StatusLate), string(StatusAbsent),
		}
		if !validator.IsInSlice(string(*r.Status), valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: present, remote, late, absent",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
