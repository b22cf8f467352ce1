package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusRemote  Status = "remote"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
)

// Record is the per-user-per-day attendance row. (UserID, Date) is
// unique; the record is Open while CheckOut is nil and Closed after.
// Closed records are never deleted, they form the audit trail.
type Record struct {
	ID     string
	UserID string
	Date   time.Time // work day at local midnight

	CheckIn  *time.Time
	CheckOut *time.Time

	CheckInLatitude  *float64
	CheckInLongitude *float64
	CheckInAccuracy  *float64
	CheckInAddress   *string

	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CheckOutAccuracy  *float64
	CheckOutAddress   *string

	Status Status

	WorkingHours    float64
	OvertimeHours   float64
	TOILHoursEarned float64

	IsWeekendWork    bool
	IsGPSVerified    bool
	IsLocationValid  bool
	RequiresApproval bool
	IsAutoCheckout   bool

	Notes *string

	AdminEditedBy *string
	AdminEditedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen reports whether the record still awaits a check-out.
func (r Record) IsOpen() bool {
	return r.CheckIn != nil && r.CheckOut == nil
}
