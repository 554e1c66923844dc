package leave

import (
	"context"
	"errors"
	"time"

	"hrconnect/internal/attendance"

	"gorm.io/gorm"
)

// attendanceLeaveChecker adapts the leave repository to the lookup the
// attendance classifier needs.
type attendanceLeaveChecker struct {
	repo Repository
}

func NewAttendanceLeaveChecker(repo Repository) attendance.LeaveChecker {
	return &attendanceLeaveChecker{repo: repo}
}

func (c *attendanceLeaveChecker) ApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (*attendance.ApprovedLeave, error) {
	l, err := c.repo.FindApprovedOn(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attendance.ApprovedLeave{
		Type:    string(l.Type),
		Session: string(l.Session),
	}, nil
}
