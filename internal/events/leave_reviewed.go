package events

import "time"

const LeaveReviewedTopic = "hr.leave.reviewed.v1"

// LeaveReviewedEvent is the interface to the notification collaborator;
// email delivery itself happens outside this system.
type LeaveReviewedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	IsPaid     *bool     `json:"is_paid,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
