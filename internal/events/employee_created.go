package events

import "time"

const EmployeeCreatedTopic = "hr.employee.lifecycle.v1"

// EmployeeCreatedEvent announces a new hire to downstream consumers
// (audit trail today; directory sync and provisioning later).
type EmployeeCreatedEvent struct {
	EventType      string    `json:"event_type"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeNumber string    `json:"employee_number"`
	FullName       string    `json:"full_name"`
	OccurredAt     time.Time `json:"occurred_at"`
}
