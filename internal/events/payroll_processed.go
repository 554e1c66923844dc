package events

import "time"

const PayrollProcessedTopic = "hr.payroll.processed.v1"

type PayrollProcessedEvent struct {
	EventType   string    `json:"event_type"`
	Month       string    `json:"month"`
	WorkingDays int       `json:"working_days"`
	Employees   int       `json:"employees"`
	ProcessedBy string    `json:"processed_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
