package leave

import "github.com/shopspring/decimal"

type ApplyLeaveRequest struct {
	Type      string `json:"type" binding:"required,max=20"`
	Session   string `json:"session" binding:"required,oneof=FULL_DAY FIRST_HALF SECOND_HALF"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"max=500"`
}

type ReviewLeaveRequest struct {
	Status string `json:"status" binding:"required,oneof=Approved Rejected"`
}

type LeaveResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	Type        string          `json:"type"`
	Session     string          `json:"session"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Reason      string          `json:"reason,omitempty"`
	DaysCount   decimal.Decimal `json:"days_count"`
	Status      string          `json:"status"`
	IsPaid      *bool           `json:"is_paid,omitempty"`
	RequestedOn string          `json:"requested_on"`
	ReviewedOn  *string         `json:"reviewed_on,omitempty"`
}
