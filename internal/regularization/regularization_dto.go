package regularization

type ApplyRegularizationRequest struct {
	Date              string `json:"date" binding:"required"`
	RequestedCheckOut string `json:"requested_check_out" binding:"required"`
	Reason            string `json:"reason" binding:"max=500"`
}

type ReviewRegularizationRequest struct {
	Status string `json:"status" binding:"required,oneof=Approved Rejected"`
}

type RegularizationResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	Date              string  `json:"date"`
	RequestedCheckOut string  `json:"requested_check_out"`
	Reason            string  `json:"reason,omitempty"`
	Status            string  `json:"status"`
	ReviewedOn        *string `json:"reviewed_on,omitempty"`
}
