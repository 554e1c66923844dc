package settings

type UpdateSettingsRequest struct {
	CompanyName        string `json:"company_name" binding:"required,max=120"`
	DefaultWorkingDays int    `json:"default_working_days" binding:"required,min=1,max=31"`
}

type SettingsResponse struct {
	CompanyName        string `json:"company_name"`
	DefaultWorkingDays int    `json:"default_working_days"`
}

type WorkingDaysResponse struct {
	Month       string `json:"month"`
	WorkingDays int    `json:"working_days"`
}
