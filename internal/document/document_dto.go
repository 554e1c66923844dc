package document

type CreateDocumentRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	Title       string `json:"title" binding:"required,max=200"`
	Category    string `json:"category" binding:"max=50"`
	StorageKey  string `json:"storage_key" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"max=100"`
	SizeBytes   int64  `json:"size_bytes" binding:"min=0"`
}

type DocumentResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	Title       string `json:"title"`
	Category    string `json:"category,omitempty"`
	StorageKey  string `json:"storage_key"`
	ContentType string `json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes"`
	CreatedAt   string `json:"created_at"`
}
