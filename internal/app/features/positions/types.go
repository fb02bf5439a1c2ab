package positions

// createRequest is the POST /api/teacher-positions payload. Code is
// optional; when omitted one is generated.
type createRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

// updateRequest is the PUT /api/teacher-positions/{id} payload. Code is
// immutable after creation.
type updateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}
