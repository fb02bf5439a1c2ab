package users

// createRequest is the POST /api/users payload.
type createRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Identity    string `json:"identity"`
	DOB         string `json:"dob"`
	Role        string `json:"role"`
}

// updateRequest is the PUT /api/users/{id} payload. Pointer fields
// distinguish "omitted" from "set to empty".
type updateRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
	Identity    *string `json:"identity"`
	DOB         *string `json:"dob"`
	Role        *string `json:"role"`
}
