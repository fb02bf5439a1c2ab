// Package apiroot serves the API index at / and describes the mounted
// endpoint groups.
package apiroot

import (
	"net/http"

	"github.com/dalemusser/teacherhub/internal/app/system/webapi"
)

// Handler serves the API index. It holds no dependencies.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type indexData struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// Serve handles GET /.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	webapi.OK(w, indexData{
		Name:    "TeacherHub API",
		Version: "1.0.0",
		Endpoints: map[string]string{
			"users":            "/api/users",
			"teachers":         "/api/teachers",
			"teacherPositions": "/api/teacher-positions",
		},
	})
}
