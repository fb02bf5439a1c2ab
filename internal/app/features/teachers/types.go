package teachers

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/teacherhub/internal/domain/models"
)

type degreePayload struct {
	Type        string `json:"type"`
	School      string `json:"school"`
	Major       string `json:"major"`
	Year        int    `json:"year"`
	IsGraduated bool   `json:"isGraduated"`
}

// newUserPayload is the inline user accepted by POST /api/teachers when
// the person does not exist yet. The role is forced to TEACHER.
type newUserPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Identity    string `json:"identity"`
	DOB         string `json:"dob"`
}

// createRequest carries either an existing userId or an inline newUser,
// never both.
type createRequest struct {
	UserID             string          `json:"userId"`
	NewUser            *newUserPayload `json:"newUser"`
	StartDate          string          `json:"startDate"`
	EndDate            string          `json:"endDate"`
	TeacherPositionsID []string        `json:"teacherPositionsId"`
	Degrees            []degreePayload `json:"degrees"`
}

// updateRequest uses pointers so absent fields are left untouched. An
// explicit endDate of "" clears the end date. The teacher code and the
// linked user are immutable.
type updateRequest struct {
	StartDate          *string          `json:"startDate"`
	EndDate            *string          `json:"endDate"`
	TeacherPositionsID *[]string        `json:"teacherPositionsId"`
	Degrees            *[]degreePayload `json:"degrees"`
	IsActive           *bool            `json:"isActive"`
}

// buildDegrees validates and converts the degree payloads. Problems are
// reported per entry so the caller can return them all at once.
func buildDegrees(in []degreePayload) ([]models.Degree, []string) {
	var problems []string
	out := make([]models.Degree, 0, len(in))
	year := time.Now().Year()
	for i, d := range in {
		if strings.TrimSpace(d.Type) == "" {
			problems = append(problems, fmt.Sprintf("degrees[%d].type is required", i))
		}
		if strings.TrimSpace(d.School) == "" {
			problems = append(problems, fmt.Sprintf("degrees[%d].school is required", i))
		}
		if strings.TrimSpace(d.Major) == "" {
			problems = append(problems, fmt.Sprintf("degrees[%d].major is required", i))
		}
		if d.Year == 0 {
			problems = append(problems, fmt.Sprintf("degrees[%d].year is required", i))
		} else if d.Year < 1900 || d.Year > year+1 {
			problems = append(problems, fmt.Sprintf("degrees[%d].year is out of range", i))
		}
		out = append(out, models.Degree{
			Type:        strings.TrimSpace(d.Type),
			School:      strings.TrimSpace(d.School),
			Major:       strings.TrimSpace(d.Major),
			Year:        d.Year,
			IsGraduated: d.IsGraduated,
		})
	}
	if len(problems) > 0 {
		return nil, problems
	}
	return out, nil
}
