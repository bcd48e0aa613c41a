package service

import (
	"strings"

	"github.com/workforce-api/internal/domain"
	"github.com/workforce-api/internal/dto"
)

func toDepartmentResponse(d domain.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		EmployeeCount: int(d.EmployeeCount),
	}
}

func toEmployeeResponse(e domain.Employee) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		Status:       e.Status,
		HireDate:     e.HireDate,
		Notes:        e.Notes,
		DepartmentID: e.DepartmentID,
	}
	if e.Department != nil {
		resp.DepartmentName = e.Department.Name
	}
	return resp
}

func toEmployeeDetailResponse(e domain.Employee, projects []domain.Project) dto.EmployeeDetailResponse {
	items := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, toProjectResponse(p))
	}
	return dto.EmployeeDetailResponse{
		EmployeeResponse: toEmployeeResponse(e),
		Projects:         items,
	}
}

func toProjectResponse(p domain.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		EmployeeCount: int(p.EmployeeCount),
	}
}

// trimmed обрезает пробелы в необязательной строке
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
