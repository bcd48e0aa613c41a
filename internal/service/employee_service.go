package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/workforce-api/internal/domain"
	"github.com/workforce-api/internal/dto"
	"github.com/workforce-api/internal/repository"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	GetAll(ctx context.Context, params dto.PaginationParams) (dto.PaginatedResult[dto.EmployeeResponse], error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.EmployeeDetailResponse, error)
	Search(ctx context.Context, term string, params dto.PaginationParams) (dto.PaginatedResult[dto.EmployeeResponse], error)
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	Update(ctx context.Context, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AssignToProject(ctx context.Context, employeeID, projectID uuid.UUID) error
	RemoveFromProject(ctx context.Context, employeeID, projectID uuid.UUID) error
}

type employeeService struct {
	uows repository.UnitOfWorkFactory
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(uows repository.UnitOfWorkFactory) EmployeeService {
	return &employeeService{uows: uows}
}

func (s *employeeService) GetAll(ctx context.Context, params dto.PaginationParams) (dto.PaginatedResult[dto.EmployeeResponse], error) {
	uow := s.uows.New()
	defer uow.Close()

	return repository.Paginate(uow.Employees().Query(ctx), params, toEmployeeResponse,
		repository.WithEmployeeDepartment, repository.OrderEmployees)
}

// GetByID возвращает сотрудника вместе с его неудалёнными проектами
func (s *employeeService) GetByID(ctx context.Context, id uuid.UUID) (*dto.EmployeeDetailResponse, error) {
	uow := s.uows.New()
	defer uow.Close()

	emp, err := repository.GetEmployee(ctx, uow.Employees(), id)
	if err != nil {
		return nil, err
	}

	projects, err := repository.GetEmployeeProjects(ctx, uow.Projects(), id)
	if err != nil {
		return nil, err
	}

	resp := toEmployeeDetailResponse(*emp, projects)
	return &resp, nil
}

func (s *employeeService) Search(ctx context.Context, term string, params dto.PaginationParams) (dto.PaginatedResult[dto.EmployeeResponse], error) {
	uow := s.uows.New()
	defer uow.Close()

	query := uow.Employees().Query(ctx).Scopes(repository.SearchEmployees(strings.TrimSpace(term)))
	return repository.Paginate(query, params, toEmployeeResponse,
		repository.WithEmployeeDepartment, repository.OrderEmployees)
}

// Create сохраняет сотрудника и перечитывает его вместе с названием отдела
func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	uow := s.uows.New()
	defer uow.Close()

	return repository.ExecuteInTransaction(ctx, uow, func(ctx context.Context) (*dto.EmployeeResponse, error) {
		emp := uow.Employees().Add(&domain.Employee{
			BaseEntity:   domain.BaseEntity{ID: uuid.New()},
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			Email:        strings.TrimSpace(req.Email),
			Status:       req.Status,
			HireDate:     req.HireDate.Time,
			Notes:        trimmed(req.Notes),
			DepartmentID: req.DepartmentID,
		})
		if _, err := uow.SaveChanges(ctx); err != nil {
			return nil, err
		}

		return s.reload(ctx, uow, emp.ID)
	})
}

func (s *employeeService) Update(ctx context.Context, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	uow := s.uows.New()
	defer uow.Close()

	return repository.ExecuteInTransaction(ctx, uow, func(ctx context.Context) (*dto.EmployeeResponse, error) {
		emp, err := repository.GetEmployee(ctx, uow.Employees(), req.ID)
		if err != nil {
			return nil, err
		}

		emp.FirstName = strings.TrimSpace(req.FirstName)
		emp.LastName = strings.TrimSpace(req.LastName)
		emp.Email = strings.TrimSpace(req.Email)
		emp.Status = req.Status
		emp.HireDate = req.HireDate.Time
		emp.Notes = trimmed(req.Notes)
		emp.DepartmentID = req.DepartmentID
		uow.Employees().Update(emp)

		if _, err := uow.SaveChanges(ctx); err != nil {
			return nil, err
		}

		// отдел мог смениться, название берём заново
		return s.reload(ctx, uow, emp.ID)
	})
}

func (s *employeeService) reload(ctx context.Context, uow repository.UnitOfWork, id uuid.UUID) (*dto.EmployeeResponse, error) {
	saved, err := repository.GetEmployee(ctx, uow.Employees(), id)
	if err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(*saved)
	return &resp, nil
}

func (s *employeeService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uows.New()
	defer uow.Close()

	return repository.InTransaction(ctx, uow, func(ctx context.Context) error {
		exists, err := uow.Employees().Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return domain.EmployeeNotFound(id)
		}
		return uow.Employees().SoftDelete(ctx, id)
	})
}

// AssignToProject назначает сотрудника на проект. Повторное назначение не ошибка.
func (s *employeeService) AssignToProject(ctx context.Context, employeeID, projectID uuid.UUID) error {
	uow := s.uows.New()
	defer uow.Close()

	return repository.InTransaction(ctx, uow, func(ctx context.Context) error {
		exists, err := uow.Employees().Exists(ctx, employeeID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.EmployeeNotFound(employeeID)
		}

		exists, err = uow.Projects().Exists(ctx, projectID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ProjectNotFound(projectID)
		}

		assigned, err := uow.Assignments().Exists(ctx, employeeID, projectID)
		if err != nil {
			return err
		}
		if assigned {
			return nil
		}

		uow.Assignments().Add(employeeID, projectID)
		return nil
	})
}

// RemoveFromProject снимает сотрудника с проекта; отсутствующая связь - NotFound
func (s *employeeService) RemoveFromProject(ctx context.Context, employeeID, projectID uuid.UUID) error {
	uow := s.uows.New()
	defer uow.Close()

	return repository.InTransaction(ctx, uow, func(ctx context.Context) error {
		exists, err := uow.Employees().Exists(ctx, employeeID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.EmployeeNotFound(employeeID)
		}

		assigned, err := uow.Assignments().Exists(ctx, employeeID, projectID)
		if err != nil {
			return err
		}
		if !assigned {
			return &domain.AssignmentNotFoundError{EmployeeID: employeeID, ProjectID: projectID}
		}

		uow.Assignments().Remove(employeeID, projectID)
		return nil
	})
}
