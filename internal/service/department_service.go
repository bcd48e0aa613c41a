package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/workforce-api/internal/domain"
	"github.com/workforce-api/internal/dto"
	"github.com/workforce-api/internal/repository"
)

// DepartmentService определяет интерфейс бизнес-логики для отделов
type DepartmentService interface {
	GetAll(ctx context.Context, params dto.PaginationParams) (dto.PaginatedResult[dto.DepartmentResponse], error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.DepartmentResponse, error)
	Search(ctx context.Context, term string, params dto.PaginationParams) (dto.PaginatedResult[dto.DepartmentResponse], error)
	GetEmployees(ctx context.Context, id uuid.UUID, params dto.PaginationParams) (dto.PaginatedResult[dto.EmployeeResponse], error)
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	Update(ctx context.Context, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type departmentService struct {
	uows repository.UnitOfWorkFactory
}

// NewDepartmentService создаёт новый экземпляр сервиса
func NewDepartmentService(uows repository.UnitOfWorkFactory) DepartmentService {
	return &departmentService{uows: uows}
}

func (s *departmentService) GetAll(ctx context.Context, params dto.PaginationParams) (dto.PaginatedResult[dto.DepartmentResponse], error) {
	uow := s.uows.New()
	defer uow.Close()

	return repository.Paginate(uow.Departments().Query(ctx), params, toDepartmentResponse,
		repository.WithDepartmentEmployeeCount, repository.OrderDepartments)
}

func (s *departmentService) GetByID(ctx context.Context, id uuid.UUID) (*dto.DepartmentResponse, error) {
	uow := s.uows.New()
	defer uow.Close()

	dept, err := repository.GetDepartment(ctx, uow.Departments(), id)
	if err != nil {
		return nil, err
	}
	resp := toDepartmentResponse(*dept)
	return &resp, nil
}

func (s *departmentService) Search(ctx context.Context, term string, params dto.PaginationParams) (dto.PaginatedResult[dto.DepartmentResponse], error) {
	uow := s.uows.New()
	defer uow.Close()

	query := uow.Departments().Query(ctx).Scopes(repository.SearchDepartments(strings.TrimSpace(term)))
	return repository.Paginate(query, params, toDepartmentResponse,
		repository.WithDepartmentEmployeeCount, repository.OrderDepartments)
}

func (s *departmentService) GetEmployees(ctx context.Context, id uuid.UUID, params dto.PaginationParams) (dto.PaginatedResult[dto.EmployeeResponse], error) {
	uow := s.uows.New()
	defer uow.Close()

	exists, err := uow.Departments().Exists(ctx, id)
	if err != nil {
		return dto.PaginatedResult[dto.EmployeeResponse]{}, err
	}
	if !exists {
		return dto.PaginatedResult[dto.EmployeeResponse]{}, domain.DepartmentNotFound(id)
	}

	query := uow.Employees().Query(ctx).Scopes(repository.EmployeesOfDepartment(id))
	return repository.Paginate(query, params, toEmployeeResponse,
		repository.WithEmployeeDepartment, repository.OrderEmployees)
}

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	uow := s.uows.New()
	defer uow.Close()

	return repository.ExecuteInTransaction(ctx, uow, func(ctx context.Context) (*dto.DepartmentResponse, error) {
		dept := uow.Departments().Add(&domain.Department{
			BaseEntity:  domain.BaseEntity{ID: uuid.New()},
			Name:        strings.TrimSpace(req.Name),
			Description: trimmed(req.Description),
		})

		// новый отдел ещё без сотрудников
		resp := toDepartmentResponse(*dept)
		return &resp, nil
	})
}

func (s *departmentService) Update(ctx context.Context, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	uow := s.uows.New()
	defer uow.Close()

	return repository.ExecuteInTransaction(ctx, uow, func(ctx context.Context) (*dto.DepartmentResponse, error) {
		dept, err := repository.GetDepartment(ctx, uow.Departments(), req.ID)
		if err != nil {
			return nil, err
		}

		dept.Name = strings.TrimSpace(req.Name)
		dept.Description = trimmed(req.Description)
		uow.Departments().Update(dept)

		resp := toDepartmentResponse(*dept)
		return &resp, nil
	})
}

func (s *departmentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uows.New()
	defer uow.Close()

	return repository.InTransaction(ctx, uow, func(ctx context.Context) error {
		exists, err := uow.Departments().Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return domain.DepartmentNotFound(id)
		}
		return uow.Departments().SoftDelete(ctx, id)
	})
}
