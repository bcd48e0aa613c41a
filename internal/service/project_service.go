package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/workforce-api/internal/domain"
	"github.com/workforce-api/internal/dto"
	"github.com/workforce-api/internal/repository"
)

// ProjectService определяет интерфейс бизнес-логики для проектов
type ProjectService interface {
	GetAll(ctx context.Context, params dto.PaginationParams) (dto.PaginatedResult[dto.ProjectResponse], error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProjectResponse, error)
	Search(ctx context.Context, term string, params dto.PaginationParams) (dto.PaginatedResult[dto.ProjectResponse], error)
	GetEmployees(ctx context.Context, id uuid.UUID, params dto.PaginationParams) (dto.PaginatedResult[dto.EmployeeResponse], error)
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	Update(ctx context.Context, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectService struct {
	uows repository.UnitOfWorkFactory
}

// NewProjectService создаёт новый экземпляр сервиса
func NewProjectService(uows repository.UnitOfWorkFactory) ProjectService {
	return &projectService{uows: uows}
}

func (s *projectService) GetAll(ctx context.Context, params dto.PaginationParams) (dto.PaginatedResult[dto.ProjectResponse], error) {
	uow := s.uows.New()
	defer uow.Close()

	return repository.Paginate(uow.Projects().Query(ctx), params, toProjectResponse,
		repository.WithProjectEmployeeCount, repository.OrderProjects)
}

func (s *projectService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProjectResponse, error) {
	uow := s.uows.New()
	defer uow.Close()

	project, err := repository.GetProject(ctx, uow.Projects(), id)
	if err != nil {
		return nil, err
	}
	resp := toProjectResponse(*project)
	return &resp, nil
}

func (s *projectService) Search(ctx context.Context, term string, params dto.PaginationParams) (dto.PaginatedResult[dto.ProjectResponse], error) {
	uow := s.uows.New()
	defer uow.Close()

	query := uow.Projects().Query(ctx).Scopes(repository.SearchProjects(strings.TrimSpace(term)))
	return repository.Paginate(query, params, toProjectResponse,
		repository.WithProjectEmployeeCount, repository.OrderProjects)
}

// GetEmployees возвращает неудалённых сотрудников, назначенных на проект
func (s *projectService) GetEmployees(ctx context.Context, id uuid.UUID, params dto.PaginationParams) (dto.PaginatedResult[dto.EmployeeResponse], error) {
	uow := s.uows.New()
	defer uow.Close()

	exists, err := uow.Projects().Exists(ctx, id)
	if err != nil {
		return dto.PaginatedResult[dto.EmployeeResponse]{}, err
	}
	if !exists {
		return dto.PaginatedResult[dto.EmployeeResponse]{}, domain.ProjectNotFound(id)
	}

	query := uow.Employees().Query(ctx).Scopes(repository.EmployeesOfProject(id))
	return repository.Paginate(query, params, toEmployeeResponse,
		repository.WithEmployeeDepartment, repository.OrderEmployees)
}

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	uow := s.uows.New()
	defer uow.Close()

	return repository.ExecuteInTransaction(ctx, uow, func(ctx context.Context) (*dto.ProjectResponse, error) {
		project := uow.Projects().Add(&domain.Project{
			BaseEntity:  domain.BaseEntity{ID: uuid.New()},
			Name:        strings.TrimSpace(req.Name),
			Description: trimmed(req.Description),
			StartDate:   req.StartDate.Time,
			EndDate:     req.EndDate.TimePtr(),
		})

		resp := toProjectResponse(*project)
		return &resp, nil
	})
}

func (s *projectService) Update(ctx context.Context, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	uow := s.uows.New()
	defer uow.Close()

	return repository.ExecuteInTransaction(ctx, uow, func(ctx context.Context) (*dto.ProjectResponse, error) {
		project, err := repository.GetProject(ctx, uow.Projects(), req.ID)
		if err != nil {
			return nil, err
		}

		project.Name = strings.TrimSpace(req.Name)
		project.Description = trimmed(req.Description)
		project.StartDate = req.StartDate.Time
		project.EndDate = req.EndDate.TimePtr()
		uow.Projects().Update(project)

		resp := toProjectResponse(*project)
		return &resp, nil
	})
}

func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uows.New()
	defer uow.Close()

	return repository.InTransaction(ctx, uow, func(ctx context.Context) error {
		exists, err := uow.Projects().Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ProjectNotFound(id)
		}
		return uow.Projects().SoftDelete(ctx, id)
	})
}
