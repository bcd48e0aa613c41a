package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/workforce-api/internal/domain"
	"github.com/workforce-api/internal/repository"
)

// Фиксированные идентификаторы начальных данных
var (
	BackendDepartmentID     = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	EngineeringDepartmentID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	SalesDepartmentID       = uuid.MustParse("33333333-3333-3333-3333-333333333333")

	AssessmentProjectID    = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	MobileAppProjectID     = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	DataMigrationProjectID = uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")

	panagiotisID  = uuid.MustParse("dddddddd-dddd-dddd-dddd-dddddddddddd")
	nikolaosID    = uuid.MustParse("eeeeeeee-eeee-eeee-eeee-eeeeeeeeeeee")
	georgiosID    = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")
	mariaID       = uuid.MustParse("00000000-0000-0000-0001-000000000001")
	eleniID       = uuid.MustParse("00000000-0000-0000-0002-000000000002")
	dimitriosID   = uuid.MustParse("00000000-0000-0000-0003-000000000003")
	konstantinaID = uuid.MustParse("00000000-0000-0000-0004-000000000004")
	athanasiosID  = uuid.MustParse("00000000-0000-0000-0005-000000000005")
)

// Seed заполняет пустую БД начальными данными. Повторный вызов ничего не меняет.
func Seed(ctx context.Context, uows repository.UnitOfWorkFactory, logger *slog.Logger) error {
	uow := uows.New()
	defer uow.Close()

	var existing int64
	err := uow.Departments().QueryWithDeleted(ctx).
		Where("id = ?", BackendDepartmentID).
		Count(&existing).Error
	if err != nil {
		return fmt.Errorf("check seed data: %w", err)
	}
	if existing > 0 {
		logger.Info("seed data already present")
		return nil
	}

	err = repository.InTransaction(ctx, uow, func(ctx context.Context) error {
		for _, e := range seedDepartments {
			uow.Departments().Add(&e)
		}
		for _, e := range seedProjects {
			uow.Projects().Add(&e)
		}
		for _, e := range seedEmployees {
			uow.Employees().Add(&e)
		}
		for _, a := range seedAssignments {
			uow.Assignments().Add(a[0], a[1])
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	logger.Info("seed data inserted",
		slog.Int("departments", len(seedDepartments)),
		slog.Int("projects", len(seedProjects)),
		slog.Int("employees", len(seedEmployees)),
	)
	return nil
}

func ptr[T any](v T) *T {
	return &v
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

var seedDepartments = []domain.Department{
	{
		BaseEntity:  domain.BaseEntity{ID: BackendDepartmentID},
		Name:        "Backend Developing",
		Description: ptr("Backend Developing department"),
	},
	{
		BaseEntity:  domain.BaseEntity{ID: EngineeringDepartmentID},
		Name:        "Engineering",
		Description: ptr("Core engineering and infrastructure team"),
	},
	{
		BaseEntity:  domain.BaseEntity{ID: SalesDepartmentID},
		Name:        "Sales",
		Description: ptr("Sales and customer relations department"),
	},
}

var seedProjects = []domain.Project{
	{
		BaseEntity:  domain.BaseEntity{ID: AssessmentProjectID},
		Name:        "Backend Developer Technical Assessment",
		Description: ptr("Technical assessment project for evaluating backend development skills"),
		StartDate:   date(2024, time.January, 1),
		EndDate:     ptr(date(2024, time.December, 31)),
	},
	{
		BaseEntity:  domain.BaseEntity{ID: MobileAppProjectID},
		Name:        "Mobile Application Platform",
		Description: ptr("Cross-platform mobile application development project"),
		StartDate:   date(2024, time.March, 1),
	},
	{
		BaseEntity:  domain.BaseEntity{ID: DataMigrationProjectID},
		Name:        "Data Migration Initiative",
		Description: ptr("Legacy system data migration to new cloud infrastructure"),
		StartDate:   date(2024, time.June, 1),
		EndDate:     ptr(date(2024, time.September, 30)),
	},
}

var seedEmployees = []domain.Employee{
	{
		BaseEntity:   domain.BaseEntity{ID: panagiotisID},
		FirstName:    "Panagiotis",
		LastName:     "Stavrakellis",
		Email:        "panagiotis.stavrakellis@company.com",
		Status:       domain.EmployeeStatusActive,
		HireDate:     date(2020, time.January, 15),
		Notes:        ptr("Backend Developer"),
		DepartmentID: BackendDepartmentID,
	},
	{
		BaseEntity:   domain.BaseEntity{ID: nikolaosID},
		FirstName:    "Nikolaos",
		LastName:     "Papadopoulos",
		Email:        "nikolaos.papadopoulos@company.com",
		Status:       domain.EmployeeStatusActive,
		HireDate:     date(2021, time.March, 10),
		Notes:        ptr("Frontend Developer"),
		DepartmentID: BackendDepartmentID,
	},
	{
		BaseEntity:   domain.BaseEntity{ID: georgiosID},
		FirstName:    "Georgios",
		LastName:     "Konstantinidis",
		Email:        "georgios.konstantinidis@company.com",
		Status:       domain.EmployeeStatusActive,
		HireDate:     date(2019, time.July, 22),
		Notes:        ptr("DevOps Engineer"),
		DepartmentID: EngineeringDepartmentID,
	},
	{
		BaseEntity:   domain.BaseEntity{ID: mariaID},
		FirstName:    "Maria",
		LastName:     "Georgiou",
		Email:        "maria.georgiou@company.com",
		Status:       domain.EmployeeStatusActive,
		HireDate:     date(2022, time.February, 1),
		Notes:        ptr("QA Engineer"),
		DepartmentID: EngineeringDepartmentID,
	},
	{
		BaseEntity:   domain.BaseEntity{ID: eleniID},
		FirstName:    "Eleni",
		LastName:     "Dimitriou",
		Email:        "eleni.dimitriou@company.com",
		Status:       domain.EmployeeStatusActive,
		HireDate:     date(2020, time.November, 5),
		Notes:        ptr("Frontend Developer"),
		DepartmentID: BackendDepartmentID,
	},
	{
		BaseEntity:   domain.BaseEntity{ID: dimitriosID},
		FirstName:    "Dimitrios",
		LastName:     "Antonopoulos",
		Email:        "dimitrios.antonopoulos@company.com",
		Status:       domain.EmployeeStatusInactive,
		HireDate:     date(2018, time.May, 15),
		Notes:        ptr("Former Project Manager"),
		DepartmentID: SalesDepartmentID,
	},
	{
		BaseEntity:   domain.BaseEntity{ID: konstantinaID},
		FirstName:    "Konstantina",
		LastName:     "Vasileiou",
		Email:        "konstantina.vasileiou@company.com",
		Status:       domain.EmployeeStatusActive,
		HireDate:     date(2023, time.January, 10),
		Notes:        ptr("Sales Representative"),
		DepartmentID: SalesDepartmentID,
	},
	{
		BaseEntity:   domain.BaseEntity{ID: athanasiosID},
		FirstName:    "Athanasios",
		LastName:     "Nikolaidis",
		Email:        "athanasios.nikolaidis@company.com",
		Status:       domain.EmployeeStatusActive,
		HireDate:     date(2021, time.August, 20),
		Notes:        ptr("Database Administrator"),
		DepartmentID: EngineeringDepartmentID,
	},
}

// пары (сотрудник, проект)
var seedAssignments = [][2]uuid.UUID{
	{panagiotisID, AssessmentProjectID},
	{nikolaosID, AssessmentProjectID},
	{mariaID, AssessmentProjectID},

	{eleniID, MobileAppProjectID},
	{nikolaosID, MobileAppProjectID},
	{georgiosID, MobileAppProjectID},

	{athanasiosID, DataMigrationProjectID},
	{georgiosID, DataMigrationProjectID},
	{panagiotisID, DataMigrationProjectID},
}
