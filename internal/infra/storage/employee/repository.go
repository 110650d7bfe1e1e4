// Package employee репозиторий справочника техников
package employee

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Serryudy/EAD-sub000/internal/domain"
	"github.com/Serryudy/EAD-sub000/pkg/dbmetrics"
	"github.com/Serryudy/EAD-sub000/pkg/psqlbuilder"
)

var employeeColumns = []string{
	"id",
	"name",
	"role",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий справочника сотрудников
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive возвращает активных техников в стабильном порядке (по id).
// Порядок важен: автоназначение выбирает первого свободного (first-fit).
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(employeeColumns...).
		From("employees").
		Where(squirrel.Eq{
			"role":      domain.RoleEmployee,
			"is_active": true,
		}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEmployees(rows)
}

// GetByID получает сотрудника по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(employeeColumns...).
		From("employees").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		employee  domain.Employee
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&employee.ID,
		&employee.Name,
		&employee.Role,
		&employee.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan employee: %v", ErrScanRow, err)
	}

	employee.CreatedAt = createdAt.Time
	employee.UpdatedAt = updatedAt.Time

	return &employee, nil
}

func (r *Repository) scanEmployees(rows *sql.Rows) ([]*domain.Employee, error) {
	employees := make([]*domain.Employee, 0)

	for rows.Next() {
		var (
			employee  domain.Employee
			createdAt sql.NullTime
			updatedAt sql.NullTime
		)

		err := rows.Scan(
			&employee.ID,
			&employee.Name,
			&employee.Role,
			&employee.IsActive,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanEmployees - scan row: %v", ErrScanRow, err)
		}

		employee.CreatedAt = createdAt.Time
		employee.UpdatedAt = updatedAt.Time

		employees = append(employees, &employee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEmployees - rows error: %v", ErrScanRow, err)
	}

	return employees, nil
}
