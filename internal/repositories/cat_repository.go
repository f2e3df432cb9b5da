package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"spycatagency/internal/models"
)

var ErrCatNotFound = errors.New("cat not found")

type CatRepository interface {
	Add(ctx context.Context, cat models.Cat) (models.Cat, error)
	GetById(ctx context.Context, id int64) (models.Cat, error)
	GetPage(ctx context.Context, limit, offset int) ([]models.Cat, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, id int64, update models.CatUpdate) error
	DeleteById(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type MySQLCatRepository struct {
	db *sql.DB
}

func NewMySQLCatRepository(db *sql.DB) *MySQLCatRepository {
	return &MySQLCatRepository{db: db}
}

func (m *MySQLCatRepository) Add(ctx context.Context, cat models.Cat) (models.Cat, error) {
	newCatQuery := `INSERT INTO cats(cat_name, years_of_experience, breed, salary) VALUES(?,?,?,?)`
	result, err := m.db.ExecContext(ctx, newCatQuery, cat.Name, cat.YearsOfExperience, cat.Breed, cat.Salary)
	if err != nil {
		return models.Cat{}, fmt.Errorf("failed to add new cat: %w", err)
	}

	cat.Id, err = result.LastInsertId()
	if err != nil {
		return models.Cat{}, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return cat, nil
}

func (m *MySQLCatRepository) GetById(ctx context.Context, id int64) (models.Cat, error) {
	var c models.Cat
	getByIdQuery := "SELECT id, cat_name, years_of_experience, breed, salary FROM cats WHERE id = ?"
	err := m.db.QueryRowContext(ctx, getByIdQuery, id).
		Scan(&c.Id, &c.Name, &c.YearsOfExperience, &c.Breed, &c.Salary)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Cat{}, ErrCatNotFound
		}
		return models.Cat{}, fmt.Errorf("failed to get cat by id: %w", err)
	}
	return c, nil
}

func (m *MySQLCatRepository) GetPage(ctx context.Context, limit, offset int) ([]models.Cat, error) {
	cats := []models.Cat{}
	getPageQuery := "SELECT id, cat_name, years_of_experience, breed, salary FROM cats ORDER BY id LIMIT ? OFFSET ?"
	rows, err := m.db.QueryContext(ctx, getPageQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get cats page: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cat models.Cat
		if err := rows.Scan(&cat.Id, &cat.Name, &cat.YearsOfExperience, &cat.Breed, &cat.Salary); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		cats = append(cats, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return cats, nil
}

func (m *MySQLCatRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := m.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cats").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count cats: %w", err)
	}
	return total, nil
}

func (m *MySQLCatRepository) Update(ctx context.Context, id int64, update models.CatUpdate) error {
	exists, err := m.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCatNotFound
	}

	var sets []string
	var args []any
	if update.Name != nil {
		sets = append(sets, "cat_name = ?")
		args = append(args, *update.Name)
	}
	if update.YearsOfExperience != nil {
		sets = append(sets, "years_of_experience = ?")
		args = append(args, *update.YearsOfExperience)
	}
	if update.Breed != nil {
		sets = append(sets, "breed = ?")
		args = append(args, *update.Breed)
	}
	if update.Salary != nil {
		sets = append(sets, "salary = ?")
		args = append(args, *update.Salary)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	updateCatQuery := "UPDATE cats SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	_, err = m.db.ExecContext(ctx, updateCatQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to update cat: %w", err)
	}
	return nil
}

// DeleteById removes the cat. The cat_id column on missions is declared
// ON DELETE SET NULL, so the cat's missions keep running unassigned.
func (m *MySQLCatRepository) DeleteById(ctx context.Context, id int64) error {
	exists, err := m.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCatNotFound
	}

	deleteCatQuery := "DELETE FROM cats WHERE id = ?"
	_, err = m.db.ExecContext(ctx, deleteCatQuery, id)
	if err != nil {
		return fmt.Errorf("failed to delete cat: %w", err)
	}
	return nil
}

func (m *MySQLCatRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	catExistsQuery := "SELECT EXISTS (SELECT 1 FROM cats WHERE id = ?)"
	err := m.db.QueryRowContext(ctx, catExistsQuery, id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("existence check failed: %w", err)
	}
	return exists, nil
}
