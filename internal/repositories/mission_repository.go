package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"spycatagency/internal/models"
)

var ErrMissionNotFound = errors.New("mission not found")

type MissionRepository interface {
	Add(ctx context.Context, mission models.Mission) (models.Mission, error)
	GetById(ctx context.Context, id int64) (models.Mission, error)
	GetPage(ctx context.Context, limit, offset int) ([]models.Mission, error)
	GetByCatId(ctx context.Context, catId int64) ([]models.Mission, error)
	Count(ctx context.Context) (int, error)
	Assign(ctx context.Context, missionId, catId int64) error
	Delete(ctx context.Context, id int64) error
	ExistsActiveForCat(ctx context.Context, catId, excludeMissionId int64) (bool, error)
}

type TxMissionRepository interface {
	MissionRepository
	AddWithTx(ctx context.Context, tx *sql.Tx, mission models.Mission) (models.Mission, error)
	WithTransaction(ctx context.Context, fn func(*sql.Tx) (models.Mission, error)) (models.Mission, error)
}

type MySQLMissionRepository struct {
	db *sql.DB
}

func NewMySQLMissionRepository(db *sql.DB) *MySQLMissionRepository {
	return &MySQLMissionRepository{
		db: db,
	}
}

func (m *MySQLMissionRepository) Add(ctx context.Context, mission models.Mission) (models.Mission, error) {
	return m.add(ctx, m.db, mission)
}

func (m *MySQLMissionRepository) AddWithTx(ctx context.Context, tx *sql.Tx, mission models.Mission) (models.Mission, error) {
	return m.add(ctx, tx, mission)
}

func (m *MySQLMissionRepository) add(ctx context.Context, querier Querier, mission models.Mission) (models.Mission, error) {
	newMissionQuery := `INSERT INTO missions (cat_id) VALUES (?)`
	result, err := querier.ExecContext(ctx, newMissionQuery, mission.CatId)
	if err != nil {
		return models.Mission{}, fmt.Errorf("failed to add new mission: %w", err)
	}
	mission.Id, err = result.LastInsertId()
	if err != nil {
		return models.Mission{}, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return mission, nil
}

func (m *MySQLMissionRepository) WithTransaction(ctx context.Context, fn func(*sql.Tx) (models.Mission, error)) (models.Mission, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Mission{}, err
	}
	defer tx.Rollback()

	mission, err := fn(tx)
	if err != nil {
		return models.Mission{}, err
	}
	return mission, tx.Commit()
}

func (m *MySQLMissionRepository) GetById(ctx context.Context, id int64) (models.Mission, error) {
	var mission models.Mission
	getByIdQuery := `SELECT id, cat_id FROM missions WHERE id = ?`
	err := m.db.QueryRowContext(ctx, getByIdQuery, id).
		Scan(&mission.Id, &mission.CatId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Mission{}, ErrMissionNotFound
		}
		return models.Mission{}, fmt.Errorf("failed to get mission by id: %w", err)
	}
	return mission, nil
}

func (m *MySQLMissionRepository) GetPage(ctx context.Context, limit, offset int) ([]models.Mission, error) {
	getPageQuery := `SELECT id, cat_id FROM missions ORDER BY id LIMIT ? OFFSET ?`
	rows, err := m.db.QueryContext(ctx, getPageQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get missions page: %w", err)
	}
	defer rows.Close()
	return scanMissions(rows)
}

func (m *MySQLMissionRepository) GetByCatId(ctx context.Context, catId int64) ([]models.Mission, error) {
	getByCatQuery := `SELECT id, cat_id FROM missions WHERE cat_id = ? ORDER BY id`
	rows, err := m.db.QueryContext(ctx, getByCatQuery, catId)
	if err != nil {
		return nil, fmt.Errorf("failed to get missions by cat id: %w", err)
	}
	defer rows.Close()
	return scanMissions(rows)
}

func scanMissions(rows *sql.Rows) ([]models.Mission, error) {
	missions := []models.Mission{}
	for rows.Next() {
		var ms models.Mission
		if err := rows.Scan(&ms.Id, &ms.CatId); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		missions = append(missions, ms)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return missions, nil
}

func (m *MySQLMissionRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := m.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM missions").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count missions: %w", err)
	}
	return total, nil
}

func (m *MySQLMissionRepository) Assign(ctx context.Context, missionId, catId int64) error {
	assignMissionQuery := `UPDATE missions SET cat_id = ? WHERE id = ?`
	_, err := m.db.ExecContext(ctx, assignMissionQuery, catId, missionId)
	if err != nil {
		return fmt.Errorf("failed to assign mission: %w", err)
	}
	return nil
}

// Delete relies on ON DELETE CASCADE to take the mission's targets and
// their notes down with it.
func (m *MySQLMissionRepository) Delete(ctx context.Context, id int64) error {
	deleteQuery := `DELETE FROM missions WHERE id = ?`
	res, err := m.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		return fmt.Errorf("failed to delete mission: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMissionNotFound
	}
	return nil
}

// ExistsActiveForCat reports whether the cat is assigned to some other
// mission that still has an incomplete target. The mission being assigned
// is excluded by id only, which deliberately permits reassigning a mission
// that already holds a cat.
func (m *MySQLMissionRepository) ExistsActiveForCat(ctx context.Context, catId, excludeMissionId int64) (bool, error) {
	var exists bool
	activeQuery := `SELECT EXISTS (
		SELECT 1 FROM missions m
		JOIN targets t ON t.mission_id = m.id
		WHERE m.cat_id = ? AND m.id <> ? AND t.completed = FALSE)`
	err := m.db.QueryRowContext(ctx, activeQuery, catId, excludeMissionId).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to do active mission check: %w", err)
	}
	return exists, nil
}
