package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"spycatagency/internal/models"
)

var ErrTargetNotFound = errors.New("target not found")

// Targets are only ever created inside the mission-creation transaction
// and only ever deleted by the cascade from their mission.
type TargetRepository interface {
	GetById(ctx context.Context, id int64) (models.Target, error)
	GetByMissionId(ctx context.Context, missionId int64) ([]models.Target, error)
	Complete(ctx context.Context, id int64) error
}

type TxTargetRepository interface {
	TargetRepository
	AddWithTx(ctx context.Context, tx *sql.Tx, target models.Target) (models.Target, error)
}

type MySQLTargetRepository struct {
	db *sql.DB
}

func NewMySQLTargetRepository(db *sql.DB) *MySQLTargetRepository {
	return &MySQLTargetRepository{
		db: db,
	}
}

func (m *MySQLTargetRepository) AddWithTx(ctx context.Context, tx *sql.Tx, target models.Target) (models.Target, error) {
	createTargetQuery := `INSERT INTO targets (mission_id, target_name, country, completed) VALUES (?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, createTargetQuery, target.MissionId, target.Name, target.Country, target.Completed)
	if err != nil {
		return models.Target{}, fmt.Errorf("failed to add new target: %w", err)
	}
	target.Id, err = result.LastInsertId()
	if err != nil {
		return models.Target{}, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return target, nil
}

func (m *MySQLTargetRepository) GetById(ctx context.Context, id int64) (models.Target, error) {
	var t models.Target
	getByIdQuery := `SELECT id, mission_id, target_name, country, completed FROM targets WHERE id = ?`
	err := m.db.QueryRowContext(ctx, getByIdQuery, id).
		Scan(&t.Id, &t.MissionId, &t.Name, &t.Country, &t.Completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Target{}, ErrTargetNotFound
		}
		return models.Target{}, fmt.Errorf("failed to get target by id: %w", err)
	}
	return t, nil
}

func (m *MySQLTargetRepository) GetByMissionId(ctx context.Context, missionId int64) ([]models.Target, error) {
	targets := []models.Target{}
	getByMissionIdQuery := `SELECT id, mission_id, target_name, country, completed FROM targets WHERE mission_id = ? ORDER BY id`
	rows, err := m.db.QueryContext(ctx, getByMissionIdQuery, missionId)
	if err != nil {
		return nil, fmt.Errorf("failed to get targets by mission id: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Target
		if err := rows.Scan(&t.Id, &t.MissionId, &t.Name, &t.Country, &t.Completed); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return targets, nil
}

// Complete only ever flips completed to true. There is no way back.
// RowsAffected is not checked: MySQL reports zero changed rows when the
// value is already TRUE, which is not the same thing as a missing target.
func (m *MySQLTargetRepository) Complete(ctx context.Context, id int64) error {
	completeQuery := `UPDATE targets SET completed = TRUE WHERE id = ?`
	if _, err := m.db.ExecContext(ctx, completeQuery, id); err != nil {
		return fmt.Errorf("failed to complete target: %w", err)
	}
	return nil
}
