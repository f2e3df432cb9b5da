package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"spycatagency/internal/models"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrNoteNotFound  = errors.New("note not found")
	ErrDuplicateNote = errors.New("note already exists")
)

const mysqlDuplicateEntry = 1062

type NoteRepository interface {
	Add(ctx context.Context, note models.Note) (models.Note, error)
	GetByTargetId(ctx context.Context, targetId int64) (models.Note, error)
	GetByMissionId(ctx context.Context, missionId int64) ([]models.Note, error)
	UpdateText(ctx context.Context, targetId int64, text string) error
}

type MySQLNoteRepository struct {
	db *sql.DB
}

func NewMySQLNoteRepository(db *sql.DB) *MySQLNoteRepository {
	return &MySQLNoteRepository{db: db}
}

// Add sets created_at once; the column is never touched again. The unique
// key on target_id is the authoritative guard against two notes for the
// same target, so a duplicate-entry error maps to ErrDuplicateNote even
// when the prior existence check raced.
func (m *MySQLNoteRepository) Add(ctx context.Context, note models.Note) (models.Note, error) {
	note.CreatedAt = time.Now().UTC().Truncate(time.Second)
	newNoteQuery := `INSERT INTO notes (target_id, note_text, created_at) VALUES (?, ?, ?)`
	result, err := m.db.ExecContext(ctx, newNoteQuery, note.TargetId, note.Text, note.CreatedAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return models.Note{}, ErrDuplicateNote
		}
		return models.Note{}, fmt.Errorf("failed to add new note: %w", err)
	}
	note.Id, err = result.LastInsertId()
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return note, nil
}

func (m *MySQLNoteRepository) GetByTargetId(ctx context.Context, targetId int64) (models.Note, error) {
	var n models.Note
	getByTargetQuery := `SELECT id, target_id, note_text, created_at FROM notes WHERE target_id = ?`
	err := m.db.QueryRowContext(ctx, getByTargetQuery, targetId).
		Scan(&n.Id, &n.TargetId, &n.Text, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, fmt.Errorf("failed to get note by target id: %w", err)
	}
	return n, nil
}

func (m *MySQLNoteRepository) GetByMissionId(ctx context.Context, missionId int64) ([]models.Note, error) {
	notes := []models.Note{}
	getByMissionQuery := `SELECT n.id, n.target_id, n.note_text, n.created_at
		FROM notes n
		JOIN targets t ON t.id = n.target_id
		WHERE t.mission_id = ?
		ORDER BY n.id`
	rows, err := m.db.QueryContext(ctx, getByMissionQuery, missionId)
	if err != nil {
		return nil, fmt.Errorf("failed to get notes by mission id: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.Id, &n.TargetId, &n.Text, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return notes, nil
}

func (m *MySQLNoteRepository) UpdateText(ctx context.Context, targetId int64, text string) error {
	updateQuery := `UPDATE notes SET note_text = ? WHERE target_id = ?`
	if _, err := m.db.ExecContext(ctx, updateQuery, text, targetId); err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return nil
}
