package services

import (
	"context"
	"database/sql"

	"spycatagency/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockCatRepository struct {
	mock.Mock
}

func (m *MockCatRepository) Add(ctx context.Context, cat models.Cat) (models.Cat, error) {
	args := m.Called(ctx, cat)
	return args.Get(0).(models.Cat), args.Error(1)
}

func (m *MockCatRepository) GetById(ctx context.Context, id int64) (models.Cat, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Cat), args.Error(1)
}

func (m *MockCatRepository) GetPage(ctx context.Context, limit, offset int) ([]models.Cat, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.Cat), args.Error(1)
}

func (m *MockCatRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCatRepository) Update(ctx context.Context, id int64, update models.CatUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockCatRepository) DeleteById(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockMissionRepository struct {
	mock.Mock
}

func (m *MockMissionRepository) Add(ctx context.Context, mission models.Mission) (models.Mission, error) {
	args := m.Called(ctx, mission)
	return args.Get(0).(models.Mission), args.Error(1)
}

func (m *MockMissionRepository) AddWithTx(ctx context.Context, tx *sql.Tx, mission models.Mission) (models.Mission, error) {
	args := m.Called(ctx, tx, mission)
	return args.Get(0).(models.Mission), args.Error(1)
}

// WithTransaction runs the callback directly; transactional behavior itself
// is covered by the integration suite.
func (m *MockMissionRepository) WithTransaction(ctx context.Context, fn func(*sql.Tx) (models.Mission, error)) (models.Mission, error) {
	mission, err := fn(nil)
	if err != nil {
		return models.Mission{}, err
	}
	return mission, nil
}

func (m *MockMissionRepository) GetById(ctx context.Context, id int64) (models.Mission, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Mission), args.Error(1)
}

func (m *MockMissionRepository) GetPage(ctx context.Context, limit, offset int) ([]models.Mission, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.Mission), args.Error(1)
}

func (m *MockMissionRepository) GetByCatId(ctx context.Context, catId int64) ([]models.Mission, error) {
	args := m.Called(ctx, catId)
	return args.Get(0).([]models.Mission), args.Error(1)
}

func (m *MockMissionRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockMissionRepository) Assign(ctx context.Context, missionId, catId int64) error {
	args := m.Called(ctx, missionId, catId)
	return args.Error(0)
}

func (m *MockMissionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMissionRepository) ExistsActiveForCat(ctx context.Context, catId, excludeMissionId int64) (bool, error) {
	args := m.Called(ctx, catId, excludeMissionId)
	return args.Bool(0), args.Error(1)
}

type MockTargetRepository struct {
	mock.Mock
}

func (m *MockTargetRepository) AddWithTx(ctx context.Context, tx *sql.Tx, target models.Target) (models.Target, error) {
	args := m.Called(ctx, tx, target)
	return args.Get(0).(models.Target), args.Error(1)
}

func (m *MockTargetRepository) GetById(ctx context.Context, id int64) (models.Target, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Target), args.Error(1)
}

func (m *MockTargetRepository) GetByMissionId(ctx context.Context, missionId int64) ([]models.Target, error) {
	args := m.Called(ctx, missionId)
	return args.Get(0).([]models.Target), args.Error(1)
}

func (m *MockTargetRepository) Complete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Add(ctx context.Context, note models.Note) (models.Note, error) {
	args := m.Called(ctx, note)
	return args.Get(0).(models.Note), args.Error(1)
}

func (m *MockNoteRepository) GetByTargetId(ctx context.Context, targetId int64) (models.Note, error) {
	args := m.Called(ctx, targetId)
	return args.Get(0).(models.Note), args.Error(1)
}

func (m *MockNoteRepository) GetByMissionId(ctx context.Context, missionId int64) ([]models.Note, error) {
	args := m.Called(ctx, missionId)
	return args.Get(0).([]models.Note), args.Error(1)
}

func (m *MockNoteRepository) UpdateText(ctx context.Context, targetId int64, text string) error {
	args := m.Called(ctx, targetId, text)
	return args.Error(0)
}

type MockCatAPI struct {
	mock.Mock
}

func (m *MockCatAPI) ValidateBreed(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
