package services

import (
	"context"
	"database/sql"
	"errors"

	"spycatagency/internal/models"
	"spycatagency/internal/myerrors"
	"spycatagency/internal/repositories"
)

type MissionService interface {
	Add(ctx context.Context, create models.MissionCreate) (models.Mission, error)
	GetById(ctx context.Context, id int64) (models.Mission, error)
	GetAll(ctx context.Context, query models.PaginationQuery) (models.PaginatedMissions, error)
	GetByCatId(ctx context.Context, catId int64) ([]models.Mission, error)
	Assign(ctx context.Context, missionId, catId int64) (models.Mission, error)
	Delete(ctx context.Context, missionId int64) error
	CompleteTarget(ctx context.Context, targetId int64) (models.Target, error)
	CreateNote(ctx context.Context, targetId int64, text string) (models.Note, error)
	UpdateNote(ctx context.Context, targetId int64, text string) (models.Note, error)
}

type DefaultMissionService struct {
	missionRepo repositories.TxMissionRepository
	targetRepo  repositories.TxTargetRepository
	noteRepo    repositories.NoteRepository
	catRepo     repositories.CatRepository
}

func NewDefaultMissionService(
	missionRepo repositories.TxMissionRepository,
	targetRepo repositories.TxTargetRepository,
	noteRepo repositories.NoteRepository,
	catRepo repositories.CatRepository,
) *DefaultMissionService {
	return &DefaultMissionService{
		missionRepo: missionRepo,
		targetRepo:  targetRepo,
		noteRepo:    noteRepo,
		catRepo:     catRepo,
	}
}

// Add creates the mission and its 1-3 targets in one transaction so a
// partial target set is never visible.
func (d *DefaultMissionService) Add(ctx context.Context, create models.MissionCreate) (models.Mission, error) {
	if err := CheckTargetCount(len(create.Targets)); err != nil {
		return models.Mission{}, err
	}
	if create.CatId != nil {
		exists, err := d.catRepo.Exists(ctx, *create.CatId)
		if err != nil {
			return models.Mission{}, err
		}
		if !exists {
			return models.Mission{}, repositories.ErrCatNotFound
		}
	}

	savedMission, err := d.missionRepo.WithTransaction(ctx,
		func(tx *sql.Tx) (models.Mission, error) {
			sm, err := d.missionRepo.AddWithTx(ctx, tx, models.Mission{CatId: create.CatId})
			if err != nil {
				return models.Mission{}, err
			}
			for _, t := range create.Targets {
				nt, err := d.targetRepo.AddWithTx(ctx, tx, models.Target{
					MissionId: sm.Id,
					Name:      t.Name,
					Country:   t.Country,
					Completed: t.Completed,
				})
				if err != nil {
					return models.Mission{}, err
				}
				sm.Targets = append(sm.Targets, nt)
			}
			return sm, nil
		})
	if err != nil {
		return models.Mission{}, err
	}
	savedMission.Completed = MissionCompleted(savedMission.Targets)
	return savedMission, nil
}

func (d *DefaultMissionService) GetById(ctx context.Context, id int64) (models.Mission, error) {
	mission, err := d.missionRepo.GetById(ctx, id)
	if err != nil {
		return models.Mission{}, err
	}
	return d.hydrate(ctx, mission)
}

func (d *DefaultMissionService) GetAll(ctx context.Context, query models.PaginationQuery) (models.PaginatedMissions, error) {
	query = query.WithDefaults()
	total, err := d.missionRepo.Count(ctx)
	if err != nil {
		return models.PaginatedMissions{}, err
	}
	missions, err := d.missionRepo.GetPage(ctx, query.Size, query.Offset())
	if err != nil {
		return models.PaginatedMissions{}, err
	}
	for i := range missions {
		missions[i], err = d.hydrate(ctx, missions[i])
		if err != nil {
			return models.PaginatedMissions{}, err
		}
	}
	return models.PaginatedMissions{
		Missions: missions,
		Meta:     models.NewPagination(query.Page, query.Size, total),
	}, nil
}

func (d *DefaultMissionService) GetByCatId(ctx context.Context, catId int64) ([]models.Mission, error) {
	missions, err := d.missionRepo.GetByCatId(ctx, catId)
	if err != nil {
		return nil, err
	}
	for i := range missions {
		missions[i], err = d.hydrate(ctx, missions[i])
		if err != nil {
			return nil, err
		}
	}
	return missions, nil
}

func (d *DefaultMissionService) Assign(ctx context.Context, missionId, catId int64) (models.Mission, error) {
	mission, err := d.GetById(ctx, missionId)
	if err != nil {
		return models.Mission{}, err
	}
	exists, err := d.catRepo.Exists(ctx, catId)
	if err != nil {
		return models.Mission{}, err
	}
	if !exists {
		return models.Mission{}, repositories.ErrCatNotFound
	}
	busy, err := d.missionRepo.ExistsActiveForCat(ctx, catId, missionId)
	if err != nil {
		return models.Mission{}, err
	}
	if err := CheckAssignCat(mission, busy); err != nil {
		return models.Mission{}, err
	}
	if err := d.missionRepo.Assign(ctx, missionId, catId); err != nil {
		return models.Mission{}, err
	}
	mission.CatId = &catId
	return mission, nil
}

func (d *DefaultMissionService) Delete(ctx context.Context, missionId int64) error {
	mission, err := d.missionRepo.GetById(ctx, missionId)
	if err != nil {
		return err
	}
	if err := CheckDeleteMission(mission); err != nil {
		return err
	}
	return d.missionRepo.Delete(ctx, missionId)
}

func (d *DefaultMissionService) CompleteTarget(ctx context.Context, targetId int64) (models.Target, error) {
	target, mission, err := d.loadTargetWithMission(ctx, targetId)
	if err != nil {
		return models.Target{}, err
	}
	if err := CheckCompleteTarget(mission, target); err != nil {
		return models.Target{}, err
	}
	if err := d.targetRepo.Complete(ctx, target.Id); err != nil {
		return models.Target{}, err
	}
	target.Completed = true
	return target, nil
}

func (d *DefaultMissionService) CreateNote(ctx context.Context, targetId int64, text string) (models.Note, error) {
	target, mission, err := d.loadTargetWithMission(ctx, targetId)
	if err != nil {
		return models.Note{}, err
	}
	if err := CheckNoteEligible(mission, target); err != nil {
		return models.Note{}, err
	}

	_, err = d.noteRepo.GetByTargetId(ctx, targetId)
	switch {
	case err == nil:
		return models.Note{}, &myerrors.ConflictError{Message: "note already exists"}
	case !errors.Is(err, repositories.ErrNoteNotFound):
		return models.Note{}, err
	}

	note, err := d.noteRepo.Add(ctx, models.Note{TargetId: targetId, Text: text})
	if err != nil {
		// lost the race to a concurrent create; the unique key caught it
		if errors.Is(err, repositories.ErrDuplicateNote) {
			return models.Note{}, &myerrors.ConflictError{Message: "note already exists"}
		}
		return models.Note{}, err
	}
	return note, nil
}

func (d *DefaultMissionService) UpdateNote(ctx context.Context, targetId int64, text string) (models.Note, error) {
	target, mission, err := d.loadTargetWithMission(ctx, targetId)
	if err != nil {
		return models.Note{}, err
	}
	if err := CheckNoteEligible(mission, target); err != nil {
		return models.Note{}, err
	}
	note, err := d.noteRepo.GetByTargetId(ctx, targetId)
	if err != nil {
		return models.Note{}, err
	}
	if err := d.noteRepo.UpdateText(ctx, targetId, text); err != nil {
		return models.Note{}, err
	}
	note.Text = text
	return note, nil
}

// hydrate attaches targets and notes and derives the completion flag.
func (d *DefaultMissionService) hydrate(ctx context.Context, mission models.Mission) (models.Mission, error) {
	targets, err := d.targetRepo.GetByMissionId(ctx, mission.Id)
	if err != nil {
		return models.Mission{}, err
	}
	notes, err := d.noteRepo.GetByMissionId(ctx, mission.Id)
	if err != nil {
		return models.Mission{}, err
	}
	byTarget := make(map[int64]models.Note, len(notes))
	for _, n := range notes {
		byTarget[n.TargetId] = n
	}
	for i := range targets {
		if n, ok := byTarget[targets[i].Id]; ok {
			note := n
			targets[i].Note = &note
		}
	}
	mission.Targets = targets
	mission.Completed = MissionCompleted(targets)
	return mission, nil
}

func (d *DefaultMissionService) loadTargetWithMission(ctx context.Context, targetId int64) (models.Target, models.Mission, error) {
	target, err := d.targetRepo.GetById(ctx, targetId)
	if err != nil {
		return models.Target{}, models.Mission{}, err
	}
	mission, err := d.missionRepo.GetById(ctx, target.MissionId)
	if err != nil {
		return models.Target{}, models.Mission{}, err
	}
	targets, err := d.targetRepo.GetByMissionId(ctx, mission.Id)
	if err != nil {
		return models.Target{}, models.Mission{}, err
	}
	mission.Targets = targets
	mission.Completed = MissionCompleted(targets)
	return target, mission, nil
}
