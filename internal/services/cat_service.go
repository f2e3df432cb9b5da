package services

import (
	"context"

	"spycatagency/internal/models"
	"spycatagency/internal/myerrors"
	"spycatagency/internal/repositories"
	"spycatagency/pkg/catapi"
)

type CatService interface {
	Add(ctx context.Context, cat models.Cat) (models.Cat, error)
	GetById(ctx context.Context, id int64) (models.Cat, error)
	GetAll(ctx context.Context, query models.PaginationQuery) (models.PaginatedCats, error)
	Update(ctx context.Context, id int64, update models.CatUpdate) (models.Cat, error)
	DeleteById(ctx context.Context, id int64) error
	GetMissions(ctx context.Context, catId int64) ([]models.Mission, error)
}

type DefaultCatService struct {
	catRepo        repositories.CatRepository
	missionService MissionService
	catAPI         catapi.CatAPI
}

func NewDefaultCatService(catRepo repositories.CatRepository, missionService MissionService, catAPI catapi.CatAPI) *DefaultCatService {
	return &DefaultCatService{
		catRepo:        catRepo,
		missionService: missionService,
		catAPI:         catAPI,
	}
}

// Add validates the breed against the external registry before anything is
// written. The breed check only happens here: updates never revalidate.
func (d *DefaultCatService) Add(ctx context.Context, cat models.Cat) (models.Cat, error) {
	if cat.Breed == "" {
		return models.Cat{}, &myerrors.ValidationError{Message: "field 'breed' is required"}
	}
	if cat.YearsOfExperience < 0 {
		return models.Cat{}, &myerrors.ValidationError{Message: "years of experience must be non-negative"}
	}
	if cat.Salary.IsNegative() {
		return models.Cat{}, &myerrors.ValidationError{Message: "salary must be non-negative"}
	}
	if err := d.catAPI.ValidateBreed(ctx, cat.Breed); err != nil {
		return models.Cat{}, err
	}

	cat.Salary = cat.Salary.Round(2)
	newCat, err := d.catRepo.Add(ctx, cat)
	if err != nil {
		return models.Cat{}, err
	}
	return newCat, nil
}

func (d *DefaultCatService) GetById(ctx context.Context, id int64) (models.Cat, error) {
	return d.catRepo.GetById(ctx, id)
}

func (d *DefaultCatService) GetAll(ctx context.Context, query models.PaginationQuery) (models.PaginatedCats, error) {
	query = query.WithDefaults()
	total, err := d.catRepo.Count(ctx)
	if err != nil {
		return models.PaginatedCats{}, err
	}
	cats, err := d.catRepo.GetPage(ctx, query.Size, query.Offset())
	if err != nil {
		return models.PaginatedCats{}, err
	}
	return models.PaginatedCats{
		Cats: cats,
		Meta: models.NewPagination(query.Page, query.Size, total),
	}, nil
}

func (d *DefaultCatService) Update(ctx context.Context, id int64, update models.CatUpdate) (models.Cat, error) {
	if update.Salary != nil {
		if update.Salary.IsNegative() {
			return models.Cat{}, &myerrors.ValidationError{Message: "salary must be non-negative"}
		}
		rounded := update.Salary.Round(2)
		update.Salary = &rounded
	}
	if err := d.catRepo.Update(ctx, id, update); err != nil {
		return models.Cat{}, err
	}
	return d.catRepo.GetById(ctx, id)
}

func (d *DefaultCatService) DeleteById(ctx context.Context, id int64) error {
	return d.catRepo.DeleteById(ctx, id)
}

func (d *DefaultCatService) GetMissions(ctx context.Context, catId int64) ([]models.Mission, error) {
	exists, err := d.catRepo.Exists(ctx, catId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repositories.ErrCatNotFound
	}
	return d.missionService.GetByCatId(ctx, catId)
}
