package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iliyamo/wonderland-tickets/internal/model"
)

// GormShowingRepo implements ShowingStore with GORM.  It is used when the
// catalog lives in Postgres (CATALOG_DRIVER=postgres).
type GormShowingRepo struct {
	db *gorm.DB
}

func NewGormShowingRepo(db *gorm.DB) *GormShowingRepo {
	return &GormShowingRepo{db: db}
}

func (r *GormShowingRepo) Insert(ctx context.Context, s *model.Showing) error {
	s.ID = 0
	s.Version = 0
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *GormShowingRepo) FindByName(ctx context.Context, name string) (*model.Showing, error) {
	var s model.Showing
	err := r.db.WithContext(ctx).
		Where("movie_name = ?", name).
		Order("id ASC").
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowingNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *GormShowingRepo) ListAll(ctx context.Context) ([]model.Showing, error) {
	showings := make([]model.Showing, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&showings).Error; err != nil {
		return nil, err
	}
	return showings, nil
}

func (r *GormShowingRepo) ListByCategory(ctx context.Context, category string) ([]model.Showing, error) {
	showings := make([]model.Showing, 0)
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id ASC").
		Find(&showings).Error
	if err != nil {
		return nil, err
	}
	return showings, nil
}

// UpdateSeats is the version-guarded write; RowsAffected is 0 when another
// writer bumped the version first.
func (r *GormShowingRepo) UpdateSeats(ctx context.Context, id, expectedVersion uint64, seats int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Showing{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"available_seats": seats,
			"version":         gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormShowingRepo) DeleteByID(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Showing{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
