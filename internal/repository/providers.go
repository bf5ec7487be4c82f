package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/prometheus"
)

const (
	providerNotFound = "Fornecedor não encontrado"
	gymNotFound      = "Academia não encontrada"
	planNotFound     = "Plano não encontrado"
)

type providerRepository struct {
	db *gorm.DB
}

func (r *providerRepository) Create(ctx context.Context, provider *model.Provider) error {
	defer prometheus.TrackDBOperation("provider_create")()
	return translate(r.db.WithContext(ctx).Create(provider).Error, "create provider", providerNotFound)
}

func (r *providerRepository) Get(ctx context.Context, id uint) (*model.Provider, error) {
	defer prometheus.TrackDBOperation("provider_get")()
	var p model.Provider
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err, "get provider", providerNotFound)
	}
	return &p, nil
}

func (r *providerRepository) GetByUserID(ctx context.Context, userID uint) (*model.Provider, error) {
	defer prometheus.TrackDBOperation("provider_get_by_user")()
	var p model.Provider
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, translate(err, "get provider by user", providerNotFound)
	}
	return &p, nil
}

func (r *providerRepository) Delete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("provider_delete")()
	res := r.db.WithContext(ctx).Delete(&model.Provider{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete provider", providerNotFound)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete provider", providerNotFound)
	}
	return nil
}

type gymRepository struct {
	db *gorm.DB
}

func (r *gymRepository) Create(ctx context.Context, gym *model.Gym) error {
	defer prometheus.TrackDBOperation("gym_create")()
	return translate(r.db.WithContext(ctx).Create(gym).Error, "create gym", gymNotFound)
}

func (r *gymRepository) Get(ctx context.Context, id uint) (*model.Gym, error) {
	defer prometheus.TrackDBOperation("gym_get")()
	var g model.Gym
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, translate(err, "get gym", gymNotFound)
	}
	return &g, nil
}

func (r *gymRepository) List(ctx context.Context, filter GymFilter) ([]*model.Gym, error) {
	defer prometheus.TrackDBOperation("gym_list")()
	q := r.db.WithContext(ctx).Model(&model.Gym{})
	if filter.ProviderID != nil {
		q = q.Where("provider_id = ?", *filter.ProviderID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	var gyms []*model.Gym
	if err := q.Order("id").Find(&gyms).Error; err != nil {
		return nil, translate(err, "list gyms", gymNotFound)
	}
	return gyms, nil
}

func (r *gymRepository) UpdateStatus(ctx context.Context, id uint, status model.GymStatus) error {
	defer prometheus.TrackDBOperation("gym_update_status")()
	res := r.db.WithContext(ctx).Model(&model.Gym{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translate(res.Error, "update gym status", gymNotFound)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "update gym status", gymNotFound)
	}
	return nil
}

func (r *gymRepository) Delete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("gym_delete")()
	res := r.db.WithContext(ctx).Delete(&model.Gym{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete gym", gymNotFound)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete gym", gymNotFound)
	}
	return nil
}

func (r *gymRepository) CountByProvider(ctx context.Context, providerID uint) (int64, error) {
	defer prometheus.TrackDBOperation("gym_count")()
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Gym{}).Where("provider_id = ?", providerID).Count(&n).Error
	if err != nil {
		return 0, translate(err, "count gyms", gymNotFound)
	}
	return n, nil
}

type planRepository struct {
	db *gorm.DB
}

func (r *planRepository) Create(ctx context.Context, plan *model.Plan) error {
	defer prometheus.TrackDBOperation("plan_create")()
	return translate(r.db.WithContext(ctx).Create(plan).Error, "create plan", planNotFound)
}

func (r *planRepository) Get(ctx context.Context, id uint) (*model.Plan, error) {
	defer prometheus.TrackDBOperation("plan_get")()
	var p model.Plan
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err, "get plan", planNotFound)
	}
	return &p, nil
}

func (r *planRepository) ListByProvider(ctx context.Context, providerID uint) ([]*model.Plan, error) {
	defer prometheus.TrackDBOperation("plan_list")()
	var plans []*model.Plan
	err := r.db.WithContext(ctx).Where("provider_id = ?", providerID).Order("id ASC").Find(&plans).Error
	if err != nil {
		return nil, translate(err, "list plans", planNotFound)
	}
	return plans, nil
}

func (r *planRepository) Update(ctx context.Context, plan *model.Plan) error {
	defer prometheus.TrackDBOperation("plan_update")()
	res := r.db.WithContext(ctx).
		Model(&model.Plan{}).
		Where("id = ?", plan.ID).
		Select("name", "description", "price_per_access").
		Updates(plan)
	if res.Error != nil {
		return translate(res.Error, "update plan", planNotFound)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "update plan", planNotFound)
	}
	return nil
}

func (r *planRepository) Delete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("plan_delete")()
	res := r.db.WithContext(ctx).Delete(&model.Plan{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete plan", planNotFound)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete plan", planNotFound)
	}
	return nil
}

func (r *planRepository) FirstByProvider(ctx context.Context, providerID uint) (*model.Plan, error) {
	defer prometheus.TrackDBOperation("plan_first")()
	var p model.Plan
	err := r.db.WithContext(ctx).Where("provider_id = ?", providerID).Order("id ASC").First(&p).Error
	if err != nil {
		return nil, translate(err, "first plan", planNotFound)
	}
	return &p, nil
}
