package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/prometheus"
)

const (
	companyNotFound      = "Empresa não encontrada"
	collaboratorNotFound = "Colaborador não encontrado"
)

type companyRepository struct {
	db *gorm.DB
}

func (r *companyRepository) Create(ctx context.Context, company *model.Company) error {
	defer prometheus.TrackDBOperation("company_create")()
	return translate(r.db.WithContext(ctx).Omit("Admin").Create(company).Error, "create company", companyNotFound)
}

func (r *companyRepository) Get(ctx context.Context, id uint) (*model.Company, error) {
	defer prometheus.TrackDBOperation("company_get")()
	var company model.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, translate(err, "get company", companyNotFound)
	}
	return &company, nil
}

func (r *companyRepository) GetByAdminID(ctx context.Context, adminID uint) (*model.Company, error) {
	defer prometheus.TrackDBOperation("company_get_by_admin")()
	var company model.Company
	if err := r.db.WithContext(ctx).Where("admin_id = ?", adminID).First(&company).Error; err != nil {
		return nil, translate(err, "get company by admin", companyNotFound)
	}
	return &company, nil
}

func (r *companyRepository) List(ctx context.Context) ([]*model.Company, error) {
	defer prometheus.TrackDBOperation("company_list")()
	var companies []*model.Company
	if err := r.db.WithContext(ctx).Preload("Admin").Order("name").Find(&companies).Error; err != nil {
		return nil, translate(err, "list companies", companyNotFound)
	}
	return companies, nil
}

func (r *companyRepository) UpdateStatus(ctx context.Context, id uint, status model.CompanyStatus) error {
	defer prometheus.TrackDBOperation("company_update_status")()
	res := r.db.WithContext(ctx).Model(&model.Company{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translate(res.Error, "update company status", companyNotFound)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "update company status", companyNotFound)
	}
	return nil
}

func (r *companyRepository) Delete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("company_delete")()
	res := r.db.WithContext(ctx).Delete(&model.Company{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete company", companyNotFound)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete company", companyNotFound)
	}
	return nil
}

type collaboratorRepository struct {
	db *gorm.DB
}

func (r *collaboratorRepository) Create(ctx context.Context, collaborator *model.Collaborator) error {
	defer prometheus.TrackDBOperation("collaborator_create")()
	err := r.db.WithContext(ctx).Omit("User").Create(collaborator).Error
	return translate(err, "create collaborator", collaboratorNotFound)
}

func (r *collaboratorRepository) Get(ctx context.Context, id uint) (*model.Collaborator, error) {
	defer prometheus.TrackDBOperation("collaborator_get")()
	var c model.Collaborator
	if err := r.db.WithContext(ctx).Preload("User").First(&c, id).Error; err != nil {
		return nil, translate(err, "get collaborator", collaboratorNotFound)
	}
	return &c, nil
}

func (r *collaboratorRepository) GetByUserID(ctx context.Context, userID uint) (*model.Collaborator, error) {
	defer prometheus.TrackDBOperation("collaborator_get_by_user")()
	var c model.Collaborator
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, translate(err, "get collaborator by user", collaboratorNotFound)
	}
	return &c, nil
}

func (r *collaboratorRepository) ListByCompany(ctx context.Context, companyID uint) ([]*model.Collaborator, error) {
	defer prometheus.TrackDBOperation("collaborator_list")()
	var list []*model.Collaborator
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("company_id = ?", companyID).
		Order("id").
		Find(&list).Error
	if err != nil {
		return nil, translate(err, "list collaborators", collaboratorNotFound)
	}
	return list, nil
}

func (r *collaboratorRepository) UpdateStatus(ctx context.Context, id uint, status model.CollaboratorStatus) error {
	defer prometheus.TrackDBOperation("collaborator_update_status")()
	res := r.db.WithContext(ctx).Model(&model.Collaborator{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translate(res.Error, "update collaborator status", collaboratorNotFound)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "update collaborator status", collaboratorNotFound)
	}
	return nil
}

func (r *collaboratorRepository) DeleteByCompany(ctx context.Context, companyID uint) error {
	defer prometheus.TrackDBOperation("collaborator_delete")()
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Delete(&model.Collaborator{}).Error
	return translate(err, "delete collaborators", collaboratorNotFound)
}
