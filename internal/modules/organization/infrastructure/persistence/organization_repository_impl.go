package persistence

import (
	"OrgLink/internal/modules/organization/domain/entity"
	"OrgLink/internal/modules/organization/domain/repository"

	"gorm.io/gorm"
)

type organizationRepositoryImpl struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) repository.OrganizationRepository {
	return &organizationRepositoryImpl{db: db}
}

func (r *organizationRepositoryImpl) Create(org *entity.Organization) error {
	return r.db.Create(org).Error
}

func (r *organizationRepositoryImpl) Save(org *entity.Organization) error {
	return r.db.Save(org).Error
}

func (r *organizationRepositoryImpl) GetByUuid(uuid string) (*entity.Organization, error) {
	var org entity.Organization
	err := r.db.
		Where("uuid = ? AND status = ?", uuid, entity.OrganizationStatusNormal).
		First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepositoryImpl) MarkDeleted(uuid string) (bool, error) {
	tx := r.db.
		Model(&entity.Organization{}).
		Where("uuid = ? AND status = ?", uuid, entity.OrganizationStatusNormal).
		Update("status", entity.OrganizationStatusDeleted)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *organizationRepositoryImpl) List(keyword string, page int, pageSize int) ([]entity.Organization, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	base := r.db.
		Model(&entity.Organization{}).
		Where("status = ?", entity.OrganizationStatusNormal)
	if keyword != "" {
		like := "%" + keyword + "%"
		base = base.Where("name LIKE ? OR code LIKE ?", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orgs []entity.Organization
	err := base.
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orgs).Error
	if err != nil {
		return nil, 0, err
	}
	return orgs, total, nil
}

func (r *organizationRepositoryImpl) FilterExistingUuids(uuids []string) ([]string, error) {
	if len(uuids) == 0 {
		return nil, nil
	}
	var existing []string
	err := r.db.
		Model(&entity.Organization{}).
		Where("uuid IN ? AND status = ?", uuids, entity.OrganizationStatusNormal).
		Pluck("uuid", &existing).Error
	if err != nil {
		return nil, err
	}
	return existing, nil
}
