package repository

import "OrgLink/internal/modules/organization/domain/entity"

// OrganizationRepository 机构仓储接口
type OrganizationRepository interface {
	Create(org *entity.Organization) error
	Save(org *entity.Organization) error
	GetByUuid(uuid string) (*entity.Organization, error)
	// MarkDeleted 软删除，返回是否实际发生了状态变更
	MarkDeleted(uuid string) (bool, error)
	// List 按名称/编码模糊过滤并分页，keyword 为空返回全部
	List(keyword string, page int, pageSize int) ([]entity.Organization, int64, error)
	// FilterExistingUuids 返回入参中实际存在且未删除的机构uuid
	FilterExistingUuids(uuids []string) ([]string, error)
}
