package service

import (
	"errors"
	"strings"
	"time"

	organizationRequest "OrgLink/internal/modules/organization/application/dto/request"
	organizationRespond "OrgLink/internal/modules/organization/application/dto/respond"
	organizationEntity "OrgLink/internal/modules/organization/domain/entity"
	organizationRepository "OrgLink/internal/modules/organization/domain/repository"
	"OrgLink/pkg/util"
	"OrgLink/pkg/xerr"
	"OrgLink/pkg/zlog"

	"gorm.io/gorm"
)

type OrganizationService interface {
	CreateOrganization(req organizationRequest.CreateOrganizationRequest) (*organizationRespond.OrganizationItem, error)
	UpdateOrganization(req organizationRequest.UpdateOrganizationRequest) (*organizationRespond.OrganizationItem, error)
	GetOrganization(uuid string) (*organizationRespond.OrganizationItem, error)
	DeleteOrganization(uuid string) (bool, error)
	ListOrganizations(req organizationRequest.ListOrganizationRequest) (*organizationRespond.OrganizationListRespond, error)
}

type organizationServiceImpl struct {
	repo organizationRepository.OrganizationRepository
}

func NewOrganizationService(repo organizationRepository.OrganizationRepository) OrganizationService {
	return &organizationServiceImpl{repo: repo}
}

func (s *organizationServiceImpl) CreateOrganization(req organizationRequest.CreateOrganizationRequest) (*organizationRespond.OrganizationItem, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, xerr.New(xerr.BadRequest, "机构名称不能为空")
	}

	now := time.Now()
	org := &organizationEntity.Organization{
		Uuid:      util.GenerateUUID(),
		Name:      req.Name,
		Code:      strings.TrimSpace(req.Code),
		Country:   req.Country,
		State:     req.State,
		District:  req.District,
		Address:   strings.TrimSpace(req.Address),
		Status:    organizationEntity.OrganizationStatusNormal,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(org); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	return toOrganizationItem(org), nil
}

func (s *organizationServiceImpl) UpdateOrganization(req organizationRequest.UpdateOrganizationRequest) (*organizationRespond.OrganizationItem, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Uuid == "" || req.Name == "" {
		return nil, xerr.New(xerr.BadRequest, xerr.ErrParam.Message)
	}

	org, err := s.repo.GetByUuid(req.Uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.New(xerr.NotFound, "机构不存在或已删除")
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	org.Name = req.Name
	org.Code = strings.TrimSpace(req.Code)
	org.Country = req.Country
	org.State = req.State
	org.District = req.District
	org.Address = strings.TrimSpace(req.Address)
	org.UpdatedAt = time.Now()
	if err := s.repo.Save(org); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	return toOrganizationItem(org), nil
}

func (s *organizationServiceImpl) GetOrganization(uuid string) (*organizationRespond.OrganizationItem, error) {
	if uuid == "" {
		return nil, xerr.New(xerr.BadRequest, xerr.ErrParam.Message)
	}
	org, err := s.repo.GetByUuid(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.New(xerr.NotFound, "机构不存在或已删除")
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	return toOrganizationItem(org), nil
}

// DeleteOrganization 幂等删除：不存在或已删除返回 false，不报错
func (s *organizationServiceImpl) DeleteOrganization(uuid string) (bool, error) {
	if uuid == "" {
		return false, xerr.New(xerr.BadRequest, xerr.ErrParam.Message)
	}
	deleted, err := s.repo.MarkDeleted(uuid)
	if err != nil {
		zlog.Error(err.Error())
		return false, xerr.ErrServerError
	}
	return deleted, nil
}

func (s *organizationServiceImpl) ListOrganizations(req organizationRequest.ListOrganizationRequest) (*organizationRespond.OrganizationListRespond, error) {
	orgs, total, err := s.repo.List(strings.TrimSpace(req.Keyword), req.Page, req.PageSize)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	items := make([]organizationRespond.OrganizationItem, 0, len(orgs))
	for i := range orgs {
		items = append(items, *toOrganizationItem(&orgs[i]))
	}
	return &organizationRespond.OrganizationListRespond{Items: items, Total: total}, nil
}

func toOrganizationItem(org *organizationEntity.Organization) *organizationRespond.OrganizationItem {
	return &organizationRespond.OrganizationItem{
		Uuid:      org.Uuid,
		Name:      org.Name,
		Code:      org.Code,
		Country:   org.Country,
		State:     org.State,
		District:  org.District,
		Address:   org.Address,
		CreatedAt: org.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
