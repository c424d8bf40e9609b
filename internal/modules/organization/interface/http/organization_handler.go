package handler

import (
	organizationRequest "OrgLink/internal/modules/organization/application/dto/request"
	"OrgLink/internal/modules/organization/application/service"
	"OrgLink/pkg/back"
	"OrgLink/pkg/xerr"
	"OrgLink/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	svc service.OrganizationService
}

func NewOrganizationHandler(svc service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{svc: svc}
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	var req organizationRequest.CreateOrganizationRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.CreateOrganization(req)
	back.Result(c, data, err)
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	var req organizationRequest.UpdateOrganizationRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.UpdateOrganization(req)
	back.Result(c, data, err)
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	data, err := h.svc.GetOrganization(c.Param("id"))
	back.Result(c, data, err)
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
	deleted, err := h.svc.DeleteOrganization(c.Param("id"))
	back.Result(c, deleted, err)
}

func (h *OrganizationHandler) List(c *gin.Context) {
	var req organizationRequest.ListOrganizationRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.ListOrganizations(req)
	back.Result(c, data, err)
}
