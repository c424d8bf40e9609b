package handler

import (
	"io"
	"strconv"
	"strings"

	notificationRequest "OrgLink/internal/modules/notification/application/dto/request"
	notificationRespond "OrgLink/internal/modules/notification/application/dto/respond"
	"OrgLink/internal/modules/notification/application/service"
	"OrgLink/internal/modules/notification/domain/storage"
	"OrgLink/pkg/back"
	"OrgLink/pkg/xerr"
	"OrgLink/pkg/zlog"

	"github.com/gin-gonic/gin"
)

// 上传文件的表单字段名
const uploadsField = "uploads"

type NotificationHandler struct {
	svc   service.NotificationService
	store storage.AttachmentStore
}

func NewNotificationHandler(svc service.NotificationService, store storage.AttachmentStore) *NotificationHandler {
	return &NotificationHandler{svc: svc, store: store}
}

// storeUploads 把 multipart 中的文件写入附件存储。必须先于数据库事务完成，
// 事务不会跨外部存储调用持锁；后续校验失败由 service 负责回收这些文件。
func (h *NotificationHandler) storeUploads(c *gin.Context) ([]storage.StoredFile, *xerr.CodeError) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	var stored []storage.StoredFile
	for _, fh := range form.File[uploadsField] {
		f, err := fh.Open()
		if err != nil {
			zlog.Error(err.Error())
			h.rollbackStored(c, stored)
			return nil, xerr.New(xerr.InternalServerError, "附件上传失败")
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			zlog.Error(err.Error())
			h.rollbackStored(c, stored)
			return nil, xerr.New(xerr.InternalServerError, "附件上传失败")
		}

		sf, err := h.store.Store(c.Request.Context(), data, fh.Header.Get("Content-Type"), fh.Filename)
		if err != nil {
			zlog.Error(err.Error())
			h.rollbackStored(c, stored)
			return nil, xerr.New(xerr.InternalServerError, "附件上传失败")
		}
		stored = append(stored, *sf)
	}
	return stored, nil
}

// rollbackStored 回收半途失败前已写入的文件
func (h *NotificationHandler) rollbackStored(c *gin.Context, stored []storage.StoredFile) {
	if len(stored) == 0 {
		return
	}
	paths := make([]string, 0, len(stored))
	for _, f := range stored {
		paths = append(paths, f.Path)
	}
	if _, failed := h.store.DeleteMany(c.Request.Context(), paths); len(failed) > 0 {
		zlog.Warn("附件回收失败: " + strings.Join(failed, ", "))
	}
}

// splitMultiValue 兼容前端把多值字段合并为逗号分隔串的提交方式
func splitMultiValue(values []string) []string {
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

func (h *NotificationHandler) Create(c *gin.Context) {
	var req notificationRequest.CreateNotificationRequest
	if err := c.ShouldBind(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	req.NotifyOrganizationIds = splitMultiValue(req.NotifyOrganizationIds)
	// 发布者身份只信认证链路注入的值
	req.CreatedByUserUuid = c.GetString("uuid")
	req.CreatedByOrgUuid = c.GetString("org_uuid")

	uploads, cerr := h.storeUploads(c)
	if cerr != nil {
		back.Error(c, cerr.Code, cerr.Message)
		return
	}

	uuid, err := h.svc.Create(c.Request.Context(), req, uploads)
	if err != nil {
		back.Result(c, nil, err)
		return
	}
	back.Success(c, notificationRespond.CreateNotificationRespond{Uuid: uuid})
}

func (h *NotificationHandler) Update(c *gin.Context) {
	var req notificationRequest.UpdateNotificationRequest
	if err := c.ShouldBind(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	req.NotifyOrganizationIds = splitMultiValue(req.NotifyOrganizationIds)
	req.RemovedFiles = splitMultiValue(req.RemovedFiles)
	req.CreatedByUserUuid = c.GetString("uuid")
	req.CreatedByOrgUuid = c.GetString("org_uuid")

	uploads, cerr := h.storeUploads(c)
	if cerr != nil {
		back.Error(c, cerr.Code, cerr.Message)
		return
	}

	uuid, err := h.svc.Update(c.Request.Context(), req, uploads)
	if err != nil {
		back.Result(c, nil, err)
		return
	}
	back.Success(c, notificationRespond.CreateNotificationRespond{Uuid: uuid})
}

func (h *NotificationHandler) Get(c *gin.Context) {
	data, err := h.svc.GetByUuid(c.Request.Context(), c.Param("id"), c.GetString("uuid"), c.GetString("org_uuid"))
	back.Result(c, data, err)
}

func (h *NotificationHandler) Search(c *gin.Context) {
	var req notificationRequest.SearchNotificationRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	req.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	req.PageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	data, err := h.svc.Search(c.Request.Context(), req, c.GetString("uuid"), c.GetString("org_uuid"))
	back.Result(c, data, err)
}

func (h *NotificationHandler) StatusCounts(c *gin.Context) {
	data, err := h.svc.StatusCounts(c.Request.Context(), c.GetString("uuid"), c.GetString("org_uuid"))
	back.Result(c, data, err)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	back.Result(c, deleted, err)
}
