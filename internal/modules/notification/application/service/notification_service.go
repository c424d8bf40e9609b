package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	notificationRequest "OrgLink/internal/modules/notification/application/dto/request"
	notificationRespond "OrgLink/internal/modules/notification/application/dto/respond"
	"OrgLink/internal/modules/notification/domain/delivery"
	notificationEntity "OrgLink/internal/modules/notification/domain/entity"
	notificationRepository "OrgLink/internal/modules/notification/domain/repository"
	"OrgLink/internal/modules/notification/domain/storage"
	organizationRepository "OrgLink/internal/modules/organization/domain/repository"
	redisPkg "OrgLink/pkg/redis"
	"OrgLink/pkg/util"
	"OrgLink/pkg/xerr"
	"OrgLink/pkg/zlog"

	"gorm.io/gorm"
)

// 状态计数缓存的过期时间，角标允许短暂滞后
const statusCountsCacheTTL = 30 * time.Second

type NotificationService interface {
	Create(ctx context.Context, req notificationRequest.CreateNotificationRequest, uploads []storage.StoredFile) (string, error)
	Update(ctx context.Context, req notificationRequest.UpdateNotificationRequest, uploads []storage.StoredFile) (string, error)
	GetByUuid(ctx context.Context, notificationUuid string, viewerUserUuid string, viewerOrgUuid string) (*notificationRespond.NotificationItem, error)
	Search(ctx context.Context, req notificationRequest.SearchNotificationRequest, viewerUserUuid string, viewerOrgUuid string) (*notificationRespond.SearchNotificationRespond, error)
	StatusCounts(ctx context.Context, viewerUserUuid string, viewerOrgUuid string) (*notificationRepository.StatusCounts, error)
	Delete(ctx context.Context, notificationUuid string) (bool, error)
}

type notificationServiceImpl struct {
	repo    notificationRepository.NotificationRepository
	uow     notificationRepository.NotificationUnitOfWork
	orgRepo organizationRepository.OrganizationRepository
	store   storage.AttachmentStore
}

func NewNotificationService(
	repo notificationRepository.NotificationRepository,
	uow notificationRepository.NotificationUnitOfWork,
	orgRepo organizationRepository.OrganizationRepository,
	store storage.AttachmentStore,
) NotificationService {
	return &notificationServiceImpl{
		repo:    repo,
		uow:     uow,
		orgRepo: orgRepo,
		store:   store,
	}
}

// validateDetails 校验必填字段。发布人缺失单独报错，便于定位是表单问题还是鉴权链路问题。
func validateDetails(req *notificationRequest.CreateNotificationRequest) *xerr.CodeError {
	req.Type = strings.TrimSpace(req.Type)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Body = strings.TrimSpace(req.Body)
	req.AuthoredDate = strings.TrimSpace(req.AuthoredDate)
	req.Address = strings.TrimSpace(req.Address)

	var missing []string
	if req.Type == "" {
		missing = append(missing, "type")
	}
	if req.Subject == "" {
		missing = append(missing, "subject")
	}
	if req.Body == "" {
		missing = append(missing, "body")
	}
	if req.AuthoredDate == "" {
		missing = append(missing, "authoredDate")
	}
	if req.Country <= 0 {
		missing = append(missing, "country")
	}
	if req.State <= 0 {
		missing = append(missing, "state")
	}
	if req.District <= 0 {
		missing = append(missing, "district")
	}
	if req.CreatedByOrgUuid == "" {
		missing = append(missing, "organizationId")
	}
	if len(missing) > 0 {
		return xerr.New(xerr.BadRequest, "缺少必填字段: "+strings.Join(missing, ", "))
	}

	if req.CreatedByUserUuid == "" {
		return xerr.New(xerr.BadRequest, "缺少发布人身份")
	}
	return nil
}

// validateTargets 校验目标机构是否都存在。notifyAll 优先，此时机构列表被忽略。
func (s *notificationServiceImpl) validateTargets(req *notificationRequest.CreateNotificationRequest) *xerr.CodeError {
	if req.NotifyAll || len(req.NotifyOrganizationIds) == 0 {
		return nil
	}

	wanted := make([]string, 0, len(req.NotifyOrganizationIds))
	for _, id := range req.NotifyOrganizationIds {
		if id = strings.TrimSpace(id); id != "" {
			wanted = append(wanted, id)
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	existing, err := s.orgRepo.FilterExistingUuids(wanted)
	if err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}
	found := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		found[id] = struct{}{}
	}
	for _, id := range wanted {
		if _, ok := found[id]; !ok {
			return xerr.New(xerr.BadRequest, "目标机构不存在: "+id)
		}
	}
	return nil
}

// cleanupUploads 同步删除本次请求已上传的附件，避免被拒绝的提交堆积孤儿文件。
// 不复用请求上下文：客户端断连导致的失败也要完成清理。清理失败只记日志，不向调用方暴露。
func (s *notificationServiceImpl) cleanupUploads(_ context.Context, uploads []storage.StoredFile) {
	if len(uploads) == 0 {
		return
	}
	paths := make([]string, 0, len(uploads))
	for _, f := range uploads {
		paths = append(paths, f.Path)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, failed := s.store.DeleteMany(ctx, paths); len(failed) > 0 {
		zlog.Warn("附件清理失败: " + strings.Join(failed, ", "))
	}
}

// purgeFiles 事务提交后的物理删除，失败只记日志
func (s *notificationServiceImpl) purgeFiles(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		return
	}
	if _, failed := s.store.DeleteMany(ctx, paths); len(failed) > 0 {
		zlog.Warn("附件物理删除失败，待人工清理: " + strings.Join(failed, ", "))
	}
}

func toAttachmentRows(notificationUuid string, uploads []storage.StoredFile, now time.Time) []notificationEntity.NotificationAttachment {
	rows := make([]notificationEntity.NotificationAttachment, 0, len(uploads))
	for _, f := range uploads {
		rows = append(rows, notificationEntity.NotificationAttachment{
			NotificationUuid: notificationUuid,
			Path:             f.Path,
			FileType:         f.FileType,
			FileName:         f.FileName,
			CreatedAt:        now,
		})
	}
	return rows
}

func (s *notificationServiceImpl) Create(ctx context.Context, req notificationRequest.CreateNotificationRequest, uploads []storage.StoredFile) (string, error) {
	// 附件先于本次调用入库，任何失败都要把它们清掉
	if cerr := validateDetails(&req); cerr != nil {
		s.cleanupUploads(ctx, uploads)
		return "", cerr
	}
	if cerr := s.validateTargets(&req); cerr != nil {
		s.cleanupUploads(ctx, uploads)
		return "", cerr
	}

	now := time.Now()
	notificationUuid := util.GenerateUUID()
	n := &notificationEntity.Notification{
		Uuid:              notificationUuid,
		Type:              req.Type,
		Subject:           req.Subject,
		Body:              req.Body,
		AuthoredDate:      req.AuthoredDate,
		Country:           req.Country,
		State:             req.State,
		District:          req.District,
		Address:           req.Address,
		CreatedByOrgUuid:  req.CreatedByOrgUuid,
		CreatedByUserUuid: req.CreatedByUserUuid,
		Status:            notificationEntity.NotificationStatusNormal,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	targets := delivery.BuildTargets(notificationUuid, req.NotifyAll, req.NotifyOrganizationIds)
	attachments := toAttachmentRows(notificationUuid, uploads, now)

	// 通知、投递范围、附件记录必须同事务落库
	err := s.uow.Transaction(func(repo notificationRepository.NotificationRepository) error {
		if err := repo.Create(ctx, n); err != nil {
			zlog.Error(err.Error())
			return xerr.ErrServerError
		}
		if err := repo.ReplaceTargets(ctx, notificationUuid, targets); err != nil {
			zlog.Error(err.Error())
			return xerr.ErrServerError
		}
		if err := repo.AddAttachments(ctx, attachments); err != nil {
			zlog.Error(err.Error())
			return xerr.ErrServerError
		}
		return nil
	})
	if err != nil {
		// 事务已回滚，本次上传的文件不再被任何记录引用
		s.cleanupUploads(ctx, uploads)
		return "", err
	}
	return notificationUuid, nil
}

func (s *notificationServiceImpl) Update(ctx context.Context, req notificationRequest.UpdateNotificationRequest, uploads []storage.StoredFile) (string, error) {
	if strings.TrimSpace(req.NotificationUuid) == "" {
		s.cleanupUploads(ctx, uploads)
		return "", xerr.New(xerr.BadRequest, "缺少必填字段: notificationId")
	}
	if cerr := validateDetails(&req.CreateNotificationRequest); cerr != nil {
		s.cleanupUploads(ctx, uploads)
		return "", cerr
	}
	if cerr := s.validateTargets(&req.CreateNotificationRequest); cerr != nil {
		s.cleanupUploads(ctx, uploads)
		return "", cerr
	}

	n, err := s.repo.GetByUuid(ctx, req.NotificationUuid)
	if err != nil {
		s.cleanupUploads(ctx, uploads)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", xerr.New(xerr.NotFound, "通知不存在或已删除")
		}
		zlog.Error(err.Error())
		return "", xerr.ErrServerError
	}

	now := time.Now()
	n.Type = req.Type
	n.Subject = req.Subject
	n.Body = req.Body
	n.AuthoredDate = req.AuthoredDate
	n.Country = req.Country
	n.State = req.State
	n.District = req.District
	n.Address = req.Address
	n.UpdatedAt = now

	targets := delivery.BuildTargets(n.Uuid, req.NotifyAll, req.NotifyOrganizationIds)
	newAttachments := toAttachmentRows(n.Uuid, uploads, now)

	// 被摘除的附件先在事务里删记录，提交后再删物理文件，
	// 回滚时文件和记录都还在，两边不会失配
	var purge []string
	err = s.uow.Transaction(func(repo notificationRepository.NotificationRepository) error {
		if err := repo.Save(ctx, n); err != nil {
			zlog.Error(err.Error())
			return xerr.ErrServerError
		}
		if err := repo.ReplaceTargets(ctx, n.Uuid, targets); err != nil {
			zlog.Error(err.Error())
			return xerr.ErrServerError
		}
		removed, err := repo.RemoveAttachmentsByPaths(ctx, n.Uuid, req.RemovedFiles)
		if err != nil {
			zlog.Error(err.Error())
			return xerr.ErrServerError
		}
		for _, a := range removed {
			purge = append(purge, a.Path)
		}
		if err := repo.AddAttachments(ctx, newAttachments); err != nil {
			zlog.Error(err.Error())
			return xerr.ErrServerError
		}
		return nil
	})
	if err != nil {
		// 只清理本次新上传的文件，既有附件不动
		s.cleanupUploads(ctx, uploads)
		return "", err
	}

	s.purgeFiles(ctx, purge)
	return n.Uuid, nil
}

func (s *notificationServiceImpl) GetByUuid(ctx context.Context, notificationUuid string, viewerUserUuid string, viewerOrgUuid string) (*notificationRespond.NotificationItem, error) {
	if notificationUuid == "" {
		return nil, xerr.New(xerr.BadRequest, xerr.ErrParam.Message)
	}

	n, err := s.repo.GetByUuid(ctx, notificationUuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.New(xerr.NotFound, "通知不存在或已删除")
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	targets, err := s.repo.GetTargets(ctx, notificationUuid)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	view, ok := delivery.Classify(n, targets, viewerUserUuid, viewerOrgUuid)
	if !ok {
		// 越权访问按不存在处理，避免暴露通知是否存在；内部留痕
		zlog.Warn(fmt.Sprintf("越权读取通知: notification=%s viewer=%s org=%s", notificationUuid, viewerUserUuid, viewerOrgUuid))
		return nil, xerr.New(xerr.NotFound, "通知不存在或已删除")
	}

	attachments, err := s.repo.GetAttachments(ctx, notificationUuid)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	item := toNotificationItem(n, attachments)
	item.View = string(view)
	for _, t := range targets {
		if t.Mode == notificationEntity.TargetModeBroadcast {
			item.NotifyAll = true
			break
		}
		item.NotifyOrganizationIds = append(item.NotifyOrganizationIds, t.OrganizationUuid)
	}
	return item, nil
}

func (s *notificationServiceImpl) Search(ctx context.Context, req notificationRequest.SearchNotificationRequest, viewerUserUuid string, viewerOrgUuid string) (*notificationRespond.SearchNotificationRespond, error) {
	view, err := notificationEntity.ParseViewType(req.Type)
	if err != nil {
		return nil, xerr.New(xerr.BadRequest, "未知的视图类型: "+req.Type)
	}

	items, total, err := s.repo.Search(ctx, notificationRepository.SearchQuery{
		Keyword:        req.KeywordSearchText,
		View:           view,
		ViewerUserUuid: viewerUserUuid,
		ViewerOrgUuid:  viewerOrgUuid,
		Page:           req.Page,
		PageSize:       req.PageSize,
	})
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	result := &notificationRespond.SearchNotificationRespond{
		Items: make([]notificationRespond.NotificationItem, 0, len(items)),
		Total: total,
	}
	for i := range items {
		attachments, err := s.repo.GetAttachments(ctx, items[i].Uuid)
		if err != nil {
			zlog.Error(err.Error())
			return nil, xerr.ErrServerError
		}
		result.Items = append(result.Items, *toNotificationItem(&items[i], attachments))
	}
	return result, nil
}

func (s *notificationServiceImpl) StatusCounts(ctx context.Context, viewerUserUuid string, viewerOrgUuid string) (*notificationRepository.StatusCounts, error) {
	cacheKey := "notification:status_counts:" + viewerUserUuid
	if redisPkg.IsConnected() {
		if cached, err := redisPkg.Get(ctx, cacheKey); err == nil {
			var counts notificationRepository.StatusCounts
			if json.Unmarshal([]byte(cached), &counts) == nil {
				return &counts, nil
			}
		}
	}

	counts, err := s.repo.StatusCounts(ctx, viewerUserUuid, viewerOrgUuid)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	if redisPkg.IsConnected() {
		if buf, err := json.Marshal(counts); err == nil {
			if err := redisPkg.Set(ctx, cacheKey, string(buf), statusCountsCacheTTL); err != nil {
				zlog.Warn("状态计数缓存写入失败: " + err.Error())
			}
		}
	}
	return counts, nil
}

// Delete 幂等删除：不存在或已删除返回 false，重复调用不报错。
// 附件的物理删除在事务提交后异步进行，存储侧延迟不阻塞删除本身。
func (s *notificationServiceImpl) Delete(ctx context.Context, notificationUuid string) (bool, error) {
	if notificationUuid == "" {
		return false, xerr.New(xerr.BadRequest, xerr.ErrParam.Message)
	}

	var deleted bool
	var purge []string
	err := s.uow.Transaction(func(repo notificationRepository.NotificationRepository) error {
		var err error
		deleted, err = repo.MarkDeleted(ctx, notificationUuid)
		if err != nil {
			zlog.Error(err.Error())
			return xerr.ErrServerError
		}
		if !deleted {
			return nil
		}

		attachments, err := repo.GetAttachments(ctx, notificationUuid)
		if err != nil {
			zlog.Error(err.Error())
			return xerr.ErrServerError
		}
		paths := make([]string, 0, len(attachments))
		for _, a := range attachments {
			paths = append(paths, a.Path)
		}
		if _, err := repo.RemoveAttachmentsByPaths(ctx, notificationUuid, paths); err != nil {
			zlog.Error(err.Error())
			return xerr.ErrServerError
		}
		purge = paths
		return nil
	})
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	if len(purge) > 0 {
		go func(paths []string) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			s.purgeFiles(ctx, paths)
		}(purge)
	}
	return true, nil
}

func toNotificationItem(n *notificationEntity.Notification, attachments []notificationEntity.NotificationAttachment) *notificationRespond.NotificationItem {
	item := &notificationRespond.NotificationItem{
		Uuid:              n.Uuid,
		Type:              n.Type,
		Subject:           n.Subject,
		Body:              n.Body,
		AuthoredDate:      n.AuthoredDate,
		Country:           n.Country,
		State:             n.State,
		District:          n.District,
		Address:           n.Address,
		CreatedByOrgUuid:  n.CreatedByOrgUuid,
		CreatedByUserUuid: n.CreatedByUserUuid,
		Attachments:       make([]notificationRespond.AttachmentItem, 0, len(attachments)),
		CreatedAt:         n.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	for _, a := range attachments {
		item.Attachments = append(item.Attachments, notificationRespond.AttachmentItem{
			Path:     a.Path,
			FileType: a.FileType,
			FileName: a.FileName,
		})
	}
	return item
}
