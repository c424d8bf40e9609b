package persistence

import (
	"context"
	"strings"

	"OrgLink/internal/modules/notification/domain/entity"
	"OrgLink/internal/modules/notification/domain/repository"

	"gorm.io/gorm"
)

type notificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

func (r *notificationRepositoryImpl) Create(ctx context.Context, n *entity.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepositoryImpl) Save(ctx context.Context, n *entity.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *notificationRepositoryImpl) GetByUuid(ctx context.Context, uuid string) (*entity.Notification, error) {
	var n entity.Notification
	err := r.db.WithContext(ctx).
		Where("uuid = ? AND status = ?", uuid, entity.NotificationStatusNormal).
		First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepositoryImpl) MarkDeleted(ctx context.Context, uuid string) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("uuid = ? AND status = ?", uuid, entity.NotificationStatusNormal).
		Update("status", entity.NotificationStatusDeleted)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *notificationRepositoryImpl) ReplaceTargets(ctx context.Context, notificationUuid string, targets []entity.NotificationTarget) error {
	err := r.db.WithContext(ctx).
		Where("notification_uuid = ?", notificationUuid).
		Delete(&entity.NotificationTarget{}).Error
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&targets).Error
}

func (r *notificationRepositoryImpl) GetTargets(ctx context.Context, notificationUuid string) ([]entity.NotificationTarget, error) {
	var targets []entity.NotificationTarget
	err := r.db.WithContext(ctx).
		Where("notification_uuid = ?", notificationUuid).
		Find(&targets).Error
	if err != nil {
		return nil, err
	}
	return targets, nil
}

func (r *notificationRepositoryImpl) AddAttachments(ctx context.Context, attachments []entity.NotificationAttachment) error {
	if len(attachments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&attachments).Error
}

func (r *notificationRepositoryImpl) RemoveAttachmentsByPaths(ctx context.Context, notificationUuid string, paths []string) ([]entity.NotificationAttachment, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	var owned []entity.NotificationAttachment
	err := r.db.WithContext(ctx).
		Where("notification_uuid = ? AND path IN ?", notificationUuid, paths).
		Find(&owned).Error
	if err != nil {
		return nil, err
	}
	// 不归属于该通知的引用直接忽略，保证更新操作可重放
	if len(owned) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(owned))
	for _, a := range owned {
		ids = append(ids, a.Id)
	}
	err = r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&entity.NotificationAttachment{}).Error
	if err != nil {
		return nil, err
	}
	return owned, nil
}

func (r *notificationRepositoryImpl) GetAttachments(ctx context.Context, notificationUuid string) ([]entity.NotificationAttachment, error) {
	var attachments []entity.NotificationAttachment
	err := r.db.WithContext(ctx).
		Where("notification_uuid = ?", notificationUuid).
		Order("id ASC").
		Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	return attachments, nil
}

// viewScope 为指定视图拼接可见性谓词，Search 与 StatusCounts 共用，
// 保证角标计数与搜索结果总是一致
func (r *notificationRepositoryImpl) viewScope(q *gorm.DB, view entity.ViewType, viewerUserUuid string, viewerOrgUuid string) *gorm.DB {
	switch view {
	case entity.ViewSent:
		return q.Where("created_by_user_uuid = ?", viewerUserUuid)
	default:
		// 收件箱/待处理：本机构命中投递范围且非本人发布
		return q.
			Where("created_by_user_uuid <> ?", viewerUserUuid).
			Where("EXISTS (SELECT 1 FROM notification_target t WHERE t.notification_uuid = notification.uuid AND (t.mode = ? OR (t.mode = ? AND t.organization_uuid = ?)))",
				entity.TargetModeBroadcast, entity.TargetModeOrganization, viewerOrgUuid)
	}
}

func (r *notificationRepositoryImpl) Search(ctx context.Context, q repository.SearchQuery) ([]entity.Notification, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("status = ?", entity.NotificationStatusNormal)
	base = r.viewScope(base, q.View, q.ViewerUserUuid, q.ViewerOrgUuid)

	keyword := strings.ToLower(strings.TrimSpace(q.Keyword))
	if keyword != "" {
		like := "%" + keyword + "%"
		base = base.Where("LOWER(subject) LIKE ? OR LOWER(body) LIKE ? OR LOWER(type) LIKE ?", like, like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := q.Page
	pageSize := q.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	var items []entity.Notification
	err := base.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *notificationRepositoryImpl) StatusCounts(ctx context.Context, viewerUserUuid string, viewerOrgUuid string) (*repository.StatusCounts, error) {
	counts := &repository.StatusCounts{}
	views := []struct {
		view entity.ViewType
		dst  *int64
	}{
		{entity.ViewInbox, &counts.Inbox},
		{entity.ViewSent, &counts.Sent},
		{entity.ViewAwaiting, &counts.Awaiting},
	}
	for _, v := range views {
		q := r.db.WithContext(ctx).
			Model(&entity.Notification{}).
			Where("status = ?", entity.NotificationStatusNormal)
		q = r.viewScope(q, v.view, viewerUserUuid, viewerOrgUuid)
		if err := q.Count(v.dst).Error; err != nil {
			return nil, err
		}
	}
	return counts, nil
}
