package repository

import (
	"context"

	"OrgLink/internal/modules/notification/domain/entity"
)

// SearchQuery 关键字搜索条件，Keyword 为空表示匹配视图内全部通知
type SearchQuery struct {
	Keyword        string
	View           entity.ViewType
	ViewerUserUuid string
	ViewerOrgUuid  string
	Page           int
	PageSize       int
}

// StatusCounts 三个视图的角标计数
type StatusCounts struct {
	Inbox    int64 `json:"inboxCount"`
	Sent     int64 `json:"sentCount"`
	Awaiting int64 `json:"awaitingCount"`
}

// NotificationRepository 通知仓储接口
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	Save(ctx context.Context, n *entity.Notification) error
	// GetByUuid 按 uuid 查询未删除的通知
	GetByUuid(ctx context.Context, uuid string) (*entity.Notification, error)
	// MarkDeleted 软删除，返回是否实际发生了状态变更
	MarkDeleted(ctx context.Context, uuid string) (bool, error)

	// ReplaceTargets 整体替换投递范围（先删后插，不做逐条比对）
	ReplaceTargets(ctx context.Context, notificationUuid string, targets []entity.NotificationTarget) error
	GetTargets(ctx context.Context, notificationUuid string) ([]entity.NotificationTarget, error)

	AddAttachments(ctx context.Context, attachments []entity.NotificationAttachment) error
	// RemoveAttachmentsByPaths 按存储引用摘除附件记录并返回被摘除的行，
	// 不属于该通知的引用直接忽略
	RemoveAttachmentsByPaths(ctx context.Context, notificationUuid string, paths []string) ([]entity.NotificationAttachment, error)
	GetAttachments(ctx context.Context, notificationUuid string) ([]entity.NotificationAttachment, error)

	// Search 关键字搜索，按创建时间倒序分页，返回完整匹配数
	Search(ctx context.Context, q SearchQuery) ([]entity.Notification, int64, error)
	// StatusCounts 与 Search 同谓词的计数聚合
	StatusCounts(ctx context.Context, viewerUserUuid string, viewerOrgUuid string) (*StatusCounts, error)
}
