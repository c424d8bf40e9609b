package delivery

import (
	"strings"

	"OrgLink/internal/modules/notification/domain/entity"
)

// BuildTargets 根据 notifyAll / 机构列表构造投递范围集合。
// 两者同时给出时 notifyAll 优先（约定的冲突裁决），机构列表去重并忽略空白项。
func BuildTargets(notificationUuid string, notifyAll bool, orgUuids []string) []entity.NotificationTarget {
	if notifyAll {
		return []entity.NotificationTarget{{
			NotificationUuid: notificationUuid,
			Mode:             entity.TargetModeBroadcast,
		}}
	}

	seen := make(map[string]struct{}, len(orgUuids))
	targets := make([]entity.NotificationTarget, 0, len(orgUuids))
	for _, id := range orgUuids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		targets = append(targets, entity.NotificationTarget{
			NotificationUuid: notificationUuid,
			Mode:             entity.TargetModeOrganization,
			OrganizationUuid: id,
		})
	}
	return targets
}

// IsVisible 判断某机构能否看到该通知：存在广播记录，或机构命中目标列表
func IsVisible(targets []entity.NotificationTarget, viewerOrgUuid string) bool {
	for _, t := range targets {
		if t.Mode == entity.TargetModeBroadcast {
			return true
		}
		if t.Mode == entity.TargetModeOrganization && t.OrganizationUuid == viewerOrgUuid {
			return true
		}
	}
	return false
}

// Classify 判定通知对某个查看者属于哪个视图。
// 作者视角恒为已发送；其余可见者归入收件箱。系统未持久化收件人处理状态，
// 待处理与收件箱共用同一谓词，仅作为查询期标签区分。
// 第二个返回值为 false 表示该查看者不可见此通知。
func Classify(n *entity.Notification, targets []entity.NotificationTarget, viewerUserUuid string, viewerOrgUuid string) (entity.ViewType, bool) {
	if n.CreatedByUserUuid == viewerUserUuid {
		return entity.ViewSent, true
	}
	if IsVisible(targets, viewerOrgUuid) {
		return entity.ViewInbox, true
	}
	return "", false
}
