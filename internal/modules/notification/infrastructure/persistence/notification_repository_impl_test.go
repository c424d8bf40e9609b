package persistence

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"OrgLink/internal/modules/notification/domain/entity"
	"OrgLink/internal/modules/notification/domain/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRepo 基于内存 sqlite 建表，限制单连接避免 :memory: 库被拆分
func setupRepo(t *testing.T) repository.NotificationRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&entity.Notification{},
		&entity.NotificationTarget{},
		&entity.NotificationAttachment{},
	)
	if err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return NewNotificationRepository(db)
}

func seedNotification(t *testing.T, repo repository.NotificationRepository, uuid string, subject string, authorUser string, authorOrg string, targets []entity.NotificationTarget) {
	t.Helper()
	now := time.Now()
	n := &entity.Notification{
		Uuid:              uuid,
		Type:              "来文通知",
		Subject:           subject,
		Body:              subject + " 正文",
		AuthoredDate:      "2024-01-01",
		Country:           1,
		State:             2,
		District:          3,
		CreatedByOrgUuid:  authorOrg,
		CreatedByUserUuid: authorUser,
		Status:            entity.NotificationStatusNormal,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := repo.Create(t.Context(), n); err != nil {
		t.Fatalf("写入通知失败: %v", err)
	}
	if err := repo.ReplaceTargets(t.Context(), uuid, targets); err != nil {
		t.Fatalf("写入投递范围失败: %v", err)
	}
}

func broadcastTarget(uuid string) []entity.NotificationTarget {
	return []entity.NotificationTarget{{NotificationUuid: uuid, Mode: entity.TargetModeBroadcast}}
}

func orgTargets(uuid string, orgs ...string) []entity.NotificationTarget {
	var targets []entity.NotificationTarget
	for _, o := range orgs {
		targets = append(targets, entity.NotificationTarget{
			NotificationUuid: uuid,
			Mode:             entity.TargetModeOrganization,
			OrganizationUuid: o,
		})
	}
	return targets
}

func TestSearch_视图可见性(t *testing.T) {
	repo := setupRepo(t)

	// n-org 定向 org-5/org-7，n-all 由另一机构广播
	seedNotification(t, repo, "n-org", "机构定向通知", "user-1", "org-10", orgTargets("n-org", "org-5", "org-7"))
	seedNotification(t, repo, "n-all", "全员广播通知", "user-2", "org-20", broadcastTarget("n-all"))

	cases := []struct {
		name     string
		view     entity.ViewType
		userUuid string
		orgUuid  string
		want     []string
	}{
		{"目标机构成员收件箱命中定向和广播", entity.ViewInbox, "user-3", "org-5", []string{"n-org", "n-all"}},
		{"范围外机构只见广播", entity.ViewInbox, "user-9", "org-9", []string{"n-all"}},
		{"作者发件箱只含本人发布", entity.ViewSent, "user-1", "org-10", []string{"n-org"}},
		{"作者收件箱不含本人发布", entity.ViewInbox, "user-1", "org-10", []string{"n-all"}},
		{"待处理视图与收件箱同范围", entity.ViewAwaiting, "user-3", "org-7", []string{"n-org", "n-all"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, total, err := repo.Search(t.Context(), repository.SearchQuery{
				View:           tc.view,
				ViewerUserUuid: tc.userUuid,
				ViewerOrgUuid:  tc.orgUuid,
			})
			if err != nil {
				t.Fatalf("搜索失败: %v", err)
			}
			if total != int64(len(tc.want)) {
				t.Fatalf("总数 = %d, 期望 %d", total, len(tc.want))
			}
			got := map[string]struct{}{}
			for _, n := range items {
				got[n.Uuid] = struct{}{}
			}
			for _, uuid := range tc.want {
				if _, ok := got[uuid]; !ok {
					t.Errorf("结果缺少 %s", uuid)
				}
			}
		})
	}
}

func TestSearch_关键字大小写不敏感(t *testing.T) {
	repo := setupRepo(t)
	seedNotification(t, repo, "n-1", "System Maintenance", "user-1", "org-10", broadcastTarget("n-1"))
	seedNotification(t, repo, "n-2", "放假安排", "user-1", "org-10", broadcastTarget("n-2"))

	items, total, err := repo.Search(t.Context(), repository.SearchQuery{
		Keyword:        "SYSTEM",
		View:           entity.ViewInbox,
		ViewerUserUuid: "user-2",
		ViewerOrgUuid:  "org-5",
	})
	if err != nil {
		t.Fatalf("搜索失败: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Uuid != "n-1" {
		t.Fatalf("期望恰好命中 n-1, 实际 total=%d items=%+v", total, items)
	}
}

func TestSearch_分页返回完整匹配数(t *testing.T) {
	repo := setupRepo(t)
	for i := 0; i < 15; i++ {
		uuid := fmt.Sprintf("n-%02d", i)
		seedNotification(t, repo, uuid, fmt.Sprintf("第%d号通知", i), "user-1", "org-10", broadcastTarget(uuid))
	}

	items, total, err := repo.Search(t.Context(), repository.SearchQuery{
		View:           entity.ViewInbox,
		ViewerUserUuid: "user-2",
		ViewerOrgUuid:  "org-5",
		Page:           2,
		PageSize:       10,
	})
	if err != nil {
		t.Fatalf("搜索失败: %v", err)
	}
	if total != 15 {
		t.Fatalf("总数 = %d, 期望 15", total)
	}
	if len(items) != 5 {
		t.Fatalf("第二页条数 = %d, 期望 5", len(items))
	}
}

func TestStatusCounts_与搜索结果一致(t *testing.T) {
	repo := setupRepo(t)
	seedNotification(t, repo, "n-org", "定向", "user-1", "org-10", orgTargets("n-org", "org-5"))
	seedNotification(t, repo, "n-all", "广播", "user-2", "org-20", broadcastTarget("n-all"))
	seedNotification(t, repo, "n-mine", "本人发布", "user-3", "org-5", broadcastTarget("n-mine"))

	counts, err := repo.StatusCounts(t.Context(), "user-3", "org-5")
	if err != nil {
		t.Fatalf("计数失败: %v", err)
	}

	for _, v := range []struct {
		view entity.ViewType
		want int64
	}{
		{entity.ViewInbox, counts.Inbox},
		{entity.ViewSent, counts.Sent},
		{entity.ViewAwaiting, counts.Awaiting},
	} {
		_, total, err := repo.Search(t.Context(), repository.SearchQuery{
			View:           v.view,
			ViewerUserUuid: "user-3",
			ViewerOrgUuid:  "org-5",
		})
		if err != nil {
			t.Fatalf("搜索失败: %v", err)
		}
		if total != v.want {
			t.Fatalf("视图 %s 计数 %d 与搜索总数 %d 不一致", v.view, v.want, total)
		}
	}
	if counts.Inbox != 2 || counts.Sent != 1 {
		t.Fatalf("计数 = %+v, 期望 收件箱2 发件箱1", counts)
	}
}

func TestReplaceTargets_整体替换(t *testing.T) {
	repo := setupRepo(t)
	seedNotification(t, repo, "n-1", "范围变更", "user-1", "org-10", orgTargets("n-1", "org-5", "org-7"))

	if err := repo.ReplaceTargets(t.Context(), "n-1", broadcastTarget("n-1")); err != nil {
		t.Fatalf("替换投递范围失败: %v", err)
	}
	targets, err := repo.GetTargets(t.Context(), "n-1")
	if err != nil {
		t.Fatalf("查询投递范围失败: %v", err)
	}
	if len(targets) != 1 || targets[0].Mode != entity.TargetModeBroadcast {
		t.Fatalf("期望恰好一条广播记录, 实际 %+v", targets)
	}
}

func TestMarkDeleted_幂等且删除后不可见(t *testing.T) {
	repo := setupRepo(t)
	seedNotification(t, repo, "n-1", "待删除", "user-1", "org-10", broadcastTarget("n-1"))

	deleted, err := repo.MarkDeleted(t.Context(), "n-1")
	if err != nil || !deleted {
		t.Fatalf("首次删除 = (%v, %v), 期望 (true, nil)", deleted, err)
	}
	deleted, err = repo.MarkDeleted(t.Context(), "n-1")
	if err != nil || deleted {
		t.Fatalf("重复删除 = (%v, %v), 期望 (false, nil)", deleted, err)
	}

	if _, err := repo.GetByUuid(t.Context(), "n-1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("删除后读取期望 ErrRecordNotFound, 实际 %v", err)
	}

	// 已删除的通知不再进入任何视图
	_, total, err := repo.Search(t.Context(), repository.SearchQuery{
		View:           entity.ViewInbox,
		ViewerUserUuid: "user-2",
		ViewerOrgUuid:  "org-5",
	})
	if err != nil {
		t.Fatalf("搜索失败: %v", err)
	}
	if total != 0 {
		t.Fatalf("已删除通知仍可检索, total = %d", total)
	}
}

func TestRemoveAttachmentsByPaths_忽略他人引用(t *testing.T) {
	repo := setupRepo(t)
	seedNotification(t, repo, "n-1", "附件归属", "user-1", "org-10", broadcastTarget("n-1"))
	seedNotification(t, repo, "n-2", "他人通知", "user-2", "org-20", broadcastTarget("n-2"))

	now := time.Now()
	err := repo.AddAttachments(t.Context(), []entity.NotificationAttachment{
		{NotificationUuid: "n-1", Path: "/files/a.png", FileName: "a.png", CreatedAt: now},
		{NotificationUuid: "n-2", Path: "/files/b.png", FileName: "b.png", CreatedAt: now},
	})
	if err != nil {
		t.Fatalf("写入附件失败: %v", err)
	}

	// 对 n-1 同时引用本人附件和 n-2 的附件，后者应被忽略
	removed, err := repo.RemoveAttachmentsByPaths(t.Context(), "n-1", []string{"/files/a.png", "/files/b.png"})
	if err != nil {
		t.Fatalf("摘除附件失败: %v", err)
	}
	if len(removed) != 1 || removed[0].Path != "/files/a.png" {
		t.Fatalf("期望只摘除本人附件, 实际 %+v", removed)
	}

	left, err := repo.GetAttachments(t.Context(), "n-2")
	if err != nil {
		t.Fatalf("查询附件失败: %v", err)
	}
	if len(left) != 1 {
		t.Fatalf("n-2 的附件不应被摘除, 实际 %+v", left)
	}

	// 重放同一批引用不报错也不再有变更
	removed, err = repo.RemoveAttachmentsByPaths(t.Context(), "n-1", []string{"/files/a.png"})
	if err != nil || len(removed) != 0 {
		t.Fatalf("重放摘除 = (%v, %v), 期望无变更", removed, err)
	}
}
