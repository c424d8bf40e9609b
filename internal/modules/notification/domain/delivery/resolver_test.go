package delivery

import (
	"testing"

	"OrgLink/internal/modules/notification/domain/entity"
)

func TestBuildTargets(t *testing.T) {
	t.Run("广播时只生成一条广播记录", func(t *testing.T) {
		targets := BuildTargets("n1", true, nil)
		if len(targets) != 1 {
			t.Fatalf("期望 1 条记录, 实际 %d", len(targets))
		}
		if targets[0].Mode != entity.TargetModeBroadcast {
			t.Fatalf("期望广播模式, 实际 %d", targets[0].Mode)
		}
	})

	t.Run("notifyAll 与机构列表同时给出时广播优先", func(t *testing.T) {
		targets := BuildTargets("n1", true, []string{"org-1", "org-2"})
		if len(targets) != 1 {
			t.Fatalf("期望 1 条记录, 实际 %d", len(targets))
		}
		if targets[0].Mode != entity.TargetModeBroadcast {
			t.Fatalf("期望广播模式, 实际 %d", targets[0].Mode)
		}
	})

	t.Run("机构列表去重并忽略空白", func(t *testing.T) {
		targets := BuildTargets("n1", false, []string{"org-1", " org-1 ", "", "org-2"})
		if len(targets) != 2 {
			t.Fatalf("期望 2 条记录, 实际 %d", len(targets))
		}
		for _, tg := range targets {
			if tg.Mode != entity.TargetModeOrganization {
				t.Fatalf("期望机构模式, 实际 %d", tg.Mode)
			}
			if tg.NotificationUuid != "n1" {
				t.Fatalf("归属通知错误: %s", tg.NotificationUuid)
			}
		}
	})

	t.Run("空机构列表产生零条记录", func(t *testing.T) {
		if targets := BuildTargets("n1", false, nil); len(targets) != 0 {
			t.Fatalf("期望 0 条记录, 实际 %d", len(targets))
		}
	})
}

func TestIsVisible(t *testing.T) {
	broadcast := []entity.NotificationTarget{{NotificationUuid: "n1", Mode: entity.TargetModeBroadcast}}
	scoped := []entity.NotificationTarget{
		{NotificationUuid: "n1", Mode: entity.TargetModeOrganization, OrganizationUuid: "org-5"},
		{NotificationUuid: "n1", Mode: entity.TargetModeOrganization, OrganizationUuid: "org-7"},
	}

	tests := []struct {
		name    string
		targets []entity.NotificationTarget
		org     string
		want    bool
	}{
		{"广播对任意机构可见", broadcast, "org-9", true},
		{"命中目标机构可见", scoped, "org-5", true},
		{"命中另一目标机构可见", scoped, "org-7", true},
		{"未命中目标机构不可见", scoped, "org-9", false},
		{"无任何投递范围不可见", nil, "org-5", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsVisible(tt.targets, tt.org); got != tt.want {
				t.Fatalf("IsVisible = %v, 期望 %v", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	n := &entity.Notification{Uuid: "n1", CreatedByUserUuid: "user-42", CreatedByOrgUuid: "org-10"}
	scoped := []entity.NotificationTarget{
		{NotificationUuid: "n1", Mode: entity.TargetModeOrganization, OrganizationUuid: "org-5"},
	}

	t.Run("作者视角恒为已发送", func(t *testing.T) {
		view, ok := Classify(n, scoped, "user-42", "org-10")
		if !ok || view != entity.ViewSent {
			t.Fatalf("Classify = (%v, %v), 期望 (S, true)", view, ok)
		}
	})

	t.Run("目标机构成员归入收件箱", func(t *testing.T) {
		view, ok := Classify(n, scoped, "user-7", "org-5")
		if !ok || view != entity.ViewInbox {
			t.Fatalf("Classify = (%v, %v), 期望 (I, true)", view, ok)
		}
	})

	t.Run("范围之外的查看者不可见", func(t *testing.T) {
		if _, ok := Classify(n, scoped, "user-7", "org-9"); ok {
			t.Fatal("期望不可见")
		}
	})
}
