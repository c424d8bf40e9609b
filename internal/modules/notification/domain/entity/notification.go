package entity

import (
	"time"
)

// 通知状态
const (
	NotificationStatusNormal  int8 = 0
	NotificationStatusDeleted int8 = 1
)

// 投递范围模式
const (
	TargetModeBroadcast    int8 = 0 // 全员可见
	TargetModeOrganization int8 = 1 // 指定机构可见
)

// Notification 通知主表
type Notification struct {
	Id                int64     `gorm:"column:id;primaryKey;comment:自增id"`
	Uuid              string    `gorm:"column:uuid;uniqueIndex;type:char(36);not null;comment:通知uuid"`
	Type              string    `gorm:"column:type;type:varchar(64);comment:通知分类"`
	Subject           string    `gorm:"column:subject;type:varchar(255);not null;comment:标题"`
	Body              string    `gorm:"column:body;type:text;not null;comment:正文"`
	AuthoredDate      string    `gorm:"column:authored_date;type:varchar(10);not null;comment:落款日期 yyyy-mm-dd"`
	Country           int       `gorm:"column:country;not null;default:0;comment:国家编码"`
	State             int       `gorm:"column:state;not null;comment:省/州编码"`
	District          int       `gorm:"column:district;not null;comment:区县编码"`
	Address           string    `gorm:"column:address;type:varchar(255);comment:详细地址"`
	CreatedByOrgUuid  string    `gorm:"column:created_by_org_uuid;index;type:char(36);not null;comment:发布机构uuid"`
	CreatedByUserUuid string    `gorm:"column:created_by_user_uuid;index;type:char(36);not null;comment:发布人uuid"`
	Status            int8      `gorm:"column:status;not null;default:0;comment:状态：0.正常，1.已删除"`
	CreatedAt         time.Time `gorm:"column:created_at;not null;comment:创建时间"`
	UpdatedAt         time.Time `gorm:"column:updated_at;not null;comment:更新时间"`
}

func (Notification) TableName() string {
	return "notification"
}

// NotificationTarget 通知投递范围表，一条通知要么恰有一条广播记录，要么有若干条机构记录
type NotificationTarget struct {
	Id               int64  `gorm:"column:id;primaryKey;comment:自增id"`
	NotificationUuid string `gorm:"column:notification_uuid;index;type:char(36);not null;comment:通知uuid"`
	Mode             int8   `gorm:"column:mode;not null;default:0;comment:范围模式：0.广播，1.指定机构"`
	OrganizationUuid string `gorm:"column:organization_uuid;index;type:char(36);comment:目标机构uuid，广播时为空"`
}

func (NotificationTarget) TableName() string {
	return "notification_target"
}

// NotificationAttachment 通知附件表，附件独占归属于一条通知
type NotificationAttachment struct {
	Id               int64     `gorm:"column:id;primaryKey;comment:自增id"`
	NotificationUuid string    `gorm:"column:notification_uuid;index;type:char(36);not null;comment:通知uuid"`
	Path             string    `gorm:"column:path;type:varchar(512);not null;comment:存储引用(路径/URL)"`
	FileType         string    `gorm:"column:file_type;type:varchar(128);comment:MIME类型"`
	FileName         string    `gorm:"column:file_name;type:varchar(255);comment:原始文件名"`
	CreatedAt        time.Time `gorm:"column:created_at;not null;comment:创建时间"`
}

func (NotificationAttachment) TableName() string {
	return "notification_attachment"
}
