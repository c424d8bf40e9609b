package entity

import (
	"time"
)

const (
	UserStatusNormal   int8 = 0
	UserStatusDisabled int8 = 1
)

// UserInfo 用户表
type UserInfo struct {
	Id        int64     `gorm:"column:id;primaryKey;comment:自增id"`
	Uuid      string    `gorm:"column:uuid;uniqueIndex;type:char(36);not null;comment:用户uuid"`
	Username  string    `gorm:"column:username;uniqueIndex;type:varchar(64);not null;comment:登录名"`
	Nickname  string    `gorm:"column:nickname;type:varchar(64);comment:昵称"`
	Password  string    `gorm:"column:password;type:varchar(255);not null;comment:密码散列"`
	OrgUuid   string    `gorm:"column:org_uuid;index;type:char(36);not null;comment:所属机构uuid"`
	IsAdmin   int8      `gorm:"column:is_admin;not null;default:0;comment:是否管理员"`
	Status    int8      `gorm:"column:status;not null;default:0;comment:状态：0.正常，1.禁用"`
	CreatedAt time.Time `gorm:"column:created_at;not null;comment:创建时间"`
}

func (UserInfo) TableName() string {
	return "user_info"
}
