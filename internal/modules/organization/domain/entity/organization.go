package entity

import (
	"time"
)

const (
	OrganizationStatusNormal  int8 = 0
	OrganizationStatusDeleted int8 = 1
)

// Organization 机构表
type Organization struct {
	Id        int64     `gorm:"column:id;primaryKey;comment:自增id"`
	Uuid      string    `gorm:"column:uuid;uniqueIndex;type:char(36);not null;comment:机构uuid"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;comment:机构名称"`
	Code      string    `gorm:"column:code;type:varchar(64);comment:机构编码"`
	Country   int       `gorm:"column:country;not null;default:0;comment:国家编码"`
	State     int       `gorm:"column:state;not null;default:0;comment:省/州编码"`
	District  int       `gorm:"column:district;not null;default:0;comment:区县编码"`
	Address   string    `gorm:"column:address;type:varchar(255);comment:详细地址"`
	Status    int8      `gorm:"column:status;not null;default:0;comment:状态：0.正常，1.已删除"`
	CreatedAt time.Time `gorm:"column:created_at;not null;comment:创建时间"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;comment:更新时间"`
}

func (Organization) TableName() string {
	return "organization"
}
