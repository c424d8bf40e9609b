package entity

import "errors"

// ViewType 通知视图：收件箱 / 已发送 / 待处理
type ViewType string

const (
	ViewInbox    ViewType = "I"
	ViewSent     ViewType = "S"
	ViewAwaiting ViewType = "A"
)

var ErrUnknownViewType = errors.New("unknown view type")

// ParseViewType 解析报文中的视图标识，未知取值视为参数错误
func ParseViewType(s string) (ViewType, error) {
	switch ViewType(s) {
	case ViewInbox, ViewSent, ViewAwaiting:
		return ViewType(s), nil
	default:
		return "", ErrUnknownViewType
	}
}
