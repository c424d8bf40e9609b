package request

// CreateNotificationRequest 创建通知。multipart 表单字段，上传文件由 handler 先行入库。
// 发布者身份不从表单读取，由认证中间件注入。
type CreateNotificationRequest struct {
	Type                  string   `form:"type" json:"type"`
	Subject               string   `form:"subject" json:"subject"`
	Body                  string   `form:"body" json:"body"`
	AuthoredDate          string   `form:"authoredDate" json:"authoredDate"`
	Country               int      `form:"country" json:"country"`
	State                 int      `form:"state" json:"state"`
	District              int      `form:"district" json:"district"`
	Address               string   `form:"address" json:"address"`
	NotifyAll             bool     `form:"notifyAll" json:"notifyAll"`
	NotifyOrganizationIds []string `form:"notifyOrganizationIds" json:"notifyOrganizationIds"`

	CreatedByOrgUuid  string `form:"-" json:"-"`
	CreatedByUserUuid string `form:"-" json:"-"`
}

// UpdateNotificationRequest 更新通知，removedFiles 按存储引用摘除既有附件
type UpdateNotificationRequest struct {
	NotificationUuid string   `form:"notificationId" json:"notificationId"`
	RemovedFiles     []string `form:"removedFiles" json:"removedFiles"`
	CreateNotificationRequest
}

// SearchNotificationRequest 关键字搜索，type 为视图标识 I/S/A
type SearchNotificationRequest struct {
	KeywordSearchText string `json:"keywordSearchText"`
	Type              string `json:"type"`
	Page              int    `json:"-"`
	PageSize          int    `json:"-"`
}
