package respond

type AttachmentItem struct {
	Path     string `json:"path"`
	FileType string `json:"fileType,omitempty"`
	FileName string `json:"fileName,omitempty"`
}

type NotificationItem struct {
	Uuid                  string           `json:"uuid"`
	Type                  string           `json:"type"`
	Subject               string           `json:"subject"`
	Body                  string           `json:"body"`
	AuthoredDate          string           `json:"authoredDate"`
	Country               int              `json:"country"`
	State                 int              `json:"state"`
	District              int              `json:"district"`
	Address               string           `json:"address,omitempty"`
	CreatedByOrgUuid      string           `json:"createdByOrganizationId"`
	CreatedByUserUuid     string           `json:"createdByUserId"`
	NotifyAll             bool             `json:"notifyAll"`
	NotifyOrganizationIds []string         `json:"notifyOrganizationIds,omitempty"`
	View                  string           `json:"view,omitempty"`
	Attachments           []AttachmentItem `json:"attachments"`
	CreatedAt             string           `json:"createdAt"`
}

type SearchNotificationRespond struct {
	Items []NotificationItem `json:"items"`
	Total int64              `json:"total"`
}

type CreateNotificationRespond struct {
	Uuid string `json:"uuid"`
}
