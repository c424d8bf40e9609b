package respond

type OrganizationItem struct {
	Uuid      string `json:"uuid"`
	Name      string `json:"name"`
	Code      string `json:"code,omitempty"`
	Country   int    `json:"country"`
	State     int    `json:"state"`
	District  int    `json:"district"`
	Address   string `json:"address,omitempty"`
	CreatedAt string `json:"created_at"`
}

type OrganizationListRespond struct {
	Items []OrganizationItem `json:"items"`
	Total int64              `json:"total"`
}
