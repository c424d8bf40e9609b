package request

type CreateOrganizationRequest struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Country  int    `json:"country"`
	State    int    `json:"state"`
	District int    `json:"district"`
	Address  string `json:"address"`
}

type UpdateOrganizationRequest struct {
	Uuid string `json:"uuid"`
	CreateOrganizationRequest
}

type ListOrganizationRequest struct {
	Keyword  string `json:"keyword"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}
