package request

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	OrgUuid  string `json:"org_uuid"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
