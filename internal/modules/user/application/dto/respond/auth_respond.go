package respond

type RegisterRespond struct {
	Uuid     string `json:"uuid"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	OrgUuid  string `json:"org_uuid"`
}

type LoginRespond struct {
	Uuid     string `json:"uuid"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	OrgUuid  string `json:"org_uuid"`
	Token    string `json:"token"`
}
