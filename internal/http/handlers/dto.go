package handlers

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ImportResult struct {
	Dataset  string `json:"dataset"`
	Mode     string `json:"mode"`
	Imported int    `json:"imported"`
}
