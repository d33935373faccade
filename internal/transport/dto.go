package transport

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type MeResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
