package session

type createInput struct {
	Body createRequest
}

type createRequest struct {
	Username string `json:"username" minLength:"1" maxLength:"128" example:"alice" doc:"Имя владельца записей"`
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	Token string `json:"token" doc:"Значение для заголовка Authorization"`
}
