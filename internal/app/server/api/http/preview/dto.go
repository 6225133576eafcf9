package preview

type renderInput struct {
	Body renderRequest
}

type renderRequest struct {
	Content string `json:"content" doc:"Markdown-текст"`
}

type renderOutput struct {
	Body renderResponse
}

type renderResponse struct {
	HTML string `json:"html" doc:"Безопасный HTML для панели предпросмотра"`
}
