package api

// UploadResponse представляет ответ на успешную загрузку файла
type UploadResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}
