package api

// UploadResponse ответ на загрузку одного изображения
type UploadResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// MultipleUploadResponse ответ на загрузку нескольких изображений
type MultipleUploadResponse struct {
	Message string   `json:"message"`
	URLs    []string `json:"urls"`
	Count   int      `json:"count"`
}

// GenerateDescriptionRequest запрос на генерацию описания товара
type GenerateDescriptionRequest struct {
	Title              string   `json:"title"`
	CurrentDescription string   `json:"currentDescription,omitempty"`
	CategoryName       string   `json:"categoryName,omitempty"`
	Images             []string `json:"images,omitempty"`
	Price              float64  `json:"price,omitempty"`
}

// GenerateTitleRequest запрос на генерацию заголовка товара
type GenerateTitleRequest struct {
	CurrentTitle string `json:"currentTitle"`
	CategoryName string `json:"categoryName,omitempty"`
}

// AIResponse результат генерации текста
type AIResponse struct {
	Description string `json:"description,omitempty"`
	Title       string `json:"title,omitempty"`
	GeneratedAt string `json:"generatedAt"`
	Service     string `json:"service"`
}

// AIStatusResponse состояние AI сервиса
type AIStatusResponse struct {
	Service   string `json:"service"`
	Message   string `json:"message"`
	Available bool   `json:"available"`
}
