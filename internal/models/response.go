package models

// CommonResponse - единый конверт для всех ответов API.
// Status показывает успех операции, Message содержит человекочитаемое
// описание, Data - полезную нагрузку (может отсутствовать).
type CommonResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK создает успешный ответ.
func OK(message string, data interface{}) CommonResponse {
	return CommonResponse{Status: true, Message: message, Data: data}
}

// Fail создает ответ об ошибке.
func Fail(message string) CommonResponse {
	return CommonResponse{Status: false, Message: message}
}
