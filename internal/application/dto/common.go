package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse cuerpo de confirmación para operaciones sin entidad de retorno.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

