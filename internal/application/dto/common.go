package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WarningResponse respuesta exitosa con advertencia de reconciliación.
type WarningResponse struct {
	Warning string `json:"warning,omitempty"`
}
