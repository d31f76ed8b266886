package dto

// ErrorResponse cuerpo de error HTTP del servicio de productos.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
