package dto

// ErrorResponse cuerpo de error HTTP. Cada caso de la taxonomía de errores
// del dominio mapea a un Code distinto (VALIDATION, NOT_FOUND, IMPORT_INVALID,
// NO_DRIVE_TOKEN, SYNC_FAILED, INTERNAL).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
