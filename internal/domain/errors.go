package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrImportFile   = errors.New("archivo de importación inválido")
	ErrNoDriveToken = errors.New("sin sesión de Google Drive")
)
