package repository

import "context"

// SettingRepository persiste valores escalares por clave. Las claves que
// importan al núcleo son "seq" (contador de secuencia) y "driveFolderName".
// Los Get devuelven el fallback ante ausencia o fallo de lectura.
type SettingRepository interface {
	GetInt64(ctx context.Context, key string, fallback int64) int64
	GetString(ctx context.Context, key string, fallback string) string
	Set(ctx context.Context, key string, value any) error
}
