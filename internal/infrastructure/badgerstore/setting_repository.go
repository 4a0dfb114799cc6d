package badgerstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// SettingRepository implementa repository.SettingRepository sobre Badger.
// Los valores se guardan como JSON crudo bajo settings/<key>.
type SettingRepository struct {
	store *Store
}

// NewSettingRepository construye el repositorio.
func NewSettingRepository(store *Store) *SettingRepository {
	return &SettingRepository{store: store}
}

func settingKey(key string) []byte { return []byte(prefixSettings + key) }

// GetInt64 devuelve el fallback ante ausencia o valor ilegible.
func (r *SettingRepository) GetInt64(_ context.Context, key string, fallback int64) int64 {
	raw, ok := r.store.get(settingKey(key))
	if !ok {
		return fallback
	}
	var v int64
	if err := json.Unmarshal(raw, &v); err != nil {
		return fallback
	}
	return v
}

// GetString devuelve el fallback ante ausencia o valor ilegible.
func (r *SettingRepository) GetString(_ context.Context, key string, fallback string) string {
	raw, ok := r.store.get(settingKey(key))
	if !ok {
		return fallback
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return fallback
	}
	return v
}

// Set graba (upsert) el valor de una clave.
func (r *SettingRepository) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serializar setting %s: %w", key, err)
	}
	return r.store.set(settingKey(key), raw)
}
