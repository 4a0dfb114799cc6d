// Package drive implementa el colaborador de subida remota sobre la API de
// Google Drive. La sesión es un token OAuth obtenido vía el flujo de login
// externo y persistido en disco; sin token no hay sincronización.
package drive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// DriveFileScope limita el acceso a archivos creados por esta aplicación.
const DriveFileScope = "https://www.googleapis.com/auth/drive.file"

// NewOAuthConfig arma la configuración OAuth2 para Drive.
func NewOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{DriveFileScope},
		Endpoint:     google.Endpoint,
	}
}

// SaveToken persiste el token con permisos restringidos.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("crear directorio del token: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("crear archivo del token: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("serializar token: %w", err)
	}
	return nil
}

// LoadToken lee el token persistido.
func LoadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir archivo del token: %w", err)
	}
	defer func() { _ = f.Close() }()

	var token oauth2.Token
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, fmt.Errorf("decodificar token: %w", err)
	}
	return &token, nil
}
