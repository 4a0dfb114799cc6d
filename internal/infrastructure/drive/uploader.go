package drive

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	appconfig "github.com/fmesac11-dmyc/dmyc-cotizaciones/pkg/config"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Uploader implementa quotes.Uploader contra Drive v3.
type Uploader struct {
	cfg       *oauth2.Config
	tokenPath string
}

// NewUploader construye el uploader desde la configuración de la app.
func NewUploader(cfg appconfig.DriveConfig) *Uploader {
	return &Uploader{
		cfg:       NewOAuthConfig(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURL),
		tokenPath: cfg.TokenPath,
	}
}

// Connected indica si hay una sesión persistida utilizable.
func (u *Uploader) Connected() bool {
	token, err := LoadToken(u.tokenPath)
	return err == nil && token != nil && (token.Valid() || token.RefreshToken != "")
}

// AuthURL devuelve la URL de consentimiento para iniciar el login.
func (u *Uploader) AuthURL(state string) string {
	return u.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange canjea el código de autorización y persiste el token.
func (u *Uploader) Exchange(ctx context.Context, code string) error {
	token, err := u.cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("canjear código de autorización: %w", err)
	}
	return SaveToken(u.tokenPath, token)
}

// service arma el cliente Drive autenticado; el http.Client de oauth2
// refresca el token solo cuando expira.
func (u *Uploader) service(ctx context.Context) (*drivev3.Service, error) {
	token, err := LoadToken(u.tokenPath)
	if err != nil {
		return nil, fmt.Errorf("cargar token: %w", err)
	}
	client := u.cfg.Client(ctx, token)
	svc, err := drivev3.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("crear servicio Drive: %w", err)
	}
	return svc, nil
}

// EnsureFolder busca la carpeta por nombre exacto (si hay duplicadas toma la
// primera) y la crea si no existe. Devuelve su id.
func (u *Uploader) EnsureFolder(ctx context.Context, name string) (string, error) {
	svc, err := u.service(ctx)
	if err != nil {
		return "", err
	}

	query := fmt.Sprintf("mimeType='%s' and name='%s' and trashed=false",
		folderMimeType, escapeQuery(name))
	found, err := svc.Files.List().
		Q(query).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("buscar carpeta %q: %w", name, err)
	}
	if len(found.Files) > 0 {
		return found.Files[0].Id, nil
	}

	created, err := svc.Files.Create(&drivev3.File{
		Name:     name,
		MimeType: folderMimeType,
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("crear carpeta %q: %w", name, err)
	}
	return created.Id, nil
}

// Upload sube un archivo binario con su tipo de contenido a la carpeta dada.
func (u *Uploader) Upload(ctx context.Context, folderID, filename, mimeType string, data []byte) error {
	svc, err := u.service(ctx)
	if err != nil {
		return err
	}
	_, err = svc.Files.Create(&drivev3.File{
		Name:    filename,
		Parents: []string{folderID},
	}).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields("id", "name").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("subir %s: %w", filename, err)
	}
	return nil
}

// escapeQuery escapa un término de búsqueda Drive: la barra invertida va
// primero, para no re-escapar las comillas ya escapadas.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
