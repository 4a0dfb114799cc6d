package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Store    StoreConfig
	Quotes   QuotesConfig
	Drive    DriveConfig
	Business BusinessConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP local.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig configuración del almacén embebido.
type StoreConfig struct {
	Driver string // badger | memory
	Path   string // directorio de datos de badger
}

// QuotesConfig parámetros del numerador y del formulario.
type QuotesConfig struct {
	SeqFloor  int64 // piso del contador de secuencia (1 por defecto, 401 en producción DMYC)
	ValidDays int   // vigencia por defecto de una cotización nueva
}

// DriveConfig configuración de la subida a Google Drive.
type DriveConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	TokenPath    string // archivo donde se persiste el token OAuth
	FolderName   string // carpeta destino por defecto (setting driveFolderName la sobreescribe)
}

// BusinessConfig membrete del negocio para PDF y planillas.
type BusinessConfig struct {
	Name     string
	TaxID    string
	Address  string
	Email    string
	BankLine string
	Closing  string
}

// Load lee la configuración desde variables de entorno (y opcionalmente
// desde archivo). Las env vars tienen prioridad. Nombres esperados:
// APP_ENV, HTTP_PORT, STORE_PATH, QUOTES_SEQ_FLOOR, DRIVE_CLIENT_ID, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "dmyc-cotizaciones"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Store: StoreConfig{
			Driver: getString(v, "STORE_DRIVER", "badger"),
			Path:   getString(v, "STORE_PATH", "./data/cotizaciones"),
		},
		Quotes: QuotesConfig{
			SeqFloor:  int64(getInt(v, "QUOTES_SEQ_FLOOR", 1)),
			ValidDays: getInt(v, "QUOTES_VALID_DAYS", 5),
		},
		Drive: DriveConfig{
			ClientID:     getString(v, "DRIVE_CLIENT_ID", ""),
			ClientSecret: getString(v, "DRIVE_CLIENT_SECRET", ""),
			RedirectURL:  getString(v, "DRIVE_REDIRECT_URL", "http://localhost:8080/api/drive/callback"),
			TokenPath:    getString(v, "DRIVE_TOKEN_PATH", "./data/drive-token.json"),
			FolderName:   getString(v, "DRIVE_FOLDER_NAME", "DMYC_Cotizaciones"),
		},
		Business: BusinessConfig{
			Name:     getString(v, "BUSINESS_NAME", "DMYC spa"),
			TaxID:    getString(v, "BUSINESS_TAX_ID", "76.935.323-2"),
			Address:  getString(v, "BUSINESS_ADDRESS", "Cerro el plomo 5931 of 1213, Las Condes"),
			Email:    getString(v, "BUSINESS_EMAIL", "INFO@DMYC.CL"),
			BankLine: getString(v, "BUSINESS_BANK_LINE", "DMYC Spa · Banco BCI · Cta. Cte. 95148019 · INFO@DMYC.CL"),
			Closing:  getString(v, "BUSINESS_CLOSING", "GRACIAS POR SU CONFIANZA."),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
