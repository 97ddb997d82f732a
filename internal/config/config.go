// Package config carga la configuración del proceso desde el entorno.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Modos de autenticación.
const (
	AuthModeDev    = "dev"
	AuthModeJWT    = "jwt"
	AuthModeRemote = "remote"
)

type Config struct {
	Port string `envconfig:"PORT" default:"8080"`
	Env  string `envconfig:"ENV" default:"dev"`

	// Vacío => store en memoria.
	DBDSN string `envconfig:"DB_DSN"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	AppName   string `envconfig:"APP_NAME" default:"vet-clinic"`

	AuthMode          string        `envconfig:"AUTH_MODE" default:"dev"`
	JWTSecret         string        `envconfig:"JWT_SECRET"`
	JWTTTL            time.Duration `envconfig:"JWT_TTL" default:"1h"`
	AuthRemoteURL     string        `envconfig:"AUTH_REMOTE_URL"`
	AuthRemoteAPIKey  string        `envconfig:"AUTH_REMOTE_API_KEY"`
	AuthRemoteTimeout time.Duration `envconfig:"AUTH_REMOTE_TIMEOUT" default:"5s"`

	// Vacío => sin publicación de eventos.
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"vet-clinic.events"`

	// Vacío => sin exporter de trazas.
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Admin inicial; vacío => no se crea.
	BootstrapAdminName     string `envconfig:"BOOTSTRAP_ADMIN_NAME" default:"admin"`
	BootstrapAdminEmail    string `envconfig:"BOOTSTRAP_ADMIN_EMAIL"`
	BootstrapAdminPassword string `envconfig:"BOOTSTRAP_ADMIN_PASSWORD"`

	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load lee .env (si existe) y después el entorno. Las variables ya definidas
// en el entorno ganan sobre el archivo.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	c.AuthMode = strings.ToLower(strings.TrimSpace(c.AuthMode))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.AuthMode {
	case AuthModeDev:
		// Los headers X-Debug-* permiten elegir rol: solo fuera de producción.
		if !c.IsLocal() {
			return fmt.Errorf("config: AUTH_MODE=dev is not allowed with ENV=%s", c.Env)
		}
	case AuthModeJWT:
		if c.JWTSecret == "" {
			return errors.New("config: JWT_SECRET is required when AUTH_MODE=jwt")
		}
	case AuthModeRemote:
		if c.AuthRemoteURL == "" {
			return errors.New("config: AUTH_REMOTE_URL is required when AUTH_MODE=remote")
		}
	default:
		return fmt.Errorf("config: unknown AUTH_MODE %q", c.AuthMode)
	}
	if c.BootstrapAdminEmail != "" && c.BootstrapAdminPassword == "" {
		return errors.New("config: BOOTSTRAP_ADMIN_PASSWORD is required with BOOTSTRAP_ADMIN_EMAIL")
	}
	return nil
}

// IsLocal: entornos donde se aceptan los headers de depuración.
func (c Config) IsLocal() bool {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "dev", "development", "local", "test":
		return true
	}
	return false
}

func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
