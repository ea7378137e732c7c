package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	Postgres PostgresConfig `env:",prefix=POSTGRES_"`
	JWT      JWTConfig      `env:",prefix=JWT_"`
	Google   GoogleConfig   `env:",prefix=GOOGLE_"`
	TMDB     TMDBConfig     `env:",prefix=TMDB_"`
	Frontend FrontendConfig `env:",prefix=FRONTEND_"`
	Security SecurityConfig `env:",prefix="`
	CORS     CORSConfig     `env:",prefix=CORS_"`
	Env      string         `env:"ENV,default=development"`
}

type ServerConfig struct {
	Port         string   `env:"PORT,default=8080"`
	Host         string   `env:"HOST,default=0.0.0.0"`
	ReadTimeout  Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout Duration `env:"WRITE_TIMEOUT,default=15s"`
}

type PostgresConfig struct {
	Host           string `env:"HOST,default=localhost"`
	Port           string `env:"PORT,default=5432"`
	User           string `env:"USER,default=corsairstream"`
	Password       string `env:"PASSWORD,default=corsairstream_password"`
	DBName         string `env:"DB,default=corsairstream_db"`
	SSLMode        string `env:"SSLMODE,default=disable"`
	MigrationsPath string `env:"MIGRATIONS_PATH,default=migrations"`
}

type JWTConfig struct {
	Secret             string   `env:"SECRET,required"`
	AccessTokenExpiry  Duration `env:"ACCESS_TOKEN_EXPIRY,default=30m"`
	RefreshTokenExpiry Duration `env:"REFRESH_TOKEN_EXPIRY,default=7d"`
}

// GoogleConfig holds the Google OAuth client settings. ClientID is optional at
// startup; the OAuth endpoints report a configuration error when it is unset.
// The endpoint URLs are overridable so tests can point at a local provider.
type GoogleConfig struct {
	ClientID     string   `env:"CLIENT_ID"`
	ClientSecret string   `env:"CLIENT_SECRET"`
	RedirectURI  string   `env:"REDIRECT_URI,default=http://localhost:8080/api/auth/oauth2/callback"`
	AuthURL      string   `env:"AUTH_URL,default=https://accounts.google.com/o/oauth2/v2/auth"`
	TokenURL     string   `env:"TOKEN_URL,default=https://oauth2.googleapis.com/token"`
	UserInfoURL  string   `env:"USERINFO_URL,default=https://www.googleapis.com/oauth2/v3/userinfo"`
	Timeout      Duration `env:"TIMEOUT,default=10s"`
}

type TMDBConfig struct {
	BaseURL     string   `env:"BASE_URL,default=https://api.themoviedb.org/3"`
	AccessToken string   `env:"ACCESS_TOKEN"`
	Timeout     Duration `env:"TIMEOUT,default=10s"`
}

type FrontendConfig struct {
	OAuthCallbackURL string `env:"OAUTH_CALLBACK_URL,default=http://localhost:5173/auth/google/callback"`
}

type SecurityConfig struct {
	BCryptCost int `env:"BCRYPT_COST,default=12"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:5173"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization"`
}

// DSN returns PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Validate JWT secret length
	if len(config.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	return &config, nil
}
