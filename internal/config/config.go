package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	// Пароль администратора: открытым текстом или bcrypt-хеш.
	AdminPassword     string        `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string        `env:"JWT_ACCESS_SECRET"`
	TokenTTL          time.Duration `env:"TOKEN_TTL" envDefault:"12h"`
	// Разрешить изменения очереди без входа администратора, как было раньше.
	OpenMutations bool `env:"OPEN_MUTATIONS" envDefault:"false"`

	TimeZone             string `env:"TIMEZONE" envDefault:"Asia/Manila"`
	LegacyPromoteArchive bool   `env:"LEGACY_PROMOTE_ARCHIVE" envDefault:"false"`

	StoreBackend string `env:"STORE_BACKEND" envDefault:"postgres"`

	DB     DBConfig
	Redis  RedisConfig
	Sheets SheetsConfig

	SQLitePath string `env:"SQLITE_PATH" envDefault:"court_queue.db"`

	SaveTimeout        time.Duration `env:"SAVE_TIMEOUT" envDefault:"15s"`
	LoadTimeout        time.Duration `env:"LOAD_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CheckpointSchedule string        `env:"CHECKPOINT_SCHEDULE" envDefault:"0 * * * * *"`
}

type DBConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"court_queue"`
}

type SheetsConfig struct {
	SpreadsheetID   string `env:"SHEETS_SPREADSHEET_ID"`
	CredentialsFile string `env:"SHEETS_CREDENTIALS_FILE" envDefault:"credentials.json"`
	QueueRange      string `env:"SHEETS_QUEUE_RANGE" envDefault:"Queue!A2:C"`
	HistoryRange    string `env:"SHEETS_HISTORY_RANGE" envDefault:"History!A2:B"`
}

// Load читает .env (если ENV_CHEK не задан) и разбирает переменные окружения.
func Load() (*Config, error) {
	if os.Getenv("ENV_CHEK") == "" {
		// .env нужен только при локальной разработке
		_ = godotenv.Load()
	}
	return Parse()
}

// Parse разбирает только переменные окружения, без .env.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		return errors.New("missing ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
	}
	switch c.StoreBackend {
	case "postgres", "sqlite", "redis", "none":
	case "sheets":
		if c.Sheets.SpreadsheetID == "" {
			return errors.New("missing SHEETS_SPREADSHEET_ID for sheets backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("TIMEZONE: %w", err)
	}
	return nil
}

// Location возвращает часовой пояс для меток истории. Validate уже проверил имя.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Redacted описывает конфигурацию для логов без секретов.
func (c *Config) Redacted() string {
	secret := "[set]"
	if c.JWTSecret == "" {
		secret = "[generated]"
	}
	return fmt.Sprintf(
		"addr=%s backend=%s tz=%s open_mutations=%t legacy_archive=%t checkpoint=%q jwt_secret=%s",
		c.HTTPAddr, c.StoreBackend, c.TimeZone, c.OpenMutations, c.LegacyPromoteArchive, c.CheckpointSchedule, secret,
	)
}
