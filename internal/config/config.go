package config

import (
	"flag"
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"localhost"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
	// RO rejects every write with 502.
	Mode        string `env:"HTTP_MODE" envDefault:"RW"`
	MaxUploadMB int64  `env:"HTTP_MAX_UPLOAD_MB" envDefault:"512"`
}

type RedisCache struct {
	Host     string `env:"REDIS_HOST" envDefault:"redis"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:"shared"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type Postgres struct {
	Host        string `env:"DB_HOST" envDefault:"localhost"`
	Port        string `env:"DB_PORT" envDefault:"5432"`
	User        string `env:"DB_USER" envDefault:"admin"`
	Password    string `env:"DB_PASSWORD" envDefault:"shared"`
	DBName      string `env:"DB_NAME" envDefault:"catalog"`
	SSLMode     string `env:"DB_SSLMODE" envDefault:"disable"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"false"`
}

type Storage struct {
	// s3, minio or memory
	Driver     string        `env:"STORAGE_DRIVER" envDefault:"memory"`
	Bucket     string        `env:"STORAGE_BUCKET" envDefault:"catalog-media"`
	Prefix     string        `env:"STORAGE_PREFIX" envDefault:"videos"`
	Endpoint   string        `env:"STORAGE_ENDPOINT" envDefault:"minio:9000"`
	AccessKey  string        `env:"STORAGE_ACCESS_KEY"`
	SecretKey  string        `env:"STORAGE_SECRET_KEY"`
	Region     string        `env:"STORAGE_REGION" envDefault:"us-east-1"`
	UseSSL     bool          `env:"STORAGE_USE_SSL" envDefault:"false"`
	PresignTTL time.Duration `env:"STORAGE_PRESIGN_TTL" envDefault:"15m"`
}

type Encoder struct {
	RequestQueue string        `env:"ENCODER_REQUEST_QUEUE" envDefault:"encoder:requests"`
	ResultQueue  string        `env:"ENCODER_RESULT_QUEUE" envDefault:"encoder:results"`
	DeadQueue    string        `env:"ENCODER_DEAD_QUEUE" envDefault:"encoder:results:dead"`
	PollTimeout  time.Duration `env:"ENCODER_POLL_TIMEOUT" envDefault:"5s"`
	MaxAttempts  int           `env:"ENCODER_MAX_ATTEMPTS" envDefault:"5"`
}

type Auth struct {
	Secret string        `env:"ADMIN_SECRET" envDefault:"shared"`
	TTL    time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"10m"`
	// Semicolon separated auth service addresses. Empty means in-process validation.
	Servers string `env:"AUTH_SERVERS"`
}

type Janitor struct {
	Schedule  string `env:"JANITOR_SCHEDULE" envDefault:"0 */5 * * * *"`
	OrphanKey string `env:"JANITOR_ORPHAN_KEY" envDefault:"storage:orphans"`
	BatchSize int64  `env:"JANITOR_BATCH_SIZE" envDefault:"50"`
}

type Log struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	Format     string `env:"LOG_FORMAT" envDefault:"text"`
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`
}

type Config struct {
	HTTP     HTTPServer
	Redis    RedisCache
	Postgres Postgres
	Storage  Storage
	Encoder  Encoder
	Auth     Auth
	Janitor  Janitor
	Log      Log
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg, err := Parse(nil)
	if err != nil {
		log.Fatalf("%s err parsing env : %v", logtag, err)
	}

	log.Printf("%s backend config : %+v\n", logtag, cfg.redacted())
	return cfg
}

// Parse builds a Config from environ, or from the process environment when
// environ is nil.
func Parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.Parse(cfg, opts); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c Config) redacted() Config {
	const mask = "***"
	if c.Postgres.Password != "" {
		c.Postgres.Password = mask
	}
	if c.Redis.Password != "" {
		c.Redis.Password = mask
	}
	if c.Storage.SecretKey != "" {
		c.Storage.SecretKey = mask
	}
	if c.Auth.Secret != "" {
		c.Auth.Secret = mask
	}
	return c
}
