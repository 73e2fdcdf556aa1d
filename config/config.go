package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		HTTP            HTTP
		Log             Log
		PG              PG
		S3              S3
		OutboxRelay     OutboxRelay
		Kafka           Kafka
		KafkaController KafkaController
		Content         Content
		Forms           Forms
		Images          Images
		Auth            Auth
		Swagger         Swagger
	}

	HTTP struct {
		Port           string `env:"HTTP_PORT,required"`
		UsePreforkMode bool   `env:"HTTP_USE_PREFORK_MODE" envDefault:"false"`
		BodyLimitMB    int    `env:"HTTP_BODY_LIMIT_MB" envDefault:"20"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL,required"`
	}

	PG struct {
		PoolMax int    `env:"PG_POOL_MAX,required"`
		URL     string `env:"PG_URL,required"`
		Migrate bool   `env:"PG_MIGRATE" envDefault:"true"`

		ConnAttempts int `env:"PG_CONN_ATTEMPTS" envDefault:"10"`
	}

	S3 struct {
		Endpoint       string        `env:"S3_ENDPOINT,required"`
		AccessKey      string        `env:"S3_ACCESS_KEY,required"`
		SecretKey      string        `env:"S3_SECRET_KEY,required"`
		Bucket         string        `env:"S3_BUCKET,required"`
		Region         string        `env:"S3_REGION" envDefault:"us-east-1"`
		PublicURL      string        `env:"S3_PUBLIC_URL,required"` // base url the site loads images from
		UsePathStyle   bool          `env:"S3_USE_PATH_STYLE" envDefault:"true"` // minio needs path-style addressing
		CfgLoadTimeout time.Duration `env:"S3_LOAD_CFG_TIMEOUT" envDefault:"10s"`
	}

	Kafka struct {
		Brokers []string `env:"KAFKA_BROKERS,required"`
		GroupID string   `env:"KAFKA_GROUP_ID,required"`
		Topic   string   `env:"KAFKA_TOPIC,required"`

		ConnAttempts    int  `env:"KAFKA_CONN_ATTEMPTS" envDefault:"10"`
		AutoCreateTopic bool `env:"KAFKA_AUTO_CREATE_TOPIC" envDefault:"true"`
	}

	OutboxRelay struct {
		PollInterval        time.Duration `env:"OUTBOX_RELAY_POLL_INTERVAL" envDefault:"2s"`
		MarkFailedInterval  time.Duration `env:"OUTBOX_RELAY_MARK_FAILED_INTERVAL" envDefault:"2m"`
		CleanupInterval     time.Duration `env:"OUTBOX_RELAY_CLEANUP_INTERVAL" envDefault:"24h"`
		Retention           time.Duration `env:"OUTBOX_RELAY_RETENTION" envDefault:"168h"`
		ProcessBatchTimeout time.Duration `env:"OUTBOX_RELAY_PROCESS_BATCH_TIMEOUT" envDefault:"15s"`
		ShutdownTimeout     time.Duration `env:"OUTBOX_RELAY_SHUTDOWN_TIMEOUT" envDefault:"5s"`
		BatchSize           int           `env:"OUTBOX_RELAY_BATCH_SIZE" envDefault:"100"`
		MaxRetries          int           `env:"OUTBOX_RELAY_MAX_RETRIES" envDefault:"3"`
	}

	KafkaController struct {
		CommitTimeout   time.Duration `env:"KAFKA_CONTROLLER_COMMIT_TIMEOUT" envDefault:"2s"`
		ProcessTimeout  time.Duration `env:"KAFKA_CONTROLLER_PROCESS_TIMEOUT" envDefault:"15s"` // one cleanup retry including the outbox write
		ShutdownTimeout time.Duration `env:"KAFKA_CONTROLLER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	}

	Content struct {
		MaxCleanupAttempts int `env:"CONTENT_MAX_CLEANUP_ATTEMPTS" envDefault:"5"`
	}

	Forms struct {
		TTL           time.Duration `env:"FORMS_TTL" envDefault:"2h"`
		SweepInterval time.Duration `env:"FORMS_SWEEP_INTERVAL" envDefault:"5m"`
	}

	Images struct {
		MaxWidth  int `env:"IMAGES_MAX_WIDTH" envDefault:"1920"`
		MaxHeight int `env:"IMAGES_MAX_HEIGHT" envDefault:"1920"`
	}

	// Auth is disabled while JWTSecret is empty.
	Auth struct {
		JWTSecret string `env:"AUTH_JWT_SECRET"`
	}

	Swagger struct {
		Enabled bool `env:"SWAGGER_ENABLED" envDefault:"false"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}
