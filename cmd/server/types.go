package main

import (
	"time"

	"github.com/skynet2/conveyancing-inbox/pkg/database"
)

type Config struct {
	Port   string `env:"FUNCTIONS_CUSTOMHANDLER_PORT" envDefault:"8080"`
	ApiKey string `env:"API_KEY"`

	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	CosmoConnectionString string `env:"COSMO_DB_CONNECTION_STRING"`
	CosmoEndpoint         string `env:"COSMO_DB_ENDPOINT"`
	DbName                string `env:"COSMO_DB_NAME" envDefault:"conveyancing"`

	PostgresConnectionString string `env:"POSTGRES_CONNECTION_STRING"`

	RedisAddr    string        `env:"REDIS_ADDR"`
	DuplicateTTL time.Duration `env:"DUPLICATE_TTL" envDefault:"720h"`

	AmqpURL      string `env:"AMQP_URL"`
	AmqpExchange string `env:"AMQP_EXCHANGE" envDefault:"conveyancing"`

	DashboardURL    string `env:"DASHBOARD_URL"`
	DashboardApiKey string `env:"DASHBOARD_API_KEY"`

	TelegramBotToken   string `env:"TELEGRAM_BOT_TOKEN"`
	TriageChatID       int64  `env:"TRIAGE_CHAT_ID"`
	NotifyUnmatched    bool   `env:"NOTIFY_UNMATCHED" envDefault:"true"`
	NotifyBatchSummary bool   `env:"NOTIFY_BATCH_SUMMARY" envDefault:"false"`

	MatchStrategies []string `env:"MATCH_STRATEGIES" envSeparator:","`

	TaxonomyFile string `env:"TAXONOMY_FILE"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
}

type processResponse struct {
	Parsed               *database.ParsedMessage `json:"parsed"`
	MatchedTransactionID *string                 `json:"matchedTransactionId"`
	Strategy             *string                 `json:"strategy"`
	Duplicate            bool                    `json:"duplicate"`
}

type batchResponse struct {
	Results []processResponse `json:"results"`
	Errors  []string          `json:"errors"`
}
