package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	"github.com/caarlos0/env/v10"
	"github.com/gorilla/mux"
	"github.com/imroc/req/v3"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/skynet2/conveyancing-inbox/pkg/common"
	"github.com/skynet2/conveyancing-inbox/pkg/dashboard"
	"github.com/skynet2/conveyancing-inbox/pkg/database"
	"github.com/skynet2/conveyancing-inbox/pkg/duplicatecleaner"
	"github.com/skynet2/conveyancing-inbox/pkg/events"
	"github.com/skynet2/conveyancing-inbox/pkg/matcher"
	"github.com/skynet2/conveyancing-inbox/pkg/notifications"
	"github.com/skynet2/conveyancing-inbox/pkg/parser"
	"github.com/skynet2/conveyancing-inbox/pkg/printer"
	"github.com/skynet2/conveyancing-inbox/pkg/processor"
	"github.com/skynet2/conveyancing-inbox/pkg/repo"
	"github.com/skynet2/conveyancing-inbox/pkg/taxonomy"
)

func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to parse config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}

	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	log.Logger = logger

	tax, err := loadTaxonomy(cfg.TaxonomyFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load taxonomy")
	}

	client, err := newCosmoClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create cosmos client")
	}

	dataRepo, err := repo.NewCosmo(client, cfg.DbName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init cosmos repo")
	}

	var duplicateRepo duplicatecleaner.Repo = dataRepo
	if cfg.RedisAddr != "" {
		duplicateRepo = repo.NewRedis(redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		}), cfg.DuplicateTTL)
	}

	dashboardClient := dashboard.NewClient(cfg.DashboardApiKey, cfg.DashboardURL, req.DefaultClient())

	var candidates processor.CandidateSource = dashboardClient
	if cfg.PostgresConnectionString != "" {
		db, dbErr := gorm.Open(postgres.Open(cfg.PostgresConnectionString), &gorm.Config{})
		if dbErr != nil {
			log.Fatal().Err(dbErr).Msg("failed to get postgres")
		}

		pg := repo.NewPostgres(db)
		if err = pg.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate")
		}

		candidates = pg
	}

	procCfg := &processor.Config{
		Repo:             dataRepo,
		CandidateSource:  candidates,
		TimelineWriter:   dashboardClient,
		DuplicateCleaner: duplicatecleaner.NewDuplicateCleaner(duplicateRepo),
		Printer:          printer.NewPrinter(),
		Parsers: map[database.Channel]processor.Parser{
			database.ChannelEmail:    parser.NewEmail(tax, nil),
			database.ChannelWhatsApp: parser.NewWhatsApp(tax, nil),
		},
		Matcher:  newMatcher(cfg.MatchStrategies),
		Taxonomy: tax,
		Triage: common.TriageConfiguration{
			ChatID:             cfg.TriageChatID,
			NotifyUnmatched:    cfg.NotifyUnmatched,
			NotifyBatchSummary: cfg.NotifyBatchSummary,
		},
	}

	if cfg.TelegramBotToken != "" {
		procCfg.NotificationSvc = notifications.NewTelegram(cfg.TelegramBotToken, req.DefaultClient())
	}

	if cfg.AmqpURL != "" {
		publisher, pubErr := events.Dial(cfg.AmqpURL, cfg.AmqpExchange)
		if pubErr != nil {
			log.Fatal().Err(pubErr).Msg("failed to connect to amqp")
		}
		defer func() {
			_ = publisher.Close()
		}()

		procCfg.EventPublisher = publisher
	}

	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, request *http.Request) {
			next.ServeHTTP(w, request.WithContext(logger.WithContext(request.Context())))
		})
	})

	handle := NewHandler(processor.NewProcessor(procCfg), dataRepo, cfg.ApiKey, cfg.MaxBodyBytes)
	handle.Register(r)

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + cfg.Port,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  60 * time.Second,
	}

	logger.Info().Str("addr", srv.Addr).Msg("listening")

	if err = srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newMatcher(names []string) *matcher.Matcher {
	strategies := make([]matcher.Strategy, 0, len(names))
	for _, name := range names {
		strategies = append(strategies, matcher.Strategy(strings.ToLower(strings.TrimSpace(name))))
	}

	m := matcher.NewMatcher(strategies...)
	log.Info().Interface("strategies", m.Strategies()).Msg("matcher configured")

	return m
}

func loadTaxonomy(path string) (*taxonomy.Taxonomy, error) {
	if path == "" {
		return taxonomy.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return taxonomy.Load(data)
}

// newCosmoClient prefers a connection string and falls back to the ambient Azure identity.
func newCosmoClient(cfg Config) (*azcosmos.Client, error) {
	if cfg.CosmoConnectionString != "" {
		return azcosmos.NewClientFromConnectionString(cfg.CosmoConnectionString, nil)
	}

	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}

	return azcosmos.NewClient(cfg.CosmoEndpoint, credential, &azcosmos.ClientOptions{
		EnableContentResponseOnWrite: true,
	})
}

