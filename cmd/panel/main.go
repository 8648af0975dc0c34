package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"

	"github.com/hypeit-za/panel/pkg/activity"
	"github.com/hypeit-za/panel/pkg/authn"
	"github.com/hypeit-za/panel/pkg/config"
	"github.com/hypeit-za/panel/pkg/metrics"
	"github.com/hypeit-za/panel/pkg/notice"
	"github.com/hypeit-za/panel/pkg/ratelimit"
	"github.com/hypeit-za/panel/pkg/secrets"
	"github.com/hypeit-za/panel/pkg/twofactor"
	"github.com/hypeit-za/panel/pkg/twofactor/twofactorapi"
	"github.com/hypeit-za/panel/pkg/user"
)

type PanelConfig struct {
	BaseUrl         string `env:"PANEL_BASE_URL" env-default:"http://localhost:4000"`
	PersistenceType string `env:"PANEL_PERSISTENCE_TYPE" env-default:"postgres"`
	EmailEnabled    bool   `env:"PANEL_EMAIL_ENABLED" env-default:"false"`
	TwoFaEnabled    bool   `env:"PANEL_TWOFA_ENABLED" env-default:"true"`
}

type Config struct {
	PanelDbConfig   config.DatabaseConfig
	AppConfig       app.AppConfig
	JwtConfig       config.JWTConfig
	PanelConfig     PanelConfig
	SecretsConfig   config.SecretsConfig
	TwoFactorConfig config.TwoFactorConfig
}

func main() {

	cfg := Config{}
	cleanenv.ReadEnv(&cfg)

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	metrics.MustRegister("panel")
	server.R.Use(metrics.Middleware)
	server.R.Handle("/metrics", promhttp.Handler())

	rateLimitMw := ratelimit.NewMiddleware(config.NewRateLimitConfigFromEnv())
	server.R.Use(rateLimitMw.Handler)

	var pool *pgxpool.Pool
	storeConfig := twofactor.RepositoryConfig{}
	if cfg.PanelConfig.PersistenceType == "postgres" {
		dbConfig := cfg.PanelDbConfig.ToDbConfig()
		var err error
		pool, err = dbutils.NewDbPool(context.Background(), dbConfig)
		if err != nil {
			slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
			os.Exit(-1)
		}
		storeConfig.Pool = pool
	}

	stores, err := twofactor.NewStores(cfg.PanelConfig.PersistenceType, storeConfig)
	if err != nil {
		slog.Error("Failed creating stores", "persistence", cfg.PanelConfig.PersistenceType, "error", err)
		os.Exit(-1)
	}

	var twoFaService twofactor.TwoFactorService
	if cfg.PanelConfig.TwoFaEnabled {
		if err := cfg.SecretsConfig.Validate(); err != nil {
			slog.Error("Invalid secrets config", "error", err)
			os.Exit(-1)
		}
		cipher, err := secrets.NewEncryptionService(cfg.SecretsConfig.EncryptionKey)
		if err != nil {
			slog.Error("Failed creating encryption service", "error", err)
			os.Exit(-1)
		}

		verifier := twofactor.NewVerifier(cfg.TwoFactorConfig)
		twoFaService = twofactor.NewTwoFaService(stores.Users, stores.Codes, stores.TxManager, cipher, verifier)
	} else {
		slog.Warn("Two-factor authentication is administratively disabled")
		twoFaService = twofactor.NewNoOpTwoFactorService()
	}
	userService := user.NewUserService(stores.Users)

	var eventRepo activity.EventRepository
	if pool != nil {
		eventRepo = activity.NewPostgresEventRepository(pool)
	} else {
		eventRepo = activity.NewInMemEventRepository()
	}
	activityService := activity.NewActivityService(eventRepo)

	handleOpts := []twofactorapi.Option{
		twofactorapi.WithActivity(activityService),
	}

	if cfg.PanelConfig.EmailEnabled {
		smtpConfig, err := notice.LoadSMTPConfigFromEnv()
		if err != nil {
			slog.Error("Failed loading SMTP config", "error", err)
			os.Exit(-1)
		}
		notificationManager, err := notice.NewNotificationManager(cfg.PanelConfig.BaseUrl, smtpConfig)
		if err != nil {
			slog.Error("Failed creating notification manager", "error", err)
			os.Exit(-1)
		}
		handleOpts = append(handleOpts, twofactorapi.WithNotices(notificationManager))
	}

	twoFaHandle := twofactorapi.NewHandle(twoFaService, userService, handleOpts...)

	if err := cfg.JwtConfig.Validate(); err != nil {
		slog.Error("Invalid JWT config", "error", err)
		os.Exit(-1)
	}
	tokenAuth := jwtauth.New("HS256", []byte(cfg.JwtConfig.Secret), nil)

	server.R.Group(func(r chi.Router) {
		r.Use(authn.Verifier(tokenAuth))
		r.Use(jwtauth.Authenticator(tokenAuth))
		r.Use(authn.AuthUserMiddleware)

		r.Mount("/api/client/account/two-factor", twofactorapi.Handler(twoFaHandle, twofactorapi.RouterConfig{
			TwoFactorLimiter: rateLimitMw.TwoFactorHandler,
			RecoveryLimiter:  rateLimitMw.RecoveryHandler,
		}))
	})

	server.Run()

}
