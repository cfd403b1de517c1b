package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	assessmenthandler "ethicsaudit/internal/assessment/handler"
	assessmentmetrics "ethicsaudit/internal/assessment/metrics"
	assessmentmodels "ethicsaudit/internal/assessment/models"
	assessmentservice "ethicsaudit/internal/assessment/service"
	assessmentstore "ethicsaudit/internal/assessment/store"
	jwttoken "ethicsaudit/internal/jwt_token"
	"ethicsaudit/internal/platform/config"
	"ethicsaudit/internal/platform/kafka"
	platformmetrics "ethicsaudit/internal/platform/metrics"
	"ethicsaudit/internal/platform/postgres"
	"ethicsaudit/internal/platform/redis"
	"ethicsaudit/internal/platform/tracing"
	ratelimitmw "ethicsaudit/internal/ratelimit/middleware"
	"ethicsaudit/internal/ratelimit/store/bucket"
	"ethicsaudit/internal/report/events"
	"ethicsaudit/internal/report/generator"
	reporthandler "ethicsaudit/internal/report/handler"
	reportmetrics "ethicsaudit/internal/report/metrics"
	"ethicsaudit/internal/report/ports"
	reportservice "ethicsaudit/internal/report/service"
	reportstore "ethicsaudit/internal/report/store"
	httptransport "ethicsaudit/internal/transport/http"
	"ethicsaudit/pkg/platform/circuit"
)

// app is the wired service. close releases resources in reverse order of
// acquisition.
type app struct {
	router  http.Handler
	saver   *assessmentservice.Saver
	closers []func(context.Context) error
}

func (a *app) onClose(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

func (a *app) close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}
	return errors.Join(errs...)
}

type storage struct {
	audits      assessmentservice.Store
	tx          assessmentservice.StoreTx
	auditReader ports.AuditReader
	reports     reportservice.Store
}

func buildApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			_ = a.close(context.Background())
		}
	}()

	shutdownTracing, err := tracing.Setup(cfg.Tracing, os.Stderr)
	if err != nil {
		return nil, err
	}
	a.onClose(shutdownTracing)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checks := map[string]httptransport.HealthCheck{}

	st, err := openStorage(ctx, cfg, log, a, checks)
	if err != nil {
		return nil, err
	}

	var locker assessmentservice.Locker = assessmentservice.NewShardedLocker()
	var buckets ratelimitmw.BucketStore = bucket.NewInMemoryBucketStore()
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if redisClient != nil {
		buckets = bucket.NewRedisBucketStore(redisClient.Client)
		a.onClose(func(context.Context) error { return redisClient.Close() })
		checks["redis"] = redisClient.Health
		locker = assessmentservice.NewRedisLocker(redisClient.Client,
			assessmentservice.WithLockTTL(cfg.Redis.LockTTL),
			assessmentservice.WithLockLogger(log),
		)
		log.InfoContext(ctx, "using redis audit lock")
	}

	auditMetrics := assessmentmetrics.New(reg)
	var assessments *assessmentservice.Service
	saver := assessmentservice.NewSaver(
		func(ctx context.Context, auditID uuid.UUID, fields assessmentmodels.AuditFields) error {
			return assessments.PersistFields(ctx, auditID, fields)
		},
		assessmentservice.WithDebounce(cfg.Assessment.SaveDebounce),
		assessmentservice.WithSaveTimeout(cfg.Assessment.SaveTimeout),
		assessmentservice.WithSaverLogger(log),
		assessmentservice.WithSaverMetrics(auditMetrics),
	)
	assessments, err = assessmentservice.New(st.audits, st.tx,
		assessmentservice.WithLocker(locker),
		assessmentservice.WithSaver(saver),
		assessmentservice.WithLogger(log),
		assessmentservice.WithMetrics(auditMetrics),
	)
	if err != nil {
		return nil, err
	}
	a.saver = saver

	reportOpts := []reportservice.Option{
		reportservice.WithLogger(log),
		reportservice.WithMetrics(reportmetrics.New(reg)),
	}
	kafkaClient, err := kafka.NewClient(cfg.Kafka)
	if err != nil {
		return nil, err
	}
	if kafkaClient != nil {
		a.onClose(func(context.Context) error {
			kafkaClient.Close()
			return nil
		})
		if err := kafka.EnsureTopic(ctx, kafkaClient, cfg.Kafka); err != nil {
			log.WarnContext(ctx, "could not ensure report topic", "topic", cfg.Kafka.Topic, "error", err)
		}
		reportOpts = append(reportOpts, reportservice.WithPublisher(events.NewKafkaPublisher(kafkaClient, cfg.Kafka.Topic)))
	}
	if cfg.LLM.APIKey == "" {
		log.WarnContext(ctx, "no LLM API key configured, report generation will fail")
	}
	llm := generator.NewGuarded(generator.New(cfg.LLM), circuit.New("llm",
		circuit.WithFailureThreshold(cfg.LLM.BreakerFailures),
		circuit.WithCooldown(cfg.LLM.BreakerCooldown),
	), log)
	reports, err := reportservice.New(st.reports, st.auditReader, llm, reportOpts...)
	if err != nil {
		return nil, err
	}

	limiter := ratelimitmw.New(buckets, log, ratelimitmw.WithDisabled(cfg.RateLimit.Disabled))
	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer)
	a.router = httptransport.NewRouter(httptransport.RouterConfig{
		Logger:    log,
		Validator: jwttoken.NewJWTServiceAdapter(jwtService),
		Observer:  platformmetrics.New(reg),
		Gatherer:  reg,
		Checks:    checks,
		API: []httptransport.Registrar{
			assessmenthandler.New(assessments, log),
			reporthandler.New(reports, log, reporthandler.WithGenerateMiddleware(
				limiter.PerUser("report", cfg.RateLimit.ReportLimit, cfg.RateLimit.ReportWindow),
			)),
		},
	})
	return a, nil
}

// openStorage selects PostgreSQL when a database URL is configured and the
// in-memory stores otherwise.
func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger, a *app, checks map[string]httptransport.HealthCheck) (*storage, error) {
	if cfg.Database.URL == "" {
		if cfg.IsProduction() {
			return nil, errors.New("database.url is required in production")
		}
		log.WarnContext(ctx, "no database configured, using in-memory stores")
		mem := assessmentstore.NewInMemory()
		return &storage{
			audits:      mem,
			tx:          mem,
			auditReader: mem,
			reports:     reportstore.NewInMemory(),
		}, nil
	}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.onClose(func(context.Context) error { return db.Close() })
	checks["postgres"] = db.PingContext

	audits := assessmentstore.NewPostgres(db)
	return &storage{
		audits:      audits,
		tx:          newAssessmentPostgresTx(db, audits, cfg.Database.TxTimeout),
		auditReader: audits,
		reports:     reportstore.NewPostgres(db),
	}, nil
}
