// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"career-compass/internal/catalog"
	"career-compass/internal/common/aws"
	"career-compass/internal/common/camunda"
	"career-compass/internal/common/config"
	"career-compass/internal/common/database"
	"career-compass/internal/common/logger"
	"career-compass/internal/common/observability"
	"career-compass/internal/common/validation"
	"career-compass/internal/recommendation"
	"career-compass/internal/repository"
	"career-compass/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	sa "career-compass/internal/workers/assessment/save-assessment"
	ic "career-compass/internal/workers/careers/index-careers"
	sc "career-compass/internal/workers/careers/search-careers"
	nr "career-compass/internal/workers/communication/notify-report"
	gr "career-compass/internal/workers/reports/generate-report"
	gtr "career-compass/internal/workers/reports/get-report"
	lr "career-compass/internal/workers/reports/list-reports"
	rr "career-compass/internal/workers/reports/review-report"
)

type dependencies struct {
	cfg       *config.Config
	log       logger.Logger
	obs       *observability.Observability
	zeebe     *camunda.Client
	pg        *database.PostgresClient
	redis     *database.RedisClient
	es        *database.ElasticsearchClient
	validator *validation.SchemaValidator
	engine    *recommendation.Engine
	catalog   *catalog.Cache
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})
	log.Info("starting worker manager", map[string]interface{}{"environment": cfg.App.Environment})

	obs := observability.New(cfg.App.Name, observability.WithTracingEndpoint(cfg.Observability.TracingEndpoint))
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := connect(ctx, cfg, log, obs)
	if err != nil {
		zapLog.Fatal("startup failed", zap.Error(err))
	}
	defer deps.close()

	workers := camunda.NewWorkerSet(deps.zeebe.GetClient(), log)
	if err := registerWorkers(ctx, deps, workers); err != nil {
		zapLog.Fatal("worker registration failed", zap.Error(err))
	}
	log.Info("workers registered", map[string]interface{}{"running": workers.Running()})

	server := newHealthServer(cfg.Observability.MetricsAddress, deps)
	go func() {
		log.Info("health/metrics server listening", map[string]interface{}{"address": server.Addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("health/metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, stopping workers", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	workers.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("health/metrics server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	log.Info("worker manager stopped gracefully", nil)
}

// connect opens every backing service, retrying with backoff while they come up.
func connect(ctx context.Context, cfg *config.Config, log logger.Logger, obs *observability.Observability) (*dependencies, error) {
	d := &dependencies{cfg: cfg, log: log, obs: obs}
	retry := &camunda.RetryConfig{MaxRetries: 15, BaseDelay: 2 * time.Second, MaxDelay: 30 * time.Second}

	var err error
	d.zeebe, err = camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		RetryConfig:            camunda.DefaultRetryConfig,
	}, log)
	if err != nil {
		return nil, err
	}
	log.Info("zeebe client connected", map[string]interface{}{"gateway": cfg.Camunda.BrokerAddress})

	err = camunda.Retry(ctx, retry, log, "PostgreSQL connection", func(ctx context.Context) error {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		if err := pg.Ping(ctx); err != nil {
			pg.Close()
			return err
		}
		d.pg = pg
		return nil
	})
	if err != nil {
		d.close()
		return nil, err
	}
	log.Info("postgres connected", nil)

	d.redis = database.NewRedis(cfg.Database.Redis)
	if err := camunda.Retry(ctx, retry, log, "Redis connection", d.redis.Ping); err != nil {
		d.close()
		return nil, err
	}
	log.Info("redis connected", nil)

	d.es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		d.close()
		return nil, err
	}
	if err := camunda.Retry(ctx, retry, log, "Elasticsearch connection", d.es.Ping); err != nil {
		d.close()
		return nil, err
	}
	log.Info("elasticsearch connected", map[string]interface{}{"index": d.es.Index})

	reg, err := loadRegistry(cfg.RegistryPath)
	if err != nil {
		d.close()
		return nil, err
	}
	if d.validator, err = validation.NewSchemaValidator(reg); err != nil {
		d.close()
		return nil, err
	}

	d.engine = recommendation.New(newJitter(cfg.Recommendation), recommendation.WithTopN(cfg.Recommendation.TopN))
	d.catalog = catalog.NewCache(d.redis.Client, repository.New(d.pg.DB).Careers, cfg.Recommendation.CacheTTL(), log)
	return d, nil
}

func (d *dependencies) close() {
	if d.redis != nil {
		d.redis.Close()
	}
	if d.pg != nil {
		d.pg.Close()
	}
	if d.zeebe != nil {
		d.zeebe.Close()
	}
}

func loadRegistry(path string) (*registry.ActivityRegistry, error) {
	if path == "" {
		return registry.Default()
	}
	return registry.LoadRegistry(path)
}

// newJitter seeds from the clock unless a fixed seed is configured.
func newJitter(cfg config.RecommendationConfig) recommendation.Jitter {
	if !cfg.JitterEnabled {
		return recommendation.ZeroJitter{}
	}
	seed := cfg.JitterSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return recommendation.NewRandomJitter(seed)
}

func workerTimeout(wcfg config.WorkerConfig, fallback time.Duration) time.Duration {
	if wcfg.Timeout > 0 {
		return config.GetDuration(wcfg.Timeout)
	}
	return fallback
}

func registerWorkers(ctx context.Context, d *dependencies, ws *camunda.WorkerSet) error {
	cfg, log, db := d.cfg, d.log, d.pg.DB
	start := func(taskType string, handle worker.JobHandler) {
		ws.Start(taskType, config.GetWorkerConfig(cfg, taskType), camunda.Instrument(d.obs, taskType, handle))
	}

	// --- Assessments ---
	if wcfg := config.GetWorkerConfig(cfg, sa.TaskType); wcfg.Enabled {
		h := sa.NewHandler(&sa.Config{Timeout: workerTimeout(wcfg, sa.LoadConfig().Timeout)}, db, d.validator, log)
		start(sa.TaskType, h.Handle)
	}

	// --- Reports ---
	if wcfg := config.GetWorkerConfig(cfg, gr.TaskType); wcfg.Enabled {
		h := gr.NewHandler(&gr.Config{Timeout: workerTimeout(wcfg, gr.LoadConfig().Timeout)}, db, d.catalog, d.engine, d.validator, d.obs, log)
		start(gr.TaskType, h.Handle)
	}
	if wcfg := config.GetWorkerConfig(cfg, gtr.TaskType); wcfg.Enabled {
		h := gtr.NewHandler(&gtr.Config{Timeout: workerTimeout(wcfg, gtr.LoadConfig().Timeout)}, db, d.validator, log)
		start(gtr.TaskType, h.Handle)
	}
	if wcfg := config.GetWorkerConfig(cfg, lr.TaskType); wcfg.Enabled {
		h := lr.NewHandler(&lr.Config{Timeout: workerTimeout(wcfg, lr.LoadConfig().Timeout)}, db, d.validator, log)
		start(lr.TaskType, h.Handle)
	}
	if wcfg := config.GetWorkerConfig(cfg, rr.TaskType); wcfg.Enabled {
		h := rr.NewHandler(&rr.Config{Timeout: workerTimeout(wcfg, rr.LoadConfig().Timeout)}, db, d.validator, log)
		start(rr.TaskType, h.Handle)
	}

	// --- Careers ---
	if wcfg := config.GetWorkerConfig(cfg, sc.TaskType); wcfg.Enabled {
		scCfg := sc.LoadConfig()
		scCfg.Timeout = workerTimeout(wcfg, scCfg.Timeout)
		h := sc.NewHandler(scCfg, d.es, d.validator, log)
		start(sc.TaskType, h.Handle)
	}
	if wcfg := config.GetWorkerConfig(cfg, ic.TaskType); wcfg.Enabled {
		icCfg := ic.LoadConfig()
		icCfg.Timeout = workerTimeout(wcfg, icCfg.Timeout)
		h := ic.NewHandler(icCfg, d.catalog, d.es, log)
		start(ic.TaskType, h.Handle)
	}

	// --- Communication ---
	if wcfg := config.GetWorkerConfig(cfg, nr.TaskType); wcfg.Enabled {
		n := cfg.Notifications
		var (
			mailer *aws.Mailer
			texter *aws.Texter
		)
		if n.Email.Enabled || n.SMS.Enabled {
			sesClient, snsClient, err := aws.NewClients(ctx, n.AWS.Region)
			if err != nil {
				return err
			}
			mailer = aws.NewMailer(sesClient, n.Email.FromEmail)
			texter = aws.NewTexter(snsClient)
		}
		h := nr.NewHandler(notifyConfig(n, wcfg), db, mailer, texter, d.validator, log)
		start(nr.TaskType, h.Handle)
	}

	return nil
}

func notifyConfig(n config.NotificationConfig, wcfg config.WorkerConfig) *nr.Config {
	return &nr.Config{
		EmailEnabled:   n.Email.Enabled,
		SMSEnabled:     n.SMS.Enabled,
		FailJobOnError: n.FailJobOnError,
		Timeout:        workerTimeout(wcfg, nr.LoadConfig().Timeout),
	}
}

func newHealthServer(addr string, d *dependencies) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]func(context.Context) error{
			"zeebe":         d.zeebe.HealthCheck,
			"postgres":      d.pg.Ping,
			"redis":         d.redis.Ping,
			"elasticsearch": d.es.Ping,
		}
		body := map[string]string{"status": "ready", "time": time.Now().Format(time.RFC3339)}
		code := http.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				body[name] = err.Error()
				body["status"] = "not ready"
				code = http.StatusServiceUnavailable
			}
		}
		writeStatus(w, code, body)
	})
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func writeStatus(w http.ResponseWriter, code int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
