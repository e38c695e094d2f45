package di

import (
	"fmt"

	"YieldAdvisor/internal/domain/models"
	"YieldAdvisor/internal/domain/repository"
	"YieldAdvisor/internal/domain/service"
	"YieldAdvisor/internal/handler/api"
	internalrepo "YieldAdvisor/internal/repository"
	"YieldAdvisor/internal/service/cache"
	"YieldAdvisor/internal/service/ratelimit"
	"YieldAdvisor/internal/services/defillama"
	"YieldAdvisor/internal/services/llm"
	"YieldAdvisor/internal/services/oracle"
	"YieldAdvisor/internal/usecase"
	"YieldAdvisor/pkg/config"
	xhttp "YieldAdvisor/pkg/http"
	"YieldAdvisor/pkg/http/middleware"
	pkgkafka "YieldAdvisor/pkg/kafka"
	"YieldAdvisor/pkg/logger"
	"YieldAdvisor/pkg/metrics"
	"YieldAdvisor/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

const serviceName = "yield-advisor"

// ProvideKafkaProducer creates a Kafka producer, or nil when the event stream is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Events.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithCompression(cfg.Events.Compression),
		pkgkafka.WithRequiredAcks(cfg.Events.RequiredAcks),
		pkgkafka.WithTimeouts(cfg.Events.WriteTimeout, cfg.Events.WriteTimeout),
		pkgkafka.WithBatchTimeout(cfg.Events.BatchTimeout),
		pkgkafka.WithAsync(cfg.Events.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideLogger builds the app logger and, when enabled, attaches the error
// digest collector to the event producer.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Output:    cfg.Logging.Output,
		Component: serviceName,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if cfg.Logging.Collector.Enabled && producer != nil {
		l.AddCollector(&logger.CollectionConfig{
			Service:        serviceName,
			TimeInterval:   cfg.Logging.Collector.Interval,
			CountThreshold: cfg.Logging.Collector.Threshold,
			Topic:          cfg.Logging.Collector.Topic,
			Publisher:      producer,
		})
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideHTTPMetrics creates the request metrics used by the HTTP middleware.
func ProvideHTTPMetrics() *middleware.HTTPMetrics {
	return middleware.NewHTTPMetrics(prometheus.DefaultRegisterer)
}

// ProvideEventPublisher returns the Kafka publisher, or a no-op without a producer.
func ProvideEventPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.EventPublisher {
	if producer == nil {
		return internalrepo.NoopPublisher{}
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Events.Topic)
}

// ProvideOracleCache returns the configured quote cache, or nil for "none".
func ProvideOracleCache(cfg *config.Config) (cache.BytesCache, error) {
	switch cfg.Oracle.Cache.Backend {
	case "memory":
		c, err := cache.NewMemoryCache(cache.MemoryConfig{})
		if err != nil {
			return nil, fmt.Errorf("oracle memory cache: %w", err)
		}
		return c, nil
	case "redis":
		r := cfg.Oracle.Cache.Redis
		return cache.NewRedisCache(cache.RedisConfig{
			Addr:     r.Addr,
			Password: r.Password,
			DB:       r.DB,
			Prefix:   r.Prefix,
		}), nil
	default:
		return nil, nil
	}
}

// ProvidePriceOracle builds the Pyth client, behind the cache when one is configured.
func ProvidePriceOracle(cfg *config.Config, c cache.BytesCache, log *logger.Logger) service.PriceOracle {
	pyth := oracle.NewPythClient(cfg.Oracle.BaseURL, cfg.Oracle.Timeout)
	if c == nil {
		return pyth
	}
	return oracle.NewCachedOracle(pyth, c, cfg.Oracle.Cache.TTL, log.With(logger.String("cache", cfg.Oracle.Cache.Backend)))
}

// ProvideStaticCatalog serves the configured table, or the built-in one.
func ProvideStaticCatalog(cfg *config.Config) *internalrepo.StaticCatalog {
	records := make([]models.YieldRecord, 0, len(cfg.Yields.Table))
	for _, y := range cfg.Yields.Table {
		records = append(records, models.YieldRecord{Protocol: y.Protocol, Chain: y.Chain, APY: y.APY, TVL: y.TVL})
	}
	return internalrepo.NewStaticCatalog(records)
}

// ProvideYieldSource builds the yield source with the optional DefiLlama catalog.
func ProvideYieldSource(
	cfg *config.Config,
	static *internalrepo.StaticCatalog,
	priceOracle service.PriceOracle,
	m repository.Metrics,
	log *logger.Logger,
) *usecase.YieldSource {
	var live repository.YieldCatalog
	if dl := cfg.Yields.DefiLlama; dl.Enabled {
		live = defillama.NewClient(defillama.Config{
			URL:     dl.URL,
			MinTVL:  dl.MinTVL,
			Limit:   dl.Limit,
			Symbols: dl.Symbols,
			Timeout: dl.Timeout,
		})
	}
	return usecase.NewYieldSource(live, static, priceOracle, cfg.Oracle.FeedID, m, log)
}

// ProvideTextGenerator selects the LLM backend.
func ProvideTextGenerator(cfg *config.Config) (service.TextGenerator, error) {
	gen, err := llm.New(llm.Config{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("text generator: %w", err)
	}
	return gen, nil
}

// ProvideRateLimiter returns the per-IP limiter, or nil when rps <= 0.
func ProvideRateLimiter(cfg *config.Config) middleware.Allower {
	if cfg.Server.RateLimit.RPS <= 0 {
		return nil
	}
	return ratelimit.New(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst)
}

// ProvideHTTPHandler registers the advisor routes.
func ProvideHTTPHandler(log *logger.Logger, advisor *usecase.Advisor, limiter middleware.Allower) xhttp.Handler {
	return api.NewAdvisorEchoHandler(log, advisor, limiter)
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, handler xhttp.Handler, log *logger.Logger, hm *middleware.HTTPMetrics) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowRequest(cfg.Server.SlowRequest),
		xhttp.WithCORSOrigins(cfg.Server.CORSOrigins),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(cfg.Metrics.Path, prometheus.DefaultGatherer, hm))
	}
	return xhttp.NewServer(handler, log, opts...)
}

// ProvideApp creates the application. Shutdown flushes the log collector
// before the publisher closes the shared producer.
func ProvideApp(
	cfg *config.Config,
	srv *xhttp.Server,
	log *logger.Logger,
	publisher repository.EventPublisher,
	oracleCache cache.BytesCache,
) *server.App {
	closers := []server.NamedCloser{
		{Name: "log-collector", Closer: server.CloserFunc(func() error {
			log.RemoveCollector()
			return nil
		})},
		{Name: "event-publisher", Closer: publisher},
	}
	if oracleCache != nil {
		closers = append(closers, server.NamedCloser{Name: "oracle-cache", Closer: oracleCache})
	}
	return server.New(srv, log, cfg.Server.ShutdownTimeout, closers...)
}
