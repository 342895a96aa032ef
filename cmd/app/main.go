package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"chat-service/configs"
	"chat-service/internal/attachment"
	"chat-service/internal/kafka"
	"chat-service/internal/message"
	"chat-service/internal/migrate"
	"chat-service/internal/ratelimit"
	"chat-service/internal/reaction"
	"chat-service/internal/redisx"
	"chat-service/internal/room"
	"chat-service/internal/shared/db"
	"chat-service/internal/shared/httpx"
	"chat-service/internal/state"
	"chat-service/internal/storage/s3"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

func initOTEL(ctx context.Context) func(context.Context) error {
	endpoint := configs.GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel-collector:4318")
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(configs.GetEnv("OTEL_SERVICE_NAME", "chat-service")),
		attribute.String("deployment.environment", configs.GetEnv("ENV", "local")),
	))
	ratio := 1.0
	if s := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); s != "" {
		if f, e := strconv.ParseFloat(s, 64); e == nil && f >= 0 && f <= 1 {
			ratio = f
		}
	}
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func main() {
	_ = godotenv.Load()
	cfg := configs.LoadConfig()

	ctx := context.Background()
	shutdown := initOTEL(ctx)
	defer func() {
		c, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = shutdown(c)
	}()

	store := db.Open(cfg.DSN())
	rds := redisx.NewClient(cfg.RedisHost, cfg.RedisPort)

	kWriter, err := kafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		log.Fatalf("kafka writer: %v", err)
	}
	defer kWriter.Close()

	blobs, err := s3.New(s3.Config{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		Bucket:    cfg.S3Bucket,
	})
	if err != nil {
		log.Fatalf("s3 storage: %v", err)
	}
	if err := blobs.EnsureBucket(ctx); err != nil {
		log.Printf("s3 bucket check: %v", err)
	}

	if cfg.AutoMigrate {
		if err := migrate.AutoMigrateAll(store); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	roomRepo := room.NewRepository(store)
	roomSvc := room.NewService(roomRepo)
	if _, err := roomSvc.EnsureGeneral("system", room.RoleAdmin); err != nil {
		log.Fatalf("ensure general room: %v", err)
	}

	msgRepo := message.NewRepository(store)
	msgSvc := message.NewService(msgRepo, kWriter)

	reactRepo := reaction.NewRepository(store)
	reactSvc := reaction.NewService(reactRepo, msgSvc)

	attRepo := attachment.NewRepository(store)
	attSvc := attachment.NewService(attRepo, msgSvc, blobs)

	stateSvc := state.NewService(msgSvc, roomSvc)

	rh := room.NewHandler(roomSvc)
	mh := message.NewHandler(msgSvc)
	xh := reaction.NewHandler(reactSvc)
	ah := attachment.NewHandler(attSvc)
	sh := state.NewHandler(stateSvc)

	limiter := ratelimit.New(rds)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	protect := func(pattern string, h http.Handler) {
		mux.Handle(pattern, httpx.AuthMiddleware(h))
	}
	limited := func(pattern string, h http.Handler) {
		mux.Handle(pattern, httpx.AuthMiddleware(limiter.LimitHTTP(60, time.Minute, h)))
	}

	// Pull protocol: state fetch + heartbeat
	protect("GET /rooms/{room_id}/state", httpx.Wrap(sh.Get))
	protect("PATCH /rooms/{room_id}/heartbeat", httpx.Wrap(rh.Heartbeat))
	protect("POST /rooms/{room_id}/join", httpx.Wrap(rh.Join))
	protect("GET /rooms/{room_id}/members", httpx.Wrap(rh.Members))

	// Message lifecycle
	limited("POST /messages", httpx.Wrap(mh.Send))
	limited("PATCH /messages/{message_id}", httpx.Wrap(mh.Edit))
	limited("DELETE /messages/{message_id}", httpx.Wrap(mh.Delete))

	// Reactions + attachments
	limited("POST /messages/{message_id}/reactions", httpx.Wrap(xh.React))
	limited("POST /messages/upload", httpx.Wrap(ah.Upload))

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(mux, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		log.Printf("chat-service listening on %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
