package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luvvtapp/coach/internal/config"
	"github.com/luvvtapp/coach/internal/db"
	"github.com/luvvtapp/coach/internal/httpapi"
	"github.com/luvvtapp/coach/internal/store/rabbitmq"
	"github.com/luvvtapp/coach/internal/store/redisstore"
)

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DBDSN)
	if err := db.AutoMigrate(gdb); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	rds := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rds.Close()

	// Analytics delivery is best-effort: a broker outage never blocks chat.
	var events *rabbitmq.Publisher
	if cfg.AnalyticsEnabled {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			log.Printf("rabbit connect failed, analytics disabled: %v", err)
		} else {
			events = p
			defer events.Close()
		}
	}

	r := httpapi.NewRouter(gdb, cfg, rds, events)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Printf("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
