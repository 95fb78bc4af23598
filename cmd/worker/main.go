package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/luvvtapp/coach/internal/analytics"
	"github.com/luvvtapp/coach/internal/config"
	"github.com/luvvtapp/coach/internal/db"
	"github.com/luvvtapp/coach/internal/store/rabbitmq"
)

func workerConcurrency() int {
	v := os.Getenv("WORKER_CONCURRENCY")
	if v == "" {
		return 2
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 2
	}
	if n > 50 {
		return 50
	}
	return n
}

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DBDSN)
	if err := db.AutoMigrate(gdb); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}
	recorder := analytics.NewRecorder(gdb)

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("rabbit dial: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbit channel: %v", err)
	}
	defer ch.Close()

	if err := rabbitmq.DeclareTopology(ch, cfg.RabbitQueue); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	concurrency := workerConcurrency()

	if err := ch.Qos(concurrency, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("worker started, queue=%s concurrency=%d", cfg.RabbitQueue, concurrency)

	events := make(chan amqp.Delivery, concurrency*2)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range events {
				var m rabbitmq.EventMessage
				if err := json.Unmarshal(d.Body, &m); err != nil || m.Kind == "" {
					log.Printf("worker=%d bad message: %v", workerID, err)
					_ = d.Nack(false, false)
					continue
				}

				if err := handleEvent(ctx, recorder, m); err != nil {
					log.Printf("worker=%d event %s failed entity=%s err=%v", workerID, m.Kind, m.EntityID, err)
					// no requeue: a poison event dead-letters to the DLQ
					// instead of spinning the consumer
					_ = d.Nack(false, false)
					continue
				}

				if err := d.Ack(false); err != nil {
					log.Printf("worker=%d ack failed kind=%s err=%v", workerID, m.Kind, err)
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("worker shutting down")
			close(events)
			wg.Wait()
			return

		case d, ok := <-msgs:
			if !ok {
				log.Printf("delivery channel closed")
				time.Sleep(1 * time.Second)
				continue
			}
			events <- d
		}
	}
}

func handleEvent(ctx context.Context, recorder *analytics.Recorder, m rabbitmq.EventMessage) error {
	at := m.At
	if at.IsZero() {
		at = time.Now()
	}
	return recorder.Record(ctx, &analytics.Event{
		Kind:      m.Kind,
		UserID:    m.UserID,
		EntityID:  m.EntityID,
		Tokens:    m.Tokens,
		CreatedAt: at,
	})
}
