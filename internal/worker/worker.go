package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/launchpad-ai/launchpad/internal/extract"
	"github.com/launchpad-ai/launchpad/internal/llm"
	"github.com/launchpad-ai/launchpad/internal/logx"
	"github.com/launchpad-ai/launchpad/internal/metrics"
	"github.com/launchpad-ai/launchpad/internal/queue"
	"github.com/launchpad-ai/launchpad/internal/store"
)

// ObjectStore es lo que el worker necesita del bucket: descargar el fichero.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Pool consume resume_jobs y ejecuta el análisis completo de cada currículum:
// descarga de S3, extracción de texto, análisis contra el objetivo y persistencia.
type Pool struct {
	AMQPURL  string
	Queue    string
	Exchange string

	St   store.Store
	Docs ObjectStore
	LLM  llm.LLMClient
}

// retry retries a function up to `attempts` times with backoff.
func retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		wait := time.Duration(500*(i+1)) * time.Millisecond
		time.Sleep(wait)
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// Start lanza n consumidores y bloquea hasta que todos terminan.
func (p *Pool) Start(n int) {
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		logx.Info("Worker", "worker %d started", i+1)
		go p.worker(i, &wg)
	}
	wg.Wait()
}

// worker abre su propia conexión AMQP y procesa mensajes hasta que el canal se cierra.
func (p *Pool) worker(id int, wg *sync.WaitGroup) {
	defer wg.Done()

	conn, err := amqp.Dial(p.AMQPURL)
	if err != nil {
		logx.Error("Worker", "worker %d: amqp dial: %v", id+1, err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logx.Error("Worker", "worker %d: amqp channel: %v", id+1, err)
		return
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.Queue, // queue name
		true,    // durable (survives broker restarts)
		false,   // auto-delete when unused
		false,   // exclusive
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		logx.Error("Worker", "worker %d: declare queue: %v", id+1, err)
		return
	}

	// el worker puede arrancar antes que el API server
	err = ch.ExchangeDeclare(
		p.Exchange, // exchange name
		"topic",    // kind
		true,       // durable
		false,      // auto-delete
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		logx.Error("Worker", "worker %d: declare exchange: %v", id+1, err)
		return
	}

	msgs, err := ch.Consume(
		p.Queue, // queue name
		"",      // consumer tag
		true,    // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		logx.Error("Worker", "worker %d: consume: %v", id+1, err)
		return
	}

	for msg := range msgs {
		var job queue.JobMessage
		if err := json.Unmarshal(msg.Body, &job); err != nil {
			// sin job_id no hay fila que marcar como failed
			logx.Warn("Worker", "mensaje ilegible, se descarta: %v", err)
			metrics.QueueMsgs.Inc(map[string]string{"direction": "consumed", "outcome": "error"})
			continue
		}
		metrics.QueueMsgs.Inc(map[string]string{"direction": "consumed", "outcome": "ok"})

		logx.Info("Worker", "worker %d processing job %s", id+1, job.JobID)
		p.handle(conn, job)
	}
}

// handle lleva el job por processing → completed|failed, publicando cada
// transición al exchange de updates.
func (p *Pool) handle(conn *amqp.Connection, job queue.JobMessage) {
	ctx := context.Background()

	jobID, err := uuid.Parse(job.JobID)
	if err != nil {
		logx.Warn("Worker", "job id inválido %q: %v", job.JobID, err)
		return
	}

	p.setStatus(ctx, conn, jobID, "processing", "analysis started")

	results, err := p.analyze(ctx, job)
	if err != nil {
		logx.Warn("Worker", "job %s failed: %v", job.JobID, err)
		p.setStatus(ctx, conn, jobID, "failed", "analysis failed")
		return
	}

	if _, err := retry(3, func() (any, error) {
		return nil, p.St.SaveResumeAnalysis(ctx, jobID, results)
	}); err != nil {
		logx.Warn("Worker", "saving results for %s: %v", job.JobID, err)
		p.setStatus(ctx, conn, jobID, "failed", "analysis failed")
		return
	}

	p.setStatus(ctx, conn, jobID, "completed", "analysis completed")
}

// setStatus actualiza la fila del job y, si hay conexión, publica el update.
// Ninguno de los dos fallos corta el pipeline.
func (p *Pool) setStatus(ctx context.Context, conn *amqp.Connection, jobID uuid.UUID, status, message string) {
	if err := p.St.UpdateResumeJobStatus(ctx, jobID, status); err != nil {
		logx.Warn("Worker", "updating job %s to %s: %v", jobID, status, err)
	}

	if conn == nil {
		return
	}
	update := map[string]any{
		"job_id":  jobID.String(),
		"status":  status,
		"message": message,
	}
	if err := queue.PublishUpdate(conn, p.Exchange, jobID.String(), update); err != nil {
		logx.Warn("Worker", "publishing update for %s: %v", jobID, err)
	}
}

// analyze descarga el fichero, extrae el texto según su MIME y pide al modelo
// el análisis currículum-contra-objetivo en JSON.
func (p *Pool) analyze(ctx context.Context, job queue.JobMessage) (json.RawMessage, error) {
	data, err := retry(3, func() ([]byte, error) {
		return p.Docs.Get(ctx, job.ObjectKey)
	})
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", job.ObjectKey, err)
	}

	text, err := extract.Text(job.Mime, data)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty resume text")
	}

	raw, err := retry(2, func() (string, error) {
		return p.LLM.Chat(ctx, llm.Request{
			System:      matchSystem,
			Prompt:      matchPrompt(job.Goal, text),
			MaxTokens:   800,
			Temperature: 0.2,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("match analysis: %w", err)
	}

	return parseAnalysis(raw)
}
