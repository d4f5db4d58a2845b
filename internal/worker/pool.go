package worker

import (
	"context"
	"encoding/json"
	"time"

	"barcontrol/internal/model"
	"barcontrol/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueAuditoria = "jobs:auditoria"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AuditoriaPayload is the job body persisted as a LogAcao row.
type AuditoriaPayload struct {
	Usuario  string    `json:"usuario"`
	Acao     string    `json:"acao"`
	Detalhe  *string   `json:"detalhe,omitempty"`
	IP       *string   `json:"ip,omitempty"`
	DataHora time.Time `json:"data_hora"`
}

type ctxKey int

const ctxKeyClientIP ctxKey = iota

// WithClientIP stashes the request's client IP so audit entries pick it up
// without every service signature carrying it.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKeyClientIP, ip)
}

func clientIP(ctx context.Context) *string {
	if ip, ok := ctx.Value(ctxKeyClientIP).(string); ok && ip != "" {
		return &ip
	}
	return nil
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher { return &Dispatcher{rdb: rdb} }

// EnqueueAuditoria pushes an audit entry job to Redis. Audit writes never
// block the request path; a queue failure is logged and swallowed.
func (d *Dispatcher) EnqueueAuditoria(ctx context.Context, payload AuditoriaPayload) {
	if d == nil || d.rdb == nil {
		return
	}
	if payload.IP == nil {
		payload.IP = clientIP(ctx)
	}
	if err := d.enqueue(ctx, QueueAuditoria, "auditoria", payload); err != nil {
		log.Error().Err(err).Str("acao", payload.Acao).Msg("failed to enqueue audit entry")
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the audit queue.
// Each goroutine blocks on BRPOP, so an idle pool costs no CPU.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, logRepo repository.LogRepository, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, logRepo, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, logRepo repository.LogRepository, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop: waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueAuditoria).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, logRepo, result[1])
		}
	}
}

func processJob(ctx context.Context, logRepo repository.LogRepository, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal job")
		return
	}
	switch job.Type {
	case "auditoria":
		var p AuditoriaPayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			log.Error().Err(err).Msg("failed to unmarshal audit payload")
			return
		}
		entry := &model.LogAcao{
			Usuario:  p.Usuario,
			Acao:     p.Acao,
			Detalhe:  p.Detalhe,
			IP:       p.IP,
			DataHora: p.DataHora,
		}
		if err := logRepo.Create(ctx, entry); err != nil {
			log.Error().Err(err).Str("acao", p.Acao).Msg("failed to persist audit entry")
		}
	default:
		log.Warn().Str("type", job.Type).Msg("unknown job type")
	}
}
