package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"tripplanner/config"
	"tripplanner/database"
	"tripplanner/models"
	"tripplanner/services/planner"

	"github.com/hibiken/asynq"
)

const TypePlanTrip = "trip:plan"

// PlanTaskPayload is one queued planning job.
type PlanTaskPayload struct {
	RequestID string             `json:"request_id"`
	UserID    string             `json:"user_id"`
	Request   models.TripRequest `json:"request"`
}

// Dispatcher hands a planning job to whatever executes it.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload PlanTaskPayload) error
}

// Processor runs one planning job end to end: compute the plan, attach it to
// the user's trips, flip the request record to done.
type Processor struct {
	Planner  planner.Planner
	Requests *database.RequestStore
	Users    *database.UserStore
}

// Process executes a planning job. Failures are recorded on the request so
// pollers see a terminal state instead of pending-forever.
func (p *Processor) Process(ctx context.Context, payload PlanTaskPayload) error {
	plan, err := p.Planner.Plan(ctx, payload.Request)
	if err != nil {
		log.Printf("[PlanWorker] planning failed for %s: %v", payload.RequestID, err)
		p.Requests.MarkFailed(payload.RequestID, err.Error())
		return err
	}

	if _, err := p.Users.AddTrip(payload.UserID, payload.Request, plan); err != nil {
		log.Printf("[PlanWorker] could not attach trip for %s: %v", payload.RequestID, err)
		p.Requests.MarkFailed(payload.RequestID, err.Error())
		return err
	}

	p.Requests.MarkDone(payload.RequestID, plan)
	log.Printf("[PlanWorker] completed %s", payload.RequestID)
	return nil
}

// DirectDispatcher runs jobs in-process. Used by tests and redis-less
// development runs.
type DirectDispatcher struct {
	Processor *Processor
	// Sync forces in-line execution instead of a goroutine.
	Sync bool
}

func (d *DirectDispatcher) Dispatch(ctx context.Context, payload PlanTaskPayload) error {
	if d.Sync {
		return d.Processor.Process(ctx, payload)
	}
	go func() {
		// Detach from the request context: the job outlives the HTTP call.
		_ = d.Processor.Process(context.Background(), payload)
	}()
	return nil
}

// AsynqDispatcher enqueues jobs on the redis-backed queue consumed by
// InitPlanWorker.
type AsynqDispatcher struct {
	Client *asynq.Client
}

// NewAsynqDispatcher creates a dispatcher over the configured redis queue DB.
func NewAsynqDispatcher() *AsynqDispatcher {
	return &AsynqDispatcher{
		Client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

func (d *AsynqDispatcher) Dispatch(ctx context.Context, payload PlanTaskPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = d.Client.EnqueueContext(ctx, asynq.NewTask(TypePlanTrip, data))
	return err
}

// InitPlanWorker runs the async planning worker in background.
func InitPlanWorker(proc *Processor) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePlanTrip, handlePlanTask(proc))

	// Start async worker with retry logic
	go func() {
		log.Println("[PlanWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[PlanWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[PlanWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handlePlanTask(proc *Processor) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload PlanTaskPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			log.Printf("[PlanWorker] invalid payload: %v", err)
			return err
		}
		return proc.Process(ctx, payload)
	}
}
