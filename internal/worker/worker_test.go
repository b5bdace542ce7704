package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"flowtask/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofrs/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func setupWorkerRedis(t *testing.T) *redis.Client {
	t.Helper()
	logrus.SetLevel(logrus.ErrorLevel)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestEnqueueAndQueueSize(t *testing.T) {
	client := setupWorkerRedis(t)
	queue := NewJobQueue(client)

	if err := queue.Enqueue(QueueDefault, JobTypeCompletedCleanup, nil); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	size, err := queue.QueueSize(QueueDefault)
	if err != nil {
		t.Fatalf("QueueSize failed: %v", err)
	}
	if size != 1 {
		t.Errorf("Expected queue size 1, got %d", size)
	}
}

func TestEnqueueEnrichmentPayload(t *testing.T) {
	client := setupWorkerRedis(t)
	queue := NewJobQueue(client)

	task := models.Task{ID: uuid.Must(uuid.NewV4()), Title: "Buy milk"}
	if err := queue.EnqueueEnrichment(task); err != nil {
		t.Fatalf("EnqueueEnrichment failed: %v", err)
	}

	data, err := client.LPop(context.Background(), QueueEnrichment).Result()
	if err != nil {
		t.Fatalf("Failed to pop job: %v", err)
	}

	var job Job
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		t.Fatalf("Failed to unmarshal job: %v", err)
	}
	if job.Type != JobTypeEnrichmentRequest {
		t.Errorf("Expected enrichment job type, got %s", job.Type)
	}
	if job.Payload["taskId"] != task.ID.String() {
		t.Errorf("Expected taskId in payload, got %v", job.Payload)
	}
	if job.Payload["taskTitle"] != "Buy milk" {
		t.Errorf("Expected taskTitle in payload, got %v", job.Payload)
	}
	if job.MaxTries != 3 {
		t.Errorf("Expected 3 max tries, got %d", job.MaxTries)
	}
}

func TestWorkerExecutesJob(t *testing.T) {
	client := setupWorkerRedis(t)
	queue := NewJobQueue(client)

	done := make(chan *Job, 1)
	w := NewWorker(WorkerConfig{
		RedisClient: client,
		PollTimeout: 100 * time.Millisecond,
		Queues:      []string{QueueDefault},
	})
	w.RegisterHandler(JobTypeCompletedCleanup, func(ctx context.Context, job *Job) error {
		done <- job
		return nil
	})

	w.Start(1)
	defer w.Stop()

	if err := queue.EnqueueCleanup(); err != nil {
		t.Fatalf("EnqueueCleanup failed: %v", err)
	}

	select {
	case job := <-done:
		if job.Type != JobTypeCompletedCleanup {
			t.Errorf("Expected cleanup job, got %s", job.Type)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Handler was not invoked")
	}
}

func TestWorkerRetriesFailedJob(t *testing.T) {
	client := setupWorkerRedis(t)
	queue := NewJobQueue(client)

	attempted := make(chan struct{}, 1)
	// The worker only drains the default queue, so the retry stays put
	// where the test can inspect it.
	w := NewWorker(WorkerConfig{
		RedisClient: client,
		PollTimeout: 100 * time.Millisecond,
		Queues:      []string{QueueDefault},
	})
	w.RegisterHandler(JobTypeCompletedCleanup, func(ctx context.Context, job *Job) error {
		attempted <- struct{}{}
		return errors.New("transient failure")
	})

	w.Start(1)
	defer w.Stop()

	if err := queue.EnqueueCleanup(); err != nil {
		t.Fatalf("EnqueueCleanup failed: %v", err)
	}

	select {
	case <-attempted:
	case <-time.After(3 * time.Second):
		t.Fatal("Handler was not invoked")
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		size, err := client.LLen(context.Background(), queueRetry).Result()
		if err != nil {
			t.Fatalf("LLen failed: %v", err)
		}
		if size == 1 {
			data, _ := client.LIndex(context.Background(), queueRetry, 0).Result()
			var job Job
			if err := json.Unmarshal([]byte(data), &job); err != nil {
				t.Fatalf("Failed to unmarshal retried job: %v", err)
			}
			if job.Attempts != 1 {
				t.Errorf("Expected 1 attempt recorded, got %d", job.Attempts)
			}
			if !job.ProcessAt.After(time.Now()) {
				t.Errorf("Expected a future ProcessAt, got %v", job.ProcessAt)
			}
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("Job never reached the retry queue")
}

func TestWorkerDeadQueueAfterMaxTries(t *testing.T) {
	client := setupWorkerRedis(t)

	w := NewWorker(WorkerConfig{
		RedisClient: client,
		PollTimeout: 100 * time.Millisecond,
		Queues:      []string{QueueDefault},
	})
	w.RegisterHandler(JobTypeCompletedCleanup, func(ctx context.Context, job *Job) error {
		return errors.New("permanent failure")
	})

	// Seed a job already on its last attempt.
	job := &Job{
		ID:        uuid.Must(uuid.NewV4()).String(),
		Type:      JobTypeCompletedCleanup,
		Attempts:  2,
		MaxTries:  3,
		CreatedAt: time.Now(),
		ProcessAt: time.Now(),
	}
	data, _ := json.Marshal(job)
	if err := client.RPush(context.Background(), QueueDefault, data).Err(); err != nil {
		t.Fatalf("Failed to seed job: %v", err)
	}

	w.Start(1)
	defer w.Stop()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		size, err := client.LLen(context.Background(), queueDead).Result()
		if err != nil {
			t.Fatalf("LLen failed: %v", err)
		}
		if size == 1 {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("Job never reached the dead queue")
}

func TestParseClockTime(t *testing.T) {
	hour, minute, err := parseClockTime("04:30")
	if err != nil {
		t.Fatalf("parseClockTime failed: %v", err)
	}
	if hour != 4 || minute != 30 {
		t.Errorf("Expected 4:30, got %d:%d", hour, minute)
	}

	for _, bad := range []string{"", "25:00", "12:61", "noon", "1:2:3"} {
		if _, _, err := parseClockTime(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}
