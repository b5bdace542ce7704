// Package events defines the task change feed shared by the write path and
// the realtime fanout.
package events

import (
	"context"
	"encoding/json"
	"time"

	"flowtask/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// TasksChannel is the redis pub/sub channel carrying task row changes.
const TasksChannel = "flowtask:tasks:changes"

const (
	TypeInsert = "INSERT"
	TypeUpdate = "UPDATE"
	TypeDelete = "DELETE"
)

// TaskChange is one row change. For deletes only Record.ID is populated.
type TaskChange struct {
	Type   string      `json:"type"`
	Record models.Task `json:"record"`
}

// Publisher pushes task changes to whatever is listening. Publishing is best
// effort: a failed publish must never fail the write that caused it.
type Publisher interface {
	PublishTaskChange(change TaskChange)
}

// RedisPublisher publishes changes to the tasks channel.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) PublishTaskChange(change TaskChange) {
	data, err := json.Marshal(change)
	if err != nil {
		logrus.WithError(err).WithField("component", "events").Error("failed to marshal task change")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := p.client.Publish(ctx, TasksChannel, data).Err(); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"component": "events",
			"type":      change.Type,
			"task_id":   change.Record.ID.String(),
		}).Error("failed to publish task change")
	}
}

// NopPublisher discards changes. Used in tests and when redis is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishTaskChange(TaskChange) {}
