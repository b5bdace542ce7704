package client

import (
	"context"
	"sort"
	"sync"

	"flowtask/internal/events"
	"flowtask/internal/models"

	"github.com/gofrs/uuid"
)

// MutationState tracks one optimistic write.
type MutationState string

const (
	MutationPending   MutationState = "pending"
	MutationConfirmed MutationState = "confirmed"
	MutationFailed    MutationState = "failed"
)

// TempIDPrefix marks locally-created rows awaiting their server identity.
const TempIDPrefix = "tmp-"

// Store holds the client's view of the task set. Mutations apply locally
// first and roll back if the server rejects them; feed events are applied
// directly as authoritative.
type Store struct {
	client *Client

	mu        sync.RWMutex
	tasks     map[string]models.Task
	mutations map[string]MutationState

	// Active selection, reused when reloading.
	listID string
	filter string
}

func NewStore(client *Client) *Store {
	return &Store{
		client:    client,
		tasks:     make(map[string]models.Task),
		mutations: make(map[string]MutationState),
	}
}

// Load fetches the task set for the given selection, replacing local state.
func (s *Store) Load(ctx context.Context, listID, filter string) error {
	tasks, err := s.client.ListTasks(ctx, listID, filter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.listID = listID
	s.filter = filter
	s.tasks = make(map[string]models.Task, len(tasks))
	for _, task := range tasks {
		s.tasks[task.ID.String()] = task
	}
	return nil
}

// Tasks returns the current collection ordered by creation time ascending.
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Apply folds one feed event into local state. Inserts carrying a client_ref
// replace the matching temporary row so an optimistic add does not turn into
// a duplicate once its authoritative insert arrives.
func (s *Store) Apply(change events.TaskChange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := change.Record.ID.String()
	switch change.Type {
	case events.TypeInsert:
		if change.Record.ClientRef != "" {
			delete(s.tasks, change.Record.ClientRef)
		}
		s.tasks[id] = change.Record
	case events.TypeUpdate:
		s.tasks[id] = change.Record
	case events.TypeDelete:
		delete(s.tasks, id)
	}
}

// Subscribe attaches the change feed until ctx is canceled.
func (s *Store) Subscribe(ctx context.Context) error {
	return s.client.SubscribeFeed(ctx, s.Apply)
}

// MutationStates returns a snapshot of tracked mutations.
func (s *Store) MutationStates() map[string]MutationState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]MutationState, len(s.mutations))
	for id, state := range s.mutations {
		out[id] = state
	}
	return out
}

// SetField applies one field change optimistically and issues the PATCH. On
// failure the field rolls back to its previous value and the mutation is
// marked failed.
func (s *Store) SetField(ctx context.Context, taskID, field string, value interface{}) error {
	mutationID := s.beginMutation()

	s.mu.Lock()
	before, exists := s.tasks[taskID]
	if !exists {
		s.mu.Unlock()
		s.finishMutation(mutationID, MutationFailed)
		return ErrTaskNotLoaded
	}
	s.tasks[taskID] = taskWithField(before, field, value)
	s.mu.Unlock()

	updated, ok, err := s.client.UpdateTask(ctx, taskID, map[string]interface{}{field: value})
	if err != nil || !ok {
		s.mu.Lock()
		if _, still := s.tasks[taskID]; still {
			s.tasks[taskID] = before
		}
		s.mu.Unlock()
		s.finishMutation(mutationID, MutationFailed)
		if err != nil {
			return err
		}
		return ErrTaskGone
	}

	s.mu.Lock()
	s.tasks[taskID] = updated
	s.mu.Unlock()
	s.finishMutation(mutationID, MutationConfirmed)
	return nil
}

// Add inserts a temporary row immediately and reconciles it with the
// server-assigned row from the create response. The feed's insert, arriving
// with the same client_ref, is a no-op replacement by then.
func (s *Store) Add(ctx context.Context, draft TaskDraft) (models.Task, error) {
	mutationID := s.beginMutation()

	tmpUUID, err := uuid.NewV4()
	if err != nil {
		s.finishMutation(mutationID, MutationFailed)
		return models.Task{}, err
	}
	tmpID := TempIDPrefix + tmpUUID.String()
	draft.ClientRef = tmpID

	listID := uuid.FromStringOrNil(draft.ListID)
	temp := models.Task{
		ListID:      listID,
		Title:       draft.Title,
		Notes:       draft.Notes,
		DueDate:     draft.DueDate,
		IsImportant: draft.IsImportant,
		IsMyDay:     draft.IsMyDay,
		ClientRef:   tmpID,
	}

	s.mu.Lock()
	s.tasks[tmpID] = temp
	s.mu.Unlock()

	created, err := s.client.CreateTask(ctx, draft)
	if err != nil {
		s.mu.Lock()
		delete(s.tasks, tmpID)
		s.mu.Unlock()
		s.finishMutation(mutationID, MutationFailed)
		return models.Task{}, err
	}

	s.mu.Lock()
	delete(s.tasks, tmpID)
	s.tasks[created.ID.String()] = created
	s.mu.Unlock()
	s.finishMutation(mutationID, MutationConfirmed)
	return created, nil
}

// Remove deletes optimistically and restores the row if the server errors.
func (s *Store) Remove(ctx context.Context, taskID string) error {
	mutationID := s.beginMutation()

	s.mu.Lock()
	before, exists := s.tasks[taskID]
	delete(s.tasks, taskID)
	s.mu.Unlock()

	if err := s.client.DeleteTask(ctx, taskID); err != nil {
		if exists {
			s.mu.Lock()
			s.tasks[taskID] = before
			s.mu.Unlock()
		}
		s.finishMutation(mutationID, MutationFailed)
		return err
	}

	s.finishMutation(mutationID, MutationConfirmed)
	return nil
}

func (s *Store) beginMutation() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	s.mu.Lock()
	s.mutations[id.String()] = MutationPending
	s.mu.Unlock()
	return id.String()
}

func (s *Store) finishMutation(id string, state MutationState) {
	if id == "" {
		return
	}
	s.mu.Lock()
	s.mutations[id] = state
	s.mu.Unlock()
}

func taskWithField(task models.Task, field string, value interface{}) models.Task {
	switch field {
	case "is_completed":
		if v, ok := value.(bool); ok {
			task.IsCompleted = v
		}
	case "is_important":
		if v, ok := value.(bool); ok {
			task.IsImportant = v
		}
	case "is_my_day":
		if v, ok := value.(bool); ok {
			task.IsMyDay = v
		}
	case "notes":
		if v, ok := value.(string); ok {
			task.Notes = v
		}
	case "title":
		if v, ok := value.(string); ok {
			task.Title = v
		}
	}
	return task
}
