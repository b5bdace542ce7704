package client

import "errors"

var (
	// ErrTaskNotLoaded means a mutation referenced a task not in the store.
	ErrTaskNotLoaded = errors.New("task not loaded in store")

	// ErrTaskGone means the server reported zero rows for an update; the
	// task was deleted out from under the mutation.
	ErrTaskGone = errors.New("task no longer exists")
)
