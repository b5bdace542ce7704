package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flowtask/internal/models"
)

var (
	// ErrListNotFound means no list title matched the name.
	ErrListNotFound = errors.New("list not found")

	// ErrListAmbiguous means a prefix matched more than one list.
	ErrListAmbiguous = errors.New("ambiguous list name")

	// ErrNoLists means the account has no lists at all.
	ErrNoLists = errors.New("no lists")
)

// ResolveList maps a name to a list by exact title match, then by unique
// case-insensitive prefix. An empty name resolves to the default list, which
// mirrors the server's pick for externally submitted tasks.
func ResolveList(ctx context.Context, env *Env, name string) (models.List, error) {
	lists, err := env.Client.ListLists(ctx)
	if err != nil {
		return models.List{}, err
	}
	if len(lists) == 0 {
		return models.List{}, ErrNoLists
	}

	if name == "" {
		for _, list := range lists {
			if list.IsDefault {
				return list, nil
			}
		}
		return lists[0], nil
	}

	lower := strings.ToLower(name)
	var prefixMatches []models.List
	for _, list := range lists {
		title := strings.ToLower(list.Title)
		if title == lower {
			return list, nil
		}
		if strings.HasPrefix(title, lower) {
			prefixMatches = append(prefixMatches, list)
		}
	}

	switch len(prefixMatches) {
	case 0:
		return models.List{}, fmt.Errorf("%w: %s", ErrListNotFound, name)
	case 1:
		return prefixMatches[0], nil
	default:
		return models.List{}, fmt.Errorf("%w: %s", ErrListAmbiguous, name)
	}
}
