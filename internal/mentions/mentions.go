// Package mentions extracts @username tokens from free text and resolves them
// to user ids.
package mentions

import (
	"context"
	"regexp"
)

var mentionPattern = regexp.MustCompile(`@(\w+)`)

// UserLookup resolves a set of usernames to the ids of those that exist.
type UserLookup interface {
	GetIDsByUsernames(ctx context.Context, usernames []string) (map[string]uint, error)
}

// Result holds the parallel outputs of a mention scan. Usernames preserves
// every token as typed, duplicates included; UserIDs holds one id per distinct
// username that resolved to an existing user.
type Result struct {
	Usernames []string
	UserIDs   []uint
}

// Resolver scans content for mentions and resolves them against a user store.
type Resolver struct {
	users UserLookup
}

// NewResolver returns a Resolver backed by the given lookup.
func NewResolver(users UserLookup) *Resolver {
	return &Resolver{users: users}
}

// Extract scans content for @username tokens and resolves them with a single
// batched lookup. Unknown usernames stay in the display list but contribute
// nothing to the id list.
func (r *Resolver) Extract(ctx context.Context, content string) (Result, error) {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return Result{Usernames: []string{}, UserIDs: []uint{}}, nil
	}

	usernames := make([]string, 0, len(matches))
	unique := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		name := m[1]
		usernames = append(usernames, name)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}

	ids, err := r.users.GetIDsByUsernames(ctx, unique)
	if err != nil {
		return Result{}, err
	}

	userIDs := make([]uint, 0, len(unique))
	for _, name := range unique {
		if id, ok := ids[name]; ok {
			userIDs = append(userIDs, id)
		}
	}

	return Result{Usernames: usernames, UserIDs: userIDs}, nil
}
