package session

import "context"

// Record is the persisted form of a session: the raw token and the JSON
// encoded user. Both fields are nil when nothing is stored.
type Record struct {
	Token []byte
	User  []byte
}

func (r Record) Empty() bool {
	return len(r.Token) == 0 && len(r.User) == 0
}

// Storage persists a session Record. Save and Remove must write or delete
// both halves atomically.
type Storage interface {
	Load(ctx context.Context) (Record, error)
	Save(ctx context.Context, rec Record) error
	Remove(ctx context.Context) error
}
