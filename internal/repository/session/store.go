package session

import (
	"context"
	"errors"

	"loan-marketplace-be/pkg/chatflow"
)

// ErrNotFound marks a session id with no live record.
var ErrNotFound = errors.New("session not found")

// IStore persists chat sessions between turns. Records expire after the
// configured idle TTL; Save refreshes it.
type IStore interface {
	Get(ctx context.Context, sessionId string) (*chatflow.Session, error)
	Save(ctx context.Context, session *chatflow.Session) error
	Delete(ctx context.Context, sessionId string) error
}
