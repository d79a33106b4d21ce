package repository

import (
	"context"

	chat "fictionchat/internal/pkg/chat/application/domain"
)

// UserRepository owns the mirrored user rows. The chat core only reads them;
// writes happen exclusively through SyncFromHost.
type UserRepository interface {
	// ListAll returns every mirrored user.
	ListAll(ctx context.Context) ([]chat.User, error)

	// SyncFromHost upserts every row of the host application's user table into
	// the chat user table and returns the number of rows mirrored.
	SyncFromHost(ctx context.Context) (int, error)
}
