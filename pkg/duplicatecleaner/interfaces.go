package duplicatecleaner

import (
	"context"

	"github.com/skynet2/conveyancing-inbox/pkg/database"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package duplicatecleaner_test -source=interfaces.go

type Repo interface {
	// AddDuplicateKey stores key unless it exists and reports whether it was created.
	AddDuplicateKey(ctx context.Context, key string, channel database.Channel) (bool, error)
	RemoveDuplicateKey(ctx context.Context, key string, channel database.Channel) error
}
