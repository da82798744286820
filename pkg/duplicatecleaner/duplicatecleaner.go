package duplicatecleaner

import (
	"context"
	"crypto/sha512"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/skynet2/conveyancing-inbox/pkg/common"
	"github.com/skynet2/conveyancing-inbox/pkg/database"
)

type DuplicateCleaner struct {
	repo Repo
}

func NewDuplicateCleaner(
	repo Repo,
) *DuplicateCleaner {
	return &DuplicateCleaner{
		repo: repo,
	}
}

// Claim records key before the message is handled. Only one caller can claim a
// key; the rest get common.ErrDuplicate.
func (d *DuplicateCleaner) Claim(
	ctx context.Context,
	key string,
	channel database.Channel,
) error {
	if key == "" {
		return nil
	}

	created, err := d.repo.AddDuplicateKey(ctx, d.HashKey(key), channel)
	if err != nil {
		return err
	}

	if !created {
		return errors.Wrapf(common.ErrDuplicate, "key %s", key)
	}

	return nil
}

// Release drops a claim so a retry of the same message is handled again.
func (d *DuplicateCleaner) Release(
	ctx context.Context,
	key string,
	channel database.Channel,
) error {
	if key == "" {
		return nil
	}

	return d.repo.RemoveDuplicateKey(ctx, d.HashKey(key), channel)
}

func (d *DuplicateCleaner) HashKey(bv string) string {
	shaImpl := sha512.New()
	shaImpl.Write([]byte(bv))

	return fmt.Sprintf("%x", shaImpl.Sum(nil))
}
