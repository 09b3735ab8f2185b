// Package repository is the data-access core: each entity repository
// orchestrates the remote client, the local cache and the session store into
// single operations with offline fallback and write-through.
//
// Two canonical shapes exist. Reads go remote first and fall back to the
// cache on any transport-classified failure; if the cache read also fails,
// the original remote failure is returned, never the cache one. Writes apply
// their local side effects only after remote success.
//
// Write-through after a successful remote read is best-effort: it runs
// synchronously before the envelope is returned, under context.WithoutCancel
// so a caller cancelling mid-operation still gets a completed cache warm.
// Write-through failures are logged and never surfaced. This one policy
// applies to every operation in the package.
package repository

import (
	"context"

	"github.com/devpal/newbase/internal/api"
	"github.com/devpal/newbase/internal/logging"
)

// readWithFallback is the single implementation of the read path, shared by
// both entity repositories so the failure-precedence contract cannot drift.
func readWithFallback[T any](
	ctx context.Context,
	log logging.Logger,
	remote func(ctx context.Context) (*api.Envelope[T], error),
	local func(ctx context.Context) (T, error),
	writeThrough func(ctx context.Context, data T) error,
) (*api.Envelope[T], error) {
	env, err := remote(ctx)
	if err != nil {
		log.Warn(ctx, "remote read failed, falling back to local cache", "err", err)

		data, localErr := local(ctx)
		if localErr != nil {
			// The remote failure is the diagnostic one; the cache miss
			// must not mask it.
			log.Error(ctx, "local fallback failed", "err", localErr)
			return nil, err
		}
		return api.Success(data, "loaded from local cache"), nil
	}

	// Business-level failures come back unchanged and never touch the cache.
	if env.IsSuccess() && env.Data != nil {
		if err := writeThrough(context.WithoutCancel(ctx), *env.Data); err != nil {
			log.Warn(ctx, "write-through to local cache failed", "err", err)
		}
	}
	return env, nil
}
