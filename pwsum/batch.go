package main

import (
	"context"
	"github.com/p7r0x7/pwdigest"
	"github.com/pkg/errors"
	"sync"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

type job struct {
	dex      int
	password string
}

// hashAll digests every password on a pool of workers, returning the digests in input order. The
// pool is torn down before hashAll returns, whether or not ctx was cancelled part way through.
func hashAll(ctx context.Context, passwords []string, salt *string, modulus *int64, threads int) ([]string, error) {
	if threads < 1 {
		threads = 1
	}
	opts := options(salt, modulus)
	digests := make([]string, len(passwords))

	jobs, working := make(chan job, threads*2), sync.WaitGroup{}
	working.Add(threads)
	for i := threads; i > 0; i-- {
		go func() {
			defer working.Done()
			for j := range jobs {
				/* Each worker writes only the indices it was handed; no locking is needed. */
				digests[j.dex] = pwdigest.Sum(j.password, opts...)
			}
		}()
	}

	fed := 0
feed:
	for ; fed < len(passwords) && ctx.Err() == nil; fed++ {
		select {
		case jobs <- job{fed, passwords[fed]}:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs) /* Workers drain what was queued, then exit. */
	working.Wait()

	if fed < len(passwords) {
		return nil, errors.Wrapf(ctx.Err(), "hashed %d of %d passwords", fed, len(passwords))
	}
	return digests, nil
}
