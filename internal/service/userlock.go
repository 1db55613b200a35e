package service

import (
	"hash/fnv"
	"sync"
)

const lockStripes = 64

// userLocks serializes check-then-act sequences per user. The gateway has
// no compare-and-swap, so quota checks and config merges must not
// interleave for the same user; different users proceed in parallel.
type userLocks struct {
	stripes [lockStripes]sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{}
}

// Lock acquires the stripe for the given user id and returns the unlock
// function.
func (l *userLocks) Lock(userID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	stripe := &l.stripes[h.Sum32()%lockStripes]
	stripe.Lock()
	return stripe.Unlock
}
