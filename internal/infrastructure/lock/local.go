package lock

import (
	"context"
	"sync"
	"time"

	"github.com/Debyte404/Obscura/internal/domain"
	"github.com/Debyte404/Obscura/internal/repository"
)

var _ repository.MatchLocker = (*LocalLocker)(nil)

// LocalLocker is an in-process keyed lock with the same fail-fast and expiry
// semantics as RedisLocker.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]localLease
	now  func() time.Time
	seq  uint64
}

type localLease struct {
	id        uint64
	expiresAt time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]localLease), now: time.Now}
}

func (l *LocalLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if lease, ok := l.held[key]; ok && now.Before(lease.expiresAt) {
		return nil, domain.ErrMatchInProgress
	}
	l.seq++
	id := l.seq
	l.held[key] = localLease{id: id, expiresAt: now.Add(ttl)}

	release := func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if lease, ok := l.held[key]; ok && lease.id == id {
			delete(l.held, key)
		}
		return nil
	}
	return release, nil
}

// Held is the number of keys currently recorded, expired ones included.
func (l *LocalLocker) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}
