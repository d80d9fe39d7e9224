package session

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/mmynk/swiper/internal/models"
	"github.com/mmynk/swiper/internal/storage"
)

// writeTimeout bounds a single store write.
const writeTimeout = 5 * time.Second

// Persister mirrors a container's liked list into a storage.Store.
// Writes happen on a background goroutine, are coalesced to the latest list,
// and are never retried: a failed write is logged and the next change
// overwrites it anyway.
type Persister struct {
	store     storage.Store
	namespace string
	onError   func(error)

	pending chan []models.Profile
	done    chan struct{}
	last    []models.Profile
	cancel  func()

	closeOnce sync.Once
}

// NewPersister subscribes to c and starts the writer. The container's
// current liked list is taken as already persisted. onError may be nil.
func NewPersister(c *Container, store storage.Store, onError func(error)) *Persister {
	p := &Persister{
		store:     store,
		namespace: c.ID(),
		onError:   onError,
		pending:   make(chan []models.Profile, 1),
		done:      make(chan struct{}),
		last:      c.Snapshot().State.Liked(),
	}
	go p.run()
	p.cancel = c.Subscribe(p.observe)
	return p
}

// observe runs under the container lock, so calls are serialized.
func (p *Persister) observe(s Snapshot) {
	liked := s.State.Liked()
	if slices.Equal(liked, p.last) {
		return
	}
	p.last = liked

	select {
	case p.pending <- liked:
	default:
		// Replace the queued list with the newer one.
		select {
		case <-p.pending:
		default:
		}
		p.pending <- liked
	}
}

func (p *Persister) run() {
	defer close(p.done)
	for liked := range p.pending {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := storage.SaveLiked(ctx, p.store, p.namespace, liked)
		cancel()
		if err != nil {
			slog.Error("Failed to persist liked list", "session_id", p.namespace, "count", len(liked), "error", err)
			if p.onError != nil {
				p.onError(err)
			}
			continue
		}
		slog.Debug("Liked list persisted", "session_id", p.namespace, "count", len(liked))
	}
}

// Close stops observing the container and waits for queued writes to finish.
func (p *Persister) Close() {
	p.closeOnce.Do(func() {
		p.cancel()
		close(p.pending)
		<-p.done
	})
}
