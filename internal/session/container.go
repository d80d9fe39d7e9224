// Package session owns the browsing state of each connected client.
//
// A Container wraps one deck.State and is the only way to change it: every
// gesture is applied as a single transition under the container's lock, and
// subscribers are told about the resulting snapshot before the next gesture
// is processed.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/mmynk/swiper/internal/deck"
	"github.com/mmynk/swiper/internal/models"
	"github.com/mmynk/swiper/internal/provider"
)

// ErrLoadInProgress is returned by Load while another load is running.
var ErrLoadInProgress = errors.New("candidate load already in progress")

// Snapshot is an immutable view of a container at one point in time.
type Snapshot struct {
	ID        string
	State     deck.State
	Status    models.LoadStatus
	LoadError string

	// MatchPercent is the score shown on the current card, 0 when there is none.
	MatchPercent int
}

// Container serializes transitions on one session's deck.
type Container struct {
	id string

	mu      sync.Mutex
	state   deck.State
	status  models.LoadStatus
	loadErr string
	match   int
	draw    func() int

	subs    map[int]func(Snapshot)
	nextSub int
}

// NewContainer creates an empty container whose undo history keeps at most
// historyLimit entries.
func NewContainer(id string, historyLimit int) *Container {
	return &Container{
		id:     id,
		state:  deck.New(historyLimit),
		status: models.LoadIdle,
		draw:   randomMatch,
		subs:   make(map[int]func(Snapshot)),
	}
}

// randomMatch draws a match score in [50, 100].
func randomMatch() int {
	return rand.IntN(51) + 50
}

// ID returns the session ID.
func (c *Container) ID() string { return c.id }

// Snapshot returns the current state.
func (c *Container) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to be called with every new snapshot. fn runs while
// the container is locked and must not call back into it. The returned
// function removes the subscription.
func (c *Container) Subscribe(fn func(Snapshot)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// Apply runs one transition and notifies subscribers.
func (c *Container) Apply(transition func(deck.State) deck.State) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setStateLocked(transition(c.state))
	return c.snapshotLocked()
}

// SwipeRight likes the current card.
func (c *Container) SwipeRight() Snapshot { return c.Apply(deck.State.SwipeRight) }

// SwipeLeft rejects the current card.
func (c *Container) SwipeLeft() Snapshot { return c.Apply(deck.State.SwipeLeft) }

// Undo reverses the last action.
func (c *Container) Undo() Snapshot { return c.Apply(deck.State.Undo) }

// Record runs one transition like Apply and reports whether it pushed a new
// undoable action, which is false for no-ops such as removing an index that
// is out of range.
func (c *Container) Record(transition func(deck.State) deck.State) (Snapshot, bool) {
	var recorded bool
	snap := c.Apply(func(s deck.State) deck.State {
		next := transition(s)
		recorded = pushed(s, next)
		return next
	})
	return snap, recorded
}

// pushed reports whether next has a history entry prev does not. The history
// is bounded, so its length alone cannot tell once it is full.
func pushed(prev, next deck.State) bool {
	ph, nh := prev.History(), next.History()
	switch {
	case len(nh) == 0:
		return false
	case len(nh) != len(ph):
		return len(nh) > len(ph)
	default:
		return nh[len(nh)-1] != ph[len(ph)-1]
	}
}

// RemoveLiked removes the liked profile at index.
func (c *Container) RemoveLiked(index int) (Snapshot, bool) {
	return c.Record(func(s deck.State) deck.State { return s.RemoveLiked(index) })
}

// Like adds p to the liked list.
func (c *Container) Like(p models.Profile) (Snapshot, bool) {
	return c.Record(func(s deck.State) deck.State { return s.Like(p) })
}

// Unlike removes the liked profile with the given email.
func (c *Container) Unlike(email string) (Snapshot, bool) {
	return c.Record(func(s deck.State) deck.State { return s.Unlike(email) })
}

// Hydrate replaces the liked list with previously persisted profiles.
func (c *Container) Hydrate(liked []models.Profile) Snapshot {
	return c.Apply(func(s deck.State) deck.State { return s.WithLiked(liked) })
}

// Load fetches a batch of candidates and installs it with the cursor reset.
// While the fetch runs the status is LoadLoading. On failure the status is
// LoadFailed and the deck is left untouched.
func (c *Container) Load(ctx context.Context, f provider.Fetcher, count int) (Snapshot, error) {
	c.mu.Lock()
	if c.status == models.LoadLoading {
		c.mu.Unlock()
		return c.Snapshot(), ErrLoadInProgress
	}
	c.status = models.LoadLoading
	c.loadErr = ""
	c.notifyLocked()
	c.mu.Unlock()

	profiles, err := f.Fetch(ctx, count)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.status = models.LoadFailed
		c.loadErr = err.Error()
		c.notifyLocked()
		return c.snapshotLocked(), fmt.Errorf("load candidates: %w", err)
	}
	c.status = models.LoadReady
	c.state = c.state.LoadCandidates(profiles).ResetPosition()
	c.match = c.matchFor(c.state)
	c.notifyLocked()
	return c.snapshotLocked(), nil
}

func (c *Container) setStateLocked(next deck.State) {
	prev := c.state
	c.state = next
	if next.Position() != prev.Position() || len(next.Candidates()) != len(prev.Candidates()) {
		c.match = c.matchFor(next)
	}
	c.notifyLocked()
}

func (c *Container) matchFor(s deck.State) int {
	if s.Exhausted() {
		return 0
	}
	return c.draw()
}

func (c *Container) notifyLocked() {
	snap := c.snapshotLocked()
	for _, fn := range c.subs {
		fn(snap)
	}
}

func (c *Container) snapshotLocked() Snapshot {
	return Snapshot{
		ID:           c.id,
		State:        c.state,
		Status:       c.status,
		LoadError:    c.loadErr,
		MatchPercent: c.match,
	}
}
