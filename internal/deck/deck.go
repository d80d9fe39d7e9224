// Package deck implements the swipe/undo state machine for one browsing session.
//
// State is a value. Every transition returns a new State and leaves the
// receiver untouched, so a caller can keep an old snapshot around (for
// rendering or diffing) without it changing underneath them.
//
// Invariants held by every State produced by this package:
//   - 0 <= Position() <= len(Candidates())
//   - Liked() contains each email at most once
//   - len(History()) <= the history limit
package deck

import (
	"slices"

	"github.com/mmynk/swiper/internal/models"
)

// DefaultHistoryLimit bounds the undo stack when New is given a non-positive limit.
const DefaultHistoryLimit = 50

// State is the browsing state of a session.
type State struct {
	candidates []models.Profile
	position   int
	liked      []models.Profile
	history    []models.HistoryEntry
	limit      int
}

// New returns an empty State whose history keeps at most historyLimit entries.
func New(historyLimit int) State {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return State{limit: historyLimit}
}

// Position returns the cursor into the candidate list.
func (s State) Position() int { return s.position }

// Candidates returns a copy of the candidate list.
func (s State) Candidates() []models.Profile { return slices.Clone(s.candidates) }

// Liked returns a copy of the liked list in like order.
func (s State) Liked() []models.Profile { return slices.Clone(s.liked) }

// History returns a copy of the undo history, oldest first.
func (s State) History() []models.HistoryEntry { return slices.Clone(s.history) }

// CanUndo reports whether Undo would change anything.
func (s State) CanUndo() bool { return len(s.history) > 0 }

// Exhausted reports whether every candidate has been swiped.
func (s State) Exhausted() bool { return s.position >= len(s.candidates) }

// Current returns the candidate under the cursor.
func (s State) Current() (models.Profile, bool) {
	if s.Exhausted() {
		return models.Profile{}, false
	}
	return s.candidates[s.position], true
}

// IsLiked reports whether a profile with the given email is in the liked list.
func (s State) IsLiked(email string) bool {
	return s.likedIndex(email) >= 0
}

// Find resolves a profile by email, looking at the candidates first and then
// the liked list (which may hold profiles from earlier sessions).
func (s State) Find(email string) (models.Profile, bool) {
	for _, p := range s.candidates {
		if p.Email == email {
			return p, true
		}
	}
	if i := s.likedIndex(email); i >= 0 {
		return s.liked[i], true
	}
	return models.Profile{}, false
}

// LoadCandidates replaces the candidate list. The liked list is kept and the
// position is only clamped so that it stays within the new list.
func (s State) LoadCandidates(profiles []models.Profile) State {
	next := s.clone()
	next.candidates = slices.Clone(profiles)
	if next.position > len(next.candidates) {
		next.position = len(next.candidates)
	}
	return next
}

// ResetPosition moves the cursor back to the first candidate.
func (s State) ResetPosition() State {
	next := s.clone()
	next.position = 0
	return next
}

// WithLiked replaces the liked list, typically when hydrating from the
// persisted store. Duplicate emails are dropped, first occurrence wins.
// The undo history is left alone.
func (s State) WithLiked(profiles []models.Profile) State {
	next := s.clone()
	next.liked = make([]models.Profile, 0, len(profiles))
	seen := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		if seen[p.Email] {
			continue
		}
		seen[p.Email] = true
		next.liked = append(next.liked, p)
	}
	return next
}

// SwipeRight likes the current candidate and advances the cursor.
// A candidate that is already liked is not added twice, but the swipe is
// still recorded so that Undo moves the cursor back. At exhaustion this is a
// no-op.
func (s State) SwipeRight() State {
	current, ok := s.Current()
	if !ok {
		return s
	}
	next := s.clone()
	index := models.NoIndex
	if !next.IsLiked(current.Email) {
		index = len(next.liked)
		next.liked = append(next.liked, current)
	}
	next.push(models.HistoryEntry{Kind: models.ActionSwipeRight, Profile: current, Index: index})
	next.position++
	return next
}

// SwipeLeft rejects the current candidate and advances the cursor.
// At exhaustion this is a no-op.
func (s State) SwipeLeft() State {
	current, ok := s.Current()
	if !ok {
		return s
	}
	next := s.clone()
	next.push(models.HistoryEntry{Kind: models.ActionSwipeLeft, Profile: current, Index: models.NoIndex})
	next.position++
	return next
}

// RemoveLiked removes the liked profile at index. Out of range indexes are ignored.
func (s State) RemoveLiked(index int) State {
	if index < 0 || index >= len(s.liked) {
		return s
	}
	next := s.clone()
	removed := next.liked[index]
	next.liked = slices.Delete(next.liked, index, index+1)
	next.push(models.HistoryEntry{Kind: models.ActionRemoveLiked, Profile: removed, Index: index})
	return next
}

// Like adds an explicitly chosen profile to the liked list without moving
// the cursor. Liking a profile that is already liked is a no-op.
func (s State) Like(p models.Profile) State {
	if s.IsLiked(p.Email) {
		return s
	}
	next := s.clone()
	index := len(next.liked)
	next.liked = append(next.liked, p)
	next.push(models.HistoryEntry{Kind: models.ActionLike, Profile: p, Index: index})
	return next
}

// Unlike removes the liked profile with the given email, as RemoveLiked would.
func (s State) Unlike(email string) State {
	i := s.likedIndex(email)
	if i < 0 {
		return s
	}
	return s.RemoveLiked(i)
}

// Undo reverses the most recent action. With an empty history it is a no-op.
func (s State) Undo() State {
	if len(s.history) == 0 {
		return s
	}
	next := s.clone()
	last := next.history[len(next.history)-1]
	next.history = next.history[:len(next.history)-1]

	switch last.Kind {
	case models.ActionSwipeRight:
		next.removeRecorded(last)
		next.stepBack()
	case models.ActionSwipeLeft:
		next.stepBack()
	case models.ActionRemoveLiked:
		at := min(max(last.Index, 0), len(next.liked))
		next.liked = slices.Insert(next.liked, at, last.Profile)
	case models.ActionLike:
		next.removeRecorded(last)
	}
	return next
}

// removeRecorded drops the liked entry an action inserted. The recorded index
// is trusted only while it still holds the same profile; otherwise the entry
// is located by email.
func (s *State) removeRecorded(e models.HistoryEntry) {
	if e.Index == models.NoIndex {
		return
	}
	i := e.Index
	if i >= len(s.liked) || !s.liked[i].SameAs(e.Profile) {
		i = s.likedIndex(e.Profile.Email)
	}
	if i >= 0 {
		s.liked = slices.Delete(s.liked, i, i+1)
	}
}

func (s *State) stepBack() {
	if s.position > 0 {
		s.position--
	}
}

func (s *State) push(e models.HistoryEntry) {
	s.history = append(s.history, e)
	if over := len(s.history) - s.limitOrDefault(); over > 0 {
		s.history = slices.Delete(s.history, 0, over)
	}
}

func (s State) likedIndex(email string) int {
	return slices.IndexFunc(s.liked, func(p models.Profile) bool { return p.Email == email })
}

func (s State) limitOrDefault() int {
	if s.limit <= 0 {
		return DefaultHistoryLimit
	}
	return s.limit
}

func (s State) clone() State {
	return State{
		candidates: slices.Clone(s.candidates),
		position:   s.position,
		liked:      slices.Clone(s.liked),
		history:    slices.Clone(s.history),
		limit:      s.limit,
	}
}
