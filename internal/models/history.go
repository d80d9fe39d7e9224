package models

// ActionKind tags an entry in the undo history.
type ActionKind string

const (
	ActionSwipeRight  ActionKind = "swipe_right"
	ActionSwipeLeft   ActionKind = "swipe_left"
	ActionRemoveLiked ActionKind = "remove_liked"
	// ActionLike is an explicit like from the profile detail view.
	// Unlike a swipe it does not move the cursor.
	ActionLike ActionKind = "like"
)

// NoIndex marks a history entry that did not touch the liked list.
const NoIndex = -1

// HistoryEntry records one forward action so it can be reversed.
type HistoryEntry struct {
	Kind    ActionKind `json:"kind"`
	Profile Profile    `json:"profile"`

	// Index is the position in the liked list that the action inserted into
	// or removed from, or NoIndex.
	Index int `json:"index"`
}

// LoadStatus describes the candidate fetch for a session.
type LoadStatus string

const (
	LoadIdle    LoadStatus = "idle"
	LoadLoading LoadStatus = "loading"
	LoadReady   LoadStatus = "ready"
	LoadFailed  LoadStatus = "load_failed"
)
