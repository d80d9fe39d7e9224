// Package swipeapi defines the wire messages of the swiper.v1 SwipeService.
//
// Messages are plain Go structs encoded as JSON by Codec; there is no
// protobuf schema.
package swipeapi

// SessionHeader carries the session ID on every call except StartSession.
const SessionHeader = "Swiper-Session"

// Profile is a candidate as seen by clients.
type Profile struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Location string `json:"location"`
	Photo    string `json:"photo"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
}

// LoadStatus values.
const (
	StatusIdle       = "idle"
	StatusLoading    = "loading"
	StatusReady      = "ready"
	StatusLoadFailed = "load_failed"
)

// State is a snapshot of a browsing session.
type State struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	LoadError string `json:"load_error,omitempty"`

	// Current is nil while loading and once the deck is exhausted.
	Current      *Profile `json:"current,omitempty"`
	MatchPercent int      `json:"match_percent"`

	Position  int  `json:"position"`
	Total     int  `json:"total"`
	Exhausted bool `json:"exhausted"`

	Liked   []*Profile `json:"liked"`
	CanUndo bool       `json:"can_undo"`
}

type StartSessionRequest struct {
	// SessionID resumes an earlier session (and its liked list) when set.
	SessionID string `json:"session_id,omitempty"`
}

type StartSessionResponse struct {
	SessionID string `json:"session_id"`
	Resumed   bool   `json:"resumed"`
	State     *State `json:"state"`
}

type LoadCandidatesRequest struct {
	// Count overrides the server's batch size when positive.
	Count int `json:"count,omitempty"`
}

type LoadCandidatesResponse struct {
	State *State `json:"state"`
}

type GetStateRequest struct{}

type GetStateResponse struct {
	State *State `json:"state"`
}

type SwipeRequest struct{}

type SwipeResponse struct {
	// Swiped is the profile the swipe acted on, nil at exhaustion.
	Swiped *Profile `json:"swiped,omitempty"`
	State  *State   `json:"state"`
}

type UndoRequest struct{}

type UndoResponse struct {
	// Undone is the kind of action reversed, empty when history was empty.
	Undone string `json:"undone,omitempty"`
	State  *State `json:"state"`
}

type RemoveLikedRequest struct {
	Index int `json:"index"`
}

type RemoveLikedResponse struct {
	State *State `json:"state"`
}

type LikeProfileRequest struct {
	Email string `json:"email"`
}

type LikeProfileResponse struct {
	State *State `json:"state"`
}

type UnlikeProfileRequest struct {
	Email string `json:"email"`
}

type UnlikeProfileResponse struct {
	State *State `json:"state"`
}

type GetProfileRequest struct {
	Email string `json:"email"`
}

type GetProfileResponse struct {
	Profile *Profile `json:"profile"`
	Liked   bool     `json:"liked"`
}

type ListLikedRequest struct{}

type ListLikedResponse struct {
	Profiles []*Profile `json:"profiles"`
}

type EndSessionRequest struct {
	// Forget also deletes the persisted liked list, so a later StartSession
	// with the same ID begins empty.
	Forget bool `json:"forget,omitempty"`
}

type EndSessionResponse struct {
	Forgotten bool `json:"forgotten"`
}
