// Package service implements the Connect handlers of the SwipeService.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/swiper/internal/deck"
	"github.com/mmynk/swiper/internal/metrics"
	"github.com/mmynk/swiper/internal/middleware"
	"github.com/mmynk/swiper/internal/models"
	"github.com/mmynk/swiper/internal/provider"
	"github.com/mmynk/swiper/internal/session"
	"github.com/mmynk/swiper/pkg/swipeapi"
	"github.com/mmynk/swiper/pkg/swipeapi/swipeapiconnect"
)

// Ensure SwipeService implements the Connect handler interface
var _ swipeapiconnect.SwipeServiceHandler = (*SwipeService)(nil)

// SwipeService implements the Connect SwipeService
type SwipeService struct {
	sessions  *session.Manager
	fetcher   provider.Fetcher
	batchSize int
	metrics   *metrics.Metrics
}

// NewSwipeService creates a SwipeService. batchSize is the number of
// candidates fetched when a LoadCandidates request does not say otherwise.
func NewSwipeService(sessions *session.Manager, fetcher provider.Fetcher, batchSize int, m *metrics.Metrics) *SwipeService {
	if batchSize <= 0 {
		batchSize = provider.DefaultBatchSize
	}
	return &SwipeService{
		sessions:  sessions,
		fetcher:   fetcher,
		batchSize: batchSize,
		metrics:   m,
	}
}

// session resolves the caller's container from the session header.
func (s *SwipeService) session(ctx context.Context) (*session.Container, error) {
	id := middleware.GetSessionID(ctx)
	if id == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("%s header required", swipeapi.SessionHeader))
	}
	c, err := s.sessions.Get(id)
	if err != nil {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	return c, nil
}

// StartSession creates or resumes a browsing session.
func (s *SwipeService) StartSession(ctx context.Context, req *connect.Request[swipeapi.StartSessionRequest]) (*connect.Response[swipeapi.StartSessionResponse], error) {
	requested := strings.TrimSpace(req.Msg.SessionID)
	slog.Info("StartSession request received", "session_id", requested)

	c, resumed, err := s.sessions.Start(ctx, requested)
	if err != nil {
		if errors.Is(err, session.ErrInvalidID) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		slog.Error("StartSession failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	snap := c.Snapshot()
	slog.Info("Session started",
		"session_id", c.ID(),
		"resumed", resumed,
		"liked_count", len(snap.State.Liked()),
	)

	return connect.NewResponse(&swipeapi.StartSessionResponse{
		SessionID: c.ID(),
		Resumed:   resumed,
		State:     toAPIState(snap),
	}), nil
}

// LoadCandidates fetches a fresh batch of candidates and resets the cursor.
func (s *SwipeService) LoadCandidates(ctx context.Context, req *connect.Request[swipeapi.LoadCandidatesRequest]) (*connect.Response[swipeapi.LoadCandidatesResponse], error) {
	c, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	count := req.Msg.Count
	if count == 0 {
		count = s.batchSize
	}
	if count < 0 || count > provider.MaxBatchSize {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("count must be between 1 and %d", provider.MaxBatchSize))
	}
	slog.Info("LoadCandidates request received", "session_id", c.ID(), "count", count)

	snap, err := c.Load(ctx, s.fetcher, count)
	s.metrics.Fetch(err)
	if err != nil {
		if errors.Is(err, session.ErrLoadInProgress) {
			return nil, connect.NewError(connect.CodeAborted, err)
		}
		slog.Error("LoadCandidates failed", "session_id", c.ID(), "error", err)
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}

	slog.Info("Candidates loaded", "session_id", c.ID(), "count", len(snap.State.Candidates()))

	return connect.NewResponse(&swipeapi.LoadCandidatesResponse{State: toAPIState(snap)}), nil
}

// GetState returns the session snapshot.
func (s *SwipeService) GetState(ctx context.Context, req *connect.Request[swipeapi.GetStateRequest]) (*connect.Response[swipeapi.GetStateResponse], error) {
	c, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&swipeapi.GetStateResponse{State: toAPIState(c.Snapshot())}), nil
}

// SwipeRight likes the current card.
func (s *SwipeService) SwipeRight(ctx context.Context, req *connect.Request[swipeapi.SwipeRequest]) (*connect.Response[swipeapi.SwipeResponse], error) {
	return s.swipe(ctx, models.ActionSwipeRight, deck.State.SwipeRight)
}

// SwipeLeft rejects the current card.
func (s *SwipeService) SwipeLeft(ctx context.Context, req *connect.Request[swipeapi.SwipeRequest]) (*connect.Response[swipeapi.SwipeResponse], error) {
	return s.swipe(ctx, models.ActionSwipeLeft, deck.State.SwipeLeft)
}

func (s *SwipeService) swipe(ctx context.Context, kind models.ActionKind, transition func(deck.State) deck.State) (*connect.Response[swipeapi.SwipeResponse], error) {
	c, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	var swiped *swipeapi.Profile
	snap := c.Apply(func(st deck.State) deck.State {
		cur, ok := st.Current()
		if !ok {
			return st
		}
		swiped = toAPIProfile(cur)
		return transition(st)
	})
	if swiped != nil {
		s.metrics.Action(string(kind))
		slog.Info("Swiped", "session_id", c.ID(), "action", kind, "email", swiped.Email, "position", snap.State.Position())
	} else {
		slog.Debug("Swipe ignored, deck exhausted", "session_id", c.ID(), "action", kind)
	}

	return connect.NewResponse(&swipeapi.SwipeResponse{
		Swiped: swiped,
		State:  toAPIState(snap),
	}), nil
}

// Undo reverses the most recent action.
func (s *SwipeService) Undo(ctx context.Context, req *connect.Request[swipeapi.UndoRequest]) (*connect.Response[swipeapi.UndoResponse], error) {
	c, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	var undone models.ActionKind
	snap := c.Apply(func(st deck.State) deck.State {
		if h := st.History(); len(h) > 0 {
			undone = h[len(h)-1].Kind
		}
		return st.Undo()
	})
	if undone != "" {
		s.metrics.Action("undo")
		slog.Info("Undone", "session_id", c.ID(), "action", undone, "position", snap.State.Position())
	}

	return connect.NewResponse(&swipeapi.UndoResponse{
		Undone: string(undone),
		State:  toAPIState(snap),
	}), nil
}

// RemoveLiked removes a profile from the liked list by position.
func (s *SwipeService) RemoveLiked(ctx context.Context, req *connect.Request[swipeapi.RemoveLikedRequest]) (*connect.Response[swipeapi.RemoveLikedResponse], error) {
	c, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	// Out of range indexes are a silent no-op.
	snap, removed := c.RemoveLiked(req.Msg.Index)
	if removed {
		s.metrics.Action(string(models.ActionRemoveLiked))
		slog.Info("RemoveLiked", "session_id", c.ID(), "index", req.Msg.Index, "liked_count", len(snap.State.Liked()))
	}

	return connect.NewResponse(&swipeapi.RemoveLikedResponse{State: toAPIState(snap)}), nil
}

// LikeProfile likes a specific profile, identified by email, from the
// profile detail view.
func (s *SwipeService) LikeProfile(ctx context.Context, req *connect.Request[swipeapi.LikeProfileRequest]) (*connect.Response[swipeapi.LikeProfileResponse], error) {
	c, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	email := strings.TrimSpace(req.Msg.Email)
	if email == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("email required"))
	}

	var found bool
	snap, liked := c.Record(func(st deck.State) deck.State {
		p, ok := st.Find(email)
		found = ok
		if !ok {
			return st
		}
		return st.Like(p)
	})
	if !found {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("profile not found: %s", email))
	}
	if liked {
		s.metrics.Action(string(models.ActionLike))
		slog.Info("LikeProfile", "session_id", c.ID(), "email", email)
	}

	return connect.NewResponse(&swipeapi.LikeProfileResponse{State: toAPIState(snap)}), nil
}

// UnlikeProfile removes a specific profile from the liked list.
func (s *SwipeService) UnlikeProfile(ctx context.Context, req *connect.Request[swipeapi.UnlikeProfileRequest]) (*connect.Response[swipeapi.UnlikeProfileResponse], error) {
	c, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	email := strings.TrimSpace(req.Msg.Email)
	if email == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("email required"))
	}

	snap, unliked := c.Unlike(email)
	if unliked {
		s.metrics.Action(string(models.ActionRemoveLiked))
		slog.Info("UnlikeProfile", "session_id", c.ID(), "email", email)
	}

	return connect.NewResponse(&swipeapi.UnlikeProfileResponse{State: toAPIState(snap)}), nil
}

// GetProfile resolves the full profile for the detail view.
func (s *SwipeService) GetProfile(ctx context.Context, req *connect.Request[swipeapi.GetProfileRequest]) (*connect.Response[swipeapi.GetProfileResponse], error) {
	c, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	email := strings.TrimSpace(req.Msg.Email)
	if email == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("email required"))
	}

	st := c.Snapshot().State
	p, ok := st.Find(email)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("profile not found: %s", email))
	}

	return connect.NewResponse(&swipeapi.GetProfileResponse{
		Profile: toAPIProfile(p),
		Liked:   st.IsLiked(email),
	}), nil
}

// ListLiked returns the liked profiles in like order.
func (s *SwipeService) ListLiked(ctx context.Context, req *connect.Request[swipeapi.ListLikedRequest]) (*connect.Response[swipeapi.ListLikedResponse], error) {
	c, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&swipeapi.ListLikedResponse{
		Profiles: toAPIProfiles(c.Snapshot().State.Liked()),
	}), nil
}

// EndSession releases the caller's session. With Forget set the persisted
// liked list is deleted too.
func (s *SwipeService) EndSession(ctx context.Context, req *connect.Request[swipeapi.EndSessionRequest]) (*connect.Response[swipeapi.EndSessionResponse], error) {
	id := middleware.GetSessionID(ctx)
	if id == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("%s header required", swipeapi.SessionHeader))
	}
	slog.Info("EndSession request received", "session_id", id, "forget", req.Msg.Forget)

	if req.Msg.Forget {
		if err := s.sessions.Forget(ctx, id); err != nil {
			if errors.Is(err, session.ErrInvalidID) {
				return nil, connect.NewError(connect.CodeInvalidArgument, err)
			}
			slog.Error("EndSession failed", "session_id", id, "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		return connect.NewResponse(&swipeapi.EndSessionResponse{Forgotten: true}), nil
	}

	if err := s.sessions.End(id); err != nil {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewResponse(&swipeapi.EndSessionResponse{}), nil
}

