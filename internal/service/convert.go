package service

import (
	"github.com/mmynk/swiper/internal/models"
	"github.com/mmynk/swiper/internal/session"
	"github.com/mmynk/swiper/pkg/swipeapi"
)

func toAPIProfile(p models.Profile) *swipeapi.Profile {
	return &swipeapi.Profile{
		Name:     p.Name,
		Age:      p.Age,
		Location: p.Location,
		Photo:    p.Photo,
		Email:    p.Email,
		Bio:      p.Bio,
	}
}

func toAPIProfiles(profiles []models.Profile) []*swipeapi.Profile {
	out := make([]*swipeapi.Profile, len(profiles))
	for i, p := range profiles {
		out[i] = toAPIProfile(p)
	}
	return out
}

func toAPIState(snap session.Snapshot) *swipeapi.State {
	st := snap.State
	state := &swipeapi.State{
		SessionID:    snap.ID,
		Status:       string(snap.Status),
		LoadError:    snap.LoadError,
		MatchPercent: snap.MatchPercent,
		Position:     st.Position(),
		Total:        len(st.Candidates()),
		Exhausted:    st.Exhausted(),
		Liked:        toAPIProfiles(st.Liked()),
		CanUndo:      st.CanUndo(),
	}
	if cur, ok := st.Current(); ok && snap.Status != models.LoadLoading {
		state.Current = toAPIProfile(cur)
	}
	return state
}
