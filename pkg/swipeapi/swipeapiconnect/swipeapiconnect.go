// Package swipeapiconnect wires the swiper.v1 SwipeService to Connect handlers
// and clients.
package swipeapiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/swiper/pkg/swipeapi"
)

// SwipeServiceName is the fully-qualified name of the SwipeService service.
const SwipeServiceName = "swiper.v1.SwipeService"

// Procedure paths, relative to the server root.
const (
	SwipeServiceStartSessionProcedure   = "/swiper.v1.SwipeService/StartSession"
	SwipeServiceLoadCandidatesProcedure = "/swiper.v1.SwipeService/LoadCandidates"
	SwipeServiceGetStateProcedure       = "/swiper.v1.SwipeService/GetState"
	SwipeServiceSwipeRightProcedure     = "/swiper.v1.SwipeService/SwipeRight"
	SwipeServiceSwipeLeftProcedure      = "/swiper.v1.SwipeService/SwipeLeft"
	SwipeServiceUndoProcedure           = "/swiper.v1.SwipeService/Undo"
	SwipeServiceRemoveLikedProcedure    = "/swiper.v1.SwipeService/RemoveLiked"
	SwipeServiceLikeProfileProcedure    = "/swiper.v1.SwipeService/LikeProfile"
	SwipeServiceUnlikeProfileProcedure  = "/swiper.v1.SwipeService/UnlikeProfile"
	SwipeServiceGetProfileProcedure     = "/swiper.v1.SwipeService/GetProfile"
	SwipeServiceListLikedProcedure      = "/swiper.v1.SwipeService/ListLiked"
	SwipeServiceEndSessionProcedure     = "/swiper.v1.SwipeService/EndSession"
)

// SwipeServiceHandler is implemented by the server.
type SwipeServiceHandler interface {
	StartSession(context.Context, *connect.Request[swipeapi.StartSessionRequest]) (*connect.Response[swipeapi.StartSessionResponse], error)
	LoadCandidates(context.Context, *connect.Request[swipeapi.LoadCandidatesRequest]) (*connect.Response[swipeapi.LoadCandidatesResponse], error)
	GetState(context.Context, *connect.Request[swipeapi.GetStateRequest]) (*connect.Response[swipeapi.GetStateResponse], error)
	SwipeRight(context.Context, *connect.Request[swipeapi.SwipeRequest]) (*connect.Response[swipeapi.SwipeResponse], error)
	SwipeLeft(context.Context, *connect.Request[swipeapi.SwipeRequest]) (*connect.Response[swipeapi.SwipeResponse], error)
	Undo(context.Context, *connect.Request[swipeapi.UndoRequest]) (*connect.Response[swipeapi.UndoResponse], error)
	RemoveLiked(context.Context, *connect.Request[swipeapi.RemoveLikedRequest]) (*connect.Response[swipeapi.RemoveLikedResponse], error)
	LikeProfile(context.Context, *connect.Request[swipeapi.LikeProfileRequest]) (*connect.Response[swipeapi.LikeProfileResponse], error)
	UnlikeProfile(context.Context, *connect.Request[swipeapi.UnlikeProfileRequest]) (*connect.Response[swipeapi.UnlikeProfileResponse], error)
	GetProfile(context.Context, *connect.Request[swipeapi.GetProfileRequest]) (*connect.Response[swipeapi.GetProfileResponse], error)
	ListLiked(context.Context, *connect.Request[swipeapi.ListLikedRequest]) (*connect.Response[swipeapi.ListLikedResponse], error)
	EndSession(context.Context, *connect.Request[swipeapi.EndSessionRequest]) (*connect.Response[swipeapi.EndSessionResponse], error)
}

// NewSwipeServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
// The JSON codec is always registered; further options are appended.
func NewSwipeServiceHandler(svc SwipeServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(swipeapi.Codec{})}, opts...)

	handlers := map[string]http.Handler{
		SwipeServiceStartSessionProcedure:   connect.NewUnaryHandler(SwipeServiceStartSessionProcedure, svc.StartSession, opts...),
		SwipeServiceLoadCandidatesProcedure: connect.NewUnaryHandler(SwipeServiceLoadCandidatesProcedure, svc.LoadCandidates, opts...),
		SwipeServiceGetStateProcedure:       connect.NewUnaryHandler(SwipeServiceGetStateProcedure, svc.GetState, opts...),
		SwipeServiceSwipeRightProcedure:     connect.NewUnaryHandler(SwipeServiceSwipeRightProcedure, svc.SwipeRight, opts...),
		SwipeServiceSwipeLeftProcedure:      connect.NewUnaryHandler(SwipeServiceSwipeLeftProcedure, svc.SwipeLeft, opts...),
		SwipeServiceUndoProcedure:           connect.NewUnaryHandler(SwipeServiceUndoProcedure, svc.Undo, opts...),
		SwipeServiceRemoveLikedProcedure:    connect.NewUnaryHandler(SwipeServiceRemoveLikedProcedure, svc.RemoveLiked, opts...),
		SwipeServiceLikeProfileProcedure:    connect.NewUnaryHandler(SwipeServiceLikeProfileProcedure, svc.LikeProfile, opts...),
		SwipeServiceUnlikeProfileProcedure:  connect.NewUnaryHandler(SwipeServiceUnlikeProfileProcedure, svc.UnlikeProfile, opts...),
		SwipeServiceGetProfileProcedure:     connect.NewUnaryHandler(SwipeServiceGetProfileProcedure, svc.GetProfile, opts...),
		SwipeServiceListLikedProcedure:      connect.NewUnaryHandler(SwipeServiceListLikedProcedure, svc.ListLiked, opts...),
		SwipeServiceEndSessionProcedure:     connect.NewUnaryHandler(SwipeServiceEndSessionProcedure, svc.EndSession, opts...),
	}

	return "/" + SwipeServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// SwipeServiceClient is a client for the swiper.v1.SwipeService service.
type SwipeServiceClient interface {
	StartSession(context.Context, *connect.Request[swipeapi.StartSessionRequest]) (*connect.Response[swipeapi.StartSessionResponse], error)
	LoadCandidates(context.Context, *connect.Request[swipeapi.LoadCandidatesRequest]) (*connect.Response[swipeapi.LoadCandidatesResponse], error)
	GetState(context.Context, *connect.Request[swipeapi.GetStateRequest]) (*connect.Response[swipeapi.GetStateResponse], error)
	SwipeRight(context.Context, *connect.Request[swipeapi.SwipeRequest]) (*connect.Response[swipeapi.SwipeResponse], error)
	SwipeLeft(context.Context, *connect.Request[swipeapi.SwipeRequest]) (*connect.Response[swipeapi.SwipeResponse], error)
	Undo(context.Context, *connect.Request[swipeapi.UndoRequest]) (*connect.Response[swipeapi.UndoResponse], error)
	RemoveLiked(context.Context, *connect.Request[swipeapi.RemoveLikedRequest]) (*connect.Response[swipeapi.RemoveLikedResponse], error)
	LikeProfile(context.Context, *connect.Request[swipeapi.LikeProfileRequest]) (*connect.Response[swipeapi.LikeProfileResponse], error)
	UnlikeProfile(context.Context, *connect.Request[swipeapi.UnlikeProfileRequest]) (*connect.Response[swipeapi.UnlikeProfileResponse], error)
	GetProfile(context.Context, *connect.Request[swipeapi.GetProfileRequest]) (*connect.Response[swipeapi.GetProfileResponse], error)
	ListLiked(context.Context, *connect.Request[swipeapi.ListLikedRequest]) (*connect.Response[swipeapi.ListLikedResponse], error)
	EndSession(context.Context, *connect.Request[swipeapi.EndSessionRequest]) (*connect.Response[swipeapi.EndSessionResponse], error)
}

// NewSwipeServiceClient constructs a client for the swiper.v1.SwipeService
// service. baseURL is the server root, e.g. http://localhost:8080.
func NewSwipeServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SwipeServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(swipeapi.Codec{})}, opts...)
	return &swipeServiceClient{
		startSession:   connect.NewClient[swipeapi.StartSessionRequest, swipeapi.StartSessionResponse](httpClient, baseURL+SwipeServiceStartSessionProcedure, opts...),
		loadCandidates: connect.NewClient[swipeapi.LoadCandidatesRequest, swipeapi.LoadCandidatesResponse](httpClient, baseURL+SwipeServiceLoadCandidatesProcedure, opts...),
		getState:       connect.NewClient[swipeapi.GetStateRequest, swipeapi.GetStateResponse](httpClient, baseURL+SwipeServiceGetStateProcedure, opts...),
		swipeRight:     connect.NewClient[swipeapi.SwipeRequest, swipeapi.SwipeResponse](httpClient, baseURL+SwipeServiceSwipeRightProcedure, opts...),
		swipeLeft:      connect.NewClient[swipeapi.SwipeRequest, swipeapi.SwipeResponse](httpClient, baseURL+SwipeServiceSwipeLeftProcedure, opts...),
		undo:           connect.NewClient[swipeapi.UndoRequest, swipeapi.UndoResponse](httpClient, baseURL+SwipeServiceUndoProcedure, opts...),
		removeLiked:    connect.NewClient[swipeapi.RemoveLikedRequest, swipeapi.RemoveLikedResponse](httpClient, baseURL+SwipeServiceRemoveLikedProcedure, opts...),
		likeProfile:    connect.NewClient[swipeapi.LikeProfileRequest, swipeapi.LikeProfileResponse](httpClient, baseURL+SwipeServiceLikeProfileProcedure, opts...),
		unlikeProfile:  connect.NewClient[swipeapi.UnlikeProfileRequest, swipeapi.UnlikeProfileResponse](httpClient, baseURL+SwipeServiceUnlikeProfileProcedure, opts...),
		getProfile:     connect.NewClient[swipeapi.GetProfileRequest, swipeapi.GetProfileResponse](httpClient, baseURL+SwipeServiceGetProfileProcedure, opts...),
		listLiked:      connect.NewClient[swipeapi.ListLikedRequest, swipeapi.ListLikedResponse](httpClient, baseURL+SwipeServiceListLikedProcedure, opts...),
		endSession:     connect.NewClient[swipeapi.EndSessionRequest, swipeapi.EndSessionResponse](httpClient, baseURL+SwipeServiceEndSessionProcedure, opts...),
	}
}

type swipeServiceClient struct {
	startSession   *connect.Client[swipeapi.StartSessionRequest, swipeapi.StartSessionResponse]
	loadCandidates *connect.Client[swipeapi.LoadCandidatesRequest, swipeapi.LoadCandidatesResponse]
	getState       *connect.Client[swipeapi.GetStateRequest, swipeapi.GetStateResponse]
	swipeRight     *connect.Client[swipeapi.SwipeRequest, swipeapi.SwipeResponse]
	swipeLeft      *connect.Client[swipeapi.SwipeRequest, swipeapi.SwipeResponse]
	undo           *connect.Client[swipeapi.UndoRequest, swipeapi.UndoResponse]
	removeLiked    *connect.Client[swipeapi.RemoveLikedRequest, swipeapi.RemoveLikedResponse]
	likeProfile    *connect.Client[swipeapi.LikeProfileRequest, swipeapi.LikeProfileResponse]
	unlikeProfile  *connect.Client[swipeapi.UnlikeProfileRequest, swipeapi.UnlikeProfileResponse]
	getProfile     *connect.Client[swipeapi.GetProfileRequest, swipeapi.GetProfileResponse]
	listLiked      *connect.Client[swipeapi.ListLikedRequest, swipeapi.ListLikedResponse]
	endSession     *connect.Client[swipeapi.EndSessionRequest, swipeapi.EndSessionResponse]
}

func (c *swipeServiceClient) StartSession(ctx context.Context, req *connect.Request[swipeapi.StartSessionRequest]) (*connect.Response[swipeapi.StartSessionResponse], error) {
	return c.startSession.CallUnary(ctx, req)
}

func (c *swipeServiceClient) LoadCandidates(ctx context.Context, req *connect.Request[swipeapi.LoadCandidatesRequest]) (*connect.Response[swipeapi.LoadCandidatesResponse], error) {
	return c.loadCandidates.CallUnary(ctx, req)
}

func (c *swipeServiceClient) GetState(ctx context.Context, req *connect.Request[swipeapi.GetStateRequest]) (*connect.Response[swipeapi.GetStateResponse], error) {
	return c.getState.CallUnary(ctx, req)
}

func (c *swipeServiceClient) SwipeRight(ctx context.Context, req *connect.Request[swipeapi.SwipeRequest]) (*connect.Response[swipeapi.SwipeResponse], error) {
	return c.swipeRight.CallUnary(ctx, req)
}

func (c *swipeServiceClient) SwipeLeft(ctx context.Context, req *connect.Request[swipeapi.SwipeRequest]) (*connect.Response[swipeapi.SwipeResponse], error) {
	return c.swipeLeft.CallUnary(ctx, req)
}

func (c *swipeServiceClient) Undo(ctx context.Context, req *connect.Request[swipeapi.UndoRequest]) (*connect.Response[swipeapi.UndoResponse], error) {
	return c.undo.CallUnary(ctx, req)
}

func (c *swipeServiceClient) RemoveLiked(ctx context.Context, req *connect.Request[swipeapi.RemoveLikedRequest]) (*connect.Response[swipeapi.RemoveLikedResponse], error) {
	return c.removeLiked.CallUnary(ctx, req)
}

func (c *swipeServiceClient) LikeProfile(ctx context.Context, req *connect.Request[swipeapi.LikeProfileRequest]) (*connect.Response[swipeapi.LikeProfileResponse], error) {
	return c.likeProfile.CallUnary(ctx, req)
}

func (c *swipeServiceClient) UnlikeProfile(ctx context.Context, req *connect.Request[swipeapi.UnlikeProfileRequest]) (*connect.Response[swipeapi.UnlikeProfileResponse], error) {
	return c.unlikeProfile.CallUnary(ctx, req)
}

func (c *swipeServiceClient) GetProfile(ctx context.Context, req *connect.Request[swipeapi.GetProfileRequest]) (*connect.Response[swipeapi.GetProfileResponse], error) {
	return c.getProfile.CallUnary(ctx, req)
}

func (c *swipeServiceClient) ListLiked(ctx context.Context, req *connect.Request[swipeapi.ListLikedRequest]) (*connect.Response[swipeapi.ListLikedResponse], error) {
	return c.listLiked.CallUnary(ctx, req)
}

func (c *swipeServiceClient) EndSession(ctx context.Context, req *connect.Request[swipeapi.EndSessionRequest]) (*connect.Response[swipeapi.EndSessionResponse], error) {
	return c.endSession.CallUnary(ctx, req)
}
