// Package models defines the core domain models for Swiper.
//
// # Models
//
//   - Profile: a candidate shown on a swipe card (immutable once created)
//   - HistoryEntry: one undoable action recorded by the deck
//   - LoadStatus: progress of the one-shot candidate fetch for a session
//
// Profiles are identified by their email address. There are no user accounts;
// a browsing session is identified by an opaque session ID.
//
// # Design Principles
//
// 1. **Values, not pointers**: profiles and history entries are copied freely
// 2. **Email as identity**: lookups and routing use Profile.Email, never the name
// 3. **Positional undo**: history entries record the exact liked-list index they touched
package models
