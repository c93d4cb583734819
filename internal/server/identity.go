package server

import (
	"context"
	"net/http"
	"strconv"

	"tailscale.com/client/tailscale/apitype"
)

type contextKey int

const (
	userIDKey contextKey = iota
	userInfoKey
)

// UserInfo is the caller's identity as shown by /api/v1/me.
type UserInfo struct {
	ID          int    `json:"id"`
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

var devUser = UserInfo{ID: 1, Login: "local", DisplayName: "Local Dev User"}

// WhoIs resolves a tailnet peer. *local.Client from tsnet implements it.
type WhoIs interface {
	WhoIs(ctx context.Context, remoteAddr string) (*apitype.WhoIsResponse, error)
}

// UserStore maps a login to a stored user ID, creating the user on first sight.
type UserStore interface {
	GetOrCreateUser(ctx context.Context, login, displayName string) (int, error)
}

func withUser(r *http.Request, info UserInfo) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, info.ID)
	ctx = context.WithValue(ctx, userInfoKey, info)
	return r.WithContext(ctx)
}

// DevIdentity acts as the local user, or as the user named by a positive
// X-User-ID header. Only for setups where the network is the trust boundary.
func DevIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := devUser
		if v := r.Header.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil || id <= 0 {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid X-User-ID"})
				return
			}
			info = UserInfo{ID: id, Login: "user-" + v}
		}
		next.ServeHTTP(w, withUser(r, info))
	})
}

// TailscaleIdentity resolves the caller's tailnet login and maps it to a user.
func TailscaleIdentity(lc WhoIs, users UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			who, err := lc.WhoIs(r.Context(), r.RemoteAddr)
			if err != nil || who.UserProfile == nil {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unknown tailnet peer"})
				return
			}
			login := who.UserProfile.LoginName
			id, err := users.GetOrCreateUser(r.Context(), login, who.UserProfile.DisplayName)
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
				return
			}
			next.ServeHTTP(w, withUser(r, UserInfo{ID: id, Login: login, DisplayName: who.UserProfile.DisplayName}))
		})
	}
}

// userIDFromContext returns the user set by identity middleware, falling back to 1.
func userIDFromContext(r *http.Request) int {
	if id, ok := r.Context().Value(userIDKey).(int); ok {
		return id
	}
	return devUser.ID
}

func userInfoFromContext(r *http.Request) UserInfo {
	if info, ok := r.Context().Value(userInfoKey).(UserInfo); ok {
		return info
	}
	return devUser
}

// UserIDFromRequest returns the user resolved by the identity middleware.
func UserIDFromRequest(r *http.Request) int {
	return userIDFromContext(r)
}
