// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"math"
	"net/http"

	"figstore/internal/auth"
	"figstore/internal/middleware"
	"figstore/internal/session"
)

// Auth groups the authentication handlers. Failed logins are throttled
// per client IP by the login limiter.
type Auth struct {
	sessions *session.Store
	users    *auth.UserStore
	limiter  *auth.LoginLimiter
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, users *auth.UserStore, limiter *auth.LoginLimiter) *Auth {
	return &Auth{sessions: sessions, users: users, limiter: limiter}
}

// Login processes a credentials payload. Locked-out clients get a 429
// with the remaining lockout in seconds; bad credentials count toward
// the lockout.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	ip := middleware.ClientIP(r)

	if a.limiter.IsLocked(ip) {
		a.tooManyAttempts(w, ip)
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ok, err := a.users.Authenticate(req.Username, req.Password)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if !ok {
		if locked := a.limiter.RecordFailure(ip); locked {
			slog.Warn("login lockout tripped", "remote", ip)
			a.tooManyAttempts(w, ip)
			return
		}
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	a.limiter.Clear(ip)

	if _, err := a.sessions.Create(w, &session.Data{Username: req.Username, Role: "admin"}); err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	slog.Info("admin login", "username", req.Username, "remote", ip)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Logout destroys the current session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(w, r)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (a *Auth) tooManyAttempts(w http.ResponseWriter, ip string) {
	retry := int(math.Ceil(a.limiter.RemainingLockout(ip).Seconds()))
	writeJSON(w, http.StatusTooManyRequests, map[string]any{
		"error":       "too many failed attempts",
		"retry_after": retry,
	})
}
