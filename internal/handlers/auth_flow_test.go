// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"figstore/internal/session"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func login(t *testing.T, app *testApp, username, password, remote string) (int, map[string]any, *http.Response) {
	t.Helper()

	r := jsonRequest(t, http.MethodPost, "/api/login", credentials{Username: username, Password: password})
	r.RemoteAddr = remote

	rr := httptest.NewRecorder()
	app.auth.Login(rr, r)

	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return rr.Code, payload, rr.Result()
}

func TestLoginSuccess(t *testing.T) {
	app := newTestApp(t)
	if err := app.users.SetPassword("admin", "letmein", "admin"); err != nil {
		t.Fatal(err)
	}

	status, payload, res := login(t, app, "admin", "letmein", "10.0.0.1:1234")
	defer res.Body.Close()

	if status != http.StatusOK {
		t.Fatalf("status = %d: %v", status, payload)
	}
	var cookie *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" {
		t.Fatal("no session cookie set")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	app := newTestApp(t)
	if err := app.users.SetPassword("admin", "letmein", "admin"); err != nil {
		t.Fatal(err)
	}

	status, _, res := login(t, app, "admin", "wrong", "10.0.0.1:1234")
	res.Body.Close()
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestLoginLockoutFlow(t *testing.T) {
	app := newTestApp(t)
	if err := app.users.SetPassword("admin", "letmein", "admin"); err != nil {
		t.Fatal(err)
	}

	// Four failures stay 401.
	for i := 1; i <= 4; i++ {
		status, _, res := login(t, app, "admin", "wrong", "10.0.0.9:1234")
		res.Body.Close()
		if status != http.StatusUnauthorized {
			t.Fatalf("failure %d: status = %d, want 401", i, status)
		}
	}

	// The fifth trips the lockout.
	status, payload, res := login(t, app, "admin", "wrong", "10.0.0.9:1234")
	res.Body.Close()
	if status != http.StatusTooManyRequests {
		t.Fatalf("5th failure: status = %d, want 429", status)
	}
	if retry, ok := payload["retry_after"].(float64); !ok || retry <= 0 {
		t.Errorf("retry_after = %v", payload["retry_after"])
	}

	// Correct credentials are still rejected while locked.
	status, _, res = login(t, app, "admin", "letmein", "10.0.0.9:1234")
	res.Body.Close()
	if status != http.StatusTooManyRequests {
		t.Errorf("locked client with valid password: status = %d, want 429", status)
	}

	// A different client is unaffected.
	status, _, res = login(t, app, "admin", "letmein", "10.0.0.10:1234")
	res.Body.Close()
	if status != http.StatusOK {
		t.Errorf("other client: status = %d, want 200", status)
	}
}

func TestLoginSuccessClearsFailures(t *testing.T) {
	app := newTestApp(t)
	if err := app.users.SetPassword("admin", "letmein", "admin"); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		_, _, res := login(t, app, "admin", "wrong", "10.0.0.5:1234")
		res.Body.Close()
	}
	status, _, res := login(t, app, "admin", "letmein", "10.0.0.5:1234")
	res.Body.Close()
	if status != http.StatusOK {
		t.Fatalf("login after 3 failures: status = %d", status)
	}

	// The earlier failures no longer count.
	for i := 1; i <= 4; i++ {
		status, _, res := login(t, app, "admin", "wrong", "10.0.0.5:1234")
		res.Body.Close()
		if status != http.StatusUnauthorized {
			t.Fatalf("failure %d after reset: status = %d, want 401", i, status)
		}
	}
}
