// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth handles admin credentials and login throttling. Users
// live in a single users.json file under the data directory.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminPassword seeds users.json on first run. Deployments are
// expected to change it immediately.
const DefaultAdminPassword = "admin123"

// User is one entry in users.json, keyed by username.
type User struct {
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
}

// UserStore reads and writes users.json. File access is serialized by
// a single lock.
type UserStore struct {
	mu   sync.Mutex
	path string
}

// NewUserStore creates a UserStore backed by path. The file is created
// with a default admin user on first load.
func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// Authenticate verifies username/password against users.json.
func (s *UserStore) Authenticate(username, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return false, err
	}
	u, ok := users[username]
	if !ok {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil, nil
}

// SetPassword rehashes and stores the password for username, creating
// the user when absent.
func (s *UserStore) SetPassword(username, password, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if role == "" {
		if existing, ok := users[username]; ok {
			role = existing.Role
		} else {
			role = "admin"
		}
	}
	users[username] = User{PasswordHash: string(hash), Role: role}
	return s.save(users)
}

// load reads users.json, seeding it with the default admin account
// when the file does not exist yet.
func (s *UserStore) load() (map[string]User, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		hash, herr := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
		if herr != nil {
			return nil, fmt.Errorf("hash default password: %w", herr)
		}
		users := map[string]User{
			"admin": {PasswordHash: string(hash), Role: "admin"},
		}
		if err := s.save(users); err != nil {
			return nil, err
		}
		return users, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}

	var users map[string]User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse users file: %w", err)
	}
	return users, nil
}

func (s *UserStore) save(users map[string]User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write users file: %w", err)
	}
	return nil
}
