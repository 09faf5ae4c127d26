package identity

import (
	"errors"
	"os/user"
	"testing"
)

func fakeResolver(env map[string]string, records map[string]*user.User) *SystemResolver {
	return &SystemResolver{
		Getenv: func(key string) string { return env[key] },
		Lookup: func(username string) (*user.User, error) {
			if record, ok := records[username]; ok {
				return record, nil
			}
			return nil, user.UnknownUserError(username)
		},
		Current: func() (*user.User, error) {
			return &user.User{Username: "fallback", Uid: "1002", Gid: "1002", HomeDir: "/home/fallback"}, nil
		},
		HomeDir: func() (string, error) { return "/home/me", nil },
	}
}

func TestResolvePrefersSudoUser(t *testing.T) {
	resolver := fakeResolver(
		map[string]string{"SUDO_USER": "alice", "USER": "root"},
		map[string]*user.User{"alice": {Username: "alice", Uid: "1000", Gid: "1000", HomeDir: "/home/alice"}},
	)

	id, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id.Username != "alice" {
		t.Fatalf("expected alice, got %q", id.Username)
	}
	if !id.Elevated {
		t.Fatal("expected elevated identity under SUDO_USER")
	}
	if id.Home != "/home/alice" || id.UID != 1000 || id.GID != 1000 {
		t.Fatalf("unexpected identity: %#v", id)
	}
}

func TestResolveFallsBackToUserEnv(t *testing.T) {
	resolver := fakeResolver(
		map[string]string{"USER": "bob"},
		map[string]*user.User{"bob": {Username: "bob", Uid: "1001", Gid: "1001", HomeDir: "/home/bob"}},
	)

	id, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id.Username != "bob" || id.Elevated {
		t.Fatalf("unexpected identity: %#v", id)
	}
}

func TestResolveFallsBackToProcessOwner(t *testing.T) {
	resolver := fakeResolver(map[string]string{}, map[string]*user.User{
		"fallback": {Username: "fallback", Uid: "1002", Gid: "1002", HomeDir: "/home/fallback"},
	})

	id, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id.Username != "fallback" || id.Home != "/home/fallback" {
		t.Fatalf("unexpected identity: %#v", id)
	}
}

func TestResolveLookupFailureUsesHomeDir(t *testing.T) {
	resolver := fakeResolver(map[string]string{"SUDO_USER": "ghost"}, nil)

	id, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id.Home != "/home/me" {
		t.Fatalf("expected home fallback, got %q", id.Home)
	}
	if id.Username != "ghost" || !id.Elevated {
		t.Fatalf("unexpected identity: %#v", id)
	}
}

func TestResolveCurrentUserError(t *testing.T) {
	resolver := fakeResolver(map[string]string{}, nil)
	resolver.Current = func() (*user.User, error) { return nil, errors.New("no user database") }

	if _, err := resolver.Resolve(); err == nil {
		t.Fatal("expected error when no identity source is available")
	}
}
