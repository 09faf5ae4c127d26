package identity

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"
)

// Identity describes the user install paths and service-manager calls are
// scoped to. Under sudo this is the invoking user, not root.
type Identity struct {
	Username string
	UID      int
	GID      int
	Home     string
	// Elevated reports that the process runs with elevated privileges on
	// behalf of Username (SUDO_USER was set).
	Elevated bool
}

// Resolver resolves the real invoking user.
type Resolver interface {
	Resolve() (Identity, error)
}

// SystemResolver resolves the identity from the environment and the user
// database. The lookup functions are variables so tests can substitute fakes
// instead of depending on actual OS user records.
type SystemResolver struct {
	Getenv  func(key string) string
	Lookup  func(username string) (*user.User, error)
	Current func() (*user.User, error)
	HomeDir func() (string, error)
}

// NewResolver returns a resolver backed by the OS environment and user database.
func NewResolver() *SystemResolver {
	return &SystemResolver{
		Getenv:  os.Getenv,
		Lookup:  user.Lookup,
		Current: user.Current,
		HomeDir: os.UserHomeDir,
	}
}

// Resolve determines the real user with a deterministic fallback order:
// SUDO_USER, then USER, then the process owner. Home, UID, and GID come from
// the user database; when the lookup fails the process owner's home is used.
func (r *SystemResolver) Resolve() (Identity, error) {
	elevated := strings.TrimSpace(r.Getenv("SUDO_USER")) != ""

	username := strings.TrimSpace(r.Getenv("SUDO_USER"))
	if username == "" {
		username = strings.TrimSpace(r.Getenv("USER"))
	}
	if username == "" {
		current, err := r.Current()
		if err != nil {
			return Identity{}, fmt.Errorf("resolve current user: %w", err)
		}
		username = current.Username
	}

	record, err := r.Lookup(username)
	if err != nil {
		home, homeErr := r.HomeDir()
		if homeErr != nil {
			return Identity{}, fmt.Errorf("resolve home for %q: %w", username, homeErr)
		}
		return Identity{
			Username: username,
			UID:      os.Getuid(),
			GID:      os.Getgid(),
			Home:     home,
			Elevated: elevated,
		}, nil
	}

	uid, err := strconv.Atoi(record.Uid)
	if err != nil {
		return Identity{}, fmt.Errorf("parse uid for %q: %w", username, err)
	}
	gid, err := strconv.Atoi(record.Gid)
	if err != nil {
		return Identity{}, fmt.Errorf("parse gid for %q: %w", username, err)
	}

	return Identity{
		Username: username,
		UID:      uid,
		GID:      gid,
		Home:     record.HomeDir,
		Elevated: elevated,
	}, nil
}
