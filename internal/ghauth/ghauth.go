// Package ghauth looks up GitHub account details through the gh CLI so a
// profile can be prefilled from an account instead of typed by hand.
package ghauth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	gh "github.com/cli/go-gh/v2"
)

// Auth is the interface for gh lookups.
// Use the interface for testability; the default implementation shells out to gh.
type Auth interface {
	// AuthenticatedUsers returns a list of authenticated gh usernames.
	AuthenticatedUsers() ([]string, error)
	// UserInfo returns the display name and best email for username.
	UserInfo(username string) (*UserInfo, error)
}

// execFn is the function signature for executing gh commands.
type execFn func(args ...string) (bytes.Buffer, bytes.Buffer, error)

// GHAuth is the default implementation using the gh CLI.
type GHAuth struct {
	exec execFn
}

// NewGHAuth returns a new default Auth implementation.
func NewGHAuth() *GHAuth {
	return &GHAuth{exec: ghExec}
}

// ghExec wraps gh.Exec.
func ghExec(args ...string) (bytes.Buffer, bytes.Buffer, error) {
	return gh.Exec(args...)
}

// UserInfo holds the identity fields of a GitHub user.
type UserInfo struct {
	Login string
	Name  string
	Email string
}

type apiUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type apiEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// AuthenticatedUsers returns the list of authenticated users via `gh auth status`.
func (g *GHAuth) AuthenticatedUsers() ([]string, error) {
	stdout, stderr, err := g.exec("auth", "status", "-a")
	if err != nil {
		// gh auth status exits 1 if not logged in; check stderr.
		output := stderr.String()
		if strings.Contains(output, "not logged in") {
			return nil, nil
		}
		return nil, fmt.Errorf("gh auth status: %s: %w", strings.TrimSpace(output), err)
	}

	return parseAuthUsers(stdout.String() + stderr.String()), nil
}

// UserInfo fetches the public profile of username. When username is the
// active gh account, the primary email from `user/emails` takes precedence;
// otherwise a missing public email falls back to the GitHub noreply address.
func (g *GHAuth) UserInfo(username string) (*UserInfo, error) {
	stdout, stderr, err := g.exec("api", "users/"+username)
	if err != nil {
		return nil, fmt.Errorf("gh api users/%s: %s: %w", username, strings.TrimSpace(stderr.String()), err)
	}
	var u apiUser
	if err := json.Unmarshal(stdout.Bytes(), &u); err != nil {
		return nil, fmt.Errorf("decoding gh api users/%s: %w", username, err)
	}

	info := &UserInfo{Login: u.Login, Name: u.Name, Email: u.Email}
	if info.Login == "" {
		info.Login = username
	}

	if active, err := g.activeLogin(); err == nil && strings.EqualFold(active, info.Login) {
		if email, err := g.primaryEmail(); err == nil && email != "" {
			info.Email = email
		}
	}

	if info.Email == "" && u.ID != 0 {
		info.Email = noreplyEmail(u.ID, info.Login)
	}
	return info, nil
}

// activeLogin returns the login of the account gh currently uses.
func (g *GHAuth) activeLogin() (string, error) {
	stdout, stderr, err := g.exec("api", "user", "--jq", ".login")
	if err != nil {
		return "", fmt.Errorf("gh api user: %s: %w", strings.TrimSpace(stderr.String()), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// primaryEmail returns the active account's primary email. Requires the
// user:email scope; callers treat failure as "unknown".
func (g *GHAuth) primaryEmail() (string, error) {
	stdout, stderr, err := g.exec("api", "user/emails")
	if err != nil {
		return "", fmt.Errorf("gh api user/emails: %s: %w", strings.TrimSpace(stderr.String()), err)
	}
	var emails []apiEmail
	if err := json.Unmarshal(stdout.Bytes(), &emails); err != nil {
		return "", fmt.Errorf("decoding gh api user/emails: %w", err)
	}
	return pickPrimaryEmail(emails), nil
}

func pickPrimaryEmail(emails []apiEmail) string {
	for _, e := range emails {
		if e.Primary {
			return e.Email
		}
	}
	return ""
}

func noreplyEmail(id int64, login string) string {
	return fmt.Sprintf("%d+%s@users.noreply.github.com", id, login)
}

// parseAuthUsers extracts usernames from gh auth status output.
// The format varies across gh versions; we look for "account <user>" patterns.
func parseAuthUsers(output string) []string {
	var users []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		for i, f := range fields {
			if f == "account" && i+1 < len(fields) {
				user := strings.TrimRight(fields[i+1], "()")
				if !seen[user] {
					seen[user] = true
					users = append(users, user)
				}
			}
		}
	}
	return users
}
