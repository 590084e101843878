// Package store persists git identity profiles and the selected-profile
// marker in a single JSON document.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned when a named profile does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when adding a profile whose name is taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidData is returned when the backing file cannot be parsed.
	ErrInvalidData = errors.New("invalid data")
	// ErrInvalidProfile is returned when a profile is missing a required field.
	ErrInvalidProfile = errors.New("invalid profile")
)

// CorruptError reports a backing file that exists but cannot be parsed.
// It matches ErrInvalidData under errors.Is.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("parsing %s: %v: %v", e.Path, ErrInvalidData, e.Err)
}

// Is reports whether target is ErrInvalidData.
func (e *CorruptError) Is(target error) bool {
	return target == ErrInvalidData
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// Profile is a named git identity.
type Profile struct {
	Name  string `json:"profile_name" yaml:"profile_name"`
	User  string `json:"user_name" yaml:"user_name"`
	Email string `json:"user_email" yaml:"user_email"`
}

// Validate checks that every field is present. Formats are not checked.
func (p Profile) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: profile name is required", ErrInvalidProfile)
	case strings.TrimSpace(p.User) == "":
		return fmt.Errorf("%w: user name is required for %q", ErrInvalidProfile, p.Name)
	case strings.TrimSpace(p.Email) == "":
		return fmt.Errorf("%w: user email is required for %q", ErrInvalidProfile, p.Name)
	}
	return nil
}

// Data is the full persisted document.
type Data struct {
	Profiles []Profile `json:"profiles" yaml:"profiles"`
	Selected string    `json:"selected_profile,omitempty" yaml:"selected_profile,omitempty"`
}

// Find returns the profile with the given name.
func (d *Data) Find(name string) (Profile, bool) {
	for _, p := range d.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// SelectedProfile returns the selected profile, if any. A dangling marker
// (left by a manual edit) reports false.
func (d *Data) SelectedProfile() (Profile, bool) {
	if d.Selected == "" {
		return Profile{}, false
	}
	return d.Find(d.Selected)
}

// Validate reports every problem a manual edit could have introduced:
// blank fields, duplicate names and a selection that matches no profile.
func (d *Data) Validate() []string {
	var errs []string
	seen := make(map[string]bool, len(d.Profiles))
	for i, p := range d.Profiles {
		if err := p.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("profile #%d: %v", i+1, err))
		}
		if seen[p.Name] {
			errs = append(errs, fmt.Sprintf("profile %q is defined more than once", p.Name))
		}
		seen[p.Name] = true
	}
	if d.Selected != "" && !seen[d.Selected] {
		errs = append(errs, fmt.Sprintf("selected profile %q does not exist", d.Selected))
	}
	return errs
}

// Store reads and writes a single JSON file. It holds no state between calls;
// every operation is a fresh load followed by at most one save.
type Store struct {
	path string
}

// New returns a Store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing file. A missing file yields an empty store.
func (s *Store) Load() (*Data, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("store file absent, using empty store", "path", s.path)
			return &Data{Profiles: []Profile{}}, nil
		}
		return nil, fmt.Errorf("reading profiles: %w", err)
	}

	d, err := decode(raw)
	if err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}
	slog.Debug("loaded store", "path", s.path, "profiles", len(d.Profiles), "selected", d.Selected)
	return d, nil
}

// document mirrors Data with a pointer so a missing or null "profiles" key
// can be told apart from an empty list.
type document struct {
	Profiles *[]Profile `json:"profiles"`
	Selected string     `json:"selected_profile"`
}

// decode parses exactly one JSON object of the Data shape. Unknown fields,
// trailing content, a missing profile list and incomplete profiles are
// rejected.
func decode(raw []byte) (*Data, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file")
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected content after document")
	}
	if doc.Profiles == nil {
		return nil, errors.New(`missing "profiles" list`)
	}
	for i, p := range *doc.Profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile #%d: %w", i+1, err)
		}
	}
	return &Data{Profiles: *doc.Profiles, Selected: doc.Selected}, nil
}

// Save replaces the backing file with d, creating parent directories. The
// new content is written beside the file and renamed into place.
func (s *Store) Save(d *Data) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing profiles: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing profiles: %w", err)
	}
	slog.Debug("saved store", "path", s.path, "bytes", len(data))
	return nil
}

// Encode renders d in the on-disk format: indented JSON with a trailing newline.
func Encode(d *Data) ([]byte, error) {
	out := *d
	if out.Profiles == nil {
		out.Profiles = []Profile{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&out); err != nil {
		return nil, fmt.Errorf("marshalling profiles: %w", err)
	}
	return buf.Bytes(), nil
}

// AddProfile appends p and saves. The store is left untouched if p's name
// is already taken.
func (s *Store) AddProfile(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	d, err := s.Load()
	if err != nil {
		return err
	}
	if _, exists := d.Find(p.Name); exists {
		return fmt.Errorf("profile %q %w", p.Name, ErrAlreadyExists)
	}
	d.Profiles = append(d.Profiles, p)
	return s.Save(d)
}

// ListProfiles returns all profiles in insertion order and the selected name.
func (s *Store) ListProfiles() ([]Profile, string, error) {
	d, err := s.Load()
	if err != nil {
		return nil, "", err
	}
	return d.Profiles, d.Selected, nil
}

// SelectProfile marks name as selected and saves, returning the matched profile.
func (s *Store) SelectProfile(name string) (Profile, error) {
	d, err := s.Load()
	if err != nil {
		return Profile{}, err
	}
	p, ok := d.Find(name)
	if !ok {
		return Profile{}, fmt.Errorf("profile %q %w", name, ErrNotFound)
	}
	d.Selected = name
	if err := s.Save(d); err != nil {
		return Profile{}, err
	}
	return p, nil
}
