// Package mailmap maps submission usernames to notification addresses. The
// map is a small YAML document, usually shared on the submit host, with a
// distinguished default entry for users it does not know.
package mailmap

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the cluster keeps the shared notification map.
const DefaultPath = "/mnt/config/scripts/mail_map.yaml"

// Runner is the slice of the shell needed to read the map from the submit
// host.
type Runner interface {
	ExecuteBytes(ctx context.Context, command string, input []byte) (int, []byte, error)
}

// Map holds the username to address entries plus the default address used
// for unknown users.
type Map struct {
	Default string            `yaml:"default,omitempty"`
	Users   map[string]string `yaml:"users"`
}

func Parse(data []byte) (*Map, error) {
	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Users == nil {
		m.Users = make(map[string]string)
	}
	return &m, nil
}

func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Fetch reads the map through the shell, so it works whether the map lives
// locally or on the submit host.
func Fetch(ctx context.Context, runner Runner, path string) (*Map, error) {
	code, out, err := runner.ExecuteBytes(ctx, "cat "+path, nil)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return nil, fmt.Errorf("reading %s exited with %d", path, code)
	}
	return Parse(out)
}

// Lookup returns the address for user, falling back to the default entry
// when the user is unknown.
func (m *Map) Lookup(user string) (string, bool) {
	if addr, ok := m.Users[user]; ok {
		return addr, true
	}
	if m.Default != "" {
		return m.Default, true
	}
	return "", false
}

func (m *Map) Set(user, address string) {
	if m.Users == nil {
		m.Users = make(map[string]string)
	}
	m.Users[user] = address
}

func (m *Map) Delete(user string) {
	delete(m.Users, user)
}

func (m *Map) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
