package envrepo

import (
	"fmt"
	"strings"

	"github.com/bitrise-io/go-utils/v2/env"
)

type overlayRepository struct {
	values   map[string]string
	fallback env.Repository
}

// NewOverlay returns a repository which reads values first and fallback second.
// Writes only touch values. A nil fallback makes the repository map backed only.
func NewOverlay(values map[string]string, fallback env.Repository) env.Repository {
	copied := make(map[string]string, len(values))
	for key, value := range values {
		copied[key] = value
	}

	return &overlayRepository{
		values:   copied,
		fallback: fallback,
	}
}

// NewMap ...
func NewMap(values map[string]string) env.Repository {
	return NewOverlay(values, nil)
}

func (r *overlayRepository) List() []string {
	seen := map[string]bool{}
	var envs []string
	for key, value := range r.values {
		seen[key] = true
		envs = append(envs, fmt.Sprintf("%s=%s", key, value))
	}

	if r.fallback == nil {
		return envs
	}

	for _, kv := range r.fallback.List() {
		key, _, _ := strings.Cut(kv, "=")
		if !seen[key] {
			envs = append(envs, kv)
		}
	}
	return envs
}

func (r *overlayRepository) Unset(key string) error {
	delete(r.values, key)
	return nil
}

func (r *overlayRepository) Get(key string) string {
	if value, ok := r.values[key]; ok {
		return value
	}
	if r.fallback != nil {
		return r.fallback.Get(key)
	}
	return ""
}

func (r *overlayRepository) Set(key, value string) error {
	r.values[key] = value
	return nil
}
