package gh

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"ghp/internal/errors"
	"ghp/internal/logger"
)

// Project discovery backs the setup wizard: it lists an owner's projects and
// caches the result so re-running setup doesn't hammer the API.

const discoveryCacheTTL = 1 * time.Hour

type discoveryEntry struct {
	Projects  []Project `json:"projects"`
	Timestamp time.Time `json:"timestamp"`
}

type discoveryCache map[string]discoveryEntry

// DiscoverProjects lists an owner's projects with a short-lived file cache
func (c *Client) DiscoverProjects(ctx context.Context, owner string) ([]Project, error) {
	cacheFile := discoveryCachePath()

	if projects, ok := loadDiscoveryCache(cacheFile, owner); ok {
		logger.GH("discovery cache hit for %s (%d projects)", owner, len(projects))
		return projects, nil
	}

	projects, err := c.ListProjects(ctx, owner)
	if err != nil {
		return nil, errors.NewDiscoveryError(owner, err)
	}

	saveDiscoveryCache(cacheFile, owner, projects)
	return projects, nil
}

// RankProjects orders discovery results for presentation: open projects
// before closed ones, each group sorted by title.
func RankProjects(projects []Project) []Project {
	ranked := make([]Project, len(projects))
	copy(ranked, projects)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Closed != ranked[j].Closed {
			return !ranked[i].Closed
		}
		return ranked[i].Title < ranked[j].Title
	})
	return ranked
}

func discoveryCachePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "ghp", "projects_cache.json")
}

func loadDiscoveryCache(path, owner string) ([]Project, bool) {
	if path == "" {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var cache discoveryCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, false
	}

	entry, ok := cache[owner]
	if !ok {
		return nil, false
	}
	if time.Since(entry.Timestamp) > discoveryCacheTTL {
		return nil, false
	}
	return entry.Projects, true
}

func saveDiscoveryCache(path, owner string, projects []Project) {
	if path == "" {
		return
	}

	cache := discoveryCache{}
	if data, err := os.ReadFile(path); err == nil {
		// Best effort: keep other owners' entries if the file parses
		_ = json.Unmarshal(data, &cache)
	}

	cache[owner] = discoveryEntry{
		Projects:  projects,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(cache)
	if err != nil {
		return
	}

	os.MkdirAll(filepath.Dir(path), 0755)
	os.WriteFile(path, data, 0644)
}
