package gh

import (
	"context"
	"fmt"
	"testing"
)

func TestDiscoverProjects_CachesResults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	client, fake := newTestClient()
	fake.responses["project list"] = `{"projects":[
		{"number":1,"id":"PVT_1","title":"Roadmap"}
	]}`

	projects, err := client.DiscoverProjects(context.Background(), "acme")
	if err != nil {
		t.Fatalf("DiscoverProjects failed: %v", err)
	}
	if len(projects) != 1 || projects[0].Title != "Roadmap" {
		t.Fatalf("Unexpected projects: %+v", projects)
	}

	// Second call is served from the cache, not gh
	fake.errors["project list"] = fmt.Errorf("gh failed: should not be called")
	delete(fake.responses, "project list")

	cached, err := client.DiscoverProjects(context.Background(), "acme")
	if err != nil {
		t.Fatalf("Cached DiscoverProjects failed: %v", err)
	}
	if len(cached) != 1 || cached[0].Title != "Roadmap" {
		t.Errorf("Unexpected cached projects: %+v", cached)
	}
}

func TestDiscoverProjects_CacheIsPerOwner(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	client, fake := newTestClient()
	fake.responses["--owner acme"] = `{"projects":[{"number":1,"title":"Roadmap"}]}`
	fake.responses["--owner beta"] = `{"projects":[{"number":2,"title":"Icebox"}]}`

	if _, err := client.DiscoverProjects(context.Background(), "acme"); err != nil {
		t.Fatalf("DiscoverProjects(acme) failed: %v", err)
	}
	projects, err := client.DiscoverProjects(context.Background(), "beta")
	if err != nil {
		t.Fatalf("DiscoverProjects(beta) failed: %v", err)
	}
	if len(projects) != 1 || projects[0].Title != "Icebox" {
		t.Errorf("Expected beta's own projects, got %+v", projects)
	}
}

func TestDiscoverProjects_FailurePropagates(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	client, fake := newTestClient()
	fake.errors["project list"] = fmt.Errorf("gh failed: Could not resolve to an Owner")

	_, err := client.DiscoverProjects(context.Background(), "nobody")
	if err == nil {
		t.Fatal("Expected error when listing fails with a cold cache")
	}
}
