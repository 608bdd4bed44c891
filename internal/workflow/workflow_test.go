package workflow

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"ghp/internal/gh"
	"ghp/internal/usercfg"
)

// scriptedPrompter answers prompts from a fixed script. A step answering -1
// simulates the user cancelling.
type scriptedPrompter struct {
	selections []int      // consumed by Select, by option label lookup below
	inputs     []string   // consumed by Input
	prompts    []string   // records every prompt message
	optionSets [][]string // records the options offered at each Select
}

func (p *scriptedPrompter) Select(message string, options []string, descriptions []string) (int, error) {
	p.prompts = append(p.prompts, message)
	p.optionSets = append(p.optionSets, options)
	if len(p.selections) == 0 {
		return 0, fmt.Errorf("unscripted Select: %s", message)
	}
	answer := p.selections[0]
	p.selections = p.selections[1:]
	if answer == -1 {
		return 0, ErrCancelled
	}
	if answer >= len(options) {
		return 0, fmt.Errorf("scripted answer %d out of range for %q (%d options)", answer, message, len(options))
	}
	return answer, nil
}

func (p *scriptedPrompter) Input(message string, defaultValue string) (string, error) {
	p.prompts = append(p.prompts, message)
	if len(p.inputs) == 0 {
		return "", fmt.Errorf("unscripted Input: %s", message)
	}
	answer := p.inputs[0]
	p.inputs = p.inputs[1:]
	if answer == "\x00cancel" {
		return "", ErrCancelled
	}
	return answer, nil
}

// recordingGateway serves fixed data and records mutations
type recordingGateway struct {
	projects  map[string][]gh.Project
	items     []gh.Item
	updateErr error

	mutations []string // "owner/number/itemID/status"
}

func (g *recordingGateway) ListProjects(ctx context.Context, owner string) ([]gh.Project, error) {
	projects, ok := g.projects[owner]
	if !ok {
		return nil, fmt.Errorf("no such owner %q", owner)
	}
	return projects, nil
}

func (g *recordingGateway) ListItems(ctx context.Context, owner string, number int) ([]gh.Item, error) {
	return g.items, nil
}

func (g *recordingGateway) UpdateItemStatus(ctx context.Context, owner string, number int, itemID, newStatus string) error {
	g.mutations = append(g.mutations, fmt.Sprintf("%s/%d/%s/%s", owner, number, itemID, newStatus))
	return g.updateErr
}

func testGateway() *recordingGateway {
	return &recordingGateway{
		projects: map[string][]gh.Project{
			"acme": {
				{Number: 3, ID: "PVT_3", Title: "Roadmap"},
				{Number: 7, ID: "PVT_7", Title: "Icebox"},
			},
		},
		items: []gh.Item{
			{ID: "I_1", Title: "Fix login", Status: "Todo", Content: &gh.ItemContent{Type: "Issue", Number: 12, Title: "Fix login", Repository: "acme/web"}},
			{ID: "I_2", Title: "Ship release", Status: "Done", Content: &gh.ItemContent{Type: "Issue", Number: 30, Title: "Ship release", Repository: "acme/web"}},
			{ID: "I_3", Title: "Scratch note", Status: ""},
		},
	}
}

func testOptions() Options {
	return Options{
		Organizations:   []string{"acme"},
		ShowOwnerPicker: true,
		StatusOptions:   []string{"Todo", "In Progress", "Done"},
	}
}

func TestRun_HappyPath(t *testing.T) {
	gateway := testGateway()
	prompter := &scriptedPrompter{
		// owner "acme", project "Icebox" (sorted first), item "Fix login",
		// status "In Progress"
		selections: []int{0, 1, 0, 1},
	}
	var out bytes.Buffer

	session := NewSession(gateway, prompter, testOptions(), &out)
	state, err := session.Run(context.Background())

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if state != Done {
		t.Errorf("Expected Done, got %v", state)
	}
	if len(gateway.mutations) != 1 {
		t.Fatalf("Expected 1 mutation, got %v", gateway.mutations)
	}
	// Projects are presented title-sorted: Icebox, Roadmap. Index 1 = Roadmap.
	if gateway.mutations[0] != "acme/3/I_1/In Progress" {
		t.Errorf("Unexpected mutation: %s", gateway.mutations[0])
	}
	if !strings.Contains(out.String(), "Moved") {
		t.Errorf("Expected confirmation message, got: %s", out.String())
	}
}

func TestRun_CancellationHasNoSideEffects(t *testing.T) {
	// Cancel at every stage in turn; no stage may mutate anything
	scripts := [][]int{
		{-1},             // cancel at owner
		{0, -1},          // cancel at project
		{0, 1, -1},       // cancel at item
		{0, 1, 0, -1},    // cancel at status
	}

	for i, script := range scripts {
		gateway := testGateway()
		prompter := &scriptedPrompter{selections: script}
		var out bytes.Buffer

		session := NewSession(gateway, prompter, testOptions(), &out)
		state, err := session.Run(context.Background())

		if err != nil {
			t.Errorf("Script %d: expected nil error on cancel, got: %v", i, err)
		}
		if state != Cancelled {
			t.Errorf("Script %d: expected Cancelled, got %v", i, state)
		}
		if len(gateway.mutations) != 0 {
			t.Errorf("Script %d: cancellation caused mutations: %v", i, gateway.mutations)
		}
		if !strings.Contains(out.String(), "Nothing was changed") {
			t.Errorf("Script %d: expected cancellation notice, got: %s", i, out.String())
		}
	}
}

func TestRun_MutationFailureReportsAndFinishes(t *testing.T) {
	gateway := testGateway()
	gateway.updateErr = fmt.Errorf("gh failed: boom")
	prompter := &scriptedPrompter{selections: []int{0, 1, 0, 2}}
	var out bytes.Buffer

	session := NewSession(gateway, prompter, testOptions(), &out)
	state, err := session.Run(context.Background())

	if err == nil {
		t.Fatal("Expected error from failed mutation")
	}
	if state != Done {
		t.Errorf("Expected Done even on failure, got %v", state)
	}
	if !strings.Contains(out.String(), "Failed to update") {
		t.Errorf("Expected failure message, got: %s", out.String())
	}
}

func TestRun_NoConfigFallsBackToFreeTextOwner(t *testing.T) {
	gateway := testGateway()
	prompter := &scriptedPrompter{
		inputs:     []string{"acme"},
		selections: []int{1, 0, 0},
	}
	var out bytes.Buffer

	opts := Options{ShowOwnerPicker: true, StatusOptions: []string{"Todo", "Done"}}
	session := NewSession(gateway, prompter, opts, &out)
	state, err := session.Run(context.Background())

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if state != Done {
		t.Errorf("Expected Done, got %v", state)
	}
	if len(prompter.prompts) == 0 || !strings.Contains(prompter.prompts[0], "owner") {
		t.Errorf("Expected a free-text owner prompt first, got: %v", prompter.prompts)
	}
}

func TestRun_DefaultOwnerSkipsPicker(t *testing.T) {
	gateway := testGateway()
	prompter := &scriptedPrompter{selections: []int{1, 0, 0}}
	var out bytes.Buffer

	opts := testOptions()
	opts.DefaultOwner = "acme"
	opts.ShowOwnerPicker = false

	session := NewSession(gateway, prompter, opts, &out)
	if _, err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, prompt := range prompter.prompts {
		if strings.Contains(prompt, "owner") {
			t.Errorf("Owner prompt shown despite disabled picker: %q", prompt)
		}
	}
}

func TestRun_WorkspaceShortcutResolvesProject(t *testing.T) {
	gateway := testGateway()
	prompter := &scriptedPrompter{
		// shortcut "Roadmap (acme)", then item and status
		selections: []int{0, 0, 2},
	}
	var out bytes.Buffer

	opts := testOptions()
	opts.Organizations = nil
	opts.WorkspaceProjects = []usercfg.WorkspaceProject{
		{Name: "Roadmap", Owner: "acme", Description: "Quarterly roadmap"},
	}

	session := NewSession(gateway, prompter, opts, &out)
	state, err := session.Run(context.Background())

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if state != Done {
		t.Errorf("Expected Done, got %v", state)
	}
	if len(gateway.mutations) != 1 || !strings.HasPrefix(gateway.mutations[0], "acme/3/") {
		t.Errorf("Expected shortcut to target Roadmap (#3), got: %v", gateway.mutations)
	}
	for _, prompt := range prompter.prompts {
		if strings.Contains(prompt, "Select a project") {
			t.Error("Project picker shown despite workspace shortcut")
		}
	}
}

func TestRun_StaleShortcutFallsBackToPicker(t *testing.T) {
	gateway := testGateway()
	prompter := &scriptedPrompter{
		// shortcut, then project picker fallback, item, status
		selections: []int{0, 1, 0, 0},
	}
	var out bytes.Buffer

	opts := testOptions()
	opts.Organizations = nil
	opts.WorkspaceProjects = []usercfg.WorkspaceProject{
		{Name: "Deleted Board", Owner: "acme"},
	}

	session := NewSession(gateway, prompter, opts, &out)
	state, err := session.Run(context.Background())

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if state != Done {
		t.Errorf("Expected Done, got %v", state)
	}
	if !strings.Contains(out.String(), "no longer exists") {
		t.Errorf("Expected stale-shortcut notice, got: %s", out.String())
	}
}

func TestRun_ItemsOrderedByStatus(t *testing.T) {
	gateway := testGateway()
	gateway.items = []gh.Item{
		{ID: "I_done", Title: "done item", Status: "Done", Content: &gh.ItemContent{Type: "Issue", Number: 1, Title: "done item"}},
		{ID: "I_none", Title: "no status item", Status: "", Content: &gh.ItemContent{Type: "Issue", Number: 2, Title: "no status item"}},
		{ID: "I_todo", Title: "todo item", Status: "Todo", Content: &gh.ItemContent{Type: "Issue", Number: 3, Title: "todo item"}},
	}
	// Pick the first presented item, which must be the Todo one
	prompter := &scriptedPrompter{selections: []int{0, 1, 0, 0}}
	var out bytes.Buffer

	session := NewSession(gateway, prompter, testOptions(), &out)
	if _, err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(gateway.mutations) != 1 || !strings.Contains(gateway.mutations[0], "I_todo") {
		t.Errorf("Expected first item to be the Todo one, got: %v", gateway.mutations)
	}
}

func TestRun_ListProjectsFailurePropagates(t *testing.T) {
	gateway := testGateway()
	prompter := &scriptedPrompter{
		inputs: []string{"ghost"},
	}
	var out bytes.Buffer

	opts := Options{ShowOwnerPicker: true, StatusOptions: []string{"Todo"}}
	session := NewSession(gateway, prompter, opts, &out)
	state, err := session.Run(context.Background())

	if err == nil {
		t.Fatal("Expected error for unknown owner")
	}
	if state != ChoosingProject {
		t.Errorf("Expected failure during project selection, got %v", state)
	}
	if len(gateway.mutations) != 0 {
		t.Errorf("Failure caused mutations: %v", gateway.mutations)
	}
	if !strings.Contains(out.String(), "no such owner") {
		t.Errorf("Expected the read failure reported to the user, got: %s", out.String())
	}
}

func TestRun_DraftItemsAreNotOffered(t *testing.T) {
	gateway := testGateway()
	gateway.items = []gh.Item{
		{ID: "DRAFT_1", Title: "Scratch note", Status: "Todo"},
		{ID: "I_1", Title: "Fix login", Status: "Todo", Content: &gh.ItemContent{Type: "Issue", Number: 12, Title: "Fix login"}},
	}
	// First presented item must be the linked one, not the draft
	prompter := &scriptedPrompter{selections: []int{0, 1, 0, 2}}
	var out bytes.Buffer

	session := NewSession(gateway, prompter, testOptions(), &out)
	state, err := session.Run(context.Background())

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if state != Done {
		t.Errorf("Expected Done, got %v", state)
	}
	if len(gateway.mutations) != 1 || !strings.Contains(gateway.mutations[0], "I_1") {
		t.Errorf("Expected the linked item mutated, got: %v", gateway.mutations)
	}
	for _, m := range gateway.mutations {
		if strings.Contains(m, "DRAFT_1") {
			t.Errorf("Draft item was mutated: %v", gateway.mutations)
		}
	}
	// The item picker is the third Select; drafts must not appear in it
	itemOptions := prompter.optionSets[2]
	for _, opt := range itemOptions {
		if strings.Contains(opt, "Scratch note") {
			t.Errorf("Draft item offered in the picker: %v", itemOptions)
		}
	}
	if len(itemOptions) != 1 || itemOptions[0] != "#12 - Fix login" {
		t.Errorf("Expected only the numbered linked item, got: %v", itemOptions)
	}
}

func TestRun_NoProjectsEndsCancelled(t *testing.T) {
	gateway := testGateway()
	gateway.projects["acme"] = nil
	prompter := &scriptedPrompter{selections: []int{0}}
	var out bytes.Buffer

	session := NewSession(gateway, prompter, testOptions(), &out)
	state, err := session.Run(context.Background())

	if err != nil {
		t.Fatalf("Expected nil error for an empty project list, got: %v", err)
	}
	if state != Cancelled {
		t.Errorf("Expected Cancelled, got %v", state)
	}
	if !strings.Contains(out.String(), "No projects found for acme") {
		t.Errorf("Expected an informational message, got: %s", out.String())
	}
	if len(gateway.mutations) != 0 {
		t.Errorf("Empty project list caused mutations: %v", gateway.mutations)
	}
}

func TestRun_OnlyDraftItemsEndsCancelled(t *testing.T) {
	gateway := testGateway()
	gateway.items = []gh.Item{
		{ID: "DRAFT_1", Title: "Scratch note", Status: "Todo"},
		{ID: "DRAFT_2", Title: "Another note", Status: ""},
	}
	prompter := &scriptedPrompter{selections: []int{0, 1}}
	var out bytes.Buffer

	session := NewSession(gateway, prompter, testOptions(), &out)
	state, err := session.Run(context.Background())

	if err != nil {
		t.Fatalf("Expected nil error when only drafts exist, got: %v", err)
	}
	if state != Cancelled {
		t.Errorf("Expected Cancelled, got %v", state)
	}
	if !strings.Contains(out.String(), "no items with a linked issue") {
		t.Errorf("Expected an informational message, got: %s", out.String())
	}
	if len(gateway.mutations) != 0 {
		t.Errorf("Draft-only list caused mutations: %v", gateway.mutations)
	}
}
