// Package workflow drives the interactive status-update flow: pick an owner,
// a project, an item, and a new status, then apply the change. The flow is a
// small state machine so that cancellation and failure have exactly one
// meaning at every step.
package workflow

import (
	"context"
	"fmt"
	"io"
	"sort"

	"ghp/internal/board"
	"ghp/internal/gh"
	"ghp/internal/logger"
	"ghp/internal/usercfg"
)

// State identifies where the flow currently is
type State int

const (
	ChoosingOwner State = iota
	ChoosingProject
	ChoosingIssue
	ChoosingStatus
	Mutating
	Done
	Cancelled
)

func (s State) String() string {
	switch s {
	case ChoosingOwner:
		return "choosing_owner"
	case ChoosingProject:
		return "choosing_project"
	case ChoosingIssue:
		return "choosing_issue"
	case ChoosingStatus:
		return "choosing_status"
	case Mutating:
		return "mutating"
	case Done:
		return "done"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ErrCancelled is returned by a Prompter when the user aborts a prompt.
// A cancelled flow has no side effects.
var ErrCancelled = fmt.Errorf("cancelled")

// errNoCandidates signals an empty choice set. It is informational, not a
// failure: the step reports it to the user and the flow ends in Cancelled.
var errNoCandidates = fmt.Errorf("nothing to choose from")

// Prompter asks the user to pick or type something
type Prompter interface {
	Select(message string, options []string, descriptions []string) (int, error)
	Input(message string, defaultValue string) (string, error)
}

// Gateway is the slice of the gh client the flow needs
type Gateway interface {
	ListProjects(ctx context.Context, owner string) ([]gh.Project, error)
	ListItems(ctx context.Context, owner string, number int) ([]gh.Item, error)
	UpdateItemStatus(ctx context.Context, owner string, number int, itemID, newStatus string) error
}

// Options carries the configuration slice that shapes the flow
type Options struct {
	Organizations     []string
	DefaultOwner      string
	DefaultProject    string
	ShowOwnerPicker   bool
	StatusOptions     []string
	WorkspaceProjects []usercfg.WorkspaceProject
}

// Session is one run of the flow
type Session struct {
	gateway  Gateway
	prompter Prompter
	opts     Options
	out      io.Writer

	owner        string
	projectTitle string // pre-resolved title from a workspace shortcut
	project      gh.Project
	item         gh.Item
	status       string
}

// NewSession builds a flow over the given gateway and prompter. Progress and
// result messages go to out.
func NewSession(gateway Gateway, prompter Prompter, opts Options, out io.Writer) *Session {
	return &Session{
		gateway:  gateway,
		prompter: prompter,
		opts:     opts,
		out:      out,
	}
}

// Run walks the flow to completion. It returns Cancelled with a nil error
// when the user aborts any prompt or a step has nothing to offer, in which
// case nothing has been changed. A failed mutation returns Done alongside the
// error: the flow finished, the change did not apply.
func (s *Session) Run(ctx context.Context) (State, error) {
	steps := []func(context.Context) error{
		s.chooseOwner,
		s.chooseProject,
		s.chooseItem,
		s.chooseStatus,
	}
	states := []State{ChoosingOwner, ChoosingProject, ChoosingIssue, ChoosingStatus}

	for i, step := range steps {
		logger.Debug("workflow state: %s", states[i])
		if err := step(ctx); err != nil {
			if err == ErrCancelled {
				fmt.Fprintln(s.out, "Cancelled. Nothing was changed.")
				return Cancelled, nil
			}
			if err == errNoCandidates {
				// The step already told the user what was missing
				return Cancelled, nil
			}
			fmt.Fprintln(s.out, err)
			return states[i], err
		}
	}

	logger.Debug("workflow state: %s", Mutating)
	if err := s.gateway.UpdateItemStatus(ctx, s.owner, s.project.Number, s.item.ID, s.status); err != nil {
		fmt.Fprintf(s.out, "Failed to update %q: %v\n", s.item.DisplayTitle(), err)
		return Done, err
	}

	fmt.Fprintf(s.out, "✓ Moved %q to %s\n", s.item.DisplayTitle(), s.status)
	return Done, nil
}

// ownerChoice is one entry of the owner picker
type ownerChoice struct {
	label        string
	description  string
	owner        string
	projectTitle string // non-empty for workspace shortcuts
}

func (s *Session) chooseOwner(ctx context.Context) error {
	// A configured default owner with the picker disabled skips the step
	if s.opts.DefaultOwner != "" && !s.opts.ShowOwnerPicker {
		s.owner = s.opts.DefaultOwner
		return nil
	}

	var choices []ownerChoice
	for _, wp := range s.opts.WorkspaceProjects {
		desc := wp.Description
		if desc == "" {
			desc = "workspace project"
		}
		choices = append(choices, ownerChoice{
			label:        fmt.Sprintf("%s (%s)", wp.Name, wp.Owner),
			description:  desc,
			owner:        wp.Owner,
			projectTitle: wp.Name,
		})
	}
	for _, org := range s.opts.Organizations {
		choices = append(choices, ownerChoice{label: org, description: "organization", owner: org})
	}
	if s.opts.DefaultOwner != "" && !containsOwner(choices, s.opts.DefaultOwner) {
		choices = append(choices, ownerChoice{label: s.opts.DefaultOwner, description: "default owner", owner: s.opts.DefaultOwner})
	}

	// Nothing configured: fall back to free-text entry
	if len(choices) == 0 {
		owner, err := s.prompter.Input("GitHub owner (user or organization):", "")
		if err != nil {
			return err
		}
		if owner == "" {
			return ErrCancelled
		}
		s.owner = owner
		return nil
	}

	labels := make([]string, len(choices)+1)
	descriptions := make([]string, len(choices)+1)
	for i, c := range choices {
		labels[i] = c.label
		descriptions[i] = c.description
	}
	labels[len(choices)] = "Other..."
	descriptions[len(choices)] = "enter an owner manually"

	idx, err := s.prompter.Select("Select an owner:", labels, descriptions)
	if err != nil {
		return err
	}
	if idx == len(choices) {
		owner, err := s.prompter.Input("GitHub owner (user or organization):", "")
		if err != nil {
			return err
		}
		if owner == "" {
			return ErrCancelled
		}
		s.owner = owner
		return nil
	}

	s.owner = choices[idx].owner
	s.projectTitle = choices[idx].projectTitle
	return nil
}

func containsOwner(choices []ownerChoice, owner string) bool {
	for _, c := range choices {
		if c.owner == owner && c.projectTitle == "" {
			return true
		}
	}
	return false
}

func (s *Session) chooseProject(ctx context.Context) error {
	projects, err := s.gateway.ListProjects(ctx, s.owner)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Fprintf(s.out, "No projects found for %s.\n", s.owner)
		return errNoCandidates
	}

	// A workspace shortcut already names the project
	if s.projectTitle != "" {
		for _, p := range projects {
			if p.Title == s.projectTitle {
				s.project = p
				return nil
			}
		}
		fmt.Fprintf(s.out, "Project %q no longer exists for %s, pick one:\n", s.projectTitle, s.owner)
	}

	if len(projects) == 1 {
		s.project = projects[0]
		return nil
	}

	sorted := make([]gh.Project, len(projects))
	copy(sorted, projects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Title < sorted[j].Title
	})

	labels := make([]string, len(sorted))
	descriptions := make([]string, len(sorted))
	for i, p := range sorted {
		labels[i] = p.Title
		if p.Title == s.opts.DefaultProject {
			labels[i] += " (default)"
		}
		descriptions[i] = fmt.Sprintf("#%d", p.Number)
		if p.ShortDescription != "" {
			descriptions[i] += " " + p.ShortDescription
		}
	}

	idx, err := s.prompter.Select("Select a project:", labels, descriptions)
	if err != nil {
		return err
	}
	s.project = sorted[idx]
	return nil
}

func (s *Session) chooseItem(ctx context.Context) error {
	items, err := s.gateway.ListItems(ctx, s.owner, s.project.Number)
	if err != nil {
		return err
	}

	// Drafts have no origin number and cannot be targeted
	linked := make([]gh.Item, 0, len(items))
	for _, item := range items {
		if item.HasLinkedContent() {
			linked = append(linked, item)
		}
	}
	if len(linked) == 0 {
		fmt.Fprintf(s.out, "Project %q has no items with a linked issue or pull request.\n", s.project.Title)
		return errNoCandidates
	}

	// Group the picker by column order so items read like the board
	ordered := board.SortByStatus(linked, s.opts.StatusOptions)

	labels := make([]string, len(ordered))
	descriptions := make([]string, len(ordered))
	for i, item := range ordered {
		labels[i] = fmt.Sprintf("#%d - %s", item.Content.Number, item.DisplayTitle())
		if item.Status != "" {
			descriptions[i] = item.Status
		} else {
			descriptions[i] = board.NoStatusColumn
		}
	}

	idx, err := s.prompter.Select("Select an item:", labels, descriptions)
	if err != nil {
		return err
	}
	s.item = ordered[idx]
	return nil
}

func (s *Session) chooseStatus(ctx context.Context) error {
	statuses := s.opts.StatusOptions
	if len(statuses) == 0 {
		statuses = gh.DefaultStatusNames
	}

	labels := make([]string, len(statuses))
	descriptions := make([]string, len(statuses))
	for i, status := range statuses {
		labels[i] = status
		if status == s.item.Status {
			descriptions[i] = "current"
		}
	}

	idx, err := s.prompter.Select(fmt.Sprintf("New status for %q:", s.item.DisplayTitle()), labels, descriptions)
	if err != nil {
		return err
	}
	s.status = statuses[idx]
	return nil
}
