// Package gh is the gateway to the GitHub CLI. Every remote operation shells
// out to `gh` and parses its JSON output; nothing is cached between calls
// except the setup-time discovery results.
package gh

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ghp/internal/errors"
	"ghp/internal/ghexec"
	"ghp/internal/logger"
)

// runner abstracts subprocess execution so tests can script gh output
type runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	RunJSON(ctx context.Context, result interface{}, name string, args ...string) error
}

// Client issues gh commands and maps their output onto the data model
type Client struct {
	run runner
}

// NewClient creates a gateway client with the default command runner
func NewClient() *Client {
	return &Client{run: ghexec.NewDefaultRunner()}
}

// IsInstalled reports whether the gh binary responds to a version probe
func (c *Client) IsInstalled(ctx context.Context) bool {
	_, err := c.run.Run(ctx, "gh", "--version")
	return err == nil
}

// IsAuthenticated reports whether gh has an active logged-in session
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	out, err := c.run.Run(ctx, "gh", "auth", "status")
	if err != nil {
		return false
	}
	return strings.Contains(string(out), "Logged in")
}

// ListProjects lists the owner's projects. An empty list is a valid result,
// not an error.
func (c *Client) ListProjects(ctx context.Context, owner string) ([]Project, error) {
	var resp struct {
		Projects []Project `json:"projects"`
	}
	err := c.run.RunJSON(ctx, &resp, "gh",
		"project", "list", "--owner", owner, "--format", "json", "--limit", "100")
	if err != nil {
		return nil, errors.NewGatewayError("list projects", err)
	}
	logger.GH("listed %d projects for %s", len(resp.Projects), owner)
	return resp.Projects, nil
}

// ViewProject fetches a single project, including its node ID
func (c *Client) ViewProject(ctx context.Context, owner string, number int) (Project, error) {
	var project Project
	err := c.run.RunJSON(ctx, &project, "gh",
		"project", "view", strconv.Itoa(number), "--owner", owner, "--format", "json")
	if err != nil {
		return Project{}, errors.NewGatewayError("view project", err)
	}
	return project, nil
}

// ListItems lists the items on a board. An empty list is a valid result.
func (c *Client) ListItems(ctx context.Context, owner string, number int) ([]Item, error) {
	var resp struct {
		Items []Item `json:"items"`
	}
	err := c.run.RunJSON(ctx, &resp, "gh",
		"project", "item-list", strconv.Itoa(number), "--owner", owner, "--format", "json", "--limit", "100")
	if err != nil {
		return nil, errors.NewGatewayError("list project items", err)
	}
	logger.GH("listed %d items for %s/#%d", len(resp.Items), owner, number)
	return resp.Items, nil
}

// listFields fetches the raw field list for a project
func (c *Client) listFields(ctx context.Context, owner string, number int) ([]Field, error) {
	var resp struct {
		Fields []Field `json:"fields"`
	}
	err := c.run.RunJSON(ctx, &resp, "gh",
		"project", "field-list", strconv.Itoa(number), "--owner", owner, "--format", "json")
	if err != nil {
		return nil, err
	}
	return resp.Fields, nil
}

// findStatusField picks the status-like field: one literally named "Status",
// else the first single-select field.
func findStatusField(fields []Field) (StatusField, bool) {
	for _, f := range fields {
		if strings.EqualFold(f.Name, "Status") {
			return StatusField{ID: f.ID, Name: f.Name, Options: f.Options}, true
		}
	}
	for _, f := range fields {
		if strings.Contains(f.Type, "SINGLE_SELECT") {
			return StatusField{ID: f.ID, Name: f.Name, Options: f.Options}, true
		}
	}
	return StatusField{}, false
}

// StatusField locates the project's status field. This read is deliberately
// lenient: when the field listing fails or no status-like field exists it
// returns the default Todo / In Progress / Done vocabulary instead of an
// error, so a board can always be rendered. Mutations go through the strict
// path in UpdateItemStatus instead.
func (c *Client) StatusField(ctx context.Context, owner string, number int) StatusField {
	fields, err := c.listFields(ctx, owner, number)
	if err != nil {
		logger.GH("field-list failed for %s/#%d, using default statuses: %v", owner, number, err)
		return DefaultStatusField()
	}
	field, ok := findStatusField(fields)
	if !ok || len(field.Options) == 0 {
		logger.GH("no status field on %s/#%d, using default statuses", owner, number)
		return DefaultStatusField()
	}
	return field
}

// UpdateItemStatus resolves the status field and target option, then issues
// the item-edit mutation. Unlike StatusField this path never falls back: an
// unresolvable field or option is a status-resolution error, a failed edit
// is a gateway error. The edit itself is a single call with no retry; the
// remote system applies it atomically or not at all.
func (c *Client) UpdateItemStatus(ctx context.Context, owner string, number int, itemID, newStatus string) error {
	project, err := c.ViewProject(ctx, owner, number)
	if err != nil {
		return err
	}

	fields, err := c.listFields(ctx, owner, number)
	if err != nil {
		return errors.NewStatusResolutionError(newStatus, err)
	}
	field, ok := findStatusField(fields)
	if !ok {
		return errors.NewStatusResolutionError(newStatus, fmt.Errorf("project has no status field"))
	}
	option, ok := field.Option(newStatus)
	if !ok || option.ID == "" {
		return errors.NewStatusResolutionError(newStatus, nil)
	}

	_, err = c.run.Run(ctx, "gh",
		"project", "item-edit",
		"--id", itemID,
		"--project-id", project.ID,
		"--field-id", field.ID,
		"--single-select-option-id", option.ID)
	if err != nil {
		return errors.NewGatewayError("update item status", err)
	}
	logger.GH("moved item %s to %q on %s/#%d", itemID, newStatus, owner, number)
	return nil
}

const issueDetailQuery = `query($owner:String!,$repo:String!,$number:Int!){repository(owner:$owner,name:$repo){issue(number:$number){title body state url issueType{name} labels(first:50){nodes{name}} assignees(first:50){nodes{login}}}}}`

// IssueDetails fetches issue metadata in a single GraphQL call
func (c *Client) IssueDetails(ctx context.Context, repository string, number int) (IssueDetail, error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" {
		return IssueDetail{}, fmt.Errorf("invalid repository format %q", repository)
	}

	var resp struct {
		Data struct {
			Repository *struct {
				Issue *struct {
					Title     string `json:"title"`
					Body      string `json:"body"`
					State     string `json:"state"`
					URL       string `json:"url"`
					IssueType *struct {
						Name string `json:"name"`
					} `json:"issueType"`
					Labels struct {
						Nodes []struct {
							Name string `json:"name"`
						} `json:"nodes"`
					} `json:"labels"`
					Assignees struct {
						Nodes []struct {
							Login string `json:"login"`
						} `json:"nodes"`
					} `json:"assignees"`
				} `json:"issue"`
			} `json:"repository"`
		} `json:"data"`
	}

	err := c.run.RunJSON(ctx, &resp, "gh",
		"api", "graphql",
		"-f", "query="+issueDetailQuery,
		"-f", "owner="+owner,
		"-f", "repo="+repo,
		"-F", fmt.Sprintf("number=%d", number))
	if err != nil {
		return IssueDetail{}, errors.NewGatewayError("fetch issue details", err)
	}

	if resp.Data.Repository == nil || resp.Data.Repository.Issue == nil {
		return IssueDetail{}, errors.NewIssueNotFoundError(repository, number)
	}

	issue := resp.Data.Repository.Issue
	detail := IssueDetail{
		Title: issue.Title,
		Body:  issue.Body,
		State: issue.State,
		URL:   issue.URL,
	}
	if issue.IssueType != nil {
		detail.IssueType = issue.IssueType.Name
	}
	for _, node := range issue.Labels.Nodes {
		detail.Labels = append(detail.Labels, node.Name)
	}
	for _, node := range issue.Assignees.Nodes {
		detail.Assignees = append(detail.Assignees, node.Login)
	}
	return detail, nil
}
