package render

import (
	"fmt"
	"strings"
)

// IssueView is everything the issue-detail page shows
type IssueView struct {
	Title      string
	Number     int
	State      string
	Type       string
	IssueType  string
	Repository string
	Body       string
	URL        string
	Labels     []string
	Assignees  []string
	Status     string
}

const issuePage = `<!doctype html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>{{ISSUE_TITLE}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { padding: 20px; font-family: -apple-system, "Segoe UI", sans-serif; background: #0d1117; color: #e6edf3; }
.issue-header { margin-bottom: 20px; padding-bottom: 16px; border-bottom: 1px solid #30363d; }
.issue-header h1 { font-size: 20px; margin-bottom: 8px; }
.issue-number { color: #8b949e; font-weight: 400; }
.badges { display: flex; gap: 8px; align-items: center; font-size: 12px; }
.state-badge { border-radius: 12px; padding: 3px 10px; font-weight: 600; }
.state-badge.open { background: #238636; color: #fff; }
.state-badge.closed { background: #8957e5; color: #fff; }
.type-badge { border-radius: 12px; padding: 3px 10px; }
.type-badge.issue { background: #1f6feb33; color: #58a6ff; }
.type-badge.pull-request { background: #23863633; color: #3fb950; }
.repo { color: #8b949e; }
.layout { display: flex; gap: 24px; align-items: flex-start; }
.issue-body { flex: 1; background: #161b22; border: 1px solid #30363d; border-radius: 6px; padding: 16px; font-size: 14px; white-space: pre-wrap; }
.empty-body { color: #8b949e; font-style: italic; }
.sidebar { width: 240px; display: flex; flex-direction: column; gap: 12px; }
.sidebar-card { background: #161b22; border: 1px solid #30363d; border-radius: 6px; padding: 12px; }
.card-title { font-size: 12px; color: #8b949e; margin-bottom: 8px; font-weight: 600; }
.sidebar-item { font-size: 13px; padding: 2px 0; }
.sidebar-empty { font-size: 12px; color: #8b949e; font-style: italic; }
.issue-label { display: inline-block; background: #21262d; border-radius: 10px; padding: 2px 8px; font-size: 11px; margin: 2px; }
.badge-field { display: inline-block; background: #21262d; border-radius: 10px; padding: 2px 8px; font-size: 12px; }
.issue-link { color: #58a6ff; font-size: 13px; }
</style>
</head>
<body>
<div class="issue-header">
<h1>{{ISSUE_TITLE}} <span class="issue-number">{{ISSUE_NUMBER}}</span></h1>
<div class="badges">
<span class="state-badge {{ISSUE_STATE_CLASS}}">{{ISSUE_STATE}}</span>
<span class="type-badge {{ISSUE_TYPE_CLASS}}">{{ISSUE_TYPE}}</span>
<span class="repo">{{ISSUE_REPOSITORY}}</span>
</div>
</div>
<div class="layout">
<div class="issue-body">{{ISSUE_BODY}}</div>
{{ISSUE_SIDEBAR}}
</div>
<p><a class="issue-link" href="{{ISSUE_URL}}">Open on GitHub</a></p>
</body>
</html>
`

func sidebarList(values []string, emptyText string) string {
	if len(values) == 0 {
		return fmt.Sprintf(`<div class="sidebar-empty">%s</div>`, emptyText)
	}
	var b strings.Builder
	for _, v := range values {
		fmt.Fprintf(&b, `<div class="sidebar-item">%s</div>`, EscapeHTML(v))
	}
	return b.String()
}

func sidebarLabels(labels []string) string {
	if len(labels) == 0 {
		return `<div class="sidebar-empty">No labels</div>`
	}
	var b strings.Builder
	for _, label := range labels {
		fmt.Fprintf(&b, `<span class="issue-label">%s</span>`, EscapeHTML(label))
	}
	return b.String()
}

func sidebarBadge(value, emptyText string) string {
	if value == "" {
		return fmt.Sprintf(`<div class="sidebar-empty">%s</div>`, emptyText)
	}
	return fmt.Sprintf(`<span class="badge-field">%s</span>`, EscapeHTML(value))
}

func sidebarHTML(issue IssueView) string {
	return fmt.Sprintf(`<div class="sidebar">
<div class="sidebar-card"><div class="card-title">Status</div><div class="card-content">%s</div></div>
<div class="sidebar-card"><div class="card-title">Assignees</div><div class="card-content">%s</div></div>
<div class="sidebar-card"><div class="card-title">Labels</div><div class="card-content">%s</div></div>
<div class="sidebar-card"><div class="card-title">Type</div><div class="card-content">%s</div></div>
</div>
`,
		sidebarBadge(issue.Status, "No status"),
		sidebarList(issue.Assignees, "Unassigned"),
		sidebarLabels(issue.Labels),
		sidebarBadge(issue.IssueType, "No type"))
}

// IssueDetailHTML renders the issue-detail page
func IssueDetailHTML(issue IssueView) string {
	stateClass := "closed"
	if strings.EqualFold(issue.State, "open") {
		stateClass = "open"
	}

	typeClass, typeLabel := "issue", "ISSUE"
	if issue.Type == "PULL_REQUEST" || issue.Type == "PullRequest" {
		typeClass, typeLabel = "pull-request", "PR"
	}

	body := EscapeHTML(issue.Body)
	if issue.Body == "" {
		body = `<div class="empty-body">No description provided</div>`
	}

	page := issuePage
	page = strings.Replace(page, "{{ISSUE_TITLE}}", EscapeHTML(issue.Title), -1)
	page = strings.Replace(page, "{{ISSUE_NUMBER}}", fmt.Sprintf("#%d", issue.Number), -1)
	page = strings.Replace(page, "{{ISSUE_STATE_CLASS}}", stateClass, 1)
	page = strings.Replace(page, "{{ISSUE_STATE}}", EscapeHTML(strings.ToUpper(issue.State)), -1)
	page = strings.Replace(page, "{{ISSUE_TYPE_CLASS}}", typeClass, 1)
	page = strings.Replace(page, "{{ISSUE_TYPE}}", typeLabel, 1)
	page = strings.Replace(page, "{{ISSUE_REPOSITORY}}", EscapeHTML(issue.Repository), 1)
	page = strings.Replace(page, "{{ISSUE_BODY}}", body, 1)
	page = strings.Replace(page, "{{ISSUE_SIDEBAR}}", sidebarHTML(issue), 1)
	page = strings.Replace(page, "{{ISSUE_URL}}", EscapeHTML(issue.URL), 1)
	return page
}
