package render

import (
	"fmt"
	"strings"

	"ghp/internal/board"
	"ghp/internal/gh"
)

const kanbanPage = `<!doctype html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>{{PROJECT_TITLE}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { padding: 20px; font-family: -apple-system, "Segoe UI", sans-serif; background: #0d1117; color: #e6edf3; }
.board-header { margin-bottom: 20px; }
.board-header h1 { font-size: 20px; }
.board-header .owner { color: #8b949e; font-size: 13px; }
.kanban-board { display: flex; gap: 16px; align-items: flex-start; overflow-x: auto; }
.kanban-column { background: #161b22; border: 1px solid #30363d; border-radius: 6px; min-width: 280px; flex: 1; }
.column-header { display: flex; justify-content: space-between; align-items: center; padding: 12px; border-bottom: 1px solid #30363d; }
.column-header h3 { font-size: 14px; }
.item-count { background: #21262d; border-radius: 10px; padding: 2px 8px; font-size: 12px; color: #8b949e; }
.column-items { padding: 8px; display: flex; flex-direction: column; gap: 8px; }
.empty-column { color: #8b949e; font-size: 13px; padding: 12px; text-align: center; }
.kanban-item { background: #0d1117; border: 1px solid #30363d; border-radius: 6px; padding: 10px; }
.item-title { font-size: 13px; margin-bottom: 8px; }
.item-meta { display: flex; gap: 8px; font-size: 11px; color: #8b949e; align-items: center; }
.item-type { border-radius: 10px; padding: 1px 7px; font-weight: 600; }
.item-type.issue { background: #1f6feb33; color: #58a6ff; }
.item-type.pull-request { background: #23863633; color: #3fb950; }
.item-type.draft-issue { background: #6e768166; color: #8b949e; }
</style>
</head>
<body>
<div class="board-header">
<h1>{{PROJECT_TITLE}}</h1>
<div class="owner">{{PROJECT_OWNER}}</div>
</div>
<div class="kanban-board">
{{KANBAN_COLUMNS}}
</div>
</body>
</html>
`

// ItemHTML renders one board card
func ItemHTML(item gh.Item) string {
	title := item.DisplayTitle()

	itemType := item.Type
	if itemType == "" && item.Content != nil {
		itemType = item.Content.Type
	}

	typeClass, typeLabel := "draft-issue", "Draft"
	switch itemType {
	case "ISSUE", "Issue":
		typeClass, typeLabel = "issue", "Issue"
	case "PULL_REQUEST", "PullRequest":
		typeClass, typeLabel = "pull-request", "PR"
	}

	var meta strings.Builder
	fmt.Fprintf(&meta, `<span class="item-type %s">%s</span>`, typeClass, typeLabel)
	if item.Content != nil && item.Content.Repository != "" {
		fmt.Fprintf(&meta, `<span class="item-repo">%s</span>`, EscapeHTML(item.Content.Repository))
	}
	if item.Content != nil && item.Content.Number != 0 {
		fmt.Fprintf(&meta, `<span>#%d</span>`, item.Content.Number)
	}

	return fmt.Sprintf(`<div class="kanban-item" data-url="%s" data-item-id="%s">
<div class="item-title">%s</div>
<div class="item-meta">%s</div>
</div>
`, EscapeHTML(item.ItemURL()), EscapeHTML(item.ID), EscapeHTML(title), meta.String())
}

// columnHTML renders one column with its cards
func columnHTML(column board.Column) string {
	var items strings.Builder
	if len(column.Items) == 0 {
		items.WriteString(`<div class="empty-column">No items</div>`)
	} else {
		for _, item := range column.Items {
			items.WriteString(ItemHTML(item))
		}
	}

	return fmt.Sprintf(`<div class="kanban-column" data-column="%s">
<div class="column-header">
<h3>%s</h3>
<span class="item-count">%d</span>
</div>
<div class="column-items">
%s</div>
</div>
`, EscapeHTML(column.Name), EscapeHTML(column.Name), len(column.Items), items.String())
}

// KanbanHTML renders a full board page
func KanbanHTML(owner, projectTitle string, columns []board.Column) string {
	var columnsHTML strings.Builder
	for _, column := range columns {
		columnsHTML.WriteString(columnHTML(column))
	}

	page := kanbanPage
	page = strings.Replace(page, "{{PROJECT_TITLE}}", EscapeHTML(projectTitle), -1)
	page = strings.Replace(page, "{{PROJECT_OWNER}}", EscapeHTML(owner), 1)
	page = strings.Replace(page, "{{KANBAN_COLUMNS}}", columnsHTML.String(), 1)
	return page
}
