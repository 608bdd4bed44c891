// Package board turns a flat item list into Kanban columns. It is pure data
// shaping: no I/O, no knowledge of where the items came from.
package board

import (
	"sort"

	"ghp/internal/gh"
)

// NoStatusColumn collects items whose status is empty or not in the project's
// status vocabulary.
const NoStatusColumn = "No Status"

// Column is one Kanban column: a status name and the items under it
type Column struct {
	Name  string
	Items []gh.Item
}

// Organize buckets items into one column per status name, in the given order.
// Every named column is present even when empty. Items whose status is empty
// or unknown land in a trailing catch-all column, which appears only when it
// holds at least one item. Within a column the input order is preserved.
func Organize(items []gh.Item, statusNames []string) []Column {
	index := make(map[string]int, len(statusNames))
	columns := make([]Column, 0, len(statusNames)+1)
	for i, name := range statusNames {
		index[name] = i
		columns = append(columns, Column{Name: name})
	}
	columns = append(columns, Column{Name: NoStatusColumn})

	for _, item := range items {
		if i, ok := index[item.Status]; ok && item.Status != "" {
			columns[i].Items = append(columns[i].Items, item)
		} else {
			columns[len(columns)-1].Items = append(columns[len(columns)-1].Items, item)
		}
	}
	if len(columns[len(columns)-1].Items) == 0 {
		columns = columns[:len(columns)-1]
	}
	return columns
}

// StatusRank maps a status to its position in the vocabulary. Unknown or
// empty statuses rank after every known one.
func StatusRank(status string, statusNames []string) int {
	for i, name := range statusNames {
		if name == status {
			return i
		}
	}
	return len(statusNames)
}

// SortByStatus orders items by status rank, keeping the input order within
// each status.
func SortByStatus(items []gh.Item, statusNames []string) []gh.Item {
	sorted := make([]gh.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return StatusRank(sorted[i].Status, statusNames) < StatusRank(sorted[j].Status, statusNames)
	})
	return sorted
}

// MoveItem relocates an item between columns after a confirmed status change.
// It reports false, leaving the columns untouched, when the item or the
// target column cannot be found.
func MoveItem(columns []Column, itemID, newStatus string) bool {
	target := -1
	for i, col := range columns {
		if col.Name == newStatus {
			target = i
			break
		}
	}
	if target == -1 {
		return false
	}

	for i := range columns {
		for j, item := range columns[i].Items {
			if item.ID != itemID {
				continue
			}
			if i == target {
				return true
			}
			item.Status = newStatus
			columns[i].Items = append(columns[i].Items[:j], columns[i].Items[j+1:]...)
			columns[target].Items = append(columns[target].Items, item)
			return true
		}
	}
	return false
}

// TotalItems counts the items across all columns
func TotalItems(columns []Column) int {
	total := 0
	for _, col := range columns {
		total += len(col.Items)
	}
	return total
}
