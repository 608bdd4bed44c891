package gh

// Project identifies a GitHub Projects (v2) board as reported by
// `gh project list` / `gh project view`.
type Project struct {
	Number           int    `json:"number"`
	ID               string `json:"id"`
	Title            string `json:"title"`
	URL              string `json:"url"`
	ShortDescription string `json:"shortDescription"`
	Public           bool   `json:"public"`
	Closed           bool   `json:"closed"`
}

// Item is a unit of work on a board: an issue, a pull request, or a draft
// note. Status is the only field this tool ever mutates.
type Item struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Status  string       `json:"status"`
	Type    string       `json:"type"`
	Content *ItemContent `json:"content"`
}

// ItemContent is the linked issue/PR backing a non-draft item
type ItemContent struct {
	Type       string `json:"type"`
	Number     int    `json:"number"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	State      string `json:"state"`
	Repository string `json:"repository"`
}

// DisplayTitle prefers the linked content's title over the item title
func (it Item) DisplayTitle() string {
	if it.Content != nil && it.Content.Title != "" {
		return it.Content.Title
	}
	return it.Title
}

// HasLinkedContent reports whether the item is backed by a numbered issue or
// pull request. Draft items have no origin number and cannot be targeted by
// number-based operations.
func (it Item) HasLinkedContent() bool {
	return it.Content != nil && it.Content.Number != 0
}

// ItemURL returns the best available link for the item, empty for drafts
func (it Item) ItemURL() string {
	if it.Content != nil {
		return it.Content.URL
	}
	return ""
}

// Field is a project field as reported by `gh project field-list`
type Field struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Type    string        `json:"type"`
	Options []FieldOption `json:"options"`
}

// FieldOption is one choice of a single-select field
type FieldOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StatusField is the single-select field whose options become board columns
type StatusField struct {
	ID      string
	Name    string
	Options []FieldOption
}

// OptionNames returns the option names in field order
func (f StatusField) OptionNames() []string {
	names := make([]string, len(f.Options))
	for i, opt := range f.Options {
		names[i] = opt.Name
	}
	return names
}

// Option looks up an option by exact name
func (f StatusField) Option(name string) (FieldOption, bool) {
	for _, opt := range f.Options {
		if opt.Name == name {
			return opt, true
		}
	}
	return FieldOption{}, false
}

// DefaultStatusNames is the fallback vocabulary used when a project's status
// field cannot be read.
var DefaultStatusNames = []string{"Todo", "In Progress", "Done"}

// DefaultStatusField returns the fallback field. Its options carry no IDs,
// so it can drive display but never a mutation.
func DefaultStatusField() StatusField {
	opts := make([]FieldOption, len(DefaultStatusNames))
	for i, name := range DefaultStatusNames {
		opts[i] = FieldOption{Name: name}
	}
	return StatusField{Name: "Status", Options: opts}
}

// IssueDetail is the result of a GraphQL issue lookup
type IssueDetail struct {
	Title     string
	Body      string
	State     string
	URL       string
	IssueType string
	Labels    []string
	Assignees []string
}
