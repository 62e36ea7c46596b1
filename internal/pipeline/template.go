package pipeline

import (
	"errors"
	"strings"
)

// ErrEmptyTemplate indicates a card template without content.
var ErrEmptyTemplate = errors.New("card template is empty")

// Card template placeholders.
const (
	PlaceholderID          = ">>>ID<<<"
	PlaceholderTitle       = ">>>TITLE<<<"
	PlaceholderMilestone   = ">>>MILESTONE<<<"
	PlaceholderPriority    = ">>>PRIO<<<"
	PlaceholderPoints      = ">>>POINTS<<<"
	PlaceholderRisk        = ">>>RISK<<<"
	PlaceholderDescription = ">>>DESCRIPTION<<<"
	PlaceholderClosedIf    = ">>>CLOSEDIF<<<"
)

// Placeholders lists every token a card template is expected to contain.
var Placeholders = []string{
	PlaceholderID,
	PlaceholderTitle,
	PlaceholderMilestone,
	PlaceholderPriority,
	PlaceholderPoints,
	PlaceholderRisk,
	PlaceholderDescription,
	PlaceholderClosedIf,
}

// CardValues are the unescaped values substituted into a template.
type CardValues struct {
	ID          string
	Title       string
	Milestone   string
	Priority    string
	Points      string
	Risk        string
	Description string
	Checklist   string // output of RenderChecklist
}

// CardTemplate substitutes card values into a LaTeX fragment.
type CardTemplate struct {
	src string
}

// NewCardTemplate wraps template source. Missing placeholders are allowed;
// see MissingPlaceholders.
func NewCardTemplate(src string) (*CardTemplate, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyTemplate
	}
	return &CardTemplate{src: src}, nil
}

// Render replaces every placeholder in a single pass. Title, milestone,
// description and checklist go through EscapeTeX; ID and header values are
// inserted verbatim.
func (t *CardTemplate) Render(v CardValues) string {
	r := strings.NewReplacer(
		PlaceholderID, v.ID,
		PlaceholderTitle, EscapeTeX(v.Title),
		PlaceholderMilestone, EscapeTeX(v.Milestone),
		PlaceholderPriority, v.Priority,
		PlaceholderPoints, v.Points,
		PlaceholderRisk, v.Risk,
		PlaceholderDescription, EscapeTeX(v.Description),
		PlaceholderClosedIf, EscapeTeX(v.Checklist),
	)
	return r.Replace(t.src)
}

// MissingPlaceholders returns the placeholders absent from the template,
// in Placeholders order.
func (t *CardTemplate) MissingPlaceholders() []string {
	var missing []string
	for _, p := range Placeholders {
		if !strings.Contains(t.src, p) {
			missing = append(missing, p)
		}
	}
	return missing
}
