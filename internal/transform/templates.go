package transform

import (
	"sort"
	"strings"

	"github.com/rgehrsitz/pebdcalc/internal/domain"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if questions
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "reenlist_next_day",
		Description: "Reenlist the day after EOS",
		Transforms:  []InputTransform{&ReenlistAfterEOS{Days: 1}},
	})
	registry.Register(Template{
		Name:        "reenlist_after_91_days",
		Description: "Reenlist 91 days after EOS, one day past the 90-day break tolerance",
		Transforms:  []InputTransform{&ReenlistAfterEOS{Days: 91}},
	})
	registry.Register(Template{
		Name:        "no_lost_time",
		Description: "Remove all lost time",
		Transforms:  []InputTransform{&DropKind{Kind: domain.PeriodLostTime}},
	})
	registry.Register(Template{
		Name:        "dep_with_idt",
		Description: "Treat every DEP period as having IDT performed",
		Transforms:  []InputTransform{&SetIDT{Index: AllPeriods, Performed: true}},
	})
	registry.Register(Template{
		Name:        "active_only",
		Description: "Keep active duty only (drop DEP, inactive and lost time)",
		Transforms: []InputTransform{
			&DropKind{Kind: domain.PeriodDEP},
			&DropKind{Kind: domain.PeriodInactive},
			&DropKind{Kind: domain.PeriodLostTime},
		},
	})

	return registry
}

// ParseTemplateList splits a comma-separated template list, dropping blanks.
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	groups := []struct {
		title string
		match func(Template) bool
	}{
		{"Reenlistment Timing", func(t Template) bool { return strings.HasPrefix(t.Name, "reenlist_") }},
		{"Period Adjustments", func(t Template) bool { return !strings.HasPrefix(t.Name, "reenlist_") }},
	}

	for _, group := range groups {
		var names []string
		for _, name := range registry.List() {
			if group.match(registry.templates[name]) {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			continue
		}

		sb.WriteString(group.title + ":\n")
		for _, name := range names {
			sb.WriteString("  " + name + "\n")
			sb.WriteString("      " + registry.templates[name].Description + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
