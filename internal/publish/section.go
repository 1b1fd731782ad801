package publish

import "strings"

// NoAPIPlaceholder is the body the generator emits when a project has no API
// surface. A section with this body is not published.
const NoAPIPlaceholder = "No API endpoints detected in the project."

type Category int

const (
	CategoryOverview Category = iota
	CategoryModule
	CategoryAPI
)

const (
	overviewTitle = "1. Project Overview"
	apiTitle      = "2. API Documentation"
	modulePrefix  = "Module: "

	// Table of contents labels on the root page.
	overviewLink = "Project Overview"
	apiLink      = "API Documentation"

	overviewIcon = "🔍"
	moduleIcon   = "📦"
	apiIcon      = "🔌"
	rootIcon     = "📚"
)

// Section is one logical unit of documentation handed to the publisher.
type Section struct {
	Name     string
	Title    string
	Icon     string
	Body     string
	Category Category
}

// Key returns the PageIndex key the section is published under.
func (s Section) Key() string {
	switch s.Category {
	case CategoryOverview:
		return KeyOverview
	case CategoryAPI:
		return KeyAPI
	default:
		return ModuleKey(s.Name)
	}
}

// Empty reports whether the section has nothing worth publishing.
func (s Section) Empty() bool {
	body := strings.TrimSpace(s.Body)
	if body == "" {
		return true
	}
	return s.Category == CategoryAPI && body == NoAPIPlaceholder
}

// ModuleDoc is the generated documentation of one module.
type ModuleDoc struct {
	Name string
	Body string
}

// Documentation is the complete generated output for a project. Modules keep
// the order the generator produced them in.
type Documentation struct {
	Overview string
	Modules  []ModuleDoc
	API      string
}

// Sections lists the documentation in publish order: overview, modules, API.
func (d Documentation) Sections() []Section {
	out := make([]Section, 0, len(d.Modules)+2)
	out = append(out, Section{
		Name:     KeyOverview,
		Title:    overviewTitle,
		Icon:     overviewIcon,
		Body:     d.Overview,
		Category: CategoryOverview,
	})
	for _, m := range d.Modules {
		out = append(out, Section{
			Name:     m.Name,
			Title:    modulePrefix + m.Name,
			Icon:     moduleIcon,
			Body:     m.Body,
			Category: CategoryModule,
		})
	}
	out = append(out, Section{
		Name:     KeyAPI,
		Title:    apiTitle,
		Icon:     apiIcon,
		Body:     d.API,
		Category: CategoryAPI,
	})
	return out
}
