package publish

import (
	"strings"

	"docflow/internal/blocks"
)

const pageURLPrefix = "https://www.notion.so/"

// PageURL returns the browser URL of a page id.
func PageURL(id string) string {
	return pageURLPrefix + strings.ReplaceAll(id, "-", "")
}

type component struct {
	name        string
	description string
}

var architecture = []component{
	{"Core", "Source scanning, code analysis and documentation generation"},
	{"Notion", "Page management and content publishing to the Notion workspace"},
	{"Config", "Settings loaded from the environment and the config file"},
}

var dataFlow = []string{
	"The project source is scanned and summarized into classes, functions and imports.",
	"The summaries are sent to the language model, which writes the overview, module and API documentation.",
	"The documentation is translated into Notion blocks and published under the root page.",
}

var quickStart = []string{
	"Clone the repository",
	"Build the CLI with **go build ./cmd/docflow**",
	"Set up environment variables (**OPENAI_API_KEY**, **NOTION_API_KEY**, **NOTION_PARENT_PAGE_ID**)",
	"Run with **docflow publish <project_path>**",
}

// indexDocument builds the table of contents written onto the root page.
func (p *Publisher) indexDocument(run *runState) []blocks.Block {
	doc := []blocks.Block{
		blocks.Heading{Level: 1, Text: p.projectName + " Project Documentation"},
		paragraph("Welcome to the " + p.projectName + " documentation. " +
			"This page links to every generated section of the project."),
		blocks.Heading{Level: 2, Text: "Table of Contents"},
	}

	if id, ok := run.index.Get(KeyOverview); ok {
		doc = append(doc, linkItem(overviewLink, id))
	}
	if id, ok := run.index.Get(KeyAPI); ok {
		doc = append(doc, linkItem(apiLink, id))
	}
	if len(run.modules) > 0 {
		doc = append(doc, blocks.Heading{Level: 3, Text: "Module Documentation"})
		for _, name := range run.modules {
			if id, ok := run.index.Get(ModuleKey(name)); ok {
				doc = append(doc, linkItem(name, id))
			}
		}
	}

	doc = append(doc,
		blocks.Heading{Level: 2, Text: "Project Architecture"},
		paragraph("The project is organized into the following main components:"),
	)
	for _, c := range architecture {
		name := blocks.Run{Text: c.name, Bold: true}
		if id, ok := run.index.Get(ModuleKey(strings.ToLower(c.name))); ok {
			name.Link = PageURL(id)
		}
		doc = append(doc, blocks.BulletItem{Runs: []blocks.Run{name, {Text: ": " + c.description}}})
	}

	doc = append(doc,
		blocks.Heading{Level: 2, Text: "Data Flow"},
		paragraph("Documentation moves through three stages:"),
	)
	for _, step := range dataFlow {
		doc = append(doc, blocks.NumberItem{Runs: []blocks.Run{{Text: step}}})
	}

	doc = append(doc,
		blocks.Heading{Level: 2, Text: "Quick Start Guide"},
		paragraph("To publish documentation for your own project:"),
	)
	for _, item := range quickStart {
		doc = append(doc, blocks.BulletItem{Runs: blocks.Segment(item)})
	}
	return doc
}

func paragraph(text string) blocks.Paragraph {
	return blocks.Paragraph{Runs: []blocks.Run{{Text: text}}}
}

func linkItem(title, id string) blocks.BulletItem {
	return blocks.BulletItem{Runs: []blocks.Run{{Text: title, Link: PageURL(id)}}}
}
