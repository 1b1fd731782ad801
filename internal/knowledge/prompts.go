package knowledge

import (
	"fmt"
	"strings"
)

// PromptBuilder constructs standardized prompts for each documentation section.
type PromptBuilder struct{}

const securityInstruction = "\n**SECURITY WARNING**: You must redact any API keys, passwords, secrets, or tokens found in the code with `[REDACTED]`. Never output real credential values.\n"

// formatInstruction keeps the output inside the markdown subset the
// publisher translates: #/##/### headings, "- " bullets, "1. " items,
// **bold** and fenced code.
const formatInstruction = "\nFormat all headings with proper Markdown heading levels (# for main title, ## for sections, ### for subsections).\n" +
	"Use `- ` for bullet points and format parameter and method names as bold using **name**.\n" +
	"Use fenced code blocks with a language tag for all code examples.\n"

func (pb *PromptBuilder) BuildProjectPrompt(analysis, moduleSummary string) Prompt {
	var sb strings.Builder
	sb.WriteString("Generate detailed project documentation based on this code analysis:\n\n")
	sb.WriteString(analysis)
	fmt.Fprintf(&sb, "\n\nThe project has the following modules: %s\n\n", moduleSummary)
	sb.WriteString("Include the following sections with detailed explanations and examples:\n\n")
	sb.WriteString("# Project Overview\n\n")
	sb.WriteString("## Purpose and Goals\n- What problem does this project solve?\n- Who is the target audience?\n- What are the main objectives?\n\n")
	sb.WriteString("## Key Features\n- List and explain main functionalities\n- Highlight unique selling points\n- Provide usage examples\n\n")
	sb.WriteString("## Technical Architecture\n- System components and their interactions\n- Design patterns and principles used\n- Data flow and processing\n- How the different modules work together\n\n")
	sb.WriteString("## Module Integration\n- Explain how the different modules connect to each other\n- Describe the responsibility of each module and its role in the overall system\n- Show the data flow between modules\n\n")
	sb.WriteString("## Technology Stack\n- Core technologies and frameworks\n- External dependencies\n- System requirements\n\n")
	sb.WriteString("## Getting Started\n- Installation steps\n- Configuration requirements\n- Quick start guide\n")
	sb.WriteString(formatInstruction)
	sb.WriteString(securityInstruction)

	return Prompt{
		System: "You are a technical documentation expert specializing in creating clear, comprehensive documentation.\n" +
			"Focus on explaining the project's purpose, architecture, and value proposition.\n" +
			"Use concrete examples and clear explanations.\n" +
			"Break down complex concepts into digestible sections.\n" +
			"Create a cohesive narrative that connects all components of the project.",
		User: sb.String(),
	}
}

func (pb *PromptBuilder) BuildModulePrompt(moduleName, moduleData string) Prompt {
	var sb strings.Builder
	sb.WriteString("Generate comprehensive module documentation for:\n\n")
	fmt.Fprintf(&sb, "Module: %s\nData: %s\n\n", moduleName, moduleData)
	sb.WriteString("Include these sections with clear Markdown heading structure:\n\n")
	fmt.Fprintf(&sb, "# %s Module\n\n", moduleName)
	sb.WriteString("## Overview\n- Module purpose and responsibility\n- Key functionalities\n- Usage scenarios\n\n")
	sb.WriteString("## Classes\nFor each class or type, use level 3 headings (###) and include:\n")
	sb.WriteString("- Purpose and usage\n- Constructor parameters (bullet points with bold parameter names)\n")
	sb.WriteString("- Important methods (bullet points with bold method names)\n- Usage examples\n\n")
	sb.WriteString("## Functions\nFor each standalone function, use level 3 headings (###) and include:\n")
	sb.WriteString("- Purpose\n- Parameters and return values (bullet points with bold parameter names)\n- Usage examples\n- Error handling\n\n")
	sb.WriteString("## Integration\n- How to integrate with other modules\n- Common usage patterns\n\n")
	sb.WriteString("## Dependencies\n- Required modules and packages\n- External dependencies\n")
	sb.WriteString(formatInstruction)
	sb.WriteString("Keep the documentation concise but comprehensive.\n")
	sb.WriteString(securityInstruction)

	return Prompt{
		System: "You are a technical writer specializing in API and module documentation.\n" +
			"Focus on practical usage, clear examples, and proper technical details.\n" +
			"Explain complex functionality in simple terms while maintaining technical accuracy.\n" +
			"Use a professional tone and format for technical documentation.",
		User: sb.String(),
	}
}

func (pb *PromptBuilder) BuildAPIPrompt(analysis string) Prompt {
	var sb strings.Builder
	sb.WriteString("Generate detailed API documentation for:\n\n")
	sb.WriteString(analysis)
	sb.WriteString("\n\n# API Documentation\n\n")
	sb.WriteString("## Overview\n- API purpose and scope\n- Base URL and versioning\n\n")
	sb.WriteString("## Authentication\n- Authentication methods\n- Token formats\n- Security considerations\n\n")
	sb.WriteString("## Endpoints\nFor each endpoint:\n- HTTP method and path\n- Request parameters and body format\n- Response format and status codes\n- Error responses\n- Example requests and responses\n\n")
	sb.WriteString("## Error Handling\n- Common error codes\n- Error response format\n\n")
	sb.WriteString("## Rate Limiting\n- Limits and quotas\n- Handling rate limits\n\n")
	sb.WriteString("Include curl examples where relevant.\n")
	sb.WriteString(formatInstruction)
	sb.WriteString(securityInstruction)

	return Prompt{
		System: "You are an API documentation specialist.\n" +
			"Focus on clear endpoint descriptions, request/response formats, and practical examples.\n" +
			"Include authentication, error handling, and rate limiting details.",
		User: sb.String(),
	}
}
