package mcp

import (
	_ "embed"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

const (
	SkillGuideURI    = "testdino://docs/skill.md"
	skillGuideName   = "TestDino MCP Skills Guide"
	skillGuideDesc   = "AI agent guide for using TestDino MCP tools - patterns, workflows, and best practices"
	markdownMIMEType = "text/markdown"
)

//go:embed docs/skill.md
var skillGuide string

type resource struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
	Text        string
}

func resources() []resource {
	return []resource{{
		URI:         SkillGuideURI,
		Name:        skillGuideName,
		Description: skillGuideDesc,
		MIMEType:    markdownMIMEType,
		Text:        skillGuide,
	}}
}

func (r resource) Resource() mcpgo.Resource {
	return mcpgo.NewResource(r.URI, r.Name,
		mcpgo.WithResourceDescription(r.Description),
		mcpgo.WithMIMEType(r.MIMEType),
	)
}

func (r resource) Contents() []mcpgo.ResourceContents {
	return []mcpgo.ResourceContents{
		mcpgo.TextResourceContents{
			URI:      r.URI,
			MIMEType: r.MIMEType,
			Text:     r.Text,
		},
	}
}
