package tools

import (
	"context"
	"errors"

	"github.com/lydakis/cuebridge/internal/graphql"
	"github.com/lydakis/cuebridge/internal/response"
	"github.com/mark3labs/mcp-go/mcp"
)

const listProjectsDocument = `query ListProjects {
  projects {
    id
    name
    description
    createdAt
    updatedAt
  }
}`

const getProjectDocument = `query GetProject($id: ID!) {
  project(id: $id) {
    id
    name
    description
    fixtures { id }
    looks { id }
    cueLists { id name cues { id } }
  }
}`

type projectSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

type idOnly struct {
	ID string `json:"id"`
}

type projectDetail struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Fixtures    []idOnly `json:"fixtures"`
	Looks       []idOnly `json:"looks"`
	CueLists    []struct {
		ID   string   `json:"id"`
		Name string   `json:"name"`
		Cues []idOnly `json:"cues"`
	} `json:"cueLists"`
}

func projectTools(d Deps) []Tool {
	return []Tool{
		{
			Definition: mcp.Tool{
				Name:        "list_projects",
				Description: "List lighting projects on the server.",
				InputSchema: objectSchema(map[string]any{}),
			},
			Handler: d.listProjects,
		},
		{
			Definition: mcp.Tool{
				Name:        "get_project",
				Description: "Summarize one project: fixture, look and cue list counts.",
				InputSchema: objectSchema(map[string]any{
					"projectId": stringProp("Project ID."),
				}, "projectId"),
			},
			Handler: d.getProject,
		},
	}
}

func (d Deps) listProjects(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var out struct {
		Projects []projectSummary `json:"projects"`
	}
	if err := d.Client.Execute(ctx, graphql.Build("ListProjects", listProjectsDocument, nil), &out); err != nil {
		return response.Failure("list projects", err), nil
	}
	if out.Projects == nil {
		out.Projects = []projectSummary{}
	}
	return response.Structured(map[string]any{
		"projects": out.Projects,
		"count":    len(out.Projects),
	}), nil
}

func (d Deps) getProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "projectId")
	if err != nil {
		return response.Invalid("%v", err), nil
	}

	var out struct {
		Project *projectDetail `json:"project"`
	}
	if err := d.Client.Execute(ctx, graphql.Build("GetProject", getProjectDocument, map[string]any{"id": id}), &out); err != nil {
		return response.Failure("get project", err), nil
	}
	if out.Project == nil {
		return response.Failure("get project", errors.New("project "+id+" not found")), nil
	}

	p := out.Project
	cueLists := make([]map[string]any, 0, len(p.CueLists))
	for _, cl := range p.CueLists {
		cueLists = append(cueLists, map[string]any{
			"id":       cl.ID,
			"name":     cl.Name,
			"cueCount": len(cl.Cues),
		})
	}
	return response.Structured(map[string]any{
		"id":           p.ID,
		"name":         p.Name,
		"description":  p.Description,
		"fixtureCount": len(p.Fixtures),
		"lookCount":    len(p.Looks),
		"cueLists":     cueLists,
	}), nil
}
