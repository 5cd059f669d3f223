package tools

import (
	"context"
	"fmt"

	"github.com/lydakis/cuebridge/internal/graphql"
	"github.com/lydakis/cuebridge/internal/response"
	"github.com/mark3labs/mcp-go/mcp"
)

const getCueDocument = `query GetCue($id: ID!) {
  cue(id: $id) {
    id
    name
    cueNumber
    fadeInTime
    fadeOutTime
    notes
    look { id }
    cueList { id }
  }
}`

const updateCueDocument = `mutation UpdateCue($id: ID!, $input: CueInput!) {
  updateCue(id: $id, input: $input) {
    id
    name
    cueNumber
    fadeInTime
    fadeOutTime
    notes
    look { id }
  }
}`

type cueRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CueNumber   float64 `json:"cueNumber"`
	FadeInTime  float64 `json:"fadeInTime"`
	FadeOutTime float64 `json:"fadeOutTime"`
	Notes       string  `json:"notes"`
	Look        *idOnly `json:"look"`
	CueList     *idOnly `json:"cueList,omitempty"`
}

func cueTools(d Deps) []Tool {
	return []Tool{
		{
			Definition: mcp.Tool{
				Name:        "update_cue",
				Description: "Update a cue. Fields left out keep their current values.",
				InputSchema: objectSchema(map[string]any{
					"cueId":       stringProp("Cue ID."),
					"name":        stringProp("New cue name."),
					"cueNumber":   numberProp("New cue number."),
					"lookId":      stringProp("Look the cue recalls."),
					"fadeInTime":  numberProp("Fade-in time in seconds."),
					"fadeOutTime": numberProp("Fade-out time in seconds."),
					"notes":       stringProp("Operator notes."),
				}, "cueId"),
			},
			Handler: d.updateCue,
		},
	}
}

// updateCue reads the cue, then writes the merged input. The backend's
// CueInput requires the parent cue list and look, so the current values are
// carried over. The two calls are not atomic: a change made elsewhere
// between them is overwritten.
func (d Deps) updateCue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "cueId")
	if err != nil {
		return response.Invalid("%v", err), nil
	}
	overrides, err := cueOverrides(req)
	if err != nil {
		return response.Invalid("%v", err), nil
	}

	var current struct {
		Cue *cueRecord `json:"cue"`
	}
	if err := d.Client.Execute(ctx, graphql.Build("GetCue", getCueDocument, map[string]any{"id": id}), &current); err != nil {
		return response.Failure("update cue", err), nil
	}
	cue := current.Cue
	if cue == nil {
		return response.Failure("update cue", fmt.Errorf("cue %s not found", id)), nil
	}
	if cue.CueList == nil || cue.Look == nil {
		return response.Failure("update cue", fmt.Errorf("cue %s has no cue list or look", id)), nil
	}

	input := map[string]any{
		"cueListId":   cue.CueList.ID,
		"lookId":      cue.Look.ID,
		"name":        cue.Name,
		"cueNumber":   cue.CueNumber,
		"fadeInTime":  cue.FadeInTime,
		"fadeOutTime": cue.FadeOutTime,
		"notes":       cue.Notes,
	}
	for k, v := range overrides {
		input[k] = v
	}

	var updated struct {
		Cue *cueRecord `json:"updateCue"`
	}
	if err := d.Client.Execute(ctx, graphql.Build("UpdateCue", updateCueDocument, map[string]any{"id": id, "input": input}), &updated); err != nil {
		return response.Failure("update cue", err), nil
	}
	if updated.Cue == nil {
		return response.Failure("update cue", fmt.Errorf("updateCue returned no cue")), nil
	}
	updated.Cue.CueList = cue.CueList
	return response.Structured(map[string]any{"cue": updated.Cue}), nil
}

func cueOverrides(req mcp.CallToolRequest) (map[string]any, error) {
	out := map[string]any{}
	for _, key := range []string{"name", "lookId", "notes"} {
		if v, ok := optionalString(req, key); ok {
			out[key] = v
		}
	}
	for _, key := range []string{"cueNumber", "fadeInTime", "fadeOutTime"} {
		v, ok, err := optionalNumber(req, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if key != "cueNumber" {
			if err := nonNegative(key, v); err != nil {
				return nil, err
			}
		}
		out[key] = v
	}
	return out, nil
}
