package tools

import (
	"context"

	"github.com/lydakis/cuebridge/internal/graphql"
	"github.com/lydakis/cuebridge/internal/response"
	"github.com/mark3labs/mcp-go/mcp"
)

const defaultFadeOutSeconds = 3.0

const goToCueDocument = `mutation GoToCue($cueListId: ID!, $cueNumber: Float!, $fadeInTime: Float) {
  goToCue(cueListId: $cueListId, cueNumber: $cueNumber, fadeInTime: $fadeInTime)
}`

const stopCueListDocument = `mutation StopCueList($cueListId: ID!) {
  stopCueList(cueListId: $cueListId)
}`

const fadeToBlackDocument = `mutation FadeToBlack($fadeOutTime: Float!) {
  fadeToBlack(fadeOutTime: $fadeOutTime)
}`

func playbackTools(d Deps) []Tool {
	return []Tool{
		{
			Definition: mcp.Tool{
				Name:        "go_to_cue",
				Description: "Jump a cue list to a cue number. The lighting server runs the fade.",
				InputSchema: objectSchema(map[string]any{
					"cueListId":  stringProp("Cue list ID."),
					"cueNumber":  numberProp("Cue number, e.g. 12 or 12.5."),
					"fadeInTime": numberProp("Optional fade-in override in seconds."),
				}, "cueListId", "cueNumber"),
			},
			Handler: d.goToCue,
		},
		{
			Definition: mcp.Tool{
				Name:        "stop_cue_list",
				Description: "Stop playback of a cue list.",
				InputSchema: objectSchema(map[string]any{
					"cueListId": stringProp("Cue list ID."),
				}, "cueListId"),
			},
			Handler: d.stopCueList,
		},
		{
			Definition: mcp.Tool{
				Name:        "fade_to_black",
				Description: "Fade every output to zero.",
				InputSchema: objectSchema(map[string]any{
					"fadeOutTime": numberProp("Fade time in seconds (default 3)."),
				}),
			},
			Handler: d.fadeToBlack,
		},
	}
}

func (d Deps) goToCue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cueListID, err := requireString(req, "cueListId")
	if err != nil {
		return response.Invalid("%v", err), nil
	}
	cueNumber, err := requireNumber(req, "cueNumber")
	if err != nil {
		return response.Invalid("%v", err), nil
	}
	vars := map[string]any{"cueListId": cueListID, "cueNumber": cueNumber}
	if fade, ok, err := optionalNumber(req, "fadeInTime"); err != nil {
		return response.Invalid("%v", err), nil
	} else if ok {
		if err := nonNegative("fadeInTime", fade); err != nil {
			return response.Invalid("%v", err), nil
		}
		vars["fadeInTime"] = fade
	}

	var out struct {
		GoToCue bool `json:"goToCue"`
	}
	if err := d.Client.Execute(ctx, graphql.Build("GoToCue", goToCueDocument, vars), &out); err != nil {
		return response.Failure("go to cue", err), nil
	}
	return response.Structured(map[string]any{
		"success":   out.GoToCue,
		"cueListId": cueListID,
		"cueNumber": cueNumber,
	}), nil
}

func (d Deps) stopCueList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cueListID, err := requireString(req, "cueListId")
	if err != nil {
		return response.Invalid("%v", err), nil
	}

	var out struct {
		StopCueList bool `json:"stopCueList"`
	}
	if err := d.Client.Execute(ctx, graphql.Build("StopCueList", stopCueListDocument, map[string]any{"cueListId": cueListID}), &out); err != nil {
		return response.Failure("stop cue list", err), nil
	}
	return response.Structured(map[string]any{
		"success":   out.StopCueList,
		"cueListId": cueListID,
	}), nil
}

func (d Deps) fadeToBlack(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fade, ok, err := optionalNumber(req, "fadeOutTime")
	if err != nil {
		return response.Invalid("%v", err), nil
	}
	if !ok {
		fade = defaultFadeOutSeconds
	}
	if err := nonNegative("fadeOutTime", fade); err != nil {
		return response.Invalid("%v", err), nil
	}

	var out struct {
		FadeToBlack bool `json:"fadeToBlack"`
	}
	if err := d.Client.Execute(ctx, graphql.Build("FadeToBlack", fadeToBlackDocument, map[string]any{"fadeOutTime": fade}), &out); err != nil {
		return response.Failure("fade to black", err), nil
	}
	return response.Structured(map[string]any{
		"success":     out.FadeToBlack,
		"fadeOutTime": fade,
	}), nil
}
