package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/lydakis/cuebridge/internal/bulk"
	"github.com/lydakis/cuebridge/internal/graphql"
	"github.com/lydakis/cuebridge/internal/response"
	"github.com/mark3labs/mcp-go/mcp"
)

type bulkInput int

const (
	byIDs bulkInput = iota
	byItems
)

// bulkOperation describes one bulk tool. All of them share bulkHandler so
// partial failure is reported the same way everywhere.
type bulkOperation struct {
	name        string
	description string
	op          bulk.Operation
	field       string // mutation field returning { successCount failedIds }
	input       bulkInput
	inputType   string // GraphQL list item type for byItems
	itemsNeedID bool
	parent      string // optional scoping argument, e.g. boardId
}

var bulkOperations = []bulkOperation{
	{
		name:        "bulk_create_fixtures",
		description: "Create many fixture instances. Each item is a fixture definition including projectId.",
		op:          bulk.Operation{Action: "create", Entity: "fixtures"},
		field:       "bulkCreateFixtures",
		input:       byItems,
		inputType:   "FixtureInstanceInput",
	},
	{
		name:        "bulk_update_fixtures",
		description: "Update many fixture instances. Each item needs an id plus the fields to change.",
		op:          bulk.Operation{Action: "update", Entity: "fixtures"},
		field:       "bulkUpdateFixtures",
		input:       byItems,
		inputType:   "FixtureUpdateItem",
		itemsNeedID: true,
	},
	{
		name:        "bulk_delete_fixtures",
		description: "Delete many fixture instances by ID.",
		op:          bulk.Operation{Action: "delete", Entity: "fixtures"},
		field:       "bulkDeleteFixtures",
		input:       byIDs,
	},
	{
		name:        "bulk_create_looks",
		description: "Create many looks. Each item is a look definition including projectId.",
		op:          bulk.Operation{Action: "create", Entity: "looks"},
		field:       "bulkCreateLooks",
		input:       byItems,
		inputType:   "LookInput",
	},
	{
		name:        "bulk_update_looks",
		description: "Update many looks. Each item needs an id plus the fields to change.",
		op:          bulk.Operation{Action: "update", Entity: "looks"},
		field:       "bulkUpdateLooks",
		input:       byItems,
		inputType:   "LookUpdateItem",
		itemsNeedID: true,
	},
	{
		name:        "bulk_delete_looks",
		description: "Delete many looks by ID.",
		op:          bulk.Operation{Action: "delete", Entity: "looks"},
		field:       "bulkDeleteLooks",
		input:       byIDs,
	},
	{
		name:        "bulk_create_cues",
		description: "Create many cues. Each item is a cue definition including cueListId and lookId.",
		op:          bulk.Operation{Action: "create", Entity: "cues"},
		field:       "bulkCreateCues",
		input:       byItems,
		inputType:   "CueInput",
	},
	{
		name:        "bulk_update_cues",
		description: "Update many cues. Each item needs an id plus the fields to change.",
		op:          bulk.Operation{Action: "update", Entity: "cues"},
		field:       "bulkUpdateCues",
		input:       byItems,
		inputType:   "CueUpdateItem",
		itemsNeedID: true,
	},
	{
		name:        "bulk_delete_cues",
		description: "Delete many cues by ID.",
		op:          bulk.Operation{Action: "delete", Entity: "cues"},
		field:       "bulkDeleteCues",
		input:       byIDs,
	},
	{
		name:        "bulk_delete_cue_lists",
		description: "Delete many cue lists by ID, including their cues.",
		op:          bulk.Operation{Action: "delete", Entity: "cue lists"},
		field:       "bulkDeleteCueLists",
		input:       byIDs,
	},
	{
		name:        "bulk_create_look_boards",
		description: "Create many look boards. Each item is a board definition including projectId.",
		op:          bulk.Operation{Action: "create", Entity: "look boards"},
		field:       "bulkCreateLookBoards",
		input:       byItems,
		inputType:   "LookBoardInput",
	},
	{
		name:        "bulk_delete_look_boards",
		description: "Delete many look boards by ID.",
		op:          bulk.Operation{Action: "delete", Entity: "look boards"},
		field:       "bulkDeleteLookBoards",
		input:       byIDs,
	},
	{
		name:        "bulk_add_looks_to_board",
		description: "Add many looks to a board as buttons. Each item has lookId and optional layoutX, layoutY, color, label.",
		op:          bulk.Operation{Action: "add", Entity: "board buttons"},
		field:       "bulkAddLooksToBoard",
		input:       byItems,
		inputType:   "LookBoardButtonInput",
		parent:      "boardId",
	},
	{
		name:        "bulk_remove_looks_from_board",
		description: "Remove many buttons from a board by button ID.",
		op:          bulk.Operation{Action: "remove", Entity: "board buttons"},
		field:       "bulkRemoveLooksFromBoard",
		input:       byIDs,
		parent:      "boardId",
	},
	{
		name:        "bulk_update_board_buttons",
		description: "Update many board buttons (position, color, label). Each item needs an id.",
		op:          bulk.Operation{Action: "update", Entity: "board buttons"},
		field:       "bulkUpdateLookBoardButtons",
		input:       byItems,
		inputType:   "LookBoardButtonUpdateItem",
		itemsNeedID: true,
		parent:      "boardId",
	},
}

func bulkTools(d Deps) []Tool {
	out := make([]Tool, 0, len(bulkOperations))
	for _, op := range bulkOperations {
		out = append(out, Tool{
			Definition: op.definition(),
			Handler:    d.bulkHandler(op),
		})
	}
	return out
}

func (b bulkOperation) definition() mcp.Tool {
	props := map[string]any{}
	var required []string
	if b.parent != "" {
		props[b.parent] = stringProp("ID of the parent entity.")
		required = append(required, b.parent)
	}
	switch b.input {
	case byIDs:
		props["ids"] = idListProp("IDs to " + b.op.Action + ".")
		required = append(required, "ids")
	case byItems:
		props["items"] = objectListProp("Items to " + b.op.Action + ".")
		required = append(required, "items")
	}

	return mcp.Tool{
		Name:        b.name,
		Description: b.description + " Partial failure is reported per item; the call succeeds if at least one item succeeded.",
		InputSchema: objectSchema(props, required...),
	}
}

// operationName turns bulk_update_fixtures into BulkUpdateFixtures.
func (b bulkOperation) operationName() string {
	var sb strings.Builder
	for _, part := range strings.Split(b.name, "_") {
		if part == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(part[1:])
	}
	return sb.String()
}

func (b bulkOperation) document() string {
	var params, args []string
	if b.parent != "" {
		params = append(params, fmt.Sprintf("$%s: ID!", b.parent))
		args = append(args, fmt.Sprintf("%s: $%s", b.parent, b.parent))
	}
	switch b.input {
	case byIDs:
		params = append(params, "$ids: [ID!]!")
		args = append(args, "ids: $ids")
	case byItems:
		params = append(params, fmt.Sprintf("$input: [%s!]!", b.inputType))
		args = append(args, "input: $input")
	}
	return fmt.Sprintf("mutation %s(%s) {\n  %s(%s) {\n    successCount\n    failedIds\n  }\n}",
		b.operationName(), strings.Join(params, ", "), b.field, strings.Join(args, ", "))
}

func (d Deps) bulkHandler(b bulkOperation) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := "bulk " + b.op.String()
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		vars := map[string]any{}
		if b.parent != "" {
			parentID, err := requireString(req, b.parent)
			if err != nil {
				return response.Invalid("%v", err), nil
			}
			vars[b.parent] = parentID
		}

		var requested int
		switch b.input {
		case byIDs:
			ids, err := requireStringList(req, "ids")
			if err != nil {
				return response.Invalid("%v", err), nil
			}
			vars["ids"] = ids
			requested = len(ids)
		case byItems:
			items, err := requireObjectList(req, "items", b.itemsNeedID)
			if err != nil {
				return response.Invalid("%v", err), nil
			}
			vars["input"] = items
			requested = len(items)
		}

		var out map[string]*bulk.Result
		if err := d.Client.Execute(ctx, graphql.Build(b.operationName(), b.document(), vars), &out); err != nil {
			return response.Failure(action, err), nil
		}
		res := out[b.field]
		if res == nil {
			return response.Failure(action, fmt.Errorf("%s returned no result", b.field)), nil
		}

		report := bulk.Summarize(b.op, requested, *res)
		if !report.Consistent() {
			d.logger().Warn("bulk result does not account for every item",
				"tool", b.name,
				"requested", requested,
				"successCount", report.SuccessCount,
				"failureCount", report.FailureCount,
			)
		}
		return response.Structured(report), nil
	}
}
