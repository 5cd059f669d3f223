package tools

import (
	"testing"

	"github.com/lydakis/cuebridge/internal/response"
)

func TestListProjectsCountsEntries(t *testing.T) {
	srv, _ := fakeBackend(t, map[string]string{
		"projects": `{"data":{"projects":[{"id":"p1","name":"Hamlet"},{"id":"p2","name":"Tempest"}]}}`,
	})
	d := testDeps(srv.URL)

	res := callTool(t, d, "list_projects", nil)
	if res.IsError {
		t.Fatalf("list_projects failed: %s", response.Text(res))
	}
	if got := structured(t, res)["count"]; got != 2.0 {
		t.Fatalf("count = %v, want 2", got)
	}
}

func TestListProjectsEmptyIsEmptyList(t *testing.T) {
	srv, _ := fakeBackend(t, map[string]string{
		"projects": `{"data":{"projects":null}}`,
	})
	d := testDeps(srv.URL)

	got := structured(t, callTool(t, d, "list_projects", nil))
	list, ok := got["projects"].([]any)
	if !ok || len(list) != 0 {
		t.Fatalf("projects = %#v, want []", got["projects"])
	}
}

func TestGetProjectSummarizesCounts(t *testing.T) {
	srv, calls := fakeBackend(t, map[string]string{
		"project(id": `{"data":{"project":{"id":"p1","name":"Hamlet","description":"",
			"fixtures":[{"id":"f1"},{"id":"f2"},{"id":"f3"}],
			"looks":[{"id":"l1"}],
			"cueLists":[{"id":"cl1","name":"Main","cues":[{"id":"c1"},{"id":"c2"}]}]}}}`,
	})
	d := testDeps(srv.URL)

	res := callTool(t, d, "get_project", map[string]any{"projectId": "p1"})
	if res.IsError {
		t.Fatalf("get_project failed: %s", response.Text(res))
	}
	got := structured(t, res)
	if got["fixtureCount"] != 3.0 || got["lookCount"] != 1.0 {
		t.Fatalf("structured = %#v", got)
	}
	lists, _ := got["cueLists"].([]any)
	first, _ := lists[0].(map[string]any)
	if first["cueCount"] != 2.0 {
		t.Fatalf("cueLists = %#v", lists)
	}
	if calls()[0].Variables["id"] != "p1" {
		t.Fatalf("variables = %#v", calls()[0].Variables)
	}
}

func TestGetProjectNotFound(t *testing.T) {
	srv, _ := fakeBackend(t, map[string]string{
		"project(id": `{"data":{"project":null}}`,
	})
	d := testDeps(srv.URL)

	res := callTool(t, d, "get_project", map[string]any{"projectId": "missing"})
	if !res.IsError {
		t.Fatal("expected error result")
	}
}
