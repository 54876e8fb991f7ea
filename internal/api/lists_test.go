package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_ListReadingLists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lists" {
			t.Errorf("expected path /lists, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("visibility"); got != "shared" {
			t.Errorf("expected visibility=shared, got %q", got)
		}
		json.NewEncoder(w).Encode([]ReadingListSummary{
			{ID: "rl-1", Title: "Winter reading", ItemCount: 4, Role: "owner"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, nil)
	lists, err := client.ListReadingLists(context.Background(), "shared")
	if err != nil {
		t.Fatalf("ListReadingLists failed: %v", err)
	}
	if len(lists) != 1 || lists[0].Title != "Winter reading" {
		t.Errorf("unexpected lists: %+v", lists)
	}
}

func TestClient_ListReadingListsWithoutVisibility(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("expected no query string, got %q", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]ReadingListSummary{})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, nil)
	if _, err := client.ListReadingLists(context.Background(), ""); err != nil {
		t.Fatalf("ListReadingLists failed: %v", err)
	}
}

func TestClient_PutListProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wantPath := "/lists/rl-1/items/it-2/progress"
		if r.URL.Path != wantPath {
			t.Errorf("expected path %s, got %s", wantPath, r.URL.Path)
		}
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}

		var req ListProgressInput
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode progress body: %v", err)
		}
		if req.Status != ListItemCompleted {
			t.Errorf("expected status completed, got %q", req.Status)
		}

		json.NewEncoder(w).Encode(ReadingListProgress{ListItemID: "it-2", Status: req.Status})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, nil)
	progress, err := client.PutListProgress(context.Background(), "rl-1", "it-2", ListProgressInput{Status: ListItemCompleted})
	if err != nil {
		t.Fatalf("PutListProgress failed: %v", err)
	}
	if progress.Status != ListItemCompleted {
		t.Errorf("status = %q, want %q", progress.Status, ListItemCompleted)
	}
}

func TestClient_SeriesPaths(t *testing.T) {
	var gotPaths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		switch {
		case r.URL.Path == "/libraries/lib-1/series" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode([]Series{{ID: 3, Name: "Earthsea"}})
		case r.URL.Path == "/libraries/lib-1/series/3/reading-status":
			json.NewEncoder(w).Encode(SeriesReadingStatus{SeriesID: 3, ReadingStatus: "reading", TotalBooks: 5, ReadBooks: 2})
		default:
			json.NewEncoder(w).Encode(Series{ID: 3, Name: "Earthsea"})
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, nil)
	ctx := context.Background()

	series, err := client.ListSeries(ctx, "lib-1")
	if err != nil {
		t.Fatalf("ListSeries failed: %v", err)
	}
	if len(series) != 1 || series[0].Name != "Earthsea" {
		t.Errorf("unexpected series: %+v", series)
	}

	status, err := client.GetSeriesReadingStatus(ctx, "lib-1", 3)
	if err != nil {
		t.Fatalf("GetSeriesReadingStatus failed: %v", err)
	}
	if status.ReadBooks != 2 || status.ReadingStatus != "reading" {
		t.Errorf("unexpected status: %+v", status)
	}

	if err := client.DeleteSeries(ctx, "lib-1", 3); err != nil {
		t.Fatalf("DeleteSeries failed: %v", err)
	}

	want := []string{
		"GET /libraries/lib-1/series",
		"GET /libraries/lib-1/series/3/reading-status",
		"DELETE /libraries/lib-1/series/3",
	}
	if len(gotPaths) != len(want) {
		t.Fatalf("requests = %v, want %v", gotPaths, want)
	}
	for i := range want {
		if gotPaths[i] != want[i] {
			t.Errorf("request %d = %q, want %q", i, gotPaths[i], want[i])
		}
	}
}
