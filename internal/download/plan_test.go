package download

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/bcdl/internal/model"
)

func planAlbums() []*model.Album {
	return []*model.Album{
		{
			Artist: "Artist",
			Title:  "Keep",
			Tracks: []*model.Track{
				{Number: 1, Name: "One", URL: "https://t4.bcbits.com/1"},
				{Number: 2, Name: "", URL: "https://t4.bcbits.com/2"},
				{Number: 3, Name: "Three", URL: ""},
				{Number: 4, Name: "Four", URL: "https://t4.bcbits.com/4"},
			},
		},
		{
			Artist: "Artist",
			Title:  "Drop",
			Tracks: []*model.Track{{Number: 1, Name: "Gone", URL: "https://t4.bcbits.com/g"}},
		},
	}
}

func TestBuildPlan(t *testing.T) {
	root := t.TempDir()
	albums := planAlbums()

	keepDir := filepath.Join(root, "Artist", "Keep")
	if err := os.MkdirAll(keepDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(keepDir, "4 - Four.mp3"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	plan, err := BuildPlan(albums, PlanOptions{Root: root, SkipAlbums: []string{"Drop"}})
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}

	if len(plan.Requests) != 1 || plan.Requests[0].Track.Name != "One" {
		t.Fatalf("requests = %+v", plan.Requests)
	}
	if plan.Requests[0].Dir != keepDir {
		t.Errorf("Dir = %q, want %q", plan.Requests[0].Dir, keepDir)
	}

	reasons := make(map[SkipReason]int)
	for _, s := range plan.Skipped {
		reasons[s.Reason]++
	}
	want := map[SkipReason]int{SkipMissingFields: 2, SkipFileExists: 1, SkipAlbumExcluded: 1}
	for reason, n := range want {
		if reasons[reason] != n {
			t.Errorf("%s: got %d, want %d", reason, reasons[reason], n)
		}
	}

	if _, ok := plan.Dirs[albums[1]]; ok {
		t.Error("excluded album should have no directory")
	}
	if _, err := os.Stat(filepath.Join(root, "Artist", "Drop")); !os.IsNotExist(err) {
		t.Error("excluded album directory was created")
	}
	if got := plan.AlbumRequests(albums[0]); len(got) != 1 {
		t.Errorf("AlbumRequests = %d, want 1", len(got))
	}
}

func TestBuildPlan_DryRunCreatesNothing(t *testing.T) {
	root := t.TempDir()

	plan, err := BuildPlan(planAlbums(), PlanOptions{Root: root, DryRun: true})
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if len(plan.Requests) != 3 {
		t.Errorf("got %d requests, want 3", len(plan.Requests))
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run created %d entries", len(entries))
	}
}

func TestBuildPlan_UnwritableRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(root, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := BuildPlan(planAlbums(), PlanOptions{Root: root}); err == nil {
		t.Error("expected an error when the root is a file")
	}
}
