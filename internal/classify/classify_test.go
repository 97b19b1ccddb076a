package classify_test

import (
	"reflect"
	"strings"
	"testing"

	"autokit/internal/classify"
	"autokit/internal/config"
)

func TestClassifyDefaultTable(t *testing.T) {
	c := classify.New(classify.DefaultExtensionMap())
	tests := []struct {
		ext  string
		want string
	}{
		{".pdf", "Documents"},
		{".jpg", "Images"},
		{".JPG", "Images"},
		{".Jpeg", "Images"},
		{".py", "Code"},
		{".mkv", "Videos"},
		{".flac", "Audio"},
		{".7z", "Archives"},
		{".xyz", "Others"},
		{"", "Others"},
		{"pdf", "Others"},
	}
	for _, tc := range tests {
		if got := c.Classify(tc.ext); got != tc.want {
			t.Fatalf("Classify(%q) = %q, want %q", tc.ext, got, tc.want)
		}
	}
}

func TestEveryConfiguredExtensionMapsToItsCategory(t *testing.T) {
	c := classify.New(classify.DefaultExtensionMap())
	for _, category := range config.DefaultCategories() {
		for _, ext := range category.Extensions {
			if got := c.Classify(ext); got != category.Name {
				t.Fatalf("Classify(%q) = %q, want %q", ext, got, category.Name)
			}
			if got := c.Classify(strings.ToUpper(ext)); got != category.Name {
				t.Fatalf("Classify(%q) = %q, want %q", strings.ToUpper(ext), got, category.Name)
			}
		}
	}
}

func TestFirstDeclaredCategoryWinsAndOverlapsAreReported(t *testing.T) {
	table, err := classify.NewExtensionMap([]config.Category{
		{Name: "Web", Extensions: []string{".html", "CSS"}},
		{Name: "Code", Extensions: []string{".py", ".html"}},
		{Name: "Docs", Extensions: []string{".html"}},
	})
	if err != nil {
		t.Fatalf("NewExtensionMap: %v", err)
	}
	c := classify.New(table)
	if got := c.Classify(".HTML"); got != "Web" {
		t.Fatalf("expected first category to win, got %q", got)
	}
	if got := c.Classify(".css"); got != "Web" {
		t.Fatalf("expected extension without dot to be normalized, got %q", got)
	}

	overlaps := table.Overlaps()
	want := []classify.Overlap{{Extension: ".html", Winner: "Web", Shadowed: []string{"Code", "Docs"}}}
	if !reflect.DeepEqual(overlaps, want) {
		t.Fatalf("unexpected overlaps: %+v", overlaps)
	}
}

func TestDefaultTableHasNoOverlaps(t *testing.T) {
	if overlaps := classify.DefaultExtensionMap().Overlaps(); len(overlaps) != 0 {
		t.Fatalf("expected disjoint default table, got %+v", overlaps)
	}
}

func TestFoldersIncludeFallbackOnce(t *testing.T) {
	folders := classify.DefaultExtensionMap().Folders()
	want := []string{"Images", "Documents", "Videos", "Audio", "Code", "Archives", "Others"}
	if !reflect.DeepEqual(folders, want) {
		t.Fatalf("unexpected folders: %v", folders)
	}

	table, err := classify.NewExtensionMap([]config.Category{{Name: "Others", Extensions: []string{".bin"}}})
	if err != nil {
		t.Fatalf("NewExtensionMap: %v", err)
	}
	if got := table.Folders(); !reflect.DeepEqual(got, []string{"Others"}) {
		t.Fatalf("expected fallback to be listed once, got %v", got)
	}
}

func TestNewExtensionMapRejectsEmptyName(t *testing.T) {
	if _, err := classify.NewExtensionMap([]config.Category{{Name: " "}}); err == nil {
		t.Fatal("expected error for empty category name")
	}
}

func TestTableIsImmutable(t *testing.T) {
	input := []config.Category{{Name: "Images", Extensions: []string{".png"}}}
	table, err := classify.NewExtensionMap(input)
	if err != nil {
		t.Fatalf("NewExtensionMap: %v", err)
	}
	input[0].Name = "Changed"
	input[0].Extensions[0] = ".gif"
	c := classify.New(table)
	if got := c.Classify(".png"); got != "Images" {
		t.Fatalf("expected table to be unaffected by caller mutation, got %q", got)
	}
}

func TestZeroTableFallsBack(t *testing.T) {
	var c classify.Classifier
	if got := c.Classify(".png"); got != classify.FallbackCategory {
		t.Fatalf("expected fallback, got %q", got)
	}
}
