package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"three-spheres", "Three Spheres"},
		{"sunset_mirrors", "Sunset Mirrors"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeScene(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestParseSceneMetadata(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.toml",
			content: `# Scene: Glass Row
# Description: Five glass spheres in a row

[camera]
vfov = 40.0`,
			expected: SceneInfo{
				Name:        "Glass Row",
				Description: "Five glass spheres in a row",
			},
		},
		{
			name:    "no_metadata.toml",
			content: `name = "ignored for display"`,
			expected: SceneInfo{
				Name: "No Metadata", // From filename
			},
		},
		{
			name: "mixed_content.toml",
			content: `#Scene: Tight Spacing
[camera]
# Description: after the header, ignored`,
			expected: SceneInfo{
				Name: "Tight Spacing",
			},
		},
		{
			name: "empty_scene_name.toml",
			content: `# Scene:
# Description:   Extra spaces   `,
			expected: SceneInfo{
				Name:        "Empty Scene Name",
				Description: "Extra spaces",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeScene(t, dir, tc.name, tc.content)

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}

			if result.ID != path || result.FilePath != path {
				t.Errorf("ID and FilePath should be %q, got %q and %q", path, result.ID, result.FilePath)
			}
			if result.Type != TypeFile {
				t.Errorf("Type = %q, want %q", result.Type, TypeFile)
			}
			if result.Name != tc.expected.Name {
				t.Errorf("Name = %q, want %q", result.Name, tc.expected.Name)
			}
			if result.Description != tc.expected.Description {
				t.Errorf("Description = %q, want %q", result.Description, tc.expected.Description)
			}
		})
	}
}

func TestParseSceneMetadata_MissingFile(t *testing.T) {
	result, err := ParseSceneMetadata(filepath.Join(t.TempDir(), "nonexistent.toml"))
	if err == nil {
		t.Error("Expected an error for a missing file")
	}
	if result.Name != "Nonexistent" {
		t.Errorf("Expected fallback name, got %q", result.Name)
	}
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "zeta.toml", "# Scene: Zeta\n")
	writeScene(t, dir, "alpha.toml", "# Scene: Alpha\n")
	writeScene(t, dir, "notes.txt", "# Scene: Not A Scene\n")

	scenes, err := ListSceneFiles(dir)
	if err != nil {
		t.Fatalf("ListSceneFiles() error: %v", err)
	}

	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scene files, got %d", len(scenes))
	}
	if scenes[0].Name != "Alpha" || scenes[1].Name != "Zeta" {
		t.Errorf("Expected scenes sorted by name, got %q, %q", scenes[0].Name, scenes[1].Name)
	}
}

func TestListSceneFiles_MissingDirectory(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Errorf("ListSceneFiles() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected empty, non-nil slice, got %v", scenes)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "extra.toml", "# Scene: Extra\n")

	all, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	builtins := BuiltinNames()
	if len(all) != len(builtins)+1 {
		t.Fatalf("Expected %d scenes, got %d", len(builtins)+1, len(all))
	}

	for i, name := range builtins {
		if all[i].ID != name || all[i].Type != TypeBuiltin {
			t.Errorf("Scene %d: expected built-in %q, got %+v", i, name, all[i])
		}
		if all[i].Description == "" {
			t.Errorf("Built-in scene %q has no description", name)
		}
	}

	last := all[len(all)-1]
	if last.Type != TypeFile || last.Name != "Extra" {
		t.Errorf("Expected the scene file last, got %+v", last)
	}
}
