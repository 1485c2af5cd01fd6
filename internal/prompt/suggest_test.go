package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSystem(t *testing.T) {
	pc := Context{
		Shell:   "zsh",
		OS:      "linux",
		Arch:    "amd64",
		WorkDir: "/home/user/project",
	}

	got := System(pc)

	for _, want := range []string{
		"Shell: zsh",
		"Operating System: linux",
		"Architecture: amd64",
		"Current Directory: /home/user/project",
		"no markdown fences",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("System() missing %q", want)
		}
	}
	if strings.Contains(got, "Directory Contents") {
		t.Error("System() includes listing section without a listing")
	}
}

func TestSystemWithListing(t *testing.T) {
	pc := Context{Shell: "bash", Listing: []string{"main.go", "pkg/"}}
	got := System(pc)
	if !strings.Contains(got, "Directory Contents: main.go, pkg/") {
		t.Errorf("System() listing block missing:\n%s", got)
	}
}

func TestSystemDefaultsShell(t *testing.T) {
	got := System(Context{})
	if !strings.Contains(got, "Shell: bash") {
		t.Error("System() should fall back to bash")
	}
}

func TestUser(t *testing.T) {
	if got := User("git st"); got != "git st" {
		t.Errorf("User() = %q, want raw input", got)
	}
}

func TestExplainUser(t *testing.T) {
	got := ExplainUser("tar -xzf a.tgz")
	if !strings.Contains(got, "tar -xzf a.tgz") {
		t.Errorf("ExplainUser() = %q", got)
	}
}

func TestWorkDirListing(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"main.go", "notes.txt", "zebra.lock"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "pkg"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		ignore []string
		max    int
		want   []string
	}{
		{"all entries", nil, 10, []string{"main.go", "notes.txt", "pkg/", "zebra.lock"}},
		{"ignore glob", []string{"*.lock"}, 10, []string{"main.go", "notes.txt", "pkg/"}},
		{"capped", nil, 2, []string{"main.go", "notes.txt"}},
		{"zero max", nil, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorkDirListing(dir, tt.ignore, tt.max)
			if len(got) != len(tt.want) {
				t.Fatalf("WorkDirListing() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWorkDirListingMissingDir(t *testing.T) {
	if got := WorkDirListing(filepath.Join(t.TempDir(), "nope"), nil, 5); got != nil {
		t.Errorf("WorkDirListing() on missing dir = %v, want nil", got)
	}
}
