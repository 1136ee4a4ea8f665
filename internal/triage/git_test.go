package triage

import (
	"testing"
)

const samplePatch = `diff --git a/internal/a.go b/internal/a.go
index 1111111..2222222 100644
--- a/internal/a.go
+++ b/internal/a.go
@@ -1,3 +1,3 @@
 package a
-old line
+new line
diff --git a/tests/b.go b/tests/b.go
index 3333333..4444444 100644
--- a/tests/b.go
+++ b/tests/b.go
@@ -1 +1 @@
-x
+y
diff --git a/cmd/c.go b/cmd/c.go
new file mode 100644
index 0000000..5555555
--- /dev/null
+++ b/cmd/c.go
@@ -0,0 +1 @@
+package main
`

func TestParsePatch_SplitsFilesAndFilters(t *testing.T) {
	files := parsePatch(samplePatch, NewFilter())

	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2 (tests/b.go filtered)", len(files))
	}
	if files[0].Path != "internal/a.go" {
		t.Errorf("files[0].Path = %q, want %q", files[0].Path, "internal/a.go")
	}
	if files[1].Path != "cmd/c.go" {
		t.Errorf("files[1].Path = %q, want %q", files[1].Path, "cmd/c.go")
	}
}

func TestParsePatch_LineOrigins(t *testing.T) {
	files := parsePatch(samplePatch, NewFilter())
	if len(files) == 0 {
		t.Fatal("no files parsed")
	}

	want := []DiffLine{
		{OriginFileHeader, "diff --git a/internal/a.go b/internal/a.go"},
		{OriginFileHeader, "index 1111111..2222222 100644"},
		{OriginFileHeader, "--- a/internal/a.go"},
		{OriginFileHeader, "+++ b/internal/a.go"},
		{OriginHunkHeader, "@@ -1,3 +1,3 @@"},
		{OriginContext, "package a"},
		{OriginRemoved, "old line"},
		{OriginAdded, "new line"},
	}

	got := files[0].Lines
	if len(got) != len(want) {
		t.Fatalf("len(lines) = %d, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("lines[%d] = {%q %q}, want {%q %q}",
				i, got[i].Origin, got[i].Content, want[i].Origin, want[i].Content)
		}
	}
}

func TestParsePatch_Empty(t *testing.T) {
	if files := parsePatch("", NewFilter()); len(files) != 0 {
		t.Errorf("parsePatch(\"\") = %v, want empty", files)
	}
}

func TestParsePatch_AllFilesFiltered(t *testing.T) {
	patch := `diff --git a/tests/only.go b/tests/only.go
index 1111111..2222222 100644
--- a/tests/only.go
+++ b/tests/only.go
@@ -1 +1 @@
-x
+y
`
	if files := parsePatch(patch, NewFilter()); len(files) != 0 {
		t.Errorf("parsePatch() = %v, want empty (commit should be dropped upstream)", files)
	}
}

func TestPatchFilePath(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"modified file", "diff --git a/src/x.go b/src/x.go", "src/x.go"},
		{"nested path", "diff --git a/a/b/c.go b/a/b/c.go", "a/b/c.go"},
		{"malformed", "diff --git", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := patchFilePath(tt.line); got != tt.want {
				t.Errorf("patchFilePath(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}
