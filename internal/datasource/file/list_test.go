package file

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestReadList(t *testing.T) {
	content := `
# EFD fiscal 2024
data/efd_junho.txt
   # reprocessed after rectification
data/efd_julho.txt

   https://portal.example/efd_agosto.txt
`
	got, err := ReadList(writeManifest(t, content))
	if err != nil {
		t.Fatalf("ReadList: %v", err)
	}

	want := []string{
		"data/efd_junho.txt",
		"data/efd_julho.txt",
		"https://portal.example/efd_agosto.txt",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ReadList = %#v, want %#v", got, want)
	}
}

func TestReadListEmptyFile(t *testing.T) {
	got, err := ReadList(writeManifest(t, "# only comments\n\n"))
	if err != nil {
		t.Fatalf("ReadList: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no entries, got %#v", got)
	}
}

func TestReadListMissingFile(t *testing.T) {
	if _, err := ReadList(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
