package source

import (
	"context"
	"testing"

	kio "github.com/kinview/kinview/pkg/io"
	"github.com/kinview/kinview/pkg/kinship/kinshiptest"
)

func TestIsMongoURI(t *testing.T) {
	tests := []struct {
		location string
		want     bool
	}{
		{"mongodb://localhost:27017", true},
		{"mongodb+srv://cluster.example.net/family", true},
		{"data/", false},
		{"/srv/mongodb/data", false},
	}
	for _, tt := range tests {
		if got := IsMongoURI(tt.location); got != tt.want {
			t.Errorf("IsMongoURI(%q) = %v, want %v", tt.location, got, tt.want)
		}
	}
}

func TestOpenDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	want := kinshiptest.Family()
	if err := kio.Export(ctx, dir, &kio.Dataset{Graph: want}, 1); err != nil {
		t.Fatal(err)
	}

	src, err := Open(ctx, dir, "")
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close(ctx)
	if src.Name() != dir {
		t.Errorf("Name() = %q, want %q", src.Name(), dir)
	}
	g, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if g.Len() != want.Len() {
		t.Errorf("Len() = %d, want %d", g.Len(), want.Len())
	}
}

func TestOpenDirMissing(t *testing.T) {
	src, err := Open(context.Background(), t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := src.Load(context.Background()); err == nil {
		t.Error("Load() of an empty directory should fail")
	}
}
