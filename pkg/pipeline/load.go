package pipeline

import (
	"context"
	"time"

	"github.com/kinview/kinview/pkg/kinship"
	"github.com/kinview/kinview/pkg/observability"
	"github.com/kinview/kinview/pkg/source"
)

// Load reads the kinship graph at location, a dataset directory or a
// MongoDB URI. database selects the MongoDB database and is ignored for
// directories.
func Load(ctx context.Context, location, database string) (*kinship.Graph, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, location)
	start := time.Now()

	g, err := load(ctx, location, database)
	people := 0
	if g != nil {
		people = g.Len()
	}
	hooks.OnLoadComplete(ctx, location, people, time.Since(start), err)
	return g, err
}

func load(ctx context.Context, location, database string) (*kinship.Graph, error) {
	src, err := source.Open(ctx, location, database)
	if err != nil {
		return nil, err
	}
	defer src.Close(ctx)
	return src.Load(ctx)
}
