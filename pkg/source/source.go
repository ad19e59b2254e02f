// Package source opens a kinship dataset from a directory of JSON files or
// from MongoDB.
//
//	src, err := source.Open(ctx, "data/", "")
//	src, err := source.Open(ctx, "mongodb://localhost:27017", "family")
//	defer src.Close(ctx)
//	g, err := src.Load(ctx)
package source

import (
	"context"
	"strings"

	kio "github.com/kinview/kinview/pkg/io"
	"github.com/kinview/kinview/pkg/kinship"
	"github.com/kinview/kinview/pkg/source/mongo"
)

// Source loads a kinship graph.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	Load(ctx context.Context) (*kinship.Graph, error)
	Close(ctx context.Context) error
}

// IsMongoURI reports whether location names a MongoDB server.
func IsMongoURI(location string) bool {
	return strings.HasPrefix(location, "mongodb://") || strings.HasPrefix(location, "mongodb+srv://")
}

// Open returns the source at location: a MongoDB URI (database selects the
// database) or a dataset directory.
func Open(ctx context.Context, location, database string) (Source, error) {
	if IsMongoURI(location) {
		s, err := mongo.Open(ctx, location, database)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return Dir(location), nil
}

// Dir is a dataset directory.
type Dir string

func (d Dir) Name() string { return string(d) }

func (d Dir) Load(ctx context.Context) (*kinship.Graph, error) {
	ds, err := kio.Load(ctx, string(d))
	if err != nil {
		return nil, err
	}
	return ds.Graph, nil
}

func (d Dir) Close(context.Context) error { return nil }

var (
	_ Source = Dir("")
	_ Source = (*mongo.Store)(nil)
)
