package io

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/kinview/kinview/pkg/errors"
	"github.com/kinview/kinview/pkg/kinship"
)

// File names inside a dataset directory.
const (
	StructureFile  = "structure.json"
	ConfigFile     = "config.json"
	NarrativesFile = "narratives.json"
	PicturesFile   = "pictures.json"
	BirthdaysFile  = "birthdays.json"
	detailsGlob    = "details*.json"
)

// Narratives is the content of narratives.json.
type Narratives struct {
	Descs map[string]string `json:"descs"`
	Spec  []json.RawMessage `json:"spec"`
}

// Picture describes one picture of pictures.json.
type Picture struct {
	Caption string   `json:"caption"`
	Dim     string   `json:"dim"`
	People  []string `json:"people"`
}

// Pictures is the content of pictures.json.
type Pictures struct {
	PictureTable map[string]Picture  `json:"picture_table"`
	PeopleTable  map[string][]string `json:"people_table"`
}

// Dataset is a loaded dataset directory.
type Dataset struct {
	Graph      *kinship.Graph
	Narratives Narratives
	Pictures   Pictures
}

// details is one record of a details partition.
type details struct {
	ID     string          `json:"id"`
	Names  []string        `json:"names,omitempty"`
	Note   string          `json:"note,omitempty"`
	Cites  []kinship.Cite  `json:"cites,omitempty"`
	Events []kinship.Event `json:"events,omitempty"`
}

// ReadStructure decodes a structure.json array.
func ReadStructure(r io.Reader) ([]*kinship.Person, error) {
	var people []*kinship.Person
	if err := json.NewDecoder(r).Decode(&people); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode structure")
	}
	return people, nil
}

// Load reads the dataset in dir. Files are decoded concurrently; the first
// failure cancels the rest.
func Load(ctx context.Context, dir string) (*Dataset, error) {
	if err := errors.ValidateDataDir(dir); err != nil {
		return nil, err
	}
	detailFiles, err := filepath.Glob(filepath.Join(dir, detailsGlob))
	if err != nil {
		return nil, fmt.Errorf("glob details: %w", err)
	}
	slices.Sort(detailFiles)

	var (
		people     []*kinship.Person
		meta       kinship.Meta
		narratives Narratives
		pictures   Pictures
		parts      = make([]map[string]details, len(detailFiles))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readFile(ctx, filepath.Join(dir, StructureFile), true, func(r io.Reader) error {
			var err error
			people, err = ReadStructure(r)
			return err
		})
	})
	g.Go(func() error {
		return readJSON(ctx, filepath.Join(dir, ConfigFile), &meta)
	})
	g.Go(func() error {
		return readJSON(ctx, filepath.Join(dir, NarrativesFile), &narratives)
	})
	g.Go(func() error {
		return readJSON(ctx, filepath.Join(dir, PicturesFile), &pictures)
	})
	for i, path := range detailFiles {
		g.Go(func() error {
			return readJSON(ctx, path, &parts[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, p := range people {
		for _, part := range parts {
			if d, ok := part[p.ID]; ok {
				p.Names, p.Note, p.Cites, p.Events = d.Names, d.Note, d.Cites, d.Events
				break
			}
		}
		if p.Note == "" {
			p.Note = narratives.Descs[p.ID]
		}
		if pics := pictures.PeopleTable[p.ID]; len(pics) > 0 {
			p.Pictures = pics
		}
	}

	graph, err := kinship.NewGraph(people, meta)
	if err != nil {
		return nil, err
	}
	return &Dataset{Graph: graph, Narratives: narratives, Pictures: pictures}, nil
}

// readJSON decodes an optional file into v.
func readJSON(ctx context.Context, path string, v any) error {
	return readFile(ctx, path, false, func(r io.Reader) error {
		if err := json.NewDecoder(r).Decode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", filepath.Base(path))
		}
		return nil
	})
}

func readFile(ctx context.Context, path string, required bool, decode func(io.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		if required {
			return errors.Wrap(errors.ErrCodeNotFound, err, "dataset has no %s", filepath.Base(path))
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return decode(f)
}
