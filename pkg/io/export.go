package io

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kinview/kinview/pkg/kinship"
)

// CreatedDateFormat is the layout of config.json's created_date.
const CreatedDateFormat = "02 Jan 2006 15:04:05"

// WriteJSON encodes v as indented JSON to w.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes v to a JSON file at path.
func ExportJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(f, v)
}

// Export writes ds into dir, creating it if needed. Detail records are split
// over partitions files (at least one). config.json records the partition
// count and the export time; the initial person defaults to the first record.
func Export(ctx context.Context, dir string, ds *Dataset, partitions int) error {
	partitions = max(partitions, 1)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	people := ds.Graph.People()
	structure := make([]*kinship.Person, len(people))
	parts := make([]map[string]details, partitions)
	for i := range parts {
		parts[i] = make(map[string]details)
	}
	for i, p := range people {
		s := *p
		s.Names, s.Note, s.Cites, s.Events, s.Pictures = nil, "", nil, nil, nil
		structure[i] = &s

		n := kinship.DetailsPartition(p.ID, partitions)
		parts[n][p.ID] = details{ID: p.ID, Names: p.Names, Note: p.Note, Cites: p.Cites, Events: p.Events}
	}

	meta := ds.Graph.Meta()
	meta.PartitionDetails = partitions
	meta.CreatedDate = time.Now().Format(CreatedDateFormat)
	if meta.InitialPerson == "" && len(people) > 0 {
		meta.InitialPerson = people[0].ID
	}

	var birthdays [][2]string
	for _, b := range ds.Graph.Birthdays() {
		birthdays = append(birthdays, [2]string{b.Person.ID, b.Date})
	}

	files := map[string]any{
		StructureFile: structure,
		ConfigFile:    meta,
		BirthdaysFile: birthdays,
	}
	if len(ds.Narratives.Descs) > 0 || len(ds.Narratives.Spec) > 0 {
		files[NarrativesFile] = ds.Narratives
	}
	pictures := ds.Pictures
	if pictures.PeopleTable == nil {
		for _, p := range people {
			if len(p.Pictures) == 0 {
				continue
			}
			if pictures.PeopleTable == nil {
				pictures.PeopleTable = make(map[string][]string)
			}
			pictures.PeopleTable[p.ID] = p.Pictures
		}
	}
	if len(pictures.PictureTable) > 0 || len(pictures.PeopleTable) > 0 {
		files[PicturesFile] = pictures
	}
	for i, part := range parts {
		files[kinship.DetailsFile(i)] = part
	}

	g, ctx := errgroup.WithContext(ctx)
	for name, v := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return ExportJSON(filepath.Join(dir, name), v)
		})
	}
	return g.Wait()
}
