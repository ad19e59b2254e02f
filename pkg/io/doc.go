// Package io reads and writes kinship datasets on disk.
//
// # Overview
//
// A dataset is a directory of JSON files produced by the GEDCOM converter:
//
//	structure.json    people with their relations, birth and death
//	config.json       dataset metadata (initial person, partition count, ...)
//	details0.json     alternate names, notes, events and citations, split
//	details1.json     into partitions by a hash of the person id
//	narratives.json   free text keyed by person id
//	pictures.json     picture captions and the pictures of each person
//	birthdays.json    living people's birthdays, written on export only
//
// Only structure.json is required. [Load] decodes every file concurrently and
// merges them into one [kinship.Graph]:
//
//	ds, err := io.Load(ctx, "data")
//	if err != nil {
//	    return err
//	}
//	l, err := layout.New(ds.Graph, ds.Graph.Meta().InitialPerson)
//
// # Export
//
// [Export] writes a dataset back out, splitting detail records over the
// requested number of partitions with [kinship.DetailsPartition]. A dataset
// exported and loaded again yields the same records.
//
// # Errors
//
// A missing structure.json fails with NOT_FOUND and malformed JSON with
// INVALID_FORMAT. Dangling references are not checked here; call
// [kinship.Graph.Validate] for that.
package io
