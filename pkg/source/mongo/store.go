// Package mongo keeps a kinship dataset in MongoDB.
//
// People live in the "people" collection, one document per person keyed by
// id, with an "order" field preserving the dataset's listing order. The
// dataset metadata is the single document "config" of the "meta"
// collection.
//
//	s, err := mongo.Open(ctx, "mongodb://localhost:27017", "family")
//	defer s.Close(ctx)
//	err = s.Save(ctx, g)
//	g, err = s.Load(ctx)
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kinview/kinview/pkg/errors"
	"github.com/kinview/kinview/pkg/kinship"
)

// DefaultDatabase is used when neither the caller nor the URI names one.
const DefaultDatabase = "kinview"

const (
	peopleCollection = "people"
	metaCollection   = "meta"
	metaID           = "config"
)

// Store is a dataset stored in one MongoDB database. It is safe for
// concurrent use.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

type record struct {
	Order          int `bson:"order"`
	kinship.Person `bson:",inline"`
}

type metaRecord struct {
	ID           string `bson:"_id"`
	kinship.Meta `bson:",inline"`
}

// Open connects to uri and selects database (DefaultDatabase when empty).
func Open(ctx context.Context, uri, database string) (*Store, error) {
	if database == "" {
		database = DefaultDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", database, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

// Name returns the database name.
func (s *Store) Name() string { return s.db.Name() }

// Load reads every person and the metadata and builds a graph. An empty
// database is NOT_FOUND.
func (s *Store) Load(ctx context.Context) (*kinship.Graph, error) {
	cur, err := s.db.Collection(peopleCollection).Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find people: %w", err)
	}
	var records []record
	if err := cur.All(ctx, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode people")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "database %s has no people", s.db.Name())
	}

	var meta metaRecord
	err = s.db.Collection(metaCollection).FindOne(ctx, bson.D{{Key: "_id", Value: metaID}}).Decode(&meta)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("find meta: %w", err)
	}

	people := make([]*kinship.Person, len(records))
	for i := range records {
		people[i] = &records[i].Person
	}
	return kinship.NewGraph(people, meta.Meta)
}

// Save replaces the stored dataset with g. People missing from g are
// removed.
func (s *Store) Save(ctx context.Context, g *kinship.Graph) error {
	people := s.db.Collection(peopleCollection)
	if _, err := people.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "order", Value: 1}}}); err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	ids := g.IDs()
	models := make([]mongo.WriteModel, 0, len(ids))
	for i, p := range g.People() {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: p.ID}}).
			SetReplacement(record{Order: i, Person: *p}).
			SetUpsert(true))
	}
	if len(models) > 0 {
		if _, err := people.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
			return fmt.Errorf("write people: %w", err)
		}
	}
	if _, err := people.DeleteMany(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$nin", Value: ids}}}}); err != nil {
		return fmt.Errorf("prune people: %w", err)
	}

	_, err := s.db.Collection(metaCollection).ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: metaID}},
		metaRecord{ID: metaID, Meta: g.Meta()},
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	return nil
}

// Drop deletes the whole database.
func (s *Store) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}

// Close disconnects from the server.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
