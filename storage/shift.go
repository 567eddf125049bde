package storage

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moonlandpos/models"
)

// shiftKey is the fixed document id for the single persisted shift.
const shiftKey = "shift state"

// ShiftStore is the terminal's durable local storage for the current shift:
// read once at startup, written on start, removed on end. Load returns
// (nil, nil) when no shift is stored.
type ShiftStore interface {
	Load(ctx context.Context) (*models.Shift, error)
	Save(ctx context.Context, shift models.Shift) error
	Clear(ctx context.Context) error
}

type shiftDocument struct {
	ID    string       `bson:"_id"`
	Shift models.Shift `bson:"shift"`
}

// MongoShiftStore keeps the shift in a single document of a local
// collection.
type MongoShiftStore struct {
	coll *mongo.Collection
}

func NewMongoShiftStore(coll *mongo.Collection) *MongoShiftStore {
	return &MongoShiftStore{coll: coll}
}

func (s *MongoShiftStore) Load(ctx context.Context) (*models.Shift, error) {
	var doc shiftDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": shiftKey}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	shift := doc.Shift
	return &shift, nil
}

func (s *MongoShiftStore) Save(ctx context.Context, shift models.Shift) error {
	doc := shiftDocument{ID: shiftKey, Shift: shift}
	opts := options.Replace().SetUpsert(true)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": shiftKey}, doc, opts)
	return err
}

func (s *MongoShiftStore) Clear(ctx context.Context) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": shiftKey})
	return err
}

// MemoryShiftStore backs tests and storage-less dev runs.
type MemoryShiftStore struct {
	mu    sync.Mutex
	shift *models.Shift
}

func NewMemoryShiftStore() *MemoryShiftStore {
	return &MemoryShiftStore{}
}

func (s *MemoryShiftStore) Load(_ context.Context) (*models.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shift == nil {
		return nil, nil
	}
	shift := *s.shift
	return &shift, nil
}

func (s *MemoryShiftStore) Save(_ context.Context, shift models.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shift = &shift
	return nil
}

func (s *MemoryShiftStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shift = nil
	return nil
}
