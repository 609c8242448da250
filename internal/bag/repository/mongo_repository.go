package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/bag/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository builds the bag store and ensures its indexes exist:
// the replace-snapshot model depends on the unique user_id index, and stale
// bags age out through the TTL index.
func NewMongoRepository(ctx context.Context, db *mongo.Database) (BagRepository, error) {
	repo := &mongoRepository{
		collection: db.Collection("bags"),
	}
	if err := repo.createIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func (m mongoRepository) GetBag(ctx context.Context, userID string) (*domain.Bag, error) {
	var bag domain.Bag

	filter := bson.M{"user_id": userID}
	err := m.collection.FindOne(ctx, filter).Decode(&bag)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBagNotFound
		}
		return nil, fmt.Errorf("failed to get bag: %w", err)
	}

	return &bag, nil
}

// ReplaceBag overwrites the whole bag record. An emptied bag is deleted
// rather than stored, which keeps sync simple: no record means no bag.
func (m mongoRepository) ReplaceBag(ctx context.Context, bag *domain.Bag) error {
	if bag.IsEmpty() {
		return m.ClearBag(ctx, bag.UserID)
	}

	now := time.Now()
	if bag.CreatedAt.IsZero() {
		bag.CreatedAt = now
	}
	bag.UpdatedAt = now

	filter := bson.M{"user_id": bag.UserID}
	update := bson.M{"$set": bson.M{
		"user_id":    bag.UserID,
		"lines":      bag.Lines,
		"created_at": bag.CreatedAt,
		"updated_at": bag.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to replace bag: %w", err)
	}

	return nil
}

func (m mongoRepository) createIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60), // 90 days TTL
		},
	}

	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func (m mongoRepository) ClearBag(ctx context.Context, userID string) error {
	filter := bson.M{"user_id": userID}
	if _, err := m.collection.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to clear bag: %w", err)
	}
	return nil
}
