package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gamehub/internal/model"
)

// ScoreRepo persists per-session score rows in the leaderboards
// collection.
type ScoreRepo interface {
	InsertAll(ctx context.Context, entries []*model.ScoreEntry) error
	SetScore(ctx context.Context, gameID, sessionID, userID string, score int) error
	GetBySession(ctx context.Context, gameID, sessionID string) ([]*model.ScoreEntry, error)
	GetByUser(ctx context.Context, userID string, limit int) ([]*model.ScoreEntry, error)
}

type scoreRepo struct {
	collection *mongo.Collection
}

// NewScoreRepo creates a new score repository
func NewScoreRepo(db *mongo.Database) ScoreRepo {
	return &scoreRepo{
		collection: db.Collection("leaderboards"),
	}
}

// InsertAll writes the initial zero-score rows for a session in one
// call, so a session is either created for every participant or for
// none of them.
func (r *scoreRepo) InsertAll(ctx context.Context, entries []*model.ScoreEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, len(entries))
	for i, e := range entries {
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now()
		}
		docs[i] = e
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// SetScore overwrites the score for (sessionID, userID). Last writer
// wins; there is no monotonicity check.
func (r *scoreRepo) SetScore(ctx context.Context, gameID, sessionID, userID string, score int) error {
	filter := bson.M{
		"game_code":  gameID,
		"session_id": sessionID,
		"user_id":    userID,
	}
	_, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"score": score}})
	return err
}

func (r *scoreRepo) GetBySession(ctx context.Context, gameID, sessionID string) ([]*model.ScoreEntry, error) {
	filter := bson.M{"game_code": gameID, "session_id": sessionID}
	opts := options.Find().SetSort(bson.D{{Key: "score", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.ScoreEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *scoreRepo) GetByUser(ctx context.Context, userID string, limit int) ([]*model.ScoreEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.ScoreEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
