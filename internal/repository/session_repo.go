package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mockmate/internal/model"
)

// SessionRepo is the append-only recorder for interview session records.
// Records are inserted once at session start and never updated.
type SessionRepo interface {
	Create(ctx context.Context, session *model.InterviewSession) error
	GetByID(ctx context.Context, id string) (*model.InterviewSession, error)
}

type sessionRepo struct {
	collection *mongo.Collection
}

func NewSessionRepo(db *mongo.Database) SessionRepo {
	return &sessionRepo{
		collection: db.Collection("interview_sessions"),
	}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.InterviewSession) error {
	_, err := r.collection.InsertOne(ctx, session)
	return err
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.InterviewSession, error) {
	var session model.InterviewSession
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}
