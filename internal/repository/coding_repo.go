package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mockmate/internal/model"
)

// CodingRepo records coding-round submissions and their evaluations.
type CodingRepo interface {
	Create(ctx context.Context, submission *model.CodingSubmission) error
	GetBySessionID(ctx context.Context, sessionID string) ([]*model.CodingSubmission, error)
}

type codingRepo struct {
	collection *mongo.Collection
}

func NewCodingRepo(db *mongo.Database) CodingRepo {
	return &codingRepo{
		collection: db.Collection("coding_tests"),
	}
}

func (r *codingRepo) Create(ctx context.Context, submission *model.CodingSubmission) error {
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, submission)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		submission.ID = oid.Hex()
	}
	return nil
}

func (r *codingRepo) GetBySessionID(ctx context.Context, sessionID string) ([]*model.CodingSubmission, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var submissions []*model.CodingSubmission
	if err = cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}
