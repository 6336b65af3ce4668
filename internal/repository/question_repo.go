package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mockmate/internal/model"
)

// QuestionRepo records generated questions, keyed to their session.
type QuestionRepo interface {
	Create(ctx context.Context, sessionID string, question *model.Question) error
	GetBySessionID(ctx context.Context, sessionID string) ([]*model.Question, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("questions"),
	}
}

type questionRecord struct {
	SessionID      string `bson:"sessionId"`
	model.Question `bson:",inline"`
}

func (r *questionRepo) Create(ctx context.Context, sessionID string, question *model.Question) error {
	_, err := r.collection.InsertOne(ctx, questionRecord{SessionID: sessionID, Question: *question})
	return err
}

func (r *questionRepo) GetBySessionID(ctx context.Context, sessionID string) ([]*model.Question, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []questionRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	questions := make([]*model.Question, 0, len(records))
	for i := range records {
		q := records[i].Question
		questions = append(questions, &q)
	}
	return questions, nil
}
