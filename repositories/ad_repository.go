package repositories

import (
	"context"
	"time"

	"exam-store/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AdRepository struct {
	col *mongo.Collection
}

func NewAdRepository(db *mongo.Database) *AdRepository {
	return &AdRepository{col: db.Collection("ads")}
}

func (r *AdRepository) FindAll(ctx context.Context) ([]models.Ad, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	ads := []models.Ad{}
	if err := cur.All(ctx, &ads); err != nil {
		return nil, err
	}
	return ads, nil
}

func (r *AdRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Ad, error) {
	var ad models.Ad
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

func (r *AdRepository) Insert(ctx context.Context, ad *models.Ad) error {
	now := time.Now()
	ad.CreatedAt = now
	ad.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, ad)
	if err != nil {
		return err
	}
	ad.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *AdRepository) Update(ctx context.Context, ad *models.Ad) error {
	ad.UpdatedAt = time.Now()
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": ad.ID}, ad)
	return err
}

func (r *AdRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
