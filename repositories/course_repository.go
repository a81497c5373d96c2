package repositories

import (
	"context"
	"time"

	"exam-store/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection("courses")}
}

func (r *CourseRepository) FindPage(ctx context.Context, page, limit int) ([]models.Course, error) {
	skip := int64((page - 1) * limit)
	opts := options.Find().SetSkip(skip).SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	courses := []models.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) FindAll(ctx context.Context) ([]models.Course, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	courses := []models.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) FindFeatured(ctx context.Context, page, limit int) ([]models.Course, error) {
	skip := int64((page - 1) * limit)
	opts := options.Find().SetSkip(skip).SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{"isFeatured": true}, opts)
	if err != nil {
		return nil, err
	}
	courses := []models.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Search matches the query case-insensitively against title and
// description, capped at 20 suggestions.
func (r *CourseRepository) Search(ctx context.Context, query string) ([]models.Course, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"title": bson.M{"$regex": query, "$options": "i"}},
		bson.M{"description": bson.M{"$regex": query, "$options": "i"}},
	}}
	cur, err := r.col.Find(ctx, filter, options.Find().SetLimit(20))
	if err != nil {
		return nil, err
	}
	courses := []models.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var course models.Course
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Insert(ctx context.Context, course *models.Course) error {
	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now
	if course.VideoIDs == nil {
		course.VideoIDs = []primitive.ObjectID{}
	}
	res, err := r.col.InsertOne(ctx, course)
	if err != nil {
		return err
	}
	course.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now()
	if course.VideoIDs == nil {
		course.VideoIDs = []primitive.ObjectID{}
	}
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": course.ID}, course)
	return err
}

func (r *CourseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
