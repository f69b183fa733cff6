package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anoa.com/inkblog/internal/entity"
	"anoa.com/inkblog/pkg/apperror"
	"anoa.com/inkblog/pkg/database"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type postDocument struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	Author    string    `bson:"author"`
	Likes     []string  `bson:"likes"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func toPostDocument(p *entity.Post) postDocument {
	likes := []string(p.Likes)
	if likes == nil {
		likes = []string{}
	}
	return postDocument{
		ID:        p.ID.String(),
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.AuthorID.String(),
		Likes:     likes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (d postDocument) toEntity() (*entity.Post, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("post %q: bad id: %w", d.ID, err)
	}
	author, err := uuid.Parse(d.Author)
	if err != nil {
		return nil, fmt.Errorf("post %s: bad author: %w", d.ID, err)
	}
	return &entity.Post{
		ID:        id,
		Title:     d.Title,
		Content:   d.Content,
		AuthorID:  author,
		Likes:     entity.Likes(d.Likes),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

type mongoPostRepository struct {
	coll *mongo.Collection
}

func NewMongoPostRepository(db *mongo.Database) PostRepository {
	return &mongoPostRepository{coll: db.Collection("posts")}
}

func (r *mongoPostRepository) Create(ctx context.Context, post *entity.Post) error {
	if post.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		post.ID = id
	}
	now := time.Now().UTC()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = entity.Likes{}
	}
	_, err := r.coll.InsertOne(ctx, toPostDocument(post))
	return err
}

func (r *mongoPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var doc postDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity()
}

func (r *mongoPostRepository) find(ctx context.Context, filter bson.M) ([]*entity.Post, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, 0, len(docs))
	for _, d := range docs {
		p, err := d.toEntity()
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func (r *mongoPostRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Post, error) {
	if len(ids) == 0 {
		return []*entity.Post{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": database.IDStrings(ids)}})
}

func (r *mongoPostRepository) FindAll(ctx context.Context) ([]*entity.Post, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoPostRepository) FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entity.Post, error) {
	return r.find(ctx, bson.M{"author": authorID.String()})
}

func (r *mongoPostRepository) UpdateLikes(ctx context.Context, id uuid.UUID, likes entity.Likes) error {
	values := []string(likes)
	if values == nil {
		values = []string{}
	}
	update := bson.M{"$set": bson.M{"likes": values, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id.String()}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *mongoPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	return err
}

func (r *mongoPostRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
