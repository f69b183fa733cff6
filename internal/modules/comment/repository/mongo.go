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

const commentsCollection = "comments"

// commentDocument mirrors the stored document layout field by field.
type commentDocument struct {
	ID            string    `bson:"_id"`
	Content       string    `bson:"content"`
	Author        string    `bson:"author"`
	Post          string    `bson:"post"`
	ParentComment *string   `bson:"parentComment"`
	Likes         []string  `bson:"likes"`
	CreatedAt     time.Time `bson:"createdAt"`
}

func toCommentDocument(c *entity.Comment) commentDocument {
	likes := []string(c.Likes)
	if likes == nil {
		likes = []string{}
	}
	return commentDocument{
		ID:            c.ID.String(),
		Content:       c.Content,
		Author:        c.AuthorID.String(),
		Post:          c.PostID.String(),
		ParentComment: database.OptionalIDString(c.ParentID),
		Likes:         likes,
		CreatedAt:     c.CreatedAt,
	}
}

func (d commentDocument) toEntity() (*entity.Comment, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("comment %q: bad id: %w", d.ID, err)
	}
	author, err := uuid.Parse(d.Author)
	if err != nil {
		return nil, fmt.Errorf("comment %s: bad author: %w", d.ID, err)
	}
	post, err := uuid.Parse(d.Post)
	if err != nil {
		return nil, fmt.Errorf("comment %s: bad post: %w", d.ID, err)
	}
	parent, err := database.ParseOptionalID(d.ParentComment)
	if err != nil {
		return nil, fmt.Errorf("comment %s: bad parentComment: %w", d.ID, err)
	}
	return &entity.Comment{
		ID:        id,
		Content:   d.Content,
		AuthorID:  author,
		PostID:    post,
		ParentID:  parent,
		Likes:     entity.Likes(d.Likes),
		CreatedAt: d.CreatedAt,
	}, nil
}

type mongoCommentRepository struct {
	coll *mongo.Collection
}

func NewMongoCommentRepository(db *mongo.Database) CommentRepository {
	return &mongoCommentRepository{coll: db.Collection(commentsCollection)}
}

func (r *mongoCommentRepository) decodeAll(ctx context.Context, cur *mongo.Cursor) ([]*entity.Comment, error) {
	defer cur.Close(ctx)

	var docs []commentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	comments := make([]*entity.Comment, 0, len(docs))
	for _, d := range docs {
		c, err := d.toEntity()
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}

func (r *mongoCommentRepository) Find(ctx context.Context, filter CommentFilter) ([]*entity.Comment, error) {
	query := bson.M{}
	if filter.PostID != nil {
		query["post"] = filter.PostID.String()
	}
	if filter.ParentID != nil {
		query["parentComment"] = filter.ParentID.String()
	}
	if filter.AuthorID != nil {
		query["author"] = filter.AuthorID.String()
	}

	direction := 1
	if filter.NewestFirst {
		direction = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: direction}, {Key: "_id", Value: direction}})

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	return r.decodeAll(ctx, cur)
}

func (r *mongoCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	var doc commentDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity()
}

func (r *mongoCommentRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Comment, error) {
	if len(ids) == 0 {
		return []*entity.Comment{}, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": database.IDStrings(ids)}})
	if err != nil {
		return nil, err
	}
	return r.decodeAll(ctx, cur)
}

func (r *mongoCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	if comment.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		comment.ID = id
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	if comment.Likes == nil {
		comment.Likes = entity.Likes{}
	}

	_, err := r.coll.InsertOne(ctx, toCommentDocument(comment))
	return err
}

func (r *mongoCommentRepository) UpdateLikes(ctx context.Context, id uuid.UUID, likes entity.Likes) error {
	values := []string(likes)
	if values == nil {
		values = []string{}
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$set": bson.M{"likes": values}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *mongoCommentRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	return err
}

func (r *mongoCommentRepository) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"post": postID.String()})
	return err
}

func (r *mongoCommentRepository) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"author": authorID.String()})
	return err
}

func (r *mongoCommentRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
