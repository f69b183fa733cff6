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

type userDocument struct {
	ID             string    `bson:"_id"`
	Name           string    `bson:"name"`
	Email          string    `bson:"email"`
	Password       string    `bson:"password"`
	ProfilePicture string    `bson:"profilePicture"`
	IsAdmin        bool      `bson:"isAdmin"`
	IsBlocked      bool      `bson:"isBlocked"`
	CreatedAt      time.Time `bson:"createdAt"`
}

func toUserDocument(u *entity.User) userDocument {
	return userDocument{
		ID:             u.ID.String(),
		Name:           u.Name,
		Email:          u.Email,
		Password:       u.PasswordHash,
		ProfilePicture: u.ProfilePicture,
		IsAdmin:        u.IsAdmin,
		IsBlocked:      u.IsBlocked,
		CreatedAt:      u.CreatedAt,
	}
}

func (d userDocument) toEntity() (*entity.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("user %q: bad id: %w", d.ID, err)
	}
	return &entity.User{
		ID:             id,
		Name:           d.Name,
		Email:          d.Email,
		PasswordHash:   d.Password,
		ProfilePicture: d.ProfilePicture,
		IsAdmin:        d.IsAdmin,
		IsBlocked:      d.IsBlocked,
		CreatedAt:      d.CreatedAt,
	}, nil
}

type mongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{coll: db.Collection("users")}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, toUserDocument(user))
	return err
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity()
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*entity.User, error) {
	cur, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0, len(docs))
	for _, d := range docs {
		u, err := d.toEntity()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *mongoUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": database.IDStrings(ids)}})
}

func (r *mongoUserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *mongoUserRepository) Save(ctx context.Context, user *entity.User) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID.String()}, toUserDocument(user))
	return err
}

func (r *mongoUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	return err
}

func (r *mongoUserRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
