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

type notificationDocument struct {
	ID        string    `bson:"_id"`
	Recipient string    `bson:"recipient"`
	Sender    string    `bson:"sender"`
	Type      string    `bson:"type"`
	PostID    *string   `bson:"postId"`
	CommentID *string   `bson:"commentId"`
	Message   string    `bson:"message"`
	Read      bool      `bson:"read"`
	CreatedAt time.Time `bson:"createdAt"`
}

func toNotificationDocument(n *entity.Notification) notificationDocument {
	return notificationDocument{
		ID:        n.ID.String(),
		Recipient: n.RecipientID.String(),
		Sender:    n.SenderID.String(),
		Type:      string(n.Type),
		PostID:    database.OptionalIDString(n.PostID),
		CommentID: database.OptionalIDString(n.CommentID),
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func (d notificationDocument) toEntity() (*entity.Notification, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("notification %q: bad id: %w", d.ID, err)
	}
	recipient, err := uuid.Parse(d.Recipient)
	if err != nil {
		return nil, fmt.Errorf("notification %s: bad recipient: %w", d.ID, err)
	}
	sender, err := uuid.Parse(d.Sender)
	if err != nil {
		return nil, fmt.Errorf("notification %s: bad sender: %w", d.ID, err)
	}
	postID, err := database.ParseOptionalID(d.PostID)
	if err != nil {
		return nil, fmt.Errorf("notification %s: bad postId: %w", d.ID, err)
	}
	commentID, err := database.ParseOptionalID(d.CommentID)
	if err != nil {
		return nil, fmt.Errorf("notification %s: bad commentId: %w", d.ID, err)
	}
	return &entity.Notification{
		ID:          id,
		RecipientID: recipient,
		SenderID:    sender,
		Type:        entity.NotificationType(d.Type),
		PostID:      postID,
		CommentID:   commentID,
		Message:     d.Message,
		Read:        d.Read,
		CreatedAt:   d.CreatedAt,
	}, nil
}

type mongoNotificationRepository struct {
	coll *mongo.Collection
}

func NewMongoNotificationRepository(db *mongo.Database) NotificationRepository {
	return &mongoNotificationRepository{coll: db.Collection("notifications")}
}

func (r *mongoNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		notification.ID = id
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, toNotificationDocument(notification))
	return err
}

func (r *mongoNotificationRepository) FindUnreadDuplicate(ctx context.Context, key DedupKey) (*entity.Notification, error) {
	// A nil pointer encodes as null, which matches only unset ids.
	filter := bson.M{
		"recipient": key.RecipientID.String(),
		"sender":    key.SenderID.String(),
		"type":      string(key.Type),
		"postId":    database.OptionalIDString(key.PostID),
		"commentId": database.OptionalIDString(key.CommentID),
		"read":      false,
	}

	var doc notificationDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toEntity()
}

func (r *mongoNotificationRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$set": bson.M{"createdAt": at}})
	return err
}

func (r *mongoNotificationRepository) FindByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*entity.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"recipient": recipientID.String()}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []notificationDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	notifications := make([]*entity.Notification, 0, len(docs))
	for _, d := range docs {
		n, err := d.toEntity()
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func (r *mongoNotificationRepository) MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) (*entity.Notification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	filter := bson.M{"_id": id.String(), "recipient": recipientID.String()}

	var doc notificationDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": bson.M{"read": true}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity()
}

func (r *mongoNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"recipient": recipientID.String(), "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *mongoNotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"recipient": recipientID.String(), "read": false})
}

func (r *mongoNotificationRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	id := userID.String()
	_, err := r.coll.DeleteMany(ctx, bson.M{"$or": bson.A{bson.M{"recipient": id}, bson.M{"sender": id}}})
	return err
}
