package repository

import (
	"context"
	"testing"
	"time"

	"anoa.com/inkblog/internal/entity"
	"anoa.com/inkblog/pkg/apperror"
	"anoa.com/inkblog/pkg/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func newPostgresRepository(t *testing.T) CommentRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("inkblog"),
		tcpostgres.WithUsername("inkblog"),
		tcpostgres.WithPassword("inkblog"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Connect(database.PostgresConfig{URL: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, db.AutoMigrate(&entity.Comment{}))

	return NewCommentRepository(db)
}

func TestCommentRepository_Postgres(t *testing.T) {
	repo := newPostgresRepository(t)
	ctx := context.Background()
	postID, author := uuid.New(), uuid.New()
	base := time.Now().UTC().Truncate(time.Millisecond)

	root := &entity.Comment{Content: "root", AuthorID: author, PostID: postID, CreatedAt: base}
	require.NoError(t, repo.Create(ctx, root))
	assert.NotEqual(t, uuid.Nil, root.ID)

	reply := &entity.Comment{Content: "reply", AuthorID: uuid.New(), PostID: postID, ParentID: &root.ID, CreatedAt: base.Add(time.Second)}
	require.NoError(t, repo.Create(ctx, reply))

	t.Run("likes round trip", func(t *testing.T) {
		liker := uuid.New()
		root.AddLike(liker)
		require.NoError(t, repo.UpdateLikes(ctx, root.ID, root.Likes))

		got, err := repo.FindByID(ctx, root.ID)
		require.NoError(t, err)
		assert.True(t, got.LikedBy(liker))
		assert.Equal(t, 1, got.LikesCount())
	})

	t.Run("find by post newest first", func(t *testing.T) {
		list, err := repo.Find(ctx, CommentFilter{PostID: &postID, NewestFirst: true})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, reply.ID, list[0].ID)
		require.NotNil(t, list[0].ParentID)
		assert.Equal(t, root.ID, *list[0].ParentID)
	})

	t.Run("children", func(t *testing.T) {
		children, err := repo.Find(ctx, CommentFilter{ParentID: &root.ID})
		require.NoError(t, err)
		require.Len(t, children, 1)
		assert.Equal(t, reply.ID, children[0].ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteByID(ctx, reply.ID))
		require.NoError(t, repo.DeleteByID(ctx, reply.ID))

		_, err := repo.FindByID(ctx, reply.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.ErrorIs(t, repo.UpdateLikes(ctx, reply.ID, entity.Likes{}), apperror.ErrNotFound)
		_, err = repo.FindByID(ctx, reply.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)

		require.NoError(t, repo.DeleteByAuthor(ctx, author))
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
