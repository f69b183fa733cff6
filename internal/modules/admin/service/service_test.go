package admin

import (
	"context"
	"testing"

	"anoa.com/inkblog/internal/entity"
	commentRepo "anoa.com/inkblog/internal/modules/comment/repository"
	comment "anoa.com/inkblog/internal/modules/comment/service"
	notifRepo "anoa.com/inkblog/internal/modules/notification/repository"
	postRepo "anoa.com/inkblog/internal/modules/post/repository"
	userRepo "anoa.com/inkblog/internal/modules/user/repository"
	"anoa.com/inkblog/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      AdminService
	users    *userRepo.MemoryUserRepository
	posts    *postRepo.MemoryPostRepository
	comments *commentRepo.MemoryCommentRepository
	notifs   *notifRepo.MemoryNotificationRepository
}

func newFixture() *fixture {
	f := &fixture{
		users:    userRepo.NewMemoryUserRepository(),
		posts:    postRepo.NewMemoryPostRepository(),
		comments: commentRepo.NewMemoryCommentRepository(),
		notifs:   notifRepo.NewMemoryNotificationRepository(),
	}
	comments := comment.NewCommentService(f.comments, f.posts, f.users, nil, nil, 0)
	f.svc = NewAdminService(f.users, f.posts, f.comments, f.notifs, comments)
	return f
}

func (f *fixture) user(t *testing.T, name string) *entity.User {
	t.Helper()
	u := &entity.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) post(t *testing.T, author uuid.UUID, title string) *entity.Post {
	t.Helper()
	p := &entity.Post{Title: title, Content: "body", AuthorID: author}
	require.NoError(t, f.posts.Create(context.Background(), p))
	return p
}

func (f *fixture) comment(t *testing.T, author, post uuid.UUID, parent *uuid.UUID) *entity.Comment {
	t.Helper()
	c := &entity.Comment{Content: "c", AuthorID: author, PostID: post, ParentID: parent}
	require.NoError(t, f.comments.Create(context.Background(), c))
	return c
}

func TestGetDashboardStats(t *testing.T) {
	f := newFixture()
	alice := f.user(t, "alice")
	p := f.post(t, alice.ID, "Hello")
	f.comment(t, alice.ID, p.ID, nil)
	f.comment(t, alice.ID, p.ID, nil)

	stats, err := f.svc.GetDashboardStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalPosts)
	assert.Equal(t, int64(2), stats.TotalComments)
}

func TestToggleUserBlock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	root := f.user(t, "root")
	bob := f.user(t, "bob")

	res, err := f.svc.ToggleUserBlock(ctx, root.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, res.IsBlocked)
	assert.Equal(t, "User blocked successfully", res.Message)

	res, err = f.svc.ToggleUserBlock(ctx, root.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, res.IsBlocked)
	assert.Equal(t, "User unblocked successfully", res.Message)

	_, err = f.svc.ToggleUserBlock(ctx, root.ID, root.ID)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = f.svc.ToggleUserBlock(ctx, root.ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteUser_RemovesContentAndNotifications(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	root := f.user(t, "root")
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	alicePost := f.post(t, alice.ID, "Alice's post")
	bobPost := f.post(t, bob.ID, "Bob's post")
	f.comment(t, bob.ID, alicePost.ID, nil)
	aliceComment := f.comment(t, alice.ID, bobPost.ID, nil)
	f.comment(t, bob.ID, bobPost.ID, &aliceComment.ID)
	bobTop := f.comment(t, bob.ID, bobPost.ID, nil)

	require.NoError(t, f.notifs.Create(ctx, &entity.Notification{RecipientID: bob.ID, SenderID: alice.ID, Type: entity.NotificationComment}))
	require.NoError(t, f.notifs.Create(ctx, &entity.Notification{RecipientID: alice.ID, SenderID: bob.ID, Type: entity.NotificationLikePost}))

	require.NoError(t, f.svc.DeleteUser(ctx, root.ID, alice.ID))

	_, err := f.users.FindByID(ctx, alice.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = f.posts.FindByID(ctx, alicePost.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	remaining, err := f.comments.Find(ctx, commentRepo.CommentFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, bobTop.ID, remaining[0].ID)

	bobInbox, err := f.notifs.FindByRecipient(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobInbox)
}

func TestDeleteUser_Guards(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	root := f.user(t, "root")

	assert.ErrorIs(t, f.svc.DeleteUser(ctx, root.ID, root.ID), apperror.ErrInvalidInput)
	assert.ErrorIs(t, f.svc.DeleteUser(ctx, root.ID, uuid.New()), apperror.ErrNotFound)
}

func TestDeletePost_RemovesThread(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice")
	p := f.post(t, alice.ID, "Hello")
	other := f.post(t, alice.ID, "Other")
	top := f.comment(t, alice.ID, p.ID, nil)
	f.comment(t, alice.ID, p.ID, &top.ID)
	f.comment(t, alice.ID, other.ID, nil)

	require.NoError(t, f.svc.DeletePost(ctx, p.ID))

	count, err := f.comments.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.ErrorIs(t, f.svc.DeletePost(ctx, p.ID), apperror.ErrNotFound)
}

func TestGetAllComments_NewestFirstWithPostTitle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice")
	p := f.post(t, alice.ID, "Hello")
	first := f.comment(t, alice.ID, p.ID, nil)
	second := f.comment(t, uuid.New(), p.ID, &first.ID)

	list, err := f.svc.GetAllComments(ctx)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, "Unknown", list[0].Author.Name)
	require.NotNil(t, list[0].ParentComment)
	assert.Equal(t, first.ID, *list[0].ParentComment)
	assert.Equal(t, "alice", list[1].Author.Name)
	require.NotNil(t, list[1].Post)
	assert.Equal(t, "Hello", list[1].Post.Title)
}

func TestDeleteComment_SkipsOwnership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice")
	p := f.post(t, alice.ID, "Hello")
	top := f.comment(t, alice.ID, p.ID, nil)
	f.comment(t, alice.ID, p.ID, &top.ID)

	require.NoError(t, f.svc.DeleteComment(ctx, top.ID))

	count, err := f.comments.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.ErrorIs(t, f.svc.DeleteComment(ctx, top.ID), apperror.ErrNotFound)
}
