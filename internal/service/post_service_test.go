package services_test

import (
	"context"
	"testing"
	"time"

	"forum-app/post-service/internal/domain"
	"forum-app/post-service/internal/repository"
	userRepository "forum-app/post-service/internal/repository/user"
	services "forum-app/post-service/internal/service"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestUser() domain.User {
	return domain.User{
		ID:     primitive.NewObjectID(),
		Name:   gofakeit.Name(),
		Email:  gofakeit.Email(),
		Avatar: gofakeit.URL(),
		Date:   time.Now().UTC(),
	}
}

func newTestService(users ...domain.User) (services.PostService, *repository.InMemoryPostRepository) {
	postRepo := repository.NewInMemoryPostRepository()
	userRepo := userRepository.NewInMemoryUserRepository(users...)
	return services.NewPostService(postRepo, userRepo), postRepo
}

func TestCreatePostSnapshotsAuthor(t *testing.T) {
	ctx := context.Background()
	author := newTestUser()
	svc, _ := newTestService(author)

	post, err := svc.CreatePost(ctx, author.ID.Hex(), "hello")
	require.NoError(t, err)
	require.Equal(t, "hello", post.Text)
	require.Equal(t, author.ID.Hex(), post.User)
	require.Equal(t, author.Name, post.Name)
	require.Equal(t, author.Avatar, post.Avatar)
	require.Empty(t, post.Likes)
	require.Empty(t, post.Comments)
	require.False(t, post.Date.IsZero())
}

func TestCreatePostUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.CreatePost(ctx, primitive.NewObjectID().Hex(), "hello")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListPostsDateDescending(t *testing.T) {
	ctx := context.Background()
	author := newTestUser()
	svc, postRepo := newTestService(author)

	base := time.Now().UTC()
	for _, offset := range []time.Duration{0, 2 * time.Hour, time.Hour} {
		post := &domain.Post{
			ID:       primitive.NewObjectID(),
			User:     author.ID.Hex(),
			Text:     gofakeit.Sentence(5),
			Name:     author.Name,
			Avatar:   author.Avatar,
			Likes:    []domain.Like{},
			Comments: []domain.Comment{},
			Date:     base.Add(offset),
		}
		require.NoError(t, postRepo.Insert(ctx, post))
	}

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	for i := 1; i < len(posts); i++ {
		require.False(t, posts[i].Date.After(posts[i-1].Date), "posts must be ordered by date descending")
	}
}

func TestListPostsByUser(t *testing.T) {
	ctx := context.Background()
	alice := newTestUser()
	bob := newTestUser()
	svc, _ := newTestService(alice, bob)

	_, err := svc.CreatePost(ctx, alice.ID.Hex(), "first")
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, bob.ID.Hex(), "second")
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, alice.ID.Hex(), "third")
	require.NoError(t, err)

	posts, err := svc.ListPostsByUser(ctx, alice.ID.Hex())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, "first", posts[0].Text)
	require.Equal(t, "third", posts[1].Text)

	// Zero matches is a valid empty result, not an error.
	posts, err = svc.ListPostsByUser(ctx, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()
	owner := newTestUser()
	stranger := newTestUser()
	svc, _ := newTestService(owner, stranger)

	post, err := svc.CreatePost(ctx, owner.ID.Hex(), "to be removed")
	require.NoError(t, err)
	_, err = svc.LikePost(ctx, post.ID, stranger.ID.Hex())
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, post.ID, stranger.ID.Hex(), "a comment")
	require.NoError(t, err)

	err = svc.DeletePost(ctx, post.ID, stranger.ID.Hex())
	require.ErrorIs(t, err, domain.ErrNotAuthorized)

	require.NoError(t, svc.DeletePost(ctx, post.ID, owner.ID.Hex()))

	// The document and everything nested in it is gone.
	_, err = svc.LikePost(ctx, post.ID, owner.ID.Hex())
	require.ErrorIs(t, err, domain.ErrPostNotFound)
	_, err = svc.DeleteComment(ctx, post.ID, primitive.NewObjectID(), owner.ID.Hex())
	require.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestDeletePostMissing(t *testing.T) {
	ctx := context.Background()
	owner := newTestUser()
	svc, _ := newTestService(owner)

	err := svc.DeletePost(ctx, primitive.NewObjectID(), owner.ID.Hex())
	require.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestLikePostTwice(t *testing.T) {
	ctx := context.Background()
	author := newTestUser()
	fan := newTestUser()
	svc, _ := newTestService(author, fan)

	post, err := svc.CreatePost(ctx, author.ID.Hex(), "like me")
	require.NoError(t, err)

	likes, err := svc.LikePost(ctx, post.ID, fan.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, []domain.Like{{User: fan.ID.Hex()}}, likes)

	_, err = svc.LikePost(ctx, post.ID, fan.ID.Hex())
	require.ErrorIs(t, err, domain.ErrAlreadyLiked)

	current, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, current[0].Likes, 1)
}

func TestUnlikeWithoutLike(t *testing.T) {
	ctx := context.Background()
	author := newTestUser()
	fan := newTestUser()
	svc, _ := newTestService(author, fan)

	post, err := svc.CreatePost(ctx, author.ID.Hex(), "never liked")
	require.NoError(t, err)

	_, err = svc.UnlikePost(ctx, post.ID, fan.ID.Hex())
	require.ErrorIs(t, err, domain.ErrNotYetLiked)

	current, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Empty(t, current[0].Likes)
}

func TestLikeThenUnlikeRestoresState(t *testing.T) {
	ctx := context.Background()
	author := newTestUser()
	first := newTestUser()
	second := newTestUser()
	svc, _ := newTestService(author, first, second)

	post, err := svc.CreatePost(ctx, author.ID.Hex(), "popular")
	require.NoError(t, err)

	before, err := svc.LikePost(ctx, post.ID, first.ID.Hex())
	require.NoError(t, err)

	_, err = svc.LikePost(ctx, post.ID, second.ID.Hex())
	require.NoError(t, err)

	after, err := svc.UnlikePost(ctx, post.ID, second.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	author := newTestUser()
	commenter := newTestUser()
	svc, _ := newTestService(author, commenter)

	post, err := svc.CreatePost(ctx, author.ID.Hex(), "discuss")
	require.NoError(t, err)

	comments, err := svc.AddComment(ctx, post.ID, commenter.ID.Hex(), "first!")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, commenter.ID.Hex(), comments[0].User)
	require.Equal(t, commenter.Name, comments[0].Name)
	require.Equal(t, commenter.Avatar, comments[0].Avatar)
	require.Equal(t, "first!", comments[0].Text)

	// Newest comment sits at the front.
	comments, err = svc.AddComment(ctx, post.ID, author.ID.Hex(), "second!")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, "second!", comments[0].Text)
}

func TestDeleteCommentAuthorization(t *testing.T) {
	ctx := context.Background()
	owner := newTestUser()
	commenter := newTestUser()
	stranger := newTestUser()
	svc, _ := newTestService(owner, commenter, stranger)

	post, err := svc.CreatePost(ctx, owner.ID.Hex(), "moderated")
	require.NoError(t, err)

	comments, err := svc.AddComment(ctx, post.ID, commenter.ID.Hex(), "remove me")
	require.NoError(t, err)
	commentID := comments[0].ID

	_, err = svc.DeleteComment(ctx, post.ID, commentID, stranger.ID.Hex())
	require.ErrorIs(t, err, domain.ErrNotAuthorized)

	current, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, current[0].Comments, 1)

	// The comment author may delete their own comment.
	remaining, err := svc.DeleteComment(ctx, post.ID, commentID, commenter.ID.Hex())
	require.NoError(t, err)
	require.Empty(t, remaining)
}

func TestPostOwnerMayDeleteAnyComment(t *testing.T) {
	ctx := context.Background()
	owner := newTestUser()
	commenter := newTestUser()
	svc, _ := newTestService(owner, commenter)

	post, err := svc.CreatePost(ctx, owner.ID.Hex(), "my post")
	require.NoError(t, err)

	comments, err := svc.AddComment(ctx, post.ID, commenter.ID.Hex(), "unwanted")
	require.NoError(t, err)

	remaining, err := svc.DeleteComment(ctx, post.ID, comments[0].ID, owner.ID.Hex())
	require.NoError(t, err)
	require.Empty(t, remaining)
}

func TestDeleteCommentMissing(t *testing.T) {
	ctx := context.Background()
	owner := newTestUser()
	svc, _ := newTestService(owner)

	post, err := svc.CreatePost(ctx, owner.ID.Hex(), "no comments")
	require.NoError(t, err)

	_, err = svc.DeleteComment(ctx, post.ID, primitive.NewObjectID(), owner.ID.Hex())
	require.ErrorIs(t, err, domain.ErrCommentNotFound)
}

func TestDeleteCommentByIdentityNotValue(t *testing.T) {
	ctx := context.Background()
	owner := newTestUser()
	svc, _ := newTestService(owner)

	post, err := svc.CreatePost(ctx, owner.ID.Hex(), "dupes")
	require.NoError(t, err)

	// Two structurally identical comments; deletion must remove exactly the
	// one addressed by id.
	first, err := svc.AddComment(ctx, post.ID, owner.ID.Hex(), "same text")
	require.NoError(t, err)
	second, err := svc.AddComment(ctx, post.ID, owner.ID.Hex(), "same text")
	require.NoError(t, err)
	require.Len(t, second, 2)

	remaining, err := svc.DeleteComment(ctx, post.ID, first[0].ID, owner.ID.Hex())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, second[0].ID, remaining[0].ID)
}
