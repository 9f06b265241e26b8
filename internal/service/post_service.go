package services

import (
	"context"
	"time"

	"forum-app/post-service/internal/domain"
	"forum-app/post-service/internal/repository"
	userRepository "forum-app/post-service/internal/repository/user"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostService implements the post operations. User ids are ObjectID hex
// strings taken from the verified token; post and comment ids arrive
// already parsed by the handlers.
type PostService interface {
	CreatePost(ctx context.Context, userID, text string) (*domain.Post, error)
	ListPosts(ctx context.Context) ([]domain.Post, error)
	ListPostsByUser(ctx context.Context, userID string) ([]domain.Post, error)
	DeletePost(ctx context.Context, postID primitive.ObjectID, userID string) error
	LikePost(ctx context.Context, postID primitive.ObjectID, userID string) ([]domain.Like, error)
	UnlikePost(ctx context.Context, postID primitive.ObjectID, userID string) ([]domain.Like, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, userID, text string) ([]domain.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID primitive.ObjectID, userID string) ([]domain.Comment, error)
}

type PostServiceImpl struct {
	postRepository repository.PostRepository
	userRepository userRepository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo userRepository.UserRepository) PostService {
	return &PostServiceImpl{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// CreatePost snapshots the acting user's name and avatar into the new post.
// A missing profile is a server fault, not a client error: the id came from
// a verified token.
func (s *PostServiceImpl) CreatePost(ctx context.Context, userID, text string) (*domain.Post, error) {
	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		ID:       primitive.NewObjectID(),
		User:     userID,
		Text:     text,
		Name:     user.Name,
		Avatar:   user.Avatar,
		Likes:    []domain.Like{},
		Comments: []domain.Comment{},
		Date:     time.Now().UTC(),
	}

	if err := s.postRepository.Insert(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostServiceImpl) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.postRepository.FindAllByDateDesc(ctx)
}

func (s *PostServiceImpl) ListPostsByUser(ctx context.Context, userID string) ([]domain.Post, error) {
	return s.postRepository.FindByUser(ctx, userID)
}

func (s *PostServiceImpl) DeletePost(ctx context.Context, postID primitive.ObjectID, userID string) error {
	post, err := s.postRepository.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	// Only the owner may delete. Embedded likes and comments go with the
	// document.
	if post.User != userID {
		return domain.ErrNotAuthorized
	}

	return s.postRepository.Delete(ctx, postID)
}

func (s *PostServiceImpl) LikePost(ctx context.Context, postID primitive.ObjectID, userID string) ([]domain.Like, error) {
	post, err := s.postRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.LikedBy(userID) {
		return nil, domain.ErrAlreadyLiked
	}

	// AddLike re-checks the duplicate predicate atomically, so a concurrent
	// like by the same user cannot slip in between the read and the update.
	return s.postRepository.AddLike(ctx, postID, domain.Like{User: userID})
}

func (s *PostServiceImpl) UnlikePost(ctx context.Context, postID primitive.ObjectID, userID string) ([]domain.Like, error) {
	post, err := s.postRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.LikedBy(userID) {
		return nil, domain.ErrNotYetLiked
	}

	// Removes the acting user's entry, not whatever sits at index 0.
	return s.postRepository.RemoveLike(ctx, postID, userID)
}

func (s *PostServiceImpl) AddComment(ctx context.Context, postID primitive.ObjectID, userID, text string) ([]domain.Comment, error) {
	if _, err := s.postRepository.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := domain.Comment{
		ID:     primitive.NewObjectID(),
		User:   userID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
		Date:   time.Now().UTC(),
	}

	return s.postRepository.AddComment(ctx, postID, comment)
}

func (s *PostServiceImpl) DeleteComment(ctx context.Context, postID, commentID primitive.ObjectID, userID string) ([]domain.Comment, error) {
	post, err := s.postRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := post.FindComment(commentID)
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}

	// The post owner and the comment author may delete; anyone else is
	// rejected.
	if userID != post.User && userID != comment.User {
		return nil, domain.ErrNotAuthorized
	}

	return s.postRepository.RemoveComment(ctx, postID, commentID)
}
