package repository

import (
	"context"
	"sort"
	"sync"

	"forum-app/post-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InMemoryPostRepository (example, used in tests). It mirrors the
// conditional-update semantics of the MongoDB repository under a mutex.
type InMemoryPostRepository struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*domain.Post
	order []primitive.ObjectID
}

func NewInMemoryPostRepository() *InMemoryPostRepository {
	return &InMemoryPostRepository{
		posts: make(map[primitive.ObjectID]*domain.Post),
	}
}

func (r *InMemoryPostRepository) Insert(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := clonePost(post)
	r.posts[post.ID] = clone
	r.order = append(r.order, post.ID)
	return nil
}

func (r *InMemoryPostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(post), nil
}

func (r *InMemoryPostRepository) FindAllByDateDesc(ctx context.Context) ([]domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts := []domain.Post{}
	for _, id := range r.order {
		if post, ok := r.posts[id]; ok {
			posts = append(posts, *clonePost(post))
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
	return posts, nil
}

func (r *InMemoryPostRepository) FindByUser(ctx context.Context, userID string) ([]domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Insertion order, matching the default order of an unsorted find.
	posts := []domain.Post{}
	for _, id := range r.order {
		if post, ok := r.posts[id]; ok && post.User == userID {
			posts = append(posts, *clonePost(post))
		}
	}
	return posts, nil
}

func (r *InMemoryPostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *InMemoryPostRepository) AddLike(ctx context.Context, postID primitive.ObjectID, like domain.Like) ([]domain.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[postID]
	if !ok || post.LikedBy(like.User) {
		return nil, domain.ErrAlreadyLiked
	}
	post.Likes = append([]domain.Like{like}, post.Likes...)
	return cloneLikes(post.Likes), nil
}

func (r *InMemoryPostRepository) RemoveLike(ctx context.Context, postID primitive.ObjectID, userID string) ([]domain.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[postID]
	if !ok || !post.LikedBy(userID) {
		return nil, domain.ErrNotYetLiked
	}
	likes := post.Likes[:0]
	for _, l := range post.Likes {
		if l.User != userID {
			likes = append(likes, l)
		}
	}
	post.Likes = likes
	return cloneLikes(post.Likes), nil
}

func (r *InMemoryPostRepository) AddComment(ctx context.Context, postID primitive.ObjectID, comment domain.Comment) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[postID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	post.Comments = append([]domain.Comment{comment}, post.Comments...)
	return cloneComments(post.Comments), nil
}

func (r *InMemoryPostRepository) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[postID]
	if !ok || post.FindComment(commentID) == nil {
		return nil, domain.ErrCommentNotFound
	}
	comments := post.Comments[:0]
	for _, c := range post.Comments {
		if c.ID != commentID {
			comments = append(comments, c)
		}
	}
	post.Comments = comments
	return cloneComments(post.Comments), nil
}

func clonePost(post *domain.Post) *domain.Post {
	clone := *post
	clone.Likes = cloneLikes(post.Likes)
	clone.Comments = cloneComments(post.Comments)
	return &clone
}

func cloneLikes(likes []domain.Like) []domain.Like {
	return append([]domain.Like{}, likes...)
}

func cloneComments(comments []domain.Comment) []domain.Comment {
	return append([]domain.Comment{}, comments...)
}
