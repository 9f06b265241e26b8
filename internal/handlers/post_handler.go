package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"forum-app/post-service/internal/domain"
	services "forum-app/post-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostHandler struct {
	postService services.PostService
}

func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

type CreatePostRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// FieldError names the offending field in a validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func validationErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: "Invalid request body"}}
	}

	fieldErrors := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		message := fmt.Sprintf("%s is invalid", fe.Field())
		if fe.Tag() == "required" {
			message = fmt.Sprintf("%s is required", fe.Field())
		}
		fieldErrors = append(fieldErrors, FieldError{Field: field, Message: message})
	}
	return fieldErrors
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, err := GetUserID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErrors(err)})
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), userID, req.Text)
	if err != nil {
		log.Error().Err(err).Msg("create post failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("list posts failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) ListPostsByUser(c *gin.Context) {
	userID := c.Param("userID")
	// A malformed id is a lookup fault, same as the legacy behavior.
	if _, err := primitive.ObjectIDFromHex(userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Posts not found"})
		return
	}

	posts, err := h.postService.ListPostsByUser(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("list posts by user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	// Zero matches is a valid, empty result.
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, err := GetUserID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("postID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
		return
	}

	err = h.postService.DeletePost(c.Request.Context(), postID, userID)
	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
	case errors.Is(err, domain.ErrNotAuthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "User not authorized"})
	case err != nil:
		log.Error().Err(err).Msg("delete post failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
	default:
		c.JSON(http.StatusOK, gin.H{"msg": "Post removed"})
	}
}

func (h *PostHandler) LikePost(c *gin.Context) {
	userID, err := GetUserID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("postID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
		return
	}

	likes, err := h.postService.LikePost(c.Request.Context(), postID, userID)
	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
	case errors.Is(err, domain.ErrAlreadyLiked):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Post already liked"})
	case err != nil:
		log.Error().Err(err).Msg("like post failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
	default:
		c.JSON(http.StatusOK, likes)
	}
}

func (h *PostHandler) UnlikePost(c *gin.Context) {
	userID, err := GetUserID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("postID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
		return
	}

	likes, err := h.postService.UnlikePost(c.Request.Context(), postID, userID)
	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
	case errors.Is(err, domain.ErrNotYetLiked):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Post has not yet been liked"})
	case err != nil:
		log.Error().Err(err).Msg("unlike post failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
	default:
		c.JSON(http.StatusOK, likes)
	}
}

func (h *PostHandler) AddComment(c *gin.Context) {
	userID, err := GetUserID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("postID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErrors(err)})
		return
	}

	comments, err := h.postService.AddComment(c.Request.Context(), postID, userID, req.Text)
	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
	case err != nil:
		log.Error().Err(err).Msg("add comment failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
	default:
		c.JSON(http.StatusOK, comments)
	}
}

func (h *PostHandler) DeleteComment(c *gin.Context) {
	userID, err := GetUserID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("postID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
		return
	}

	commentID, err := primitive.ObjectIDFromHex(c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Comment does not exist"})
		return
	}

	comments, err := h.postService.DeleteComment(c.Request.Context(), postID, commentID, userID)
	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
	case errors.Is(err, domain.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "Comment does not exist"})
	case errors.Is(err, domain.ErrNotAuthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "User not authorized"})
	case err != nil:
		log.Error().Err(err).Msg("delete comment failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
	default:
		c.JSON(http.StatusOK, comments)
	}
}

func SetupPostRoutes(router *gin.Engine, authService services.AuthService, postService services.PostService) {
	handler := NewPostHandler(postService)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	posts := router.Group("/posts")
	posts.Use(AuthMiddleware(authService))
	{
		posts.POST("", handler.CreatePost)
		posts.GET("", handler.ListPosts)
		posts.GET("/myposts/:userID", handler.ListPostsByUser)
		posts.DELETE("/myposts/:postID", handler.DeletePost)
		posts.PUT("/like/:postID", handler.LikePost)
		posts.PUT("/unlike/:postID", handler.UnlikePost)
		posts.POST("/comment/:postID", handler.AddComment)
		posts.DELETE("/delete_comment/:postID/:comment_id", handler.DeleteComment)
	}
}
