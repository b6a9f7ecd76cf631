package community

import (
	"context"

	"badmintok/internal/domain"
	"badmintok/internal/repository"
)

type PostRepository interface {
	ListCategories(ctx context.Context, source domain.PostSource) ([]domain.Category, error)

	CreatePost(ctx context.Context, p *domain.Post) error
	GetPostByID(ctx context.Context, id int64) (*domain.Post, error)
	SavePost(ctx context.Context, p *domain.Post) error
	SoftDeletePost(ctx context.Context, id int64) error
	ListPosts(ctx context.Context, f repository.PostFilter) ([]domain.Post, int64, error)
	ListHotPosts(ctx context.Context, source domain.PostSource, limit int) ([]domain.Post, error)
	IncrementViewCount(ctx context.Context, id int64) error

	AddPostImage(ctx context.Context, img *domain.PostImage) error
	DeletePostImages(ctx context.Context, postID int64) error

	CreateComment(ctx context.Context, c *domain.Comment) error
	GetComment(ctx context.Context, id int64) (*domain.Comment, error)
	SoftDeleteComment(ctx context.Context, c *domain.Comment) error
	ListComments(ctx context.Context, postID int64) ([]domain.Comment, error)

	AddLike(ctx context.Context, l *domain.PostLike) error
	RemoveLike(ctx context.Context, postID, userID int64) error
	LikeExists(ctx context.Context, postID, userID int64) (bool, error)
}
