package community

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"badmintok/internal/domain"
	"badmintok/internal/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	viewDedupTTL = 24 * time.Hour
	hotCacheTTL  = 5 * time.Minute
	hotListSize  = 20
)

// Service runs the public boards: community, news and member reviews.
// Redis keeps per-viewer view dedup and the hot-list cache; a nil client
// degrades to plain DB behavior.
type Service struct {
	posts PostRepository
	cache *redis.Client
}

func NewService(posts PostRepository, cache *redis.Client) *Service {
	return &Service{posts: posts, cache: cache}
}

func (s *Service) ListCategories(ctx context.Context, source domain.PostSource) ([]domain.Category, error) {
	return s.posts.ListCategories(ctx, source)
}

func (s *Service) CreatePost(ctx context.Context, authorID int64, source domain.PostSource, req CreatePostRequest) (*domain.Post, error) {
	post := &domain.Post{
		AuthorID:   authorID,
		CategoryID: req.CategoryID,
		Source:     source,
		Title:      req.Title,
		Content:    req.Content,
		IsDraft:    req.IsDraft,
	}
	if !req.IsDraft {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	for i, image := range req.Images {
		img := &domain.PostImage{PostID: post.ID, Image: image, Order: i}
		if err := s.posts.AddPostImage(ctx, img); err != nil {
			return nil, err
		}
		post.Images = append(post.Images, *img)
	}
	return post, nil
}

// GetPost returns the post and counts the view at most once per viewer per
// day. viewerKey is the user ID for logged-in traffic and the client IP
// otherwise. Drafts and scheduled posts exist only for their author and
// admins; everyone else gets not-found, and preview reads never count.
func (s *Service) GetPost(ctx context.Context, postID, viewerID int64, isAdmin bool, viewerKey string) (*domain.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if !post.Visible(time.Now()) {
		if post.AuthorID != viewerID && !isAdmin {
			return nil, ErrPostNotFound
		}
		return post, nil
	}

	if s.shouldCountView(ctx, postID, viewerKey) {
		if err := s.posts.IncrementViewCount(ctx, postID); err != nil {
			return nil, err
		}
		post.ViewCount++
	}
	return post, nil
}

// shouldCountView is fail-open: with no cache, or a cache error, every
// request counts.
func (s *Service) shouldCountView(ctx context.Context, postID int64, viewerKey string) bool {
	if s.cache == nil || viewerKey == "" {
		return true
	}

	key := fmt.Sprintf("post:view:%d:%s:%s", postID, viewerKey, time.Now().Format("2006-01-02"))
	set, err := s.cache.SetNX(ctx, key, 1, viewDedupTTL).Result()
	if err != nil {
		log.Printf("community: view dedup failed: %v", err)
		return true
	}
	return set
}

func (s *Service) UpdatePost(ctx context.Context, postID, actorID int64, req UpdatePostRequest) (*domain.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.CategoryID != nil {
		post.CategoryID = req.CategoryID
	}
	if req.IsDraft != nil {
		// Publishing a draft stamps published_at; it is never re-stamped.
		if post.IsDraft && !*req.IsDraft && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.IsDraft = *req.IsDraft
	}

	if err := s.posts.SavePost(ctx, post); err != nil {
		return nil, err
	}

	if req.Images != nil {
		if err := s.posts.DeletePostImages(ctx, postID); err != nil {
			return nil, err
		}
		post.Images = nil
		for i, image := range req.Images {
			img := &domain.PostImage{PostID: postID, Image: image, Order: i}
			if err := s.posts.AddPostImage(ctx, img); err != nil {
				return nil, err
			}
			post.Images = append(post.Images, *img)
		}
	}
	return post, nil
}

func (s *Service) DeletePost(ctx context.Context, postID, actorID int64, isAdmin bool) error {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if post.AuthorID != actorID && !isAdmin {
		return ErrForbidden
	}
	return s.posts.SoftDeletePost(ctx, postID)
}

func (s *Service) ListPosts(ctx context.Context, f repository.PostFilter) ([]domain.Post, int64, error) {
	return s.posts.ListPosts(ctx, f)
}

// HotPosts serves the engagement-ranked list, cached briefly because the
// ranking query scans a month of posts.
func (s *Service) HotPosts(ctx context.Context, source domain.PostSource) ([]domain.Post, error) {
	cacheKey := "post:hot:" + string(source)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var posts []domain.Post
			if json.Unmarshal([]byte(raw), &posts) == nil {
				return posts, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("community: hot cache read failed: %v", err)
		}
	}

	posts, err := s.posts.ListHotPosts(ctx, source, hotListSize)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(posts); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, hotCacheTTL).Err(); err != nil {
				log.Printf("community: hot cache write failed: %v", err)
			}
		}
	}
	return posts, nil
}

// Comments.

func (s *Service) AddComment(ctx context.Context, postID, authorID int64, req CreateCommentRequest) (*domain.Comment, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := &domain.Comment{
		PostID:   postID,
		AuthorID: authorID,
		ParentID: req.ParentID,
		Content:  req.Content,
	}
	if err := s.posts.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Service) ListComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	return s.posts.ListComments(ctx, postID)
}

func (s *Service) DeleteComment(ctx context.Context, commentID, actorID int64, isAdmin bool) error {
	comment, err := s.posts.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.AuthorID != actorID && !isAdmin {
		return ErrForbidden
	}
	return s.posts.SoftDeleteComment(ctx, comment)
}

// ToggleLike flips the caller's like and reports the resulting state.
func (s *Service) ToggleLike(ctx context.Context, postID, userID int64) (bool, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrPostNotFound
		}
		return false, err
	}

	exists, err := s.posts.LikeExists(ctx, postID, userID)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.posts.RemoveLike(ctx, postID, userID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.posts.AddLike(ctx, &domain.PostLike{PostID: postID, UserID: userID}); err != nil {
		if repository.IsDuplicate(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}
