package band

import (
	"context"
	"errors"
	"time"

	"badmintok/internal/domain"
	"badmintok/internal/repository"

	"gorm.io/gorm"
)

// PostService covers the member-only board inside a band: posts, comments,
// likes and votes.
type PostService struct {
	bands BandRepository
	posts PostRepository
}

func NewPostService(bands BandRepository, posts PostRepository) *PostService {
	return &PostService{bands: bands, posts: posts}
}

func (s *PostService) requireActiveMember(ctx context.Context, bandID, userID int64) (*domain.BandMember, error) {
	member, err := s.bands.GetMember(ctx, bandID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotMember
		}
		return nil, err
	}
	if member.Status != domain.MemberActive {
		return nil, ErrNotMember
	}
	return member, nil
}

func (s *PostService) CreatePost(ctx context.Context, bandID, userID int64, req CreatePostRequest) (*domain.BandPost, error) {
	member, err := s.requireActiveMember(ctx, bandID, userID)
	if err != nil {
		return nil, err
	}

	postType := domain.BandPostType(req.PostType)
	if postType == "" {
		postType = domain.BandPostGeneral
	}
	if req.IsNotice && !member.Role.CanManage() {
		return nil, ErrForbidden
	}

	post := &domain.BandPost{
		BandID:   bandID,
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
		PostType: postType,
		IsNotice: req.IsNotice,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, bandID, userID int64, postType domain.BandPostType, limit, offset int) ([]domain.BandPost, int64, error) {
	if _, err := s.requireActiveMember(ctx, bandID, userID); err != nil {
		return nil, 0, err
	}
	return s.posts.List(ctx, bandID, postType, limit, offset)
}

func (s *PostService) GetPost(ctx context.Context, bandID, postID, userID int64) (*domain.BandPost, error) {
	if _, err := s.requireActiveMember(ctx, bandID, userID); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil || post.BandID != bandID {
		return nil, ErrPostNotFound
	}

	if err := s.posts.IncrementViewCount(ctx, postID); err != nil {
		return nil, err
	}
	post.ViewCount++
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, bandID, postID, userID int64, req UpdatePostRequest) (*domain.BandPost, error) {
	member, err := s.requireActiveMember(ctx, bandID, userID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil || post.BandID != bandID {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != userID && !member.Role.CanManage() {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.IsPinned != nil {
		// Pinning is reserved for owners/admins.
		if !member.Role.CanManage() {
			return nil, ErrForbidden
		}
		post.IsPinned = *req.IsPinned
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, bandID, postID, userID int64) error {
	member, err := s.requireActiveMember(ctx, bandID, userID)
	if err != nil {
		return err
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil || post.BandID != bandID {
		return ErrPostNotFound
	}
	if post.AuthorID != userID && !member.Role.CanManage() {
		return ErrForbidden
	}
	return s.posts.Delete(ctx, postID)
}

// Comments.

func (s *PostService) AddComment(ctx context.Context, bandID, postID, userID int64, req CreateCommentRequest) (*domain.BandComment, error) {
	if _, err := s.requireActiveMember(ctx, bandID, userID); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil || post.BandID != bandID {
		return nil, ErrPostNotFound
	}

	comment := &domain.BandComment{
		PostID:   postID,
		AuthorID: userID,
		ParentID: req.ParentID,
		Content:  req.Content,
	}
	if err := s.posts.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *PostService) ListComments(ctx context.Context, bandID, postID, userID int64) ([]domain.BandComment, error) {
	if _, err := s.requireActiveMember(ctx, bandID, userID); err != nil {
		return nil, err
	}
	return s.posts.ListComments(ctx, postID)
}

func (s *PostService) DeleteComment(ctx context.Context, bandID, commentID, userID int64) error {
	member, err := s.requireActiveMember(ctx, bandID, userID)
	if err != nil {
		return err
	}

	comment, err := s.posts.GetComment(ctx, commentID)
	if err != nil {
		return ErrPostNotFound
	}
	if comment.AuthorID != userID && !member.Role.CanManage() {
		return ErrForbidden
	}
	return s.posts.DeleteComment(ctx, comment)
}

// ToggleLike flips the caller's like and reports the resulting state.
func (s *PostService) ToggleLike(ctx context.Context, bandID, postID, userID int64) (liked bool, err error) {
	if _, err := s.requireActiveMember(ctx, bandID, userID); err != nil {
		return false, err
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil || post.BandID != bandID {
		return false, ErrPostNotFound
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

	if err := s.posts.AddLike(ctx, &domain.BandPostLike{PostID: postID, UserID: userID}); err != nil {
		if repository.IsDuplicate(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// Votes.

func (s *PostService) CreateVote(ctx context.Context, bandID, userID int64, req CreateVoteRequest) (*domain.BandVote, error) {
	if _, err := s.requireActiveMember(ctx, bandID, userID); err != nil {
		return nil, err
	}

	post := &domain.BandPost{
		BandID:   bandID,
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
		PostType: domain.BandPostVote,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	vote := &domain.BandVote{
		PostID:           post.ID,
		Title:            req.Title,
		IsMultipleChoice: req.IsMultipleChoice,
	}
	if req.EndDatetime != nil {
		if end, err := time.Parse(time.RFC3339, *req.EndDatetime); err == nil {
			vote.EndDatetime = &end
		}
	}
	for i, text := range req.Options {
		vote.Options = append(vote.Options, domain.BandVoteOption{
			OptionText: text,
			OrderIndex: i,
		})
	}

	if err := s.posts.CreateVote(ctx, vote); err != nil {
		return nil, err
	}
	return vote, nil
}

func (s *PostService) GetVote(ctx context.Context, bandID, postID, userID int64) (*domain.BandVote, []domain.BandVoteChoice, error) {
	if _, err := s.requireActiveMember(ctx, bandID, userID); err != nil {
		return nil, nil, err
	}

	vote, err := s.posts.GetVoteByPost(ctx, postID)
	if err != nil {
		return nil, nil, ErrVoteNotFound
	}

	mine, err := s.posts.ListChoicesByUser(ctx, vote.ID, userID)
	if err != nil {
		return nil, nil, err
	}
	return vote, mine, nil
}

func (s *PostService) CastVote(ctx context.Context, bandID, postID, userID, optionID int64) error {
	if _, err := s.requireActiveMember(ctx, bandID, userID); err != nil {
		return err
	}

	vote, err := s.posts.GetVoteByPost(ctx, postID)
	if err != nil {
		return ErrVoteNotFound
	}
	if vote.Closed(time.Now()) {
		return ErrVoteClosed
	}

	option, err := s.posts.GetVoteOption(ctx, optionID)
	if err != nil || option.VoteID != vote.ID {
		return ErrVoteNotFound
	}

	if !vote.IsMultipleChoice {
		mine, err := s.posts.ListChoicesByUser(ctx, vote.ID, userID)
		if err != nil {
			return err
		}
		if len(mine) > 0 {
			return ErrSingleChoice
		}
	}

	if err := s.posts.CastChoice(ctx, &domain.BandVoteChoice{
		VoteID:   vote.ID,
		OptionID: optionID,
		UserID:   userID,
	}); err != nil {
		if repository.IsDuplicate(err) {
			return ErrAlreadyVoted
		}
		return err
	}
	return nil
}

func (s *PostService) RetractVote(ctx context.Context, bandID, postID, userID, optionID int64) error {
	if _, err := s.requireActiveMember(ctx, bandID, userID); err != nil {
		return err
	}

	vote, err := s.posts.GetVoteByPost(ctx, postID)
	if err != nil {
		return ErrVoteNotFound
	}
	if vote.Closed(time.Now()) {
		return ErrVoteClosed
	}

	if err := s.posts.RetractChoice(ctx, vote.ID, optionID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVoteNotFound
		}
		return err
	}
	return nil
}
