package band

import (
	"context"
	"time"

	"badmintok/internal/domain"
	"badmintok/internal/repository"
)

type BandRepository interface {
	Create(ctx context.Context, b *domain.Band) error
	GetByID(ctx context.Context, id int64) (*domain.Band, error)
	Save(ctx context.Context, b *domain.Band) error
	List(ctx context.Context, f repository.BandFilter) ([]domain.Band, int64, error)

	AddMember(ctx context.Context, m *domain.BandMember) error
	GetMember(ctx context.Context, bandID, userID int64) (*domain.BandMember, error)
	SaveMember(ctx context.Context, m *domain.BandMember) error
	RemoveMember(ctx context.Context, bandID, userID int64) error
	ListMembers(ctx context.Context, bandID int64, status domain.MemberStatus) ([]domain.BandMember, error)
	CountActiveMembers(ctx context.Context, bandID int64) (int64, error)
	ListUserBands(ctx context.Context, userID int64) ([]domain.Band, error)
	TouchMemberVisit(ctx context.Context, bandID, userID int64, at time.Time) error

	AddBookmark(ctx context.Context, b *domain.BandBookmark) error
	RemoveBookmark(ctx context.Context, bandID, userID int64) error
	ListBookmarks(ctx context.Context, userID int64, limit, offset int) ([]domain.BandBookmark, int64, error)
}

type PostRepository interface {
	Create(ctx context.Context, p *domain.BandPost) error
	GetByID(ctx context.Context, id int64) (*domain.BandPost, error)
	Save(ctx context.Context, p *domain.BandPost) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, bandID int64, postType domain.BandPostType, limit, offset int) ([]domain.BandPost, int64, error)
	IncrementViewCount(ctx context.Context, id int64) error

	CreateComment(ctx context.Context, c *domain.BandComment) error
	GetComment(ctx context.Context, id int64) (*domain.BandComment, error)
	DeleteComment(ctx context.Context, c *domain.BandComment) error
	ListComments(ctx context.Context, postID int64) ([]domain.BandComment, error)

	AddLike(ctx context.Context, l *domain.BandPostLike) error
	RemoveLike(ctx context.Context, postID, userID int64) error
	LikeExists(ctx context.Context, postID, userID int64) (bool, error)

	CreateVote(ctx context.Context, v *domain.BandVote) error
	GetVoteByPost(ctx context.Context, postID int64) (*domain.BandVote, error)
	GetVoteOption(ctx context.Context, optionID int64) (*domain.BandVoteOption, error)
	CastChoice(ctx context.Context, c *domain.BandVoteChoice) error
	RetractChoice(ctx context.Context, voteID, optionID, userID int64) error
	ListChoicesByUser(ctx context.Context, voteID, userID int64) ([]domain.BandVoteChoice, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// NotificationSender delivers membership verdicts. A nil sender disables
// notifications.
type NotificationSender interface {
	MemberApproved(ctx context.Context, userID, bandID int64, bandName string)
}
