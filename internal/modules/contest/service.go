package contest

import (
	"context"
	"errors"
	"time"

	"badmintok/internal/domain"
	"badmintok/internal/repository"

	"gorm.io/gorm"
)

// Dates in the contest directory arrive as plain calendar days.
const dateLayout = "2006-01-02"

// Service is the tournament directory: admin-curated listings that any
// user can browse and bookmark with a like.
type Service struct {
	contests ContestRepository
}

func NewService(contests ContestRepository) *Service {
	return &Service{contests: contests}
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.ContestCategory, error) {
	return s.contests.ListCategories(ctx)
}

func (s *Service) List(ctx context.Context, f repository.ContestFilter) ([]domain.Contest, int64, error) {
	return s.contests.List(ctx, f)
}

// GetBySlug also reports whether the caller liked this contest; a zero
// userID skips the lookup.
func (s *Service) GetBySlug(ctx context.Context, slug string, userID int64) (*domain.Contest, bool, error) {
	contest, err := s.contests.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrContestNotFound
		}
		return nil, false, err
	}

	liked := false
	if userID != 0 {
		liked, err = s.contests.LikeExists(ctx, contest.ID, userID)
		if err != nil {
			return nil, false, err
		}
	}
	return contest, liked, nil
}

func (s *Service) Create(ctx context.Context, req CreateContestRequest) (*domain.Contest, error) {
	scheduleStart, err := time.Parse(dateLayout, req.ScheduleStart)
	if err != nil {
		return nil, err
	}
	registrationStart, err := time.Parse(dateLayout, req.RegistrationStart)
	if err != nil {
		return nil, err
	}
	registrationEnd, err := time.Parse(dateLayout, req.RegistrationEnd)
	if err != nil {
		return nil, err
	}

	contest := &domain.Contest{
		CategoryID:        req.CategoryID,
		Title:             req.Title,
		Slug:              req.Slug,
		Image:             req.Image,
		ScheduleStart:     scheduleStart,
		Location:          req.Location,
		EventDivision:     req.EventDivision,
		RegistrationStart: registrationStart,
		RegistrationEnd:   registrationEnd,
		RegistrationLink:  req.RegistrationLink,
		EntryFee:          req.EntryFee,
		CompetitionType:   req.CompetitionType,
		ParticipantReward: req.ParticipantReward,
		AwardReward:       req.AwardReward,
		Sponsor:           req.Sponsor,
		Description:       req.Description,
	}
	if req.ScheduleEnd != nil {
		if end, err := time.Parse(dateLayout, *req.ScheduleEnd); err == nil {
			contest.ScheduleEnd = &end
		}
	}

	if err := s.contests.Create(ctx, contest); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return contest, nil
}

func (s *Service) Update(ctx context.Context, contestID int64, req UpdateContestRequest) (*domain.Contest, error) {
	contest, err := s.contests.GetByID(ctx, contestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		contest.Title = *req.Title
	}
	if req.CategoryID != nil {
		contest.CategoryID = req.CategoryID
	}
	if req.Image != nil {
		contest.Image = *req.Image
	}
	if req.ScheduleStart != nil {
		if start, err := time.Parse(dateLayout, *req.ScheduleStart); err == nil {
			contest.ScheduleStart = start
		}
	}
	if req.ScheduleEnd != nil {
		if end, err := time.Parse(dateLayout, *req.ScheduleEnd); err == nil {
			contest.ScheduleEnd = &end
		}
	}
	if req.Location != nil {
		contest.Location = *req.Location
	}
	if req.EventDivision != nil {
		contest.EventDivision = *req.EventDivision
	}
	if req.RegistrationStart != nil {
		if start, err := time.Parse(dateLayout, *req.RegistrationStart); err == nil {
			contest.RegistrationStart = start
		}
	}
	if req.RegistrationEnd != nil {
		if end, err := time.Parse(dateLayout, *req.RegistrationEnd); err == nil {
			contest.RegistrationEnd = end
		}
	}
	if req.RegistrationLink != nil {
		contest.RegistrationLink = *req.RegistrationLink
	}
	if req.EntryFee != nil {
		contest.EntryFee = *req.EntryFee
	}
	if req.CompetitionType != nil {
		contest.CompetitionType = *req.CompetitionType
	}
	if req.ParticipantReward != nil {
		contest.ParticipantReward = *req.ParticipantReward
	}
	if req.AwardReward != nil {
		contest.AwardReward = *req.AwardReward
	}
	if req.Sponsor != nil {
		contest.Sponsor = *req.Sponsor
	}
	if req.Description != nil {
		contest.Description = *req.Description
	}

	if err := s.contests.Save(ctx, contest); err != nil {
		return nil, err
	}
	return contest, nil
}

func (s *Service) Delete(ctx context.Context, contestID int64) error {
	if _, err := s.contests.GetByID(ctx, contestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContestNotFound
		}
		return err
	}
	return s.contests.Delete(ctx, contestID)
}

// ToggleLike flips the caller's like and reports the resulting state.
func (s *Service) ToggleLike(ctx context.Context, contestID, userID int64) (bool, error) {
	if _, err := s.contests.GetByID(ctx, contestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrContestNotFound
		}
		return false, err
	}

	exists, err := s.contests.LikeExists(ctx, contestID, userID)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.contests.RemoveLike(ctx, contestID, userID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.contests.AddLike(ctx, &domain.ContestLike{ContestID: contestID, UserID: userID}); err != nil {
		if repository.IsDuplicate(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) ListLiked(ctx context.Context, userID int64, limit, offset int) ([]domain.Contest, int64, error) {
	return s.contests.ListLiked(ctx, userID, limit, offset)
}
