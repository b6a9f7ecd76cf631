package social

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"badmintok/internal/domain"
	"badmintok/internal/modules/auth"

	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// Service reconciles social provider identities with local accounts. One
// code path serves every provider; the differences live in the Provider
// descriptors.
type Service struct {
	providers map[domain.AuthProvider]*Provider
	users     UserRepository
	profiles  ProfileRepository
	issuer    TokenIssuer
	images    ImageStore
	client    *http.Client
}

// Result is what a completed social login hands back to the client.
type Result struct {
	User          *domain.User
	NeedsRealName bool
	auth.TokenPair
}

func NewService(
	providers []*Provider,
	users UserRepository,
	profiles ProfileRepository,
	issuer TokenIssuer,
	images ImageStore,
) *Service {
	byName := make(map[domain.AuthProvider]*Provider, len(providers))
	for _, p := range providers {
		byName[p.Name] = p
	}
	return &Service{
		providers: byName,
		users:     users,
		profiles:  profiles,
		issuer:    issuer,
		images:    images,
		client:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *Service) Provider(name string) (*Provider, error) {
	p, ok := s.providers[domain.AuthProvider(strings.ToLower(name))]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return p, nil
}

// AuthCodeURL builds the provider's authorization redirect for the given
// CSRF state.
func (s *Service) AuthCodeURL(providerName, state string) (string, error) {
	p, err := s.Provider(providerName)
	if err != nil {
		return "", err
	}
	return p.OAuth.AuthCodeURL(state), nil
}

// HandleCallback finishes the web redirect flow: trades the code for an
// access token, fetches the user info and reconciles the account.
func (s *Service) HandleCallback(ctx context.Context, providerName, code string) (*Result, error) {
	p, err := s.Provider(providerName)
	if err != nil {
		return nil, err
	}

	// The exchange gets the same 5s timeout as every other provider call.
	exchangeCtx := context.WithValue(ctx, oauth2.HTTPClient, s.client)
	token, err := p.OAuth.Exchange(exchangeCtx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	return s.loginWithAccessToken(ctx, p, token.AccessToken)
}

// LoginWithToken serves mobile clients that already hold a provider access
// token from a native SDK.
func (s *Service) LoginWithToken(ctx context.Context, providerName, accessToken string) (*Result, error) {
	p, err := s.Provider(providerName)
	if err != nil {
		return nil, err
	}
	return s.loginWithAccessToken(ctx, p, accessToken)
}

func (s *Service) loginWithAccessToken(ctx context.Context, p *Provider, accessToken string) (*Result, error) {
	data, err := s.fetchUserInfo(ctx, p, accessToken)
	if err != nil {
		return nil, err
	}

	profile, err := p.MapProfile(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfoFailed, err)
	}

	user, needsRealName, err := s.reconcile(ctx, p, profile)
	if err != nil {
		return nil, err
	}

	pair, err := s.issuer.IssueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &Result{User: user, NeedsRealName: needsRealName, TokenPair: *pair}, nil
}

func (s *Service) fetchUserInfo(ctx context.Context, p *Provider, accessToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfoFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUserInfoFailed, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// reconcile finds or creates the local account for a provider profile and
// merges demographic fields. Non-empty local values always win; only the
// activity name follows the provider (last write wins).
func (s *Service) reconcile(ctx context.Context, p *Provider, prof *ProviderProfile) (*domain.User, bool, error) {
	email := strings.ToLower(strings.TrimSpace(prof.Email))
	if email == "" {
		return nil, false, ErrEmailRequired
	}

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &domain.User{
			Email:        email,
			ActivityName: defaultActivityName(prof.Nickname, email),
			AuthProvider: p.Name,
			IsActive:     true,
			// No password hash: social accounts cannot use password login.
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, false, err
		}
	case err != nil:
		return nil, false, err
	default:
		changed := false
		if user.AuthProvider == "" {
			// First provider wins and stays; later logins through other
			// providers do not rewrite it.
			user.AuthProvider = p.Name
			changed = true
		}
		if prof.Nickname != "" && prof.Nickname != user.ActivityName {
			user.ActivityName = prof.Nickname
			changed = true
		}
		if changed {
			if err := s.users.Update(ctx, user); err != nil {
				return nil, false, err
			}
		}
	}

	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	created := false
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = &domain.Profile{UserID: user.ID}
		created = true
	} else if err != nil {
		return nil, false, err
	}

	s.mergeDemographics(profile, prof)
	s.syncProfileImage(p, user, profile, prof)

	if created {
		if err := s.profiles.Create(ctx, profile); err != nil {
			return nil, false, err
		}
	} else {
		if err := s.profiles.Save(ctx, profile); err != nil {
			return nil, false, err
		}
	}

	return user, !profile.HasRealName(), nil
}

// mergeDemographics fills profile fields from the provider only where the
// local value is empty. The real name is never taken from a provider.
func (s *Service) mergeDemographics(profile *domain.Profile, prof *ProviderProfile) {
	if profile.Gender == "" || profile.Gender == domain.GenderUnknown {
		if prof.Gender != "" {
			profile.Gender = prof.Gender
		}
	}
	if profile.AgeRange == "" && prof.AgeRange != "" {
		profile.AgeRange = prof.AgeRange
	}
	if profile.BirthYear == 0 && prof.BirthYear != 0 {
		profile.BirthYear = prof.BirthYear
	}
	if profile.Birthday == nil && prof.Birthday != nil {
		profile.Birthday = prof.Birthday
	}
	if profile.PhoneNumber == "" && prof.PhoneNumber != "" {
		profile.PhoneNumber = prof.PhoneNumber
	}
}

// syncProfileImage mirrors the provider avatar locally. Any failure here is
// logged and swallowed; an avatar must never break a login.
func (s *Service) syncProfileImage(p *Provider, user *domain.User, profile *domain.Profile, prof *ProviderProfile) {
	if prof.IsDefaultImage || prof.ImageURL == "" {
		if profile.ProfileImage != "" && profile.ProfileImage != domain.DefaultProfileImage {
			if err := s.images.Delete(profile.ProfileImage); err != nil {
				log.Printf("social: delete stale avatar for user %d: %v", user.ID, err)
			}
		}
		profile.ProfileImage = domain.DefaultProfileImage
		return
	}

	name := fmt.Sprintf("%s_%d.jpg", p.Name, user.ID)
	if s.images.Exists(name) {
		return
	}

	path, err := s.images.Fetch(prof.ImageURL, name)
	if err != nil {
		log.Printf("social: fetch avatar for user %d: %v", user.ID, err)
		return
	}
	profile.ProfileImage = path
}

func defaultActivityName(nickname, email string) string {
	if nickname != "" {
		return nickname
	}
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
