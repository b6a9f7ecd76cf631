package social

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"badmintok/internal/config"
	"badmintok/internal/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	kakaoAuthURL     = "https://kauth.kakao.com/oauth/authorize"
	kakaoTokenURL    = "https://kauth.kakao.com/oauth/token"
	kakaoUserInfoURL = "https://kapi.kakao.com/v2/user/me"

	naverAuthURL     = "https://nid.naver.com/oauth2.0/authorize"
	naverTokenURL    = "https://nid.naver.com/oauth2.0/token"
	naverUserInfoURL = "https://openapi.naver.com/v1/nid/me"

	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

	// Naver has no is-default flag, so its stock avatar is matched by URL.
	naverDefaultImageMarker = "ssl.pstatic.net/static/pwe"
)

// ProviderProfile is the normalized shape every provider's userinfo payload
// is mapped into before reconciliation.
type ProviderProfile struct {
	ProviderUserID string
	Email          string
	Nickname       string
	Gender         domain.Gender
	AgeRange       string
	Birthday       *time.Time
	BirthYear      int
	PhoneNumber    string
	ImageURL       string
	IsDefaultImage bool
}

// Provider describes one social login integration: where to send the user,
// how to trade the code for a token, and how to read the userinfo payload.
type Provider struct {
	Name        domain.AuthProvider
	OAuth       *oauth2.Config
	UserInfoURL string
	MapProfile  func(data []byte) (*ProviderProfile, error)
}

func NewKakaoProvider(cfg config.OAuthProvider) *Provider {
	return &Provider{
		Name: domain.ProviderKakao,
		OAuth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  kakaoAuthURL,
				TokenURL: kakaoTokenURL,
			},
			Scopes: []string{"account_email", "profile_nickname", "profile_image"},
		},
		UserInfoURL: kakaoUserInfoURL,
		MapProfile:  mapKakaoProfile,
	}
}

func NewNaverProvider(cfg config.OAuthProvider) *Provider {
	return &Provider{
		Name: domain.ProviderNaver,
		OAuth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  naverAuthURL,
				TokenURL: naverTokenURL,
			},
		},
		UserInfoURL: naverUserInfoURL,
		MapProfile:  mapNaverProfile,
	}
}

func NewGoogleProvider(cfg config.OAuthProvider) *Provider {
	return &Provider{
		Name: domain.ProviderGoogle,
		OAuth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		UserInfoURL: googleUserInfoURL,
		MapProfile:  mapGoogleProfile,
	}
}

type kakaoUserInfo struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email   string `json:"email"`
		Profile struct {
			Nickname        string `json:"nickname"`
			ProfileImageURL string `json:"profile_image_url"`
			IsDefaultImage  bool   `json:"is_default_image"`
		} `json:"profile"`
		Gender      string `json:"gender"`
		AgeRange    string `json:"age_range"`
		Birthday    string `json:"birthday"`
		Birthyear   string `json:"birthyear"`
		PhoneNumber string `json:"phone_number"`
	} `json:"kakao_account"`
}

func mapKakaoProfile(data []byte) (*ProviderProfile, error) {
	var info kakaoUserInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parse kakao userinfo: %w", err)
	}

	acc := info.KakaoAccount
	p := &ProviderProfile{
		ProviderUserID: fmt.Sprintf("%d", info.ID),
		Email:          acc.Email,
		Nickname:       acc.Profile.Nickname,
		Gender:         parseGender(acc.Gender),
		AgeRange:       acc.AgeRange,
		PhoneNumber:    acc.PhoneNumber,
		ImageURL:       acc.Profile.ProfileImageURL,
		IsDefaultImage: acc.Profile.IsDefaultImage,
	}

	// Kakao splits birth date into birthyear "YYYY" and birthday "MMDD".
	p.BirthYear = parseYear(acc.Birthyear)
	p.Birthday = buildBirthday(acc.Birthyear, normalizeMonthDay(acc.Birthday))

	return p, nil
}

type naverUserInfo struct {
	Response struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		Nickname     string `json:"nickname"`
		ProfileImage string `json:"profile_image"`
		Gender       string `json:"gender"`
		Age          string `json:"age"`
		Birthday     string `json:"birthday"`
		Birthyear    string `json:"birthyear"`
		Mobile       string `json:"mobile"`
	} `json:"response"`
}

func mapNaverProfile(data []byte) (*ProviderProfile, error) {
	var info naverUserInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parse naver userinfo: %w", err)
	}

	res := info.Response
	p := &ProviderProfile{
		ProviderUserID: res.ID,
		Email:          res.Email,
		Nickname:       res.Nickname,
		Gender:         parseGender(res.Gender),
		AgeRange:       res.Age,
		PhoneNumber:    res.Mobile,
		ImageURL:       res.ProfileImage,
		IsDefaultImage: strings.Contains(res.ProfileImage, naverDefaultImageMarker),
	}

	// Naver uses birthday "MM-DD" plus birthyear "YYYY".
	p.BirthYear = parseYear(res.Birthyear)
	p.Birthday = buildBirthday(res.Birthyear, strings.ReplaceAll(res.Birthday, "-", ""))

	return p, nil
}

type googleUserInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func mapGoogleProfile(data []byte) (*ProviderProfile, error) {
	var info googleUserInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parse google userinfo: %w", err)
	}

	// Google exposes no demographics; the picture is always a generated
	// avatar, never flagged as default.
	return &ProviderProfile{
		ProviderUserID: info.Sub,
		Email:          info.Email,
		Nickname:       info.Name,
		ImageURL:       info.Picture,
	}, nil
}

func parseGender(v string) domain.Gender {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "MALE", "M":
		return domain.GenderMale
	case "FEMALE", "F":
		return domain.GenderFemale
	case "":
		return ""
	default:
		return domain.GenderOther
	}
}

// parseYear accepts only a four-digit year; anything else yields 0.
func parseYear(v string) int {
	if len(v) != 4 {
		return 0
	}
	year, err := strconv.Atoi(v)
	if err != nil || year <= 0 {
		return 0
	}
	return year
}

func normalizeMonthDay(v string) string {
	v = strings.TrimSpace(v)
	if len(v) != 4 {
		return ""
	}
	return v
}

// buildBirthday combines "YYYY" and "MMDD" into a date. Either part missing
// yields nil.
func buildBirthday(year, monthDay string) *time.Time {
	if len(year) != 4 || len(monthDay) != 4 {
		return nil
	}
	t, err := time.Parse("20060102", year+monthDay)
	if err != nil {
		return nil
	}
	return &t
}
