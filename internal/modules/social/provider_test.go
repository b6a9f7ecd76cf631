package social

import (
	"testing"
	"time"

	"badmintok/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapKakaoProfile(t *testing.T) {
	payload := []byte(`{
		"id": 12345,
		"kakao_account": {
			"email": "kim@example.com",
			"profile": {
				"nickname": "smash-king",
				"profile_image_url": "https://k.kakaocdn.net/img.jpg",
				"is_default_image": false
			},
			"gender": "male",
			"age_range": "20~29",
			"birthday": "0314",
			"birthyear": "1998",
			"phone_number": "+82 10-1234-5678"
		}
	}`)

	p, err := mapKakaoProfile(payload)
	require.NoError(t, err)

	assert.Equal(t, "12345", p.ProviderUserID)
	assert.Equal(t, "kim@example.com", p.Email)
	assert.Equal(t, "smash-king", p.Nickname)
	assert.Equal(t, domain.GenderMale, p.Gender)
	assert.Equal(t, "20~29", p.AgeRange)
	assert.Equal(t, 1998, p.BirthYear)
	require.NotNil(t, p.Birthday)
	assert.Equal(t, time.Date(1998, 3, 14, 0, 0, 0, 0, time.UTC), *p.Birthday)
	assert.False(t, p.IsDefaultImage)
}

func TestMapKakaoProfile_DefaultImage(t *testing.T) {
	payload := []byte(`{
		"id": 99,
		"kakao_account": {
			"email": "lee@example.com",
			"profile": {"nickname": "lee", "profile_image_url": "https://k.kakaocdn.net/default.jpg", "is_default_image": true}
		}
	}`)

	p, err := mapKakaoProfile(payload)
	require.NoError(t, err)
	assert.True(t, p.IsDefaultImage)
	assert.Nil(t, p.Birthday)
	assert.Zero(t, p.BirthYear)
}

func TestMapNaverProfile(t *testing.T) {
	payload := []byte(`{
		"response": {
			"id": "naver-uid-1",
			"email": "park@example.com",
			"nickname": "netdrop",
			"profile_image": "https://phinf.pstatic.net/custom.png",
			"gender": "F",
			"age": "30-39",
			"birthday": "11-02",
			"birthyear": "1990",
			"mobile": "010-9876-5432"
		}
	}`)

	p, err := mapNaverProfile(payload)
	require.NoError(t, err)

	assert.Equal(t, "naver-uid-1", p.ProviderUserID)
	assert.Equal(t, domain.GenderFemale, p.Gender)
	assert.Equal(t, "30-39", p.AgeRange)
	assert.Equal(t, 1990, p.BirthYear)
	require.NotNil(t, p.Birthday)
	assert.Equal(t, time.Date(1990, 11, 2, 0, 0, 0, 0, time.UTC), *p.Birthday)
	assert.False(t, p.IsDefaultImage)
}

func TestMapNaverProfile_DefaultImageByURL(t *testing.T) {
	payload := []byte(`{
		"response": {
			"id": "naver-uid-2",
			"email": "choi@example.com",
			"nickname": "choi",
			"profile_image": "https://ssl.pstatic.net/static/pwe/address/img_profile.png"
		}
	}`)

	p, err := mapNaverProfile(payload)
	require.NoError(t, err)
	assert.True(t, p.IsDefaultImage)
}

func TestMapGoogleProfile(t *testing.T) {
	payload := []byte(`{
		"sub": "google-sub-1",
		"email": "jung@gmail.com",
		"name": "Jung",
		"picture": "https://lh3.googleusercontent.com/pic"
	}`)

	p, err := mapGoogleProfile(payload)
	require.NoError(t, err)

	assert.Equal(t, "google-sub-1", p.ProviderUserID)
	assert.Equal(t, "jung@gmail.com", p.Email)
	assert.Equal(t, "Jung", p.Nickname)
	assert.Empty(t, p.AgeRange)
	assert.False(t, p.IsDefaultImage)
}

func TestParseYear_RejectsNonDigits(t *testing.T) {
	assert.Equal(t, 1998, parseYear("1998"))
	assert.Zero(t, parseYear("19ab"))
	assert.Zero(t, parseYear("-123"))
	assert.Zero(t, parseYear("98"))
	assert.Zero(t, parseYear(""))
}

func TestBuildBirthday_Invalid(t *testing.T) {
	assert.Nil(t, buildBirthday("", "0314"))
	assert.Nil(t, buildBirthday("1998", ""))
	assert.Nil(t, buildBirthday("1998", "1332"))
}
