package domain

import "time"

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

// DefaultProfileImage is the platform placeholder avatar. Provider-default
// images are normalized back to this path.
const DefaultProfileImage = "images/userprofile/user.png"

// Profile holds everything a user fills in beyond the login identity.
// Name is the real name entered on a dedicated screen; it is never copied
// from a social provider.
type Profile struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	UserID int64 `json:"user_id" gorm:"uniqueIndex;not null"`
	User   *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Name         string     `json:"name"`
	Gender       Gender     `json:"gender" gorm:"size:10;default:unknown"`
	AgeRange     string     `json:"age_range,omitempty" gorm:"size:50"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	BirthYear    int        `json:"birth_year,omitempty"`
	PhoneNumber  string     `json:"phone_number,omitempty" gorm:"size:20"`
	ProfileImage string     `json:"profile_image,omitempty"`

	ShippingReceiver    string `json:"shipping_receiver,omitempty" gorm:"size:100"`
	ShippingPhoneNumber string `json:"shipping_phone_number,omitempty" gorm:"size:20"`
	ShippingAddress     string `json:"shipping_address,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "user_profiles" }

func (p *Profile) HasRealName() bool { return p.Name != "" }

// ProfileImageURL resolves the stored image path, falling back to the
// platform default.
func (p *Profile) ProfileImageURL() string {
	if p.ProfileImage == "" {
		return DefaultProfileImage
	}
	return p.ProfileImage
}
