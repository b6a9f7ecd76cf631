package band

type CreateBandRequest struct {
	Name                 string `json:"name" binding:"required,max=200"`
	Description          string `json:"description" binding:"max=500"`
	DetailedDescription  string `json:"detailed_description"`
	BandType             string `json:"band_type" binding:"required,oneof=flash group club"`
	Region               string `json:"region" binding:"required,oneof=all capital busan daegu gwangju daejeon ulsan jeju"`
	JoinApprovalRequired bool   `json:"join_approval_required"`
	CoverImage           string `json:"cover_image"`
	ProfileImage         string `json:"profile_image"`
}

type UpdateBandRequest struct {
	Name                 *string `json:"name" binding:"omitempty,max=200"`
	Description          *string `json:"description" binding:"omitempty,max=500"`
	DetailedDescription  *string `json:"detailed_description"`
	Region               *string `json:"region" binding:"omitempty,oneof=all capital busan daegu gwangju daejeon ulsan jeju"`
	JoinApprovalRequired *bool   `json:"join_approval_required"`
	CoverImage           *string `json:"cover_image"`
	ProfileImage         *string `json:"profile_image"`
}

type RequestDeletionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CreatePostRequest struct {
	Title    string `json:"title" binding:"max=200"`
	Content  string `json:"content" binding:"required"`
	PostType string `json:"post_type" binding:"omitempty,oneof=general announcement schedule vote question"`
	IsNotice bool   `json:"is_notice"`
}

type UpdatePostRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=200"`
	Content  *string `json:"content"`
	IsPinned *bool   `json:"is_pinned"`
}

type CreateCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *int64 `json:"parent_id"`
}

type CreateVoteRequest struct {
	Title            string   `json:"title" binding:"required,max=200"`
	Content          string   `json:"content"`
	Options          []string `json:"options" binding:"required,min=2,dive,required,max=200"`
	IsMultipleChoice bool     `json:"is_multiple_choice"`
	EndDatetime      *string  `json:"end_datetime"`
}

type CastVoteRequest struct {
	OptionID int64 `json:"option_id" binding:"required"`
}
