package admin

type RejectBandRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type AnswerInquiryRequest struct {
	Answer string `json:"answer" binding:"required"`
}

type UserListFilter struct {
	Query  string `form:"q"`
	Active *bool  `form:"active"`
}
