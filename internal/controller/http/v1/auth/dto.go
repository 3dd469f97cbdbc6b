package auth

type SignInRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required"`
	Password string `json:"password" form:"password"`
}

type LeaderSignInRequest struct {
	Name   string `json:"name"   form:"name"   validate:"required"`
	Sector string `json:"sector" form:"sector" validate:"required"`
	Shift  string `json:"shift"  form:"shift"`
}
