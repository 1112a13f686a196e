package handler

import "encoding/json"

// --- Request / Response types ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// updateProfileRequest documents the accepted fields. The handler decodes the
// body by key so that an absent field and an explicit null stay distinct.
type updateProfileRequest struct {
	Name     *string `json:"name"`
	Title    *string `json:"title"`
	Company  *string `json:"company"`
	Bio      *string `json:"bio"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	Timezone *string `json:"timezone"`
}

// userSummary is the user returned by signup.
type userSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// profileResponse is the full public view of a user.
type profileResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatarUrl"`
	Phone       *string `json:"phone"`
	Location    *string `json:"location"`
	Timezone    *string `json:"timezone"`
	LastUpdated *string `json:"lastUpdated"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        any    `json:"user"`
}

type avatarResponse struct {
	AvatarURL string `json:"avatarUrl"`
}

type analysisResponse struct {
	Filename       string          `json:"filename"`
	AnalysisType   string          `json:"analysis_type"`
	AnalysisResult json.RawMessage `json:"analysis_result" swaggertype:"object"`
}

type probeResponse struct {
	Status   int    `json:"status"`
	Response string `json:"response"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}
