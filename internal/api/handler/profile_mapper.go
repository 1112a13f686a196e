package handler

import (
	"strconv"
	"time"

	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
)

// --- Domain → Response ---

func toProfileResponse(u *domain.User) profileResponse {
	resp := profileResponse{
		ID:        strconv.FormatInt(u.ID, 10),
		Name:      u.Name,
		Email:     u.Email,
		Title:     u.Title,
		Company:   u.Company,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		Phone:     u.Phone,
		Location:  u.Location,
		Timezone:  u.Timezone,
	}
	if u.LastUpdated != nil {
		ts := u.LastUpdated.UTC().Format(time.RFC3339Nano)
		resp.LastUpdated = &ts
	}
	return resp
}

func toUserSummary(u *domain.User) userSummary {
	return userSummary{
		ID:    strconv.FormatInt(u.ID, 10),
		Name:  u.Name,
		Email: u.Email,
	}
}
