package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Abh1nav7/AgenticSprint/internal/api/metrics"
	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
	"github.com/Abh1nav7/AgenticSprint/internal/core/ports"
)

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get handles GET /user/profile.
//
// @Summary      Get the current user's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  detailResponse
// @Failure      404  {object}  detailResponse
// @Router       /user/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetProfile(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Update handles PUT /user/profile. Only the keys present in the body are
// written; an explicit null clears the field. Unknown keys are ignored.
//
// @Summary      Update the current user's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  detailResponse
// @Failure      401   {object}  detailResponse
// @Failure      500   {object}  detailResponse
// @Router       /user/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	changes, err := decodeProfileChanges(c)
	if err != nil {
		return err
	}

	updated, err := h.service.UpdateProfile(c.Request().Context(), user, changes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(updated))
}

// UploadAvatar handles POST /user/avatar (multipart field "file").
//
// @Summary      Upload a new avatar
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image file"
// @Success      200   {object}  avatarResponse
// @Failure      400   {object}  detailResponse
// @Failure      401   {object}  detailResponse
// @Failure      500   {object}  detailResponse
// @Router       /user/avatar [post]
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		metrics.AvatarUploadsTotal.WithLabelValues("rejected").Inc()
		return domain.Invalid("File is required")
	}
	src, err := fh.Open()
	if err != nil {
		metrics.AvatarUploadsTotal.WithLabelValues("error").Inc()
		return err
	}
	defer src.Close()

	url, err := h.service.UploadAvatar(c.Request().Context(), user, ports.AvatarUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Body:        src,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			metrics.AvatarUploadsTotal.WithLabelValues("rejected").Inc()
		} else {
			metrics.AvatarUploadsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.AvatarUploadsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, avatarResponse{AvatarURL: url})
}

// decodeProfileChanges reads the body key by key so presence survives decoding.
func decodeProfileChanges(c echo.Context) (domain.ProfileChanges, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
		return nil, domain.Invalid("Invalid request body")
	}

	changes := make(domain.ProfileChanges, len(raw))
	for _, field := range domain.ProfileFields {
		value, ok := raw[string(field)]
		if !ok {
			continue
		}
		var s *string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, domain.Invalid(string(field) + " must be a string or null")
		}
		changes[field] = s
	}
	return changes, nil
}
