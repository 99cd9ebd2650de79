package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/delivery/http/response"
	"recruitment-platform/internal/domain"
	"recruitment-platform/internal/usecase"
	"recruitment-platform/pkg/apperror"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(r *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}
	r.POST("/auth/me/picture", handler.UploadPicture)
}

// UploadPicture godoc
// @Summary      Upload profile picture
// @Description  Upload a JPG or PNG (max 5MB). The image is resized and stored; the account's profile_picture is updated.
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image file"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      503   {object}  response.Response
// @Router       /auth/me/picture [post]
// @Security     BearerAuth
func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, usecase.MaxPictureBytes+1<<20)
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "File is required", err))
		return
	}
	defer file.Close()

	if header.Size > usecase.MaxPictureBytes {
		c.Error(apperror.BadRequest("File too large. Maximum size is 5MB"))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, usecase.MaxPictureBytes+1))
	if err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Failed to read file", err))
		return
	}

	user, err := h.profileUC.UpdateProfilePicture(c.Request.Context(), who, data)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile picture updated", toUserResponse(user))
}
