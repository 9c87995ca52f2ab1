package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aspiantech/ogle-api/internal/interface/middleware"
	"github.com/aspiantech/ogle-api/pkg/helpers"
	"github.com/aspiantech/ogle-api/pkg/response"
)

const maxImageSize = 10 << 20 // 10 MiB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadHandler stores listing and profile images in a GCS bucket and hands
// back the public URL for use in propertyImageList or profilePictureUrl.
type UploadHandler struct {
	Client *storage.Client
	Bucket string
	Logger *logrus.Logger
}

func NewUploadHandler(client *storage.Client, bucket string, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{Client: client, Bucket: bucket, Logger: logger}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// UploadImage handles POST /uploads/image. Requires an authenticated caller;
// the object path is namespaced by the caller's user id.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	if h.Client == nil {
		response.Error(c, http.StatusServiceUnavailable, "image storage is not configured", nil)
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		response.Error(c, http.StatusBadRequest, "image exceeds the 10MB limit", nil)
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		response.Error(c, http.StatusBadRequest, "unsupported image format", nil)
		return
	}

	userID := c.GetString(middleware.CtxUserIDKey)
	objectPath := fmt.Sprintf("images/%s/%d-%s%s", userID, time.Now().Unix(), uuid.New().String(), ext)

	url, err := helpers.UploadObject(c.Request.Context(), h.Client, h.Bucket, objectPath, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.Logger.WithError(err).Error("image upload failed")
		response.Error(c, http.StatusServiceUnavailable, "image upload failed", nil)
		return
	}

	response.Success(c, http.StatusCreated, uploadResponse{URL: url}, "image uploaded")
}
