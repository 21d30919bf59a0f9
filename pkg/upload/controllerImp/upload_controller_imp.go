package controllerImp

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/middleware"
	"airrvie/pkg/storage"
	"airrvie/pkg/upload/repository"
)

// maxUploadBytes caps a single upload at 10 MiB. The cap is checked before
// anything touches the storage backend.
const maxUploadBytes = 10 << 20

var imageExt = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

var audioExt = map[string]string{
	"audio/mpeg": "mp3",
	"audio/wav":  "wav",
	"audio/ogg":  "ogg",
	"audio/m4a":  "m4a",
	"audio/mp4":  "m4a",
}

type UploadCtrl struct {
	repo  repository.MediaRepository
	store storage.Store
}

func New(repo repository.MediaRepository, store storage.Store) *UploadCtrl {
	return &UploadCtrl{repo: repo, store: store}
}

func (h *UploadCtrl) Image(c echo.Context) error {
	return h.accept(c, "images", entities.MediaKindPhoto, imageExt)
}

func (h *UploadCtrl) Audio(c echo.Context) error {
	return h.accept(c, "audio", entities.MediaKindAudio, audioExt)
}

func (h *UploadCtrl) accept(c echo.Context, subdir, kind string, allowed map[string]string) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "missing file"))
	}
	ext, ok := allowed[fh.Header.Get(echo.HeaderContentType)]
	if !ok {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "unsupported content type"))
	}
	if fh.Size > maxUploadBytes {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "file too large"))
	}

	f, err := fh.Open()
	if err != nil {
		return apperr.JSON(c, err)
	}
	defer f.Close()
	// The declared size is client-supplied; re-check while reading.
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return apperr.JSON(c, err)
	}
	if len(data) > maxUploadBytes {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "file too large"))
	}

	obj, err := h.store.Save(data, subdir, ext)
	if err != nil {
		return apperr.JSON(c, err)
	}
	asset := &entities.MediaAsset{
		UserID: middleware.UID(c),
		Kind:   kind,
		Key:    obj.Key,
		URL:    obj.URL,
		Bytes:  obj.Size,
	}
	if err := h.repo.Create(asset); err != nil {
		// Orphaned bytes are worse than a failed request.
		if rmErr := h.store.Remove(subdir, obj.Key); rmErr != nil {
			logrus.WithError(rmErr).WithField("key", obj.Key).Warn("could not remove orphaned upload")
		}
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"id":        asset.ID,
		"url":       asset.URL,
		"kind":      asset.Kind,
		"bytes":     asset.Bytes,
		"createdAt": asset.CreatedAt.Format(time.RFC3339),
	})
}

func (h *UploadCtrl) Delete(c echo.Context) error {
	uid := middleware.UID(c)
	asset, err := h.repo.FindOwned(c.Param("id"), uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	if err := h.repo.SoftDelete(asset.ID, uid); err != nil {
		return apperr.JSON(c, err)
	}
	subdir := "images"
	if asset.Kind == entities.MediaKindAudio {
		subdir = "audio"
	}
	// The row is the source of truth; file removal is best effort.
	if err := h.store.Remove(subdir, asset.Key); err != nil {
		logrus.WithError(err).WithField("key", asset.Key).Warn("could not remove uploaded file")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Upload deleted successfully"})
}
