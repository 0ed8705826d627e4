package actions

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/intake-api/api"
	"github.com/silinternational/intake-api/domain"
	"github.com/silinternational/intake-api/log"
	"github.com/silinternational/intake-api/photos"
)

// fileFieldName is the multipart field name for the file upload.
const fileFieldName = "file"

// groupKeyFieldName is the multipart field naming the group the photo belongs to
const groupKeyFieldName = "group_key"

// swagger:operation POST /photos Photos PhotosUpload
//
// PhotosUpload
//
// Compress a photo and store it in the given group
//
// ---
//
//	consumes:
//	  - multipart/form-data
//	parameters:
//	  - name: file
//	    in: formData
//	    type: file
//	    description: photo to attach to a damage marker
//	  - name: group_key
//	    in: formData
//	    type: string
//	    description: storage group, usually one per intake
//	responses:
//	  '200':
//	    description: stored photo
//	    schema:
//	      "$ref": "#/definitions/PhotoItem"
func photosUpload(c buffalo.Context) error {
	groupKey := c.Request().FormValue(groupKeyFieldName)
	if groupKey == "" {
		err := errors.New("group_key is missing from the request")
		return reportError(c, api.NewAppError(err, api.ErrorMissingGroupKey, api.CategoryUser))
	}
	newExtra(c, groupKeyFieldName, groupKey)

	f, err := c.File(fileFieldName)
	if err != nil {
		err := fmt.Errorf("error getting uploaded file from context ... %w", err)
		return reportError(c, api.NewAppError(err, api.ErrorReceivingFile, api.CategoryUser))
	}
	defer f.Close()

	if f.Size > int64(domain.Env.MaxFileSize) {
		err := fmt.Errorf("file upload size (%v) greater than max (%v)", f.Size, domain.Env.MaxFileSize)
		return reportError(c, api.NewAppError(err, api.ErrorStoreFileTooLarge, api.CategoryUser))
	}

	content, err := io.ReadAll(f)
	if err != nil {
		err := fmt.Errorf("error reading uploaded file ... %w", err)
		return reportError(c, api.NewAppError(err, api.ErrorUnableToReadFile, api.CategoryInternal))
	}

	if photoStore == nil {
		err := errors.New("photo storage is not configured")
		return reportError(c, api.NewAppError(err, api.ErrorUnableToStoreFile, api.CategoryStorage))
	}

	file := photos.File{
		Name:        f.Filename,
		ContentType: f.Header.Get("Content-Type"),
		Content:     content,
	}
	if photoCompressor != nil {
		if file, err = photoCompressor.Compress(c, file); err != nil {
			return reportError(c, err)
		}
	}

	item, err := photoStore.Upload(c, file, groupKey)
	if err != nil {
		return reportError(c, err)
	}

	log.WithFields(map[string]any{"group_key": groupKey, "path": item.Path}).Info("photo stored")
	return renderOk(c, item)
}

// swagger:operation DELETE /photos Photos PhotosDelete
//
// PhotosDelete
//
// Remove a stored photo. Failures are logged and not reported to the caller.
//
// ---
//
//	parameters:
//	  - name: path
//	    in: query
//	    type: string
//	    description: storage path returned by the upload
//	responses:
//	  '204':
//	    description: delete attempted
func photosDelete(c buffalo.Context) error {
	path := c.Param("path")

	switch {
	case path == "":
		log.Warn("photo delete requested without a path")
	case photoStore == nil:
		log.Warnf("photo storage is not configured, %s not deleted", path)
	default:
		if err := photoStore.Delete(c, path); err != nil {
			log.WithFields(map[string]any{"path": path, "status": http.StatusNoContent}).
				Warnf("photo delete failed: %s", err)
		}
	}

	return c.Render(http.StatusNoContent, nil)
}
