package actions

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"github.com/gobuffalo/httptest"

	"github.com/silinternational/intake-api/api"
)

// photoUploadForm holds the non-file fields of the upload form
type photoUploadForm struct {
	GroupKey string `form:"group_key"`
}

func (as *ActionSuite) Test_PhotosUpload() {
	tests := []struct {
		name           string
		groupKey       string
		withFile       bool
		compressErr    error
		uploadErr      error
		wantStatus     int
		wantContains   []string
		wantUploadName string
	}{
		{
			name:           "ok",
			groupKey:       "intake-9",
			withFile:       true,
			wantStatus:     http.StatusOK,
			wantContains:   []string{`"url":"https://photos.example.com/intake-9/door.jpg"`, `"path":"intake-9/door.jpg"`},
			wantUploadName: "door.jpg",
		},
		{
			name:         "missing group key",
			withFile:     true,
			wantStatus:   http.StatusBadRequest,
			wantContains: []string{`"key":"ErrorMissingGroupKey"`},
		},
		{
			name:         "missing file",
			groupKey:     "intake-9",
			wantStatus:   http.StatusBadRequest,
			wantContains: []string{`"key":"ErrorReceivingFile"`},
		},
		{
			name:     "not an image",
			groupKey: "intake-9",
			withFile: true,
			compressErr: api.NewAppError(errors.New("invalid file type text/plain"),
				api.ErrorStoreFileBadContentType, api.CategoryUser),
			wantStatus:   http.StatusBadRequest,
			wantContains: []string{`"key":"ErrorStoreFileBadContentType"`, "Only image files can be attached"},
		},
		{
			name:     "storage failure",
			groupKey: "intake-9",
			withFile: true,
			uploadErr: api.NewAppError(errors.New("no such bucket"),
				api.ErrorUnableToStoreFile, api.CategoryStorage),
			wantStatus:   http.StatusInternalServerError,
			wantContains: []string{`"key":"ErrorUnableToStoreFile"`, "An internal system error has occurred"},
		},
	}
	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			as.SetupTest()
			as.compressor.err = tt.compressErr
			as.store.uploadErr = tt.uploadErr

			params := photoUploadForm{GroupKey: tt.groupKey}
			var files []httptest.File
			if tt.withFile {
				files = append(files, httptest.File{
					ParamName: "file",
					FileName:  "door.png",
					Reader:    bytes.NewReader([]byte("\x89PNG\r\n\x1a\nfake")),
				})
			}

			res, err := as.HTML("/photos").MultiPartPost(params, files...)
			as.NoError(err)
			body := res.Body.String()
			as.Equal(tt.wantStatus, res.Code, "incorrect status code returned, body: %s", body)
			as.verifyResponseData(tt.wantContains, body, tt.name)

			if tt.wantUploadName == "" {
				return
			}
			as.Len(as.store.uploads, 1)
			as.Equal(tt.wantUploadName, as.store.uploads[0].Name)
			as.Equal("image/jpeg", as.store.uploads[0].ContentType)

			var item api.PhotoItem
			as.NoError(as.decodeBody(res.Body.Bytes(), &item))
			as.Equal("intake-9/door.jpg", item.Path)
		})
	}
}

func (as *ActionSuite) Test_PhotosDelete() {
	tests := []struct {
		name        string
		url         string
		deleteErr   error
		wantDeleted []string
	}{
		{name: "ok", url: "/photos?path=intake-9%2Fdoor.jpg", wantDeleted: []string{"intake-9/door.jpg"}},
		{
			name:        "failure is not reported",
			url:         "/photos?path=intake-9%2Fgone.jpg",
			deleteErr:   errors.New("access denied"),
			wantDeleted: []string{"intake-9/gone.jpg"},
		},
		{name: "no path", url: "/photos", wantDeleted: nil},
	}
	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			as.SetupTest()
			as.store.deleteErr = tt.deleteErr

			res := as.JSON("%s", tt.url).Delete()
			as.Equal(http.StatusNoContent, res.Code)
			as.Equal(tt.wantDeleted, as.store.deleted)
		})
	}
}
