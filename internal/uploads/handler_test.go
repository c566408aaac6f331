package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neharamiah/Book-bridge/internal/storage"
)

type fakeStore struct {
	records []Upload
	err     error
}

func (f *fakeStore) Create(_ context.Context, u *Upload) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *u)
	return nil
}

func (f *fakeStore) All(_ context.Context) ([]Upload, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []Upload{}
	out = append(out, f.records...)
	return out, nil
}

func newTestRouter(t *testing.T, store Store, strict bool) (*gin.Engine, *storage.Dir) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	blobs, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	h := NewHandler(store, blobs, strict)
	r := gin.New()
	r.POST("/api/uploads", h.Create)
	r.GET("/uploads", h.List)
	return r, blobs
}

func validFields() map[string]string {
	return map[string]string{
		"branch":  "CSE",
		"sem":     "5",
		"subject": "Operating Systems",
		"type":    "notes",
		"email":   "a@x.com",
		"phone":   "555-0100",
		"author":  "A. Author",
	}
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, content := range files {
		fw, err := w.CreateFormFile(field, field+".pdf")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func postUpload(r *gin.Engine, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateUpload(t *testing.T) {
	store := &fakeStore{}
	r, blobs := newTestRouter(t, store, true)

	body, ct := multipartBody(t, validFields(), map[string][]byte{
		"frontFile": []byte("front page"),
		"tocFile":   []byte("table of contents"),
	})
	w := postUpload(r, body, ct)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Upload successful"}`, w.Body.String())

	require.Len(t, store.records, 1)
	rec := store.records[0]
	assert.Equal(t, RoleLender, rec.Role)
	assert.Equal(t, "CSE", rec.Branch)
	assert.Equal(t, "5", rec.Sem)
	assert.Equal(t, "Operating Systems", rec.Subject)
	assert.Equal(t, "notes", rec.Type)
	assert.Equal(t, "a@x.com", rec.Email)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := os.ReadFile(filepath.Join(blobs.Path(), rec.FrontFile))
	require.NoError(t, err)
	assert.Equal(t, []byte("front page"), got)

	require.NotNil(t, rec.TocFile)
	got, err = os.ReadFile(filepath.Join(blobs.Path(), *rec.TocFile))
	require.NoError(t, err)
	assert.Equal(t, []byte("table of contents"), got)
}

func TestCreateUploadWithoutToc(t *testing.T) {
	store := &fakeStore{}
	r, _ := newTestRouter(t, store, true)

	body, ct := multipartBody(t, validFields(), map[string][]byte{
		"frontFile": []byte("front page"),
	})
	w := postUpload(r, body, ct)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.records, 1)
	assert.Nil(t, store.records[0].TocFile)
}

func TestCreateUploadMissingMetadata(t *testing.T) {
	store := &fakeStore{}
	r, _ := newTestRouter(t, store, true)

	fields := validFields()
	delete(fields, "subject")
	body, ct := multipartBody(t, fields, map[string][]byte{"frontFile": []byte("x")})
	w := postUpload(r, body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Missing fields"}`, w.Body.String())
	assert.Empty(t, store.records)
}

func TestCreateUploadMissingFrontFile(t *testing.T) {
	store := &fakeStore{}
	r, _ := newTestRouter(t, store, true)

	body, ct := multipartBody(t, validFields(), nil)
	w := postUpload(r, body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.records)
}

func TestCreateUploadLenientMode(t *testing.T) {
	store := &fakeStore{}
	r, _ := newTestRouter(t, store, false)

	// No metadata, no files: the lenient variant stores whatever arrived.
	body, ct := multipartBody(t, map[string]string{"phone": "555-0100"}, nil)
	w := postUpload(r, body, ct)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.records, 1)
	assert.Equal(t, "", store.records[0].FrontFile)
	assert.Equal(t, "555-0100", store.records[0].Phone)
}

func TestCreateUploadFileTooLarge(t *testing.T) {
	store := &fakeStore{}
	r, blobs := newTestRouter(t, store, true)

	body, ct := multipartBody(t, validFields(), map[string][]byte{
		"frontFile": make([]byte, MaxFileSize+1),
	})
	w := postUpload(r, body, ct)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Empty(t, store.records, "no record may be created for an oversized file")

	entries, err := os.ReadDir(blobs.Path())
	require.NoError(t, err)
	assert.Empty(t, entries, "no blob may be written for an oversized file")
}

func TestCreateUploadOversizedToc(t *testing.T) {
	store := &fakeStore{}
	r, _ := newTestRouter(t, store, true)

	body, ct := multipartBody(t, validFields(), map[string][]byte{
		"frontFile": []byte("small"),
		"tocFile":   make([]byte, MaxFileSize+1),
	})
	w := postUpload(r, body, ct)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Empty(t, store.records)
}

func TestCreateUploadStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("write concern failed")}
	r, _ := newTestRouter(t, store, true)

	body, ct := multipartBody(t, validFields(), map[string][]byte{"frontFile": []byte("x")})
	w := postUpload(r, body, ct)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Upload failed"}`, w.Body.String())
}

func TestListUploads(t *testing.T) {
	store := &fakeStore{}
	r, _ := newTestRouter(t, store, true)

	for i := 0; i < 3; i++ {
		body, ct := multipartBody(t, validFields(), map[string][]byte{"frontFile": []byte("x")})
		require.Equal(t, http.StatusOK, postUpload(r, body, ct).Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/uploads", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got []Upload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 3)
	for _, rec := range got {
		assert.Equal(t, RoleLender, rec.Role)
		assert.Equal(t, "CSE", rec.Branch)
	}
}

func TestListUploadsEmpty(t *testing.T) {
	store := &fakeStore{}
	r, _ := newTestRouter(t, store, true)

	req := httptest.NewRequest(http.MethodGet, "/uploads", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestListUploadsStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("cursor timeout")}
	r, _ := newTestRouter(t, store, true)

	req := httptest.NewRequest(http.MethodGet, "/uploads", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Fetch failed"}`, w.Body.String())
}
