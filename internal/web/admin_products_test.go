package web

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shoplite/internal/storage"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

func productEditBody(t *testing.T, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "Kettle"))
	require.NoError(t, mw.WriteField("price", "10"))
	require.NoError(t, mw.WriteField("description", "Boils water"))
	require.NoError(t, mw.WriteField("characteristics", "2000 W"))
	if withImage {
		part, err := mw.CreateFormFile("image", "new.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("new-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

// A failed row update must not leave the freshly stored replacement image
// behind; only the original file may remain.
func TestEditProductRemovesOrphanOnSaveFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gdb, mock := newMockDB(t)
	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)
	oldImage, err := store.Save("old.png", strings.NewReader("old"))
	require.NoError(t, err)

	s := &Server{db: gdb, images: store, log: logrus.New()}
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.POST("/admin/products/edit/:id", s.editProduct)

	rows := sqlmock.NewRows([]string{"id", "name", "price", "image", "description", "characteristics"}).
		AddRow(123, "Kettle", 10.0, oldImage, "Boils water", "2000 W")
	mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnRows(rows)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products"`).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	body, contentType := productEditBody(t, true)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/products/edit/123", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/products/edit/123", w.Header().Get("Location"))

	entries, err := os.ReadDir(store.BaseDir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, oldImage, entries[0].Name())

	assert.NoError(t, mock.ExpectationsWereMet())
}

// A successful edit with a replacement upload keeps exactly one stored
// file: the new one. The old file is removed after the row update.
func TestEditProductReplacesImageOnSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gdb, mock := newMockDB(t)
	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)
	oldImage, err := store.Save("old.png", strings.NewReader("old"))
	require.NoError(t, err)

	s := &Server{db: gdb, images: store, log: logrus.New()}
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.POST("/admin/products/edit/:id", s.editProduct)

	rows := sqlmock.NewRows([]string{"id", "name", "price", "image", "description", "characteristics"}).
		AddRow(123, "Kettle", 10.0, oldImage, "Boils water", "2000 W")
	mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnRows(rows)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body, contentType := productEditBody(t, true)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/products/edit/123", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/products", w.Header().Get("Location"))

	entries, err := os.ReadDir(store.BaseDir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEqual(t, oldImage, entries[0].Name())

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Editing without an upload must leave the stored file and filename alone.
func TestEditProductWithoutUploadKeepsImage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gdb, mock := newMockDB(t)
	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)
	oldImage, err := store.Save("old.png", strings.NewReader("old"))
	require.NoError(t, err)

	s := &Server{db: gdb, images: store, log: logrus.New()}
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.POST("/admin/products/edit/:id", s.editProduct)

	rows := sqlmock.NewRows([]string{"id", "name", "price", "image", "description", "characteristics"}).
		AddRow(123, "Kettle", 10.0, oldImage, "Boils water", "2000 W")
	mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnRows(rows)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body, contentType := productEditBody(t, false)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/products/edit/123", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)

	entries, err := os.ReadDir(store.BaseDir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, oldImage, entries[0].Name())

	assert.NoError(t, mock.ExpectationsWereMet())
}
