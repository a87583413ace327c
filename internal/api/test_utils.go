package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mworley/recipebox/backend/internal/service"
	"github.com/mworley/recipebox/backend/internal/testhelpers"
)

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	auth     *service.AuthService
	images   *service.LocalImageStore
	mediaDir string
}

// setupTestEnv wires the full API against an in-memory database and a
// local image store rooted in a temp dir. Rate limiting is disabled.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.OpenTestDB(t)
	auth := service.NewAuthService(db, "test-secret")
	mediaDir := t.TempDir()
	images := service.NewLocalImageStore(mediaDir, "http://localhost:8080/media")

	router := gin.New()
	RegisterRoutes(router, db, auth, images, nil)

	return &testEnv{router: router, db: db, auth: auth, images: images, mediaDir: mediaDir}
}

// createTestUser registers a user and returns a bearer token for it.
func (e *testEnv) createTestUser(t *testing.T, email, password string) string {
	t.Helper()

	user, err := e.auth.Register(context.Background(), "Test User", email, password)
	require.NoError(t, err)

	token, err := e.auth.GenerateToken(user.ID)
	require.NoError(t, err)
	return token
}

// doJSON sends a JSON request and returns the recorded response.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// doMultipart uploads a single file field and returns the response.
func (e *testEnv) doMultipart(t *testing.T, method, path, token, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

// testPNG returns a small valid PNG payload.
func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 25), G: uint8(y * 25), B: 100, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// sampleRecipe returns a minimal valid create payload.
func sampleRecipe(overrides map[string]any) map[string]any {
	payload := map[string]any{
		"title":        "Sample recipe",
		"time_minutes": 10,
		"price":        5.00,
	}
	for k, v := range overrides {
		payload[k] = v
	}
	return payload
}
