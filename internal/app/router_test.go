package app_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"microhabits_backend/internal/app"
	"microhabits_backend/internal/config"
	"microhabits_backend/internal/testutil"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t          *testing.T
	app        *app.App
	storageDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, nil)
}

func newTestServerWith(t *testing.T, configure func(*config.Config)) *testServer {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: "test"},
		Storage:   config.StorageConfig{Type: "local", LocalPath: dir},
		RateLimit: config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 1},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	if configure != nil {
		configure(cfg)
	}

	a, err := app.New(cfg, testutil.NewDB(t), nil)
	require.NoError(t, err)
	return &testServer{t: t, app: a, storageDir: dir}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)
	return w
}

func (s *testServer) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.do(req)
}

func (s *testServer) form(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

type idOnly struct {
	ID uint `json:"id"`
}

func (s *testServer) createUser(name string) uint {
	s.t.Helper()
	w := s.request(http.MethodPost, "/usuarios/", map[string]interface{}{
		"nombre": name, "edad": 20, "categoria": "Estudiante",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var user idOnly
	decode(s.t, w, &user)
	return user.ID
}

func TestUserLifecycle(t *testing.T) {
	s := newTestServer(t)

	id := s.createUser("Ana")

	w := s.request(http.MethodPost, "/usuarios/", map[string]interface{}{"nombre": "Ana", "categoria": "Docente"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPost, "/usuarios/", map[string]interface{}{"edad": 20})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.request(http.MethodGet, fmt.Sprintf("/usuarios/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var user struct {
		Name   string `json:"nombre"`
		Level  int    `json:"nivel"`
		Active bool   `json:"activo"`
	}
	decode(t, w, &user)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, 1, user.Level)
	assert.True(t, user.Active)

	w = s.request(http.MethodGet, "/usuarios/buscar/Ana", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.request(http.MethodDelete, fmt.Sprintf("/usuarios/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/usuarios/buscar/Ana", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var deleted []idOnly
	decode(t, s.request(http.MethodGet, "/usuarios/eliminados", nil), &deleted)
	require.Len(t, deleted, 1)
	assert.Equal(t, id, deleted[0].ID)

	w = s.request(http.MethodPut, fmt.Sprintf("/usuarios/restaurar/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var active []idOnly
	decode(t, s.request(http.MethodGet, "/usuarios/", nil), &active)
	assert.Len(t, active, 1)

	assert.Equal(t, http.StatusBadRequest, s.request(http.MethodGet, "/usuarios/abc", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.request(http.MethodGet, "/usuarios/999", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.request(http.MethodDelete, "/usuarios/999", nil).Code)
}

func TestChallengeAndProgress(t *testing.T) {
	s := newTestServer(t)
	userID := s.createUser("Ana")

	w := s.request(http.MethodPost, "/microrretos/", map[string]string{
		"categoria": "Python", "dificultad": "Baja", "contenido": "¿Qué es una lista?", "respuesta": "Una secuencia",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var challenge idOnly
	decode(t, w, &challenge)

	w = s.request(http.MethodPost, "/progresos/", map[string]interface{}{"usuario_id": userID, "reto_id": 999})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.request(http.MethodPost, "/progresos/", map[string]interface{}{"usuario_id": userID, "reto_id": challenge.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var progress idOnly
	decode(t, w, &progress)

	w = s.request(http.MethodPatch, fmt.Sprintf("/progresos/%d/completado", progress.ID), map[string]bool{"completado": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var completed []idOnly
	decode(t, s.request(http.MethodGet, "/progresos/?completado=true", nil), &completed)
	assert.Len(t, completed, 1)

	var mine []idOnly
	decode(t, s.request(http.MethodGet, fmt.Sprintf("/usuarios/%d/progresos", userID), nil), &mine)
	assert.Len(t, mine, 1)

	w = s.request(http.MethodDelete, fmt.Sprintf("/microrretos/%d", challenge.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusNotFound, s.request(http.MethodGet, fmt.Sprintf("/progresos/%d", progress.ID), nil).Code)
}

func TestCommunityMembership(t *testing.T) {
	s := newTestServer(t)
	userID := s.createUser("Ana")

	w := s.request(http.MethodPost, "/comunidades/", map[string]interface{}{
		"nombre_reto": "Reto de 21 días", "categoria": "Python", "duracion": 21,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var community idOnly
	decode(t, w, &community)

	add := fmt.Sprintf("/comunidad/%d/agregar/%d", community.ID, userID)
	remove := fmt.Sprintf("/comunidad/%d/remover/%d", community.ID, userID)

	require.Equal(t, http.StatusOK, s.request(http.MethodPost, add, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.request(http.MethodPost, add, nil).Code)

	var members []idOnly
	decode(t, s.request(http.MethodGet, fmt.Sprintf("/comunidad/%d/participantes", community.ID), nil), &members)
	require.Len(t, members, 1)
	assert.Equal(t, userID, members[0].ID)

	require.Equal(t, http.StatusOK, s.request(http.MethodDelete, remove, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.request(http.MethodDelete, remove, nil).Code)

	assert.Equal(t, http.StatusNotFound, s.request(http.MethodPost, fmt.Sprintf("/comunidad/999/agregar/%d", userID), nil).Code)
	assert.Equal(t, http.StatusNotFound, s.request(http.MethodPost, fmt.Sprintf("/comunidad/%d/agregar/999", community.ID), nil).Code)
}

func TestGamificationAndRanking(t *testing.T) {
	s := newTestServer(t)

	w := s.request(http.MethodGet, "/reportes/ranking", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	ana := s.createUser("Ana")
	luis := s.createUser("Luis")

	for id, points := range map[uint]int{ana: 10, luis: 25} {
		w := s.request(http.MethodPost, "/gamificacion/", map[string]interface{}{"usuario_id": id, "puntos": points})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w = s.request(http.MethodPost, "/gamificacion/", map[string]interface{}{"usuario_id": ana})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPatch, fmt.Sprintf("/gamificacion/usuario/%d/puntos", ana), map[string]int{"delta": 20})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var record struct {
		Points int    `json:"puntos"`
		Badge  string `json:"badge"`
	}
	decode(t, w, &record)
	assert.Equal(t, 30, record.Points)
	assert.Equal(t, "Ninguno", record.Badge)

	w = s.request(http.MethodPatch, fmt.Sprintf("/gamificacion/usuario/%d/badge", ana), map[string]string{"badge": "Oro"})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, s.request(http.MethodGet, fmt.Sprintf("/usuarios/%d/gamificacion", ana), nil), &record)
	assert.Equal(t, "Oro", record.Badge)

	var rows []struct {
		Position int    `json:"puesto"`
		Name     string `json:"usuario"`
	}
	decode(t, s.request(http.MethodGet, "/reportes/ranking/json", nil), &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ana", rows[0].Name)
	assert.Equal(t, "Luis", rows[1].Name)

	w = s.request(http.MethodGet, "/reportes/ranking", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ranking_usuarios.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestWebPages(t *testing.T) {
	s := newTestServer(t)

	w := s.request(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/web/", w.Header().Get("Location"))

	for _, path := range []string{"/web/", "/web/usuarios", "/web/microrretos", "/web/comunidades", "/web/ranking"} {
		w := s.request(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html", path)
	}

	w = s.form("/web/usuarios", url.Values{"nombre": {"Ana"}, "edad": {"20"}, "categoria": {"Estudiante"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/web/usuarios", w.Header().Get("Location"))

	w = s.request(http.MethodGet, "/web/usuarios", nil)
	assert.Contains(t, w.Body.String(), "Ana")

	w = s.form("/web/usuarios", url.Values{"nombre": {"Ana"}, "edad": {"20"}, "categoria": {"Estudiante"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "el usuario ya existe")

	w = s.form("/web/microrretos", url.Values{"categoria": {"SQL"}, "dificultad": {"Media"}, "contenido": {"JOIN"}, "respuesta": {"Unión"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	assert.Equal(t, http.StatusNotFound, s.request(http.MethodGet, "/web/comunidades/999", nil).Code)
}

func TestHealthAndMiddleware(t *testing.T) {
	s := newTestServer(t)

	w := s.request(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	req.Header.Set("Origin", "http://localhost:3000")
	w = s.do(req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = s.request(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (s *testServer) upload(path, filename string, content []byte) *httptest.ResponseRecorder {
	s.t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("foto", filename)
	require.NoError(s.t, err)
	_, err = part.Write(content)
	require.NoError(s.t, err)
	require.NoError(s.t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return s.do(req)
}

func TestUploadPhoto(t *testing.T) {
	s := newTestServer(t)
	id := s.createUser("Ana")
	path := fmt.Sprintf("/usuarios/%d/foto", id)

	w := s.upload(path, "avatar.png", pngBytes(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var user struct {
		Photo string `json:"foto"`
	}
	decode(t, w, &user)
	require.True(t, strings.HasPrefix(user.Photo, fmt.Sprintf("/uploads/fotos/%d/", id)), user.Photo)

	_, err := os.Stat(filepath.Join(s.storageDir, strings.TrimPrefix(user.Photo, "/uploads/")))
	assert.NoError(t, err)

	w = s.request(http.MethodGet, user.Photo, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.upload(path, "notes.txt", []byte("just some plain text"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.upload("/usuarios/999/foto", "avatar.png", pngBytes(t))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadsServedAfterStorageFallback(t *testing.T) {
	// MinIO 端点为空无法初始化，存储退回本地目录
	s := newTestServerWith(t, func(cfg *config.Config) {
		cfg.Storage.Type = "minio"
	})
	id := s.createUser("Ana")

	w := s.upload(fmt.Sprintf("/usuarios/%d/foto", id), "avatar.png", pngBytes(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var user struct {
		Photo string `json:"foto"`
	}
	decode(t, w, &user)
	require.True(t, strings.HasPrefix(user.Photo, "/uploads/"), user.Photo)

	w = s.request(http.MethodGet, user.Photo, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
