package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abonnet/univ-edt-api/internal/models"
	"github.com/abonnet/univ-edt-api/internal/service"
	"github.com/abonnet/univ-edt-api/internal/store"
	"github.com/abonnet/univ-edt-api/pkg/config"
	"github.com/abonnet/univ-edt-api/pkg/storage"
)

type testServer struct {
	engine  http.Handler
	store   *store.Store
	admin   models.User
	teacher models.User
	student models.User
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := store.New(nil, zap.NewNop())
	admin := s.AddUser(store.NewUser{
		FirstName: "Admin", LastName: "User", Password: "pw.admin",
		Kind: models.Administrator{},
	})
	teacher := s.AddUser(store.NewUser{
		FirstName: "Marie", LastName: "Durand", Password: "pw.teacher",
		Kind: models.Teacher{Rank: models.RankProfessor},
	})
	class := s.AddClass(store.NewClass{Name: "L3 Informatique", Level: models.LevelL3})
	student := s.AddUser(store.NewUser{
		FirstName: "Jean", LastName: "Dupont", Password: "pw.student",
		Kind: models.Student{ClassID: class.ID},
	})
	s.AddClassroom(store.NewClassroom{Name: "Amphi B", Capacity: 120})

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)

	metrics := service.NewMetricsService()
	exports := service.NewExportService(s, files, signer, service.ExportConfig{}, nil, metrics, nil)
	exports.Start(context.Background())
	t.Cleanup(exports.Stop)

	cfg := &config.Config{Env: config.EnvProduction, APIPrefix: "/api/v1"}
	engine := New(cfg, s, Services{
		Auth:      service.NewAuthService(s, nil, nil),
		Profile:   service.NewProfileService(s, nil, nil),
		Classroom: service.NewClassroomService(s, nil, nil),
		Class:     service.NewClassService(s, nil, nil),
		Teacher:   service.NewTeacherService(s, nil, nil),
		Student:   service.NewStudentService(s, nil, nil),
		Subject:   service.NewSubjectService(s, nil, nil),
		Occupancy: service.NewOccupancyService(s, nil),
		Admin:     service.NewAdminService(s, nil),
		Export:    exports,
		Metrics:   metrics,
	}, zap.NewNop())

	return &testServer{engine: engine, store: s, admin: admin, teacher: teacher, student: student}
}

func (ts *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var payload *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		payload = bytes.NewBuffer(raw)
	} else {
		payload = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.engine.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := ts.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.Token)
	return body.Data.Token
}

func TestRouterAuthFlow(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/v1/classrooms", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "user.admin", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")

	token := ts.login(t, "user.admin", "pw.admin")

	rec = ts.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "administrator")

	rec = ts.do(http.MethodDelete, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterRoleGates(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.login(t, "user.admin", "pw.admin")
	teacherToken := ts.login(t, "durand.marie", "pw.teacher")
	studentToken := ts.login(t, "dupont.jean", "pw.student")

	// Listing is a staff operation.
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/v1/classrooms", adminToken, nil).Code)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/v1/classrooms", teacherToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodGet, "/api/v1/classrooms", studentToken, nil).Code)

	// Mutations are admin only.
	payload := map[string]interface{}{"name": "B202", "capacity": 40}
	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodPost, "/api/v1/classrooms", teacherToken, payload).Code)
	assert.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/v1/classrooms", adminToken, payload).Code)
}

func TestRouterSelfAccess(t *testing.T) {
	ts := newTestServer(t)
	studentToken := ts.login(t, "dupont.jean", "pw.student")

	own := fmt.Sprintf("/api/v1/students/%d/subjects", ts.student.ID)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, own, studentToken, nil).Code)

	other := fmt.Sprintf("/api/v1/teachers/%d/workload", ts.teacher.ID)
	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodGet, other, studentToken, nil).Code)

	// The modification feed is self-or-admin.
	ownFeed := fmt.Sprintf("/api/v1/users/%d/modifications", ts.student.ID)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, ownFeed, studentToken, nil).Code)
	otherFeed := fmt.Sprintf("/api/v1/users/%d/modifications", ts.teacher.ID)
	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodGet, otherFeed, studentToken, nil).Code)
}

func TestRouterEnvelopeAndPagination(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "user.admin", "pw.admin")

	rec := ts.do(http.MethodGet, "/api/v1/classrooms", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data       []models.Classroom `json:"data"`
		Pagination *models.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Amphi B", body.Data[0].Name)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 1, body.Pagination.TotalCount)
	assert.Equal(t, store.PageSize, body.Pagination.PageSize)
}

func TestRouterHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/health", "", nil).Code)

	rec := ts.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "goroutines_total")
}
