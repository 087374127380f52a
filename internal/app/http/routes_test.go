package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"educa-app/config"
	"educa-app/database"
	routes "educa-app/internal/app/http"
	"educa-app/internal/app/metrics"
	"educa-app/internal/domain/authoring"
	"educa-app/internal/domain/content"
	"educa-app/internal/domain/courses"
	"educa-app/internal/domain/users"
	"educa-app/internal/infra/blobstore"
	"educa-app/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type app struct {
	t       *testing.T
	r       *gin.Engine
	blobs   *blobstore.Memory
	subject courses.Subject
}

func newApp(t *testing.T) *app {
	gin.SetMode(gin.TestMode)
	config.JWT_SECRET = "test-secret"

	db := testutil.NewDB(t)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	s := courses.Subject{Title: "Programming", Slug: "programming"}
	require.NoError(t, db.Create(&s).Error)

	reg := prometheus.NewRegistry()
	metrics.RegisterCollectors(reg)

	blobs := blobstore.NewMemory("http://blobs.test")
	svc := &authoring.Service{DB: db, Registry: content.NewRegistry(blobs), Blobs: blobs}

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{Authoring: svc, MaxUpload: 1 << 10, Gatherer: reg})
	return &app{t: t, r: r, blobs: blobs, subject: s}
}

func (a *app) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func (a *app) upload(path, token, title, filename, contentType, data string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(a.t, mw.WriteField("title", title))
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename=%q`, filename)}
	h["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(h)
	require.NoError(a.t, err)
	_, err = part.Write([]byte(data))
	require.NoError(a.t, err)
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (a *app) register(email string) string {
	w := a.do(http.MethodPost, "/register", "", gin.H{"name": "Ann", "email": email, "password": "secret123"})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]string](a.t, w)["token"]
}

func (a *app) course(token, title string) courses.Course {
	w := a.do(http.MethodPost, "/courses", token, gin.H{"subject_id": a.subject.ID, "title": title})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[courses.Course](a.t, w)
}

func (a *app) modules(token string, courseID uint, titles ...string) []courses.Module {
	rows := make([]gin.H, 0, len(titles))
	for _, title := range titles {
		rows = append(rows, gin.H{"title": title})
	}
	w := a.do(http.MethodPost, fmt.Sprintf("/courses/%d/modules", courseID), token, gin.H{"modules": rows})
	require.Equal(a.t, http.StatusSeeOther, w.Code, w.Body.String())

	w = a.do(http.MethodGet, fmt.Sprintf("/courses/%d/modules", courseID), token, nil)
	require.Equal(a.t, http.StatusOK, w.Code)
	return decode[struct {
		Modules []courses.Module `json:"modules"`
	}](a.t, w).Modules
}

type listing struct {
	Contents []struct {
		ID    uint         `json:"id"`
		Order int          `json:"order"`
		Item  content.View `json:"item"`
	} `json:"contents"`
}

func TestHealthAndMetrics(t *testing.T) {
	a := newApp(t)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/health", "", nil).Code)

	w := a.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthoringFlow(t *testing.T) {
	a := newApp(t)
	tok := a.register("ann@example.com")

	c := a.course(tok, "Go Basics")
	assert.Equal(t, "go-basics", c.Slug)
	mods := a.modules(tok, c.ID, "Setup", "Syntax")
	require.Len(t, mods, 2)
	assert.Equal(t, 0, mods[0].Order)
	assert.Equal(t, 1, mods[1].Order)
	m := mods[0]

	base := fmt.Sprintf("/content/%d", m.ID)
	w := a.do(http.MethodPost, base+"/text", tok, gin.H{"title": "Welcome", "content": "<p>hi</p>"})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, fmt.Sprintf("/modules/%d/content", m.ID), w.Header().Get("Location"))

	w = a.do(http.MethodPost, base+"/video", tok, gin.H{"title": "Talk", "url": "https://www.youtube.com/watch?v=xyz"})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())

	w = a.upload(base+"/file", tok, "Slides", "slides.pdf", "application/pdf", "%PDF")
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, 1, a.blobs.Len())

	w = a.do(http.MethodGet, fmt.Sprintf("/modules/%d/content", m.ID), tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[listing](t, w)
	require.Len(t, list.Contents, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{list.Contents[0].Order, list.Contents[1].Order, list.Contents[2].Order})
	assert.Equal(t, "<p>hi</p>", list.Contents[0].Item.HTML)
	assert.Equal(t, "https://www.youtube.com/embed/xyz", list.Contents[1].Item.EmbedURL)
	assert.True(t, strings.HasPrefix(list.Contents[2].Item.URL, "http://blobs.test/files/"))

	// edit form of the text payload
	textID := list.Contents[0].Item.ID
	w = a.do(http.MethodGet, fmt.Sprintf("%s/text/%d", base, textID), tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fields":["title","content"]`)

	w = a.do(http.MethodPost, fmt.Sprintf("%s/text/%d", base, textID), tok, gin.H{"title": "Welcome!", "content": "updated"})
	require.Equal(t, http.StatusSeeOther, w.Code)

	// reorder: file first, then text, then video
	ids := []uint{list.Contents[0].ID, list.Contents[1].ID, list.Contents[2].ID}
	w = a.do(http.MethodPost, "/content/reorder", tok, map[string]int{
		fmt.Sprint(ids[0]): 1, fmt.Sprint(ids[1]): 2, fmt.Sprint(ids[2]): 0, "bogus": 4,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"saved":"OK","applied":3}`, w.Body.String())

	list = decode[listing](t, a.do(http.MethodGet, fmt.Sprintf("/modules/%d/content", m.ID), tok, nil))
	assert.Equal(t, []uint{ids[2], ids[0], ids[1]}, []uint{list.Contents[0].ID, list.Contents[1].ID, list.Contents[2].ID})
	assert.Equal(t, "Welcome!", list.Contents[1].Item.Title)

	// delete the file entry: payload, reference and blob go
	w = a.do(http.MethodPost, fmt.Sprintf("/content/%d/delete", ids[2]), tok, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Zero(t, a.blobs.Len())
	list = decode[listing](t, a.do(http.MethodGet, fmt.Sprintf("/modules/%d/content", m.ID), tok, nil))
	assert.Len(t, list.Contents, 2)

	// module reorder
	w = a.do(http.MethodPost, "/modules/reorder", tok, map[string]int{fmt.Sprint(mods[0].ID): 1, fmt.Sprint(mods[1].ID): 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"saved":"OK","applied":2}`, w.Body.String())

	// public catalog
	w = a.do(http.MethodGet, "/catalog/go-basics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[courses.Course](t, w)
	require.Len(t, detail.Modules, 2)
	assert.Equal(t, "Syntax", detail.Modules[0].Title)

	// deleting the course removes everything under it
	w = a.do(http.MethodDelete, fmt.Sprintf("/courses/%d", c.ID), tok, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	var n int64
	require.NoError(t, database.DB.Model(&content.Text{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestContentErrors(t *testing.T) {
	a := newApp(t)
	ann := a.register("ann@example.com")
	bob := a.register("bob@example.com")

	m := a.modules(ann, a.course(ann, "Go").ID, "One")[0]
	base := fmt.Sprintf("/content/%d", m.ID)

	w := a.do(http.MethodPost, base+"/user", ann, gin.H{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPost, base+"/video", ann, gin.H{"title": "x", "url": "nope"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"errors":{"url":"Enter a valid URL."}}`, w.Body.String())

	w = a.do(http.MethodPost, base+"/text", bob, gin.H{"title": "x", "content": "y"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = a.do(http.MethodGet, fmt.Sprintf("/modules/%d/content", m.ID), bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = a.do(http.MethodPost, "/content/abc/text", ann, gin.H{"title": "x", "content": "y"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.upload(base+"/file", ann, "Big", "big.bin", "application/octet-stream", strings.Repeat("x", 2048))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w = a.upload(base+"/image", ann, "Pic", "pic.txt", "text/plain", "x")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Zero(t, a.blobs.Len())

	w = a.do(http.MethodPost, base+"/text", ann, gin.H{"title": "Mine", "content": "y"})
	require.Equal(t, http.StatusSeeOther, w.Code)
	var entry courses.Content
	require.NoError(t, database.DB.First(&entry).Error)

	w = a.do(http.MethodPost, fmt.Sprintf("/content/%d/delete", entry.ID), bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodPost, "/content/reorder", bob, map[string]int{fmt.Sprint(entry.ID): 5})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"saved":"OK","applied":0}`, w.Body.String())

	w = a.do(http.MethodPost, "/content/reorder", ann, map[string]int{fmt.Sprint(entry.ID): -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.NoError(t, database.DB.First(&entry, entry.ID).Error)
	assert.Equal(t, 0, entry.Order)
}

func TestCourseManagement(t *testing.T) {
	a := newApp(t)
	ann := a.register("ann@example.com")
	bob := a.register("bob@example.com")

	c := a.course(ann, "Go")
	dup := a.course(ann, "Go")
	assert.Equal(t, "go-2", dup.Slug)

	w := a.do(http.MethodPost, "/courses", ann, gin.H{"subject_id": 999, "title": "Lost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPut, fmt.Sprintf("/courses/%d", c.ID), ann, gin.H{"title": "Go in Depth", "overview": "all of it"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Go in Depth", decode[courses.Course](t, w).Title)

	w = a.do(http.MethodPut, fmt.Sprintf("/courses/%d", c.ID), bob, gin.H{"title": "Stolen"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = a.do(http.MethodDelete, fmt.Sprintf("/courses/%d", c.ID), bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodPost, fmt.Sprintf("/courses/%d/modules", c.ID), ann, gin.H{"modules": []gin.H{{"description": "no title"}}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"errors":{"0":{"title":"This field is required."}}}`, w.Body.String())

	w = a.do(http.MethodGet, "/courses/mine", ann, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]courses.Course](t, w), 2)
	w = a.do(http.MethodGet, "/courses/mine", bob, nil)
	assert.Empty(t, decode[[]courses.Course](t, w))

	w = a.do(http.MethodGet, "/catalog?subject=programming", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]courses.CourseSummary](t, w), 2)
	w = a.do(http.MethodGet, "/subjects", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode[[]courses.SubjectSummary](t, w)[0].TotalCourses)

	w = a.do(http.MethodGet, "/me", ann, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"courses":2`)
}

func TestAuthAndRoles(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodPost, "/register", "", gin.H{"name": "Ann", "email": "ann@example.com", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	a.register("ann@example.com")
	w = a.do(http.MethodPost, "/register", "", gin.H{"name": "Ann", "email": "ann@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodPost, "/login", "", gin.H{"email": "ann@example.com", "password": "wrong1234"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = a.do(http.MethodPost, "/login", "", gin.H{"email": "ann@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	tok := decode[map[string]string](t, w)["token"]

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/courses/mine", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/admin/stats", tok, nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, a.do(http.MethodGet, "/auth/google", "", nil).Code)

	require.NoError(t, database.DB.Model(&users.User{}).Where("email = ?", "ann@example.com").Update("role", "admin").Error)
	w = a.do(http.MethodPost, "/login", "", gin.H{"email": "ann@example.com", "password": "secret123"})
	admin := decode[map[string]string](t, w)["token"]

	w = a.do(http.MethodGet, "/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_users":1`)
	assert.Contains(t, w.Body.String(), `"dangling_contents":0`)
}
