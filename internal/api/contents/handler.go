package contents

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"educa-app/database"
	"educa-app/internal/app/metrics"
	"educa-app/internal/domain/authoring"
	"educa-app/internal/domain/content"
	"educa-app/internal/domain/courses"
	"educa-app/internal/domain/ordering"

	"github.com/gin-gonic/gin"
)

// Handler serves content authoring for the module owner.
type Handler struct {
	Service *authoring.Service
	// MaxUpload caps the size of a file part; zero means no cap.
	MaxUpload int64
}

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// Malformed ids can never name an owned row, so they answer 404 like a foreign one.
func uintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return uint(n), true
}

func optionalItemID(c *gin.Context) (*uint, bool) {
	if c.Param("item_id") == "" {
		return nil, true
	}
	id, ok := uintParam(c, "item_id")
	if !ok {
		return nil, false
	}
	return &id, true
}

func contentListURL(moduleID uint) string {
	return fmt.Sprintf("/modules/%d/content", moduleID)
}

func writeError(c *gin.Context, err error) {
	var ve *authoring.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": ve.Fields})
	case errors.Is(err, authoring.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, content.ErrInvalidType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content type"})
	default:
		slog.Error("content request failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process content", "details": err.Error()})
	}
}

// GET /content/:id/:kind[/:item_id]
func (h *Handler) GetForm(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	moduleID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := optionalItemID(c)
	if !ok {
		return
	}

	form, err := h.Service.Load(c.Request.Context(), userID, moduleID, c.Param("kind"), itemID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{
		"kind":      form.Kind,
		"module_id": form.ModuleID,
		"fields":    fieldNames(form.Fields, form.Upload),
	}
	if form.Item != nil {
		view, err := h.Service.Registry.Render(c.Request.Context(), form.Item)
		if err != nil {
			writeError(c, err)
			return
		}
		resp["item"] = view
	}
	c.JSON(http.StatusOK, resp)
}

func fieldNames(fields []string, upload bool) []string {
	out := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		switch f {
		case "Title":
			out = append(out, "title")
		case "Content":
			out = append(out, "content")
		case "URL":
			out = append(out, "url")
		}
	}
	if upload {
		out = append(out, "file")
	}
	return out
}

// POST /content/:id/:kind[/:item_id]
// JSON for text and video, multipart with a "file" part for file and image.
func (h *Handler) SaveForm(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	moduleID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := optionalItemID(c)
	if !ok {
		return
	}

	in, closer, ok := h.bindInput(c)
	if !ok {
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	res, err := h.Service.Save(c.Request.Context(), userID, moduleID, c.Param("kind"), itemID, in)
	if err != nil {
		writeError(c, err)
		return
	}

	metrics.ContentSaved.WithLabelValues(string(res.Kind), string(res.State)).Inc()
	c.Redirect(http.StatusSeeOther, contentListURL(res.ModuleID))
}

func (h *Handler) bindInput(c *gin.Context) (content.Input, multipart.File, bool) {
	var in content.Input

	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		if err := c.ShouldBind(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return in, nil, false
		}
		return in, nil, true
	}

	if h.MaxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUpload+(1<<20))
	}
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return in, nil, false
	}

	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil, true
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload", "details": err.Error()})
		return in, nil, false
	}
	if h.MaxUpload > 0 && fh.Size > h.MaxUpload {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": map[string]string{
			"file": fmt.Sprintf("Ensure this file has at most %d bytes.", h.MaxUpload),
		}})
		return in, nil, false
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload", "details": err.Error()})
		return in, nil, false
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	in.Upload = &content.Upload{Filename: fh.Filename, ContentType: ct, Size: fh.Size, Body: f}
	return in, f, true
}

// POST /content/:id/delete
func (h *Handler) Delete(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	contentID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	d, err := h.Service.DeleteContent(c.Request.Context(), userID, contentID)
	if err != nil {
		writeError(c, err)
		return
	}
	if d.Dangling {
		metrics.DanglingReferences.Inc()
	}
	c.Redirect(http.StatusSeeOther, contentListURL(d.ModuleID))
}

// GET /modules/:id/content
func (h *Handler) List(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	moduleID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	list, err := h.Service.ListContents(c.Request.Context(), userID, moduleID)
	if err != nil {
		writeError(c, err)
		return
	}
	if list.Dangling > 0 {
		metrics.DanglingReferences.Add(float64(list.Dangling))
	}
	c.JSON(http.StatusOK, list)
}

// POST /content/reorder
// Body: {"<content id>": <order>, ...}
func Reorder(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req map[string]int
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must map ids to integer orders", "details": err.Error()})
		return
	}
	batch, err := ordering.ParseBatch(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applied, err := courses.ReorderContents(database.DB.WithContext(c.Request.Context()), userID, batch)
	if err != nil {
		if errors.Is(err, ordering.ErrNegativeOrder) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder content", "details": err.Error()})
		return
	}

	metrics.ReorderApplied.WithLabelValues("contents").Add(float64(applied))
	metrics.ReorderSkipped.WithLabelValues("contents").Add(float64(int64(len(req)) - applied))
	c.JSON(http.StatusOK, gin.H{"saved": "OK", "applied": applied})
}
