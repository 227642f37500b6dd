package server

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"maison-storefront/internal/admin"
	"maison-storefront/internal/catalog"
	"maison-storefront/internal/notice"

	"github.com/gin-gonic/gin"
)

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

type bulkStatusRequest struct {
	IDs    []string `json:"ids" binding:"required"`
	Status string   `json:"status" binding:"required"`
}

// resource resolves the :resource path segment, answering 404 when unknown.
func resource(c *gin.Context, name string) (admin.Resource, bool) {
	r, err := admin.Lookup(name)
	if err != nil {
		fail(c, err, nil)
		return admin.Resource{}, false
	}
	return r, true
}

func (s *Server) adminList(c *gin.Context) {
	r, ok := resource(c, c.Param("resource"))
	if !ok {
		return
	}

	p, err := s.deps.Admin.List(c.Request.Context(), r, admin.ParseListQuery(r, c.Request.URL.Query()))
	if err != nil {
		fail(c, err, notice.Error("Could not load "+r.Name, "Please try again."))
		return
	}
	respond(c, http.StatusOK, p, nil)
}

func (s *Server) adminDelete(c *gin.Context) {
	r, ok := resource(c, c.Param("resource"))
	if !ok {
		return
	}

	q := admin.ParseListQuery(r, c.Request.URL.Query())
	p, err := s.deps.Admin.Delete(c.Request.Context(), r, c.Param("id"), q)
	if err != nil {
		fail(c, err, notice.Error("Delete failed", "The "+r.Label+" could not be deleted."))
		return
	}
	respond(c, http.StatusOK, p, notice.Success("Deleted", "The "+r.Label+" was deleted."))
}

func (s *Server) adminUpdateStatus(c *gin.Context) {
	r, ok := resource(c, c.Param("resource"))
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errInvalidBody, nil)
		return
	}

	row, err := s.deps.Admin.UpdateStatus(c.Request.Context(), r, c.Param("id"), req.Status)
	if err != nil {
		fail(c, err, notice.Error("Status not updated", "The "+r.Label+" keeps its previous status."))
		return
	}
	respond(c, http.StatusOK, row, notice.Success("Status updated", "The "+r.Label+" is now "+row.Status()+"."))
}

func (s *Server) adminBulkStatus(c *gin.Context) {
	r, ok := resource(c, "applications")
	if !ok {
		return
	}

	var req bulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errInvalidBody, nil)
		return
	}

	res, err := s.deps.Admin.BulkUpdateStatus(c.Request.Context(), r, req.IDs, req.Status, admin.ParseListQuery(r, c.Request.URL.Query()))
	if err != nil {
		fail(c, err, nil)
		return
	}

	status := http.StatusOK
	if res.Succeeded == 0 {
		status = http.StatusBadGateway
	}
	respond(c, status, res, res.Notice)
}

func (s *Server) adminUpdateProduct(c *gin.Context) {
	var in catalog.ProductUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, errInvalidBody, nil)
		return
	}

	p, err := s.deps.Catalog.UpdateProduct(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, p, notice.Success("Product saved", p.Name+" was updated."))
}

func (s *Server) adminUpdateCollection(c *gin.Context) {
	var in catalog.CollectionUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, errInvalidBody, nil)
		return
	}

	col, err := s.deps.Catalog.UpdateCollection(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, col, notice.Success("Collection saved", col.Name+" was updated."))
}

// adminUploadImages forwards the image0..imageN parts, in index order, to the
// backend upload endpoint.
func (s *Server) adminUploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		fail(c, errInvalidBody, nil)
		return
	}

	keys := make([]string, 0, len(form.File))
	for key := range form.File {
		if strings.HasPrefix(key, "image") {
			keys = append(keys, key)
		}
	}
	slices.SortFunc(keys, func(a, b string) int {
		return imageIndex(a) - imageIndex(b)
	})

	var files []catalog.ImageFile
	for _, key := range keys {
		files = append(files, catalog.FromFileHeaders(form.File[key])...)
	}

	urls, err := s.deps.Catalog.UploadProductImages(c.Request.Context(), files)
	if err != nil {
		fail(c, err, notice.Error("Upload failed", "Use jpg, png or webp images of at most 5MB."))
		return
	}
	respond(c, http.StatusCreated, gin.H{"urls": urls}, notice.Success("Images uploaded", strconv.Itoa(len(urls))+" image(s) uploaded."))
}

func imageIndex(key string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(key, "image"))
	if err != nil {
		return 1 << 30
	}
	return n
}
