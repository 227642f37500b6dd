package server

import (
	"net/http"
	"strconv"

	"maison-storefront/internal/catalog"

	"github.com/gin-gonic/gin"
)

func (s *Server) listProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("filters") == "true" {
		f, err := s.deps.Catalog.Filters(ctx)
		if err != nil {
			fail(c, err, nil)
			return
		}
		respond(c, http.StatusOK, f, nil)
		return
	}

	q := catalog.ProductQuery{
		Search:       c.Query("search"),
		Category:     c.Query("category"),
		CollectionID: c.Query("collectionId"),
		SortBy:       c.Query("sortBy"),
		SortOrder:    c.Query("sortOrder"),
		Page:         queryInt(c, "page"),
		Limit:        queryInt(c, "limit"),
	}
	if v, err := strconv.ParseBool(c.Query("inStock")); err == nil {
		q.InStock = &v
	}

	p, err := s.deps.Catalog.ListProducts(ctx, q)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, p, nil)
}

func (s *Server) getProduct(c *gin.Context) {
	p, err := s.deps.Catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, p, nil)
}

func (s *Server) listCollections(c *gin.Context) {
	p, err := s.deps.Catalog.ListCollections(c.Request.Context(), catalog.CollectionQuery{
		Search: c.Query("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, p, nil)
}

func (s *Server) getCollection(c *gin.Context) {
	col, err := s.deps.Catalog.GetCollection(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, col, nil)
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
