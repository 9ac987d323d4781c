// Package server hosts the mock JSON document store the CLI talks to.
// The wire protocol is plain collection CRUD plus a query endpoint;
// the server knows nothing about rides or users as such.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cabcab/pkg/logger"
)

func NewRouter(doc *Document, log logger.ILogger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		db, err := doc.All()
		if err != nil {
			internalError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, db)
	})

	r.GET("/:collection", func(c *gin.Context) {
		items, ok, err := doc.List(c.Param("collection"))
		if err != nil {
			internalError(c, log, err)
			return
		}
		if !ok {
			collectionNotFound(c)
			return
		}
		c.JSON(http.StatusOK, items)
	})

	r.POST("/:collection", func(c *gin.Context) {
		var it item
		if err := c.ShouldBindJSON(&it); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}
		ok, err := doc.Insert(c.Param("collection"), it)
		if err != nil {
			internalError(c, log, err)
			return
		}
		if !ok {
			collectionNotFound(c)
			return
		}
		c.JSON(http.StatusCreated, it)
	})

	// The static "query" segment wins over /:collection/:id, so an item
	// whose id is literally "query" is unreachable by GET.
	r.GET("/:collection/query", func(c *gin.Context) {
		params := map[string]string{}
		for key, values := range c.Request.URL.Query() {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}
		items, ok, err := doc.Query(c.Param("collection"), params)
		if err != nil {
			internalError(c, log, err)
			return
		}
		if !ok {
			collectionNotFound(c)
			return
		}
		c.JSON(http.StatusOK, items)
	})

	r.GET("/:collection/:id", func(c *gin.Context) {
		it, ok, err := doc.Get(c.Param("collection"), c.Param("id"))
		if err != nil {
			internalError(c, log, err)
			return
		}
		if !ok {
			itemNotFound(c)
			return
		}
		c.JSON(http.StatusOK, it)
	})

	r.PUT("/:collection/:id", func(c *gin.Context) {
		var it item
		if err := c.ShouldBindJSON(&it); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}
		ok, err := doc.Replace(c.Param("collection"), c.Param("id"), it)
		if err != nil {
			internalError(c, log, err)
			return
		}
		if !ok {
			itemNotFound(c)
			return
		}
		c.JSON(http.StatusOK, it)
	})

	r.DELETE("/:collection/:id", func(c *gin.Context) {
		it, ok, err := doc.Delete(c.Param("collection"), c.Param("id"))
		if err != nil {
			internalError(c, log, err)
			return
		}
		if !ok {
			itemNotFound(c)
			return
		}
		c.JSON(http.StatusOK, it)
	})

	return r
}

// Run initializes the database file and serves until the process ends.
func Run(doc *Document, host string, port int, log logger.ILogger) error {
	if err := doc.Init(); err != nil {
		return err
	}
	addr := fmt.Sprintf("%s:%d", host, port)
	log.Info("JSON store listening", logger.String("addr", addr))
	return NewRouter(doc, log).Run(addr)
}

func internalError(c *gin.Context, log logger.ILogger, err error) {
	log.Error("store operation failed", logger.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func collectionNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": fmt.Sprintf("Collection '%s' not found", c.Param("collection")),
	})
}

func itemNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": fmt.Sprintf("Item with ID '%s' not found in '%s'", c.Param("id"), c.Param("collection")),
	})
}
