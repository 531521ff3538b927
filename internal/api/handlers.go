package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"explorerScope/internal/explorer"
	"explorerScope/internal/model"
	"explorerScope/internal/search"
)

// Explorer resolves queries and listings for the handlers.
type Explorer interface {
	Search(ctx context.Context, raw string) (explorer.Result, error)
	SearchAs(ctx context.Context, raw string, kind search.Kind) (explorer.Result, error)
	Blocks(ctx context.Context, page int) (model.Page[model.BlockSummary], error)
	IbcClients(ctx context.Context, page int) (model.Page[model.IbcClientSummary], error)
}

// HealthCheck reports whether the data source is reachable.
type HealthCheck func(ctx context.Context) error

// SearchEndpoint classifies q and returns the tagged record.
func SearchEndpoint(svc Explorer) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.Search(c.Request.Context(), c.Query("q"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// LookupEndpoint accepts only identifiers of kind and returns the bare record.
func LookupEndpoint(svc Explorer, kind search.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.SearchAs(c.Request.Context(), c.Query("q"), kind)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, result.Record)
	}
}

func BlocksEndpoint(svc Explorer) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := parsePage(c.Query("page"))
		if err != nil {
			writeError(c, err)
			return
		}
		result, err := svc.Blocks(c.Request.Context(), page)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func IbcClientsEndpoint(svc Explorer) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := parsePage(c.Query("page"))
		if err != nil {
			writeError(c, err)
			return
		}
		result, err := svc.IbcClients(c.Request.Context(), page)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func HealthEndpoint(check HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				loggerFrom(c).Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// parsePage reads a zero-based page number; a missing value is page 0.
func parsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0, fmt.Errorf("%w: %q", explorer.ErrInvalidPage, raw)
	}
	return page, nil
}

func writeError(c *gin.Context, err error) {
	status, body := classifyError(err)
	logger := loggerFrom(c)
	switch {
	case errors.Is(err, search.ErrNormalizationFailed):
		logger.Error("search grammar defect", zap.String("query", c.Query("q")), zap.Error(err))
	case status >= http.StatusInternalServerError:
		logger.Error("request could not be served", zap.String("code", body.Code), zap.Error(err))
	default:
		logger.Debug("request rejected", zap.String("code", body.Code), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, body)
}
