package server

import (
	"bytes"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spektr-org/orderlens/engine"
	"github.com/spektr-org/orderlens/export"
	"github.com/spektr-org/orderlens/params"
	"github.com/spektr-org/orderlens/render"
)

const buildSource = "http"

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"rows":   s.store.Len(),
		"source": s.store.Source(),
	})
}

func (s *Server) facetsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.facets)
}

func (s *Server) dashboard(c *gin.Context) {
	d, ok := s.build(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, export.NewDocument(d))
}

func (s *Server) metricCards(c *gin.Context) {
	d, ok := s.build(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, engine.BuildMetrics(d))
}

func (s *Server) table(c *gin.Context) {
	name := c.Param("name")
	if name != engine.TableRFM && !slices.Contains(engine.ChartNames, name) {
		s.fail(c, http.StatusNotFound, errors.New("unknown table: "+name))
		return
	}
	d, ok := s.build(c)
	if !ok {
		return
	}
	for _, t := range engine.BuildTables(d) {
		if t.Name == name {
			c.JSON(http.StatusOK, t)
			return
		}
	}
}

// chart renders a PNG, or the chart definition when format=json.
func (s *Server) chart(c *gin.Context) {
	name := c.Param("name")
	if !slices.Contains(engine.ChartNames, name) {
		s.metrics.ChartRendersTotal.WithLabelValues("unknown", "error").Inc()
		s.fail(c, http.StatusNotFound, engine.ErrUnknownChart)
		return
	}
	d, ok := s.build(c)
	if !ok {
		return
	}

	cfg, err := engine.BuildChart(d, name)
	if errors.Is(err, engine.ErrNoChartData) {
		s.metrics.ChartRendersTotal.WithLabelValues(name, "no_data").Inc()
		s.fail(c, http.StatusNotFound, engine.ErrNoChartData)
		return
	}
	if err != nil {
		s.metrics.ChartRendersTotal.WithLabelValues(name, "error").Inc()
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, cfg)
		return
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, cfg); err != nil {
		s.metrics.ChartRendersTotal.WithLabelValues(name, "error").Inc()
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	s.metrics.ChartRendersTotal.WithLabelValues(name, "success").Inc()
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// build parses the query filters and computes the dashboard. On failure the
// response is already written.
func (s *Server) build(c *gin.Context) (*engine.Dashboard, bool) {
	var req params.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return nil, false
	}
	filters, err := req.Filters(s.facets)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return nil, false
	}

	start := time.Now()
	d, err := engine.Execute(c.Request.Context(), s.store, filters, s.options...)
	rows := 0
	if d != nil {
		rows = d.FilteredRows
	}
	s.metrics.ObserveBuild(buildSource, rows, time.Since(start), err)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return nil, false
	}
	return d, true
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request.Context(), "request failed",
			"error", err, "request_id", RequestID(c))
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":      err.Error(),
		"request_id": RequestID(c),
	})
}
