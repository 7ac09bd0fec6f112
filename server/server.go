/*
Package server exposes a fitted classifier over HTTP: it predicts classes and
class probabilities for JSON rows, renders the tree as text, JSON or DOT, and
serves the prometheus metrics of the process.
*/
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pbanos/entropic"
	"github.com/pbanos/entropic/dataset"
	"github.com/pbanos/entropic/tree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server serves the predictions of a classifier
type Server struct {
	classifier *entropic.Classifier
	logger     *zap.Logger
	gatherer   prometheus.Gatherer
}

type rowsRequest struct {
	Rows []map[string]interface{} `json:"rows" binding:"required,min=1"`
}

/*
New takes a classifier, a logger and the prometheus.Gatherer to serve metrics
from and returns a Server. A nil gatherer leaves the metrics endpoint out.
*/
func New(c *entropic.Classifier, logger *zap.Logger, gatherer prometheus.Gatherer) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{c, logger, gatherer}
}

// Handler returns the http.Handler with the routes of the server
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.POST("/predict", s.handlePredict)
	r.POST("/predict_proba", s.handlePredictProba)
	r.GET("/tree", s.handleTree)
	r.GET("/graph", s.handleGraph)
	if s.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}
	return r
}

/*
Run takes a context and an address and serves the Handler on the address
until the context is done, when it shuts the server down gracefully.
*/
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	s.logger.Info("serving", zap.String("addr", addr))
	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

func (s *Server) handlePredict(c *gin.Context) {
	samples, ok := s.bindRows(c)
	if !ok {
		return
	}
	predictions, err := s.classifier.PredictSamples(c.Request.Context(), samples)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": predictions})
}

func (s *Server) handlePredictProba(c *gin.Context) {
	samples, ok := s.bindRows(c)
	if !ok {
		return
	}
	probabilities, err := s.classifier.PredictProbaSamples(c.Request.Context(), samples)
	if err != nil {
		s.fail(c, err)
		return
	}
	classes, err := s.classifier.Classes()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": classes, "probabilities": probabilities})
}

func (s *Server) handleTree(c *gin.Context) {
	rendered, err := s.classifier.Render(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.String(http.StatusOK, rendered+"\n")
}

func (s *Server) handleGraph(c *gin.Context) {
	g, err := s.classifier.Graph(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	if c.Query("format") == "dot" {
		c.Header("Content-Type", "text/vnd.graphviz; charset=utf-8")
		c.Status(http.StatusOK)
		if err = tree.WriteDOT(c.Writer, g); err != nil {
			s.logger.Warn("writing graph", zap.Error(err))
		}
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) bindRows(c *gin.Context) ([]dataset.Sample, bool) {
	var req rowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	samples := make([]dataset.Sample, len(req.Rows))
	for i, r := range req.Rows {
		samples[i] = dataset.NewSample(r)
	}
	return samples, true
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusUnprocessableEntity
	if errors.Is(err, entropic.ErrNotFitted) {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("elapsed", time.Since(start)))
}
