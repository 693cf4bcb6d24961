// Package server exposes generation over HTTP. A manifest is posted as
// YAML or JSON and the generated fragments come back as JSON.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/manifest"
	"github.com/toyz/testgen/internal/models"
	"github.com/toyz/testgen/internal/utils"
)

// Options configure the server
type Options struct {
	Overrides manifest.Overrides
	BodyLimit string // e.g. "1M"
}

// Server serves POST /generate and GET /healthz
type Server struct {
	echo        *echo.Echo
	diagnostics *utils.DiagnosticSystem
	overrides   manifest.Overrides
}

// New creates a server with its routes registered
func New(diagnostics *utils.DiagnosticSystem, opts Options) *Server {
	if diagnostics == nil {
		diagnostics = utils.NewQuietDiagnostics()
	}
	if opts.BodyLimit == "" {
		opts.BodyLimit = "1M"
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, diagnostics: diagnostics, overrides: opts.Overrides}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(opts.BodyLimit))
	e.Use(s.logRequests)

	e.GET("/healthz", s.health)
	e.POST("/generate", s.generate)
	return s
}

// Handler returns the server as an http.Handler
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.diagnostics.Info("Listening on %s", addr)
	if err := s.echo.Start(addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// logRequests writes one verbose line per request
func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		s.diagnostics.Verbose("[%s] %s %s - %d - %v",
			c.Response().Header().Get(echo.HeaderXRequestID),
			c.Request().Method,
			c.Request().URL.Path,
			c.Response().Status,
			time.Since(start).Round(time.Microsecond),
		)
		return nil
	}
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) generate(c echo.Context) error {
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return c.JSON(http.StatusBadRequest, newErrorResponse(requestID,
			errors.New(errors.SyntaxErrorCode, "request body is empty").
				WithSuggestion("post a manifest as YAML or JSON")))
	}

	m, err := manifest.Parse(body, "request body")
	if err != nil {
		return c.JSON(http.StatusBadRequest, newErrorResponse(requestID, err))
	}
	if err := m.Validate(); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, newErrorResponse(requestID, err))
	}

	cfg := s.overrides.Apply(m.GeneratorConfig())
	results, err := m.Run(c.Request().Context(), cfg, manifest.RunOptions{Logger: s.diagnostics})
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, newErrorResponse(requestID, err))
	}

	fragments := make([]fragmentResponse, len(results))
	for i, result := range results {
		fragments[i] = newFragmentResponse(result)
	}
	return c.JSON(http.StatusOK, fragments)
}

type fragmentResponse struct {
	Action       string        `json:"action"`
	Kind         string        `json:"kind,omitempty"`
	API          bool          `json:"api"`
	Body         string        `json:"body,omitempty"`
	Imports      []string      `json:"imports,omitempty"`
	DataProvider []rowResponse `json:"data_provider,omitempty"`
	Error        *problem      `json:"error,omitempty"`
}

type rowResponse struct {
	Description string `json:"description"`
	Field       string `json:"field"`
	Value       string `json:"value"`
}

type problem struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Location    string   `json:"location,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type errorResponse struct {
	RequestID string    `json:"request_id"`
	Problems  []problem `json:"problems"`
}

func newFragmentResponse(result manifest.Result) fragmentResponse {
	if result.Failed() {
		p := newProblem(result.Err)
		return fragmentResponse{Action: result.Job.Name(), Error: &p}
	}

	f := result.Fragment
	return fragmentResponse{
		Action:       f.Action,
		Kind:         f.Kind.String(),
		API:          f.API,
		Body:         f.Body(),
		Imports:      f.Imports,
		DataProvider: newRows(f.DataProvider),
	}
}

func newRows(rows []models.DataProviderRow) []rowResponse {
	out := make([]rowResponse, len(rows))
	for i, row := range rows {
		out[i] = rowResponse{Description: row.Description, Field: row.Field, Value: row.Value}
	}
	return out
}

func newErrorResponse(requestID string, err error) errorResponse {
	resp := errorResponse{RequestID: requestID}

	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) {
		for _, item := range multi.Errors {
			resp.Problems = append(resp.Problems, newProblem(item))
		}
		return resp
	}
	resp.Problems = []problem{newProblem(err)}
	return resp
}

func newProblem(err error) problem {
	var tgErr errors.TestgenError
	if !stderrors.As(err, &tgErr) {
		return problem{Code: errors.UnknownErrorCode.String(), Message: err.Error()}
	}

	p := problem{
		Code:        tgErr.ErrorCode().String(),
		Message:     tgErr.Error(),
		Suggestions: tgErr.Suggestions(),
	}
	if cause := tgErr.Unwrap(); cause != nil {
		p.Message += ": " + cause.Error()
	}
	if loc := tgErr.Location(); !loc.IsEmpty() {
		p.Location = loc.String()
	}
	return p
}
