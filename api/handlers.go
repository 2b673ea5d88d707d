package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body returned for client errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FactsRequest is the body for forward diagnosis: the observed symptoms.
type FactsRequest struct {
	Facts []string `json:"facts"`
}

// BackwardRequest is the body for backward diagnosis: the observed symptoms
// plus the fault hypothesis to prove.
type BackwardRequest struct {
	Facts []string `json:"facts"`
	Goal  string   `json:"goal"`
}

// handleRoot returns the service banner.
func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Symbolic Fault Diagnosis API"})
}

// handleHello is a trivial liveness endpoint for frontend smoke tests.
func (s *Server) handleHello(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Hello from the backend API!"})
}

// handleTest reports component status. The service holds no database; the
// knowledge base lives in process memory for the process lifetime.
func (s *Server) handleTest(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"backend":  "running",
		"database": "not used",
	})
}

// handleRules dumps both rule sets and the fault-prefix convention.
func (s *Server) handleRules(c *fiber.Ctx) error {
	return c.JSON(s.svc.Rules())
}

// handleDiagnoseForward runs forward chaining over the submitted facts and
// returns every derived fact plus the flagged fault hypotheses.
func (s *Server) handleDiagnoseForward(c *fiber.Ctx) error {
	var req FactsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	report := s.svc.Forward(req.Facts)

	s.logger.Debug("forward diagnosis",
		zap.String("id", report.ID),
		zap.Int("input_facts", len(report.InputFacts)),
		zap.Int("derived_facts", len(report.DerivedFacts)),
		zap.Int("faults", len(report.Faults)),
	)

	return c.JSON(report)
}

// handleDiagnoseBackward attempts to prove the submitted goal from the
// submitted facts and returns the proof tree.
func (s *Server) handleDiagnoseBackward(c *fiber.Ctx) error {
	var req BackwardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	if strings.TrimSpace(req.Goal) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "goal is required"})
	}

	report := s.svc.Backward(req.Facts, req.Goal)

	s.logger.Debug("backward diagnosis",
		zap.String("id", report.ID),
		zap.String("goal", report.Goal),
		zap.Bool("provable", report.Provable),
	)

	return c.JSON(report)
}
