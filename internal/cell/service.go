// Package cell serves the redox engine to network front ends: it runs a
// simulation, attaches the diagram record, counts the outcome and announces
// it on the live board.
package cell

import (
	"context"

	"go.uber.org/zap"

	"galvani/internal/appearance"
	"galvani/internal/live"
	"galvani/internal/metrics"
	"galvani/internal/redox"
	"galvani/pkg/models"
)

// Outcome is what every front end returns for a resolved cell.
type Outcome struct {
	Catalog    string             `json:"catalog"`
	Resolution models.Resolution  `json:"resolution"`
	Summary    string             `json:"summary"`
	Potential  string             `json:"potential,omitempty"`
	Diagram    appearance.Diagram `json:"diagram"`
}

func NewOutcome(catalogName string, res models.Resolution) Outcome {
	return Outcome{
		Catalog:    catalogName,
		Resolution: res,
		Summary:    res.Summary(),
		Potential:  res.FormatPotential(),
		Diagram:    appearance.DiagramOf(res),
	}
}

// Service is shared by the HTTP, gRPC, MCP and notebook front ends. Hub and
// Metrics may be nil.
type Service struct {
	Engine  *redox.Engine
	Hub     *live.Hub
	Metrics *metrics.Collector
	Logger  *zap.Logger
}

func NewService(engine *redox.Engine, hub *live.Hub, m *metrics.Collector, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{Engine: engine, Hub: hub, Metrics: m, Logger: logger}
}

func (s *Service) CatalogName() string { return s.Engine.Catalog.Name() }

// Species lists the bound catalog in display order, optionally keeping only
// one role.
func (s *Service) Species(role models.Role) []models.Species {
	out := make([]models.Species, 0, s.Engine.Catalog.Len())
	for sp := range s.Engine.Catalog.All() {
		if role != "" && sp.Role != role {
			continue
		}
		out = append(out, sp)
	}
	return out
}

func (s *Service) Lookup(formula string) (models.Species, error) {
	return s.Engine.Lookup(formula)
}

// Simulate resolves first and second. source labels the front end in
// metrics and live events. Corrupt catalogs are logged at error level.
func (s *Service) Simulate(ctx context.Context, source, first, second string) (Outcome, error) {
	res, err := s.Engine.Simulate(first, second)
	s.Metrics.Observe(source, s.CatalogName(), res, err)
	if err != nil {
		if redox.IsFatal(err) {
			s.Logger.Error("catalog corruption",
				zap.String("source", source),
				zap.String("catalog", s.CatalogName()),
				zap.String("first", first),
				zap.String("second", second),
				zap.Error(err),
			)
		} else {
			s.Logger.Debug("selection rejected",
				zap.String("source", source),
				zap.String("kind", string(redox.KindOf(err))),
				zap.Error(err),
			)
		}
		return Outcome{}, err
	}

	if ctx.Err() == nil && s.Hub != nil {
		s.Hub.Broadcast(live.NewCellEvent(live.EventCellResolved, source, s.CatalogName(), res))
	}
	return NewOutcome(s.CatalogName(), res), nil
}
