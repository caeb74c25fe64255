package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/MJE43/roulette-odds-go/internal/areas"
	"github.com/MJE43/roulette-odds-go/internal/engine"
	"github.com/MJE43/roulette-odds-go/internal/lib/logger/sl"
	"github.com/MJE43/roulette-odds-go/internal/wheel"
)

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, GetVersionInfo())
}

// handleListWheels returns every supported wheel with its catalog size
func (s *Server) handleListWheels(w http.ResponseWriter, r *http.Request) {
	resp := WheelsResponse{EngineVersion: EngineVersion}
	for _, t := range wheel.Types() {
		c, err := areas.For(t)
		if err != nil {
			s.errorHandler.HandleError(w, r, err)
			return
		}
		resp.Wheels = append(resp.Wheels, WheelInfo{
			Type:      t,
			SlotCount: c.SlotCount(),
			AreaCount: c.Len(),
			Default:   t == s.cfg.DefaultWheel,
		})
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

// handleListAreas returns the catalog, optionally filtered by ?kind=
func (s *Server) handleListAreas(w http.ResponseWriter, r *http.Request) {
	c, ok := s.catalog(w, r)
	if !ok {
		return
	}

	list := c.Areas()
	if kind := r.URL.Query().Get("kind"); kind != "" {
		k, err := parseKind(kind)
		if err != nil {
			s.errorHandler.HandleValidationError(w, r, "kind", err.Error())
			return
		}
		list = c.ByKind(k)
	}

	s.writeJSON(w, r, http.StatusOK, AreasResponse{
		Wheel:         c.Wheel(),
		Slots:         c.Slots(),
		Areas:         list,
		EngineVersion: EngineVersion,
	})
}

func (s *Server) handleGetArea(w http.ResponseWriter, r *http.Request) {
	c, ok := s.catalog(w, r)
	if !ok {
		return
	}

	area, err := c.Lookup(chi.URLParam(r, "areaID"))
	if err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, area)
}

// handleSlotAreas lists every area a spin on {slot} pays
func (s *Server) handleSlotAreas(w http.ResponseWriter, r *http.Request) {
	c, ok := s.catalog(w, r)
	if !ok {
		return
	}

	slot, err := wheel.ParseSlot(chi.URLParam(r, "slot"))
	if err != nil {
		s.errorHandler.HandleValidationError(w, r, "slot", err.Error())
		return
	}

	var hits []areas.BetArea
	for _, a := range c.Areas() {
		if a.Covers(slot) {
			hits = append(hits, a)
		}
	}
	if len(hits) == 0 {
		s.errorHandler.HandleValidationError(w, r, "slot",
			fmt.Sprintf("slot %s is not on the %s wheel", slot, c.Wheel()))
		return
	}

	s.writeJSON(w, r, http.StatusOK, AreasResponse{
		Wheel:         c.Wheel(),
		Slots:         []wheel.Slot{slot},
		Areas:         hits,
		EngineVersion: EngineVersion,
	})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	c, ok := s.catalog(w, r)
	if !ok {
		return
	}

	var req EvaluateRequest
	if !s.decode(w, r, &req) {
		return
	}

	area, err := c.Lookup(req.AreaID)
	if err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}

	res, err := engine.Evaluate(engine.PlacedBet{AreaID: req.AreaID, Amount: req.Amount}, area, c.SlotCount())
	if err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, EvaluateResponse{
		Wheel:         c.Wheel(),
		Result:        res,
		EngineVersion: EngineVersion,
	})
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	c, bets, ok := s.decodeBets(w, r)
	if !ok {
		return
	}

	res, err := engine.Aggregate(bets, c, c.SlotCount())
	if err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, AggregateResponse{
		Wheel:         c.Wheel(),
		Result:        res,
		EngineVersion: EngineVersion,
	})
}

func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	c, bets, ok := s.decodeBets(w, r)
	if !ok {
		return
	}

	dist, err := engine.Distribute(bets, c, c.Slots())
	if err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, DistributionResponse{
		Wheel:         c.Wheel(),
		Distribution:  dist,
		EngineVersion: EngineVersion,
	})
}

// catalog resolves the {wheel} URL parameter, writing the error response on failure
func (s *Server) catalog(w http.ResponseWriter, r *http.Request) (*areas.Catalog, bool) {
	name := chi.URLParam(r, "wheel")

	t := s.cfg.DefaultWheel
	if name != "default" {
		var err error
		if t, err = wheel.ParseType(name); err != nil {
			s.errorHandler.HandleError(w, r, err)
			return nil, false
		}
	}

	c, err := areas.For(t)
	if err != nil {
		s.errorHandler.HandleError(w, r, err)
		return nil, false
	}
	return c, true
}

// decode reads and validates a JSON body into v
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		msg := "invalid JSON format"
		if errors.Is(err, io.EOF) {
			msg = "request body is empty"
		}
		s.logger.Warn("failed to decode request body", sl.Err(err))
		s.errorHandler.HandleValidationError(w, r, "body", msg)
		return false
	}

	if err := s.validate.Struct(v); err != nil {
		s.errorHandler.HandleStructErrors(w, r, err)
		return false
	}
	return true
}

// decodeBets reads a BetsRequest and turns it into engine bets, assigning missing ids
func (s *Server) decodeBets(w http.ResponseWriter, r *http.Request) (*areas.Catalog, []engine.PlacedBet, bool) {
	c, ok := s.catalog(w, r)
	if !ok {
		return nil, nil, false
	}

	var req BetsRequest
	if !s.decode(w, r, &req) {
		return nil, nil, false
	}

	bets := make([]engine.PlacedBet, 0, len(req.Bets))
	for _, b := range req.Bets {
		if b.ID != "" {
			bets = append(bets, engine.PlacedBet{ID: b.ID, AreaID: b.AreaID, Amount: b.Amount})
			continue
		}
		bet, err := engine.NewPlacedBet(b.AreaID, b.Amount)
		if err != nil {
			s.errorHandler.HandleError(w, r, fmt.Errorf("bet on %q: %w", b.AreaID, err))
			return nil, nil, false
		}
		bets = append(bets, bet)
	}
	return c, bets, true
}

func parseKind(s string) (areas.Kind, error) {
	switch k := areas.Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case areas.KindInside, areas.KindOutside, areas.KindSpecial:
		return k, nil
	default:
		return "", fmt.Errorf("unknown kind %q", s)
	}
}
