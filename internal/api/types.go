package api

import (
	"github.com/MJE43/roulette-odds-go/internal/areas"
	"github.com/MJE43/roulette-odds-go/internal/engine"
	"github.com/MJE43/roulette-odds-go/internal/wheel"
)

// EngineError represents a structured error response with context
type EngineError struct {
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp,omitempty"`
}

// Error implements the error interface
func (e EngineError) Error() string {
	return e.Message
}

// Error types with proper categorization
const (
	// Input validation errors
	ErrTypeValidation   = "validation_error"
	ErrTypeInvalidStake = "invalid_stake"

	// Catalog errors
	ErrTypeUnknownArea  = "unknown_area"
	ErrTypeUnknownWheel = "unknown_wheel"
	ErrTypeEmptyWheel   = "empty_wheel"

	// System errors
	ErrTypeTimeout  = "timeout"
	ErrTypeInternal = "internal_error"
)

// ErrorCategory represents error categories for monitoring
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryCatalog    ErrorCategory = "catalog"
	CategorySystem     ErrorCategory = "system"
	CategoryTimeout    ErrorCategory = "timeout"
)

// GetErrorCategory returns the category for an error type
func GetErrorCategory(errType string) ErrorCategory {
	switch errType {
	case ErrTypeValidation, ErrTypeInvalidStake:
		return CategoryValidation
	case ErrTypeUnknownArea, ErrTypeUnknownWheel:
		return CategoryCatalog
	case ErrTypeTimeout:
		return CategoryTimeout
	default:
		return CategorySystem
	}
}

// VersionInfo contains engine version information
type VersionInfo struct {
	EngineVersion string `json:"engine_version"`
	GitCommit     string `json:"git_commit,omitempty"`
	BuildTime     string `json:"build_time,omitempty"`
}

// WheelInfo describes one supported wheel
type WheelInfo struct {
	Type      wheel.Type `json:"type"`
	SlotCount int        `json:"slotCount"`
	AreaCount int        `json:"areaCount"`
	Default   bool       `json:"default"`
}

// WheelsResponse lists the supported wheels
type WheelsResponse struct {
	Wheels        []WheelInfo `json:"wheels"`
	EngineVersion string      `json:"engine_version"`
}

// AreasResponse is the bet area catalog of one wheel
type AreasResponse struct {
	Wheel         wheel.Type      `json:"wheel"`
	Slots         []wheel.Slot    `json:"slots"`
	Areas         []areas.BetArea `json:"areas"`
	EngineVersion string          `json:"engine_version"`
}

// BetRequest is one wager in a request body. A missing id is generated.
type BetRequest struct {
	ID     string  `json:"id,omitempty"`
	AreaID string  `json:"areaId" validate:"required"`
	Amount float64 `json:"amount"`
}

// EvaluateRequest evaluates a single bet
type EvaluateRequest struct {
	AreaID string  `json:"areaId" validate:"required"`
	Amount float64 `json:"amount"`
}

// BetsRequest carries the bets for aggregation and distribution
type BetsRequest struct {
	Bets []BetRequest `json:"bets" validate:"max=1000,dive"`
}

// EvaluateResponse wraps a single bet result
type EvaluateResponse struct {
	Wheel         wheel.Type    `json:"wheel"`
	Result        engine.Result `json:"result"`
	EngineVersion string        `json:"engine_version"`
}

// AggregateResponse wraps a combined result; Result is null when no bets were sent
type AggregateResponse struct {
	Wheel         wheel.Type     `json:"wheel"`
	Result        *engine.Result `json:"result"`
	EngineVersion string         `json:"engine_version"`
}

// DistributionResponse wraps the joint outcome distribution
type DistributionResponse struct {
	Wheel         wheel.Type           `json:"wheel"`
	Distribution  *engine.Distribution `json:"distribution"`
	EngineVersion string               `json:"engine_version"`
}
