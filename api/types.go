// Package api - API types for the pricing endpoints
// These types define the request contract; responses reuse the core types.
// API is stateless, idempotent, and deterministic.
package api

import (
	"github.com/shopspring/decimal"

	"msp-pricing/core/pricing"
	"msp-pricing/core/quote"
	"msp-pricing/core/types"
)

// PricingRequest is the input to POST /pricing/*
type PricingRequest struct {
	// Users is the organisation's head count
	Users int `json:"users"`

	// MSPType and SLALevel are required by the msp and compare endpoints
	MSPType  types.SupportType `json:"mspType,omitempty"`
	SLALevel types.SLALevel    `json:"slaLevel,omitempty"`

	// BundleIndex selects a pre-paid bundle; omitted means the recommended one
	BundleIndex *int `json:"bundleIndex,omitempty"`
}

func (r *PricingRequest) input() pricing.Input {
	in := pricing.Input{Users: r.Users, SupportType: r.MSPType, SLALevel: r.SLALevel}
	if r.BundleIndex != nil {
		in.BundleIndex = *r.BundleIndex
	}
	return in
}

// SavingsRequest is the input to POST /savings
type SavingsRequest struct {
	CandidateMonthly decimal.Decimal `json:"candidateMonthly"`
	BaselineMonthly  decimal.Decimal `json:"baselineMonthly"`
}

// QuoteRequest is the input to POST /quotes.
// Either Services or Plan is set, not both.
type QuoteRequest struct {
	Services []quote.Selection `json:"services,omitempty"`
	Plan     *quote.Plan       `json:"plan,omitempty"`
	IsYearly bool              `json:"isYearly"`

	// Language defaults to the request's Accept-Language
	Language string `json:"language,omitempty"`
}

// ErrorBody is the JSON error envelope
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request
type ErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
	RequestID string                 `json:"requestId,omitempty"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	CatalogVersion string `json:"catalogVersion"`
	Time           string `json:"time"`
}

// VersionResponse is returned by GET /version
type VersionResponse struct {
	Version            string `json:"version"`
	Engine             string `json:"engine"`
	APIVersion         string `json:"api_version"`
	CatalogVersion     string `json:"catalog_version"`
	CatalogFingerprint string `json:"catalog_fingerprint"`
}
