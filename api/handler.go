// Package api - HTTP handlers for the pricing endpoints
// Handlers wrap the calculators - they contain NO pricing logic.
// All logic is delegated to core packages.
package api

import (
	"net/http"

	"go.uber.org/zap"

	"msp-pricing/core/export"
	"msp-pricing/core/output"
	"msp-pricing/core/pricing"
	"msp-pricing/core/quote"
	"msp-pricing/core/savings"
	"msp-pricing/core/types"
	"msp-pricing/internal/errors"
	"msp-pricing/internal/logging"
)

// handleCatalog handles GET /catalog
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, output.NewCatalogView(s.catalog), http.StatusOK)
}

// calculator is the shape shared by the three pricing models
type calculator func(req *PricingRequest) (*pricing.Result, error)

// handlePricing decodes a PricingRequest and runs calc on it
func (s *Server) handlePricing(calc calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PricingRequest
		if err := s.decode(w, r, &req); err != nil {
			s.fail(w, r, err)
			return
		}

		res, err := calc(&req)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		s.logger.Debug("priced",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("model", res.Model.String()),
			zap.Int("users", req.Users),
			logging.Money("monthly", res.MonthlyTotal),
		)
		s.writeJSON(w, res, http.StatusOK)
	}
}

// handleAdhoc handles POST /pricing/adhoc
func (s *Server) handleAdhoc(w http.ResponseWriter, r *http.Request) {
	s.handlePricing(func(req *PricingRequest) (*pricing.Result, error) {
		return pricing.Adhoc(s.catalog, req.input())
	})(w, r)
}

// handlePrepaid handles POST /pricing/prepaid
func (s *Server) handlePrepaid(w http.ResponseWriter, r *http.Request) {
	s.handlePricing(func(req *PricingRequest) (*pricing.Result, error) {
		in, err := s.withBundle(req)
		if err != nil {
			return nil, err
		}
		return pricing.Prepaid(s.catalog, in)
	})(w, r)
}

// handleMSP handles POST /pricing/msp
func (s *Server) handleMSP(w http.ResponseWriter, r *http.Request) {
	s.handlePricing(func(req *PricingRequest) (*pricing.Result, error) {
		return pricing.MSP(s.catalog, req.input())
	})(w, r)
}

// withBundle resolves an omitted bundle index to the recommended bundle
func (s *Server) withBundle(req *PricingRequest) (pricing.Input, error) {
	in := req.input()
	if req.BundleIndex != nil {
		return in, nil
	}
	idx, err := pricing.RecommendBundle(s.catalog, req.Users)
	if err != nil {
		return in, err
	}
	in.BundleIndex = idx
	return in, nil
}

// handleCompare handles POST /pricing/compare
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req PricingRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	in, err := s.withBundle(&req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	cmp, err := pricing.Compare(s.catalog, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, cmp, http.StatusOK)
}

// handleSavings handles POST /savings
func (s *Server) handleSavings(w http.ResponseWriter, r *http.Request) {
	var req SavingsRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, savings.Calculate(req.CandidateMonthly, req.BaselineMonthly), http.StatusOK)
}

// handleQuote handles POST /quotes and returns the PDF hand-off document
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	lang, err := s.language(r, req.Language)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	selections := req.Services
	switch {
	case req.Plan != nil && len(req.Services) > 0:
		s.fail(w, r, errors.InvalidInput("send either services or plan, not both"))
		return
	case req.Plan != nil:
		selections, err = quote.FromPlan(s.catalog, *req.Plan)
		if err != nil {
			s.fail(w, r, err)
			return
		}
	}

	q, err := quote.Generate(s.catalog, selections, req.IsYearly)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	doc, err := export.NewDocument(q, req.IsYearly, lang)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.logger.Info("quote generated",
		zap.String("request_id", RequestID(r.Context())),
		zap.String("reference", doc.Reference),
		zap.Int("lines", len(q.LineItems)),
		logging.Money("total", q.Total),
	)
	s.writeJSON(w, doc, http.StatusCreated)
}

// language resolves the explicit language or negotiates one from Accept-Language
func (s *Server) language(r *http.Request, explicit string) (types.Language, error) {
	if explicit != "" {
		return output.ParseLanguage(explicit)
	}
	return output.NegotiateLanguage(r.Header.Get("Accept-Language")), nil
}
