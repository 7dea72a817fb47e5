package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/endracle/priceninja/internal/metrics"
	"github.com/endracle/priceninja/internal/pricing"
)

const maxJSONBody = 1 << 20

type apiError struct {
	Error  string                   `json:"error"`
	Fields pricing.ValidationErrors `json:"fields,omitempty"`
}

func (s *server) handleAPICalculate(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInputs(w, r)
	if !ok {
		metrics.RecordCalculation(metrics.CalculationInvalid)
		return
	}

	result, err := pricing.Calculate(in)
	if err != nil {
		metrics.RecordCalculation(metrics.CalculationError)
		s.writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}

	metrics.RecordCalculation(metrics.CalculationOK)
	s.writeJSON(w, http.StatusOK, result)
}

func (s *server) handleAPISuggest(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInputs(w, r)
	if !ok {
		return
	}

	outcome := s.suggester.Request(r.Context(), in)
	status := http.StatusOK
	if !outcome.Success {
		status = http.StatusBadGateway
	}
	s.writeJSON(w, status, outcome)
}

// decodeInputs reads and validates a JSON body, writing the 400 response itself on failure.
func (s *server) decodeInputs(w http.ResponseWriter, r *http.Request) (pricing.Inputs, bool) {
	var in pricing.Inputs
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(&in); err != nil {
		s.writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body"})
		return in, false
	}

	if err := pricing.Validate(in); err != nil {
		resp := apiError{Error: err.Error()}
		var verrs pricing.ValidationErrors
		if errors.As(err, &verrs) {
			resp.Fields = verrs
		}
		s.writeJSON(w, http.StatusBadRequest, resp)
		return in, false
	}

	return in, true
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
