// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package validation

import (
	"math"
	"strings"
	"testing"
)

type testRequest struct {
	Query  string  `json:"q" validate:"required,max=10"`
	TopN   int     `json:"n" validate:"gte=1,lte=50"`
	Amount float64 `json:"amount" validate:"finite,gte=0"`
	Mode   string  `validate:"omitempty,oneof=fast slow"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		req        testRequest
		wantFields []string
	}{
		{"valid", testRequest{Query: "mug", TopN: 5, Amount: 10}, nil},
		{"missing query", testRequest{TopN: 5}, []string{"q"}},
		{"query too long", testRequest{Query: "a very long query", TopN: 5}, []string{"q"}},
		{"top n out of range", testRequest{Query: "mug", TopN: 51}, []string{"n"}},
		{"nan amount", testRequest{Query: "mug", TopN: 1, Amount: math.NaN()}, []string{"amount"}},
		{"inf amount", testRequest{Query: "mug", TopN: 1, Amount: math.Inf(1)}, []string{"amount"}},
		{"negative amount", testRequest{Query: "mug", TopN: 1, Amount: -1}, []string{"amount"}},
		{"bad mode", testRequest{Query: "mug", TopN: 1, Mode: "medium"}, []string{"Mode"}},
		{"several", testRequest{TopN: 0, Amount: -2}, []string{"q", "n", "amount"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.req)
			if len(tt.wantFields) == 0 {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if len(verr.Errors()) != len(tt.wantFields) {
				t.Fatalf("got %d errors (%v), want %d", len(verr.Errors()), verr, len(tt.wantFields))
			}
			for i, e := range verr.Errors() {
				if e.Field() != tt.wantFields[i] {
					t.Errorf("error %d field = %q, want %q", i, e.Field(), tt.wantFields[i])
				}
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	single := ValidateStruct(&testRequest{Query: "mug", TopN: 0})
	if single == nil {
		t.Fatal("expected validation error")
	}
	apiErr := single.ToAPIError()
	if apiErr.Code != ErrorCode {
		t.Errorf("Code = %q, want %q", apiErr.Code, ErrorCode)
	}
	if apiErr.Message != "n must be greater than or equal to 1" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "n" {
		t.Errorf("Details = %v", apiErr.Details)
	}

	multi := ValidateStruct(&testRequest{TopN: 0}).ToAPIError()
	fields, ok := multi.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details[fields] = %#v", multi.Details["fields"])
	}
	if !strings.Contains(multi.Message, "q is required") {
		t.Errorf("Message = %q", multi.Message)
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}
