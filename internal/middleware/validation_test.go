package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"scentstock/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func decodePerfumeInput(t *testing.T, payload map[string]interface{}) error {
	t.Helper()

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest("POST", "/api/perfumes", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	var input domain.PerfumeInput
	return DecodeAndValidate(req, &input)
}

// Required fields must be present for validation to pass
func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeName bool, includeBrand bool) bool {
			payload := map[string]interface{}{}
			if includeName {
				payload["name"] = "Aqua"
			}
			if includeBrand {
				payload["brand"] = "Marine"
			}

			err := decodePerfumeInput(t, payload)

			if includeName && includeBrand {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Violations are reported under the JSON field names, one per constraint
func TestFormatValidationErrorsUsesWireFieldNames(t *testing.T) {
	err := decodePerfumeInput(t, map[string]interface{}{
		"name":      "Aqua",
		"brand":     "Marine",
		"category":  "invalid-value",
		"gender":    "other",
		"image_url": "not a uri",
	})
	if err == nil {
		t.Fatal("Expected validation to fail")
	}

	formatted := FormatValidationErrors(err)
	fields := map[string]string{}
	for _, v := range formatted {
		fields[v.Field] = v.Message
	}

	for _, field := range []string{"category", "gender", "image_url"} {
		if _, ok := fields[field]; !ok {
			t.Errorf("Expected a violation entry for %q, got %+v", field, formatted)
		}
	}
	if fields["Category"] != "" {
		t.Error("Violations must use the JSON name, not the Go field name")
	}
}

func TestEnumMessagesListAllowedValues(t *testing.T) {
	err := decodePerfumeInput(t, map[string]interface{}{
		"name":     "Aqua",
		"brand":    "Marine",
		"category": "spicy",
	})
	if err == nil {
		t.Fatal("Expected validation to fail")
	}

	formatted := FormatValidationErrors(err)
	if len(formatted) != 1 {
		t.Fatalf("Expected a single violation, got %+v", formatted)
	}
	if want := "Value must be one of: niche, designer, natural, oriental, fresh, woody, floral, citrus, gourmand, other"; formatted[0].Message != want {
		t.Errorf("Expected %q, got %q", want, formatted[0].Message)
	}
}

func TestEmptyStringEnumsAreRejected(t *testing.T) {
	// An explicit "" is not the same as omitting the field: it must fail the
	// enum check rather than fall back to the defaults
	err := decodePerfumeInput(t, map[string]interface{}{
		"name":     "Aqua",
		"brand":    "Marine",
		"category": "",
		"gender":   "",
	})
	if err == nil {
		t.Fatal("Expected empty-string enums to be rejected")
	}

	fields := map[string]bool{}
	for _, v := range FormatValidationErrors(err) {
		fields[v.Field] = true
	}
	if !fields["category"] || !fields["gender"] {
		t.Errorf("Expected violations for category and gender, got %+v", fields)
	}
}

func TestDecimal2RejectsExcessFractionDigits(t *testing.T) {
	cases := []struct {
		price float64
		valid bool
	}{
		{49.99, true},
		{100, true},
		{0.01, true},
		{49.999, false},
		{0.001, false},
	}

	for _, tc := range cases {
		err := decodePerfumeInput(t, map[string]interface{}{
			"name":  "Aqua",
			"brand": "Marine",
			"price": tc.price,
		})
		if tc.valid && err != nil {
			t.Errorf("Expected price %v to pass, got %v", tc.price, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("Expected price %v to fail validation", tc.price)
		}
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	err := decodePerfumeInput(t, map[string]interface{}{
		"name":    "Aqua",
		"brand":   "Marine",
		"unknown": true,
	})
	if err == nil {
		t.Error("Expected unknown fields to be rejected")
	}
}

func TestDecodeRejectsNonNumericPrice(t *testing.T) {
	err := decodePerfumeInput(t, map[string]interface{}{
		"name":  "Aqua",
		"brand": "Marine",
		"price": "49.99",
	})
	if err == nil {
		t.Error("Expected a string price to be rejected without coercion")
	}
}
