package conversion

import (
	"errors"
	"math"
	"testing"

	"github.com/matiasleandrokruk/unitai/internal/domain/units"
)

func TestBuildPrompt_LiteralForm(t *testing.T) {
	t.Parallel()

	cases := []struct {
		req  Request
		want string
	}{
		{Request{From: "kg", To: "lbs", Value: 5}, "Convert 5 kg to lbs."},
		{Request{From: "miles", To: "kilometers", Value: 2.5}, "Convert 2.5 miles to kilometers."},
		{Request{From: "Celsius", To: "Fahrenheit", Value: -40}, "Convert -40 Celsius to Fahrenheit."},
		{Request{From: "square feet", To: "acres", Value: 0}, "Convert 0 square feet to acres."},
		{Request{From: "liters", To: "gallons", Value: 0.1}, "Convert 0.1 liters to gallons."},
		{Request{From: "seconds", To: "years", Value: 1e9}, "Convert 1000000000 seconds to years."},
	}
	for _, tc := range cases {
		if got := BuildPrompt(tc.req); got != tc.want {
			t.Errorf("BuildPrompt(%+v) = %q, want %q", tc.req, got, tc.want)
		}
	}
}

func TestValidate_MissingUnits(t *testing.T) {
	t.Parallel()

	for _, req := range []Request{
		{From: "", To: "lbs", Value: 1},
		{From: "kg", To: "  ", Value: 1},
	} {
		_, err := Validate(req, units.Default())
		if !errors.Is(err, ErrMissingUnits) {
			t.Fatalf("Validate(%+v) = %v, want ErrMissingUnits", req, err)
		}
		if err.Error() != "Please select both units!" {
			t.Errorf("unexpected message %q", err.Error())
		}
		if !IsValidation(err) {
			t.Error("expected IsValidation to be true")
		}
	}
}

func TestValidate_NonFiniteValue(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Validate(Request{From: "kg", To: "lbs", Value: v}, nil)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("Validate(value=%v) = %v, want ErrInvalidValue", v, err)
		}
	}
}

func TestValidate_CategoryChecks(t *testing.T) {
	t.Parallel()

	catalog := units.Default()
	cases := map[string]struct {
		req  Request
		want error
	}{
		"unknown category": {Request{Category: "Currency", From: "USD", To: "EUR", Value: 1}, ErrUnknownCategory},
		"unit outside tab": {Request{Category: "Length", From: "meters", To: "liters", Value: 1}, ErrUnknownUnit},
		"negative weight":  {Request{Category: "Weight", From: "kilograms", To: "pounds", Value: -1}, ErrValueBelowMinimum},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Validate(tc.req, catalog)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestValidate_NormalizesAndAccepts(t *testing.T) {
	t.Parallel()

	got, err := Validate(Request{Category: " temperature ", From: " Celsius", To: "Kelvin ", Value: -273.15}, units.Default())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got.Category != "Temperature" || got.From != "Celsius" || got.To != "Kelvin" {
		t.Errorf("unexpected normalized request %+v", got)
	}
}

func TestValidate_UsesCatalogUnitSpelling(t *testing.T) {
	t.Parallel()

	got, err := Validate(Request{Category: "length", From: "METERS", To: "fEeT", Value: 5}, units.Default())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got.From != "meters" || got.To != "feet" {
		t.Errorf("units = %q, %q; want catalog spelling", got.From, got.To)
	}
	if prompt := BuildPrompt(got); prompt != "Convert 5 meters to feet." {
		t.Errorf("prompt = %q", prompt)
	}
}

func TestValidate_NoCategorySkipsCatalog(t *testing.T) {
	t.Parallel()

	if _, err := Validate(Request{From: "furlongs", To: "fortnights", Value: 3}, units.Default()); err != nil {
		t.Fatalf("expected free-form units without a category, got %v", err)
	}
}

func TestValidate_CategoryWithoutCatalog(t *testing.T) {
	t.Parallel()

	_, err := Validate(Request{Category: "Length", From: "m", To: "cm", Value: 1}, nil)
	if err == nil || IsValidation(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNewBanner(t *testing.T) {
	t.Parallel()

	t.Run("success is verbatim", func(t *testing.T) {
		b := NewBanner(&Outcome{Text: "  11.02 lbs\n"}, nil)
		if b.Kind != BannerSuccess || b.Message != "Converted Value:   11.02 lbs\n" {
			t.Errorf("unexpected banner %+v", b)
		}
	})

	t.Run("validation is a warning", func(t *testing.T) {
		_, err := Validate(Request{}, nil)
		b := NewBanner(nil, err)
		if b.Kind != BannerWarning || b.Message != "Please select both units!" {
			t.Errorf("unexpected banner %+v", b)
		}
	})

	t.Run("empty response is an error", func(t *testing.T) {
		b := NewBanner(nil, ErrEmptyResponse)
		if b.Kind != BannerError || b.Message != GenerationErrorMessage {
			t.Errorf("unexpected banner %+v", b)
		}
	})

	t.Run("nil outcome without error is never success", func(t *testing.T) {
		if b := NewBanner(nil, nil); b.Kind != BannerError {
			t.Errorf("expected error banner, got %+v", b)
		}
	})
}
