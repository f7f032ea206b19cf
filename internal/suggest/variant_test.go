package suggest

import (
	"errors"
	"fmt"
	"testing"
)

func TestBuildPath(t *testing.T) {
	tests := []struct {
		variant Variant
		guess   string
		want    string
	}{
		{VariantQordle, "abc de", "/qordle/suggest/abc de"},
		{VariantAPI, "abc de", "/suggest/abc,de"},
		{VariantAPI, "brain", "/suggest/brain"},
		{VariantAPI, "", "/suggest/"},
		{VariantAPI, "a  b", "/suggest/a,,b"},
		{VariantAPI, " lead", "/suggest/,lead"},
		{VariantQordle, "~r.a.i.n", "/qordle/suggest/~r.a.i.n"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%q", tt.variant.Name, tt.guess), func(t *testing.T) {
			if got := BuildPath(tt.variant, tt.guess); got != tt.want {
				t.Errorf("BuildPath(%q) = %q, want %q", tt.guess, got, tt.want)
			}
		})
	}
}

func TestLookupVariant(t *testing.T) {
	v, err := LookupVariant("API")
	if err != nil {
		t.Fatalf("LookupVariant(API) error: %v", err)
	}
	if v != VariantAPI {
		t.Errorf("LookupVariant(API) = %+v, want %+v", v, VariantAPI)
	}
	if _, err := LookupVariant("nope"); err == nil {
		t.Error("LookupVariant(nope) expected error")
	}
}

func TestVariantValidate(t *testing.T) {
	if err := VariantQordle.Validate(); err != nil {
		t.Errorf("VariantQordle.Validate() = %v", err)
	}
	if err := (Variant{Name: "x", RoutePrefix: "suggest/", Delimiter: ","}).Validate(); err == nil {
		t.Error("expected error for prefix without leading slash")
	}
	if err := (Variant{Name: "x", RoutePrefix: "/suggest/"}).Validate(); err == nil {
		t.Error("expected error for empty delimiter")
	}
}

func TestRender(t *testing.T) {
	if got := Render(Success([]string{"abcd", "abce"})); got != "abcd abce" {
		t.Errorf("Render(success) = %q, want %q", got, "abcd abce")
	}
	if got := Render(Success([]string{})); got != "" {
		t.Errorf("Render(empty) = %q, want empty", got)
	}
	if got := Render(Failure(errors.New("boom"))); got != ServerErrorText {
		t.Errorf("Render(failure) = %q, want %q", got, ServerErrorText)
	}
}

func TestFailureMatchesErrRequestFailed(t *testing.T) {
	cause := errors.New("connection refused")
	res := Failure(cause)
	if res.OK() {
		t.Fatal("Failure result reported OK")
	}
	if !errors.Is(res.Err, ErrRequestFailed) {
		t.Errorf("Failure error %v does not match ErrRequestFailed", res.Err)
	}
	if !errors.Is(res.Err, cause) {
		t.Errorf("Failure error %v does not wrap cause", res.Err)
	}
	if !errors.Is(Failure(nil).Err, ErrRequestFailed) {
		t.Error("Failure(nil) does not match ErrRequestFailed")
	}
}
