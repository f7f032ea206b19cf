// Package suggest requests word suggestions from a remote endpoint and
// renders them into an output region.
package suggest

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Variant describes how an endpoint expects a guess to be encoded in the path.
type Variant struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	RoutePrefix string `json:"routePrefix" yaml:"routePrefix" toml:"route_prefix"`
	Delimiter   string `json:"delimiter" yaml:"delimiter" toml:"delimiter"`
}

// Built-in variants.
var (
	VariantQordle = Variant{Name: "qordle", RoutePrefix: "/qordle/suggest/", Delimiter: " "}
	VariantAPI    = Variant{Name: "api", RoutePrefix: "/suggest/", Delimiter: ","}
)

var builtinVariants = []Variant{VariantQordle, VariantAPI}

// LookupVariant returns the built-in variant with the given name.
func LookupVariant(name string) (Variant, error) {
	v, ok := lo.Find(builtinVariants, func(v Variant) bool {
		return strings.EqualFold(v.Name, name)
	})
	if !ok {
		return Variant{}, fmt.Errorf("unknown variant %q (known: %s)", name, strings.Join(VariantNames(), ", "))
	}
	return v, nil
}

// VariantNames lists the built-in variant names.
func VariantNames() []string {
	return lo.Map(builtinVariants, func(v Variant, _ int) string { return v.Name })
}

// Validate reports whether the variant can build request paths.
func (v Variant) Validate() error {
	if !strings.HasPrefix(v.RoutePrefix, "/") {
		return fmt.Errorf("route prefix %q must start with /", v.RoutePrefix)
	}
	if v.Delimiter == "" {
		return fmt.Errorf("variant %q has an empty delimiter", v.Name)
	}
	return nil
}

// Tokens splits a guess on single spaces. Consecutive spaces produce empty tokens.
func Tokens(guess string) []string {
	return strings.Split(guess, " ")
}

// BuildPath returns the route prefix followed by the guess tokens joined by
// the variant's delimiter.
func BuildPath(v Variant, guess string) string {
	return v.RoutePrefix + strings.Join(Tokens(guess), v.Delimiter)
}
