package auth

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// ExemptionRule pairs a path pattern with the HTTP methods allowed to
// bypass authentication. Patterns are anchored regular expressions.
type ExemptionRule struct {
	Pattern string
	Methods []string
}

type compiledExemption struct {
	pattern *regexp.Regexp
	methods map[string]struct{}
}

// ExemptionList is an ordered, immutable set of exemption rules compiled
// once at startup and read-only thereafter.
type ExemptionList struct {
	rules []compiledExemption
}

// NewExemptionList compiles the given rules in order. A rule with an
// invalid pattern or an empty method set fails construction.
func NewExemptionList(rules []ExemptionRule) (*ExemptionList, error) {
	compiled := make([]compiledExemption, 0, len(rules))
	for _, rule := range rules {
		if len(rule.Methods) == 0 {
			return nil, fmt.Errorf("exemption rule %q has no methods", rule.Pattern)
		}
		re, err := regexp.Compile("^" + rule.Pattern + "$")
		if err != nil {
			return nil, fmt.Errorf("compile exemption pattern %q: %w", rule.Pattern, err)
		}
		methods := make(map[string]struct{}, len(rule.Methods))
		for _, m := range rule.Methods {
			methods[strings.ToUpper(m)] = struct{}{}
		}
		compiled = append(compiled, compiledExemption{pattern: re, methods: methods})
	}
	return &ExemptionList{rules: compiled}, nil
}

// IsExempt reports whether the (path, method) pair matches any rule. Rules
// are checked in configured order; the first pattern match with a matching
// method wins. No match simply yields false.
func (l *ExemptionList) IsExempt(path, method string) bool {
	method = strings.ToUpper(method)
	for _, rule := range l.rules {
		if _, ok := rule.methods[method]; !ok {
			continue
		}
		if rule.pattern.MatchString(path) {
			return true
		}
	}
	return false
}

// DefaultExemptions lists the public surface: read-only catalog browsing,
// static uploads, the session lifecycle endpoints, and health probes.
func DefaultExemptions() []ExemptionRule {
	return []ExemptionRule{
		{Pattern: `/api/v1/products(.*)`, Methods: []string{http.MethodGet, http.MethodOptions}},
		{Pattern: `/api/v1/categories(.*)`, Methods: []string{http.MethodGet, http.MethodOptions}},
		{Pattern: `/public/uploads(.*)`, Methods: []string{http.MethodGet, http.MethodOptions}},
		{Pattern: `/api/v1/users/(login|register|refresh|logout)`, Methods: []string{http.MethodPost}},
		{Pattern: `/health/(live|ready)`, Methods: []string{http.MethodGet}},
	}
}
