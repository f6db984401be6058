// Package confidence adjusts a raw match's confidence tier using contextual
// heuristics: file path conventions, placeholder shapes, and character-class
// variety. Rules are applied in a fixed order and bias toward under-claiming.
package confidence

import (
	"strings"
	"unicode"

	"github.com/ocelotsec/ocelot/internal/rules"
	"github.com/ocelotsec/ocelot/internal/types"
)

// Context carries the per-file facts the scorer consults.
type Context struct {
	Path       string
	IsTestPath bool // caller-asserted test/fixture path
}

// Result in addition to the score reports which heuristics fired; useful for
// debugging and rule self-tests.
type Result struct {
	Confidence types.Confidence
	Demoted    bool
	Promoted   bool
}

// Score computes the confidence for a single raw match. Heuristics run in a
// fixed, documented order:
//
//  1. test/fixture path (marker table or caller flag): demote one tier
//  2. placeholder keyword in the matched text: demote one tier
//  3. low character-class variety of the candidate token: demote one tier
//  4. any demotion caps the result at Medium
//  5. only if nothing demoted: a secret-family token with credential shape
//     promotes one tier, at most to the rule's ceiling
func Score(rule *rules.CompiledRule, matched string, ctx Context) Result {
	conf := rule.Confidence
	demoted := false

	if ctx.IsTestPath || isTestPath(ctx.Path) {
		conf = conf.Demote()
		demoted = true
	}
	if hasPlaceholder(matched) {
		conf = conf.Demote()
		demoted = true
	}
	token := candidateToken(matched)
	if token != "" && classVariety(token) < 2 {
		conf = conf.Demote()
		demoted = true
	}

	if demoted {
		return Result{Confidence: conf.Min(types.ConfidenceMedium), Demoted: true}
	}

	if rule.Category == secretCategory && credentialShaped(token) && conf < rule.ConfidenceCeiling {
		return Result{Confidence: conf.Promote(rule.ConfidenceCeiling), Promoted: true}
	}
	return Result{Confidence: conf}
}

func isTestPath(path string) bool {
	p := "/" + strings.ToLower(strings.ReplaceAll(path, "\\", "/"))
	for _, marker := range testPathMarkers {
		if strings.Contains(p, marker) {
			return true
		}
	}
	return false
}

func hasPlaceholder(matched string) bool {
	lower := strings.ToLower(matched)
	for _, kw := range placeholderKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// candidateToken extracts the value the heuristics judge: the first quoted
// string if present, otherwise the longest credential-alphabet run.
func candidateToken(matched string) string {
	for _, q := range []byte{'"', '\''} {
		start := strings.IndexByte(matched, q)
		if start < 0 {
			continue
		}
		end := strings.IndexByte(matched[start+1:], q)
		if end > 0 {
			return matched[start+1 : start+1+end]
		}
	}
	var best, cur string
	for i := 0; i <= len(matched); i++ {
		if i < len(matched) && isTokenByte(matched[i]) {
			cur += string(matched[i])
			continue
		}
		if len(cur) > len(best) {
			best = cur
		}
		cur = ""
	}
	return best
}

func isTokenByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_' || b == '-' || b == '+' || b == '/' || b == '=' || b == '.':
		return true
	}
	return false
}

// classVariety counts distinct character classes (lower, upper, digit,
// other) in the token. A single-class token like "aaaaaaaaaaaa" is almost
// never a live credential.
func classVariety(token string) int {
	var lower, upper, digit, other bool
	for _, r := range token {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			other = true
		}
	}
	n := 0
	for _, b := range []bool{lower, upper, digit, other} {
		if b {
			n++
		}
	}
	return n
}

// credentialShaped reports whether the token's length and character set are
// consistent with a real credential for the secret family.
func credentialShaped(token string) bool {
	if len(token) < minCredentialLen || len(token) > maxCredentialLen {
		return false
	}
	hasDigit := strings.ContainsFunc(token, unicode.IsDigit)
	return hasDigit && classVariety(token) >= 2
}
