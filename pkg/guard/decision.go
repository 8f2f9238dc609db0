package guard

import (
	"encoding/json"
	"net/http"
)

// Outcome is the result class of a guard evaluation.
type Outcome string

const (
	// OutcomeAllow lets the request proceed to the next guard.
	OutcomeAllow Outcome = "allow"

	// OutcomeDeny is a typed refusal the client may display or branch
	// on.
	OutcomeDeny Outcome = "deny"

	// OutcomeNotFound hides the existence of a resource outside the
	// actor's scope.
	OutcomeNotFound Outcome = "not_found"
)

// Code is the stable denial code clients branch on. These values are a
// wire contract; renaming one is a breaking change.
type Code string

const (
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeSuperAdminRequired Code = "SUPER_ADMIN_REQUIRED"
	CodePaymentRequired    Code = "PAYMENT_REQUIRED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeCountryDisabled    Code = "COUNTRY_DISABLED"
	CodeStaleWrite         Code = "STALE_WRITE"
)

// Decision is the typed outcome of a guard. Guards return decisions,
// never raise errors across the guard boundary; anything a guard cannot
// classify becomes the most restrictive applicable decision.
type Decision struct {
	Outcome Outcome `json:"outcome"`
	Code    Code    `json:"code,omitempty"`
	Message string  `json:"message,omitempty"`

	// UpgradeURL is set on PAYMENT_REQUIRED denials so the client can
	// link straight to the upgrade flow without a tier-to-URL lookup
	// table of its own.
	UpgradeURL string `json:"upgrade_url,omitempty"`
}

// Allow returns a decision that lets the request proceed.
func Allow() Decision {
	return Decision{Outcome: OutcomeAllow}
}

// Deny returns a typed refusal.
func Deny(code Code, message string) Decision {
	return Decision{Outcome: OutcomeDeny, Code: code, Message: message}
}

// NotFound returns a scope-violation decision that hides resource
// existence. The message matches a genuine missing resource on purpose.
func NotFound() Decision {
	return Decision{Outcome: OutcomeNotFound, Code: CodeNotFound, Message: "Not found"}
}

// PaymentRequired returns a tier/add-on denial carrying the upgrade
// target.
func PaymentRequired(message, upgradeURL string) Decision {
	return Decision{Outcome: OutcomeDeny, Code: CodePaymentRequired, Message: message, UpgradeURL: upgradeURL}
}

// Allowed reports whether the request may proceed.
func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllow
}

// HTTPStatus maps the decision to its response status code.
func (d Decision) HTTPStatus() int {
	switch {
	case d.Outcome == OutcomeAllow:
		return http.StatusOK
	case d.Outcome == OutcomeNotFound:
		return http.StatusNotFound
	case d.Code == CodeUnauthorized:
		return http.StatusUnauthorized
	case d.Code == CodePaymentRequired:
		return http.StatusPaymentRequired
	case d.Code == CodeStaleWrite:
		return http.StatusConflict
	default:
		return http.StatusForbidden
	}
}

// denialBody is the fixed response shape for every denial. All clients
// parse exactly this: a message and a code, plus the optional upgrade
// link.
type denialBody struct {
	Message    string `json:"message"`
	Code       Code   `json:"code"`
	UpgradeURL string `json:"upgrade_url,omitempty"`
}

// WriteDecision writes the denial payload and status for a non-allow
// decision. Allow decisions write nothing; the handler proceeds.
func WriteDecision(w http.ResponseWriter, d Decision) {
	if d.Allowed() {
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(d.HTTPStatus())
	_ = json.NewEncoder(w).Encode(denialBody{
		Message:    d.Message,
		Code:       d.Code,
		UpgradeURL: d.UpgradeURL,
	})
}
