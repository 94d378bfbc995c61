package models

type FinalDecision string

const (
	DecisionApproved FinalDecision = "APPROVED"
	DecisionRejected FinalDecision = "REJECTED"
)

const (
	Agree = 1
	Deny  = 0
)

// Council member labels, in output order.
const (
	Melchior  = "MELCHIOR-1"
	Balthasar = "BALTHASAR-2"
	Casper    = "CASPER-3"
)

var MemberOrder = []string{Melchior, Balthasar, Casper}

// Input message

type DecisionRequest struct {
	Content string `json:"content" jsonschema:"text the council should agree or deny"`
}

// One provider's output
type Verdict struct {
	Decision    int    `json:"decision"`
	Explanation string `json:"explanation"`
}

type NamedVerdict struct {
	Model string `json:"model"`
	Verdict
}

// Final output returned to the caller
type DecisionResult struct {
	FinalDecision FinalDecision  `json:"finalDecision"`
	Results       []NamedVerdict `json:"results"`
}

func (v Verdict) Agrees() bool {
	return v.Decision == Agree
}
