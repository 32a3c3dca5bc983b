package domain

// Intent is the per-utterance topic classification.
// The set is closed; anything unrecognised maps to IntentUnknown.
type Intent string

const (
	IntentStartupVisa     Intent = "startup_visa"
	IntentStudentVisa     Intent = "student_visa"
	IntentVisitorVisa     Intent = "visitor_visa"
	IntentFreelancerVisa  Intent = "freelancer_visa"
	IntentResidencePermit Intent = "residence_permit"
	IntentUnknown         Intent = "unknown"
)

// RetrievedContext is the outcome of a retrieval attempt. Degraded paths
// (no index, no matches, embedding failure) are routine, so they are
// represented as values rather than errors: Grounded is false and Text
// carries a fallback string that still embeds the user's question.
type RetrievedContext struct {
	Text      string `json:"text"`
	Grounded  bool   `json:"grounded"`
	Positions []int  `json:"positions,omitempty"` // snapshot positions of the matched passages
}
