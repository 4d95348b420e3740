package workflow

// Step identifies one stage of the new-screenplay wizard.
type Step string

const (
	StepDetails    Step = "details"
	StepUpload     Step = "upload"
	StepProcessing Step = "processing"
	StepReview     Step = "review"
	StepComplete   Step = "complete"
)

var stepOrder = []Step{StepDetails, StepUpload, StepProcessing, StepReview, StepComplete}

// Index returns the zero-based position of the step in the wizard, or -1 for
// an unknown step.
func (s Step) Index() int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// Next returns the following step; the last step returns itself.
func (s Step) Next() Step {
	i := s.Index()
	if i < 0 || i >= len(stepOrder)-1 {
		return s
	}
	return stepOrder[i+1]
}

// Previous returns the preceding step; the first step returns itself.
func (s Step) Previous() Step {
	i := s.Index()
	if i <= 0 {
		return s
	}
	return stepOrder[i-1]
}

// Steps returns the wizard steps in order.
func Steps() []Step {
	out := make([]Step, len(stepOrder))
	copy(out, stepOrder)
	return out
}
