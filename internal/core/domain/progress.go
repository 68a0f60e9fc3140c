package domain

import "time"

// Progress overlay constants.
const (
	// ProgressFloor is the value the bar jumps to when shown.
	ProgressFloor = 5

	// ProgressComplete is the value forced on hide.
	ProgressComplete = 100

	// ProgressSettleDelay is how long the completed bar stays visible.
	ProgressSettleDelay = 360 * time.Millisecond

	// DefaultProgressMessage is shown when Show is called without a message.
	DefaultProgressMessage = "Preparing your action plan…"
)

// ProgressState is the state of the request progress overlay.
// Current never decreases within one lifecycle.
type ProgressState struct {
	// Current is the bar value, 0–100.
	Current int

	// Message is the status line under the bar.
	Message string

	// Visible is true from Show until the settle delay after Hide.
	Visible bool

	// Busy is true from Show until Hide.
	Busy bool

	// Lifecycle increments on every Show.
	Lifecycle uint64
}

// Ratio returns Current as a fraction in [0,1].
func (p ProgressState) Ratio() float64 {
	return float64(p.Current) / 100
}

// Milestone is a fixed progress point tied to a request lifecycle stage.
type Milestone struct {
	Percent int
	Message string
}

// Request lifecycle milestones, in order.
var (
	MilestoneShow       = Milestone{ProgressFloor, "Analyzing your request…"}
	MilestoneAnalyzing  = Milestone{20, "Analyzing needs and filters…"}
	MilestoneRequest    = Milestone{45, "Retrieving matching resources…"}
	MilestoneHeaders    = Milestone{60, "Processing resource details…"}
	MilestoneParsed     = Milestone{82, "Summarizing resources…"}
	MilestoneNarrative  = Milestone{94, "Drafting action plan…"}
	CompletionSucceeded = "Action plan ready"
	CompletionFailed    = "Something went wrong"
)

// RequestStage identifies where an outbound query currently is.
type RequestStage int

const (
	// StageRequestStart is reported when the request is sent.
	StageRequestStart RequestStage = iota
	// StageResponseHeaders is reported when the response status arrives.
	StageResponseHeaders
	// StageBodyParsed is reported once the response body is decoded.
	StageBodyParsed
	// StageNarrativeRendered is reported once the action plan is resolved.
	StageNarrativeRendered
)

// Milestone returns the progress milestone for the stage.
func (s RequestStage) Milestone() Milestone {
	switch s {
	case StageRequestStart:
		return MilestoneRequest
	case StageResponseHeaders:
		return MilestoneHeaders
	case StageBodyParsed:
		return MilestoneParsed
	case StageNarrativeRendered:
		return MilestoneNarrative
	default:
		return MilestoneAnalyzing
	}
}

// String returns the string representation of the stage.
func (s RequestStage) String() string {
	switch s {
	case StageRequestStart:
		return "request_start"
	case StageResponseHeaders:
		return "response_headers"
	case StageBodyParsed:
		return "body_parsed"
	case StageNarrativeRendered:
		return "narrative_rendered"
	default:
		return "unknown"
	}
}

// StageFunc receives request lifecycle stages. It may be nil.
type StageFunc func(stage RequestStage)
