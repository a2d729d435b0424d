package services

import "math"

// Decision is the resolved outcome of a committed swipe gesture. The wire
// values match the action strings the swipe endpoint accepts.
type Decision string

const (
	DecisionNone    Decision = ""
	DecisionLike    Decision = "liked"
	DecisionDislike Decision = "notliked"
)

// GesturePhase tracks where a card's drag gesture is in its lifecycle.
type GesturePhase string

const (
	PhaseIdle            GesturePhase = "idle"
	PhaseDragging        GesturePhase = "dragging"
	PhaseCommittingRight GesturePhase = "committingRight"
	PhaseCommittingLeft  GesturePhase = "committingLeft"
	PhaseSnappingBack    GesturePhase = "snappingBack"
	PhaseCommittedRight  GesturePhase = "committedRight"
	PhaseCommittedLeft   GesturePhase = "committedLeft"
)

// SwipeFeedback is the live label shown while dragging.
type SwipeFeedback string

const (
	FeedbackNone SwipeFeedback = ""
	FeedbackLike SwipeFeedback = "LIKE"
	FeedbackNope SwipeFeedback = "NOPE"
)

// Gesture geometry, in px-equivalent units. The feedback threshold and the
// commit threshold share one value: the label a drag shows is the decision
// it commits to.
const (
	gestureDeadzone = 10.0
	likeThreshold   = 50.0
	commitThreshold = likeThreshold

	maxCardRotation   = 10.0 // degrees, presentational only
	rotationHalfWidth = 180.0
)

// SwipeGesture is a single-pointer drag state machine, one instance per
// visible card. Exactly one decision is emitted per gesture; once a commit
// starts, further touch input is ignored until Reset.
type SwipeGesture struct {
	startX   float64
	offsetX  float64
	phase    GesturePhase
	tracking bool
}

func NewSwipeGesture() *SwipeGesture {
	return &SwipeGesture{phase: PhaseIdle}
}

// TouchStart records the pointer-down position. The phase stays Idle until
// movement leaves the deadzone.
func (g *SwipeGesture) TouchStart(x float64) {
	if g.resolved() {
		return
	}
	g.startX = x
	g.offsetX = 0
	g.tracking = true
	g.phase = PhaseIdle
}

// TouchMove updates the live offset and returns the directional feedback
// label for the current drag distance.
func (g *SwipeGesture) TouchMove(x float64) SwipeFeedback {
	if !g.tracking || g.resolved() {
		return FeedbackNone
	}

	dx := x - g.startX
	if g.phase == PhaseIdle {
		if math.Abs(dx) <= gestureDeadzone {
			return FeedbackNone
		}
		g.phase = PhaseDragging
	}
	g.offsetX = dx

	switch {
	case dx > likeThreshold:
		return FeedbackLike
	case dx < -likeThreshold:
		return FeedbackNope
	default:
		return FeedbackNone
	}
}

// TouchEnd resolves the gesture: past the commit threshold it reports the
// decision and starts the off-screen commit, otherwise it snaps back with
// no decision. At most one call returns a non-none decision.
func (g *SwipeGesture) TouchEnd(x float64) Decision {
	if !g.tracking || g.resolved() {
		return DecisionNone
	}
	g.tracking = false

	dx := x - g.startX
	g.offsetX = dx
	switch {
	case dx > commitThreshold:
		g.phase = PhaseCommittingRight
		return DecisionLike
	case dx < -commitThreshold:
		g.phase = PhaseCommittingLeft
		return DecisionDislike
	default:
		g.phase = PhaseSnappingBack
		return DecisionNone
	}
}

// Settle finishes the current animation phase: a commit becomes final and a
// snap-back returns the card to Idle at the origin.
func (g *SwipeGesture) Settle() {
	switch g.phase {
	case PhaseCommittingRight:
		g.phase = PhaseCommittedRight
	case PhaseCommittingLeft:
		g.phase = PhaseCommittedLeft
	case PhaseSnappingBack:
		g.phase = PhaseIdle
		g.offsetX = 0
	}
}

// Reset prepares the controller for the next card.
func (g *SwipeGesture) Reset() {
	*g = SwipeGesture{phase: PhaseIdle}
}

func (g *SwipeGesture) Phase() GesturePhase { return g.phase }

func (g *SwipeGesture) OffsetX() float64 { return g.offsetX }

// Rotation maps the drag offset onto the card's tilt, clamped to the fixed
// angular range. Purely presentational; never part of the decision.
func (g *SwipeGesture) Rotation() float64 {
	clamped := math.Max(-rotationHalfWidth, math.Min(rotationHalfWidth, g.offsetX))
	return clamped / rotationHalfWidth * maxCardRotation
}

func (g *SwipeGesture) resolved() bool {
	switch g.phase {
	case PhaseCommittingRight, PhaseCommittingLeft, PhaseCommittedRight, PhaseCommittedLeft:
		return true
	}
	return false
}
