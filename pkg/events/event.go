package events

import "fmt"

// Kind identifies the raw button transition delivered by the OS hook.
type Kind uint8

const (
	KindButtonDown Kind = iota + 1
	KindButtonUp
)

func (k Kind) String() string {
	switch k {
	case KindButtonDown:
		return "button-down"
	case KindButtonUp:
		return "button-up"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Mask selects the kinds a hook is registered for.
type Mask uint8

// MaskOf builds a mask from kinds.
func MaskOf(kinds ...Kind) Mask {
	var m Mask
	for _, k := range kinds {
		if k == 0 || k > 8 {
			continue
		}
		m |= 1 << (k - 1)
	}
	return m
}

// Has reports whether k is selected.
func (m Mask) Has(k Kind) bool {
	if k == 0 || k > 8 {
		return false
	}
	return m&(1<<(k-1)) != 0
}

// Button ordinals as reported by the OS, zero-based.
const (
	ButtonBack    int64 = 3
	ButtonForward int64 = 4
)

// ButtonEvent is one raw auxiliary button transition. Payload is the OS
// event itself and is forwarded untouched on pass-through.
type ButtonEvent struct {
	Kind    Kind
	Button  int64
	Payload any
}

// Subtype is the gesture family carried by a synthetic event.
type Subtype int64

// SubtypeSwipe is the swipe gesture family.
const SubtypeSwipe Subtype = 0x10

// Phase is the gesture phase field.
type Phase int64

const (
	PhaseBegan Phase = 1
	PhaseEnded Phase = 4
)

// Direction is a swipe direction as a single bit of the OS swipe mask.
type Direction int64

const (
	DirectionNone  Direction = 0
	DirectionUp    Direction = 1
	DirectionDown  Direction = 2
	DirectionLeft  Direction = 4
	DirectionRight Direction = 8
)

func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int64(d))
	}
}

// Opposite swaps left and right. Every other value maps to itself.
func Opposite(d Direction) Direction {
	switch d {
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	default:
		return d
	}
}

// DirectionForButton maps the back button to LEFT and the forward button to
// RIGHT. Any other ordinal yields DirectionNone.
func DirectionForButton(button int64) Direction {
	switch button {
	case ButtonBack:
		return DirectionLeft
	case ButtonForward:
		return DirectionRight
	default:
		return DirectionNone
	}
}

// Gesture describes one synthetic gesture event.
type Gesture struct {
	Subtype   Subtype
	Phase     Phase
	Direction Direction
}

// BeginGesture opens a swipe sequence.
func BeginGesture() Gesture {
	return Gesture{Subtype: SubtypeSwipe, Phase: PhaseBegan}
}

// SwipeGesture completes a swipe sequence in direction d.
func SwipeGesture(d Direction) Gesture {
	return Gesture{Subtype: SubtypeSwipe, Phase: PhaseEnded, Direction: d}
}

// Application identifies the foreground application.
type Application struct {
	Identifier string
	Name       string
}

// DisplayName prefers the localized name and falls back to the identifier.
func (a Application) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Identifier
}
