package domain

import "time"

// LogoFamily is the expected output shape of a provider. Re-tinting applies
// different rules to each.
type LogoFamily string

const (
	// LogoFamilyText is a root <svg> holding only <text> elements.
	LogoFamilyText LogoFamily = "text"
	// LogoFamilyVector is a root <svg> drawn with path geometry and no text.
	LogoFamilyVector LogoFamily = "vector"
)

// SlotRole says whether a slot fills the bundle's primary position or a variant position.
type SlotRole string

const (
	SlotRolePrimary SlotRole = "primary"
	SlotRoleVariant SlotRole = "variant"
)

// Provider names.
const (
	ProviderAnthropic = "anthropic"
	ProviderMistral   = "mistral"
	ProviderOpenAI    = "openai"
)

// DefaultViewport is the side length of the square logo canvas.
const DefaultViewport = 512

// LogoSlot is the outcome of one provider call. SVG is nil when the call
// failed; Error then carries the reason.
type LogoSlot struct {
	Name       string     `json:"name"`
	Role       SlotRole   `json:"role"`
	Family     LogoFamily `json:"family"`
	Provider   string     `json:"provider"`
	Variant    int        `json:"variant"`
	SVG        *string    `json:"svg"`
	Error      string     `json:"error,omitempty"`
	DurationMs int64      `json:"durationMs"`
}

// Populated reports whether the slot holds a document.
func (s LogoSlot) Populated() bool { return s.SVG != nil }

// LogoBundle is the result of one complete fan-out round, in slot-plan order.
// It is never built from a partially settled fan-out.
type LogoBundle struct {
	GenerationID string     `json:"generationId"`
	Slots        []LogoSlot `json:"slots"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Primary returns the first primary slot's document, or nil.
func (b LogoBundle) Primary() *string {
	for _, s := range b.Slots {
		if s.Role == SlotRolePrimary {
			return s.SVG
		}
	}
	return nil
}

// Variants returns one entry per variant slot, nil entries kept in position.
func (b LogoBundle) Variants() []*string {
	out := make([]*string, 0, len(b.Slots))
	for _, s := range b.Slots {
		if s.Role == SlotRoleVariant {
			out = append(out, s.SVG)
		}
	}
	return out
}

// Populated counts slots holding a document.
func (b LogoBundle) Populated() int {
	n := 0
	for _, s := range b.Slots {
		if s.Populated() {
			n++
		}
	}
	return n
}

// Slot looks a slot up by name.
func (b LogoBundle) Slot(name string) (LogoSlot, bool) {
	for _, s := range b.Slots {
		if s.Name == name {
			return s, true
		}
	}
	return LogoSlot{}, false
}

// FirstPopulated returns the first slot with a document, primary first.
func (b LogoBundle) FirstPopulated() (LogoSlot, bool) {
	for _, s := range b.Slots {
		if s.Populated() {
			return s, true
		}
	}
	return LogoSlot{}, false
}
