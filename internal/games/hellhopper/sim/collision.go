package sim

import "github.com/vovakirdan/hellhopper/internal/core"

// Contact is a character-platform collision: the platform hit and the
// character position (bottom-left corner) at the moment of contact.
type Contact struct {
	Platform *Platform
	At       core.Vec2
}

// Sweep tests the character path c1→c2 against the given platforms in
// order and returns the first hit. Nothing is reported unless the path
// descends.
func Sweep(platforms []*Platform, c1, c2 core.Vec2) (Contact, bool) {
	if c2.Y >= c1.Y {
		return Contact{}, false
	}
	for _, p := range platforms {
		if at, ok := p.IsCollision(c1, c2); ok {
			return Contact{Platform: p, At: at}, true
		}
	}
	return Contact{}, false
}

// sweepSections runs Sweep over the active sections, lowest first.
func sweepSections(sections []*RiseSection, c1, c2 core.Vec2) (Contact, bool) {
	if c2.Y >= c1.Y {
		return Contact{}, false
	}
	for _, s := range sections {
		if !s.Active() {
			continue
		}
		if c, ok := Sweep(s.platforms, c1, c2); ok {
			return c, true
		}
	}
	return Contact{}, false
}

// carriedContact runs the reciprocal test: a platform moving up through a
// character resting at pos.
func carriedContact(sections []*RiseSection, pos core.Vec2) (Contact, bool) {
	for _, s := range sections {
		if !s.Active() {
			continue
		}
		for _, p := range s.platforms {
			if at, ok := p.contactFromBelow(pos); ok {
				return Contact{Platform: p, At: at}, true
			}
		}
	}
	return Contact{}, false
}
