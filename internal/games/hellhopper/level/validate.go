package level

import (
	"fmt"
	"sort"
)

// Validate checks that a level is complete and playable: sections have a
// height, platforms sit inside their section and the game area, ids are
// unique, items reference existing platforms, and no vertical gap between
// consecutive platforms exceeds MaxPlatformDistanceSteps.
func Validate(l *Level) error {
	if l.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidLevel)
	}
	if len(l.Sections) == 0 {
		return fmt.Errorf("%w: %s has no sections", ErrInvalidLevel, l.ID)
	}

	ids := make(map[int]bool)
	var steps []int

	for _, sec := range l.Sections {
		if sec.Steps <= 0 {
			return fmt.Errorf("%w: section %d has %d steps", ErrInvalidLevel, sec.ID, sec.Steps)
		}

		owned := make(map[int]Platform, len(sec.Platforms))
		for _, p := range sec.Platforms {
			if ids[p.ID] {
				return fmt.Errorf("%w: duplicate platform id %d", ErrInvalidLevel, p.ID)
			}
			ids[p.ID] = true
			owned[p.ID] = p

			if p.Step < 0 || p.Step >= sec.Steps {
				return fmt.Errorf("%w: platform %d step %d outside section %d (0..%d)",
					ErrInvalidLevel, p.ID, p.Step, sec.ID, sec.Steps-1)
			}
			if p.Offset < 0 || p.Offset > MaxPlatformOffset {
				return fmt.Errorf("%w: platform %d offset %d outside 0..%d",
					ErrInvalidLevel, p.ID, p.Offset, MaxPlatformOffset)
			}
			steps = append(steps, sec.StartStep+p.Step)
		}

		for i, it := range sec.Items {
			if _, ok := owned[it.Platform]; !ok {
				return fmt.Errorf("%w: item %d in section %d references unknown platform %d",
					ErrInvalidLevel, i, sec.ID, it.Platform)
			}
			if it.Offset < 0 || it.Offset >= PlatformWidthOffsets {
				return fmt.Errorf("%w: item %d offset %v outside platform", ErrInvalidLevel, i, it.Offset)
			}
		}
	}

	if len(steps) == 0 {
		return fmt.Errorf("%w: %s has no platforms", ErrInvalidLevel, l.ID)
	}

	sort.Ints(steps)
	prev := 0 // the ground
	for _, s := range steps {
		if s-prev > MaxPlatformDistanceSteps {
			return fmt.Errorf("%w: gap of %d steps below step %d (max %d)",
				ErrInvalidLevel, s-prev, s, MaxPlatformDistanceSteps)
		}
		prev = s
	}
	if top := l.RiseSteps(); top-prev > MaxPlatformDistanceSteps {
		return fmt.Errorf("%w: gap of %d steps below the rise height (max %d)",
			ErrInvalidLevel, top-prev, MaxPlatformDistanceSteps)
	}

	return nil
}
