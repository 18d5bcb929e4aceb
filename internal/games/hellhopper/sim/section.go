package sim

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/hellhopper/internal/games/hellhopper/level"
)

type sectionState int

const (
	sectionPending sectionState = iota
	sectionActive
	sectionRetired
)

// platformSpec is a platform record with its strategies compiled.
type platformSpec struct {
	data       level.Platform
	movement   movementFactory
	features   []featureFactory
	enemySpeed float64
}

type itemSpec struct {
	data  level.Item
	value float64
}

// RiseSection is a vertical band of the level. Its platforms and items
// exist only while the section is active.
type RiseSection struct {
	id     int
	bottom float64
	top    float64
	start  int
	specs  []platformSpec
	items  []itemSpec
	state  sectionState

	platforms []*Platform
	pickups   []*Item

	repositionPending bool
	repositionKeep    int // id of the platform the character landed on
	revealed          bool
}

func compileSection(s level.Section, jumpSpeed float64) (*RiseSection, error) {
	rs := &RiseSection{
		id:     s.ID,
		start:  s.StartStep,
		bottom: float64(s.StartStep) * level.StepHeight,
		top:    float64(s.StartStep+s.Steps) * level.StepHeight,
	}
	for _, p := range s.Platforms {
		mv, err := compileMovement(p.Movement)
		if err != nil {
			return nil, fmt.Errorf("platform %d: %w", p.ID, err)
		}
		spec := platformSpec{data: p, movement: mv}
		for _, f := range p.Features {
			ff, err := compileFeature(f, jumpSpeed)
			if err != nil {
				return nil, fmt.Errorf("platform %d: %w", p.ID, err)
			}
			spec.features = append(spec.features, ff)
		}
		if p.Enemy != nil {
			speed, err := p.Enemy.Properties.Float("speed", 1)
			if err != nil {
				return nil, fmt.Errorf("platform %d enemy: %w", p.ID, err)
			}
			spec.enemySpeed = speed
		}
		rs.specs = append(rs.specs, spec)
	}
	for _, it := range s.Items {
		v, err := parseItemValue(it)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", s.ID, err)
		}
		rs.items = append(rs.items, itemSpec{data: it, value: v})
	}
	return rs, nil
}

// ID returns the section index.
func (s *RiseSection) ID() int { return s.id }

// Bounds returns the bottom and top of the section in meters.
func (s *RiseSection) Bounds() (bottom, top float64) { return s.bottom, s.top }

// Active reports whether the section's platforms exist.
func (s *RiseSection) Active() bool { return s.state == sectionActive }

// Platforms returns the live platforms in definition order.
func (s *RiseSection) Platforms() []*Platform { return s.platforms }

// Items returns the live items.
func (s *RiseSection) Items() []*Item { return s.pickups }

func (s *RiseSection) activate(index int, space *overlapSpace) {
	s.platforms = make([]*Platform, 0, len(s.specs))
	byID := make(map[int]*Platform, len(s.specs))

	for _, spec := range s.specs {
		initial := spec.data.Position(s.start)
		mv := spec.movement(initial)
		p := &Platform{
			id:       spec.data.ID,
			typ:      spec.data.Type,
			section:  index,
			initial:  initial,
			movement: mv,
			prev:     mv.Position(),
		}
		for _, ff := range spec.features {
			p.features = append(p.features, ff())
		}
		p.hidden = p.hasFeature(level.FeatureVisibleOnJump)
		if spec.data.Enemy != nil {
			p.enemy = newEnemy(p, spec.enemySpeed)
			p.enemy.shape = space.add(p.enemy, EnemyWidth, EnemyHeight, tagEnemy)
		}
		s.platforms = append(s.platforms, p)
		byID[p.id] = p
	}

	s.pickups = s.pickups[:0]
	for _, it := range s.items {
		p := byID[it.data.Platform]
		if p == nil {
			continue
		}
		item := newItem(it.data.Type, it.value, p, it.data.Offset)
		item.shape = space.add(item, ItemWidth, ItemHeight, tagItem)
		s.pickups = append(s.pickups, item)
	}
	s.state = sectionActive
}

func (s *RiseSection) retire(space *overlapSpace) {
	for _, p := range s.platforms {
		if p.enemy != nil {
			space.remove(p.enemy.shape)
		}
	}
	for _, it := range s.pickups {
		space.remove(it.shape)
	}
	s.platforms = nil
	s.pickups = nil
	s.state = sectionRetired
}

// TriggerReposition requests a shuffle of the section's reposition
// platforms, except the one with id keep. Requests within a tick collapse
// into one.
func (s *RiseSection) TriggerReposition(keep int) {
	s.repositionPending = true
	s.repositionKeep = keep
}

// TriggerVisibleOnJump reveals every hidden platform in the section. It
// returns false when they were already revealed.
func (s *RiseSection) TriggerVisibleOnJump() bool {
	if s.revealed {
		return false
	}
	s.revealed = true
	for _, p := range s.platforms {
		p.reveal()
	}
	return true
}

// applyReposition consumes a pending reposition request.
func (s *RiseSection) applyReposition(rng *rand.Rand) bool {
	if !s.repositionPending {
		return false
	}
	s.repositionPending = false
	moved := false
	for _, p := range s.platforms {
		if p.id == s.repositionKeep || !p.hasFeature(level.FeatureReposition) || !p.Collidable() {
			continue
		}
		offset := rng.Intn(level.MaxPlatformOffset + 1)
		p.moveTo(float64(offset) * level.OffsetWidth)
		moved = true
	}
	return moved
}

// syncShapes moves the overlap shapes to the current positions.
func (s *RiseSection) syncShapes() {
	for _, p := range s.platforms {
		if p.enemy != nil {
			place(p.enemy.shape, p.enemy.Position(), EnemyWidth, EnemyHeight)
		}
	}
	for _, it := range s.pickups {
		if it.state == ItemExisting {
			place(it.shape, it.Position(), ItemWidth, ItemHeight)
		}
	}
}
