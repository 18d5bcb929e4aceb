// Package level holds Hell Hopper level data: the parsed records for rise
// sections, platforms, movements, features and items, the YAML file format,
// validation, and the embedded level catalog.
//
// Type strings from files are mapped to enumerations here, so the
// simulation never compares strings while running.
package level

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vovakirdan/hellhopper/internal/core"
)

// Grid geometry. A platform position is quantized into steps (vertical) and
// offsets (horizontal) and converted to meters with these constants.
const (
	StepHeight  = 1.0
	OffsetWidth = 0.25

	GameAreaWidthOffsets = 48
	GameAreaWidth        = GameAreaWidthOffsets * OffsetWidth

	PlatformWidthOffsets = 8
	PlatformWidth        = PlatformWidthOffsets * OffsetWidth
	PlatformHeight       = 0.5 * StepHeight

	MaxPlatformOffset        = GameAreaWidthOffsets - PlatformWidthOffsets
	MaxPlatformDistanceSteps = 5
)

// Sentinel errors returned (wrapped) by parsing and validation.
var (
	ErrUnknownPlatformType = errors.New("unknown platform type")
	ErrUnknownMovement     = errors.New("unknown movement type")
	ErrUnknownFeature      = errors.New("unknown platform feature type")
	ErrUnknownItem         = errors.New("unknown item type")
	ErrInvalidLevel        = errors.New("invalid level")
	ErrLevelNotFound       = errors.New("level not found")
)

// Position converts grid coordinates to a world position in meters.
// step is relative to startStep.
func Position(startStep int, step, offset float64) core.Vec2 {
	return core.Vec2{
		X: offset * OffsetWidth,
		Y: (step + float64(startStep)) * StepHeight,
	}
}

// PlatformType tags the collision behavior of a platform.
type PlatformType int

const (
	PlatformNormal PlatformType = iota
	PlatformCrumble
)

func (t PlatformType) String() string {
	switch t {
	case PlatformNormal:
		return "normal"
	case PlatformCrumble:
		return "crumble"
	default:
		return "unknown"
	}
}

// ParsePlatformType maps a data string to a PlatformType. Empty means normal.
func ParsePlatformType(s string) (PlatformType, error) {
	switch s {
	case "", "normal":
		return PlatformNormal, nil
	case "crumble":
		return PlatformCrumble, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPlatformType, s)
}

// MovementType selects a platform movement strategy.
type MovementType int

const (
	MovementStationary MovementType = iota
	MovementCircular
	MovementLinear
)

func (t MovementType) String() string {
	switch t {
	case MovementStationary:
		return "stationary"
	case MovementCircular:
		return "circular"
	case MovementLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// ParseMovementType maps a data string to a MovementType. Empty means
// stationary.
func ParseMovementType(s string) (MovementType, error) {
	switch s {
	case "", "stationary", "none":
		return MovementStationary, nil
	case "circular":
		return MovementCircular, nil
	case "linear", "horizontal", "vertical":
		return MovementLinear, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMovement, s)
}

// FeatureType selects a platform feature.
type FeatureType int

const (
	FeatureJumpBoost FeatureType = iota
	FeatureFlame
	FeatureVisibleOnJump
	FeatureReposition
)

func (t FeatureType) String() string {
	switch t {
	case FeatureJumpBoost:
		return "jumpboost"
	case FeatureFlame:
		return "flame"
	case FeatureVisibleOnJump:
		return "visibleonjump"
	case FeatureReposition:
		return "reposition"
	default:
		return "unknown"
	}
}

// ParseFeatureType maps a data string to a FeatureType.
func ParseFeatureType(s string) (FeatureType, error) {
	switch s {
	case "jumpboost":
		return FeatureJumpBoost, nil
	case "flame":
		return FeatureFlame, nil
	case "visibleonjump":
		return FeatureVisibleOnJump, nil
	case "reposition":
		return FeatureReposition, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFeature, s)
}

// ItemType selects an item's pickup effect.
type ItemType int

const (
	ItemRuby ItemType = iota
	ItemShield
	ItemHighJump
)

func (t ItemType) String() string {
	switch t {
	case ItemRuby:
		return "ruby"
	case ItemShield:
		return "shield"
	case ItemHighJump:
		return "highjump"
	default:
		return "unknown"
	}
}

// ParseItemType maps a data string to an ItemType.
func ParseItemType(s string) (ItemType, error) {
	switch s {
	case "ruby":
		return ItemRuby, nil
	case "shield":
		return ItemShield, nil
	case "highjump":
		return ItemHighJump, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownItem, s)
}

// Properties are the named string parameters of a movement, feature or
// enemy record.
type Properties map[string]string

// String returns the named property or def when absent.
func (p Properties) String(name, def string) string {
	if v, ok := p[name]; ok {
		return v
	}
	return def
}

// Float parses the named property as a float64, returning def when absent.
func (p Properties) Float(name string, def float64) (float64, error) {
	v, ok := p[name]
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("property %s: %w", name, err)
	}
	return f, nil
}

// Level is a complete, validated level definition.
type Level struct {
	ID          string
	Name        string
	Description string
	Sections    []Section
	FilePath    string
}

// RiseSteps returns the total height of the level in steps.
func (l *Level) RiseSteps() int {
	n := 0
	for _, s := range l.Sections {
		n += s.Steps
	}
	return n
}

// RiseHeight returns the goal height in meters.
func (l *Level) RiseHeight() float64 {
	return float64(l.RiseSteps()) * StepHeight
}

// PlatformCount returns the number of platforms across all sections.
func (l *Level) PlatformCount() int {
	n := 0
	for _, s := range l.Sections {
		n += len(s.Platforms)
	}
	return n
}

// Section is one rise section: a vertical band of platforms.
type Section struct {
	ID        int
	StartStep int // Absolute step of the section bottom
	Steps     int
	Platforms []Platform
	Items     []Item
}

// Platform is a single platform record. Step is relative to the section.
type Platform struct {
	ID       int
	Type     PlatformType
	Step     int
	Offset   int
	Movement Movement
	Features []Feature
	Enemy    *Enemy
}

// Position returns the platform's initial world position.
func (p Platform) Position(startStep int) core.Vec2 {
	return Position(startStep, float64(p.Step), float64(p.Offset))
}

// Movement is a movement strategy record.
type Movement struct {
	Type       MovementType
	Properties Properties
}

// Feature is a platform feature record.
type Feature struct {
	Type       FeatureType
	Properties Properties
}

// Enemy is a hazard patrolling the top of its platform.
type Enemy struct {
	Properties Properties
}

// Item is a pickup resting on a platform. Offset is the horizontal grid
// offset from the platform's left edge.
type Item struct {
	Type     ItemType
	Platform int
	Offset   float64
	Value    string
}
