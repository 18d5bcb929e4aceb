package sim

import (
	"fmt"
	"strconv"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/hellhopper/internal/core"
	"github.com/vovakirdan/hellhopper/internal/games/hellhopper/level"
)

// Item size in meters.
const (
	ItemWidth  = 0.5
	ItemHeight = 0.5
)

// ItemState is the lifecycle stage of an item.
type ItemState int

const (
	ItemExisting ItemState = iota
	ItemText               // picked up, label still shown
	ItemGone
)

// Item is a pickup that rides on its platform.
type Item struct {
	kind     level.ItemType
	value    float64
	platform *Platform
	offset   core.Vec2 // item initial position minus platform initial position

	state     ItemState
	textTimer float64
	textPos   core.Vec2
	shape     resolv.IShape
}

func itemDefaultValue(t level.ItemType) float64 {
	switch t {
	case level.ItemRuby:
		return 50
	case level.ItemShield:
		return 5
	case level.ItemHighJump:
		return 1.4
	}
	return 0
}

func parseItemValue(it level.Item) (float64, error) {
	if it.Value == "" {
		return itemDefaultValue(it.Type), nil
	}
	v, err := strconv.ParseFloat(it.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("item %v value: %w", it.Type, err)
	}
	return v, nil
}

func newItem(kind level.ItemType, value float64, p *Platform, gridOffset float64) *Item {
	initial := p.InitialPosition().Add(core.V(gridOffset*level.OffsetWidth, PlatformHeight))
	return &Item{
		kind:     kind,
		value:    value,
		platform: p,
		offset:   initial.Sub(p.InitialPosition()),
	}
}

// Kind returns the item type.
func (it *Item) Kind() level.ItemType { return it.kind }

// State returns the lifecycle stage.
func (it *Item) State() ItemState { return it.state }

// Position returns the item's bottom-left corner, following its platform.
func (it *Item) Position() core.Vec2 {
	if it.state != ItemExisting {
		return it.textPos
	}
	return it.platform.Position().Add(it.offset)
}

// Text returns the label shown after pickup.
func (it *Item) Text() string {
	switch it.kind {
	case level.ItemRuby:
		return fmt.Sprintf("+%d", int(it.value))
	case level.ItemShield:
		return "SHIELD"
	case level.ItemHighJump:
		return "HIGH JUMP"
	}
	return ""
}

func (it *Item) pickUp(textDuration float64) {
	it.textPos = it.Position()
	it.state = ItemText
	it.textTimer = textDuration
}

func (it *Item) update(dt float64) {
	if it.state == ItemExisting && it.platform.Gone() {
		it.state = ItemGone
		return
	}
	if it.state != ItemText {
		return
	}
	it.textTimer -= dt
	it.textPos.Y += 0.5 * dt
	if it.textTimer <= 0 {
		it.state = ItemGone
	}
}
