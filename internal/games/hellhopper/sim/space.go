package sim

import (
	"math"
	"slices"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/hellhopper/internal/core"
)

// Overlap tests between the character and items or enemies run in a resolv
// space. The space works in pixels, 40 per meter, and is shifted so every
// world position maps to positive coordinates.
const (
	pixelsPerMeter = 40.0
	spaceCellSize  = 32
	spacePadding   = 4.0 // meters below y = 0
)

var (
	tagCharacter = resolv.NewTag("character")
	tagItem      = resolv.NewTag("item")
	tagEnemy     = resolv.NewTag("enemy")
)

type overlapSpace struct {
	space     *resolv.Space
	character resolv.IShape
	owners    map[resolv.IShape]any
}

func newOverlapSpace(worldHeight float64) *overlapSpace {
	w := int(math.Ceil(3 * GameAreaWidth * pixelsPerMeter))
	h := int(math.Ceil((worldHeight + 2*spacePadding) * pixelsPerMeter))

	s := &overlapSpace{
		space:  resolv.NewSpace(w, h, spaceCellSize, spaceCellSize),
		owners: make(map[resolv.IShape]any),
	}
	s.character = s.newShape(CollisionWidth, CharacterHeight, tagCharacter)
	s.space.Add(s.character)
	return s
}

func (s *overlapSpace) newShape(w, h float64, tag resolv.Tags) resolv.IShape {
	sh := resolv.NewRectangleTopLeft(0, 0, w*pixelsPerMeter, h*pixelsPerMeter)
	sh.Tags().Set(tag)
	return sh
}

// add registers a w×h meter shape owned by owner.
func (s *overlapSpace) add(owner any, w, h float64, tag resolv.Tags) resolv.IShape {
	sh := s.newShape(w, h, tag)
	s.space.Add(sh)
	s.owners[sh] = owner
	return sh
}

func (s *overlapSpace) remove(sh resolv.IShape) {
	if sh == nil {
		return
	}
	if _, ok := s.owners[sh]; !ok {
		return
	}
	s.space.Remove(sh)
	delete(s.owners, sh)
}

// place moves a shape so its bottom-left corner sits at the world position.
// Positions are wrapped into the game area first.
func place(sh resolv.IShape, bottomLeft core.Vec2, w, h float64) {
	placeShifted(sh, bottomLeft, w, h, 0)
}

// placeShifted places a shape shift meters to the right of where place
// would put it. Shifts of ±GameAreaWidth stay inside the space.
func placeShifted(sh resolv.IShape, bottomLeft core.Vec2, w, h, shift float64) {
	x := core.Wrap(bottomLeft.X, GameAreaWidth) + GameAreaWidth + shift
	y := bottomLeft.Y + spacePadding
	sh.SetPosition((x+w/2)*pixelsPerMeter, (y+h/2)*pixelsPerMeter)
}

// seamShifts are the character copies tested so shapes on the far side of
// the wrap seam are found too.
var seamShifts = [...]float64{0, -GameAreaWidth, GameAreaWidth}

// overlaps returns the owners of shapes with the given tag that intersect
// the character's body at pos (bottom-left corner of the character). Each
// owner is reported once.
func (s *overlapSpace) overlaps(pos core.Vec2, tag resolv.Tags) []any {
	body := core.V(pos.X+CollisionWidthOffset, pos.Y)

	var hits []any
	for _, shift := range seamShifts {
		placeShifted(s.character, body, CollisionWidth, CharacterHeight, shift)
		s.character.IntersectionTest(resolv.IntersectionTestSettings{
			TestAgainst: s.character.SelectTouchingCells(1).FilterShapes().ByTags(tag),
			OnIntersect: func(set resolv.IntersectionSet) bool {
				if owner, ok := s.owners[set.OtherShape]; ok && !slices.Contains(hits, owner) {
					hits = append(hits, owner)
				}
				return true
			},
		})
	}
	return hits
}
