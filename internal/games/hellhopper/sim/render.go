package sim

import (
	"math"

	"github.com/vovakirdan/hellhopper/internal/core"
	"github.com/vovakirdan/hellhopper/internal/games/hellhopper/level"
)

// Viewport projects world meters onto a block of screen cells. The whole
// game area width is always shown; Height meters above Bottom are shown.
type Viewport struct {
	Bottom float64
	Height float64

	Left, Top  int
	Cols, Rows int
}

// Column returns the screen column of world x, wrapped into the game area.
func (v Viewport) Column(x float64) int {
	col := int(math.Floor(core.Wrap(x, GameAreaWidth) / GameAreaWidth * float64(v.Cols)))
	return v.Left + core.Clamp(col, 0, v.Cols-1)
}

// Row returns the screen row of world y and whether it is inside the
// viewport.
func (v Viewport) Row(y float64) (int, bool) {
	if v.Height <= 0 || v.Rows <= 0 {
		return 0, false
	}
	rel := int(math.Floor((y - v.Bottom) / v.Height * float64(v.Rows)))
	row := v.Top + v.Rows - 1 - rel
	return row, row >= v.Top && row < v.Top+v.Rows
}

// wrapCol keeps a column inside the viewport, wrapping horizontally.
func (v Viewport) wrapCol(col int) int {
	return v.Left + int(core.PositiveMod(float64(col-v.Left), float64(v.Cols)))
}

// drawSpan fills the cells covering [x, x+w) at height y.
func (v Viewport) drawSpan(s *core.Screen, x, y, w float64, r rune, c core.Color) {
	row, ok := v.Row(y)
	if !ok || v.Cols <= 0 {
		return
	}
	perMeter := float64(v.Cols) / GameAreaWidth
	start := int(math.Floor(x * perMeter))
	n := max(int(math.Round(w*perMeter)), 1)
	for i := range n {
		s.SetWithColor(v.wrapCol(v.Left+start+i), row, r, c)
	}
}

// drawText writes text starting at world position at, wrapping columns.
func (v Viewport) drawText(s *core.Screen, at core.Vec2, text string, c core.Color) {
	row, ok := v.Row(at.Y)
	if !ok {
		return
	}
	col := v.Column(at.X)
	for i, r := range []rune(text) {
		s.SetWithColor(v.wrapCol(col+i), row, r, c)
	}
}

var (
	characterNormal = []string{"(o)", "/ \\"}
	characterDead   = []string{"x_x", "/ \\"}
)

// drawCharacter draws a sprite whose bottom line sits at pos.Y, centered
// on the character's center column. Lines are listed top first.
func drawCharacter(d *RenderData, pos core.Vec2, sprite []string, c core.Color) {
	if d == nil || d.Screen == nil {
		return
	}
	v := d.Viewport
	bottom, _ := v.Row(pos.Y + Epsilon)
	center := v.Column(pos.X + CharacterCenterX)
	for i, line := range sprite {
		row := bottom - (len(sprite) - 1 - i)
		if row < v.Top || row >= v.Top+v.Rows {
			continue
		}
		runes := []rune(line)
		left := center - len(runes)/2
		for j, r := range runes {
			if r == ' ' {
				continue
			}
			d.Screen.SetWithColor(v.wrapCol(left+j), row, r, c)
		}
	}
}

func platformGlyph(p *Platform) (rune, core.Color) {
	switch {
	case p.Crumbling():
		return '.', core.ColorBrown
	case p.Type() == level.PlatformCrumble:
		return '~', core.ColorBrown
	case p.HasVerticalMovement():
		return '=', core.ColorBlue
	}
	return '=', core.ColorGray
}

func (a *Area) renderPlatform(d *RenderData, p *Platform) {
	if p.Gone() || p.Hidden() {
		return
	}
	v := d.Viewport
	pos := p.Position()
	top := pos.Y + PlatformHeight - Epsilon
	r, c := platformGlyph(p)
	v.drawSpan(d.Screen, pos.X, top, PlatformWidth, r, c)

	for _, f := range p.Features() {
		switch f := f.(type) {
		case *JumpBoost:
			left, w := f.Span()
			v.drawSpan(d.Screen, pos.X+left, top, w, '#', core.ColorBrightGreen)
		case *Flame:
			if f.Lit() {
				v.drawSpan(d.Screen, pos.X, top+1, PlatformWidth, '^', core.ColorEmber)
			} else if f.Igniting() {
				v.drawSpan(d.Screen, pos.X, top+1, PlatformWidth, '.', core.ColorOrange)
			}
		}
	}

	if e := p.enemy; e != nil {
		v.drawSpan(d.Screen, e.Position().X, e.Position().Y+Epsilon, EnemyWidth, 'M', core.ColorMagenta)
	}
}

func itemGlyph(t level.ItemType) (rune, core.Color) {
	switch t {
	case level.ItemRuby:
		return '*', core.ColorBrightRed
	case level.ItemShield:
		return 'O', core.ColorBrightCyan
	case level.ItemHighJump:
		return '!', core.ColorBrightGreen
	}
	return '?', core.ColorWhite
}

func (a *Area) renderItem(d *RenderData, it *Item) {
	switch it.State() {
	case ItemExisting:
		r, c := itemGlyph(it.Kind())
		d.Viewport.drawSpan(d.Screen, it.Position().X, it.Position().Y+Epsilon, ItemWidth, r, c)
	case ItemText:
		d.Viewport.drawText(d.Screen, it.Position(), it.Text(), core.ColorBrightYellow)
	}
}

// Render draws the end floor, the active sections and the character.
func (a *Area) Render(d RenderData) {
	if d.Screen == nil {
		return
	}
	d.Viewport.drawSpan(d.Screen, 0, a.RiseHeight()-Epsilon, GameAreaWidth, '#', core.ColorBrightYellow)

	for _, s := range a.sections {
		if !s.Active() {
			continue
		}
		for _, p := range s.platforms {
			a.renderPlatform(&d, p)
		}
		for _, it := range s.pickups {
			a.renderItem(&d, it)
		}
	}
	a.character.Render(&d)
}
