package hellhopper

import (
	"fmt"
	"math"

	"github.com/vovakirdan/hellhopper/internal/core"
	"github.com/vovakirdan/hellhopper/internal/games/hellhopper/sim"
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	if g.area == nil {
		msg := "no level"
		if g.loadErr != nil {
			msg = g.loadErr.Error()
		}
		g.drawCenteredMessage(dst, "CANNOT START", truncate(msg, dst.Width()-6), core.ColorRed)
		return
	}

	vp := g.viewport(dst)
	g.area.Render(sim.RenderData{Screen: dst, Viewport: vp})
	g.drawFlashes(dst, vp)
	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorYellow)
	}

	if g.gameOver {
		title := "GAME OVER"
		if g.area.Character().ReachedEnd() {
			title = "YOU ESCAPED"
		}
		g.drawCenteredMessage(dst, title, fmt.Sprintf("Score: %d  |  Press R to restart", g.score()), core.ColorBrightRed)
	}
}

// viewport maps the camera band onto the screen below the HUD.
func (g *Game) viewport(dst *core.Screen) sim.Viewport {
	return sim.Viewport{
		Bottom: g.camera.Bottom(),
		Height: g.camera.Height(),
		Left:   0,
		Top:    hudRows,
		Cols:   dst.Width(),
		Rows:   dst.Height() - hudRows,
	}
}

// drawHUD draws the status line.
func (g *Game) drawHUD(dst *core.Screen) {
	c := g.area.Character()
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)

	text := fmt.Sprintf(" %s  %3.0fm/%.0fm  Score: %d ", g.lvl.Name, math.Floor(c.MaxHeight()), g.area.RiseHeight(), g.score())
	dst.DrawTextWithColor(0, 0, text, core.ColorBrightWhite)

	x := len([]rune(text))
	if c.Shield() > 0 {
		s := fmt.Sprintf("[SHIELD %.1fs] ", c.Shield())
		dst.DrawTextWithColor(x, 0, s, core.ColorCyan)
		x += len(s)
	}
	if c.JumpFactor() > 1 {
		s := fmt.Sprintf("[JUMP x%.1f] ", c.JumpFactor())
		dst.DrawTextWithColor(x, 0, s, core.ColorGreen)
	}
	if g.practice {
		label := "PRACTICE "
		dst.DrawTextWithColor(dst.Width()-len(label), 0, label, core.ColorGray)
	}
}

// drawFlashes draws the active visual cues.
func (g *Game) drawFlashes(dst *core.Screen, vp sim.Viewport) {
	for _, f := range g.flashes {
		row, ok := vp.Row(f.at.Y + 0.5)
		if !ok {
			continue
		}
		r, color := flashGlyph(f.kind)
		col := vp.Column(f.at.X)
		dst.SetWithColor(col, row, r, color)
		if col > vp.Left {
			dst.SetWithColor(col-1, row, r, color)
		}
		if col < vp.Left+vp.Cols-1 {
			dst.SetWithColor(col+1, row, r, color)
		}
	}
}

func flashGlyph(v sim.Visual) (rune, core.Color) {
	switch v {
	case sim.VisualBoost:
		return '*', core.ColorBrightYellow
	case sim.VisualBurn:
		return '*', core.ColorEmber
	case sim.VisualCrumble:
		return ':', core.ColorBrown
	case sim.VisualPickup:
		return '+', core.ColorBrightGreen
	case sim.VisualReveal:
		return '!', core.ColorBrightCyan
	case sim.VisualShieldBlock:
		return 'o', core.ColorCyan
	default:
		return '*', core.ColorWhite
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), c)

	// Draw text
	titleX := boxX + (boxW-len(title))/2
	dst.DrawTextWithColor(titleX, boxY+1, title, c)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 3 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
