package hellhopper

import "github.com/vovakirdan/hellhopper/internal/config"

// Camera tracks the visible band of the level. It only ever moves up.
type Camera struct {
	bottom float64
	height float64
	follow float64 // Meters above bottom the character may reach before the view moves
	limit  float64 // Highest allowed bottom
	capped bool
}

// NewCamera creates a camera at ground level.
func NewCamera(cfg config.CameraConfig) Camera {
	height := cfg.VisibleHeight
	if height <= 0 {
		height = config.DefaultHellHopperConfig().Camera.VisibleHeight
	}
	ratio := cfg.FollowRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = config.DefaultHellHopperConfig().Camera.FollowRatio
	}
	return Camera{height: height, follow: height * ratio}
}

// SetLimit stops the camera once the goal floor at riseHeight sits at the
// follow line.
func (c *Camera) SetLimit(riseHeight float64) {
	c.limit = max(riseHeight-c.follow, 0)
	c.capped = true
}

// Follow raises the view so y stays at or below the follow line.
func (c *Camera) Follow(y float64) {
	target := y - c.follow
	if c.capped {
		target = min(target, c.limit)
	}
	c.bottom = max(c.bottom, target)
}

// Bottom returns the lowest visible height in meters.
func (c Camera) Bottom() float64 { return c.bottom }

// Height returns the visible height in meters.
func (c Camera) Height() float64 { return c.height }
