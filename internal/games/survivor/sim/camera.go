package sim

import "github.com/vovakirdan/tui-survivor/internal/core"

// CameraX returns the left edge of the viewport for a player x position.
// The camera keeps the player centred and stops at the world edges.
func (e *Engine) CameraX(playerX float64) float64 {
	w := e.cfg.World
	return core.ClampF(playerX-w.ViewportWidth/2, 0, w.Width()-w.ViewportWidth)
}
