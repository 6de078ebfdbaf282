package survivor

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-survivor/internal/core"
	"github.com/vovakirdan/tui-survivor/internal/games/survivor/sim"
)

// Visual characters for rendering
const (
	PlayerChar     = '@'
	PufferfishChar = 'o'
	OctopusChar    = 'Ö'
	MiniBossChar   = '▓'
	BossChar       = '█'
	ForkChar       = '†'
	ShotChar       = '*'
	MissileChar    = '●'
	OrbChar        = '•'
	MagnetChar     = 'U'
	FreezeChar     = '❄'
	BlastChar      = '#'
	AuraChar       = '·'
	SandChar       = '.'
)

// hudRows is the number of text rows reserved at the top of the screen.
const hudRows = 1

// viewport maps world coordinates inside the camera window to cells.
type viewport struct {
	camX   float64
	sx, sy float64 // world units per cell
	top    int
	w, h   int
}

func newViewport(st sim.State, worldW, worldH float64, dst *core.Screen) viewport {
	w := dst.Width()
	h := max(dst.Height()-hudRows, 1)
	return viewport{
		camX: st.CameraX,
		sx:   worldW / float64(max(w, 1)),
		sy:   worldH / float64(h),
		top:  hudRows,
		w:    w,
		h:    h,
	}
}

func (v viewport) cell(p core.Vec2) (int, int) {
	return int(math.Floor((p.X - v.camX) / v.sx)), v.top + int(math.Floor(p.Y/v.sy))
}

// footprint returns the cell rectangle covered by an entity of size s.
func (v viewport) footprint(p core.Vec2, size float64) core.Rect {
	cw := max(int(math.Round(size/v.sx)), 1)
	ch := max(int(math.Round(size/v.sy)), 1)
	x, y := v.cell(p)
	return core.NewRect(x-cw/2, y-ch/2, cw, ch)
}

// Render draws the current snapshot.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	st := g.session.State()
	cfg := g.session.Engine().Config()
	v := newViewport(st, cfg.World.ViewportWidth, cfg.World.ViewportHeight, dst)

	drawGround(dst, v)
	drawAura(dst, v, st.Player)
	for _, pk := range st.Pickups {
		drawPickup(dst, v, pk)
	}
	for _, en := range st.Enemies {
		drawEnemy(dst, v, en, st.FreezeTimer > 0)
	}
	for _, pr := range st.Projectiles {
		drawProjectile(dst, v, pr)
	}
	for _, ex := range st.Explosions {
		drawExplosion(dst, v, ex)
	}
	drawPlayer(dst, v, st.Player)

	hud := sim.DeriveHUD(st)
	drawHUD(dst, hud)

	switch {
	case st.Status == sim.StatusChoosingUpgrade:
		g.drawChoices(dst)
	case st.Status == sim.StatusDefeated:
		drawMessage(dst, core.ColorRed, "GAME OVER",
			"You survived for: "+hud.Clock,
			fmt.Sprintf("Kills: %d  |  R: play again  |  B: menu", hud.Kills))
	case st.Status == sim.StatusVictorious:
		drawMessage(dst, core.ColorBrightYellow, "GAME CLEAR!",
			"Boss defeated at "+hud.Clock,
			fmt.Sprintf("Kills: %d  |  R: play again  |  B: menu", hud.Kills))
	case g.session.Paused():
		drawMessage(dst, core.ColorWhite, "PAUSED", "P: resume  |  B: menu")
	case st.BossWarning:
		dst.DrawTextCentered(dst.Height()/2, "W A R N I N G", core.ColorBrightRed)
	}
}

// drawGround scatters sand below the horizon so scrolling is visible.
func drawGround(dst *core.Screen, v viewport) {
	horizon := v.top + v.h*6/10
	offset := int(v.camX / v.sx)
	for y := horizon; y < v.top+v.h; y++ {
		for x := 0; x < v.w; x++ {
			if (x+offset+y*3)%11 == 0 {
				dst.SetColored(x, y, SandChar, core.ColorGray)
			}
		}
	}
}

func drawAura(dst *core.Screen, v viewport, p sim.Player) {
	i := p.Weapon(sim.WeaponGarlic)
	if i < 0 {
		return
	}
	a, ok := p.Weapons[i].Aura()
	if !ok || !a.Active {
		return
	}
	steps := 48
	for k := 0; k < steps; k++ {
		pt := p.Pos.Add(core.FromAngle(2*math.Pi*float64(k)/float64(steps), a.Radius))
		x, y := v.cell(pt)
		if y >= v.top {
			dst.SetColored(x, y, AuraChar, core.ColorGreen)
		}
	}
}

func drawPickup(dst *core.Screen, v viewport, pk sim.Pickup) {
	x, y := v.cell(pk.Pos)
	switch pk.Kind {
	case sim.PickupMagnet:
		dst.SetColored(x, y, MagnetChar, core.ColorBrightBlue)
	case sim.PickupFreezeBomb:
		dst.SetColored(x, y, FreezeChar, core.ColorBrightCyan)
	default:
		c := core.ColorBrightGreen
		if pk.Magnetized {
			c = core.ColorBrightBlue
		}
		dst.SetColored(x, y, OrbChar, c)
	}
}

func drawEnemy(dst *core.Screen, v viewport, en sim.Enemy, frozen bool) {
	var r rune
	var c core.Color
	switch en.Kind {
	case sim.EnemyOctopus:
		r, c = OctopusChar, core.ColorMagenta
	case sim.EnemyMiniBoss:
		r, c = MiniBossChar, core.ColorRed
	case sim.EnemyBoss:
		r, c = BossChar, core.ColorBrightRed
	default:
		r, c = PufferfishChar, core.ColorYellow
	}
	// Freeze does not hold the bosses.
	if frozen && en.Kind != sim.EnemyMiniBoss && en.Kind != sim.EnemyBoss {
		c = core.ColorCyan
	}

	box := v.footprint(en.Pos, en.Size)
	if box.W == 1 && box.H == 1 {
		dst.SetColored(box.X, box.Y, r, c)
		return
	}
	dst.DrawRect(box, r, c)
	if en.Kind == sim.EnemyMiniBoss || en.Kind == sim.EnemyBoss {
		drawHealthBar(dst, box.X, box.Y-1, box.W, sim.HealthRatio(en))
	}
}

func drawHealthBar(dst *core.Screen, x, y, width int, ratio float64) {
	filled := int(math.Round(ratio * float64(width)))
	for i := 0; i < width; i++ {
		if i < filled {
			dst.SetColored(x+i, y, '━', core.ColorRed)
		} else {
			dst.SetColored(x+i, y, '─', core.ColorGray)
		}
	}
}

func drawProjectile(dst *core.Screen, v viewport, pr sim.Projectile) {
	x, y := v.cell(pr.Pos)
	switch pr.Kind {
	case sim.ProjectileBoss:
		dst.SetColored(x, y, MissileChar, core.ColorOrange)
	case sim.ProjectileMiniBoss:
		dst.SetColored(x, y, ShotChar, core.ColorBrightMagenta)
	default:
		dst.SetColored(x, y, ForkChar, core.ColorBrightWhite)
	}
}

func drawExplosion(dst *core.Screen, v viewport, ex sim.Explosion) {
	box := v.footprint(ex.Pos, ex.Size)
	cx, cy := v.cell(ex.Pos)
	rx, ry := float64(box.W)/2, float64(box.H)/2
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dx, dy := float64(x-cx)/rx, float64(y-cy)/ry
			if d := dx*dx + dy*dy; d <= 1 && d >= 0.5 {
				dst.SetColored(x, y, BlastChar, core.ColorOrange)
			}
		}
	}
}

func drawPlayer(dst *core.Screen, v viewport, p sim.Player) {
	c := core.ColorBrightWhite
	if p.IFrames > 0.8 {
		c = core.ColorBrightRed
	}
	x, y := v.cell(p.Pos)
	dst.SetColored(x, y, PlayerChar, c)
}

func drawHUD(dst *core.Screen, h sim.HUD) {
	hpColor := core.ColorBrightGreen
	if h.HealthPct < 30 {
		hpColor = core.ColorBrightRed
	}
	x := 1
	x = drawField(dst, x, fmt.Sprintf("HP %.0f/%.0f", math.Max(h.Health, 0), h.MaxHealth), hpColor)
	x = drawField(dst, x, fmt.Sprintf("LV %d  XP %d/%d", h.Level, h.XP, h.XPToNext), core.ColorBrightCyan)
	x = drawField(dst, x, h.Clock, core.ColorWhite)
	x = drawField(dst, x, fmt.Sprintf("Kills %d", h.Kills), core.ColorYellow)
	for _, w := range h.Weapons {
		x = drawField(dst, x, fmt.Sprintf("%s L%d %.0fdps", w.Name, w.Level, w.DPS), core.ColorGray)
	}
	if h.Frozen {
		x = drawField(dst, x, "FROZEN", core.ColorBrightCyan)
	}
	if h.HasBoss {
		drawField(dst, x, fmt.Sprintf("BOSS %.0f%%", h.BossHealthPct), core.ColorBrightRed)
	}
}

func drawField(dst *core.Screen, x int, text string, c core.Color) int {
	dst.DrawTextColored(x, 0, text, c)
	return x + utf8.RuneCountInString(text) + 2
}

func (g *Game) drawChoices(dst *core.Screen) {
	choices := g.session.Choices()
	lines := make([]string, 0, len(choices)+2)
	for i, u := range choices {
		marker := "  "
		if i == g.cursor {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%d) %s - %s", marker, i+1, u.Title, u.Description))
	}
	lines = append(lines, "", "1-5/Enter: choose  |  X: skip")
	drawBox(dst, core.ColorBrightGreen, "LEVEL UP!", lines)
}

// drawMessage draws a centered box with a title and lines of text.
func drawMessage(dst *core.Screen, c core.Color, title string, lines ...string) {
	drawBox(dst, c, title, lines)
}

func drawBox(dst *core.Screen, c core.Color, title string, lines []string) {
	width := utf8.RuneCountInString(title)
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	boxW := min(width+4, dst.Width())
	boxH := len(lines) + 4
	box := core.CenteredRect(dst.Width(), dst.Height(), boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	dst.DrawTextCentered(box.Y+1, title, c)
	for i, l := range lines {
		dst.DrawText(box.X+2, box.Y+3+i, l)
	}
}
