//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"log"

	"confetti/internal/core"
	"confetti/internal/engine"
	"confetti/internal/palette"
	"confetti/internal/prefs"
	"confetti/internal/recipe"
	"confetti/internal/render"
	"confetti/internal/ui"
	"confetti/internal/vmath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var background = color.RGBA{R: 10, G: 10, B: 16, A: 255}

// recipeKeys binds one key per recipe in registry order.
var recipeKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8,
	ebiten.KeyDigit9, ebiten.KeyDigit0, ebiten.KeyMinus, ebiten.KeyEqual,
}

var recipeKeyLabels = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "-", "="}

// Game adapts a celebration session to the ebiten.Game interface.
type Game struct {
	eng     *engine.Engine
	surface *render.EbitenSurface
	hud     *ui.HUD
	overlay *ui.Overlay
	prefs   *prefs.Store
	step    *core.FixedStep

	recipes []string
	recipe  string
	emotion string
	showHUD bool
}

// New constructs a Game for the provided session. store may be nil.
func New(eng *engine.Engine, cfg *Config, store *prefs.Store) *Game {
	size := eng.Size()
	g := &Game{
		eng:     eng,
		surface: render.NewEbitenSurface(size.W, size.H, background),
		overlay: ui.NewOverlay(eng),
		prefs:   store,
		step:    core.NewFixedStep(cfg.TPS, nil),
		recipes: recipe.Names(),
		recipe:  cfg.Recipe,
		emotion: palette.DefaultEmotion,
		showHUD: cfg.HUD > 0,
	}
	g.hud = ui.NewHUD(eng, cfg.HUD)
	g.hud.SetLegend(g.legend())

	if store != nil {
		store.Apply(eng)
		g.emotion = store.Get().Emotion
	}
	if cfg.Emotion != "" {
		if _, ok := palette.Lookup(cfg.Emotion); ok {
			g.emotion = cfg.Emotion
		} else {
			log.Printf("[app] unknown emotion %q, keeping %q", cfg.Emotion, g.emotion)
		}
	}
	eng.Attach(g.surface)
	return g
}

func (g *Game) legend() []string {
	lines := make([]string, 0, len(g.recipes)/2+4)
	for i := 0; i < len(g.recipes) && i < len(recipeKeys); i += 2 {
		line := fmt.Sprintf("%s %s", recipeKeyLabels[i], g.recipes[i])
		if i+1 < len(g.recipes) {
			line = fmt.Sprintf("%-16s %s %s", line, recipeKeyLabels[i+1], g.recipes[i+1])
		}
		lines = append(lines, line)
	}
	return append(lines,
		"click: "+g.recipe+"   E: emotion",
		"space: on/off   M: reduced motion",
		"C: clear   H: hud   F/G/I: overlays",
	)
}

// Trigger fires the named recipe at a viewport pixel position.
func (g *Game) Trigger(name string, x, y int) {
	size := g.eng.Size()
	if size.Empty() {
		return
	}
	c := engine.NewCelebration(name)
	c.Origin = vmath.V(float64(x)/float64(size.W), float64(y)/float64(size.H))
	c.Emotion = g.emotion
	if g.prefs != nil {
		c.Intensity = g.prefs.Get().Intensity
	}
	g.eng.Celebrate(c)
}

// Update handles per-frame input and advances the session.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.save()
		return ebiten.Termination
	}
	g.handleKeys()

	size := g.eng.Size()
	mx, my := ebiten.CursorPosition()
	inView := mx >= 0 && my >= 0 && mx < size.W && my < size.H
	if inView {
		for i, key := range recipeKeys {
			if i < len(g.recipes) && inpututil.IsKeyJustPressed(key) {
				g.Trigger(g.recipes[i], mx, my)
			}
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.Trigger(g.recipe, mx, my)
		}
	}

	g.overlay.Update()
	if g.showHUD {
		g.hud.Update(size.W)
	}

	for n := g.step.Due(); n > 0; n-- {
		if !g.eng.Frame() {
			break
		}
	}
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		on := !g.eng.IsEnabled()
		g.eng.SetEnabled(on)
		if g.prefs != nil {
			g.prefs.SetEnabled(on)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		on := !g.eng.ReducedMotion()
		g.eng.SetReducedMotion(on)
		if g.prefs != nil {
			g.prefs.SetReducedMotion(on)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.eng.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) && g.hud.Width() > 0 {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.emotion = nextEmotion(g.emotion)
		if g.prefs != nil {
			g.prefs.SetEmotion(g.emotion)
		}
		log.Printf("[app] emotion %s", g.emotion)
	}
}

func (g *Game) save() {
	if g.prefs == nil || !g.prefs.Persistent() {
		return
	}
	if err := g.prefs.Save(); err != nil {
		log.Printf("[app] saving preferences: %v", err)
	}
}

// Draw composites the particle surface, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	screen.DrawImage(g.surface.Image(), nil)
	g.overlay.Draw(screen)
	if g.showHUD {
		g.hud.Draw(screen, g.eng.Size().W)
	}
}

// Layout follows window resizes: the viewport takes everything left of the
// HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := outsideWidth
	if g.showHUD {
		w -= g.hud.Width()
	}
	if size := g.eng.Size(); size.W != w || size.H != outsideHeight {
		g.eng.Resize(w, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
