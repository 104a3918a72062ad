// Package table assembles the scene: it deals the hands, places one node per
// tile, wires the viewport and pointer handlers to the host, and inserts the
// background once it has loaded.
package table

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/mahjongtable/internal/assets"
	"github.com/lox/mahjongtable/internal/geom"
	"github.com/lox/mahjongtable/internal/host"
	"github.com/lox/mahjongtable/internal/interaction"
	"github.com/lox/mahjongtable/internal/layout"
	"github.com/lox/mahjongtable/internal/scene"
	"github.com/lox/mahjongtable/internal/tile"
	"github.com/lox/mahjongtable/internal/viewport"
)

// DefaultHandSize is the number of tiles dealt to each seat.
const DefaultHandSize = 13

var (
	ErrAlreadyDealt   = errors.New("table already dealt")
	ErrAlreadyMounted = errors.New("table already mounted")

	errEmptyTexture = errors.New("asset source returned no image")
)

// Config holds table settings
type Config struct {
	HandSize    int
	FrustumSize float64
	Background  string // path or URL; empty for none
}

// Table owns the scene graph and everything that mutates it. It is not safe
// for concurrent use: Deal, Frame, the host's handlers and Close must all run
// on the same goroutine.
type Table struct {
	cfg    Config
	logger *log.Logger

	scene      *scene.Scene
	index      *scene.Index
	camera     *scene.Camera
	viewport   *viewport.Adapter
	controller *interaction.Controller

	host    host.Host
	assets  assets.Source
	hands   [len(layout.Seats)][]tile.Tile
	wall    int
	dealt   bool
	mounted bool

	background     *assets.Future
	backgroundDone bool
	backgroundErr  error
	cancelLoad     context.CancelFunc
	cancels        []func()
}

// New creates an empty table. surface and src may be nil.
func New(cfg Config, h host.Host, surface viewport.Surface, src assets.Source, logger *log.Logger) *Table {
	if cfg.FrustumSize <= 0 {
		cfg.FrustumSize = viewport.DefaultFrustumSize
	}

	t := &Table{
		cfg:    cfg,
		logger: logger.WithPrefix("table"),
		scene:  scene.New(),
		index:  scene.NewIndex(),
		camera: scene.NewCamera(geom.Frustum{}),
		host:   h,
		assets: src,
	}
	t.viewport = viewport.NewAdapter(t.camera, surface, t.scene, t.index, cfg.FrustumSize, logger)
	t.controller = interaction.NewController(t.camera, t.scene, t.index, t.viewport, logger)
	return t
}

// Deal builds and shuffles a fresh deck with rng, hands HandSize tiles to
// each seat and adds a node per dealt tile. Undealt tiles are not drawn.
func (t *Table) Deal(rng *rand.Rand) error {
	if t.dealt {
		return ErrAlreadyDealt
	}

	deck := tile.NewDeck()
	tile.Shuffle(deck, rng)
	hands, rest, err := tile.Deal(deck, len(layout.Seats), t.cfg.HandSize)
	if err != nil {
		return fmt.Errorf("deal: %w", err)
	}

	for i, seat := range layout.Seats {
		t.hands[seat] = hands[i]
		for _, tl := range hands[i] {
			n := scene.NewTileNode(tl, seat, geom.Vec3{})
			if err := t.index.Append(n); err != nil {
				return err
			}
			t.scene.Add(n)
		}
	}
	t.wall = len(rest)
	t.dealt = true

	if w, h := t.viewport.Size(); w > 0 && h > 0 {
		if err := t.index.LayoutAll(t.camera.Frustum); err != nil {
			return err
		}
	}

	t.logger.Info("Dealt hands",
		"hand_size", t.cfg.HandSize,
		"tiles", t.index.Len(),
		"wall", t.wall)
	return nil
}

// Mount registers the resize and click handlers with the host, applies the
// host's current size and starts loading the background.
func (t *Table) Mount(ctx context.Context) error {
	if t.mounted {
		return ErrAlreadyMounted
	}
	t.mounted = true

	t.cancels = append(t.cancels,
		t.host.OnResize(t.handleResize),
		t.host.OnClick(t.handleClick),
	)

	if w, h := t.host.Size(); w > 0 && h > 0 {
		if err := t.viewport.Resize(w, h); err != nil {
			return err
		}
	}

	if t.assets != nil && t.cfg.Background != "" {
		loadCtx, cancel := context.WithCancel(ctx)
		t.cancelLoad = cancel
		t.background = t.assets.Load(loadCtx, t.cfg.Background)
	}
	return nil
}

func (t *Table) handleResize(width, height int) {
	if err := t.viewport.Resize(width, height); err != nil {
		t.logger.Warn("Ignoring resize", "width", width, "height", height, "error", err)
	}
}

func (t *Table) handleClick(x, y float64) {
	outcome := t.controller.Click(interaction.PointerEvent{X: x, Y: y})
	t.logger.Debug("Click", "x", x, "y", y, "outcome", outcome, "state", t.controller.State())
}

// Frame runs the per-frame bookkeeping and reports whether the scene
// changed. Today that is inserting the background the first frame after its
// load completes.
func (t *Table) Frame() bool {
	if t.background == nil || t.backgroundDone {
		return false
	}
	res, ok := t.background.Poll()
	if !ok {
		return false
	}
	t.backgroundDone = true
	if res.Err == nil && res.Texture == nil {
		res.Err = errEmptyTexture
	}

	if res.Err != nil {
		t.backgroundErr = res.Err
		t.logger.Warn("Background unavailable, continuing without it", "error", res.Err)
		return false
	}

	bg := scene.NewBackgroundNode(res.Texture, 0, 0, viewport.BackgroundZ)
	bg.Color = assets.AverageColor(res.Texture)
	t.viewport.FitBackground(bg)
	t.scene.Add(bg)
	t.logger.Info("Background attached", "size", res.Texture.Bounds().Size())
	return true
}

// Close deregisters the host handlers and abandons any pending load.
func (t *Table) Close() {
	for _, cancel := range t.cancels {
		cancel()
	}
	t.cancels = nil
	if t.cancelLoad != nil {
		t.cancelLoad()
		t.cancelLoad = nil
	}
	t.mounted = false
}

// Scene returns the scene graph.
func (t *Table) Scene() *scene.Scene { return t.scene }

// Camera returns the camera.
func (t *Table) Camera() *scene.Camera { return t.camera }

// Controller returns the selection controller.
func (t *Table) Controller() *interaction.Controller { return t.controller }

// Viewport returns the viewport adapter.
func (t *Table) Viewport() *viewport.Adapter { return t.viewport }

// Nodes returns seat's tile nodes in hand order.
func (t *Table) Nodes(seat layout.Seat) []*scene.Node { return t.index.Hand(seat) }

// Hand returns the tiles dealt to seat.
func (t *Table) Hand(seat layout.Seat) []tile.Tile {
	if !seat.Valid() {
		return nil
	}
	return t.hands[seat]
}

// BackgroundErr returns why the background failed to load, if it did.
func (t *Table) BackgroundErr() error { return t.backgroundErr }

// Wall returns the number of undealt tiles.
func (t *Table) Wall() int { return t.wall }
