package table

import (
	"context"
	"errors"
	"image"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/mahjongtable/internal/assets"
	"github.com/lox/mahjongtable/internal/geom"
	"github.com/lox/mahjongtable/internal/host"
	"github.com/lox/mahjongtable/internal/interaction"
	"github.com/lox/mahjongtable/internal/layout"
	"github.com/lox/mahjongtable/internal/randutil"
	"github.com/lox/mahjongtable/internal/scene"
	"github.com/lox/mahjongtable/internal/tile"
	"github.com/lox/mahjongtable/internal/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// pendingSource hands out futures the test completes by hand.
type pendingSource struct {
	locations []string
	complete  func(image.Image, error)
}

func (s *pendingSource) Load(_ context.Context, location string) *assets.Future {
	s.locations = append(s.locations, location)
	f, complete := assets.NewFuture()
	s.complete = complete
	return f
}

func newTable(t *testing.T, d *host.Dispatcher, src assets.Source, background string) *Table {
	t.Helper()
	tbl := New(Config{HandSize: DefaultHandSize, Background: background}, d, nil, src, quietLogger())
	require.NoError(t, tbl.Deal(randutil.New(1)))
	require.NoError(t, tbl.Mount(context.Background()))
	t.Cleanup(tbl.Close)
	return tbl
}

// clientPoint converts a world point to client coordinates for the
// dispatcher's current size.
func clientPoint(tbl *Table, d *host.Dispatcher, p geom.Vec3) (float64, float64) {
	ndcX, ndcY := tbl.Camera().Project(p)
	w, h := d.Size()
	return (ndcX + 1) / 2 * float64(w), (1 - ndcY) / 2 * float64(h)
}

func TestDealFourHands(t *testing.T) {
	d := host.NewDispatcher(1200, 800)
	tbl := newTable(t, d, nil, "")

	assert.Equal(t, 84, tbl.Wall())
	assert.Equal(t, 52, tbl.Scene().Len())

	seen := make(map[*scene.Node]layout.Seat)
	counts := make(map[tile.Tile]int)
	for _, seat := range layout.Seats {
		hand := tbl.Hand(seat)
		nodes := tbl.Nodes(seat)
		require.Len(t, hand, 13)
		require.Len(t, nodes, 13)

		for i, n := range nodes {
			_, dup := seen[n]
			assert.False(t, dup, "node shared between seats")
			seen[n] = seat
			assert.Equal(t, seat, n.Seat)
			assert.Equal(t, hand[i], n.Tile)
			counts[n.Tile]++
		}
	}
	for tl, n := range counts {
		assert.LessOrEqual(t, n, tile.Copies, tl.String())
	}

	assert.ErrorIs(t, tbl.Deal(randutil.New(2)), ErrAlreadyDealt)
	assert.Nil(t, tbl.Hand(layout.Seat(9)))
}

func TestDealIsReproducible(t *testing.T) {
	a := New(Config{HandSize: 13}, host.NewDispatcher(0, 0), nil, nil, quietLogger())
	b := New(Config{HandSize: 13}, host.NewDispatcher(0, 0), nil, nil, quietLogger())
	require.NoError(t, a.Deal(randutil.New(77)))
	require.NoError(t, b.Deal(randutil.New(77)))

	for _, seat := range layout.Seats {
		assert.Equal(t, a.Hand(seat), b.Hand(seat))
	}
}

func TestDealTooLarge(t *testing.T) {
	tbl := New(Config{HandSize: 40}, host.NewDispatcher(0, 0), nil, nil, quietLogger())
	assert.ErrorIs(t, tbl.Deal(randutil.New(1)), tile.ErrDeckExhausted)
}

func TestDealNegativeHandSize(t *testing.T) {
	tbl := New(Config{HandSize: -1}, host.NewDispatcher(1200, 800), nil, nil, quietLogger())
	assert.ErrorIs(t, tbl.Deal(randutil.New(1)), tile.ErrInvalidDeal)
	assert.Zero(t, tbl.Scene().Len())
	assert.Zero(t, tbl.Wall())

	// A failed deal can be retried with a valid size
	tbl.cfg.HandSize = DefaultHandSize
	require.NoError(t, tbl.Deal(randutil.New(1)))
	assert.Equal(t, 84, tbl.Wall())
}

func TestMountLaysOutHands(t *testing.T) {
	d := host.NewDispatcher(1200, 800)
	tbl := newTable(t, d, nil, "")

	for _, seat := range layout.Seats {
		want, err := layout.Place(seat, 13, tbl.Camera().Frustum)
		require.NoError(t, err)
		for i, n := range tbl.Nodes(seat) {
			assert.Equal(t, want[i], n.Position)
		}
	}
	assert.ErrorIs(t, tbl.Mount(context.Background()), ErrAlreadyMounted)
}

func TestMountBeforeSizeKnown(t *testing.T) {
	d := host.NewDispatcher(0, 0)
	tbl := newTable(t, d, nil, "")
	assert.Equal(t, geom.Vec3{}, tbl.Nodes(layout.Local)[0].Position)

	d.Resize(1200, 800)
	assert.InDelta(t, -16, tbl.Nodes(layout.Local)[0].Position.Y, geom.Epsilon)
}

func TestDealAfterMountLaysOut(t *testing.T) {
	d := host.NewDispatcher(1200, 800)
	tbl := New(Config{HandSize: 13}, d, nil, nil, quietLogger())
	require.NoError(t, tbl.Mount(context.Background()))
	defer tbl.Close()

	require.NoError(t, tbl.Deal(randutil.New(3)))
	assert.InDelta(t, -25.2, tbl.Nodes(layout.Local)[0].Position.X, geom.Epsilon)
}

func TestResizeThroughHost(t *testing.T) {
	d := host.NewDispatcher(1200, 800)
	tbl := newTable(t, d, nil, "")

	d.Resize(1600, 800)
	assert.InDelta(t, 40, tbl.Camera().Right, geom.Epsilon)
	first := tbl.Placements()

	d.Resize(1600, 800)
	assert.Equal(t, first, tbl.Placements())

	d.Resize(0, 800)
	assert.InDelta(t, 40, tbl.Camera().Right, geom.Epsilon, "invalid resize ignored")
}

func TestClickThroughHost(t *testing.T) {
	d := host.NewDispatcher(1200, 800)
	tbl := newTable(t, d, nil, "")
	target := tbl.Nodes(layout.Local)[5]

	d.Click(clientPoint(tbl, d, target.Position))
	assert.Equal(t, interaction.Raised, tbl.Controller().State())
	assert.True(t, target.Raised)

	d.Click(600, 400)
	assert.Equal(t, interaction.Idle, tbl.Controller().State())
	assert.Equal(t, layout.TrayY, target.Position.Y)
}

func TestCloseDeregistersHandlers(t *testing.T) {
	d := host.NewDispatcher(1200, 800)
	tbl := New(Config{HandSize: 13}, d, nil, nil, quietLogger())
	require.NoError(t, tbl.Deal(randutil.New(1)))
	require.NoError(t, tbl.Mount(context.Background()))
	assert.Equal(t, 2, d.Handlers())

	tbl.Close()
	assert.Zero(t, d.Handlers())

	target := tbl.Nodes(layout.Local)[0]
	d.Click(clientPoint(tbl, d, target.Position))
	assert.False(t, target.Raised)

	d.Resize(100, 100)
	assert.InDelta(t, 30, tbl.Camera().Right, geom.Epsilon)
}

func TestBackgroundInsertedOnceAfterLoad(t *testing.T) {
	d := host.NewDispatcher(1200, 800)
	src := &pendingSource{}
	tbl := newTable(t, d, src, "/images/table-background.jpg")
	assert.Equal(t, []string{"/images/table-background.jpg"}, src.locations)

	// Tiles are in place before the background arrives
	assert.False(t, tbl.Frame())
	assert.Nil(t, tbl.Scene().Lookup(scene.BackgroundName))
	assert.Equal(t, 52, tbl.Scene().Len())

	src.complete(image.NewRGBA(image.Rect(0, 0, 16, 9)), nil)
	assert.True(t, tbl.Frame())
	assert.False(t, tbl.Frame())

	bg := tbl.Scene().Lookup(scene.BackgroundName)
	require.NotNil(t, bg)
	assert.Equal(t, 53, tbl.Scene().Len())
	assert.InDelta(t, 60, bg.Size.X, geom.Epsilon)
	assert.InDelta(t, 40, bg.Size.Y, geom.Epsilon)
	assert.Equal(t, viewport.BackgroundZ, bg.Position.Z)
	assert.False(t, bg.Pickable)
	assert.NoError(t, tbl.BackgroundErr())

	d.Resize(1600, 800)
	assert.InDelta(t, 80, bg.Size.X, geom.Epsilon)
}

func TestBackgroundFailureLeavesTableUsable(t *testing.T) {
	d := host.NewDispatcher(1200, 800)
	src := &pendingSource{}
	tbl := newTable(t, d, src, "missing.jpg")

	src.complete(nil, errors.New("boom"))
	assert.False(t, tbl.Frame())
	assert.EqualError(t, tbl.BackgroundErr(), "boom")
	assert.Nil(t, tbl.Scene().Lookup(scene.BackgroundName))
	assert.Equal(t, 52, tbl.Scene().Len())

	target := tbl.Nodes(layout.Local)[0]
	d.Click(clientPoint(tbl, d, target.Position))
	assert.True(t, target.Raised)
}

func TestBackgroundWithoutImageTreatedAsFailure(t *testing.T) {
	d := host.NewDispatcher(1200, 800)
	src := &pendingSource{}
	tbl := newTable(t, d, src, "empty.png")

	src.complete(nil, nil)
	assert.NotPanics(t, func() { assert.False(t, tbl.Frame()) })
	assert.Nil(t, tbl.Scene().Lookup(scene.BackgroundName))
	assert.ErrorIs(t, tbl.BackgroundErr(), errEmptyTexture)
}

func TestBackgroundDoesNotBlockClicks(t *testing.T) {
	d := host.NewDispatcher(1200, 800)
	src := &pendingSource{}
	tbl := newTable(t, d, src, "slow.png")

	d.Click(600, 400)
	src.complete(image.NewRGBA(image.Rect(0, 0, 4, 4)), nil)
	require.True(t, tbl.Frame())

	// The background is behind every tile and never picked
	d.Click(600, 400)
	assert.Equal(t, interaction.Idle, tbl.Controller().State())
}

func TestPlacements(t *testing.T) {
	d := host.NewDispatcher(1200, 800)
	tbl := newTable(t, d, nil, "")

	placements := tbl.Placements()
	require.Len(t, placements, 52)
	assert.Equal(t, "local", placements[0].Seat)
	assert.Equal(t, "right", placements[51].Seat)
	assert.Equal(t, 12, placements[51].Index)
	assert.InDelta(t, 4, placements[0].Width, geom.Epsilon)
	assert.Equal(t, tbl.Hand(layout.Local)[0].String(), placements[0].Tile)
}
