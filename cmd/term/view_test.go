package main

import (
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/td/configs"
	"github.com/younwookim/td/internal/application/session"
	"github.com/younwookim/td/internal/application/state"
	"github.com/younwookim/td/internal/application/system"
	"github.com/younwookim/td/internal/domain/entity"
	"github.com/younwookim/td/internal/infrastructure/audio"
	"github.com/younwookim/td/internal/infrastructure/config"
	"github.com/younwookim/td/internal/infrastructure/persistence"
)

type recordingSounder struct {
	played []audio.Cue
}

func (r *recordingSounder) Play(c audio.Cue) { r.played = append(r.played, c) }

func newTestView(t *testing.T) (*view, *recordingSounder) {
	t.Helper()
	cfg, err := config.NewFSLoader(configs.FS).LoadAll()
	require.NoError(t, err)
	catalog, err := system.NewCatalog(cfg)
	require.NoError(t, err)
	engine, err := system.New(catalog, system.DefaultRules(), zerolog.Nop(), 0)
	require.NoError(t, err)

	store := persistence.NewFileStore(filepath.Join(t.TempDir(), "save.json"))
	sound := &recordingSounder{}
	return newView(session.New(engine, store, zerolog.Nop()), sound, zerolog.Nop()), sound
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestView_StartsBesidePath(t *testing.T) {
	v, _ := newTestView(t)

	assert.Equal(t, entity.Tile{X: 0, Y: 2}, v.cursor)
	tile, ok := v.sess.Engine().Selected()
	require.True(t, ok)
	assert.Equal(t, v.cursor, tile)
}

func TestView_CursorStaysOnMap(t *testing.T) {
	v, _ := newTestView(t)

	v.handleKey(key(tcell.KeyLeft))
	assert.Equal(t, entity.Tile{X: 0, Y: 2}, v.cursor)

	v.handleKey(key(tcell.KeyRight))
	v.handleKey(key(tcell.KeyUp))
	assert.Equal(t, entity.Tile{X: 1, Y: 1}, v.cursor)

	for i := 0; i < 20; i++ {
		v.handleKey(key(tcell.KeyDown))
	}
	assert.Equal(t, 7, v.cursor.Y)
}

func TestView_BuildUpgradeSell(t *testing.T) {
	v, _ := newTestView(t)
	e := v.sess.Engine()

	assert.True(t, v.handleKey(char('1')))
	require.Len(t, e.Towers(), 1)
	assert.Equal(t, "arrow", e.Towers()[0].Type)

	v.handleKey(char('U'))
	assert.Equal(t, 2, e.Towers()[0].Level)

	v.handleKey(char('x'))
	assert.Empty(t, e.Towers())
	assert.Equal(t, 200-75-60+63, e.Gold())
}

func TestView_PauseRestartQuit(t *testing.T) {
	v, _ := newTestView(t)

	v.handleKey(char('p'))
	assert.Equal(t, state.Paused, v.sess.Engine().Phase())
	v.handleKey(char('p'))

	v.handleKey(char('2'))
	v.handleKey(char('r'))
	assert.Empty(t, v.sess.Engine().Towers())

	assert.False(t, v.handleKey(char('q')))
	assert.False(t, v.handleKey(key(tcell.KeyEscape)))
}

func TestView_SaveLoad(t *testing.T) {
	v, _ := newTestView(t)

	v.handleKey(char('1'))
	v.handleKey(char('s'))
	v.handleKey(char('n'))
	assert.Equal(t, 1, v.sess.Engine().Level().Index)

	v.handleKey(char('l'))
	assert.Equal(t, 0, v.sess.Engine().Level().Index)
	assert.Len(t, v.sess.Engine().Towers(), 1)
}

func TestView_TickPlaysCues(t *testing.T) {
	v, sound := newTestView(t)

	// An undefended level: every enemy leaks eventually
	for i := 0; i < 60*30 && len(sound.played) == 0; i++ {
		v.tick(1.0 / 60)
	}
	require.NotEmpty(t, sound.played)
	assert.Equal(t, audio.CueLeak, sound.played[0])
}

func TestView_TickPausedIsSilent(t *testing.T) {
	v, sound := newTestView(t)
	v.handleKey(char('p'))

	v.tick(1)
	assert.Empty(t, sound.played)
	assert.Zero(t, v.sess.Engine().Elapsed())
}

func TestView_Draw(t *testing.T) {
	v, _ := newTestView(t)
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(120, 20)

	v.handleKey(char('1'))
	v.draw(screen)

	r, _, style, _ := screen.GetContent(0, 2)
	assert.Equal(t, 'A', r, "arrow tower glyph")
	_, _, attrs := style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrReverse, "cursor is highlighted")

	r, _, _, _ = screen.GetContent(5, 3)
	assert.Equal(t, '.', r, "path tile")

	r, _, _, _ = screen.GetContent(0, 9)
	assert.Equal(t, 'G', r, "HUD starts with gold")
}

func TestGlyphAndCell(t *testing.T) {
	assert.Equal(t, 'C', glyph("cannon"))
	assert.Equal(t, '?', glyph("  "))
	assert.Equal(t, entity.Tile{X: 2, Y: 3}, cellOf(entity.Vec2{X: 130, Y: 200}, 64))
}

func TestSelectionText(t *testing.T) {
	assert.Empty(t, selectionText(nil))
	assert.Equal(t, "(1,2) empty", selectionText(&system.Selection{Tile: entity.Tile{X: 1, Y: 2}}))
}
