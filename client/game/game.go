package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"lobby/client/graphics"
	"lobby/client/input"
	"lobby/client/scene"
	"lobby/protocol"
)

// Channel is the network the game lends to its scenes.
type Channel interface {
	scene.GameContext
	Close() error
}

// Renderer is a graphics backend that draws into ebiten's screen.
type Renderer interface {
	graphics.Backend
	Begin(screen *ebiten.Image)
}

// Game drives exactly one scene. ebiten calls Update then Draw every
// frame, which gives the order: input, switch, network and update, then
// render and present. Input therefore reaches the screen one frame later.
type Game struct {
	scene    scene.Scene
	channel  Channel
	input    input.Source
	renderer Renderer
	log      zerolog.Logger

	width, height int
	quit          bool
}

func New(first scene.Scene, channel Channel, source input.Source, renderer Renderer, log zerolog.Logger, width, height int) *Game {
	return &Game{
		scene:    first,
		channel:  channel,
		input:    source,
		renderer: renderer,
		log:      log,
		width:    width,
		height:   height,
	}
}

// Scene is the active scene.
func (g *Game) Scene() scene.Scene {
	return g.scene
}

// Start registers with the server for lobby broadcasts.
func (g *Game) Start() error {
	if err := g.channel.Send(protocol.AddToListenersRequest{}); err != nil {
		return fmt.Errorf("register listener: %w", err)
	}
	g.log.Info().Msg("listening for lobby updates")
	return nil
}

// Shutdown unregisters from the server, releases the active scene and
// closes the channel.
func (g *Game) Shutdown() error {
	sendErr := g.channel.Send(protocol.RemoveFromListeners{})
	if sendErr != nil {
		g.log.Warn().Err(sendErr).Msg("unregister listener")
	}
	if g.scene != nil {
		g.scene.Release()
		g.scene = nil
	}
	if err := g.channel.Close(); err != nil {
		return fmt.Errorf("close channel: %w", err)
	}
	return sendErr
}

func (g *Game) Update() error {
	for _, ev := range g.input.Poll() {
		if ev.Kind == input.Quit {
			g.quit = true
			continue
		}
		g.scene.HandleInput(g.channel, ev)
	}

	if next := g.scene.SwitchScene(); next != nil {
		prev := g.scene
		g.scene = next
		prev.Release()
		g.log.Info().Str("from", fmt.Sprintf("%T", prev)).Str("to", fmt.Sprintf("%T", next)).Msg("scene switched")
	}

	if g.quit {
		return ebiten.Termination
	}

	g.scene.Update(g.channel)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Begin(screen)
	g.scene.Render()
	g.renderer.PresentFrame()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
