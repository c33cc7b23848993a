package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/time/rate"

	"lobby/client/game"
	"lobby/client/graphics"
	"lobby/client/input"
	"lobby/client/network"
	"lobby/client/scene"
	"lobby/config"
	"lobby/logging"
	"lobby/protocol"
)

func main() {
	cfg, err := config.LoadClient(os.Args[1:], os.LookupEnv)
	if err != nil {
		bootLog := logging.Console(false)
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logging.Console(cfg.Debug).With().Str("session", uuid.NewString()).Logger()

	dragButton, err := input.ParseButton(cfg.DragButton)
	if err != nil {
		log.Fatal().Err(err).Msg("drag button")
	}

	moveRate := rate.Inf
	if cfg.MoveRate > 0 {
		moveRate = rate.Limit(cfg.MoveRate)
	}

	channel, err := network.Dial(cfg.LocalAddr, cfg.ServerAddr, protocol.NewCodec(), log, network.WithMoveRate(moveRate))
	if err != nil {
		log.Fatal().Err(err).Msg("open channel")
	}
	log.Info().Stringer("local", channel.LocalAddr()).Str("server", cfg.ServerAddr).Msg("channel open")

	renderer, err := graphics.NewEbiten(cfg.Width, cfg.Height, cfg.Debug)
	if err != nil {
		log.Fatal().Err(err).Msg("renderer")
	}

	opts := scene.DefaultOptions()
	opts.Width, opts.Height = cfg.Width, cfg.Height
	opts.Rooms = cfg.Rooms
	opts.DragButton = dragButton
	opts.AvatarSpeed = float32(cfg.AvatarSpeed)

	lobby, err := scene.NewLobby(scene.Deps{
		Backend: renderer,
		Log:     log,
		Options: opts,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("lobby")
	}

	g := game.New(lobby, channel, input.NewEbiten(), renderer, log, cfg.Width, cfg.Height)
	if err := g.Start(); err != nil {
		log.Fatal().Err(err).Msg("start")
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Lobby")
	runErr := ebiten.RunGame(g)

	if err := g.Shutdown(); err != nil {
		log.Warn().Err(err).Msg("shutdown")
	}
	if runErr != nil {
		log.Fatal().Err(runErr).Msg("game loop")
	}
}
