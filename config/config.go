package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
)

var (
	ErrInvalidEnv   = errors.New("invalid environment value")
	ErrInvalidValue = errors.New("invalid configuration value")
)

// Lookup is the signature of os.LookupEnv.
type Lookup func(key string) (string, bool)

type Client struct {
	ServerAddr  string
	LocalAddr   string
	Width       int
	Height      int
	Rooms       int
	DragButton  string
	AvatarSpeed float64
	// MoveRate caps MemberMove datagrams per second. Zero means one per tick.
	MoveRate float64
	Debug    bool
}

type Server struct {
	ListenAddr   string
	Rooms        int
	RoomCapacity int
	Debug        bool
}

// LoadClient reads flags from args. Every flag defaults to its LOBBY_*
// environment variable when set.
func LoadClient(args []string, lookup Lookup) (Client, error) {
	env := environment{lookup: lookup}
	cfg := Client{
		ServerAddr:  env.stringValue("LOBBY_SERVER_ADDR", "127.0.0.1:45000"),
		LocalAddr:   env.stringValue("LOBBY_LOCAL_ADDR", ":0"),
		Width:       600,
		Height:      400,
		Rooms:       env.intValue("LOBBY_ROOMS", 4),
		DragButton:  env.stringValue("LOBBY_DRAG_BUTTON", "right"),
		AvatarSpeed: env.floatValue("LOBBY_AVATAR_SPEED", 0.25),
		MoveRate:    env.floatValue("LOBBY_MOVE_RATE", 0),
		Debug:       env.boolValue("LOBBY_DEBUG", false),
	}
	if env.err != nil {
		return Client{}, env.err
	}

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerAddr, "server", cfg.ServerAddr, "lobby server address")
	fs.StringVar(&cfg.LocalAddr, "local", cfg.LocalAddr, "local UDP bind address")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "viewport width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "viewport height")
	fs.IntVar(&cfg.Rooms, "rooms", cfg.Rooms, "number of lobby rooms")
	fs.StringVar(&cfg.DragButton, "drag-button", cfg.DragButton, "pointer button that drags the avatar (left, right, middle)")
	fs.Float64Var(&cfg.AvatarSpeed, "speed", cfg.AvatarSpeed, "avatar speed in pixels per millisecond")
	fs.Float64Var(&cfg.MoveRate, "move-rate", cfg.MoveRate, "max move messages per second, 0 for every tick")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "debug logging and overlay")
	if err := fs.Parse(args); err != nil {
		return Client{}, err
	}

	return cfg, cfg.validate()
}

func (c Client) validate() error {
	switch {
	case c.ServerAddr == "":
		return fmt.Errorf("%w: empty server address", ErrInvalidValue)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidValue, c.Width, c.Height)
	case c.Rooms < 1:
		return fmt.Errorf("%w: rooms %d", ErrInvalidValue, c.Rooms)
	case c.AvatarSpeed < 0:
		return fmt.Errorf("%w: speed %v", ErrInvalidValue, c.AvatarSpeed)
	case c.MoveRate < 0:
		return fmt.Errorf("%w: move rate %v", ErrInvalidValue, c.MoveRate)
	}
	return nil
}

func LoadServer(args []string, lookup Lookup) (Server, error) {
	env := environment{lookup: lookup}
	cfg := Server{
		ListenAddr:   env.stringValue("LOBBY_LISTEN_ADDR", ":45000"),
		Rooms:        env.intValue("LOBBY_ROOMS", 4),
		RoomCapacity: env.intValue("LOBBY_ROOM_CAPACITY", 2),
		Debug:        env.boolValue("LOBBY_DEBUG", false),
	}
	if env.err != nil {
		return Server{}, env.err
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "UDP listen address")
	fs.IntVar(&cfg.Rooms, "rooms", cfg.Rooms, "number of rooms")
	fs.IntVar(&cfg.RoomCapacity, "capacity", cfg.RoomCapacity, "members per room")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "debug logging")
	if err := fs.Parse(args); err != nil {
		return Server{}, err
	}

	if cfg.Rooms < 1 {
		return Server{}, fmt.Errorf("%w: rooms %d", ErrInvalidValue, cfg.Rooms)
	}
	if cfg.RoomCapacity < 1 {
		return Server{}, fmt.Errorf("%w: capacity %d", ErrInvalidValue, cfg.RoomCapacity)
	}
	return cfg, nil
}

// environment keeps the first parse error so defaults can be read in one block.
type environment struct {
	lookup Lookup
	err    error
}

func (e *environment) stringValue(key, def string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return def
}

func (e *environment) intValue(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v)
		return def
	}
	return n
}

func (e *environment) floatValue(key string, def float64) float64 {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, v)
		return def
	}
	return f
}

func (e *environment) boolValue(key string, def bool) bool {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v)
		return def
	}
	return b
}

func (e *environment) fail(key, value string) {
	if e.err == nil {
		e.err = fmt.Errorf("%w: %s=%q", ErrInvalidEnv, key, value)
	}
}
