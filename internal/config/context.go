package config

import (
	"log"
	"os"

	"github.com/gopcb/pcbcore/board"
	"github.com/gopcb/pcbcore/geom"
	"github.com/gopcb/pcbcore/place"
)

// Logger receives progress and diagnostic messages from the placer and
// router. Message collects the scattered log.Println/log.Fatal calls a
// hand-rolled version would have behind a single narrow interface, so
// callers can redirect or silence it without touching core packages.
type Logger interface {
	Message(format string, args ...interface{})
}

// stdLogger satisfies Logger by writing to a standard log.Logger.
type stdLogger struct{ l *log.Logger }

func (s stdLogger) Message(format string, args ...interface{}) { s.l.Printf(format, args...) }

// NewStdLogger returns a Logger that writes to os.Stderr with the
// standard library's default log.Logger formatting.
func NewStdLogger() Logger {
	return stdLogger{l: log.New(os.Stderr, "", log.LstdFlags)}
}

// Context bundles everything the placer and router need that isn't
// board geometry itself: board bounds, named route styles (with their
// bloat precomputed once here rather than recomputed per query), the
// annealer's cost parameters, and a Logger. Callers should treat a
// Context as read-only after NewContext returns it.
type Context struct {
	Board geom.Box

	styles      map[string]board.RouteStyle
	styleBloats map[string]geom.Coord

	PlaceCost  place.CostParams
	AnnealSeed int64

	Passes    int
	Smoothes  int
	ViaOn     bool
	AllowJogs bool

	Logger Logger
}

// NewContext builds a Context from loaded Settings. A nil logger
// defaults to NewStdLogger.
func NewContext(s Settings, logger Logger) *Context {
	if logger == nil {
		logger = NewStdLogger()
	}
	styles := make(map[string]board.RouteStyle, len(s.RouteStyles))
	bloats := make(map[string]geom.Coord, len(s.RouteStyles))
	for _, style := range s.RouteStyles {
		styles[style.Name] = style
		bloats[style.Name] = style.Bloat()
	}
	if _, ok := styles[board.DefaultRouteStyle.Name]; !ok {
		styles[board.DefaultRouteStyle.Name] = board.DefaultRouteStyle
		bloats[board.DefaultRouteStyle.Name] = board.DefaultRouteStyle.Bloat()
	}
	return &Context{
		Board:       geom.NewBox(0, 0, s.BoardWidth, s.BoardHeight),
		styles:      styles,
		styleBloats: bloats,
		PlaceCost:   s.PlaceCost,
		AnnealSeed:  s.AnnealSeed,
		Passes:      s.Passes,
		Smoothes:    s.Smoothes,
		ViaOn:       s.ViaOn,
		AllowJogs:   s.AllowJogs,
		Logger:      logger,
	}
}

// Style returns the named route style, or board.DefaultRouteStyle if
// name is unknown.
func (c *Context) Style(name string) board.RouteStyle {
	if s, ok := c.styles[name]; ok {
		return s
	}
	return board.DefaultRouteStyle
}

// StyleBloat returns the named style's precomputed bloat
// (keepaway + ceil(thick/2)).
func (c *Context) StyleBloat(name string) geom.Coord {
	if b, ok := c.styleBloats[name]; ok {
		return b
	}
	return board.DefaultRouteStyle.Bloat()
}
