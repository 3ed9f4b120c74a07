// Command screens-raylib shows a screen catalog in a raylib window.
package main

import (
	"log/slog"

	"github.com/waozixyz/kryon/screens/internal/app"
	"github.com/waozixyz/kryon/screens/render/raylib"
)

func main() {
	app.Run(func(log *slog.Logger) app.Renderer {
		return raylib.NewRaylibRenderer(log)
	}, nil)
}
