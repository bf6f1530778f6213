package main

import (
	"context"
	"os"
	"os/signal"

	marqueecmder "github.com/papercomputeco/marquee/cmd/marquee"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := marqueecmder.NewMarqueeCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
