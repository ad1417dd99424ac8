package main

import (
	"github.com/bornholm/roster/internal/command"
	"github.com/bornholm/roster/internal/command/export"
	"github.com/bornholm/roster/internal/command/people"
	"github.com/bornholm/roster/internal/command/serve"
)

func main() {
	command.Main(
		"roster", "People directory client and server",
		serve.Command(),
		export.Command(),
		people.Command(),
	)
}
