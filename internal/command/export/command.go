package export

import (
	"log/slog"

	"github.com/bornholm/roster/internal/fixture"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

const (
	flagOutput = "output"
	flagSeed   = "seed"
	flagCount  = "count"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Generate the static users collection served in production",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagOutput,
				Aliases: []string{"o"},
				Value:   "data/users.json",
				Usage:   "Path of the generated JSON collection",
			},
			&cli.Int64Flag{
				Name:  flagSeed,
				Value: 42,
				Usage: "Seed of the generated collection",
			},
			&cli.IntFlag{
				Name:  flagCount,
				Value: 25,
				Usage: "Number of generated people",
			},
		},
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			output := cCtx.String(flagOutput)
			people := fixture.Generate(cCtx.Int64(flagSeed), cCtx.Int(flagCount))

			size, err := fixture.Export(afero.NewOsFs(), output, people)
			if err != nil {
				return errors.Wrap(err, "could not export collection")
			}

			slog.InfoContext(ctx, "collection exported",
				slog.String("output", output),
				slog.Int("people", len(people)),
				slog.String("size", humanize.Bytes(uint64(size))),
			)

			return nil
		},
	}
}
