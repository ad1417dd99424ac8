package people

import (
	"github.com/bornholm/roster/internal/command/common"
	"github.com/bornholm/roster/internal/core/port"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	flagName   = "name"
	flagRole   = "role"
	flagAvatar = "avatar-url"
)

func CreateCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Add a person to the directory",
		Flags: common.WithCommonFlags(
			&cli.StringFlag{
				Name:     flagName,
				Aliases:  []string{"n"},
				Usage:    "Full name of the person",
				Required: true,
			},
			&cli.StringFlag{
				Name:     flagRole,
				Aliases:  []string{"r"},
				Usage:    "Role of the person",
				Required: true,
			},
			&cli.StringFlag{
				Name:  flagAvatar,
				Usage: "Avatar URL of the person",
			},
		),
		Action: func(cCtx *cli.Context) error {
			directory, err := getDirectory(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			defer directory.Close()

			person, err := directory.CreatePerson(cCtx.Context, port.PersonAttrs{
				Name:      cCtx.String(flagName),
				Role:      cCtx.String(flagRole),
				AvatarURL: cCtx.String(flagAvatar),
			})
			if err != nil {
				return errors.Wrap(err, "could not create person")
			}

			return printJSON(person)
		},
	}
}
