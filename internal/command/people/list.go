package people

import (
	"github.com/bornholm/roster/internal/command/common"
	"github.com/bornholm/roster/internal/core/service"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const flagSearch = "search"

func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List people, optionally filtered by a search term",
		Flags: common.WithCommonFlags(
			&cli.StringFlag{
				Name:    flagSearch,
				Aliases: []string{"q"},
				Usage:   "Match people by name or role",
			},
		),
		Action: func(cCtx *cli.Context) error {
			directory, err := getDirectory(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			defer directory.Close()

			funcs := make([]service.ListPeopleOptionFunc, 0)
			if search := cCtx.String(flagSearch); search != "" {
				funcs = append(funcs, service.WithListPeopleSearch(search))
			}

			entry, err := directory.ListPeople(cCtx.Context, funcs...)
			if err != nil {
				return errors.Wrap(err, "could not list people")
			}

			return printJSON(entry.People)
		},
	}
}
