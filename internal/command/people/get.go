package people

import (
	"github.com/bornholm/roster/internal/command/common"
	"github.com/bornholm/roster/internal/core/model"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show a single person",
		ArgsUsage: "<id>",
		Flags:     common.WithCommonFlags(),
		Action: func(cCtx *cli.Context) error {
			rawID := cCtx.Args().First()
			if rawID == "" {
				return errors.New("missing person id")
			}

			directory, err := getDirectory(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			defer directory.Close()

			entry, err := directory.GetPerson(cCtx.Context, model.PersonID(rawID))
			if err != nil {
				return errors.Wrapf(err, "could not get person '%s'", rawID)
			}

			person, exists := entry.Person()
			if !exists {
				return errors.Errorf("no person '%s'", rawID)
			}

			return printJSON(person)
		},
	}
}
