package people

import (
	"encoding/json"
	"os"

	"github.com/bornholm/roster/internal/adapter/httpapi"
	"github.com/bornholm/roster/internal/command/common"
	"github.com/bornholm/roster/internal/core/service"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "people",
		Usage: "Query and mutate the people directory",
		Subcommands: []*cli.Command{
			ListCommand(),
			GetCommand(),
			CreateCommand(),
		},
	}
}

func getDirectory(cCtx *cli.Context) (*service.Directory, error) {
	rosterClient, err := common.GetRosterClient(cCtx)
	if err != nil {
		return nil, errors.Wrap(err, "could not create roster client")
	}

	directory := service.NewDirectory(httpapi.NewDataSource(rosterClient))

	return directory, nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
