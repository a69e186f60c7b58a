package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	httpinterface "github.com/sealbid-network/sealbid-factory/internal/interfaces/http"
)

var setkey = cli.Command{
	Name:  "setkey",
	Usage: "set the viewing key of the configured sender",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "key",
			Usage: "the viewing key to set",
		},
	},
	Action: setKeyAction,
}

func setKeyAction(ctx *cli.Context) error {
	key := ctx.String("key")
	if key == "" {
		return errors.New("key must not be empty")
	}

	if _, err := executeMsg(httpinterface.HandleMsg{
		SetViewingKey: &httpinterface.SetViewingKeyMsg{Key: key},
	}); err != nil {
		return err
	}

	fmt.Println("viewing key has been set")
	return nil
}
