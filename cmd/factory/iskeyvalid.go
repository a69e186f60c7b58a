package main

import (
	"github.com/urfave/cli/v2"

	httpinterface "github.com/sealbid-network/sealbid-factory/internal/interfaces/http"
)

var iskeyvalid = cli.Command{
	Name:  "iskeyvalid",
	Usage: "check a viewing key against the one set for an address",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "address",
			Usage: "the address the key belongs to, defaults to the configured sender",
		},
		&cli.StringFlag{
			Name:  "key",
			Usage: "the viewing key to check",
		},
	},
	Action: isKeyValidAction,
}

func isKeyValidAction(ctx *cli.Context) error {
	address := ctx.String("address")
	if address == "" {
		sender, err := getSenderAddress()
		if err != nil {
			return err
		}
		address = sender
	}

	answer, err := queryMsg(httpinterface.QueryMsg{
		IsKeyValid: &httpinterface.IsKeyValidMsg{
			Address:    address,
			ViewingKey: ctx.String("key"),
		},
	})
	if err != nil {
		return err
	}

	printRespJSON(answer.IsKeyValid)
	return nil
}
