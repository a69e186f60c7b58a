package main

import (
	"github.com/urfave/cli/v2"

	httpinterface "github.com/sealbid-network/sealbid-factory/internal/interfaces/http"
)

var listmine = cli.Command{
	Name:  "listmine",
	Usage: "list the auctions an address takes part in",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "address",
			Usage: "the address to list auctions for, defaults to the configured sender",
		},
		&cli.StringFlag{
			Name:  "key",
			Usage: "the viewing key of the address",
		},
		&cli.StringFlag{
			Name:  "filter",
			Usage: "restrict the listing to one of: active, closed, all",
			Value: "all",
		},
	},
	Action: listMineAction,
}

func listMineAction(ctx *cli.Context) error {
	address := ctx.String("address")
	if address == "" {
		sender, err := getSenderAddress()
		if err != nil {
			return err
		}
		address = sender
	}

	answer, err := queryMsg(httpinterface.QueryMsg{
		ListMyAuctions: &httpinterface.ListMyAuctionsMsg{
			Address:    address,
			ViewingKey: ctx.String("key"),
			Filter:     ctx.String("filter"),
		},
	})
	if err != nil {
		return err
	}

	printRespJSON(answer.ListMyAuctions)
	return nil
}
