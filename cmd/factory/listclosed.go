package main

import (
	"github.com/urfave/cli/v2"

	httpinterface "github.com/sealbid-network/sealbid-factory/internal/interfaces/http"
)

var listclosed = cli.Command{
	Name:  "listclosed",
	Usage: "list a page of the closed auctions ledger, most recent first",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:  "before",
			Usage: "list only auctions closed before this ledger position",
		},
		&cli.UintFlag{
			Name:  "page-size",
			Usage: "the number of auctions per page",
		},
	},
	Action: listClosedAction,
}

func listClosedAction(ctx *cli.Context) error {
	msg := httpinterface.ListClosedAuctionsMsg{}
	if ctx.IsSet("before") {
		before := ctx.Uint64("before")
		msg.Before = &before
	}
	if ctx.IsSet("page-size") {
		pageSize := uint32(ctx.Uint("page-size"))
		msg.PageSize = &pageSize
	}

	answer, err := queryMsg(httpinterface.QueryMsg{ListClosedAuctions: &msg})
	if err != nil {
		return err
	}

	printRespJSON(answer.ListClosedAuctions)
	return nil
}
