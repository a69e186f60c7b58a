package main

import (
	"github.com/urfave/cli/v2"

	httpinterface "github.com/sealbid-network/sealbid-factory/internal/interfaces/http"
)

var listactive = cli.Command{
	Name:   "listactive",
	Usage:  "list all active auctions sorted by token pair",
	Action: listActiveAction,
}

func listActiveAction(ctx *cli.Context) error {
	answer, err := queryMsg(httpinterface.QueryMsg{
		ListActiveAuctions: &httpinterface.ListActiveAuctionsMsg{},
	})
	if err != nil {
		return err
	}

	printRespJSON(answer.ListActiveAuctions)
	return nil
}
