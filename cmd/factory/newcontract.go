package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/sealbid-network/sealbid-factory/internal/core/application"
	httpinterface "github.com/sealbid-network/sealbid-factory/internal/interfaces/http"
)

var newcontract = cli.Command{
	Name:  "newcontract",
	Usage: "register the auction contract version new auctions are launched from",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:  "code-id",
			Usage: "the code id of the auction contract",
		},
		&cli.StringFlag{
			Name:  "code-hash",
			Usage: "the code hash of the auction contract",
		},
	},
	Action: newContractAction,
}

func newContractAction(ctx *cli.Context) error {
	if _, err := executeMsg(httpinterface.HandleMsg{
		NewAuctionContract: &httpinterface.NewAuctionContractMsg{
			AuctionContract: application.AuctionContractInfo{
				CodeID:   ctx.Uint64("code-id"),
				CodeHash: ctx.String("code-hash"),
			},
		},
	}); err != nil {
		return err
	}

	fmt.Println("auction contract has been updated")
	return nil
}
