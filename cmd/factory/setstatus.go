package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	httpinterface "github.com/sealbid-network/sealbid-factory/internal/interfaces/http"
)

var setstatus = cli.Command{
	Name:  "setstatus",
	Usage: "halt or resume the creation of new auctions",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "stop",
			Usage: "halt creation when set, resume it otherwise",
		},
	},
	Action: setStatusAction,
}

func setStatusAction(ctx *cli.Context) error {
	stop := ctx.Bool("stop")

	if _, err := executeMsg(httpinterface.HandleMsg{
		SetStatus: &httpinterface.SetStatusMsg{Stop: stop},
	}); err != nil {
		return err
	}

	if stop {
		fmt.Println("factory has been stopped")
	} else {
		fmt.Println("factory is running")
	}
	return nil
}
