package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	httpinterface "github.com/sealbid-network/sealbid-factory/internal/interfaces/http"
)

var unsubscribewebhook = cli.Command{
	Name:  "unsubscribewebhook",
	Usage: "remove a registered webhook",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "action",
			Usage: "the action the webhook is notified about",
		},
		&cli.StringFlag{
			Name:  "id",
			Usage: "the id of the webhook to remove",
		},
	},
	Action: unsubscribeWebhookAction,
}

func unsubscribeWebhookAction(ctx *cli.Context) error {
	if _, err := executeMsg(httpinterface.HandleMsg{
		UnsubscribeWebhook: &httpinterface.UnsubscribeWebhookMsg{
			Action: ctx.String("action"),
			ID:     ctx.String("id"),
		},
	}); err != nil {
		return err
	}

	fmt.Println("webhook has been removed")
	return nil
}
