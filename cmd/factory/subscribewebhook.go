package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	httpinterface "github.com/sealbid-network/sealbid-factory/internal/interfaces/http"
)

var subscribewebhook = cli.Command{
	Name:  "subscribewebhook",
	Usage: "register a webhook notified about an action",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "action",
			Usage: "the action for which the webhook gets notified, * for all",
		},
		&cli.StringFlag{
			Name:  "endpoint",
			Usage: "the endpoint where to notify the webhook",
			Value: "",
		},
		&cli.StringFlag{
			Name:  "secret",
			Usage: "the eventual secret to authenticate requests",
			Value: "",
		},
	},
	Action: subscribeWebhookAction,
}

func subscribeWebhookAction(ctx *cli.Context) error {
	answer, err := executeMsg(httpinterface.HandleMsg{
		SubscribeWebhook: &httpinterface.SubscribeWebhookMsg{
			Action:   ctx.String("action"),
			Endpoint: ctx.String("endpoint"),
			Secret:   ctx.String("secret"),
		},
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("hook id:", answer.SubscribeWebhook.ID)
	return nil
}
