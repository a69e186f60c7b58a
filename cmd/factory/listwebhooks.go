package main

import (
	"github.com/urfave/cli/v2"

	httpinterface "github.com/sealbid-network/sealbid-factory/internal/interfaces/http"
)

var listwebhooks = cli.Command{
	Name:   "listwebhooks",
	Usage:  "list all registered webhooks",
	Action: listWebhooksAction,
}

func listWebhooksAction(ctx *cli.Context) error {
	answer, err := executeMsg(httpinterface.HandleMsg{
		ListWebhooks: &httpinterface.ListWebhooksMsg{},
	})
	if err != nil {
		return err
	}

	printRespJSON(answer.ListWebhooks)
	return nil
}
