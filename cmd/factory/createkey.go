package main

import (
	"fmt"

	"github.com/thanhpk/randstr"
	"github.com/urfave/cli/v2"

	httpinterface "github.com/sealbid-network/sealbid-factory/internal/interfaces/http"
)

var createkey = cli.Command{
	Name:  "createkey",
	Usage: "create a fresh viewing key for the configured sender",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "entropy",
			Usage: "entropy to mix into the key derivation, generated when omitted",
		},
	},
	Action: createKeyAction,
}

func createKeyAction(ctx *cli.Context) error {
	entropy := ctx.String("entropy")
	if entropy == "" {
		entropy = randstr.Hex(32)
	}

	answer, err := executeMsg(httpinterface.HandleMsg{
		CreateViewingKey: &httpinterface.CreateViewingKeyMsg{Entropy: entropy},
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("viewing key:", answer.ViewingKey.Key)
	return nil
}
