package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"

	"github.com/sealbid-network/sealbid-factory/internal/core/application"
)

var info = cli.Command{
	Name:   "info",
	Usage:  "get info about the running factory",
	Action: infoAction,
}

func infoAction(ctx *cli.Context) error {
	daemonAddress, err := getDaemonAddress()
	if err != nil {
		return err
	}

	resp, err := httpClient.Get(daemonAddress + "/v1/info")
	if err != nil {
		return fmt.Errorf("unable to reach the daemon: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("daemon replied with status %s", resp.Status)
	}

	var factoryInfo application.FactoryInfo
	if err := json.NewDecoder(resp.Body).Decode(&factoryInfo); err != nil {
		return fmt.Errorf("unable to decode response: %v", err)
	}

	printRespJSON(factoryInfo)
	return nil
}
