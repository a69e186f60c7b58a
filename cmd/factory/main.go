package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/urfave/cli/v2"

	httpinterface "github.com/sealbid-network/sealbid-factory/internal/interfaces/http"
)

var (
	factoryDataDir = btcutil.AppDataDir("factory-operator", false)
	statePath      = path.Join(factoryDataDir, "state.json")

	httpClient = &http.Client{Timeout: 15 * time.Second}
)

func main() {
	app := cli.NewApp()

	app.Version = "0.2.1"
	app.Name = "factory operator CLI"
	app.Usage = "Command line interface for factoryd daemon operators"
	app.Commands = append(
		app.Commands,
		&config,
		&info,
		&listactive,
		&listclosed,
		&listmine,
		&iskeyvalid,
		&createkey,
		&setkey,
		&setstatus,
		&newcontract,
		&subscribewebhook,
		&unsubscribewebhook,
		&listwebhooks,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := ioutil.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	//nolint
	json.Unmarshal(file, &data)

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(factoryDataDir); os.IsNotExist(err) {
		//nolint
		os.Mkdir(factoryDataDir, os.ModeDir|0755)
	}

	file, err := os.OpenFile(statePath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	currentData, err := getState()
	if err != nil {
		return err
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(statePath, jsonString, 0755); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string, 0)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

func getDaemonAddress() (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	address, ok := state["daemon_address"]
	if !ok {
		return "", errors.New("set daemon_address with `config set daemon_address`")
	}
	return address, nil
}

func getSenderAddress() (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	sender, ok := state["sender_address"]
	if !ok {
		return "", errors.New("set sender_address with `config set sender_address`")
	}
	return sender, nil
}

// executeMsg sends a state-changing message to the daemon on behalf of the
// configured sender and fails on a failure status.
func executeMsg(msg httpinterface.HandleMsg) (*httpinterface.HandleAnswer, error) {
	daemonAddress, err := getDaemonAddress()
	if err != nil {
		return nil, err
	}
	sender, err := getSenderAddress()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(
		http.MethodPost, daemonAddress+"/v1/execute", bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(httpinterface.SenderHeader, sender)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to reach the daemon: %v", err)
	}
	defer resp.Body.Close()

	var answer httpinterface.HandleAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, fmt.Errorf("unable to decode response: %v", err)
	}
	if answer.Status != nil && answer.Status.Status == httpinterface.StatusFailure {
		return nil, errors.New(answer.Status.Message)
	}

	return &answer, nil
}

// queryMsg sends a read request to the daemon and fails on a viewing key
// error.
func queryMsg(msg httpinterface.QueryMsg) (*httpinterface.QueryAnswer, error) {
	daemonAddress, err := getDaemonAddress()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Post(
		daemonAddress+"/v1/query", "application/json", bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to reach the daemon: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := ioutil.ReadAll(resp.Body)
		return nil, errors.New(string(bytes.TrimSpace(errBody)))
	}

	var answer httpinterface.QueryAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, fmt.Errorf("unable to decode response: %v", err)
	}
	if answer.ViewingKeyError != nil {
		return nil, errors.New(answer.ViewingKeyError.Error)
	}

	return &answer, nil
}

func printRespJSON(resp interface{}) {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Println(string(jsonBytes))
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[factory] %v\n", err)
	}
	os.Exit(1)
}
