package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/onvault/quorum"
	"github.com/onvault/quorum/x/delegation"
)

// delegationDoc is the JSON shape of a signed delegation as printed on the
// output. All binary fields are hex encoded.
type delegationDoc struct {
	Owner     string `json:"owner"`
	ActionID  string `json:"action_id"`
	Executor  string `json:"executor"`
	Nonce     int64  `json:"nonce"`
	Pubkey    string `json:"pubkey"`
	Signature string `json:"signature"`
}

func cmdSignDelegation(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign an offline delegation for an action. The action identifier is read
from the input, hex encoded, as printed by the action-id command.

The produced delegation authorizes only the given executor to submit the
action, and only while the signer's nonce has the given value. It can be
collected and attached to a submission by whoever runs the engine.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", env("QUORUMCLI_PRIV_KEY", os.Getenv("HOME")+"/.quorum.priv.key"),
			"Path to the private key file. You can use QUORUMCLI_PRIV_KEY environment variable to set it.")
		executorFl = fl.String("executor", "", "Hex encoded address of the owner that will submit the action.")
		nonceFl    = fl.Int64("nonce", 0, "Current delegation nonce of the signing owner.")
	)
	fl.Parse(args)

	rawExec, err := hex.DecodeString(*executorFl)
	if err != nil {
		return fmt.Errorf("cannot decode executor address: %s", err)
	}
	executor := quorum.Address(rawExec)
	if err := executor.Validate(); err != nil {
		return fmt.Errorf("invalid executor address: %s", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("cannot read action identifier: %s", err)
	}
	rawID, err := hex.DecodeString(strings.TrimSpace(line))
	if err != nil {
		return fmt.Errorf("cannot decode action identifier: %s", err)
	}
	actionID := quorum.ActionID(rawID)
	if err := actionID.Validate(); err != nil {
		return fmt.Errorf("invalid action identifier: %s", err)
	}

	key, err := loadPrivateKey(*keyPathFl)
	if err != nil {
		return err
	}

	del, err := delegation.SignDelegation(key, actionID, executor, *nonceFl)
	if err != nil {
		return fmt.Errorf("cannot sign delegation: %s", err)
	}

	doc := delegationDoc{
		Owner:     key.PublicKey().Address().String(),
		ActionID:  actionID.String(),
		Executor:  executor.String(),
		Nonce:     *nonceFl,
		Pubkey:    hex.EncodeToString(del.Pubkey.Ed25519),
		Signature: hex.EncodeToString(del.Signature.Ed25519),
	}
	enc := json.NewEncoder(output)
	enc.SetIndent("", "\t")
	return enc.Encode(doc)
}
