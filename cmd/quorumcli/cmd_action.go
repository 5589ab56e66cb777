package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/onvault/quorum"
	"github.com/onvault/quorum/x/executor"
)

// stepDoc is the JSON shape of one step as read from the input. Target is
// hex encoded, payload is base64 (default JSON bytes encoding).
type stepDoc struct {
	Target  quorum.Address `json:"target"`
	Value   int64          `json:"value"`
	Payload []byte         `json:"payload"`
}

func cmdActionID(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Compute the action identifier of a batch of steps, read from the input as
a JSON array:

  [{"target": "<hex>", "value": 1, "payload": "<base64>"}, ...]

The identifier binds the steps to the given action counter value. Query
the engine for the current counter to predict the identifier of the next
submission.
`)
		fl.PrintDefaults()
	}
	var (
		counterFl = fl.Int64("counter", 0, "Action counter value the identifier is derived for.")
	)
	fl.Parse(args)

	var docs []stepDoc
	if err := json.NewDecoder(input).Decode(&docs); err != nil {
		return fmt.Errorf("cannot decode steps: %s", err)
	}
	steps := make([]quorum.Step, len(docs))
	for i, d := range docs {
		steps[i] = quorum.Step{Target: d.Target, Value: d.Value, Payload: d.Payload}
	}
	if err := quorum.ValidateSteps(steps); err != nil {
		return fmt.Errorf("invalid steps: %s", err)
	}

	_, err := fmt.Fprintln(output, executor.ComputeActionID(steps, *counterFl))
	return err
}
