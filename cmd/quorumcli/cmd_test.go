package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onvault/quorum"
	"github.com/onvault/quorum/crypto"
	"github.com/onvault/quorum/quorumtest"
	"github.com/onvault/quorum/x/delegation"
	"github.com/onvault/quorum/x/executor"
)

func tempKeyPath(t *testing.T) (string, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "quorumcli")
	if err != nil {
		t.Fatalf("cannot create temporary directory: %s", err)
	}
	return filepath.Join(dir, "priv.key"), func() { os.RemoveAll(dir) }
}

func TestKeygenAndKeyaddr(t *testing.T) {
	keyPath, cleanup := tempKeyPath(t)
	defer cleanup()

	err := cmdKeygen(nil, ioutil.Discard, []string{"-key", keyPath})
	require.NoError(t, err)

	// a second run must refuse to clobber the key
	err = cmdKeygen(nil, ioutil.Discard, []string{"-key", keyPath})
	require.Error(t, err)

	var out bytes.Buffer
	err = cmdKeyaddr(nil, &out, []string{"-key", keyPath})
	require.NoError(t, err)

	raw, err := hex.DecodeString(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	require.NoError(t, quorum.Address(raw).Validate())

	// bech32 output carries the requested prefix
	out.Reset()
	err = cmdKeyaddr(nil, &out, []string{"-key", keyPath, "-bech32", "vault"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "vault1"))
}

func TestActionIDCommand(t *testing.T) {
	target := quorumtest.NewAddress()
	steps := []quorum.Step{
		{Target: target, Value: 77, Payload: []byte("pay")},
	}
	input, err := json.Marshal([]stepDoc{
		{Target: target, Value: 77, Payload: []byte("pay")},
	})
	require.NoError(t, err)

	var out bytes.Buffer
	err = cmdActionID(bytes.NewReader(input), &out, []string{"-counter", "4"})
	require.NoError(t, err)

	want := executor.ComputeActionID(steps, 4)
	assert.Equal(t, want.String(), strings.TrimSpace(out.String()))
}

func TestActionIDRejectsEmptyBatch(t *testing.T) {
	var out bytes.Buffer
	err := cmdActionID(strings.NewReader("[]"), &out, nil)
	assert.Error(t, err)
}

// TestSignDelegationPipeline pipes action-id output into sign-delegation
// and checks the result verifies against the engine's canonical bytes.
func TestSignDelegationPipeline(t *testing.T) {
	keyPath, cleanup := tempKeyPath(t)
	defer cleanup()
	require.NoError(t, cmdKeygen(nil, ioutil.Discard, []string{"-key", keyPath}))

	target := quorumtest.NewAddress()
	submitter := quorumtest.NewAddress()
	input, err := json.Marshal([]stepDoc{{Target: target, Value: 5}})
	require.NoError(t, err)

	var idOut bytes.Buffer
	require.NoError(t, cmdActionID(bytes.NewReader(input), &idOut, nil))

	var out bytes.Buffer
	err = cmdSignDelegation(&idOut, &out, []string{
		"-key", keyPath,
		"-executor", submitter.String(),
		"-nonce", "3",
	})
	require.NoError(t, err)

	var doc delegationDoc
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, int64(3), doc.Nonce)
	assert.Equal(t, submitter.String(), doc.Executor)

	key, err := loadPrivateKey(keyPath)
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey().Address().String(), doc.Owner)

	rawSig, err := hex.DecodeString(doc.Signature)
	require.NoError(t, err)
	id := executor.ComputeActionID([]quorum.Step{{Target: target, Value: 5}}, 0)
	msg, err := delegation.BuildDelegationBytes(key.PublicKey().Address(), id, submitter, 3)
	require.NoError(t, err)
	assert.True(t, key.PublicKey().Verify(msg, &crypto.Signature{Ed25519: rawSig}))
}
