package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/onvault/quorum/crypto"
	"github.com/onvault/quorum/crypto/bech32"
	"golang.org/x/crypto/ed25519"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", env("QUORUMCLI_PRIV_KEY", os.Getenv("HOME")+"/.quorum.priv.key"),
			"Path to the private key file. You can use QUORUMCLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first to ensure we do not delete
		// such crucial data by an accident (bad command usage).
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return fmt.Errorf("cannot generate ed25519 key: %s", err)
	}

	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(priv); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	return nil
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the address associated with your private key, hex encoded by
default.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", env("QUORUMCLI_PRIV_KEY", os.Getenv("HOME")+"/.quorum.priv.key"),
			"Path to the private key file. You can use QUORUMCLI_PRIV_KEY environment variable to set it.")
		hrpFl = fl.String("bech32", "",
			"If provided, print the address bech32 encoded with this human readable prefix instead of hex.")
	)
	fl.Parse(args)

	key, err := loadPrivateKey(*keyPathFl)
	if err != nil {
		return err
	}
	addr := key.PublicKey().Address()

	if *hrpFl != "" {
		enc, err := bech32.Encode(*hrpFl, addr)
		if err != nil {
			return fmt.Errorf("cannot bech32 encode address: %s", err)
		}
		_, err = fmt.Fprintln(output, string(enc))
		return err
	}
	_, err = fmt.Fprintln(output, addr)
	return err
}

// loadPrivateKey reads and validates a binary private key file as written
// by the keygen command.
func loadPrivateKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: %d", len(raw))
	}
	return &crypto.PrivateKey{Ed25519: raw}, nil
}
