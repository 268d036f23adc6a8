package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/regnull/ecpem"
)

const Version = "0.1.0"

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("ecpem failed")
	}
}

func newApp(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "ecpem",
		Usage:   "Convert secp256k1 EC PRIVATE KEY files to and from raw key material",
		Version: Version,
		Writer:  w,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level := zerolog.InfoLevel
			if c.Bool("debug") {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "decode",
				Usage: "Print the private scalar and public point of a key file",
				Flags: append(keyFileFlags(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print as JSON",
					},
				),
				Action: runDecode,
			},
			{
				Name:  "encode",
				Usage: "Write a key file from a hex private scalar and public point",
				Flags: append(keyFileFlags(),
					&cli.StringFlag{
						Name:     "scalar",
						Usage:    "Private scalar, 64 hex digits",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "point",
						Usage:    "Uncompressed public point, 130 hex digits",
						Required: true,
					},
				),
				Action: runEncode,
			},
			{
				Name:   "generate",
				Usage:  "Generate a new random key file",
				Flags:  keyFileFlags(),
				Action: runGenerate,
			},
			{
				Name:   "address",
				Usage:  "Print the Bitcoin and Ethereum addresses of a key file",
				Flags:  keyFileFlags(),
				Action: runAddress,
			},
			{
				Name:   "protect",
				Usage:  "Encrypt an armored key file with a passphrase",
				Flags:  append(keyFileFlags(), inputFlag()),
				Action: runProtect,
			},
			{
				Name:   "unprotect",
				Usage:  "Decrypt a passphrase protected key file back to armored text",
				Flags:  append(keyFileFlags(), inputFlag()),
				Action: runUnprotect,
			},
		},
	}
}

func keyFileFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Key file; stdout is used for output when empty",
		},
		&cli.StringFlag{
			Name:    "passphrase",
			Usage:   "Passphrase protecting the key file",
			Sources: cli.EnvVars("ECPEM_PASSPHRASE"),
		},
		&cli.BoolFlag{
			Name:    "prompt-passphrase",
			Aliases: []string{"p"},
			Usage:   "Prompt for the passphrase",
		},
	}
}

func inputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "in",
		Usage:    "Input key file",
		Required: true,
	}
}

func passphrase(c *cli.Command) (string, error) {
	if !c.Bool("prompt-passphrase") {
		return c.String("passphrase"), nil
	}
	fmt.Fprint(os.Stderr, "Enter passphrase: ")
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase, %v", err)
	}
	return string(b), nil
}

func requirePassphrase(c *cli.Command) (string, error) {
	pass, err := passphrase(c)
	if err != nil {
		return "", err
	}
	if pass == "" {
		return "", fmt.Errorf("a passphrase is required, use --passphrase, ECPEM_PASSPHRASE or -p")
	}
	return pass, nil
}

// writeOutput writes content to the --file flag, or to the command output
// when it is empty.
func writeOutput(c *cli.Command, content string) error {
	fileName := c.String("file")
	if fileName == "" {
		_, err := fmt.Fprintln(c.Root().Writer, content)
		return err
	}
	if err := os.WriteFile(fileName, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write %s, %v", fileName, err)
	}
	log.Info().Str("file", fileName).Msg("key saved")
	return nil
}

func loadKeyPair(c *cli.Command) (*ecpem.KeyPair, error) {
	fileName := c.String("file")
	if fileName == "" {
		return nil, fmt.Errorf("--file is required")
	}
	pass, err := passphrase(c)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("file", fileName).Bool("protected", pass != "").Msg("loading key")
	return ecpem.LoadKeyPair(fileName, pass)
}

// saveKeyPair writes the armored key pair, protected when a passphrase is
// given, to --file or to the command output.
func saveKeyPair(c *cli.Command, kp *ecpem.KeyPair) error {
	pass, err := passphrase(c)
	if err != nil {
		return err
	}
	content, err := ecpem.Encode(kp)
	if err != nil {
		return err
	}
	if pass != "" {
		content, err = ecpem.EncryptArmored(content, pass)
		if err != nil {
			return err
		}
	}
	log.Debug().Bool("protected", pass != "").Msg("saving key")
	return writeOutput(c, content)
}

func runDecode(ctx context.Context, c *cli.Command) error {
	kp, err := loadKeyPair(c)
	if err != nil {
		return err
	}
	if c.Bool("json") {
		b, err := json.MarshalIndent(map[string]string{
			"private_scalar": kp.PrivateScalar,
			"public_point":   kp.PublicPoint,
		}, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.Root().Writer, string(b))
		return err
	}
	_, err = fmt.Fprintf(c.Root().Writer, "private_scalar: %s\npublic_point:   %s\n",
		kp.PrivateScalar, kp.PublicPoint)
	return err
}

func runEncode(ctx context.Context, c *cli.Command) error {
	kp, err := ecpem.NewKeyPair(c.String("scalar"), c.String("point"))
	if err != nil {
		return err
	}
	return saveKeyPair(c, kp)
}

func runGenerate(ctx context.Context, c *cli.Command) error {
	kp, err := ecpem.GenerateKeyPair()
	if err != nil {
		return err
	}
	return saveKeyPair(c, kp)
}

func runAddress(ctx context.Context, c *cli.Command) error {
	kp, err := loadKeyPair(c)
	if err != nil {
		return err
	}
	btc, err := kp.BitcoinAddress()
	if err != nil {
		return err
	}
	eth, err := kp.EthereumAddress()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.Root().Writer, "bitcoin:  %s\nethereum: %s\n", btc, eth)
	return err
}

func runProtect(ctx context.Context, c *cli.Command) error {
	pass, err := requirePassphrase(c)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(c.String("in"))
	if err != nil {
		return fmt.Errorf("failed to load private key: %v", err)
	}
	protected, err := ecpem.EncryptArmored(string(data), pass)
	if err != nil {
		return err
	}
	return writeOutput(c, protected)
}

func runUnprotect(ctx context.Context, c *cli.Command) error {
	pass, err := requirePassphrase(c)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(c.String("in"))
	if err != nil {
		return fmt.Errorf("failed to load private key: %v", err)
	}
	armored, err := ecpem.DecryptArmored(string(data), pass)
	if err != nil {
		return err
	}
	if _, err := ecpem.Decode(armored); err != nil {
		return err
	}
	return writeOutput(c, armored)
}
