package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"strike-connect/config"
	nwc "strike-connect/internal/adapter/nostr"
	"strike-connect/internal/service"

	"github.com/spf13/cobra"
)

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a hex secret key and print it with its public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret := nwc.GenerateSecret()
			pub, err := nwc.PublicKey(secret)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "secret: %s\npubkey: %s\n", secret, pub)
			return nil
		},
	}
}

func uriCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uri",
		Short: "Print the nostr+walletconnect URI for the configured keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			relay, _ := cmd.Flags().GetString("relay")
			if relay == "" {
				relay = cfg.NWC.RelayURI
			}
			if relay == "" || cfg.NWC.ServicePrivkey == "" || cfg.NWC.ConnectionSecret == "" {
				return errors.New("nwc.relay_uri, nwc.service_privkey and nwc.connection_secret are required")
			}

			servicePub, err := nwc.PublicKey(cfg.NWC.ServicePrivkey)
			if err != nil {
				return fmt.Errorf("nwc.service_privkey: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), nwc.ConnectionURI(servicePub, relay, cfg.NWC.ConnectionSecret))
			return nil
		},
	}
	cmd.Flags().String("relay", "", "relay URI (default nwc.relay_uri)")
	return cmd
}

func inspectURICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect-uri <uri>",
		Short: "Print the parts of a nostr+walletconnect URI",
		Long: `Decodes a connection URI and prints the service pubkey, the relay and
the client pubkey derived from its secret. The client pubkey is the value
requests are signed with, for nwc.authorized_pubkey.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			servicePub, relay, secret, err := nwc.ParseConnectionURI(args[0])
			if err != nil {
				return err
			}
			clientPub, err := nwc.PublicKey(secret)
			if err != nil {
				return fmt.Errorf("connection secret: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "service_pubkey: %s\nrelay: %s\nclient_pubkey: %s\n", servicePub, relay, clientPub)
			return nil
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Hash a dashboard password read from stdin with argon2id",
		Long: `Reads one line from stdin and prints the argon2id hash to use as
dashboard.password_hash (SC_DASHBOARD_PASSWORD_HASH).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("reading password: %w", err)
			}
			password := strings.TrimRight(line, "\r\n")
			if password == "" {
				return errors.New("password must not be empty")
			}

			hash, err := service.NewPasswordHasher(service.DefaultArgon2Params).Hash(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
