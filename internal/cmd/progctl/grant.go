package progctl

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/verdantworks/growline/internal/api"
)

func newGrantCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Manage leaderboard submission grants",
	}
	cmd.AddCommand(newGrantKeyCommand())
	cmd.AddCommand(newGrantMintCommand())
	return cmd
}

func newGrantKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "key",
		Short: "Generate a submission grant signing key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
			if err != nil {
				return fmt.Errorf("generate submission grant key: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "export GROWLINE_SUBMISSION_GRANT_PRIVATE_KEY=%s\n",
				base64.RawStdEncoding.EncodeToString(privateKey))
			fmt.Fprintf(out, "export GROWLINE_SUBMISSION_GRANT_PUBLIC_KEY=%s\n",
				base64.RawStdEncoding.EncodeToString(publicKey))
			return nil
		},
	}
}

func newGrantMintCommand() *cobra.Command {
	var profileID string
	var boardID string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint a signed score submission grant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, cfg, err := mintConfigFromEnv()
			if err != nil {
				return err
			}

			grant, err := api.MintSubmissionGrant(key, cfg, api.SubmissionGrantExpectation{
				ProfileID: profileID,
				BoardID:   boardID,
			}, uuid.NewString(), ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), grant)
			return nil
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "Profile the grant is issued to")
	cmd.Flags().StringVar(&boardID, "board", "", "Board the grant is valid for")
	cmd.Flags().DurationVar(&ttl, "ttl", 5*time.Minute, "Grant lifetime")
	cmd.MarkFlagRequired("profile")
	cmd.MarkFlagRequired("board")
	return cmd
}

// mintConfigFromEnv reads the signing key and claim configuration. Minting
// needs the private key, unlike the server which verifies with the public
// half.
func mintConfigFromEnv() (ed25519.PrivateKey, api.SubmissionGrantConfig, error) {
	issuer := strings.TrimSpace(os.Getenv("GROWLINE_SUBMISSION_GRANT_ISSUER"))
	audience := strings.TrimSpace(os.Getenv("GROWLINE_SUBMISSION_GRANT_AUDIENCE"))
	encoded := strings.TrimSpace(os.Getenv("GROWLINE_SUBMISSION_GRANT_PRIVATE_KEY"))
	if issuer == "" || audience == "" || encoded == "" {
		return nil, api.SubmissionGrantConfig{}, errors.New(
			"GROWLINE_SUBMISSION_GRANT_ISSUER, GROWLINE_SUBMISSION_GRANT_AUDIENCE, and GROWLINE_SUBMISSION_GRANT_PRIVATE_KEY are required")
	}

	raw, err := base64.RawStdEncoding.DecodeString(encoded)
	if err != nil {
		raw, err = base64.StdEncoding.DecodeString(encoded)
	}
	if err != nil {
		return nil, api.SubmissionGrantConfig{}, fmt.Errorf("decode submission grant private key: %w", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, api.SubmissionGrantConfig{}, fmt.Errorf(
			"submission grant private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(raw))
	}

	return ed25519.PrivateKey(raw), api.SubmissionGrantConfig{Issuer: issuer, Audience: audience}, nil
}
