package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"vcard.link/models"
	"vcard.link/pkg/authtoken"
	"vcard.link/pkg/sharecodec"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Encode and decode share tokens",
	}

	var (
		templateID int
		dataJSON   string
		dataFile   string
		origin     string
	)
	encode := &cobra.Command{
		Use:   "encode",
		Short: "Encode card data into a share token",
		Long: `Encode card data into a URL-safe share token.

Card data is read from --data, --file, or stdin when neither is given. Fields
outside the share allow-list are dropped before encoding.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readCardData(cmd.InOrStdin(), dataJSON, dataFile)
			if err != nil {
				return err
			}
			var cardData map[string]any
			if err := json.Unmarshal(raw, &cardData); err != nil {
				return fmt.Errorf("card data is not a JSON object: %w", err)
			}
			token, err := sharecodec.Encode(models.SharePayload{TemplateID: templateID, CardData: cardData})
			if err != nil {
				return err
			}
			if origin == "" {
				return printJSON(cmd.OutOrStdout(), map[string]string{"token": token})
			}
			return printJSON(cmd.OutOrStdout(), map[string]string{"token": token, "url": sharecodec.Link(origin, token)})
		},
	}
	encode.Flags().IntVar(&templateID, "template", sharecodec.DefaultTemplateID, "Template id")
	encode.Flags().StringVar(&dataJSON, "data", "", "Card data as a JSON object")
	encode.Flags().StringVar(&dataFile, "file", "", "Read card data from a JSON file")
	encode.Flags().StringVar(&origin, "origin", "", "Also print the share link for this origin")

	decode := &cobra.Command{
		Use:   "decode <token>",
		Short: "Decode a share token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := sharecodec.Decode(args[0])
			if err != nil {
				return err
			}
			payload.CardData = sharecodec.Sanitize(payload.CardData)
			return printJSON(cmd.OutOrStdout(), payload)
		},
	}

	cmd.AddCommand(encode, decode)
	return cmd
}

func readCardData(stdin io.Reader, inline, file string) ([]byte, error) {
	switch {
	case inline != "":
		return []byte(inline), nil
	case file != "":
		return os.ReadFile(file)
	}
	return io.ReadAll(stdin)
}

func newAuthCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Access tokens for the share API",
	}

	var ttl time.Duration
	mint := &cobra.Command{
		Use:   "mint <user-id>",
		Short: "Mint a bearer token signed with VCARD_JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || userID == 0 {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.Auth.TokenTTL
			}
			token, err := authtoken.Mint(authtoken.Config{
				Secret: cfg.Auth.JWTSecret,
				Issuer: cfg.Auth.JWTIssuer,
				TTL:    ttl,
			}, time.Now(), uint(userID))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	mint.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to VCARD_JWT_TTL)")

	cmd.AddCommand(mint)
	return cmd
}
