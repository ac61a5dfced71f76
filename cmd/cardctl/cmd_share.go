package main

import (
	"context"
	"encoding/json"
	"fmt"

	"vcard.link/pkg/queryparams"
	"vcard.link/services"

	"github.com/spf13/cobra"
)

func (o *rootOptions) client() (*services.ShareAPIClient, error) {
	server := o.server
	if server == "" {
		cfg, err := o.config()
		if err != nil {
			return nil, err
		}
		server = cfg.App.BaseURL
	}
	return services.NewShareAPIClient(server, o.token, o.timeout), nil
}

// withClient paylaşım komutlarının ortak gövdesi.
func withClient(opts *rootOptions, run func(ctx context.Context, cmd *cobra.Command, c services.IShareService, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := opts.client()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return run(ctx, cmd, c, args)
	}
}

func newShareCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Manage stored shares through the share API",
	}

	var create struct {
		templateID int
		data, file string
		expiresIn  string
		private    bool
		noDownload bool
	}
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a stored share",
		Args:  cobra.NoArgs,
		RunE: withClient(opts, func(ctx context.Context, cmd *cobra.Command, c services.IShareService, _ []string) error {
			raw, err := readCardData(cmd.InOrStdin(), create.data, create.file)
			if err != nil {
				return err
			}
			req := services.CreateShareRequest{TemplateID: create.templateID, ExpiresIn: create.expiresIn}
			if err := json.Unmarshal(raw, &req.CardData); err != nil {
				return fmt.Errorf("card data is not a JSON object: %w", err)
			}
			if cmd.Flags().Changed("private") {
				public := !create.private
				req.IsPublic = &public
			}
			if cmd.Flags().Changed("no-download") {
				allow := !create.noDownload
				req.AllowDownload = &allow
			}
			res, err := c.CreateShare(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		}),
	}
	createCmd.Flags().IntVar(&create.templateID, "template", 0, "Template id (server default when omitted)")
	createCmd.Flags().StringVar(&create.data, "data", "", "Card data as a JSON object")
	createCmd.Flags().StringVar(&create.file, "file", "", "Read card data from a JSON file")
	createCmd.Flags().StringVar(&create.expiresIn, "expires-in", "", "Lifetime such as 30m, 12h, 7d or never")
	createCmd.Flags().BoolVar(&create.private, "private", false, "Only the creator can open the share")
	createCmd.Flags().BoolVar(&create.noDownload, "no-download", false, "Hide the download option")

	getCmd := &cobra.Command{
		Use:   "get <share-id>",
		Short: "Show a share",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(opts, func(ctx context.Context, cmd *cobra.Command, c services.IShareService, args []string) error {
			view, err := c.GetShare(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), view)
		}),
	}

	params := queryparams.DefaultListParams("createdAt")
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your active shares",
		Args:  cobra.NoArgs,
		RunE: withClient(opts, func(ctx context.Context, cmd *cobra.Command, c services.IShareService, _ []string) error {
			res, err := c.GetUserShares(ctx, params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		}),
	}
	listCmd.Flags().IntVar(&params.Page, "page", params.Page, "Page number")
	listCmd.Flags().IntVar(&params.PerPage, "limit", params.PerPage, "Items per page")
	listCmd.Flags().StringVar(&params.SortBy, "sort-by", params.SortBy, "createdAt, updatedAt, viewCount, expiresAt, lastViewedAt or templateId")
	listCmd.Flags().StringVar(&params.SortOrder, "sort-order", params.SortOrder, "asc or desc")

	var update struct {
		templateID int
		data       string
		expiresIn  string
		public     bool
		download   bool
	}
	updateCmd := &cobra.Command{
		Use:   "update <share-id>",
		Short: "Update a share you created",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(opts, func(ctx context.Context, cmd *cobra.Command, c services.IShareService, args []string) error {
			var upd services.ShareUpdate
			flags := cmd.Flags()
			if flags.Changed("template") {
				upd.TemplateID = &update.templateID
			}
			if flags.Changed("data") {
				if err := json.Unmarshal([]byte(update.data), &upd.CardData); err != nil {
					return fmt.Errorf("card data is not a JSON object: %w", err)
				}
			}
			if flags.Changed("expires-in") {
				upd.ExpiresIn = &update.expiresIn
			}
			if flags.Changed("public") {
				upd.IsPublic = &update.public
			}
			if flags.Changed("download") {
				upd.AllowDownload = &update.download
			}
			view, err := c.UpdateShare(ctx, args[0], upd)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), view)
		}),
	}
	updateCmd.Flags().IntVar(&update.templateID, "template", 0, "Template id")
	updateCmd.Flags().StringVar(&update.data, "data", "", "Replacement card data as a JSON object")
	updateCmd.Flags().StringVar(&update.expiresIn, "expires-in", "", "New lifetime from now")
	updateCmd.Flags().BoolVar(&update.public, "public", true, "Whether anyone with the link can open the share")
	updateCmd.Flags().BoolVar(&update.download, "download", true, "Whether the download option is shown")

	deleteCmd := &cobra.Command{
		Use:   "delete <share-id>",
		Short: "Deactivate a share you created",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(opts, func(ctx context.Context, cmd *cobra.Command, c services.IShareService, args []string) error {
			if err := c.DeleteShare(ctx, args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return err
		}),
	}

	analyticsCmd := &cobra.Command{
		Use:   "analytics <share-id>",
		Short: "Show view statistics for a share you created",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(opts, func(ctx context.Context, cmd *cobra.Command, c services.IShareService, args []string) error {
			a, err := c.GetShareAnalytics(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), a)
		}),
	}

	cmd.AddCommand(createCmd, getCmd, listCmd, updateCmd, deleteCmd, analyticsCmd)
	return cmd
}
