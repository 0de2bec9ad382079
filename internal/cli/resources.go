package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/salaryhelper/salaryhelper-client/pkg/apiclient"
)

func newConversationsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "conversations",
		Aliases: []string{"conv"},
		Short:   "List, create and show conversations",
	}

	var limit int
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List conversations",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.ListConversations(ctx, limit)
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "Maximum number of conversations (0 lets the server decide)")

	var title string
	create := &cobra.Command{
		Use:   "create",
		Short: "Start a conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.CreateConversation(ctx, apiclient.CreateConversationRequest{Title: title})
			})
		},
	}
	create.Flags().StringVar(&title, "title", "", "Conversation title")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.GetConversation(ctx, args[0])
			})
		},
	}

	cmd.AddCommand(list, create, show)
	return cmd
}

func newSendCmd(e *env) *cobra.Command {
	var attachments []string

	cmd := &cobra.Command{
		Use:   "send <conversation-id> <text>",
		Short: "Send a message to a conversation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.SendMessage(ctx, args[0], apiclient.SendMessageRequest{
					Text:        args[1],
					Attachments: attachments,
				})
			})
		},
	}

	cmd.Flags().StringSliceVar(&attachments, "attach", nil, "Uploaded file IDs to reference")
	return cmd
}

func newUploadCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open upload: %w", err)
			}
			defer f.Close()

			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.UploadFile(ctx, filepath.Base(args[0]), f)
			})
		},
	}
}

func newUploadInfoCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "upload-info <file-id>",
		Short: "Show what the backend knows about an upload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.GetUpload(ctx, args[0])
			})
		},
	}
}

func newAttachmentsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "attachments",
		Short: "List uploaded files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.ListAttachments(ctx)
			})
		},
	}
}

func newTemplatesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Browse and render document templates",
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.ListTemplates(ctx)
			})
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.GetTemplate(ctx, args[0])
			})
		},
	}

	var values map[string]string
	render := &cobra.Command{
		Use:   "render <id>",
		Short: "Render a template with field values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.RenderTemplate(ctx, args[0], values)
			})
		},
	}
	render.Flags().StringToStringVar(&values, "set", nil, "Field value as name=value (repeatable)")

	cmd.AddCommand(list, show, render)
	return cmd
}

func newDocumentsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "Create and list documents",
	}

	var (
		templateID string
		title      string
		data       map[string]string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a document from a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.CreateDocument(ctx, apiclient.CreateDocumentRequest{
					TemplateID: templateID,
					Title:      title,
					Data:       data,
				})
			})
		},
	}
	create.Flags().StringVar(&templateID, "template", "", "Template ID")
	create.Flags().StringVar(&title, "title", "", "Document title")
	create.Flags().StringToStringVar(&data, "set", nil, "Field value as name=value (repeatable)")
	_ = create.MarkFlagRequired("template")

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List documents",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.ListDocuments(ctx)
			})
		},
	}

	cmd.AddCommand(create, list)
	return cmd
}

func newOrdersCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Create, pay and list orders",
	}

	var req apiclient.CreateOrderRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.CreateOrder(ctx, req)
			})
		},
	}
	create.Flags().StringVar(&req.ProductType, "product", "", "Product type")
	create.Flags().Float64Var(&req.Amount, "amount", 0, "Amount")
	create.Flags().StringVar(&req.PaymentMethod, "method", "", "Payment method")
	_ = create.MarkFlagRequired("product")

	pay := &cobra.Command{
		Use:   "pay <order-id>",
		Short: "Pay an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.PayOrder(ctx, args[0])
			})
		},
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List orders",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.ListOrders(ctx)
			})
		},
	}

	cmd.AddCommand(create, pay, list)
	return cmd
}

func newAdminCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin-only reports",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Show platform statistics",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
					return c.AdminStats(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "users",
			Short: "List users",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
					return c.AdminUsers(ctx)
				})
			},
		},
	)
	return cmd
}
