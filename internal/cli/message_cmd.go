package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"consultbr_backend/internal/client"
	"consultbr_backend/internal/services/dto"

	"github.com/spf13/cobra"
)

func newConversationsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "conversations",
		Short: "Conversation summaries, latest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient()
			if err != nil {
				return err
			}
			convs, err := c.Conversations(ctxOf(cmd))
			if err != nil {
				return err
			}
			if len(convs) == 0 {
				fmt.Fprintln(app.Out, "Nenhuma conversa.")
				return nil
			}

			tw := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PARTNER\tPROJECT\tUNREAD\tLAST MESSAGE")
			for _, conv := range convs {
				project := "geral"
				if conv.ProjectID != nil {
					project = *conv.ProjectID
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", conv.PartnerID, project, conv.UnreadCount, shorten(conv.LastMessage.Content, 50))
			}
			return tw.Flush()
		},
	}
}

func newMessagesCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Send and read direct messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var (
		to      string
		content string
		project string
	)
	send := &cobra.Command{
		Use:   "send",
		Short: "Send a message",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient()
			if err != nil {
				return err
			}
			req := &dto.SendMessageRequest{ReceiverID: to, Content: content}
			if project != "" {
				req.ProjectID = &project
			}
			msg, err := c.SendMessage(ctxOf(cmd), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Mensagem enviada: %s\n", msg.ID)
			return nil
		},
	}
	send.Flags().StringVar(&to, "to", "", "Receiver user id")
	send.Flags().StringVar(&content, "content", "", "Message text")
	send.Flags().StringVar(&project, "project", "", "Related project id")
	_ = send.MarkFlagRequired("to")
	_ = send.MarkFlagRequired("content")

	var (
		historyProject string
		search         string
	)
	history := &cobra.Command{
		Use:   "history <partnerId>",
		Short: "Messages with a partner, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient()
			if err != nil {
				return err
			}
			var projectID *string
			if historyProject != "" {
				projectID = &historyProject
			}
			msgs, err := c.History(ctxOf(cmd), args[0], projectID)
			if err != nil {
				return err
			}
			for _, m := range client.Filter(msgs, search, client.MessageFields) {
				marker := " "
				if !m.IsRead {
					marker = "*"
				}
				fmt.Fprintf(app.Out, "%s [%s] %s: %s\n", marker, m.CreatedAt.Format(time.DateTime), m.SenderID, m.Content)
			}
			return nil
		},
	}
	history.Flags().StringVar(&historyProject, "project", "", "Only messages about this project")
	history.Flags().StringVar(&search, "search", "", "Filter fetched messages by text")

	cmd.AddCommand(send, history)
	return cmd
}

func shorten(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
