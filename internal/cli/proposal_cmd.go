package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"consultbr_backend/internal/models"
	"consultbr_backend/internal/services/dto"

	"github.com/spf13/cobra"
)

func newProposalsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposals",
		Short: "Send and answer proposals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newProposalsListCommand(app))
	cmd.AddCommand(newProposalsSendCommand(app))
	cmd.AddCommand(newProposalsRespondCommand(app))
	return cmd
}

func newProposalsListCommand(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list [sent|received]",
		Short: "List own proposals (default received) or all proposals of a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			if project != "" {
				c, err := app.client()
				if err != nil {
					return err
				}
				proposals, err := c.ProjectProposals(ctx, project)
				if err != nil {
					return err
				}
				printProposals(app.Out, proposals)
				return nil
			}

			box := "received"
			if len(args) == 1 {
				box = args[0]
			}
			c, err := app.authedClient()
			if err != nil {
				return err
			}
			proposals, err := c.MyProposals(ctx, box)
			if err != nil {
				return err
			}
			printProposals(app.Out, proposals)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "List proposals of this project instead")
	return cmd
}

func newProposalsSendCommand(app *App) *cobra.Command {
	var (
		project string
		message string
		parent  string
		rate    float64
		hours   int
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a proposal, or a counter-offer with --parent",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient()
			if err != nil {
				return err
			}

			req := &dto.CreateProposalRequest{ProjectID: project, Message: message}
			if cmd.Flags().Changed("rate") {
				req.ProposedRate = &rate
			}
			if cmd.Flags().Changed("hours") {
				req.EstimatedHours = &hours
			}
			if parent != "" {
				req.ParentID = &parent
			}

			p, err := c.CreateProposal(ctxOf(cmd), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Proposta enviada: %s (%s)\n", p.ID, p.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project id")
	cmd.Flags().StringVar(&message, "message", "", "Proposal text")
	cmd.Flags().StringVar(&parent, "parent", "", "Proposal being countered")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Proposed rate")
	cmd.Flags().IntVar(&hours, "hours", 0, "Estimated hours")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func newProposalsRespondCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "respond <proposalId> <viewed|accepted|declined|counter_offered|expired>",
		Short: "Change a proposal status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := models.ProposalStatus(strings.ToUpper(args[1]))
			if !status.IsValid() {
				return fmt.Errorf("unknown proposal status %q", args[1])
			}

			c, err := app.authedClient()
			if err != nil {
				return err
			}
			p, err := c.RespondToProposal(ctxOf(cmd), args[0], status)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Proposta %s agora está %s\n", p.ID, p.Status)
			return nil
		},
	}
}

func printProposals(out io.Writer, proposals []models.Proposal) {
	if len(proposals) == 0 {
		fmt.Fprintln(out, "Nenhuma proposta.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPROJECT\tSTATUS\tRATE\tPARENT")
	for _, p := range proposals {
		parent := "-"
		if p.ParentID != nil {
			parent = *p.ParentID
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.ProjectID, p.Status, money(p.ProposedRate), parent)
	}
	tw.Flush()
}
