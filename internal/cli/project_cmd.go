package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"consultbr_backend/internal/client"
	"consultbr_backend/internal/models"
	"consultbr_backend/internal/services/dto"
	"consultbr_backend/internal/wizard"

	"github.com/spf13/cobra"
)

func newProjectsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Browse and manage projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newProjectsListCommand(app))
	cmd.AddCommand(newProjectsMineCommand(app))
	cmd.AddCommand(newProjectsCreateCommand(app))
	cmd.AddCommand(newProjectsPublishCommand(app))
	return cmd
}

func newProjectsListCommand(app *App) *cobra.Command {
	var (
		search string
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.client()
			if err != nil {
				return err
			}
			projects, err := c.ListProjects(ctxOf(cmd), limit, offset)
			if err != nil {
				return err
			}
			printProjects(app.Out, client.Filter(projects, search, client.ProjectFields))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter fetched projects by text")
	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	return cmd
}

func newProjectsMineCommand(app *App) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Own projects (entrepreneur) or assigned projects (consultant)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient()
			if err != nil {
				return err
			}
			projects, err := c.MyProjects(ctxOf(cmd))
			if err != nil {
				return err
			}
			printProjects(app.Out, client.Filter(projects, search, client.ProjectFields))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter fetched projects by text")
	return cmd
}

func newProjectsCreateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Interactive project creation",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient()
			if err != nil {
				return err
			}

			var created *models.Project
			w := wizard.NewProjectCreation(func(ctx context.Context, req *dto.CreateProjectRequest) error {
				fmt.Fprint(app.Out, "\n"+wizard.SummarizeProject(req))
				p, err := c.CreateProject(ctx, req)
				if err != nil {
					return err
				}
				created = p
				return nil
			})
			if err := RunWizard(ctxOf(cmd), w, app.In, app.Out); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Projeto criado: %s (%s)\n", created.ID, created.Status)
			return nil
		},
	}
}

func newProjectsPublishCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <projectId>",
		Short: "Publish a draft project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient()
			if err != nil {
				return err
			}
			p, err := c.PublishProject(ctxOf(cmd), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Projeto %s agora está %s\n", p.ID, p.Status)
			return nil
		},
	}
}

func printProjects(out io.Writer, projects []models.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(out, "Nenhum projeto encontrado.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tBUDGET\tTITLE")
	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Status, money(p.Budget), p.Title)
	}
	tw.Flush()
}

func money(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("R$ %.2f", *v)
}
