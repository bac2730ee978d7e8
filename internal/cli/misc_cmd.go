package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"consultbr_backend/internal/client"
	"consultbr_backend/internal/models"
	"consultbr_backend/internal/services/dto"

	"github.com/spf13/cobra"
)

func newFavoritesCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite consultants and projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var targetType string
	list := &cobra.Command{
		Use:   "list",
		Short: "List own favorites",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient()
			if err != nil {
				return err
			}
			var filter *models.FavoriteTarget
			if targetType != "" {
				t, err := parseTarget(targetType)
				if err != nil {
					return err
				}
				filter = &t
			}
			favs, err := c.Favorites(ctxOf(cmd), filter)
			if err != nil {
				return err
			}
			if len(favs) == 0 {
				fmt.Fprintln(app.Out, "Nenhum favorito.")
				return nil
			}
			tw := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPE\tTARGET")
			for _, f := range favs {
				fmt.Fprintf(tw, "%s\t%s\n", f.TargetType, f.TargetID)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&targetType, "type", "", "consultant or project")

	add := &cobra.Command{
		Use:   "add <targetId> <consultant|project>",
		Short: "Add a favorite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTarget(args[1])
			if err != nil {
				return err
			}
			c, err := app.authedClient()
			if err != nil {
				return err
			}
			if _, err := c.AddFavorite(ctxOf(cmd), args[0], t); err != nil {
				if client.IsConflict(err) {
					fmt.Fprintln(app.Out, "Já está nos favoritos.")
					return nil
				}
				return err
			}
			fmt.Fprintln(app.Out, "Adicionado aos favoritos.")
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <targetId> <consultant|project>",
		Short: "Remove a favorite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTarget(args[1])
			if err != nil {
				return err
			}
			c, err := app.authedClient()
			if err != nil {
				return err
			}
			if err := c.RemoveFavorite(ctxOf(cmd), args[0], t); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Removido dos favoritos.")
			return nil
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}

func parseTarget(s string) (models.FavoriteTarget, error) {
	t := models.FavoriteTarget(strings.ToLower(s))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown favorite type %q, use consultant or project", s)
	}
	return t, nil
}

func newStatsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Dashboard statistics for your role",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient()
			if err != nil {
				return err
			}
			stats, err := c.DashboardStats(ctxOf(cmd))
			if err != nil {
				return err
			}
			if len(stats) == 0 {
				fmt.Fprintln(app.Out, "Sem estatísticas: crie um perfil primeiro.")
				return nil
			}

			keys := make([]string, 0, len(stats))
			for k := range stats {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			tw := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			for _, k := range keys {
				fmt.Fprintf(tw, "%s\t%g\n", k, stats[k])
			}
			return tw.Flush()
		},
	}
}

func newConsultantsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consultants",
		Short: "Find consultants",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var (
		req    dto.ConsultantSearchRequest
		filter string
	)
	search := &cobra.Command{
		Use:   "search",
		Short: "Search accepting consultants",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.client()
			if err != nil {
				return err
			}
			consultants, err := c.SearchConsultants(ctxOf(cmd), req)
			if err != nil {
				return err
			}
			consultants = client.Filter(consultants, filter, client.ConsultantFields)
			if len(consultants) == 0 {
				fmt.Fprintln(app.Out, "Nenhum consultor encontrado.")
				return nil
			}

			tw := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "USER\tTITLE\tRATE\tINDUSTRIES")
			for _, cons := range consultants {
				title := "-"
				if cons.Title != nil {
					title = *cons.Title
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", cons.UserID, title, money(cons.HourlyRate), strings.Join(cons.Industries, ", "))
			}
			return tw.Flush()
		},
	}
	search.Flags().StringVar(&req.Search, "search", "", "Server-side text search")
	search.Flags().StringVar(&req.Specialization, "specialization", "", "Industry / specialization")
	search.Flags().IntVar(&req.Limit, "limit", 20, "Page size")
	search.Flags().IntVar(&req.Offset, "offset", 0, "Page offset")
	search.Flags().StringVar(&filter, "filter", "", "Filter fetched results by text")

	cmd.AddCommand(search)
	return cmd
}
