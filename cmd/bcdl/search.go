package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/handiism/bcdl/internal/bandcamp"
	"github.com/handiism/bcdl/internal/http"
)

var searchType string

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search Bandcamp for artists, albums and tracks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := bandcamp.ParseSearchFilter(searchType)
		if err != nil {
			return err
		}
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		client := http.NewClient(
			http.WithTimeout(settings.RequestTimeout()),
			http.WithProxy(settings.ToProxyConfig()),
		)
		results, err := bandcamp.Search(cmd.Context(), client, strings.Join(args, " "), filter)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			warningColor.Println("No results.")
			return nil
		}

		renderResults(os.Stdout, results)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchType, "type", "all", "result type: all, artist, album or track")
}

func renderResults(w io.Writer, results []bandcamp.SearchResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"", "Type", "Name", "Genre", "URL"})
	table.SetRowLine(false)
	table.SetAutoWrapText(false)
	table.SetHeaderColor(tablewriter.Colors{},
		tablewriter.Colors{tablewriter.Bold},
		tablewriter.Colors{tablewriter.FgRedColor, tablewriter.Bold},
		tablewriter.Colors{tablewriter.Bold},
		tablewriter.Colors{tablewriter.Bold})
	table.SetColumnColor(tablewriter.Colors{tablewriter.FgCyanColor},
		tablewriter.Colors{},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgRedColor},
		tablewriter.Colors{},
		tablewriter.Colors{})

	for i, r := range results {
		table.Append([]string{
			fmt.Sprint(i + 1),
			r.Kind(),
			shorten(r.Name, 40),
			r.Genre,
			r.URL(),
		})
	}
	table.Render()
}
