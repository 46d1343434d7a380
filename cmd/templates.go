package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/catalog"
	"github.com/abhisek/studyplan/internal/ui/components"
	"github.com/abhisek/studyplan/internal/ui/theme"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the subject templates of each engineering branch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := colorprofile.NewWriter(cmd.OutOrStdout(), os.Environ())
		branchID, _ := cmd.Flags().GetString("branch")

		if branchID == "" {
			tbl := components.NewTable("ID", "Branch", "Subjects", "Topics")
			for _, b := range catalog.Branches() {
				topics := 0
				for _, s := range b.Subjects {
					topics += len(s.Topics)
				}
				tbl.Add(b.ID, b.Name, strconv.Itoa(len(b.Subjects)), strconv.Itoa(topics))
			}
			fmt.Fprint(out, tbl.View())
			fmt.Fprintf(out, "\n%d branches\n", len(catalog.Branches()))
			return nil
		}

		b, ok := catalog.GetBranch(branchID)
		if !ok {
			return fmt.Errorf("no branch %q", branchID)
		}
		fmt.Fprintln(out, theme.Title.Render(b.Name))
		for _, s := range b.Subjects {
			fmt.Fprintf(out, "\n%s  %s\n", theme.Highlight.Render(s.Name),
				theme.Subtitle.Render(fmt.Sprintf("%d credits, %s importance, confidence %d", s.Credits, s.Importance, s.DefaultConfidence)))
			tbl := components.NewTable("Topic", "Load", "After")
			for _, t := range s.Topics {
				tbl.Add(t.Name, string(t.Load), strings.Join(t.Prerequisites, ", "))
			}
			fmt.Fprint(out, tbl.View())
		}
		return nil
	},
}

func init() {
	templatesCmd.Flags().String("branch", "", "Show the subjects and topics of one branch (e.g. cse)")
}
