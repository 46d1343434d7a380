package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current schedule as CSV or PDF",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := export.Format(stringFlag(cmd, "format"))
		out := stringFlag(cmd, "out")
		if format != export.FormatCSV && format != export.FormatPDF {
			return fmt.Errorf("unsupported format %q, want csv or pdf", format)
		}
		if out == "" && format == export.FormatPDF {
			return errors.New("--out is required for pdf")
		}

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		p, err := rt.app.Load(cmd.Context(), stringFlag(cmd, "student"))
		if err != nil {
			return err
		}
		if p.Schedule == nil {
			return fmt.Errorf("%s has no schedule yet, run `studyplan plan`", p.Student.Name)
		}

		title := fmt.Sprintf("Study schedule: %s (target %s)", p.Student.Name, p.Student.TargetDate.Format("2 Jan 2006"))
		data, err := export.Render(format, export.ScheduleDataset(p.Schedule, p.Subjects), title)
		if err != nil {
			return err
		}

		if out == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d sessions to %s\n", len(p.Schedule.Sessions), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", string(export.FormatCSV), "Export format: csv or pdf")
	exportCmd.Flags().StringP("out", "o", "", "Output file (csv defaults to stdout)")
	exportCmd.Flags().String("student", "", "Student id (default the most recently planned student)")
}

func stringFlag(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
