package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/crudgen/internal/ports/primary"
)

func displayScaffold(out io.Writer, resp *primary.ScaffoldResponse) {
	if resp.DryRun {
		fmt.Fprintf(out, "Dry run: %s (nothing written)\n\n", resp.Target)
	} else {
		fmt.Fprintf(out, "Scaffolding %s\n\n", resp.Target)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, f := range resp.Files {
		fmt.Fprintf(w, "  %s\t%s\n", statusColor(f.Status), f.Path)
	}
	w.Flush()

	if resp.Migrated {
		fmt.Fprintf(out, "\n  %s migrations\n", color.New(color.FgGreen).Sprint("RAN"))
	}
	if p := resp.Permissions; p != nil && !p.Skipped {
		fmt.Fprintf(out, "\nPermissions: %d groups (%d new), %d permissions (%d new)\n",
			p.Groups, p.GroupsCreated, p.Permissions, p.PermissionsCreated)
	}

	if len(resp.Warnings) > 0 {
		fmt.Fprintln(out)
		for _, warning := range resp.Warnings {
			fmt.Fprintf(out, "%s %s\n", color.New(color.FgYellow).Sprint("⚠"), warning)
		}
	}

	if resp.DryRun {
		for _, f := range resp.Files {
			if f.Content == "" {
				continue
			}
			fmt.Fprintf(out, "\n%s %s\n", color.New(color.FgCyan).Sprint("──"), f.Path)
			fmt.Fprint(out, f.Content)
			if f.Content[len(f.Content)-1] != '\n' {
				fmt.Fprintln(out)
			}
		}
	}

	if len(resp.NextSteps) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Next steps:")
		for _, step := range resp.NextSteps {
			fmt.Fprintf(out, "  %s\n", step)
		}
	}
}

// statusColor pads before coloring so escape codes do not skew the tabwriter.
func statusColor(status primary.OpStatus) string {
	label := fmt.Sprintf("%-9s", status)
	switch status {
	case primary.OpCreate:
		return color.New(color.FgGreen).Sprint(label)
	case primary.OpOverwrite:
		return color.New(color.FgYellow).Sprint(label)
	case primary.OpAppend:
		return color.New(color.FgCyan).Sprint(label)
	case primary.OpSkip, primary.OpExists:
		return color.New(color.FgHiBlack).Sprint(label)
	default:
		return label
	}
}
