package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rclayout/pkg/pipeline"
)

// List styles
var (
	listDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	treePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// inspectCommand creates the interactive form browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags formFlags
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [forms-file]",
		Short: "Browse the container trees of a forms document",
		Long: `Browse the container trees of a forms document.

Lists every form with its control and container counts; the tree of the
selected form is shown below the list. Use --plain to print all trees
without the interactive view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), cmd.OutOrStdout(), args[0], flags, plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the trees instead of starting the browser")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, out io.Writer, input string, flags formFlags, plain bool) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := flags.options(input)
	opts.Formats = []string{pipeline.FormatText}
	opts.Logger = c.Logger

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	entries := inspectEntries(result.Forms)

	if plain {
		for _, e := range entries {
			fmt.Fprintln(out, StyleTitle.Render(e.Form)+" "+StyleDim.Render(e.Class))
			fmt.Fprint(out, e.Tree)
		}
		return nil
	}

	_, err = tea.NewProgram(NewInspectModel(entries), tea.WithContext(ctx), tea.WithOutput(out)).Run()
	return err
}

// =============================================================================
// InspectModel - Interactive form browser
// =============================================================================

// InspectEntry is one row of the form browser.
type InspectEntry struct {
	Form       string
	Class      string
	Controls   int
	Containers int
	Cached     bool
	Tree       string
}

func inspectEntries(forms []pipeline.FormResult) []InspectEntry {
	entries := make([]InspectEntry, len(forms))
	for i, fr := range forms {
		entries[i] = InspectEntry{
			Form:       fr.Form,
			Class:      fr.Layout.Class,
			Controls:   fr.Stats.ControlCount,
			Containers: fr.Stats.ContainerCount,
			Cached:     fr.CacheInfo.LayoutHit,
			Tree:       string(fr.Artifacts[pipeline.FormatText]),
		}
	}
	return entries
}

// InspectModel is the bubbletea model for the form browser.
type InspectModel struct {
	Entries []InspectEntry
	Cursor  int
	Offset  int
	Height  int // visible list rows
}

// NewInspectModel creates a browser over entries.
func NewInspectModel(entries []InspectEntry) InspectModel {
	return InspectModel{Entries: entries, Height: 8}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n := len(m.Entries); n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		}
	case tea.WindowSizeMsg:
		// Leave room for the title, the table borders and a tree.
		m.Height = max(3, msg.Height/3)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Forms"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.Entries) == 0 {
		b.WriteString(listDimStyle.Render("no forms"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Entries))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		status := iconFresh
		if e.Cached {
			status = iconCached
		}
		rows = append(rows, []string{cursor, e.Form, e.Class, strconv.Itoa(e.Controls), strconv.Itoa(e.Containers), status})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Form", "Class", "Controls", "Containers", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))
	b.WriteString("\n")
	b.WriteString(treePaneStyle.Render(strings.TrimRight(m.Entries[m.Cursor].Tree, "\n")))
	b.WriteString("\n")

	return b.String()
}
