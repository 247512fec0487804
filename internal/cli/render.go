package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	service "github.com/okian/winedex/internal/app"
	"github.com/okian/winedex/internal/domain/model"
	"github.com/okian/winedex/internal/domain/types"
)

const cardWidth = 44

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a8a29e"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d6d3d1")).Width(10)
	headStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
)

// renderCard draws one wine as a bordered card tinted with its rarity colour.
func renderCard(c service.Card) string {
	s := c.Stats
	rarity := lipgloss.Color(s.Rarity.Color)

	lines := []string{
		titleStyle.Render(c.Wine.Name),
		mutedStyle.Render(joinNonEmpty(" · ", c.Wine.Producer, vintage(c.Wine.Year))),
		"",
		row("Type", s.Type.Icon+" "+s.Type.Name),
		row("Power", s.PowerLevel.Name),
		row("Rarity", lipgloss.NewStyle().Foreground(rarity).Bold(true).Render(s.Rarity.Name)),
	}
	if s.Region != nil {
		lines = append(lines, row("Region", s.Region.Flag+" "+s.Region.Name+" ("+s.Region.Type+")"))
	} else if c.Wine.Region != "" {
		lines = append(lines, row("Region", c.Wine.Region))
	}
	lines = append(lines,
		row("Rating", stars(c.Wine.Rating)),
		row("XP", strconv.Itoa(c.Wine.ExperiencePoints)),
	)
	if c.Wine.TastingNotes != "" {
		lines = append(lines, "", mutedStyle.Render(c.Wine.TastingNotes))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(rarity).
		Padding(0, 1).
		Width(cardWidth).
		Render(strings.Join(lines, "\n"))
}

// renderList draws wines as a table.
func renderList(wines []types.Wine) string {
	rows := make([][]string, 0, len(wines))
	for _, w := range wines {
		captured := ""
		if w.Captured {
			captured = "✓"
		}
		rows = append(rows, []string{
			strconv.Itoa(w.ID), w.Name, vintage(w.Year), w.Region, string(w.Type),
			stars(w.Rating), string(w.Rarity), captured,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "YEAR", "REGION", "TYPE", "RATING", "RARITY", "CAPTURED").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headStyle
			}
			return cellStyle
		})
	return t.String()
}

// renderStats prints the collection summary and breakdowns.
func renderStats(st model.CollectionStats) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Collection") + "\n")
	fmt.Fprintf(&b, "%s%d (%d captured)\n", labelStyle.Render("Wines"), st.TotalWines, st.CapturedWines)
	fmt.Fprintf(&b, "%s%d\n", labelStyle.Render("Regions"), st.UniqueRegions)
	fmt.Fprintf(&b, "%s%d\n", labelStyle.Render("Grapes"), st.UniqueGrapes)
	fmt.Fprintf(&b, "%s%.1f\n", labelStyle.Render("Rating"), st.AverageRating)
	fmt.Fprintf(&b, "%slevel %d, %d XP, %d to next level\n",
		labelStyle.Render("Progress"), st.Progress.Level, st.Progress.Experience, st.Progress.ExperienceToLevel)

	for _, section := range []struct {
		name   string
		counts map[string]int
	}{
		{"By type", st.ByType},
		{"By rarity", st.ByRarity},
		{"By region", st.ByRegion},
	} {
		b.WriteString("\n" + titleStyle.Render(section.name) + "\n")
		keys := make([]string, 0, len(section.counts))
		for k := range section.counts {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %-16s %d\n", k, section.counts[k])
		}
	}
	return b.String()
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

func stars(rating int) string {
	if rating <= 0 {
		return ""
	}
	return strings.Repeat("★", min(rating, 5))
}

func vintage(year int) string {
	if year <= 0 {
		return "NV"
	}
	return strconv.Itoa(year)
}

func joinNonEmpty(sep string, parts ...string) string {
	return strings.Join(slices.DeleteFunc(parts, func(s string) bool { return s == "" }), sep)
}
