package music

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/keshon/jukebox/internal/config"
	"github.com/keshon/jukebox/pkg/cmd"
	"github.com/samber/lo"
)

type HelpCommand struct {
	Registry *cmd.Registry
}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "List the available commands" }
func (c *HelpCommand) Aliases() []string   { return []string{"ajuda"} }
func (c *HelpCommand) Category() string    { return "🕯️ Information" }
func (c *HelpCommand) Usage() string       { return "help" }

func (c *HelpCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	req, err := request(inv)
	if err != nil {
		return err
	}
	return req.Reply(BuildHelp(c.Registry))
}

// BuildHelp renders the registered commands grouped by category.
func BuildHelp(reg *cmd.Registry) string {
	groups := lo.GroupBy(reg.GetAll(), func(c cmd.Command) string {
		if cat, ok := cmd.Root(c).(interface{ Category() string }); ok {
			return cat.Category()
		}
		return ""
	})

	cats := lo.Keys(groups)
	sort.Slice(cats, func(i, j int) bool {
		wi, wj := config.CategoryWeights[cats[i]], config.CategoryWeights[cats[j]]
		if wi != wj {
			return wi < wj
		}
		return cats[i] < cats[j]
	})

	var sb strings.Builder
	for _, cat := range cats {
		if cat != "" {
			fmt.Fprintf(&sb, "**%s**\n", cat)
		}
		for _, c := range groups[cat] {
			root := cmd.Root(c)
			usage := c.Name()
			if u, ok := root.(interface{ Usage() string }); ok {
				usage = u.Usage()
			}
			fmt.Fprintf(&sb, "`%s` - %s", usage, c.Description())
			if a, ok := root.(cmd.Aliased); ok && len(a.Aliases()) > 0 {
				fmt.Fprintf(&sb, " (aliases: %s)", strings.Join(a.Aliases(), ", "))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}
