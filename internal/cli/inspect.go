package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chenyukang/fiber-world/network"
)

// Summary describes a generated layout.
type Summary struct {
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	Seed       uint32        `json:"seed"`
	Nodes      int           `json:"nodes"`
	Edges      int           `json:"edges"`
	Components int           `json:"components"`
	Largest    int           `json:"largest_component"`
	HubHops    []int         `json:"hub_hops"`
	Tiers      []TierSummary `json:"tiers"`
}

// TierSummary aggregates one tier.
type TierSummary struct {
	Tier      network.Tier `json:"tier"`
	Nodes     int          `json:"nodes"`
	AvgDegree float64      `json:"avg_degree"`
	MaxDegree int          `json:"max_degree"`
	Cap       int          `json:"cap"`
}

// Summarize counts nodes, channels and components of g.
func Summarize(g *network.Graph) Summary {
	s := Summary{
		Width:  g.Width,
		Height: g.Height,
		Seed:   g.Params().Seed,
		Nodes:  g.Len(),
		Edges:  g.EdgeCount(),
	}
	labels, n := g.Components()
	s.Components = n
	sizes := make([]int, n)
	for _, l := range labels {
		sizes[l]++
	}
	for _, sz := range sizes {
		s.Largest = max(s.Largest, sz)
	}

	// Minimum channel hops from the first hub to each later hub, -1 when cut off.
	if hubs := g.Hubs(); len(hubs) > 1 {
		s.HubHops = make([]int, 0, len(hubs)-1)
		for _, h := range hubs[1:] {
			s.HubHops = append(s.HubHops, len(g.ShortestPath(hubs[0], h))-1)
		}
	}

	tiers := []network.Tier{network.Hub, network.Secondary, network.Micro}
	sum := make([]int, len(tiers))
	s.Tiers = make([]TierSummary, len(tiers))
	for i, t := range tiers {
		s.Tiers[i] = TierSummary{Tier: t, Cap: g.Params().Tier(t).MaxDegree}
	}
	for i := range g.Nodes {
		ts := &s.Tiers[g.Nodes[i].Tier]
		deg := g.Degree(i)
		ts.Nodes++
		ts.MaxDegree = max(ts.MaxDegree, deg)
		sum[g.Nodes[i].Tier] += deg
	}
	for i := range s.Tiers {
		if s.Tiers[i].Nodes > 0 {
			s.Tiers[i].AvgDegree = float64(sum[i]) / float64(s.Tiers[i].Nodes)
		}
	}
	return s
}

func inspectCmd(a *app) *cobra.Command {
	var (
		width, height float64
		seed          uint32
		asJSON        bool
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print node, channel and component counts of a layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, h := a.cfg.Canvas.Width, a.cfg.Canvas.Height
			if width > 0 {
				w = width
			}
			if height > 0 {
				h = height
			}
			opts := a.cfg.NetworkOptions()
			if cmd.Flags().Changed("seed") {
				opts = append(opts, network.WithSeed(seed))
			}
			g, err := network.Build(w, h, opts...)
			if err != nil {
				return err
			}
			s := Summarize(g)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}

			field(out, "Canvas", fmt.Sprintf("%.0f×%.0f", s.Width, s.Height))
			field(out, "Seed", strconv.FormatUint(uint64(s.Seed), 10))
			field(out, "Nodes", strconv.Itoa(s.Nodes))
			field(out, "Channels", strconv.Itoa(s.Edges))
			comp := fmt.Sprintf("%d (largest %d)", s.Components, s.Largest)
			if s.Components == 1 {
				comp = good.Sprint(comp)
			}
			field(out, "Components", comp)
			if len(s.HubHops) > 0 {
				hops := make([]string, len(s.HubHops))
				for i, h := range s.HubHops {
					hops[i] = strconv.Itoa(h)
					if h < 0 {
						hops[i] = bad.Sprint("cut")
					}
				}
				field(out, "Hub hops", strings.Join(hops, " "))
			}
			fmt.Fprintln(out)

			rows := make([][]string, 0, len(s.Tiers))
			for _, t := range s.Tiers {
				rows = append(rows, []string{
					t.Tier.String(),
					strconv.Itoa(t.Nodes),
					strconv.FormatFloat(t.AvgDegree, 'f', 2, 64),
					strconv.Itoa(t.MaxDegree),
					strconv.Itoa(t.Cap),
				})
			}
			table(out, []string{"TIER", "NODES", "AVG DEG", "MAX DEG", "CAP"}, rows)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.Float64Var(&width, "width", 0, "Canvas width (default from config)")
	fl.Float64Var(&height, "height", 0, "Canvas height (default from config)")
	fl.Uint32Var(&seed, "seed", 0, "Layout seed (default from config)")
	fl.BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}
