package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/voxpath/astar"
	"github.com/katalvlaran/voxpath/grid"
	"github.com/katalvlaran/voxpath/movement"
	"github.com/katalvlaran/voxpath/scheduler"
)

type findFlags struct {
	from, to string
	blocks   []string
	planar   bool
	budget   int
	advance  bool
	noMap    bool
}

func newFindCmd(a *app) *cobra.Command {
	f := &findFlags{}
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Search one path and show it against the unit's action points",
		Example: `  voxpath find --from 0,0,0 --to 9,0,9
  voxpath find --from 0,0,0 --to 9,1,0 --block 4,0,0:4,0,9 --budget 12 --advance`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFind(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.from, "from", "0,0,0", "start cell x,y,z (clamped to the grid)")
	cmd.Flags().StringVar(&f.to, "to", "", "goal cell x,y,z (clamped to the grid)")
	cmd.Flags().StringArrayVar(&f.blocks, "block", nil, "unwalkable cell or box x1,y1,z1:x2,y2,z2 (repeatable)")
	cmd.Flags().BoolVar(&f.planar, "planar", false, "search the 8 same-layer neighbours only")
	cmd.Flags().IntVar(&f.budget, "budget", -1, "action points (default from config)")
	cmd.Flags().BoolVar(&f.advance, "advance", false, "move the unit along the affordable steps")
	cmd.Flags().BoolVar(&f.noMap, "no-map", false, "do not draw the grid layers")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (a *app) runFind(cmd *cobra.Command, f *findFlags) error {
	from, err := parseCoord(f.from)
	if err != nil {
		return err
	}
	to, err := parseCoord(f.to)
	if err != nil {
		return err
	}

	g := grid.New(a.cfg.GridSpec(), grid.WithLogger(a.log))
	for _, spec := range f.blocks {
		lo, hi, err := parseBox(spec)
		if err != nil {
			return err
		}
		n := g.SetRegion(lo, hi, false)
		a.log.Debug("blocked region", "from", lo.String(), "to", hi.String(), "cells", n)
	}

	budget := f.budget
	if budget < 0 {
		budget = a.cfg.Unit.ActionPoints
	}
	start, goal := g.At(from), g.At(to)
	unit, err := movement.Place(g, start, budget)
	if err != nil {
		return err
	}

	searchOpts := a.cfg.SearchOptions()
	if f.planar {
		searchOpts = append(searchOpts, astar.WithVertical(false))
	}
	sch, err := scheduler.New(
		astar.NewPathfinder(g, searchOpts...),
		append(a.cfg.SchedulerOptions(), scheduler.WithLogger(a.log))...,
	)
	if err != nil {
		return err
	}
	defer sch.Close()

	var plan movement.Plan
	job, err := sch.Submit(start, goal, func(path []*grid.Cell) {
		plan = movement.Split(g, start, path, unit.Points())
	})
	if err != nil {
		return err
	}
	if err := sch.Drain(cmd.Context()); err != nil {
		return err
	}
	res, _ := job.Result()

	out := cmd.OutOrStdout()
	p := newPalette(out)
	fmt.Fprintln(out, strings.Join([]string{
		p.metric("found", res.Found),
		p.metric("steps", len(res.Path)),
		p.metric("cost", res.Cost),
		p.metric("expanded", res.Expanded),
	}, "  "))
	if len(res.Path) > 0 {
		coords := make([]string, len(res.Path))
		for i, c := range res.Path {
			coords[i] = c.String()
		}
		fmt.Fprintln(out, p.metric("path", strings.Join(coords, " ")))
	}
	fmt.Fprintln(out, strings.Join([]string{
		p.metric("budget", plan.Budget),
		p.metric("required", plan.Required),
		p.metric("spent", plan.Spent()),
		p.metric("affordable", len(plan.Affordable)),
		p.metric("unaffordable", len(plan.Unaffordable)),
	}, "  "))

	if f.advance {
		moved, err := unit.Advance(plan)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, strings.Join([]string{
			p.metric("moved", moved),
			p.metric("at", unit.Cell()),
			p.metric("points", unit.Points()),
		}, "  "))
	}

	sx, sy, sz := g.Dimensions()
	fmt.Fprintln(out, strings.Join([]string{
		p.metric("grid", fmt.Sprintf("%dx%dx%d", sx, sy, sz)),
		p.metric("walkable", g.WalkableCount()),
		p.metric("digest", fmt.Sprintf("%016x", g.Digest())),
	}, "  "))
	if !f.noMap {
		fmt.Fprint(out, renderLayers(p, g, start, goal, plan))
	}

	return nil
}
