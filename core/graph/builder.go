package graph

import (
	"context"
	"runtime"
	"sort"

	"github.com/siherrmann/moviegraph/core/weight"
	"github.com/siherrmann/moviegraph/helper"
	"github.com/siherrmann/moviegraph/model"
	"golang.org/x/sync/errgroup"
)

// Build creates the complete similarity graph over records.
//
// Every record is validated before any edge is computed. The first malformed
// record in title order aborts the build with a *model.MalformedRecordError.
// The map key is the movie's identity and must equal its Title.
//
// Rows of the weight triangle are computed concurrently, bounded by
// config.Workers (GOMAXPROCS when zero). Each row is written by exactly one
// goroutine.
func Build(ctx context.Context, records map[string]*model.Movie, policy *weight.Policy, config model.BuildConfig) (*SimilarityGraph, error) {
	if policy == nil {
		policy = weight.Default()
	}

	titles := make([]string, 0, len(records))
	for title := range records {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	movies := make([]*model.Movie, len(titles))
	nodes := make([]model.Node, len(titles))
	for i, title := range titles {
		m := records[title]
		if err := m.Validate(policy.Required...); err != nil {
			return nil, err
		}
		if m.Title != title {
			return nil, &model.MalformedRecordError{Title: title, Field: "Title"}
		}
		movies[i] = m
		nodes[i] = m.Node()
	}

	g, err := newGraph(nodes)
	if err != nil {
		return nil, helper.NewError("create graph", err)
	}

	// rows[i][k] holds the weight between movies i and i+1+k
	rows := make([][]float64, len(movies))

	workers := config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := range movies {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			row := make([]float64, len(movies)-i-1)
			for k := range row {
				w := policy.Weight(movies[i], movies[i+1+k])
				if err := checkWeight(w); err != nil {
					return helper.NewError("weight "+titles[i]+" / "+titles[i+1+k], err)
				}
				row[k] = w
			}
			rows[i] = row
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for i := range g.adj {
		g.adj[i] = make([]halfEdge, 0, len(movies)-1)
	}
	for i, row := range rows {
		for k, w := range row {
			j := i + 1 + k
			g.adj[i] = append(g.adj[i], halfEdge{to: j, weight: w})
			g.adj[j] = append(g.adj[j], halfEdge{to: i, weight: w})
		}
		g.edgeCount += len(row)
	}

	return g, nil
}
