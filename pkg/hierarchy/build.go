// Package hierarchy builds the rooted project → phase → task → condition
// tree from aggregated records.
package hierarchy

import (
	"fmt"
	"time"

	"github.com/vanderheijden86/sunburst/pkg/metrics"
	"github.com/vanderheijden86/sunburst/pkg/model"
	"github.com/vanderheijden86/sunburst/pkg/status"
)

// builder tracks a per-parent name index so sibling lookup does not scan.
// Children keep insertion order; the index only accelerates the search.
type builder struct {
	palette model.Palette
	index   map[*model.Node]map[string]*model.Node
}

// Build constructs the status tree. The root has an empty name and
// rootColor; projects, phases and tasks are merged by name under their
// parent and coloured by their own aggregated status; every record
// contributes one condition leaf of size 1, even when its name repeats.
//
// A record missing any level name fails the whole build with
// model.ErrMalformedRecord.
func Build(slim []model.SlimRecord, rootColor string, palette model.Palette) (*model.Node, error) {
	defer metrics.Timer(metrics.Build)()

	root := &model.Node{Name: "", Color: rootColor, Children: []*model.Node{}}
	b := builder{
		palette: palette,
		index:   make(map[*model.Node]map[string]*model.Node),
	}
	for i, r := range slim {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		b.insert(root, r)
	}
	return root, nil
}

func (b *builder) insert(root *model.Node, r model.SlimRecord) {
	current := root
	for _, level := range model.Levels {
		name := r.Name(level)
		color := b.palette.ColorAt(r, level)

		if level == model.LevelCondition {
			current.Children = append(current.Children, &model.Node{Name: name, Color: color, Size: 1})
			return
		}

		children := b.index[current]
		if children == nil {
			children = make(map[string]*model.Node)
			b.index[current] = children
		}
		next, ok := children[name]
		if !ok {
			next = &model.Node{Name: name, Color: color, Children: []*model.Node{}}
			children[name] = next
			current.Children = append(current.Children, next)
		}
		current = next
	}
}

// Options configures BuildFromRecords.
type Options struct {
	Now       time.Time
	RootColor string
	Palette   model.Palette
}

// BuildFromRecords aggregates raw records and builds the tree in one step.
// It returns the aggregated records alongside the tree.
func BuildFromRecords(records []model.Record, opts Options) (*model.Node, []model.SlimRecord, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.RootColor == "" {
		opts.RootColor = model.DefaultRootColor
	}
	slim := status.Aggregate(records, opts.Now)
	root, err := Build(slim, opts.RootColor, opts.Palette.WithDefaults())
	if err != nil {
		return nil, slim, err
	}
	return root, slim, nil
}
