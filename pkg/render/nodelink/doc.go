// Package nodelink draws a solution path as a node-link diagram.
//
// Each stack on the path becomes a box and each flip an arrow labeled with
// the number of discs flipped. The start is shaded yellow and the goal
// green.
//
// # Usage
//
//	dot := nodelink.ToDOT(res.BestPath, res.Moves, nodelink.Options{Mode: mode})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// With Detailed set, every box also shows its distance from the start and
// the stack is drawn top to bottom, one disc per line, with burnt sides
// marked.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion live in the parent render package.
package nodelink
