// Package pathfinding is an interactive A* demonstrator on a square grid:
// place a start, an end and barriers, then watch the search grow its open
// and closed sets until it draws the shortest path.
//
// 🚀 What is in here?
//
//	A small set of packages that share one board model:
//		• Grid model: cells, roles, 4-neighborhoods, pixel mapping
//		• A* search: Manhattan heuristic, stable tie-breaking, step hooks, cancellation
//		• Layout text and YAML scenarios for saving and replaying boards
//		• Three front-ends: desktop window, browser page, command line
//
// Packages, leaf first:
//
//	gridgraph/        grid of cells, markers, connectivity and barrier analysis
//	astar/            Search and Reconstruct
//	layout/           text layout codec and YAML scenarios
//	board/            editing session shared by every front-end
//	render/           role colors and PNG snapshots
//	server/           REST API and websocket frame stream
//	internal/config/  defaults, YAML file and PATHFINDER_* environment
//	internal/logging/ logrus setup
//	cmd/pathfinder/   desktop app
//	cmd/pathserver/   web app
//	cmd/pathsolve/    command-line solver
//
// Quick ASCII example (S start, E end, # barrier, * path, x closed, o open):
//
//	S*o
//	#*#
//	E*o
//
// Run the desktop app:
//
//	go run ./cmd/pathfinder
package pathfinding
