package grid

// directions4 holds the four orthogonal neighbor offsets used by the
// connectivity search.
var directions4 = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// isConnected reports whether every non-block cell is reachable from every
// other non-block cell via 4-connectivity. An all-block grid is considered
// connected (vacuously); callers that require at least one white cell
// should check that separately.
func isConnected(g *Grid) bool {
	start := -1
	startCol := -1
	total := 0
	for r := 0; r < g.Size; r++ {
		for c := 0; c < g.Size; c++ {
			if g.Cells[r][c].Block {
				continue
			}
			total++
			if start == -1 {
				start, startCol = r, c
			}
		}
	}
	if total == 0 {
		return true
	}

	visited := make([][]bool, g.Size)
	for i := range visited {
		visited[i] = make([]bool, g.Size)
	}

	queue := make([][2]int, 0, total)
	queue = append(queue, [2]int{start, startCol})
	visited[start][startCol] = true
	reached := 1

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, d := range directions4 {
			nr, nc := cur[0]+d[0], cur[1]+d[1]
			if !g.InBounds(nr, nc) || visited[nr][nc] {
				continue
			}
			if g.Cells[nr][nc].Block {
				continue
			}
			visited[nr][nc] = true
			reached++
			queue = append(queue, [2]int{nr, nc})
		}
	}

	return reached == total
}
