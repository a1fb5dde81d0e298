package system

// Visibility is the boolean result grid of one field-of-view computation,
// indexed [y][x] over the map's full extent.
type Visibility [][]bool

// At reports visibility at (x, y); out-of-bounds cells are never visible.
func (v Visibility) At(x, y int) bool {
	if y < 0 || y >= len(v) || x < 0 || x >= len(v[y]) {
		return false
	}
	return v[y][x]
}

// octant transform matrices.
// For each octant, a (dx, dy) sweep pair maps to a world offset via:
//   worldX = cx + dx*xx + dy*xy
//   worldY = cy + dx*yx + dy*yy
// where dx sweeps horizontally within the row and dy is the fixed row index.
// These match the standard RogueBasin recursive shadowcasting multipliers.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// ComputeFOV runs recursive shadowcasting from (originX, originY) and
// returns the visibility grid. It is a pure function of its inputs: the
// same map, origin and radius always yield the same grid. The origin is
// always visible; a cell is lit when it lies inside the current slope cone
// and within the Euclidean radius bound dx²+dy² ≤ radius².
func ComputeFOV(m Map, originX, originY, radius int) Visibility {
	width, height := m.Size()
	vis := make(Visibility, height)
	for y := range vis {
		vis[y] = make([]bool, width)
	}

	if originX < 0 || originX >= width || originY < 0 || originY >= height {
		return vis
	}
	vis[originY][originX] = true
	if radius <= 0 {
		return vis
	}

	for _, oc := range octants {
		castLight(m, vis, originX, originY, 1, 1.0, 0.0, radius, oc[0], oc[1], oc[2], oc[3])
	}
	return vis
}

// castLight casts light for one octant using recursive shadowcasting.
//
//   - j is the current row (distance from origin along the main axis)
//   - dy = -j is fixed for the entire inner sweep (the row coordinate)
//   - dx sweeps from -j to 0 (the column coordinate within the row)
//   - world position: (cx + dx*xx + dy*xy,  cy + dx*yx + dy*yy)
//   - lSlope = (dx - 0.5) / (dy + 0.5)   rSlope = (dx + 0.5) / (dy - 0.5)
//
// A transparent→opaque transition narrows the cone and recurses into the
// next row; opaque→transparent resumes the scan with the updated start
// slope. A row that ends blocked terminates the octant.
func castLight(m Map, vis Visibility, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	width, height := m.Size()
	radiusSq := float64(radius * radius)
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			wx := cx + dx*xx + dy*xy
			wy := cy + dx*yx + dy*yy

			// dy is negative so (dy+0.5) and (dy-0.5) are both negative,
			// making the slopes positive for dx < 0 — slopes decrease
			// toward 0 as dx moves right.
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue // cell is to the right of the current beam
			}
			if end > lSlope {
				break // cell is to the left; all remaining cells are too
			}

			inBounds := wx >= 0 && wx < width && wy >= 0 && wy < height
			if inBounds && float64(dx*dx+dy*dy) <= radiusSq {
				vis[wy][wx] = true
			}

			opaque := !inBounds || !m.IsTransparent(wx, wy)

			if blocked {
				if opaque {
					// Still inside a wall run — advance the shadow boundary.
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
				continue
			}
			if opaque && j < radius {
				// Hit a new wall — cast a child scan beyond it.
				blocked = true
				castLight(m, vis, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
