package main

// Facelet model for the Rubik's cube scenario: 54 stickers, 9 per face, in
// U,R,F,D,L,B order (matching the usual Singmaster face layout), each
// face's 9 positions read row-major. Generator permutations for the six
// face turns are derived from a small 3D coordinate model (each facelet's
// position and outward normal) rather than hand-typed, so the combinatorial
// structure — which facelets move together across adjacent faces — follows
// directly from the cube's actual geometry instead of transcription.

type vec3 = [3]int

var faceOrder = []string{"U", "R", "F", "D", "L", "B"}

var faceOffset = map[string]int{"U": 0, "R": 9, "F": 18, "D": 27, "L": 36, "B": 45}

var faceNormal = map[string]vec3{
	"U": {0, 1, 0},
	"D": {0, -1, 0},
	"F": {0, 0, 1},
	"B": {0, 0, -1},
	"R": {1, 0, 0},
	"L": {-1, 0, 0},
}

func faceletCoord(face string, row, col int) vec3 {
	switch face {
	case "F":
		return vec3{col - 1, 1 - row, 1}
	case "U":
		return vec3{col - 1, 1, row - 1}
	case "D":
		return vec3{col - 1, -1, 1 - row}
	case "R":
		return vec3{1, 1 - row, 1 - col}
	case "L":
		return vec3{-1, 1 - row, col - 1}
	case "B":
		return vec3{1 - col, 1 - row, -1}
	}
	panic("rubik: unknown face " + face)
}

func inverseFaceletCoord(face string, p vec3) (row, col int) {
	switch face {
	case "F":
		return 1 - p[1], p[0] + 1
	case "U":
		return p[2] + 1, p[0] + 1
	case "D":
		return 1 - p[2], p[0] + 1
	case "R":
		return 1 - p[1], 1 - p[2]
	case "L":
		return 1 - p[1], p[2] + 1
	case "B":
		return 1 - p[1], 1 - p[0]
	}
	panic("rubik: unknown face " + face)
}

func faceByNormal(n vec3) string {
	for _, f := range faceOrder {
		if faceNormal[f] == n {
			return f
		}
	}
	panic("rubik: no face with normal")
}

// moveAxis returns the axis index (0=x,1=y,2=z) and the layer value a
// facelet's coordinate on that axis must equal to be affected by move.
func moveAxis(move string) (axis, value int) {
	switch move {
	case "U":
		return 1, 1
	case "D":
		return 1, -1
	case "R":
		return 0, 1
	case "L":
		return 0, -1
	case "F":
		return 2, 1
	case "B":
		return 2, -1
	}
	panic("rubik: unknown move " + move)
}

// rotate applies the 90-degree clockwise-viewed-from-outside rotation for
// move to v, leaving the component along move's own axis unchanged.
func rotate(move string, v vec3) vec3 {
	switch move {
	case "U":
		return vec3{-v[2], v[1], v[0]}
	case "D":
		return vec3{v[2], v[1], -v[0]}
	case "R":
		return vec3{v[0], v[2], -v[1]}
	case "L":
		return vec3{v[0], -v[2], v[1]}
	case "F":
		return vec3{v[1], -v[0], v[2]}
	case "B":
		return vec3{-v[1], v[0], v[2]}
	}
	panic("rubik: unknown move " + move)
}

// faceTurnImage builds the 54-point permutation image for one quarter-turn
// clockwise face move.
func faceTurnImage(move string) []int32 {
	img := make([]int32, 54)
	for i := range img {
		img[i] = int32(i)
	}
	axis, value := moveAxis(move)
	for _, face := range faceOrder {
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				pos := faceletCoord(face, row, col)
				if pos[axis] != value {
					continue
				}
				newPos := rotate(move, pos)
				newFace := faceByNormal(rotate(move, faceNormal[face]))
				newRow, newCol := inverseFaceletCoord(newFace, newPos)
				oldIdx := faceOffset[face] + row*3 + col
				newIdx := faceOffset[newFace] + newRow*3 + newCol
				img[oldIdx] = int32(newIdx)
			}
		}
	}
	return img
}

// RubikGenerators returns the six face-turn generator images (U, R, F, D,
// L, B) on the 54-sticker degree.
func RubikGenerators() map[string][]int32 {
	gens := make(map[string][]int32, 6)
	for _, m := range faceOrder {
		gens[m] = faceTurnImage(m)
	}
	return gens
}
