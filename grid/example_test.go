package grid_test

import (
	"fmt"

	"github.com/katalvlaran/voxpath/grid"
)

// ExampleGrid_CellAt shows that out-of-range lookups saturate to edge cells.
func ExampleGrid_CellAt() {
	g := grid.New(grid.Spec{SizeX: 5, SizeY: 1, SizeZ: 5, ScaleXZ: 1, ScaleY: 2})

	fmt.Println(g.CellAt(2, 0, 3))
	fmt.Println(g.CellAt(-4, 3, 9))
	// Output:
	// 2,0,3
	// 0,0,4
}

// ExampleGrid_WorldToCell converts between world positions and cells.
func ExampleGrid_WorldToCell() {
	g := grid.New(grid.Spec{SizeX: 10, SizeY: 3, SizeZ: 10, ScaleXZ: 1.5, ScaleY: 2.3})

	p := g.CellToWorld(4, 2, 7)
	fmt.Printf("%.1f %.1f %.1f\n", p.X, p.Y, p.Z)
	fmt.Println(g.WorldToCell(grid.Vec3{X: 6.2, Y: 4.4, Z: 10.4}))
	// Output:
	// 6.0 4.6 10.5
	// 4,2,7
}
