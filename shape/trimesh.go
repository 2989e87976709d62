package shape

import (
	"fmt"
	"slices"

	"go.viam.com/collide/bvt"
	"go.viam.com/collide/spatialmath"
)

// TriMesh is an indexed triangle mesh. Its parts are its triangles.
type TriMesh[V spatialmath.Vector[V]] struct {
	vertices  []V
	indices   [][3]int
	triangles []*Triangle[V]
	tree      *bvt.Tree[V]
}

// NewTriMesh creates a mesh from vertices and triangles given as vertex index triples.
func NewTriMesh[V spatialmath.Vector[V]](vertices []V, indices [][3]int) (*TriMesh[V], error) {
	if len(indices) == 0 {
		return nil, ErrEmptyShape
	}
	triangles := make([]*Triangle[V], len(indices))
	leaves := make([]bvt.Leaf[V], len(indices))
	id := spatialmath.NewIdentity[V]()
	for i, tri := range indices {
		for _, idx := range tri {
			if idx < 0 || idx >= len(vertices) {
				return nil, newBadIndexError("vertex", idx, len(vertices))
			}
		}
		triangles[i] = NewTriangle(vertices[tri[0]], vertices[tri[1]], vertices[tri[2]])
		leaves[i] = bvt.Leaf[V]{Index: i, BV: triangles[i].AABB(id)}
	}
	return &TriMesh[V]{
		vertices:  slices.Clone(vertices),
		indices:   slices.Clone(indices),
		triangles: triangles,
		tree:      bvt.New(leaves),
	}, nil
}

// Vertices returns the mesh vertices.
func (tm *TriMesh[V]) Vertices() []V {
	return tm.vertices
}

// Indices returns the vertex index triples of the triangles.
func (tm *TriMesh[V]) Indices() [][3]int {
	return tm.indices
}

// Triangle returns the i-th triangle in local coordinates.
func (tm *TriMesh[V]) Triangle(i int) *Triangle[V] {
	return tm.triangles[i]
}

func (tm *TriMesh[V]) BVT() *bvt.Tree[V] {
	return tm.tree
}

func (tm *TriMesh[V]) NumParts() int {
	return len(tm.triangles)
}

func (tm *TriMesh[V]) MapTransformedPartAt(
	i int,
	m spatialmath.Isometry[V],
	fn func(spatialmath.Isometry[V], Shape[V]),
) {
	fn(m, tm.triangles[i])
}

func (tm *TriMesh[V]) AABB(m spatialmath.Isometry[V]) spatialmath.AABB[V] {
	placed := make([]V, len(tm.vertices))
	for i, v := range tm.vertices {
		placed[i] = m.TransformPoint(v)
	}
	box, _ := spatialmath.AABBFromPoints(placed)
	return box
}

func (tm *TriMesh[V]) String() string {
	return fmt.Sprintf("Type: TriMesh | Vertices: %d | Triangles: %d", len(tm.vertices), len(tm.triangles))
}
