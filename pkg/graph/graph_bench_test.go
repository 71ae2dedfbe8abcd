package graph

import (
	"fmt"
	"testing"
)

// generateLinearChain builds a chain of size vertices "0" -> "1" -> ... -> "size-1".
func generateLinearChain(size int) ([]string, []Edge) {
	vertices := make([]string, size)
	edges := make([]Edge, 0, size-1)
	for i := 0; i < size; i++ {
		vertices[i] = fmt.Sprintf("%d", i)
		if i > 0 {
			edges = append(edges, Edge{From: fmt.Sprintf("%d", i-1), To: fmt.Sprintf("%d", i)})
		}
	}
	return vertices, edges
}

// generateWideLayers builds `layers` layers of `width` independent vertices
// each, with every vertex in layer N connected to every vertex in layer N+1.
func generateWideLayers(layers, width int) ([]string, []Edge) {
	var vertices []string
	var edges []Edge
	id := func(l, w int) string { return fmt.Sprintf("l%d_%d", l, w) }
	for l := 0; l < layers; l++ {
		for w := 0; w < width; w++ {
			vertices = append(vertices, id(l, w))
			if l > 0 {
				for pw := 0; pw < width; pw++ {
					edges = append(edges, Edge{From: id(l-1, pw), To: id(l, w)})
				}
			}
		}
	}
	return vertices, edges
}

func BenchmarkLayersLinear(b *testing.B) {
	for _, size := range []int{10, 100, 1000, 10000} {
		b.Run(fmt.Sprintf("%d_vertices", size), func(b *testing.B) {
			vertices, edges := generateLinearChain(size)
			g := New(vertices, edges)

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := g.Layers(); err != nil {
					b.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

func BenchmarkLayersWide(b *testing.B) {
	for _, width := range []int{10, 50, 100} {
		b.Run(fmt.Sprintf("%d_wide", width), func(b *testing.B) {
			vertices, edges := generateWideLayers(5, width)
			g := New(vertices, edges)

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := g.Layers(); err != nil {
					b.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

func BenchmarkTopologicalSort(b *testing.B) {
	vertices, edges := generateLinearChain(1000)
	g := New(vertices, edges)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := g.TopologicalSort(); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}
