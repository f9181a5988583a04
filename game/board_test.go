package game

import (
	"testing"

	"golang.org/x/exp/rand"
)

func TestGenerateBoardStandard(t *testing.T) {
	b := generateBoard(2, rand.New(rand.NewSource(1)))

	if len(b.Tiles) != 19 {
		t.Fatalf("标准棋盘应有 19 个地块，实际 %d", len(b.Tiles))
	}
	if len(b.Vertices) != 54 {
		t.Errorf("顶点数应为 54，实际 %d", len(b.Vertices))
	}
	if len(b.Edges) != 72 {
		t.Errorf("边数应为 72，实际 %d", len(b.Edges))
	}

	terrains := map[TerrainType]int{}
	robbers := 0
	for _, tile := range b.Tiles {
		terrains[tile.Terrain]++
		if tile.HasRobber {
			robbers++
			if tile.Terrain != TerrainDesert {
				t.Errorf("收税官开局应在沙漠上，实际在 %s", tile.Terrain)
			}
			if tile.Number != 0 {
				t.Errorf("沙漠不应有点数，实际 %d", tile.Number)
			}
		}
	}
	if robbers != 1 {
		t.Errorf("应恰好 1 个收税官，实际 %d", robbers)
	}
	want := map[TerrainType]int{
		TerrainFields:    5,
		TerrainForest:    4,
		TerrainHills:     4,
		TerrainPasture:   3,
		TerrainMountains: 2,
		TerrainDesert:    1,
	}
	for terrain, n := range want {
		if terrains[terrain] != n {
			t.Errorf("地形 %s 应有 %d 个，实际 %d", terrain, n, terrains[terrain])
		}
	}
}

func TestGenerateBoardLarge(t *testing.T) {
	b := generateBoard(3, rand.New(rand.NewSource(1)))
	if len(b.Tiles) != 37 {
		t.Fatalf("5 人棋盘应有 37 个地块，实际 %d", len(b.Tiles))
	}
}

// 相邻两个地块的公共顶点和公共边必须归并成同一个 ID
func TestArenaSharing(t *testing.T) {
	b := generateBoard(2, rand.New(rand.NewSource(7)))

	// (0,0) 的 0 号角就是 (1,0) 的 4 号角
	v1, ok1 := b.VertexID(0, 0, 0)
	v2, ok2 := b.VertexID(1, 0, 4)
	if !ok1 || !ok2 {
		t.Fatal("顶点坐标无效")
	}
	if v1 != v2 {
		t.Errorf("相邻地块的公共顶点未归并: %d vs %d", v1, v2)
	}

	e1, ok1 := b.EdgeID(0, 0, 0)
	if !ok1 {
		t.Fatal("边坐标无效")
	}
	shared := false
	for i := 0; i < 6; i++ {
		if e2, ok := b.EdgeID(1, -1, i); ok && e1 == e2 {
			shared = true
		}
		if e2, ok := b.EdgeID(1, 0, i); ok && e1 == e2 {
			shared = true
		}
	}
	if !shared {
		t.Error("相邻地块的公共边未归并")
	}

	for _, v := range b.Vertices {
		if len(v.Edges) < 2 || len(v.Edges) > 3 {
			t.Fatalf("顶点 %d 的边数异常: %d", v.ID, len(v.Edges))
		}
	}
	for _, e := range b.Edges {
		if e.A == e.B {
			t.Fatalf("边 %d 两端是同一个顶点", e.ID)
		}
	}
}

func TestBoardDeterministicBySeed(t *testing.T) {
	a := generateBoard(2, rand.New(rand.NewSource(42)))
	b := generateBoard(2, rand.New(rand.NewSource(42)))
	for i := range a.Tiles {
		if a.Tiles[i].Terrain != b.Tiles[i].Terrain || a.Tiles[i].Number != b.Tiles[i].Number {
			t.Fatal("同一种子生成的棋盘应当一致")
		}
	}
}
