package game

import (
	"golang.org/x/exp/rand"
)

// Tile 一个六边形地块。生成后除 HasRobber 外不再变化。
// Number 为 0 表示无点数（沙漠）。
type Tile struct {
	Q         int         `json:"q"`
	R         int         `json:"r"`
	Terrain   TerrainType `json:"terrain"`
	Number    int         `json:"number"`
	HasRobber bool        `json:"hasRobber"`

	center  Point
	corners [6]int // 六个角的规范顶点 ID
	edges   [6]int // 六条边的规范边 ID
}

// Vertex 规范顶点：多个地块共享的角在棋盘生成时被聚类为同一个顶点，
// 之后所有放置校验只比较 ID，不再重算几何。
type Vertex struct {
	ID    int
	Pos   Point
	Tiles []int // 相邻地块下标
	Edges []int // 关联边 ID
}

// Edge 规范边：同理由中点聚类而来
type Edge struct {
	ID    int
	A, B  int // 两端顶点 ID
	Mid   Point
	Tiles []int
}

// Board 地块集合 + 顶点/边竞技场
type Board struct {
	Tiles    []*Tile
	Vertices []*Vertex
	Edges    []*Edge
}

// 标准版（半径 2，19 块）地形与点数分布
var standardTerrains = []TerrainType{
	TerrainFields, TerrainFields, TerrainFields, TerrainFields, TerrainFields,
	TerrainForest, TerrainForest, TerrainForest, TerrainForest,
	TerrainHills, TerrainHills, TerrainHills, TerrainHills,
	TerrainPasture, TerrainPasture, TerrainPasture,
	TerrainMountains, TerrainMountains,
	TerrainDesert,
}

var standardNumbers = []int{2, 12, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11}

// 5 人版（半径 3，37 块）
var largeTerrains = []TerrainType{
	TerrainFields, TerrainFields, TerrainFields, TerrainFields, TerrainFields, TerrainFields, TerrainFields, TerrainFields,
	TerrainForest, TerrainForest, TerrainForest, TerrainForest, TerrainForest, TerrainForest, TerrainForest, TerrainForest,
	TerrainHills, TerrainHills, TerrainHills, TerrainHills, TerrainHills, TerrainHills, TerrainHills,
	TerrainPasture, TerrainPasture, TerrainPasture, TerrainPasture, TerrainPasture, TerrainPasture, TerrainPasture,
	TerrainMountains, TerrainMountains, TerrainMountains, TerrainMountains,
	TerrainDesert, TerrainDesert, TerrainDesert,
}

var largeNumbers = []int{
	2, 2, 3, 3, 3, 3, 4, 4, 4, 5, 5, 5, 6, 6, 6, 6,
	8, 8, 8, 8, 9, 9, 9, 10, 10, 10, 10, 11, 11, 11, 11, 12, 12, 12,
}

// generateBoard 按半径生成地块并建立顶点/边竞技场。
// 地形和点数用注入的随机源洗牌，同一个种子必然得到同一张图。
func generateBoard(radius int, rng *rand.Rand) *Board {
	var terrains []TerrainType
	var numbers []int
	if radius >= 3 {
		terrains = append([]TerrainType(nil), largeTerrains...)
		numbers = append([]int(nil), largeNumbers...)
	} else {
		terrains = append([]TerrainType(nil), standardTerrains...)
		numbers = append([]int(nil), standardNumbers...)
	}
	rng.Shuffle(len(terrains), func(i, j int) { terrains[i], terrains[j] = terrains[j], terrains[i] })
	rng.Shuffle(len(numbers), func(i, j int) { numbers[i], numbers[j] = numbers[j], numbers[i] })

	b := &Board{}
	terrainIdx, numberIdx := 0, 0
	for q := -radius; q <= radius; q++ {
		r1 := max(-radius, -q-radius)
		r2 := min(radius, -q+radius)
		for r := r1; r <= r2; r++ {
			terrain := terrains[terrainIdx]
			terrainIdx++
			num := 0
			if terrain != TerrainDesert {
				num = numbers[numberIdx]
				numberIdx++
			}
			b.Tiles = append(b.Tiles, &Tile{
				Q:         q,
				R:         r,
				Terrain:   terrain,
				Number:    num,
				HasRobber: terrain == TerrainDesert,
				center:    hexToPixel(q, r, HexSize),
			})
		}
	}
	b.buildArenas()
	return b
}

// buildArenas 把每个地块的角和边按像素距离聚类成规范 ID。
// 只在生成时跑一次，之后的规则判定全部基于 ID。
func (b *Board) buildArenas() {
	for ti, tile := range b.Tiles {
		corners := hexCorners(tile.center, HexSize)
		for ci := 0; ci < 6; ci++ {
			tile.corners[ci] = b.internVertex(corners[ci], ti)
		}
		for ei := 0; ei < 6; ei++ {
			a := tile.corners[ei]
			c := tile.corners[(ei+1)%6]
			tile.edges[ei] = b.internEdge(a, c, ti)
		}
	}
}

func (b *Board) internVertex(pos Point, tileIdx int) int {
	for _, v := range b.Vertices {
		if pixelDistance(v.Pos, pos) < vertexEpsilon {
			v.Tiles = appendUnique(v.Tiles, tileIdx)
			return v.ID
		}
	}
	v := &Vertex{ID: len(b.Vertices), Pos: pos, Tiles: []int{tileIdx}}
	b.Vertices = append(b.Vertices, v)
	return v.ID
}

func (b *Board) internEdge(a, c, tileIdx int) int {
	mid := midpoint(b.Vertices[a].Pos, b.Vertices[c].Pos)
	for _, e := range b.Edges {
		if pixelDistance(e.Mid, mid) < vertexEpsilon {
			e.Tiles = appendUnique(e.Tiles, tileIdx)
			return e.ID
		}
	}
	e := &Edge{ID: len(b.Edges), A: a, B: c, Mid: mid, Tiles: []int{tileIdx}}
	b.Edges = append(b.Edges, e)
	b.Vertices[a].Edges = append(b.Vertices[a].Edges, e.ID)
	b.Vertices[c].Edges = append(b.Vertices[c].Edges, e.ID)
	return e.ID
}

// VertexID 把 (q, r, 角序号) 解析为规范顶点 ID
func (b *Board) VertexID(q, r, cornerIndex int) (int, bool) {
	tile := b.TileAt(q, r)
	if tile == nil || cornerIndex < 0 || cornerIndex >= 6 {
		return 0, false
	}
	return tile.corners[cornerIndex], true
}

// EdgeID 把 (q, r, 边序号) 解析为规范边 ID
func (b *Board) EdgeID(q, r, edgeIndex int) (int, bool) {
	tile := b.TileAt(q, r)
	if tile == nil || edgeIndex < 0 || edgeIndex >= 6 {
		return 0, false
	}
	return tile.edges[edgeIndex], true
}

func (b *Board) TileAt(q, r int) *Tile {
	for _, t := range b.Tiles {
		if t.Q == q && t.R == r {
			return t
		}
	}
	return nil
}

// adjacentVertices 与该顶点隔一条边相连的顶点（村庄间距规则用）
func (b *Board) adjacentVertices(vertexID int) []int {
	v := b.Vertices[vertexID]
	out := make([]int, 0, len(v.Edges))
	for _, eid := range v.Edges {
		e := b.Edges[eid]
		if e.A == vertexID {
			out = append(out, e.B)
		} else {
			out = append(out, e.A)
		}
	}
	return out
}

// edgeOtherEnd 返回边上与 from 相对的另一端
func (b *Board) edgeOtherEnd(edgeID, from int) int {
	e := b.Edges[edgeID]
	if e.A == from {
		return e.B
	}
	return e.A
}

func appendUnique(list []int, v int) []int {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
