package game

import "math"

// HexSize 六边形外接圆半径（像素），所有几何计算的基准
const HexSize = 50.0

// vertexEpsilon 顶点/边去重的像素容差
const vertexEpsilon = 5.0

// Point 像素坐标
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// hexToPixel 轴坐标 (q,r) 转六边形中心像素坐标（尖顶朝上）
func hexToPixel(q, r int, size float64) Point {
	x := size * (math.Sqrt(3)*float64(q) + math.Sqrt(3)/2*float64(r))
	y := size * 3 / 2 * float64(r)
	return Point{X: x, Y: y}
}

// hexCorners 六边形的 6 个角，角 i 位于 60*i-30 度方向
func hexCorners(center Point, size float64) [6]Point {
	var corners [6]Point
	for i := 0; i < 6; i++ {
		angle := math.Pi / 180 * float64(60*i-30)
		corners[i] = Point{
			X: center.X + size*math.Cos(angle),
			Y: center.Y + size*math.Sin(angle),
		}
	}
	return corners
}

func pixelDistance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
