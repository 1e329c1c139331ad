// 指示: miu200521358
package mmath

import "math"

// Euler はXYZ順のオイラー角(ラジアン)を表す。
type Euler struct {
	X float64
	Y float64
	Z float64
}

// NewEulerFromDegrees は度数指定からオイラー角を生成する。
func NewEulerFromDegrees(x, y, z float64) Euler {
	return Euler{X: DegToRad(x), Y: DegToRad(y), Z: DegToRad(z)}
}

// Degrees は度数表現の各軸成分を返す。
func (e Euler) Degrees() (float64, float64, float64) {
	return RadToDeg(e.X), RadToDeg(e.Y), RadToDeg(e.Z)
}

// MuledScalar は各軸をスカラー倍した結果を返す。
func (e Euler) MuledScalar(scalar float64) Euler {
	return Euler{X: e.X * scalar, Y: e.Y * scalar, Z: e.Z * scalar}
}

// Lerped は各軸を係数tで線形補間した結果を返す。
func (e Euler) Lerped(other Euler, t float64) Euler {
	return Euler{
		X: e.X + (other.X-e.X)*t,
		Y: e.Y + (other.Y-e.Y)*t,
		Z: e.Z + (other.Z-e.Z)*t,
	}
}

// NearEquals は許容誤差内で等しいか判定する。
func (e Euler) NearEquals(other Euler, epsilon float64) bool {
	return math.Abs(e.X-other.X) <= epsilon &&
		math.Abs(e.Y-other.Y) <= epsilon &&
		math.Abs(e.Z-other.Z) <= epsilon
}

// IsZero は零回転か判定する。
func (e Euler) IsZero() bool {
	return e.X == 0 && e.Y == 0 && e.Z == 0
}

// RadToDeg はラジアンを度数へ変換する。
func RadToDeg(radian float64) float64 {
	return radian * 180.0 / math.Pi
}

// DegToRad は度数をラジアンへ変換する。
func DegToRad(degree float64) float64 {
	return degree * math.Pi / 180.0
}

// ClampFloat はmin-maxで値をクランプする。
func ClampFloat(value float64, min float64, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
