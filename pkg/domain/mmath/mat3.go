// 指示: miu200521358
package mmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const gimbalLockEpsilon = 1e-9

// Mat3 は3x3回転行列を表す。
type Mat3 struct {
	mgl64.Mat3
}

// NewMat3 は単位行列を生成する。
func NewMat3() Mat3 {
	return Mat3{Mat3: mgl64.Ident3()}
}

// NewMat3FromAxes は各軸ベクトルを列として回転行列を組み立てる。
// 引数は正規直交右手系であること。
func NewMat3FromAxes(axisX, axisY, axisZ Vec3) Mat3 {
	return Mat3{Mat3: mgl64.Mat3FromCols(
		mgl64.Vec3{axisX.X, axisX.Y, axisX.Z},
		mgl64.Vec3{axisY.X, axisY.Y, axisY.Z},
		mgl64.Vec3{axisZ.X, axisZ.Y, axisZ.Z},
	)}
}

// NewMat3FromEuler はXYZ順オイラー角から回転行列を生成する。
// X回転を最初に適用する合成 Rz・Ry・Rx とする。
func NewMat3FromEuler(e Euler) Mat3 {
	return Mat3{Mat3: mgl64.Rotate3DZ(e.Z).Mul3(mgl64.Rotate3DY(e.Y)).Mul3(mgl64.Rotate3DX(e.X))}
}

// ToEuler はXYZ順オイラー角へ変換する。
func (m Mat3) ToEuler() Euler {
	sinY := -m.At(2, 0)
	if sinY >= 1.0-gimbalLockEpsilon {
		// ジンバルロック(Y=+90度)。Z=0へ固定して残差をXへ寄せる。
		return Euler{
			X: math.Atan2(m.At(0, 1), m.At(0, 2)),
			Y: math.Pi / 2,
			Z: 0,
		}
	}
	if sinY <= -1.0+gimbalLockEpsilon {
		// ジンバルロック(Y=-90度)。
		return Euler{
			X: math.Atan2(-m.At(0, 1), -m.At(0, 2)),
			Y: -math.Pi / 2,
			Z: 0,
		}
	}
	return Euler{
		X: math.Atan2(m.At(2, 1), m.At(2, 2)),
		Y: math.Asin(sinY),
		Z: math.Atan2(m.At(1, 0), m.At(0, 0)),
	}
}

// Muled は行列積 m・other を返す。
func (m Mat3) Muled(other Mat3) Mat3 {
	return Mat3{Mat3: m.Mul3(other.Mat3)}
}

// Inverted は回転行列の逆行列(転置)を返す。
func (m Mat3) Inverted() Mat3 {
	return Mat3{Mat3: m.Transpose()}
}

// MulVec3 はベクトルへ回転を適用する。
func (m Mat3) MulVec3(v Vec3) Vec3 {
	result := m.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return NewVec3(result.X(), result.Y(), result.Z())
}

// NearEquals は許容誤差内で等しいか判定する。
func (m Mat3) NearEquals(other Mat3, epsilon float64) bool {
	for i := 0; i < 9; i++ {
		if math.Abs(m.Mat3[i]-other.Mat3[i]) > epsilon {
			return false
		}
	}
	return true
}
