package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	halfAngle := float64(angle) / 2
	s := float32(math.Sin(halfAngle))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(halfAngle)),
	}
}

// QuatFromEulerDegrees builds the rotation that applies z, then x, then y
// (all in degrees). It is the inverse of EulerDegrees.
func QuatFromEulerDegrees(x, y, z float32) Quat {
	qx := QuatFromAxisAngle(Vec3{X: 1}, degToRad(x))
	qy := QuatFromAxisAngle(Vec3{Y: 1}, degToRad(y))
	qz := QuatFromAxisAngle(Vec3{Z: 1}, degToRad(z))
	return qy.Mul(qx).Mul(qz)
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Mul multiplies two quaternions (combines rotations).
// The result applies other first, then q.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// EulerDegrees decomposes the rotation into angles around X, Y and Z in
// degrees, using the z-x-y application order. Each angle is in [0, 360).
// At the poles (x = ±90) the z angle is folded into y and reported as 0.
func (q Quat) EulerDegrees() Vec3 {
	n := q.Normalize()
	x, y, z, w := float64(n.X), float64(n.Y), float64(n.Z), float64(n.W)

	m02 := 2 * (x*z + y*w)
	m10 := 2 * (x*y + z*w)
	m11 := 1 - 2*(x*x+z*z)
	m12 := 2 * (y*z - x*w)
	m20 := 2 * (x*z - y*w)
	m22 := 1 - 2*(x*x+y*y)
	m00 := 1 - 2*(y*y+z*z)

	var ex, ey, ez float64
	sinX := -m12
	if math.Abs(sinX) >= 0.99999 {
		ex = math.Copysign(math.Pi/2, sinX)
		ey = math.Atan2(-m20, m00)
		ez = 0
	} else {
		ex = math.Asin(sinX)
		ey = math.Atan2(m02, m22)
		ez = math.Atan2(m10, m11)
	}

	return Vec3{
		X: wrapDegrees(ex * 180 / math.Pi),
		Y: wrapDegrees(ey * 180 / math.Pi),
		Z: wrapDegrees(ez * 180 / math.Pi),
	}
}

func degToRad(deg float32) float32 {
	return deg * math.Pi / 180
}

// wrapDegrees maps an angle into [0, 360).
func wrapDegrees(deg float64) float32 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// Rounding can land exactly on 360 after the mod for tiny negatives.
	if deg >= 360 {
		deg = 0
	}
	// Snap values that are zero up to float noise.
	if math.Abs(deg) < 1e-4 || math.Abs(deg-360) < 1e-4 {
		return 0
	}
	return float32(deg)
}
