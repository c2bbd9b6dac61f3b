package dice

import "math"

// Vector3 is a point or direction in tray space
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Length returns the euclidean length of v
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Sub returns v - o
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Quaternion is an orientation
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Transform is the settled pose of a die
type Transform struct {
	Position Vector3    `json:"position"`
	Rotation Quaternion `json:"rotation"`
}

// Throw is the initial kinematic state handed to the physics collaborator
type Throw struct {
	Position        Vector3    `json:"position"`
	Rotation        Quaternion `json:"rotation"`
	LinearVelocity  Vector3    `json:"linearVelocity"`
	AngularVelocity Vector3    `json:"angularVelocity"`
}

// ReduceTransformPrecision rounds every component of t to fractionDigits decimals
func ReduceTransformPrecision(t Transform, fractionDigits int) Transform {
	return Transform{
		Position: Vector3{
			X: round(t.Position.X, fractionDigits),
			Y: round(t.Position.Y, fractionDigits),
			Z: round(t.Position.Z, fractionDigits),
		},
		Rotation: Quaternion{
			X: round(t.Rotation.X, fractionDigits),
			Y: round(t.Rotation.Y, fractionDigits),
			Z: round(t.Rotation.Z, fractionDigits),
			W: round(t.Rotation.W, fractionDigits),
		},
	}
}

func round(n float64, fractionDigits int) float64 {
	scale := math.Pow(10, float64(fractionDigits))
	return math.Round(n*scale) / scale
}
