package math

import (
	"math"
	"testing"
)

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	// Addition
	result := v1.Add(v2)
	expected := NewVec3(5, 7, 9)
	if result != expected {
		t.Errorf("Add: expected %v, got %v", expected, result)
	}

	// Subtraction
	result = v2.Sub(v1)
	expected = NewVec3(3, 3, 3)
	if result != expected {
		t.Errorf("Sub: expected %v, got %v", expected, result)
	}

	// Scalar multiplication
	result = v1.Mul(2)
	expected = NewVec3(2, 4, 6)
	if result != expected {
		t.Errorf("Mul: expected %v, got %v", expected, result)
	}

	// Dot product
	dot := v1.Dot(v2)
	expectedDot := float32(32) // 1*4 + 2*5 + 3*6
	if dot != expectedDot {
		t.Errorf("Dot: expected %v, got %v", expectedDot, dot)
	}

	// Cross product (Right x Up = Front in right-handed system)
	cross := Vec3Right.Cross(Vec3Up)
	if cross != Vec3Front {
		t.Errorf("Cross: expected %v, got %v", Vec3Front, cross)
	}

	// Componentwise absolute value
	abs := NewVec3(-1, 2, -3).Abs()
	if abs != NewVec3(1, 2, 3) {
		t.Errorf("Abs: expected (1,2,3), got %v", abs)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 0)
	normalized := v.Normalize()
	expected := NewVec3(1, 0, 0)

	if normalized != expected {
		t.Errorf("Normalize: expected %v, got %v", expected, normalized)
	}

	// Check length is 1
	length := normalized.Length()
	if math.Abs(float64(length-1)) > 0.0001 {
		t.Errorf("Normalize: expected length 1, got %v", length)
	}
}

func TestVec3Reflect(t *testing.T) {
	// Incoming ray going down-right bounces off a floor facing up
	incoming := NewVec3(1, -1, 0).Normalize()
	reflected := incoming.Reflect(Vec3Up)
	expected := NewVec3(1, 1, 0).Normalize()

	tolerance := float32(0.0001)
	if reflected.Sub(expected).Length() > tolerance {
		t.Errorf("Reflect: expected %v, got %v", expected, reflected)
	}

	// Reflecting a vector parallel to the normal flips it
	flipped := Vec3Up.Reflect(Vec3Up)
	if flipped.Sub(Vec3Down).Length() > tolerance {
		t.Errorf("Reflect parallel: expected %v, got %v", Vec3Down, flipped)
	}
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()

	// Check diagonal is 1
	for i := 0; i < 4; i++ {
		if m[i][i] != 1 {
			t.Errorf("Identity: expected diagonal to be 1, got %v", m[i][i])
		}
	}

	// Check non-diagonal is 0
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i != j && m[i][j] != 0 {
				t.Errorf("Identity: expected non-diagonal to be 0, got %v", m[i][j])
			}
		}
	}
}

func TestMat4Multiplication(t *testing.T) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()

	result := m1.Mul(m2)

	// Identity * Identity = Identity
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := float32(0)
			if i == j {
				expected = 1
			}
			if result[i][j] != expected {
				t.Errorf("Mul: expected [%d][%d] = %v, got %v", i, j, expected, result[i][j])
			}
		}
	}
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	// Check translation components
	if m[3][0] != 1 || m[3][1] != 2 || m[3][2] != 3 {
		t.Errorf("Translation: expected (1,2,3), got (%v,%v,%v)", m[3][0], m[3][1], m[3][2])
	}

	// Test transforming a point
	point := NewVec4(0, 0, 0, 1)
	result := point.MulMat(m)

	if result.ToVec3() != translation {
		t.Errorf("Translation: expected %v, got %v", translation, result.ToVec3())
	}
}

func TestMat4TRSOrder(t *testing.T) {
	m := Mat4TRS(NewVec3(5, 6, 7), Vec3Zero, NewVec3(2, 3, 4))
	got := m.MulVec3(NewVec3(1, 1, 1))

	// scale applies before translation, so the offset is not scaled
	want := NewVec3(7, 9, 11)
	if got != want {
		t.Errorf("TRS point transform = %v, want %v", got, want)
	}
}

func TestMat4Inverse(t *testing.T) {
	m := Mat4TRS(NewVec3(3, -2, 7), NewVec3(0.4, 1.1, -0.3), NewVec3(2, 0.5, 4))
	inv := m.Inverse()
	product := m.Mul(inv)
	identity := Mat4Identity()

	tolerance := float32(0.0001)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(float64(product[i][j]-identity[i][j])) > float64(tolerance) {
				t.Errorf("Inverse: M*M^-1 [%d][%d] = %v, want %v", i, j, product[i][j], identity[i][j])
			}
		}
	}
}

func TestMat4InverseSingular(t *testing.T) {
	m := Mat4Scale(NewVec3(0, 1, 1))
	inv := m.Inverse()
	if inv != Mat4Identity() {
		t.Errorf("Inverse of singular matrix: expected identity, got %v", inv)
	}
}

func TestMat3Inverse(t *testing.T) {
	m := Mat4Rotation(NewVec3(0.3, -0.8, 0.5)).Mul(Mat4Scale(NewVec3(2, 3, 0.5))).ToMat3()
	inv := m.Inverse()
	product := m.Mul(inv)
	identity := Mat3Identity()

	tolerance := float32(0.0001)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(float64(product[i][j]-identity[i][j])) > float64(tolerance) {
				t.Errorf("Mat3 Inverse: M*M^-1 [%d][%d] = %v, want %v", i, j, product[i][j], identity[i][j])
			}
		}
	}
}

func TestNormalMatrixUniformScale(t *testing.T) {
	// Under rotation plus uniform scale the normal matrix keeps directions
	model := Mat4RotationY(float32(math.Pi / 3)).Mul(Mat4Scale(NewVec3(2, 2, 2)))
	nm := NormalMatrix(model)

	n := nm.MulVec(Vec3Up).Normalize()
	want := model.ToMat3().MulVec(Vec3Up).Normalize()

	tolerance := float32(0.0001)
	if n.Sub(want).Length() > tolerance {
		t.Errorf("NormalMatrix uniform: expected %v, got %v", want, n)
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	// A plane tilted 45 degrees, squashed 4x along Y. Transforming the
	// normal with the model matrix skews it; the normal matrix must keep
	// it perpendicular to the transformed surface tangent.
	model := Mat4Scale(NewVec3(1, 0.25, 1))
	tangent := NewVec3(1, 1, 0).Normalize()
	normal := NewVec3(-1, 1, 0).Normalize()

	worldTangent := model.ToMat3().MulVec(tangent)
	worldNormal := NormalMatrix(model).MulVec(normal).Normalize()

	dot := worldTangent.Normalize().Dot(worldNormal)
	if math.Abs(float64(dot)) > 0.0001 {
		t.Errorf("NormalMatrix: normal not perpendicular to surface, dot = %v", dot)
	}

	// The naive transform fails the same check
	naive := model.ToMat3().MulVec(normal).Normalize()
	if math.Abs(float64(worldTangent.Normalize().Dot(naive))) < 0.01 {
		t.Error("NormalMatrix: naive transform unexpectedly perpendicular, test is vacuous")
	}
}

func TestMat4Perspective(t *testing.T) {
	fov := float32(math.Pi / 4) // 45 degrees
	aspect := float32(16.0 / 9.0)
	near := float32(0.1)
	far := float32(100.0)

	m := Mat4Perspective(fov, aspect, near, far)

	// Check aspect ratio affects the matrix
	if m[0][0] == 0 {
		t.Error("Perspective: expected non-zero X scale")
	}
	if m[1][1] == 0 {
		t.Error("Perspective: expected non-zero Y scale")
	}
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	target := NewVec3(0, 0, 0)
	up := Vec3Up

	m := Mat4LookAt(eye, target, up)

	// The view matrix should transform the eye position to origin
	point := eye.ToVec4(1)
	result := m.MulVec(point)

	tolerance := float32(0.001)
	if math.Abs(float64(result.X)) > float64(tolerance) ||
		math.Abs(float64(result.Y)) > float64(tolerance) ||
		math.Abs(float64(result.Z)) > float64(tolerance) {
		t.Errorf("LookAt: expected eye to transform to origin, got (%v,%v,%v)", result.X, result.Y, result.Z)
	}
}

func BenchmarkVec3Add(b *testing.B) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	for i := 0; i < b.N; i++ {
		_ = v1.Add(v2)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}

func BenchmarkNormalMatrix(b *testing.B) {
	model := Mat4TRS(NewVec3(1, 2, 3), NewVec3(0.2, 0.4, 0.1), NewVec3(1, 2, 0.5))

	for i := 0; i < b.N; i++ {
		_ = NormalMatrix(model)
	}
}
