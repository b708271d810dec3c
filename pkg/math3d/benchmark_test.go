package math3d

import (
	"testing"
)

func BenchmarkVec3Unit(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_, _ = v.Unit()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkProjectOnto(b *testing.B) {
	v := V3(-500, 600, 400)
	onto := V3(-16, -15, -975)

	for b.Loop() {
		_, _ = ProjectOnto(v, onto)
	}
}

func BenchmarkRotateToward(b *testing.B) {
	up := V3(-16, -15, -975)
	upFront := V3(-185, 300, -910)

	for b.Loop() {
		_, _ = RotateToward(up, upFront, 90)
	}
}

func BenchmarkRotateAround(b *testing.B) {
	up := V3(-16, -15, -975)
	front := V3(-464.56, 857.47, -5.57)

	for b.Loop() {
		_, _ = RotateAround(up, front, 90)
	}
}

func BenchmarkMat4Rotate(b *testing.B) {
	axis := V3(-464.56, 857.47, -5.57)
	v := V3(-16, -15, -975)

	for b.Loop() {
		_ = Rotate(axis, 1.5).MulVec3Dir(v)
	}
}
