package math

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func nearVec(a, b Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestMulAppliesRightFirst(t *testing.T) {
	m := Translate(1, 0, 0).Mul(RotateZ(math.Pi / 2))
	got := m.TransformPoint(Vec3{1, 0, 0})
	if want := (Vec3{1, 1, 0}); !nearVec(got, want) {
		t.Errorf("Translate*RotateZ: got %v, want %v", got, want)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	got := Translate(10, 20, 30).TransformPoint(Vec3{1, 2, 3})
	if want := (Vec3{11, 22, 33}); got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestRotateZ90(t *testing.T) {
	got := RotateZ(math.Pi / 2).TransformPoint(Vec3{1, 0, 0})
	if want := (Vec3{0, 1, 0}); !nearVec(got, want) {
		t.Errorf("RotateZ(90) (1,0,0): got %v, want %v", got, want)
	}
}

func TestRotateAxisMatchesRotateZ(t *testing.T) {
	angle := 0.37
	a := RotateAxis(Vec3{0, 0, 1}, angle)
	b := RotateZ(angle)
	for i := range a {
		if !near(a[i], b[i]) {
			t.Fatalf("element %d: RotateAxis %f, RotateZ %f", i, a[i], b[i])
		}
	}
}

func TestRotateAboutKeepsPivot(t *testing.T) {
	pivot := Vec3{3, -2, 1}
	m := RotateAbout(Vec3{0, 1, 0}, 0.8, pivot)
	if got := m.TransformPoint(pivot); !nearVec(got, pivot) {
		t.Errorf("pivot moved: got %v, want %v", got, pivot)
	}
}

func TestYawAbout(t *testing.T) {
	m := YawAbout(math.Pi, 4, 4)
	got := m.TransformPoint(Vec3{6, 4, 0.5})
	if want := (Vec3{2, 4, 0.5}); !nearVec(got, want) {
		t.Errorf("YawAbout(180): got %v, want %v", got, want)
	}
}
