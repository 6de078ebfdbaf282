package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorRed)
	cell := s.GetCell(5, 5)
	if cell.Rune != 'X' || cell.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected X in red", cell)
	}

	s.Set(4, 4, 'Y')
	if s.GetCell(4, 4).Color != ColorDefault {
		t.Error("Set should use the default colour")
	}

	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(100, 0, 'A', ColorRed)
	if s.GetCell(-1, 0) != blank {
		t.Error("Out of bounds GetCell should return a blank cell")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawRect(NewRect(0, 0, 4, 4), '#', ColorBlue)
	s.Clear()

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if s.GetCell(x, y) != blank {
				t.Errorf("After Clear, expected blank at (%d, %d), got %+v", x, y, s.GetCell(x, y))
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColored(2, 1, "Hello", ColorGreen)

	for i, ch := range "Hello" {
		cell := s.GetCell(2+i, 1)
		if cell.Rune != ch || cell.Color != ColorGreen {
			t.Errorf("DrawTextColored: expected %q at (%d, 1), got %+v", ch, 2+i, cell)
		}
	}

	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(0, 0, "❄ab")

	if s.Get(0, 0) != '❄' || s.Get(1, 0) != 'a' || s.Get(2, 0) != 'b' {
		t.Errorf("multibyte text misplaced: %q", s.Row(0))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi", ColorDefault)

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed, row = %q", s.Row(2))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorYellow)

	corners := []struct {
		x, y int
		r    rune
	}{
		{1, 1, '┌'},
		{5, 1, '┐'},
		{1, 4, '└'},
		{5, 4, '┘'},
	}
	for _, c := range corners {
		if got := s.GetCell(c.x, c.y); got.Rune != c.r || got.Color != ColorYellow {
			t.Errorf("corner (%d, %d) = %+v, expected %q", c.x, c.y, got, c.r)
		}
	}
	for y := 2; y < 4; y++ {
		if s.Get(1, y) != '│' || s.Get(5, y) != '│' {
			t.Errorf("vertical edges missing at y=%d", y)
		}
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawHLine(0, 2, 5, 'C', ColorRed)

	result := s.String()
	expected := "AAAAA\nBBBBB\nCCCCC"

	if result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColored(0, 0, "Hello", ColorCyan)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", s.Row(0))
	}
	if s.GetCell(0, 0).Color != ColorCyan {
		t.Error("Colour should be preserved across resize")
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", s.Row(0))
	}
	if s.Row(-1) != strings.Repeat(" ", 15) {
		t.Errorf("Out of bounds row should be spaces, got %q", s.Row(-1))
	}
}
