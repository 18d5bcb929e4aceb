package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("GetCell(%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetWithColor(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetWithColor(5, 5, '@', ColorRed)
	if c := s.GetCell(5, 5); c.Rune != '@' || c.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected '@' red", c)
	}

	s.Set(5, 5, 'X')
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorDefault {
		t.Errorf("Set should reset color, got %+v", c)
	}

	// Out of bounds writes are ignored.
	s.SetWithColor(-1, 0, 'A', ColorRed)
	s.SetWithColor(0, 100, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' || s.Get(0, 100) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextWithColor(2, 1, "Hell", ColorOrange)

	for i, ch := range "Hell" {
		c := s.GetCell(2+i, 1)
		if c.Rune != ch || c.Color != ColorOrange {
			t.Errorf("cell %d = %+v, expected %q orange", 2+i, c, ch)
		}
	}

	// Multi-byte runes advance one cell each.
	s.DrawText(0, 2, "▲▲x")
	if s.Get(2, 2) != 'x' {
		t.Errorf("Get(2, 2) = %q, expected 'x'", s.Get(2, 2))
	}

	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("text should be clipped at the right edge")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	if s.Get(9, 2) != 'H' || s.Get(10, 2) != 'i' {
		t.Errorf("DrawTextCentered placed text at wrong column: %q", s.Row(2))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorGray)

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner %v = %q, expected %q", pos, got, want)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("box edges not drawn")
	}
	if s.GetCell(3, 4).Color != ColorGray {
		t.Error("box should use the given color")
	}
}

func TestScreenDrawRectAndHLine(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#')
	s.DrawHLine(0, 8, 4, '=', ColorRed)

	if s.Get(4, 4) != '#' || s.Get(5, 5) != ' ' {
		t.Error("DrawRect filled the wrong area")
	}
	if s.Row(8) != "====      " {
		t.Errorf("Row(8) = %q", s.Row(8))
	}
}

func TestScreenStringAndResize(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	if got := s.String(); got != "AAAAA\nBBBBB\nCCCCC" {
		t.Errorf("String() = %q", got)
	}

	s.Resize(3, 2)
	if got := s.String(); got != "AAA\nBBB" {
		t.Errorf("after shrink String() = %q", got)
	}

	s.Resize(6, 3)
	if !strings.HasPrefix(s.Row(0), "AAA") || s.Row(2) != "      " {
		t.Errorf("after grow rows = %q / %q", s.Row(0), s.Row(2))
	}
	if s.Row(-1) != "      " {
		t.Errorf("out of bounds Row = %q", s.Row(-1))
	}
}
