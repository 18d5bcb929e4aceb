package level

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

const sampleLevel = `
id: sample
name: Sample
sections:
  - steps: 10
    platforms:
      - id: 1
        step: 3
        offset: 4
      - id: 2
        type: crumble
        step: 7
        offset: 40
        movement:
          type: horizontal
          properties:
            distance: 2
            speed: 1.5
        features:
          - type: jumpboost
            properties:
              offset: 3
              speed: 28
    items:
      - type: ruby
        platform: 1
        offset: 2
        value: 75
  - steps: 6
    platforms:
      - id: 3
        step: 2
        offset: 10
        movement:
          type: circular
          properties:
            radius: 1
            speed: 2
        enemy:
          properties:
            speed: 1.2
`

func TestParseYAML(t *testing.T) {
	lvl, err := ParseYAML([]byte(sampleLevel))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}

	if lvl.ID != "sample" || lvl.Name != "Sample" {
		t.Errorf("ParseYAML() id/name = %q/%q, expected sample/Sample", lvl.ID, lvl.Name)
	}
	if got := len(lvl.Sections); got != 2 {
		t.Fatalf("len(Sections) = %d, expected 2", got)
	}
	if got := lvl.Sections[1].StartStep; got != 10 {
		t.Errorf("Sections[1].StartStep = %d, expected 10", got)
	}
	if got := lvl.RiseSteps(); got != 16 {
		t.Errorf("RiseSteps() = %d, expected 16", got)
	}
	if got := lvl.RiseHeight(); got != 16 {
		t.Errorf("RiseHeight() = %v, expected 16", got)
	}
	if got := lvl.PlatformCount(); got != 3 {
		t.Errorf("PlatformCount() = %d, expected 3", got)
	}

	p := lvl.Sections[0].Platforms[1]
	if p.Type != PlatformCrumble {
		t.Errorf("platform 2 type = %v, expected crumble", p.Type)
	}
	if p.Movement.Type != MovementLinear {
		t.Errorf("platform 2 movement = %v, expected linear", p.Movement.Type)
	}
	if got := p.Movement.Properties.String("direction", ""); got != "horizontal" {
		t.Errorf("direction = %q, expected horizontal", got)
	}
	if speed, err := p.Movement.Properties.Float("speed", 0); err != nil || speed != 1.5 {
		t.Errorf("speed = %v, %v, expected 1.5", speed, err)
	}
	if len(p.Features) != 1 || p.Features[0].Type != FeatureJumpBoost {
		t.Errorf("features = %+v, expected one jumpboost", p.Features)
	}

	item := lvl.Sections[0].Items[0]
	if item.Type != ItemRuby || item.Value != "75" || item.Offset != 2 {
		t.Errorf("item = %+v, expected ruby 75 at offset 2", item)
	}

	p3 := lvl.Sections[1].Platforms[0]
	if p3.Enemy == nil {
		t.Fatal("platform 3 enemy = nil, expected an enemy")
	}
	pos := p3.Position(lvl.Sections[1].StartStep)
	if pos.X != 2.5 || pos.Y != 12 {
		t.Errorf("platform 3 Position() = %v, expected (2.5, 12)", pos)
	}
}

func TestParseYAMLUnknownTypes(t *testing.T) {
	tests := []struct {
		name    string
		replace [2]string
		want    error
	}{
		{"movement", [2]string{"type: circular", "type: zigzag"}, ErrUnknownMovement},
		{"feature", [2]string{"type: jumpboost", "type: teleport"}, ErrUnknownFeature},
		{"platform", [2]string{"type: crumble", "type: glass"}, ErrUnknownPlatformType},
		{"item", [2]string{"type: ruby", "type: emerald"}, ErrUnknownItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := strings.Replace(sampleLevel, tt.replace[0], tt.replace[1], 1)
			_, err := ParseYAML([]byte(data))
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseYAML() error = %v, expected %v", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	base := func() Level {
		return Level{
			ID: "v",
			Sections: []Section{{
				ID: 0, Steps: 8,
				Platforms: []Platform{{ID: 1, Step: 4, Offset: 0}},
			}},
		}
	}

	tests := []struct {
		name   string
		modify func(*Level)
		ok     bool
	}{
		{"valid", func(*Level) {}, true},
		{"missing id", func(l *Level) { l.ID = "" }, false},
		{"no sections", func(l *Level) { l.Sections = nil }, false},
		{"empty section", func(l *Level) { l.Sections[0].Steps = 0 }, false},
		{"step outside section", func(l *Level) { l.Sections[0].Platforms[0].Step = 8 }, false},
		{"offset too large", func(l *Level) { l.Sections[0].Platforms[0].Offset = MaxPlatformOffset + 1 }, false},
		{"gap from ground", func(l *Level) { l.Sections[0].Platforms[0].Step = 6 }, false},
		{"gap to rise height", func(l *Level) { l.Sections[0].Steps = 12 }, false},
		{"duplicate id", func(l *Level) {
			l.Sections[0].Platforms = append(l.Sections[0].Platforms, Platform{ID: 1, Step: 5})
		}, false},
		{"item on unknown platform", func(l *Level) {
			l.Sections[0].Items = []Item{{Type: ItemRuby, Platform: 9}}
		}, false},
		{"item off platform", func(l *Level) {
			l.Sections[0].Items = []Item{{Type: ItemRuby, Platform: 1, Offset: PlatformWidthOffsets}}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := base()
			tt.modify(&l)
			err := Validate(&l)
			if tt.ok && err != nil {
				t.Errorf("Validate() error = %v, expected nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("Validate() error = %v, expected ErrInvalidLevel", err)
			}
		})
	}
}

func TestParseTypes(t *testing.T) {
	movements := map[string]MovementType{
		"":           MovementStationary,
		"none":       MovementStationary,
		"circular":   MovementCircular,
		"linear":     MovementLinear,
		"horizontal": MovementLinear,
		"vertical":   MovementLinear,
	}
	for in, want := range movements {
		got, err := ParseMovementType(in)
		if err != nil || got != want {
			t.Errorf("ParseMovementType(%q) = %v, %v, expected %v", in, got, err, want)
		}
	}

	features := map[string]FeatureType{
		"jumpboost":     FeatureJumpBoost,
		"flame":         FeatureFlame,
		"visibleonjump": FeatureVisibleOnJump,
		"reposition":    FeatureReposition,
	}
	for in, want := range features {
		got, err := ParseFeatureType(in)
		if err != nil || got != want {
			t.Errorf("ParseFeatureType(%q) = %v, %v, expected %v", in, got, err, want)
		}
		if got.String() != in {
			t.Errorf("%v.String() = %q, expected %q", got, got.String(), in)
		}
	}
}

func TestPropertiesFloat(t *testing.T) {
	p := Properties{"speed": "2.5", "bad": "fast"}

	if v, err := p.Float("speed", 1); err != nil || v != 2.5 {
		t.Errorf("Float(speed) = %v, %v, expected 2.5", v, err)
	}
	if v, err := p.Float("missing", 7); err != nil || v != 7 {
		t.Errorf("Float(missing) = %v, %v, expected default 7", v, err)
	}
	if _, err := p.Float("bad", 0); err == nil {
		t.Error("Float(bad) error = nil, expected a parse error")
	}
	if got := p.String("missing", "x"); got != "x" {
		t.Errorf("String(missing) = %q, expected x", got)
	}
}

func TestBuiltinLevels(t *testing.T) {
	levels, err := Builtin().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(levels) != 3 {
		t.Fatalf("len(LoadAll()) = %d, expected 3", len(levels))
	}

	want := []string{"01-first-steps", "02-burning-ring", "03-pandemonium"}
	for i, lvl := range levels {
		if lvl.ID != want[i] {
			t.Errorf("levels[%d].ID = %q, expected %q", i, lvl.ID, want[i])
		}
		if lvl.FilePath == "" {
			t.Errorf("levels[%d].FilePath is empty", i)
		}
	}

	if _, err := Builtin().LoadByID("nope"); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("LoadByID(nope) error = %v, expected ErrLevelNotFound", err)
	}
}

func TestLoaderReportsBadFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"lv/good.yaml":  {Data: []byte(sampleLevel)},
		"lv/bad.yaml":   {Data: []byte("id: bad\nsections: []\n")},
		"lv/readme.txt": {Data: []byte("ignored")},
	}

	levels, err := NewLoader(fsys, "lv").LoadAll()
	if !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("LoadAll() error = %v, expected ErrInvalidLevel", err)
	}
	if len(levels) != 1 || levels[0].ID != "sample" {
		t.Errorf("LoadAll() levels = %v, expected only sample", levels)
	}

	ids, _ := NewLoader(fsys, "lv").ListIDs()
	if len(ids) != 1 {
		t.Errorf("ListIDs() = %v, expected one id", ids)
	}
}

func TestLoadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte(sampleLevel), 0o644); err != nil {
		t.Fatal(err)
	}

	lvl, err := LoadPath(path)
	if err != nil {
		t.Fatalf("LoadPath() error = %v", err)
	}
	if lvl.FilePath != path {
		t.Errorf("FilePath = %q, expected %q", lvl.FilePath, path)
	}

	if _, err := LoadPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadPath(missing) error = nil, expected an error")
	}
}
