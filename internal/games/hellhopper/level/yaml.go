package level

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel is the on-disk layout of a level file.
type YAMLLevel struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Sections    []YAMLSection `yaml:"sections"`
}

// YAMLSection is one rise section in a level file.
type YAMLSection struct {
	Steps     int            `yaml:"steps"`
	Platforms []YAMLPlatform `yaml:"platforms"`
	Items     []YAMLItem     `yaml:"items,omitempty"`
}

// YAMLPlatform is one platform in a level file.
type YAMLPlatform struct {
	ID       int           `yaml:"id"`
	Type     string        `yaml:"type,omitempty"`
	Step     int           `yaml:"step"`
	Offset   int           `yaml:"offset"`
	Movement *YAMLRecord   `yaml:"movement,omitempty"`
	Features []YAMLRecord  `yaml:"features,omitempty"`
	Enemy    *YAMLProperty `yaml:"enemy,omitempty"`
}

// YAMLRecord is a typed record with free-form scalar properties.
type YAMLRecord struct {
	Type       string         `yaml:"type"`
	Properties map[string]any `yaml:"properties,omitempty"`
}

// YAMLProperty is an untyped record with free-form scalar properties.
type YAMLProperty struct {
	Properties map[string]any `yaml:"properties,omitempty"`
}

// YAMLItem is one item in a level file.
type YAMLItem struct {
	Type     string  `yaml:"type"`
	Platform int     `yaml:"platform"`
	Offset   float64 `yaml:"offset"`
	Value    any     `yaml:"value,omitempty"`
}

// ParseYAML parses and validates a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	lvl := Level{
		ID:          yl.ID,
		Name:        yl.Name,
		Description: yl.Description,
		Sections:    make([]Section, 0, len(yl.Sections)),
	}

	startStep := 0
	for i, ys := range yl.Sections {
		sec, err := convertSection(i, startStep, ys)
		if err != nil {
			return Level{}, fmt.Errorf("section %d: %w", i, err)
		}
		lvl.Sections = append(lvl.Sections, sec)
		startStep += ys.Steps
	}

	if err := Validate(&lvl); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

func convertSection(id, startStep int, ys YAMLSection) (Section, error) {
	sec := Section{
		ID:        id,
		StartStep: startStep,
		Steps:     ys.Steps,
		Platforms: make([]Platform, 0, len(ys.Platforms)),
		Items:     make([]Item, 0, len(ys.Items)),
	}

	for _, yp := range ys.Platforms {
		p, err := convertPlatform(yp)
		if err != nil {
			return Section{}, fmt.Errorf("platform %d: %w", yp.ID, err)
		}
		sec.Platforms = append(sec.Platforms, p)
	}

	for j, yi := range ys.Items {
		t, err := ParseItemType(yi.Type)
		if err != nil {
			return Section{}, fmt.Errorf("item %d: %w", j, err)
		}
		item := Item{
			Type:     t,
			Platform: yi.Platform,
			Offset:   yi.Offset,
		}
		if yi.Value != nil {
			item.Value = fmt.Sprint(yi.Value)
		}
		sec.Items = append(sec.Items, item)
	}

	return sec, nil
}

func convertPlatform(yp YAMLPlatform) (Platform, error) {
	pt, err := ParsePlatformType(yp.Type)
	if err != nil {
		return Platform{}, err
	}

	p := Platform{
		ID:       yp.ID,
		Type:     pt,
		Step:     yp.Step,
		Offset:   yp.Offset,
		Movement: Movement{Type: MovementStationary, Properties: Properties{}},
	}

	if yp.Movement != nil {
		mt, err := ParseMovementType(yp.Movement.Type)
		if err != nil {
			return Platform{}, err
		}
		props := convertProperties(yp.Movement.Properties)
		// "horizontal" and "vertical" are linear movements with a fixed direction.
		if yp.Movement.Type == "horizontal" || yp.Movement.Type == "vertical" {
			if _, ok := props["direction"]; !ok {
				props["direction"] = yp.Movement.Type
			}
		}
		p.Movement = Movement{Type: mt, Properties: props}
	}

	for _, yf := range yp.Features {
		ft, err := ParseFeatureType(yf.Type)
		if err != nil {
			return Platform{}, err
		}
		p.Features = append(p.Features, Feature{
			Type:       ft,
			Properties: convertProperties(yf.Properties),
		})
	}

	if yp.Enemy != nil {
		p.Enemy = &Enemy{Properties: convertProperties(yp.Enemy.Properties)}
	}

	return p, nil
}

// convertProperties turns decoded YAML scalars back into strings.
func convertProperties(in map[string]any) Properties {
	out := make(Properties, len(in))
	for k, v := range in {
		out[k] = fmt.Sprint(v)
	}
	return out
}
