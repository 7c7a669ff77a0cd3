package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/panosphere/pkg/angle"
)

// Angle is an angle in radians. In YAML it is a number of radians or a string
// with a unit ("90deg", "1.2rad", "25%").
type Angle float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Angle) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: angle must be a scalar", node.Line)
	}

	var f float64
	if tag := node.ShortTag(); tag == "!!int" || tag == "!!float" {
		if err := node.Decode(&f); err != nil {
			return err
		}
		*a = Angle(f)
		return nil
	}

	f, err := angle.ParseRadians(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*a = Angle(f)
	return nil
}

// Radians returns the angle as a float64.
func (a Angle) Radians() float64 {
	return float64(a)
}

// Speed is an angular speed. It keeps its textual form for saving and the
// parsed value in radians per second.
type Speed struct {
	text      string
	perSecond float64
}

// ParseSpeed parses a speed such as "2rpm" or "-0.5".
func ParseSpeed(s string) (Speed, error) {
	v, err := angle.ParseSpeed(s)
	if err != nil {
		return Speed{}, err
	}
	return Speed{text: s, perSecond: v}, nil
}

// MustSpeed is ParseSpeed for constant inputs; it panics on error.
func MustSpeed(s string) Speed {
	sp, err := ParseSpeed(s)
	if err != nil {
		panic(err)
	}
	return sp
}

// RadiansPerSecond returns the parsed speed.
func (s Speed) RadiansPerSecond() float64 {
	return s.perSecond
}

// String returns the speed as it was written.
func (s Speed) String() string {
	return s.text
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Speed) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: speed must be a scalar", node.Line)
	}
	if node.Value == "" {
		*s = Speed{}
		return nil
	}
	sp, err := ParseSpeed(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*s = sp
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Speed) MarshalYAML() (interface{}, error) {
	return s.text, nil
}
