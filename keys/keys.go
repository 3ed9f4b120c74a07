// Package keys holds the value-object identifiers used as map keys across the
// screen engine. Every key wraps a trimmed string and compares ordinally; the
// zero value is the "none" sentinel.
package keys

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Screen identifies one logical screen.
type Screen struct{ value string }

// Action identifies a route string attached to a widget or a navigation request.
type Action struct{ value string }

// Experiment identifies an A/B experiment.
type Experiment struct{ value string }

// Variant identifies a variant rule or an experiment arm.
type Variant struct{ value string }

// ScreenOf builds a Screen key. Surrounding whitespace is dropped.
func ScreenOf(s string) Screen { return Screen{value: normalize(s)} }

// ActionOf builds an Action key. Surrounding whitespace is dropped.
func ActionOf(s string) Action { return Action{value: normalize(s)} }

// ExperimentOf builds an Experiment key.
func ExperimentOf(s string) Experiment { return Experiment{value: normalize(s)} }

// VariantOf builds a Variant key.
func VariantOf(s string) Variant { return Variant{value: normalize(s)} }

func normalize(s string) string { return strings.TrimSpace(s) }

func (k Screen) String() string     { return k.value }
func (k Action) String() string     { return k.value }
func (k Experiment) String() string { return k.value }
func (k Variant) String() string    { return k.value }

func (k Screen) IsNone() bool     { return k.value == "" }
func (k Action) IsNone() bool     { return k.value == "" }
func (k Experiment) IsNone() bool { return k.value == "" }
func (k Variant) IsNone() bool    { return k.value == "" }

// --- Text / YAML encoding ---
// Keys travel through authored documents and config maps as plain strings.

func (k Screen) MarshalText() ([]byte, error)     { return []byte(k.value), nil }
func (k Action) MarshalText() ([]byte, error)     { return []byte(k.value), nil }
func (k Experiment) MarshalText() ([]byte, error) { return []byte(k.value), nil }
func (k Variant) MarshalText() ([]byte, error)    { return []byte(k.value), nil }

func (k *Screen) UnmarshalText(b []byte) error     { *k = ScreenOf(string(b)); return nil }
func (k *Action) UnmarshalText(b []byte) error     { *k = ActionOf(string(b)); return nil }
func (k *Experiment) UnmarshalText(b []byte) error { *k = ExperimentOf(string(b)); return nil }
func (k *Variant) UnmarshalText(b []byte) error    { *k = VariantOf(string(b)); return nil }

func (k *Screen) UnmarshalYAML(n *yaml.Node) error     { return decodeScalar(n, k.UnmarshalText) }
func (k *Action) UnmarshalYAML(n *yaml.Node) error     { return decodeScalar(n, k.UnmarshalText) }
func (k *Experiment) UnmarshalYAML(n *yaml.Node) error { return decodeScalar(n, k.UnmarshalText) }
func (k *Variant) UnmarshalYAML(n *yaml.Node) error    { return decodeScalar(n, k.UnmarshalText) }

func decodeScalar(n *yaml.Node, set func([]byte) error) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	return set([]byte(s))
}

// RouteEntry maps a route string to the screen it opens.
type RouteEntry struct {
	Route  string `yaml:"route"`
	Screen Screen `yaml:"screen"`
}
