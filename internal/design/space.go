package design

import "fmt"

// Default dispersion index sampling range. PDI is a structural property of
// the formulation process rather than a free design choice, so it is drawn
// from a fixed band instead of being declared per space.
const (
	PDIMin = 0.12
	PDIMax = 0.35
)

// Range is a closed continuous interval for one decision variable.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Width returns the span of the range.
func (r Range) Width() float64 {
	return r.Max - r.Min
}

// Space declares the bounds and choice sets for every decision variable of
// a nanoparticle formulation. Treat a validated Space as immutable: the
// optimizer and all analyzers read it, nothing writes it.
type Space struct {
	SizeNM   Range `json:"size_nm" yaml:"size_nm"`
	ChargeMV Range `json:"charge_mv" yaml:"charge_mv"`
	DoseMgKg Range `json:"dose_mg_per_kg" yaml:"dose_mg_per_kg"`

	Materials []string `json:"materials" yaml:"materials"`
	Ligands   []string `json:"ligands" yaml:"ligands"`
	Payloads  []string `json:"payloads" yaml:"payloads"`

	// Fixed pins a categorical variable ("material", "ligand", "payload")
	// to a single choice, removing it from the search.
	Fixed map[string]string `json:"fixed,omitempty" yaml:"fixed,omitempty"`
}

// DefaultSpace returns the reference formulation space used by the CLI and
// documentation examples.
func DefaultSpace() Space {
	return Space{
		SizeNM:    Range{Min: 50, Max: 200},
		ChargeMV:  Range{Min: -30, Max: 30},
		DoseMgKg:  Range{Min: 0.5, Max: 20},
		Materials: []string{"PLGA", "Lipid", "Gold"},
		Ligands:   []string{"None", "PEG", "Folate"},
		Payloads:  []string{"DrugA", "DrugB"},
	}
}

// Validate checks the space invariants: every continuous range must have
// min < max and every choice set must be non-empty.
func (s Space) Validate() error {
	ranges := []struct {
		field string
		r     Range
	}{
		{"size_nm", s.SizeNM},
		{"charge_mv", s.ChargeMV},
		{"dose_mg_per_kg", s.DoseMgKg},
	}
	for _, rr := range ranges {
		if rr.r.Min >= rr.r.Max {
			return &ConfigurationError{
				Field:  rr.field,
				Reason: fmt.Sprintf("min (%g) must be less than max (%g)", rr.r.Min, rr.r.Max),
			}
		}
	}

	choices := []struct {
		field string
		set   []string
	}{
		{"materials", s.Materials},
		{"ligands", s.Ligands},
		{"payloads", s.Payloads},
	}
	for _, cc := range choices {
		if len(cc.set) == 0 {
			return &ConfigurationError{Field: cc.field, Reason: "choice set is empty"}
		}
	}

	for key, value := range s.Fixed {
		set, ok := s.choiceSet(key)
		if !ok {
			return &ConfigurationError{Field: "fixed", Reason: fmt.Sprintf("unknown variable %q", key)}
		}
		if !contains(set, value) {
			return &ConfigurationError{
				Field:  "fixed",
				Reason: fmt.Sprintf("%q is not a declared %s choice", value, key),
			}
		}
	}

	return nil
}

// Choices returns the admissible choice set for a categorical variable,
// honoring any Fixed pin.
func (s Space) Choices(variable string) []string {
	if fixed, ok := s.Fixed[variable]; ok {
		return []string{fixed}
	}
	set, _ := s.choiceSet(variable)
	return set
}

func (s Space) choiceSet(variable string) ([]string, bool) {
	switch variable {
	case "material":
		return s.Materials, true
	case "ligand":
		return s.Ligands, true
	case "payload":
		return s.Payloads, true
	default:
		return nil, false
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
