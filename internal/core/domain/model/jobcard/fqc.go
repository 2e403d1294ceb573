package jobcard

import (
	"fmt"
	"strconv"
	"strings"

	"production/internal/pkg/errs"
)

// ValueType classifies how an FQC parameter's sample readings are validated.
type ValueType int

const (
	// UnknownValueType represents an invalid or undefined value type.
	UnknownValueType ValueType = iota

	// ValueNumeric readings pass when they fall inside the tolerance window
	// around the standard value.
	ValueNumeric

	// ValueBoolean readings pass only on a case-insensitive "pass".
	ValueBoolean

	// ValueAlphanumeric readings are informational and always valid.
	ValueAlphanumeric
)

func getValueTypeStrings() map[ValueType]string {
	return map[ValueType]string{
		UnknownValueType:  "Unknown",
		ValueNumeric:      "Numeric",
		ValueBoolean:      "Boolean",
		ValueAlphanumeric: "Alphanumeric",
	}
}

// ValueTypeFromString parses a value type from its string representation.
func ValueTypeFromString(s string) (ValueType, error) {
	for t, str := range getValueTypeStrings() {
		if t != UnknownValueType && strings.EqualFold(str, s) {
			return t, nil
		}
	}
	// "alphabet" appears in legacy item masters as a synonym for alphanumeric.
	if strings.EqualFold(s, "alphabet") {
		return ValueAlphanumeric, nil
	}
	return UnknownValueType, errs.NewValueIsInvalidErrorWithCause(
		"value type is invalid",
		fmt.Errorf("%q is not a valid value type", s),
	)
}

// Validate checks if the ValueType value is valid.
func (t ValueType) Validate() error {
	if t != ValueNumeric && t != ValueBoolean && t != ValueAlphanumeric {
		return errs.NewValueIsInvalidErrorWithCause(
			"value type is invalid",
			fmt.Errorf("%d is not a valid value type", t),
		)
	}
	return nil
}

// String returns the human-readable name of the value type.
func (t ValueType) String() string {
	if str, ok := getValueTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// Disposition is the pass/fail verdict of an FQC evaluation, for a single
// parameter or for the whole job.
type Disposition int

const (
	// NoDisposition means no verdict has been recorded yet.
	NoDisposition Disposition = iota

	// Passed means every sample validated true under its tolerance window.
	Passed

	// Failed means at least one sample validated false.
	Failed
)

// String returns the human-readable name of the disposition.
func (d Disposition) String() string {
	switch d {
	case Passed:
		return "Passed"
	case Failed:
		return "Failed"
	default:
		return "None"
	}
}

// ParameterSpec is the immutable definition of an FQC parameter, configured
// on the item master: what is measured, against which standard, and with
// which tolerances.
type ParameterSpec struct {
	name              string
	notation          string
	valueType         ValueType
	standardValue     string
	positiveTolerance float64
	negativeTolerance float64
}

// NewParameterSpec creates a parameter specification.
//
// Tolerances are magnitudes: a reading v passes a numeric parameter iff
// standard − negativeTolerance <= v <= standard + positiveTolerance.
// Both tolerances must be non-negative.
func NewParameterSpec(
	name, notation string,
	valueType ValueType,
	standardValue string,
	positiveTolerance, negativeTolerance float64,
) (ParameterSpec, error) {
	if name == "" {
		return ParameterSpec{}, errs.NewValueIsRequiredError("parameter name")
	}
	if err := valueType.Validate(); err != nil {
		return ParameterSpec{}, err
	}
	if positiveTolerance < 0 {
		return ParameterSpec{}, errs.NewValueIsInvalidErrorWithCause(
			"positive tolerance is invalid", fmt.Errorf("%v is negative", positiveTolerance))
	}
	if negativeTolerance < 0 {
		return ParameterSpec{}, errs.NewValueIsInvalidErrorWithCause(
			"negative tolerance is invalid", fmt.Errorf("%v is negative", negativeTolerance))
	}

	return ParameterSpec{
		name:              name,
		notation:          notation,
		valueType:         valueType,
		standardValue:     standardValue,
		positiveTolerance: positiveTolerance,
		negativeTolerance: negativeTolerance,
	}, nil
}

// Name returns the parameter's name.
func (s ParameterSpec) Name() string { return s.name }

// Notation returns the drawing notation or unit of the parameter.
func (s ParameterSpec) Notation() string { return s.notation }

// ValueType returns how sample readings are validated.
func (s ParameterSpec) ValueType() ValueType { return s.valueType }

// StandardValue returns the nominal value readings are compared against.
func (s ParameterSpec) StandardValue() string { return s.standardValue }

// PositiveTolerance returns the allowed deviation above the standard value.
func (s ParameterSpec) PositiveTolerance() float64 { return s.positiveTolerance }

// NegativeTolerance returns the allowed deviation below the standard value.
func (s ParameterSpec) NegativeTolerance() float64 { return s.negativeTolerance }

// SampleVerdict is the tri-state outcome of validating one sample reading.
// An indeterminate verdict (unparseable numeric reading or standard) is
// neither pass nor fail, but still blocks submission.
type SampleVerdict int

const (
	// SampleIndeterminate means the reading could not be judged.
	SampleIndeterminate SampleVerdict = iota
	// SamplePassed means the reading validated true.
	SamplePassed
	// SampleFailed means the reading validated false.
	SampleFailed
)

// Judge validates a single sample reading against the specification.
//
// Rules:
//   - boolean: passes iff the reading is "pass", case-insensitively
//   - alphanumeric: always valid, informational only
//   - numeric: passes iff standard−negTol <= reading <= standard+posTol;
//     an unparseable standard or reading yields SampleIndeterminate
func (s ParameterSpec) Judge(sample string) SampleVerdict {
	switch s.valueType {
	case ValueBoolean:
		if strings.EqualFold(strings.TrimSpace(sample), "pass") {
			return SamplePassed
		}
		return SampleFailed
	case ValueAlphanumeric:
		return SamplePassed
	default:
		std, err := strconv.ParseFloat(strings.TrimSpace(s.standardValue), 64)
		if err != nil {
			return SampleIndeterminate
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(sample), 64)
		if err != nil {
			return SampleIndeterminate
		}
		if v < std-s.negativeTolerance || v > std+s.positiveTolerance {
			return SampleFailed
		}
		return SamplePassed
	}
}

// Parameter is one FQC parameter on a job card's quality check step: the
// specification cloned from the item master plus the sample readings and
// mandatory remarks recorded on the shop floor.
type Parameter struct {
	spec    ParameterSpec
	samples []string
	remarks string
	result  Disposition
}

// NewParameter creates a parameter with the configured number of empty
// sample slots. The slot count is fixed for the life of the check.
func NewParameter(spec ParameterSpec, sampleCount int) (*Parameter, error) {
	if sampleCount <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"sample count is invalid", fmt.Errorf("%d is not greater than 0", sampleCount))
	}
	return &Parameter{spec: spec, samples: make([]string, sampleCount)}, nil
}

// RestoreParameter reconstructs a parameter from persistent storage.
func RestoreParameter(spec ParameterSpec, samples []string, remarks string, result Disposition) (*Parameter, error) {
	if len(samples) == 0 {
		return nil, errs.NewValueIsRequiredError("samples")
	}
	restored := make([]string, len(samples))
	copy(restored, samples)
	return &Parameter{spec: spec, samples: restored, remarks: remarks, result: result}, nil
}

// Spec returns the parameter's immutable specification.
func (p *Parameter) Spec() ParameterSpec { return p.spec }

// Samples returns a copy of the recorded sample readings, one per slot.
func (p *Parameter) Samples() []string {
	out := make([]string, len(p.samples))
	copy(out, p.samples)
	return out
}

// Remarks returns the inspector's remarks for this parameter.
func (p *Parameter) Remarks() string { return p.remarks }

// Result returns the recorded disposition, NoDisposition before submission.
func (p *Parameter) Result() Disposition { return p.result }

// SetSample records a reading into the given sample slot.
func (p *Parameter) SetSample(slot int, value string) error {
	if slot < 0 || slot >= len(p.samples) {
		return errs.NewValueIsOutOfRangeError("sample slot", slot, 0, len(p.samples)-1)
	}
	p.samples[slot] = value
	return nil
}

// SetRemarks records the inspector's remarks. Remarks are mandatory before
// an FQC submission is accepted.
func (p *Parameter) SetRemarks(remarks string) {
	p.remarks = remarks
}

// Evaluate judges every sample slot and returns the parameter disposition:
// Passed iff all samples individually validate true, Failed otherwise.
// The second return lists the slots that could not be judged; a non-empty
// list blocks submission.
func (p *Parameter) Evaluate() (Disposition, []int) {
	var indeterminate []int
	result := Passed
	for i, sample := range p.samples {
		switch p.spec.Judge(sample) {
		case SampleFailed:
			result = Failed
		case SampleIndeterminate:
			indeterminate = append(indeterminate, i)
		}
	}
	if len(indeterminate) > 0 {
		return NoDisposition, indeterminate
	}
	return result, nil
}

// hasEmptySlot reports whether any sample slot has no reading recorded.
func (p *Parameter) hasEmptySlot() bool {
	for _, sample := range p.samples {
		if strings.TrimSpace(sample) == "" {
			return true
		}
	}
	return false
}

// copyParameter returns a fresh parameter with the same spec and slot count
// but no recorded readings, used when a job card is split.
func (p *Parameter) copyParameter() *Parameter {
	return &Parameter{spec: p.spec, samples: make([]string, len(p.samples))}
}
