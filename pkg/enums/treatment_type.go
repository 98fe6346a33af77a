package enums

import "fmt"

// TreatmentType represents the clinical nature of a treatment.
type TreatmentType string

const (
	TreatmentTypeImplant    TreatmentType = "IMPLANT"
	TreatmentTypeCleaning   TreatmentType = "CLEANING"
	TreatmentTypeExtraction TreatmentType = "EXTRACTION"
	TreatmentTypeFilling    TreatmentType = "FILLING"
	TreatmentTypeCrown      TreatmentType = "CROWN"
	TreatmentTypeOther      TreatmentType = "OTHER"
)

var validTreatmentTypes = []TreatmentType{
	TreatmentTypeImplant,
	TreatmentTypeCleaning,
	TreatmentTypeExtraction,
	TreatmentTypeFilling,
	TreatmentTypeCrown,
	TreatmentTypeOther,
}

// String implements fmt.Stringer.
func (t TreatmentType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TreatmentType.
func (t TreatmentType) IsValid() bool {
	for _, candidate := range validTreatmentTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTreatmentType converts raw input into a TreatmentType.
func ParseTreatmentType(value string) (TreatmentType, error) {
	for _, candidate := range validTreatmentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid treatment type %q", value)
}
