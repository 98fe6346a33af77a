package types

import (
	"github.com/shopspring/decimal"
)

// MedicalHistory is the free-form medical record embedded in a patient row.
// Stored as jsonb via the gorm json serializer.
type MedicalHistory struct {
	Notes       string   `json:"notes"`
	Allergies   []string `json:"allergies"`
	Conditions  []string `json:"conditions"`
	Medications []string `json:"medications"`
}

// DentalHistory is the dental record embedded in a patient row.
type DentalHistory struct {
	Notes       string          `json:"notes"`
	Implants    []ImplantRecord `json:"implants"`
	Treatments  []PastTreatment `json:"treatments"`
	LastCheckup *string         `json:"lastCheckup"`
}

// ImplantRecord describes a single placed implant.
type ImplantRecord struct {
	Position string `json:"position"`
	Date     string `json:"date"`
	Type     string `json:"type"`
	Surgeon  string `json:"surgeon"`
}

// PastTreatment is a prior treatment entry carried inside the dental history.
type PastTreatment struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

// EmptyMedicalHistory returns the default record written when a patient is
// created without one.
func EmptyMedicalHistory() MedicalHistory {
	return MedicalHistory{
		Allergies:   []string{},
		Conditions:  []string{},
		Medications: []string{},
	}
}

// EmptyDentalHistory returns the default record written when a patient is
// created without one.
func EmptyDentalHistory() DentalHistory {
	return DentalHistory{
		Implants:   []ImplantRecord{},
		Treatments: []PastTreatment{},
	}
}
