package ports

import "github.com/sistema-nutricional-hospitalar/snh/internal/domain"

// PrescriptionLoader reads a prescription request from a source (e.g., a YAML file).
type PrescriptionLoader interface {
	LoadPrescription(path string) (domain.PrescriptionRequest, error)
}
