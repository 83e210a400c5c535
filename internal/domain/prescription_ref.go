package domain

// PrescriptionRef points at a prescription request file in the workspace.
type PrescriptionRef struct {
	Name string
	Path string
	Type string
}
