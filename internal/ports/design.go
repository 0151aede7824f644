package ports

import "nanodesign/internal/domain"

// DesignReader loads a lattice design from storage
type DesignReader interface {
	// ReadDesign parses the design file at path
	ReadDesign(path string) (*domain.Design, error)
}
