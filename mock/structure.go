package mock

import "github.com/fwojciec/newscrawl"

var _ newscrawl.StructureExtractor = (*StructureExtractor)(nil)

// StructureExtractor is a mock implementation of newscrawl.StructureExtractor.
type StructureExtractor struct {
	ExtractStructureFn func(rawHTML string) (*newscrawl.Structure, error)
}

func (e *StructureExtractor) ExtractStructure(rawHTML string) (*newscrawl.Structure, error) {
	return e.ExtractStructureFn(rawHTML)
}
