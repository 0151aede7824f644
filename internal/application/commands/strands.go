package commands

import (
	"context"
	"fmt"
	"slices"

	"nanodesign/internal/application"
	"nanodesign/internal/domain"
)

// StrandInfo is a display row for one strand
type StrandInfo struct {
	ID       domain.StrandID
	Role     string
	Color    int
	Length   int
	Circular bool
	Start    domain.Locus // 5' end
	End      domain.Locus // 3' end
	Domains  []DomainInfo
	Sequence string
}

// DomainInfo is a display row for one domain
type DomainInfo struct {
	Helix  int
	Start  int
	End    int
	Length int
}

// Label renders the strand as "staple 3 #ff0000 0[7]->0[4]"
func (s StrandInfo) Label() string {
	return fmt.Sprintf("%s %d %s %d[%d]->%d[%d]", s.Role, s.ID, application.FormatColor(s.Color),
		s.Start.Helix, s.Start.Pos, s.End.Helix, s.End.Pos)
}

// DescribeStrand builds the display row of a strand
func DescribeStrand(s *domain.Structure, st *domain.Strand) StrandInfo {
	bases := s.StrandBases(st)
	info := StrandInfo{
		ID:       st.ID,
		Role:     application.Role(st),
		Color:    st.Color,
		Length:   st.Len(),
		Circular: st.Circular,
		Sequence: s.Sequence(st),
	}
	if len(bases) > 0 {
		info.Start = bases[0].Locus
		info.End = bases[len(bases)-1].Locus
	}
	for _, d := range st.Domains {
		db := s.DomainBases(d)
		info.Domains = append(info.Domains, DomainInfo{
			Helix:  d.Helix,
			Start:  db[0].Locus.Pos,
			End:    db[len(db)-1].Locus.Pos,
			Length: d.Len(),
		})
	}
	return info
}

// ListStrandsCommand lists the strands of a structure, optionally filtered by
// role and staple colors
type ListStrandsCommand struct {
	structure *domain.Structure
	Role      string // "scaffold", "staple" or empty for all
	Colors    []int
}

// NewListStrandsCommand creates a new ListStrandsCommand
func NewListStrandsCommand(s *domain.Structure) *ListStrandsCommand {
	return &ListStrandsCommand{structure: s}
}

// Validate checks the filter
func (c *ListStrandsCommand) Validate() error {
	if c.structure == nil {
		return application.ErrNoStructure
	}
	if err := application.ValidateOneOf("role", c.Role, "scaffold", "staple"); err != nil {
		return err
	}
	if len(c.Colors) > 0 && c.Role == "scaffold" {
		return &application.ValidationError{
			Field:   "colors",
			Message: "colors only apply to staples",
		}
	}
	return nil
}

// Execute runs the list strands command
func (c *ListStrandsCommand) Execute(ctx context.Context) ([]StrandInfo, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var ids []domain.StrandID
	if len(c.Colors) > 0 {
		ids = domain.StaplesByColor(c.structure, c.Colors)
	}

	var out []StrandInfo
	for i := range c.structure.Strands {
		st := &c.structure.Strands[i]
		if c.Role != "" && application.Role(st) != c.Role {
			continue
		}
		if len(c.Colors) > 0 && !slices.Contains(ids, st.ID) {
			continue
		}
		out = append(out, DescribeStrand(c.structure, st))
	}
	return out, nil
}

// GetStrandCommand looks up one strand by id
type GetStrandCommand struct {
	structure *domain.Structure
	ID        domain.StrandID
}

// NewGetStrandCommand creates a new GetStrandCommand
func NewGetStrandCommand(s *domain.Structure, id domain.StrandID) *GetStrandCommand {
	return &GetStrandCommand{structure: s, ID: id}
}

// Execute runs the get strand command
func (c *GetStrandCommand) Execute(ctx context.Context) (*StrandInfo, error) {
	if c.structure == nil {
		return nil, application.ErrNoStructure
	}
	st, ok := c.structure.Strand(c.ID)
	if !ok {
		return nil, &application.StrandError{ID: int(c.ID), Reason: "no such strand"}
	}
	info := DescribeStrand(c.structure, st)
	return &info, nil
}
